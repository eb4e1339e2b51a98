package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/thsteixeira/precatorios/internal/adapters/opener"
	"github.com/thsteixeira/precatorios/internal/repository/imports"
	"github.com/thsteixeira/precatorios/internal/services/importer"
)

type importRequest struct {
	Type           string `json:"type"`
	FilePath       string `json:"file_path"`
	BatchSize      int    `json:"batch_size"`
	TimeoutMin     int    `json:"timeout_minutes,omitempty"`
	ImportRecordID string `json:"import_record_id"`
}

// Import starts a background run of the spreadsheet pipeline and returns 202.
func (h *Handlers) Import(w http.ResponseWriter, r *http.Request) {
	var req importRequest
	if !h.decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.FilePath) == "" {
		h.BadRequest(w, "file_path is required")
		return
	}
	if req.BatchSize <= 0 {
		req.BatchSize = 500
	}

	reqCopy := req

	go func() {
		start := time.Now()

		var s3Op *opener.S3Opener
		bucket := ""
		if h.S3 != nil {
			s3Op = opener.NewS3Opener(h.S3.Client)
			bucket = h.S3.Bucket
		}
		compound := opener.NewCompoundOpener(
			opener.NewHTTPOpener(h.HTTP),
			s3Op,
			opener.NewLocalOpener(h.MediaRoot),
			bucket,
		)

		svc := importer.NewService(compound, h.Registry, reqCopy.BatchSize)

		timeout := 15 * time.Minute
		if reqCopy.TimeoutMin > 0 {
			timeout = time.Duration(reqCopy.TimeoutMin) * time.Minute
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		filePath := reqCopy.FilePath
		if h.S3 != nil && !strings.Contains(filePath, "://") {
			// bucket-relative keys carry the environment prefix
			filePath = h.S3.ObjectKey(filePath)
		}

		res, err := svc.Import(ctx, importer.Request{
			Type:           reqCopy.Type,
			FilePath:       filePath,
			BatchSize:      reqCopy.BatchSize,
			ImportRecordID: reqCopy.ImportRecordID,
		})
		if err != nil {
			h.Logger.Printf("[IMPORT][ERR][BG] type=%q path=%q err=%v took=%s",
				reqCopy.Type, reqCopy.FilePath, err, time.Since(start))
			if reqCopy.ImportRecordID != "" {
				if uerr := imports.UpdateImportRecordStatus(ctx, h.Mongo, reqCopy.ImportRecordID, "falhou"); uerr != nil {
					h.Logger.Printf("[IMPORT][ERR][BG] update record: %v", uerr)
				}
			}
			return
		}

		if reqCopy.ImportRecordID != "" {
			if uerr := imports.UpdateImportRecordStatusDone(ctx, h.Mongo, reqCopy.ImportRecordID); uerr != nil {
				h.Logger.Printf("[IMPORT][ERR][BG] update record: %v", uerr)
			}
		}

		h.Logger.Printf("[IMPORT][OK][BG] type=%q src=%s fmt=%s rows=%d bucket=%q key=%q size=%d took=%s",
			reqCopy.Type, res.Source, res.Format, res.RowsProcessed, res.Bucket, res.Key, res.SizeBytes, time.Since(start))
	}()

	h.JSON(w, http.StatusAccepted, map[string]any{
		"status":           "started",
		"type":             req.Type,
		"file_path":        req.FilePath,
		"batch_size":       req.BatchSize,
		"import_record_id": req.ImportRecordID,
	})
}

// ListImportRecords pages through the Mongo audit records, newest first.
func (h *Handlers) ListImportRecords(w http.ResponseWriter, r *http.Request) {
	limit := int64(queryInt(r, "limit"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	skip := int64(queryInt(r, "skip"))

	filter := bson.M{}
	if t := r.URL.Query().Get("type"); t != "" {
		filter["type"] = t
	}
	if st := r.URL.Query().Get("status"); st != "" {
		filter["status"] = st
	}

	recs, total, err := imports.ListImportRecords(r.Context(), h.Mongo, filter, limit, skip)
	if err != nil {
		h.Error(w, err)
		return
	}
	h.JSON(w, http.StatusOK, map[string]any{
		"records": recs,
		"total":   total,
	})
}

func (h *Handlers) GetImportRecord(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		h.BadRequest(w, "id is required")
		return
	}
	rec, err := imports.FindImportRecordByID(r.Context(), h.Mongo, id)
	if err != nil {
		h.JSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	h.JSON(w, http.StatusOK, rec)
}
