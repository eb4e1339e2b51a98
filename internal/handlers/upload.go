package handlers

import (
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/thsteixeira/precatorios/internal/repository/imports"
	"github.com/thsteixeira/precatorios/internal/transport/auth"
)

// UploadImport accepts multipart/form-data with `file` and `type` fields,
// stores the spreadsheet and creates an import_record entry in Mongo.
func (h *Handlers) UploadImport(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(128 << 20); err != nil {
		h.Logger.Printf("[UPLOAD][ERR] parse multipart: %v", err)
		h.BadRequest(w, "bad multipart: "+err.Error())
		return
	}

	importType := r.FormValue("type")
	if importType == "" {
		importType = r.FormValue("action")
	}
	if importType == "" {
		h.BadRequest(w, "type is required")
		return
	}
	if _, ok := h.Registry[importType]; !ok {
		h.BadRequest(w, "unknown import type: "+importType)
		return
	}

	f, fh, err := r.FormFile("file")
	if err != nil {
		h.Logger.Printf("[UPLOAD][ERR] missing file: %v", err)
		h.BadRequest(w, "file is required")
		return
	}
	defer f.Close()

	ext := strings.ToLower(path.Ext(fh.Filename))
	if ext != ".xlsx" && ext != ".csv" {
		h.BadRequest(w, "only .xlsx and .csv files are accepted")
		return
	}

	fname := path.Base(fh.Filename)
	key := fmt.Sprintf("imports/%s-%s", uuid.NewString(), fname)

	obj, err := h.Storage.Put(r.Context(), key, f, fh.Size, fh.Header.Get("Content-Type"))
	if err != nil {
		h.Logger.Printf("[UPLOAD][ERR] store: %v", err)
		h.Error(w, err)
		return
	}

	filePath := key
	rec := imports.Record{
		Count:     0,
		Status:    "recebido",
		Type:      importType,
		Key:       &key,
		SizeBytes: &obj.Size,
	}
	if h.S3 != nil {
		filePath = fmt.Sprintf("s3://%s/%s", h.S3.Bucket, h.S3.ObjectKey(key))
		rec.Bucket = &h.S3.Bucket
	}
	rec.Path = &filePath

	if userID, errGet := auth.GetUserID(r.Context()); errGet == nil {
		rec.UserID = &userID
	}

	ins, err := imports.InsertImportRecord(r.Context(), h.Mongo, rec)
	if err != nil {
		h.Logger.Printf("[UPLOAD][ERR] db insert: %v", err)
		h.Error(w, err)
		return
	}

	h.Logger.Printf("[UPLOAD][OK] type=%s path=%q size=%d", importType, filePath, obj.Size)
	h.JSON(w, http.StatusCreated, map[string]any{"id": ins.InsertedID, "path": filePath})
}
