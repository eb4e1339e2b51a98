package processors

import (
	"context"
	"strings"
	"time"

	mg "github.com/thsteixeira/precatorios/internal/config/connections/mongo"
	"github.com/thsteixeira/precatorios/internal/ports"
	"github.com/thsteixeira/precatorios/internal/repository/imports"
)

// field returns the first non-empty value among the candidate column names.
// Sheets arrive with inconsistent headers, so each logical field accepts
// several spellings.
func field(m map[string]string, keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(m[k]); v != "" {
			return v
		}
	}
	// second pass, case-insensitive
	for mk, mv := range m {
		lk := strings.ToLower(strings.TrimSpace(mk))
		for _, k := range keys {
			if lk == strings.ToLower(k) {
				if v := strings.TrimSpace(mv); v != "" {
					return v
				}
			}
		}
	}
	return ""
}

func parseDateStrict(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	layouts := []string{
		"2006-01-02",
		"02/01/2006",
		"02.01.2006",
		"2006/01/02",
		time.RFC3339,
		"2006-01-02 15:04:05",
	}
	for _, l := range layouts {
		if t, err := time.ParseInLocation(l, s, time.Local); err == nil {
			tt := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
			return &tt
		}
	}
	return nil
}

func importRecordID(ctx context.Context) string {
	if v := ctx.Value(ports.CtxImportRecordID); v != nil {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func logMongoFail(ctx context.Context, mgc *mg.Mongo, recordID, modelType, modelID string, payload map[string]string, errMsg string) {
	imports.LogMongoFail(ctx, mgc, imports.LogParams{
		ImportRecordID: recordID,
		ModelType:      modelType,
		ModelID:        modelID,
		Payload:        payload,
		Errors:         errMsg,
	})
}
