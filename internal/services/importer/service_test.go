package importer

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/thsteixeira/precatorios/internal/ports"
)

type fakeOpener struct {
	content     string
	contentType string
}

func (f *fakeOpener) Open(ctx context.Context, filePath string) (io.ReadCloser, ports.Meta, error) {
	return io.NopCloser(strings.NewReader(f.content)), ports.Meta{
		Source:      "local",
		ContentType: f.contentType,
		Size:        int64(len(f.content)),
	}, nil
}

type collectProcessor struct {
	batches [][]map[string]string
}

func (c *collectProcessor) Type() string { return "collect" }

func (c *collectProcessor) ProcessBatch(ctx context.Context, batch []map[string]string) error {
	cp := make([]map[string]string, len(batch))
	copy(cp, batch)
	c.batches = append(c.batches, cp)
	return nil
}

func TestImport_csvBatches(t *testing.T) {
	csvData := "cnj,nome,cpf\n" +
		"1,Ana,111\n" +
		"2,Bia,222\n" +
		"3,Carlos,333\n"

	op := &fakeOpener{content: csvData, contentType: "text/csv"}
	proc := &collectProcessor{}
	svc := NewService(op, map[string]ports.Processor{"collect": proc}, 2)

	res, err := svc.Import(context.Background(), Request{
		Type:     "collect",
		FilePath: "planilha.csv",
	})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if res.Format != "csv" {
		t.Fatalf("expected csv format, got %q", res.Format)
	}
	if res.RowsProcessed != 3 {
		t.Fatalf("expected 3 rows, got %d", res.RowsProcessed)
	}
	if len(proc.batches) != 2 {
		t.Fatalf("expected 2 batches (size 2 + 1), got %d", len(proc.batches))
	}
	if got := proc.batches[0][0]["nome"]; got != "Ana" {
		t.Fatalf("expected first row nome=Ana, got %q", got)
	}
	if res.SHA256 == "" {
		t.Fatalf("expected checksum to be computed")
	}
}

func TestImport_unknownType(t *testing.T) {
	svc := NewService(&fakeOpener{}, map[string]ports.Processor{}, 10)
	_, err := svc.Import(context.Background(), Request{Type: "nope", FilePath: "x.csv"})
	if err == nil {
		t.Fatalf("expected error for unknown processor type")
	}
}

func TestDetectFormat(t *testing.T) {
	cases := []struct {
		path, ct, want string
	}{
		{"s3://bucket/planilha.xlsx", "", "xlsx"},
		{"dados.csv", "", "csv"},
		{"arquivo", "text/csv; charset=utf-8", "csv"},
		{"arquivo", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "xlsx"},
		{"arquivo", "application/octet-stream", ""},
	}
	for _, c := range cases {
		if got := detectFormat(c.path, c.ct); got != c.want {
			t.Errorf("detectFormat(%q, %q) = %q, want %q", c.path, c.ct, got, c.want)
		}
	}
}

func TestToMap_padsShortRows(t *testing.T) {
	m := toMap([]string{"cnj", "nome", "cpf"}, []string{" 123 ", "Ana"})
	if m["cnj"] != "123" {
		t.Fatalf("expected trimmed cnj, got %q", m["cnj"])
	}
	if m["cpf"] != "" {
		t.Fatalf("expected empty cpf for short row, got %q", m["cpf"])
	}
}
