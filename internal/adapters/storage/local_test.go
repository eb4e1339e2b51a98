package storage

import (
	"context"
	"io"
	"strings"
	"testing"
)

func TestLocalStorage_roundtrip(t *testing.T) {
	l := NewLocalStorage(t.TempDir())
	ctx := context.Background()

	obj, err := l.Put(ctx, "precatorios/x/doc.pdf", strings.NewReader("conteudo"), 8, "application/pdf")
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if obj.Size != 8 {
		t.Fatalf("size = %d, want 8", obj.Size)
	}

	rc, got, err := l.Get(ctx, "precatorios/x/doc.pdf")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer rc.Close()
	b, err := io.ReadAll(rc)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "conteudo" || got.Size != 8 {
		t.Fatalf("got %q size %d", b, got.Size)
	}

	if err := l.Delete(ctx, "precatorios/x/doc.pdf"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, _, err := l.Get(ctx, "precatorios/x/doc.pdf"); err == nil {
		t.Fatal("get after delete should fail")
	}
	// deleting a missing object is not an error
	if err := l.Delete(ctx, "precatorios/x/doc.pdf"); err != nil {
		t.Fatalf("second delete: %v", err)
	}
}

func TestLocalStorage_blocksEscape(t *testing.T) {
	l := NewLocalStorage(t.TempDir())
	ctx := context.Background()

	if _, err := l.Put(ctx, "../fora.txt", strings.NewReader("x"), 1, ""); err == nil {
		t.Fatal("expected an error for a key escaping the media root")
	}
}

func TestLocalStorage_cannotPresign(t *testing.T) {
	l := NewLocalStorage(t.TempDir())

	url, err := l.PresignDownload(context.Background(), "k", "doc.pdf")
	if err != nil {
		t.Fatal(err)
	}
	if url != "" {
		t.Fatalf("url = %q, want empty", url)
	}
}
