package storage

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/thsteixeira/precatorios/internal/ports"
)

// LocalStorage writes attachments to the media directory. It cannot
// presign, so downloads stream through the application.
type LocalStorage struct {
	Root string
}

func NewLocalStorage(root string) *LocalStorage {
	return &LocalStorage{Root: root}
}

func (l *LocalStorage) path(key string) (string, error) {
	full := filepath.Join(l.Root, filepath.FromSlash(key))

	abs, err := filepath.Abs(full)
	if err != nil {
		return "", err
	}
	rootAbs, err := filepath.Abs(l.Root)
	if err != nil {
		return "", err
	}
	if abs != rootAbs && !strings.HasPrefix(abs, rootAbs+string(os.PathSeparator)) {
		return "", errors.New("path escapes media root")
	}
	return abs, nil
}

func (l *LocalStorage) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (ports.StoredObject, error) {
	full, err := l.path(key)
	if err != nil {
		return ports.StoredObject{}, err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return ports.StoredObject{}, err
	}

	f, err := os.Create(full)
	if err != nil {
		return ports.StoredObject{}, err
	}
	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(full)
		return ports.StoredObject{}, err
	}
	log.Printf("[STORAGE][LOCAL][PUT] path=%q size=%d", full, n)
	return ports.StoredObject{Key: key, Size: n, ContentType: contentType}, nil
}

func (l *LocalStorage) Get(ctx context.Context, key string) (io.ReadCloser, ports.StoredObject, error) {
	full, err := l.path(key)
	if err != nil {
		return nil, ports.StoredObject{}, err
	}
	f, err := os.Open(full)
	if err != nil {
		return nil, ports.StoredObject{}, err
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, ports.StoredObject{}, err
	}
	return f, ports.StoredObject{Key: key, Size: st.Size()}, nil
}

func (l *LocalStorage) Delete(ctx context.Context, key string) error {
	full, err := l.path(key)
	if err != nil {
		return err
	}
	log.Printf("[STORAGE][LOCAL][DELETE] path=%q", full)
	err = os.Remove(full)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func (l *LocalStorage) PresignDownload(ctx context.Context, key, filename string) (string, error) {
	return "", nil
}
