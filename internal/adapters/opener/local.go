package opener

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

// LocalOpener reads files from the media directory. Used when the
// environment runs without object storage.
type LocalOpener struct{ Root string }

func NewLocalOpener(root string) *LocalOpener { return &LocalOpener{Root: root} }

func (l *LocalOpener) Open(ctx context.Context, key string) (io.ReadCloser, ports.Meta, error) {
	full := filepath.Join(l.Root, filepath.FromSlash(key))

	// keep reads inside the media root
	abs, err := filepath.Abs(full)
	if err != nil {
		return nil, ports.Meta{}, err
	}
	rootAbs, err := filepath.Abs(l.Root)
	if err != nil {
		return nil, ports.Meta{}, err
	}
	if abs != rootAbs && !strings.HasPrefix(abs, rootAbs+string(os.PathSeparator)) {
		return nil, ports.Meta{}, errors.New("path escapes media root")
	}

	log.Printf("[OPENER][LOCAL][START] path=%q", abs)
	f, err := os.Open(abs)
	if err != nil {
		log.Printf("[OPENER][LOCAL][ERR] open: %v", err)
		return nil, ports.Meta{}, err
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, ports.Meta{}, err
	}
	log.Printf("[OPENER][LOCAL][OK] size=%d", st.Size())
	return f, ports.Meta{
		Source: "local",
		Size:   st.Size(),
		Key:    key,
	}, nil
}
