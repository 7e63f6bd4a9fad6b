// Package storage holds raw uploaded photo files.
package storage

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Uploads is a flat directory of blobs keyed by their original filename.
type Uploads struct {
	dir string
}

func NewUploads(dir string) (*Uploads, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
	}
	return &Uploads{dir: dir}, nil
}

func (u *Uploads) Dir() string { return u.dir }

// Put writes r to dir/name, replacing any existing file of that name.
func (u *Uploads) Put(name string, r io.Reader) error {
	out, err := os.Create(filepath.Join(u.dir, name))
	if err != nil {
		return fmt.Errorf("create upload %s: %w", name, err)
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return fmt.Errorf("write upload %s: %w", name, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close upload %s: %w", name, err)
	}
	return nil
}

// Handler serves stored blobs by name; mount it behind http.StripPrefix.
// Directory paths are 404 so the upload dir is never listed.
func (u *Uploads) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(r.URL.Path, "/")
		if name == "" || strings.HasSuffix(name, "/") {
			http.NotFound(w, r)
			return
		}
		f, err := os.Open(filepath.Join(u.dir, filepath.FromSlash(path.Clean("/"+name))))
		if err != nil {
			http.NotFound(w, r)
			return
		}
		defer f.Close()
		fi, err := f.Stat()
		if err != nil || fi.IsDir() {
			http.NotFound(w, r)
			return
		}
		http.ServeContent(w, r, fi.Name(), fi.ModTime(), f)
	})
}
