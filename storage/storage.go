package storage

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// ImageStore uploads avatar/cover images and returns a public URL. The real
// image host is an external collaborator; handlers only see this interface.
type ImageStore interface {
	Upload(ctx context.Context, filename string, r io.Reader) (string, error)
}

// LocalImageStore writes uploads under Dir and serves them below BaseURL.
type LocalImageStore struct {
	Dir     string
	BaseURL string
}

func NewLocalImageStore(dir, baseURL string) (*LocalImageStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalImageStore{Dir: dir, BaseURL: baseURL}, nil
}

func (s *LocalImageStore) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	name := newID() + filepath.Ext(filename)
	path := filepath.Join(s.Dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", err
	}
	return s.BaseURL + "/" + name, nil
}

// newID returns a 24-hex-character unique id.
// If crypto/rand fails, we fall back to a timestamp-based id.
func newID() string {
	var b [12]byte
	if _, err := rand.Read(b[:]); err == nil {
		return hex.EncodeToString(b[:])
	}
	return hex.EncodeToString([]byte(time.Now().UTC().Format("20060102T150405.000000000")))
}
