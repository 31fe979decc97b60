// Package blobstore abstracts the file storage service used for profile
// photos. Paths are namespaced by record identifier and timestamp; the
// store issues download URLs after upload.
package blobstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ProgressFunc receives the number of bytes written so far and the total,
// mirroring the storage provider's upload progress callback.
type ProgressFunc func(written, total int64)

type Store interface {
	Upload(ctx context.Context, path string, r io.Reader, size int64, progress ProgressFunc) error
	DownloadURL(path string) (string, error)
	Delete(ctx context.Context, path string) error
}

// FSStore keeps blobs on the local filesystem under Root and serves them
// through the /files route.
type FSStore struct {
	Root    string
	BaseURL string
}

func NewFSStore(root, baseURL string) *FSStore {
	return &FSStore{Root: root, BaseURL: baseURL}
}

func (s *FSStore) fullPath(path string) (string, error) {
	if strings.Contains(path, "..") {
		return "", fmt.Errorf("invalid blob path")
	}
	return filepath.Join(s.Root, filepath.Clean("/"+path)), nil
}

func (s *FSStore) Upload(ctx context.Context, path string, r io.Reader, size int64, progress ProgressFunc) error {
	full, err := s.fullPath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	f, err := os.Create(full)
	if err != nil {
		return err
	}
	defer f.Close()

	var written int64
	buf := make([]byte, 32*1024)
	for {
		if err := ctx.Err(); err != nil {
			os.Remove(full)
			return err
		}
		n, rerr := r.Read(buf)
		if n > 0 {
			if _, werr := f.Write(buf[:n]); werr != nil {
				return werr
			}
			written += int64(n)
			if progress != nil {
				progress(written, size)
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return rerr
		}
	}
	return nil
}

func (s *FSStore) DownloadURL(path string) (string, error) {
	if _, err := s.fullPath(path); err != nil {
		return "", err
	}
	return strings.TrimRight(s.BaseURL, "/") + "/files/" + strings.TrimLeft(path, "/"), nil
}

func (s *FSStore) Delete(ctx context.Context, path string) error {
	full, err := s.fullPath(path)
	if err != nil {
		return err
	}
	return os.Remove(full)
}
