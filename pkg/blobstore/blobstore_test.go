package blobstore

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFSStoreUploadReportsProgress(t *testing.T) {
	store := NewFSStore(t.TempDir(), "http://localhost:8080")

	data := strings.Repeat("a", 100)
	var last int64
	var calls int
	err := store.Upload(context.Background(), "patients/u_1/123_photo.jpg",
		strings.NewReader(data), int64(len(data)), func(written, total int64) {
			last = written
			calls++
			if total != int64(len(data)) {
				t.Errorf("total = %d, want %d", total, len(data))
			}
		})
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if last != int64(len(data)) || calls == 0 {
		t.Errorf("progress: last=%d calls=%d", last, calls)
	}

	got, err := os.ReadFile(filepath.Join(store.Root, "patients/u_1/123_photo.jpg"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != data {
		t.Error("stored bytes differ from uploaded bytes")
	}
}

func TestFSStoreDownloadURL(t *testing.T) {
	store := NewFSStore(t.TempDir(), "http://localhost:8080/")
	url, err := store.DownloadURL("patients/u_1/123_photo.jpg")
	if err != nil {
		t.Fatalf("DownloadURL: %v", err)
	}
	want := "http://localhost:8080/files/patients/u_1/123_photo.jpg"
	if url != want {
		t.Errorf("url = %q, want %q", url, want)
	}
}

func TestFSStoreRejectsTraversal(t *testing.T) {
	store := NewFSStore(t.TempDir(), "http://localhost:8080")
	err := store.Upload(context.Background(), "../escape", strings.NewReader("x"), 1, nil)
	if err == nil {
		t.Error("expected error for path traversal")
	}
}
