package services

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func multipartHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if err := req.ParseMultipartForm(1 << 20); err != nil {
		t.Fatalf("parse form: %v", err)
	}
	return req.MultipartForm.File["file"][0]
}

func TestStorageSaveReadDelete(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "uploads")
	storage := NewStorageService(dir)
	if err := storage.EnsureUploadDir(); err != nil {
		t.Fatalf("EnsureUploadDir: %v", err)
	}

	name, path, err := storage.SaveFile(multipartHeader(t, "Resume.PDF", []byte("%PDF-1.4 test")), "resume")
	if err != nil {
		t.Fatalf("SaveFile: %v", err)
	}
	if !strings.HasPrefix(name, "resume_") || !strings.HasSuffix(name, ".pdf") {
		t.Fatalf("unexpected stored name %q", name)
	}
	if path != filepath.Join(dir, name) {
		t.Fatalf("path = %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if string(data) != "%PDF-1.4 test" {
		t.Fatalf("data = %q", data)
	}

	if err := storage.DeleteFile(name); err != nil {
		t.Fatalf("DeleteFile: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("file still exists: %v", err)
	}
}

func TestStorageRejectsUnsupportedExtension(t *testing.T) {
	t.Parallel()

	storage := NewStorageService(t.TempDir())
	if _, _, err := storage.SaveFile(multipartHeader(t, "notes.txt", []byte("hi")), "resume"); err == nil {
		t.Fatal("expected error for .txt upload")
	}
}

func TestStorageGetFilePathStaysInUploadDir(t *testing.T) {
	t.Parallel()

	storage := NewStorageService("/srv/uploads")
	if got := storage.GetFilePath("../../etc/passwd"); got != "/srv/uploads/passwd" {
		t.Fatalf("GetFilePath = %q", got)
	}
}
