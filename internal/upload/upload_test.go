package upload

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

// fileHeader builds a real *multipart.FileHeader by writing a form body and
// parsing it back through net/http, the same way a handler receives it.
func fileHeader(t *testing.T, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="eventimage"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		t.Fatalf("CreatePart: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if err := req.ParseMultipartForm(32 << 20); err != nil {
		t.Fatalf("ParseMultipartForm: %v", err)
	}
	files := req.MultipartForm.File["eventimage"]
	if len(files) != 1 {
		t.Fatalf("expected one file, got %d", len(files))
	}
	return files[0]
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		contentType string
		wantErr     error
	}{
		{"png ok", "poster.png", "image/png", nil},
		{"jpeg ok", "photo.JPG", "image/jpeg", nil},
		{"gif ok", "anim.gif", "image/gif", nil},
		{"bad extension", "notes.txt", "image/png", ErrBadType},
		{"bad mime", "poster.png", "application/pdf", ErrBadType},
		{"mismatched pair", "script.sh", "text/x-sh", ErrBadType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fh := fileHeader(t, tt.filename, tt.contentType, []byte("data"))
			if err := Validate(fh); err != tt.wantErr {
				t.Errorf("Validate(%s, %s) = %v, want %v", tt.filename, tt.contentType, err, tt.wantErr)
			}
		})
	}
}

func TestValidateOversize(t *testing.T) {
	fh := fileHeader(t, "big.png", "image/png", bytes.Repeat([]byte("x"), MaxFileSize+1))
	if err := Validate(fh); err != ErrTooLarge {
		t.Errorf("Validate(oversize) = %v, want ErrTooLarge", err)
	}
}

func TestSaveAndRemove(t *testing.T) {
	dir := t.TempDir()
	s := NewSaver(dir, "/uploads/events")

	fh := fileHeader(t, "campus fair.png", "image/png", []byte("png-bytes"))
	publicPath, err := s.Save(fh)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasPrefix(publicPath, "/uploads/events/") {
		t.Errorf("public path = %q, want /uploads/events/ prefix", publicPath)
	}

	// Stored name: original base plus timestamp and random suffix.
	name := filepath.Base(publicPath)
	if ok, _ := regexp.MatchString(`^campus fair-\d+-\d+\.png$`, name); !ok {
		t.Errorf("stored name = %q, want base-millis-rand.png", name)
	}

	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Errorf("stored content = %q", data)
	}

	if err := s.Remove(publicPath); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, name)); !os.IsNotExist(err) {
		t.Error("file still present after Remove")
	}
	// Removing again (or a blank path) is a no-op.
	if err := s.Remove(publicPath); err != nil {
		t.Errorf("second Remove: %v", err)
	}
	if err := s.Remove(""); err != nil {
		t.Errorf("Remove(empty): %v", err)
	}
}

func TestSaveRejectsBadUploadWithoutWriting(t *testing.T) {
	dir := t.TempDir()
	s := NewSaver(dir, "/uploads/events")

	fh := fileHeader(t, "malware.exe", "application/octet-stream", []byte("nope"))
	if _, err := s.Save(fh); err != ErrBadType {
		t.Fatalf("Save(bad type) = %v, want ErrBadType", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("rejected upload left %d files behind", len(entries))
	}
}

func TestUniqueNameFallback(t *testing.T) {
	if !strings.HasPrefix(uniqueName(".png"), "image-") {
		t.Errorf("uniqueName(.png) = %q, want image- prefix", uniqueName(".png"))
	}
}
