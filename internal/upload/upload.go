// Package upload stores event images on local disk. One optional image per
// form submission; type is checked on both the file extension and the
// declared content type, size is capped before anything touches disk, and
// stored names get a uniqueness suffix so concurrent uploads of the same
// filename cannot collide.
package upload

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// MaxFileSize is the upload cap (5 MiB).
const MaxFileSize = 5 << 20

var (
	// ErrTooLarge is returned for uploads over MaxFileSize.
	ErrTooLarge = errors.New("image exceeds the 5 MB limit")
	// ErrBadType is returned when either the extension or the declared
	// content type is outside the jpeg/png/gif allow-list.
	ErrBadType = errors.New("only jpeg, png and gif images are allowed")
)

var allowedExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

var allowedMIME = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
}

// Saver writes validated images into Dir and hands back the public path
// stored on the event row (PublicPrefix + "/" + stored name).
type Saver struct {
	Dir          string
	PublicPrefix string
}

func NewSaver(dir, publicPrefix string) *Saver {
	return &Saver{Dir: dir, PublicPrefix: strings.TrimRight(publicPrefix, "/")}
}

// EnsureDir creates the upload directory if it is absent. Called once at
// startup.
func (s *Saver) EnsureDir() error {
	return os.MkdirAll(s.Dir, 0o755)
}

// Validate checks an upload's declared type and size without touching disk.
func Validate(fh *multipart.FileHeader) error {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExt[ext] {
		return ErrBadType
	}
	if !allowedMIME[strings.ToLower(fh.Header.Get("Content-Type"))] {
		return ErrBadType
	}
	if fh.Size > MaxFileSize {
		return ErrTooLarge
	}
	return nil
}

// Save validates and stores the uploaded file, returning the public path to
// persist on the row. The declared size is re-checked while copying so a
// lying Content-Length cannot sneak an oversized file past Validate.
func (s *Saver) Save(fh *multipart.FileHeader) (string, error) {
	if err := Validate(fh); err != nil {
		return "", err
	}
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	name := uniqueName(fh.Filename)
	diskPath := filepath.Join(s.Dir, name)
	dst, err := os.Create(diskPath)
	if err != nil {
		return "", err
	}
	n, err := io.Copy(dst, io.LimitReader(src, MaxFileSize+1))
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err == nil && n > MaxFileSize {
		err = ErrTooLarge
	}
	if err != nil {
		_ = os.Remove(diskPath)
		return "", err
	}
	return s.PublicPrefix + "/" + name, nil
}

// Remove deletes the file behind a stored public path. A blank path or an
// already-missing file is not an error; anything else is logged by callers.
func (s *Saver) Remove(publicPath string) error {
	if publicPath == "" {
		return nil
	}
	// Only the base name is trusted; the row value is a public URL path.
	name := path.Base(publicPath)
	err := os.Remove(filepath.Join(s.Dir, name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// uniqueName derives the stored filename from the original base name plus a
// timestamp and random suffix, mirroring "<base>-<millis>-<rand><ext>".
func uniqueName(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	base := strings.TrimSuffix(filepath.Base(original), filepath.Ext(original))
	if base == "" {
		base = "image"
	}
	return fmt.Sprintf("%s-%d-%d%s", base, time.Now().UnixMilli(), rand.Intn(1_000_000_000), ext)
}
