// Package upload accepts image files and stores them on disk or keeps them in
// memory when the filesystem is not writable.
package upload

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/geocoder89/vallas-api/internal/apperr"
)

type Mode string

const (
	ModeDisk   Mode = "disk"
	ModeMemory Mode = "memory"
)

var allowedExt = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
}

var allowedMIME = []string{"image/jpeg", "image/png"}

var whitespace = regexp.MustCompile(`\s+`)

var (
	ErrMissingFile = apperr.BadRequest("missing_file", "No se envió ningún archivo")
	ErrInvalidType = apperr.BadRequest("invalid_file_type", "Solo se permiten imágenes JPEG o PNG")
)

type File struct {
	Filename string
	Path     string
	Size     int64
	MIMEType string
	// Data is only set in memory mode.
	Data []byte
}

type Service struct {
	mode Mode
	dir  string
	now  func() time.Time
}

func New(mode Mode, dir string) *Service {
	if mode != ModeMemory {
		mode = ModeDisk
	}
	return &Service{mode: mode, dir: dir, now: time.Now}
}

func (s *Service) Mode() Mode { return s.mode }

// StoredName prefixes the original base name with a timestamp and replaces
// whitespace with underscores: 2024-06-01_15-04-05-foto_valla.png
func StoredName(original string, now time.Time) string {
	base := filepath.Base(strings.ReplaceAll(original, "\\", "/"))
	base = whitespace.ReplaceAllString(strings.TrimSpace(base), "_")
	return now.Format("2006-01-02_15-04-05") + "-" + base
}

// Accept validates fh and stores it according to the service mode.
func (s *Service) Accept(fh *multipart.FileHeader) (File, error) {
	if fh == nil {
		return File{}, ErrMissingFile
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if _, ok := allowedExt[ext]; !ok {
		return File{}, ErrInvalidType
	}

	src, err := fh.Open()
	if err != nil {
		return File{}, apperr.Internal("No se pudo leer el archivo", err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return File{}, apperr.Internal("No se pudo leer el archivo", err)
	}

	mtype := mimetype.Detect(data)
	if !mimetype.EqualsAny(mtype.String(), allowedMIME...) {
		return File{}, ErrInvalidType
	}

	out := File{
		Filename: StoredName(fh.Filename, s.now()),
		Size:     int64(len(data)),
		MIMEType: mtype.String(),
	}

	if s.mode == ModeMemory {
		out.Data = data
		return out, nil
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return File{}, apperr.Internal("No se pudo guardar el archivo", fmt.Errorf("create upload dir: %w", err))
	}

	out.Path = filepath.Join(s.dir, out.Filename)
	if err := writeFile(out.Path, data); err != nil {
		return File{}, apperr.Internal("No se pudo guardar el archivo", err)
	}

	return out, nil
}

func writeFile(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}

	if _, err := io.Copy(f, bytes.NewReader(data)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
