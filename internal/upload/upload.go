package upload

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// Rejection reasons surfaced to the submitter as 400-class failures.
var (
	ErrUnsupportedType = errors.New("Only PDF, DOC, and DOCX files are allowed")
	ErrTooLarge        = errors.New("Resume must be 2 MB or smaller.")
)

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

// Store validates resume uploads and writes them to a local directory.
// Serving the stored files back is not its job; the HTTP layer exposes the
// directory under PublicPrefix.
type Store struct {
	dir          string
	publicPrefix string
	maxBytes     int64
}

func NewStore(dir, publicPrefix string, maxBytes int64) *Store {
	return &Store{dir: dir, publicPrefix: publicPrefix, maxBytes: maxBytes}
}

// SaveResume validates the uploaded file and persists it under a generated
// name, returning the server-relative public path. Validation happens
// before any bytes touch the disk: a rejected upload leaves nothing behind.
func (s *Store) SaveResume(fh *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExtensions[ext] {
		return "", ErrUnsupportedType
	}
	if fh.Size > s.maxBytes {
		return "", ErrTooLarge
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("ensure uploads dir: %w", err)
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	// Timestamp plus a random suffix keeps concurrent uploads from
	// colliding on a single node. Collisions are probabilistic, not
	// impossible; see DESIGN.md for the tradeoff.
	name := fmt.Sprintf("resume-%d-%06d%s", time.Now().UnixMilli(), rand.IntN(1_000_000), ext)
	dst := filepath.Join(s.dir, name)

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}

	// guard against a lying Content-Length: copy at most one byte over
	// the ceiling and reject if it arrives
	n, err := io.Copy(out, io.LimitReader(src, s.maxBytes+1))
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("write upload file: %w", err)
	}
	if n > s.maxBytes {
		os.Remove(dst)
		return "", ErrTooLarge
	}

	return path.Join(s.publicPrefix, name), nil
}

// Dir returns the storage directory, for wiring the static file server.
func (s *Store) Dir() string {
	return s.dir
}
