// Package upload stores ticket images on local disk.
package upload

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"unicode"
)

// DefaultMaxBytes is the per-file size limit when none is configured.
const DefaultMaxBytes int64 = 5 * 1024 * 1024

// AllowedContentTypes lists the accepted image MIME types.
var AllowedContentTypes = []string{"image/jpeg", "image/png", "image/gif"}

// RejectedError reports a file refused before anything was written.
type RejectedError struct {
	Reason string
	Status int
}

func (e *RejectedError) Error() string {
	return e.Reason
}

// IsRejected reports whether err is a RejectedError.
func IsRejected(err error) (*RejectedError, bool) {
	var rejected *RejectedError
	ok := errors.As(err, &rejected)
	return rejected, ok
}

// File describes an incoming upload.
type File struct {
	Code        string
	Title       string
	Filename    string
	ContentType string
	Size        int64
}

// Saved describes a stored upload.
type Saved struct {
	Filename string `json:"filename"`
	Path     string `json:"-"`
	URL      string `json:"url"`
	Size     int64  `json:"size"`
}

// Store writes uploads under Dir, served publicly below URLPrefix.
type Store struct {
	Dir       string
	URLPrefix string
	MaxBytes  int64
	random    func() int
}

// NewStore builds a store. maxBytes <= 0 uses DefaultMaxBytes.
func NewStore(dir string, maxBytes int64) *Store {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Store{
		Dir:       dir,
		URLPrefix: "/uploads",
		MaxBytes:  maxBytes,
		random:    func() int { return rand.IntN(1_000_000_001) },
	}
}

// Check validates the type and declared size without touching the disk.
func (s *Store) Check(f File) error {
	if !allowed(f.ContentType) {
		return &RejectedError{
			Reason: "Invalid file type. Only JPEG, PNG and GIF are allowed.",
			Status: http.StatusUnsupportedMediaType,
		}
	}
	if f.Size > s.MaxBytes {
		return s.tooLarge()
	}
	return nil
}

// Save checks f, then streams r to <code>-<title>-<random><ext> under Dir,
// creating Dir when needed. A stream longer than MaxBytes is removed and rejected.
func (s *Store) Save(f File, r io.Reader) (*Saved, error) {
	if err := s.Check(f); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	name := s.filename(f)
	fullPath := filepath.Join(s.Dir, name)
	out, err := os.OpenFile(fullPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create upload file: %w", err)
	}

	written, copyErr := io.Copy(out, io.LimitReader(r, s.MaxBytes+1))
	closeErr := out.Close()
	if copyErr == nil && written > s.MaxBytes {
		copyErr = s.tooLarge()
	}
	if copyErr == nil {
		copyErr = closeErr
	}
	if copyErr != nil {
		_ = os.Remove(fullPath)
		return nil, copyErr
	}

	return &Saved{
		Filename: name,
		Path:     fullPath,
		URL:      path.Join(s.URLPrefix, name),
		Size:     written,
	}, nil
}

func (s *Store) tooLarge() error {
	return &RejectedError{
		Reason: fmt.Sprintf("File too large. Maximum size is %d bytes.", s.MaxBytes),
		Status: http.StatusRequestEntityTooLarge,
	}
}

func (s *Store) filename(f File) string {
	ext := strings.ToLower(filepath.Ext(f.Filename))
	return fmt.Sprintf("%s-%s-%d%s", sanitize(f.Code), sanitize(f.Title), s.random(), sanitize(ext))
}

func allowed(contentType string) bool {
	mediaType := strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	for _, t := range AllowedContentTypes {
		if mediaType == t {
			return true
		}
	}
	return false
}

// sanitize keeps letters, digits, '.', '-' and '_' so names cannot escape Dir.
func sanitize(s string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '-', r == '_', r == '.':
			return r
		default:
			return '_'
		}
	}, s)
	return strings.ReplaceAll(cleaned, "..", "_")
}
