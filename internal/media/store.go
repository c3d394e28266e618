// Package media stores uploaded resident photos on disk and serves them by
// URL. The classification and search code never inspects photo content,
// only the URL recorded on the person record.
package media

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/mquezada/katutubo/internal/errors"
)

// allowedExtensions is the photo upload whitelist.
var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// Store writes photo blobs under a base directory keyed by generated
// identifiers.
type Store struct {
	baseDir    string
	publicPath string
	maxBytes   int64
	logger     *slog.Logger
}

// NewStore creates the photo store, ensuring the base directory exists.
func NewStore(baseDir, publicPath string, maxSizeMB int) (*Store, error) {
	if maxSizeMB <= 0 {
		maxSizeMB = 8
	}
	absDir, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, errors.New(fmt.Errorf("resolving media directory: %w", err)).
			Component("media").
			Category(errors.CategoryFileIO).
			Build()
	}
	if err := os.MkdirAll(absDir, 0o755); err != nil {
		return nil, errors.New(fmt.Errorf("creating media directory: %w", err)).
			Component("media").
			Category(errors.CategoryFileIO).
			Build()
	}
	return &Store{
		baseDir:    absDir,
		publicPath: strings.TrimSuffix(publicPath, "/"),
		maxBytes:   int64(maxSizeMB) << 20,
		logger:     slog.Default().With("service", "media"),
	}, nil
}

// BaseDir returns the directory photos are written to, for static serving.
func (s *Store) BaseDir() string { return s.baseDir }

// Save writes a photo blob and returns the URL it will be served under.
// The original filename only contributes its extension; the stored name is
// a generated identifier.
func (s *Store) Save(r io.Reader, originalName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !allowedExtensions[ext] {
		return "", errors.Newf("file type %q not allowed", ext).
			Component("media").
			Category(errors.CategoryValidation).
			Context("filename", originalName).
			Build()
	}

	name := uuid.NewString() + ext
	target := filepath.Join(s.baseDir, name)

	// The generated name cannot traverse, but verify confinement anyway in
	// case the construction above changes.
	if !strings.HasPrefix(target, s.baseDir+string(os.PathSeparator)) {
		return "", errors.Newf("path escapes media directory").
			Component("media").
			Category(errors.CategoryValidation).
			Build()
	}

	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", errors.New(fmt.Errorf("creating photo file: %w", err)).
			Component("media").
			Category(errors.CategoryFileIO).
			Build()
	}
	defer f.Close()

	written, err := io.Copy(f, io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		_ = os.Remove(target)
		return "", errors.New(fmt.Errorf("writing photo file: %w", err)).
			Component("media").
			Category(errors.CategoryFileIO).
			Build()
	}
	if written > s.maxBytes {
		_ = os.Remove(target)
		return "", errors.Newf("photo exceeds maximum size of %d bytes", s.maxBytes).
			Component("media").
			Category(errors.CategoryValidation).
			Build()
	}

	s.logger.Debug("stored photo", "name", name, "bytes", written)
	return s.publicPath + "/" + name, nil
}

// Remove deletes a stored photo by its public URL. Unknown URLs are a
// no-op so record deletion never fails on missing media.
func (s *Store) Remove(url string) {
	name := filepath.Base(url)
	if name == "" || name == "." || name == string(os.PathSeparator) {
		return
	}
	_ = os.Remove(filepath.Join(s.baseDir, name))
}
