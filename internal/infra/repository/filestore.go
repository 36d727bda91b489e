package repository

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"multimodal-server/internal/domain/apperrors"
)

// LocalStore is the filesystem namespace under a fixed upload root. It is
// safe for concurrent use; two requests writing the same path race and the
// last write wins, which is the documented overwrite behavior.
type LocalStore struct {
	fs   afero.Fs
	root string
}

// NewLocalStore wraps an upload root on the given filesystem. The root must
// already exist (see client.UploadFs).
func NewLocalStore(fs afero.Fs, root string) *LocalStore {
	return &LocalStore{fs: fs, root: root}
}

// SanitizeSegment rejects identifiers that cannot be used as a single path
// segment: empty strings, dot entries, separators, traversal sequences and
// NUL bytes. Identifiers come from request headers and are untrusted.
func SanitizeSegment(segment string) error {
	if segment == "" || segment == "." || segment == ".." {
		return apperrors.Newf(apperrors.InvalidData, "invalid identifier %q", segment)
	}
	if strings.ContainsAny(segment, "/\\\x00") || strings.Contains(segment, "..") {
		return apperrors.Newf(apperrors.InvalidData, "invalid identifier %q", segment)
	}
	return nil
}

// EnsureDir joins the sanitized segments under the root and creates the
// directory if missing. MkdirAll tolerates both pre-existing directories and
// concurrent creators.
func (s *LocalStore) EnsureDir(segments ...string) (string, error) {
	parts := make([]string, 0, len(segments)+1)
	parts = append(parts, s.root)
	for _, segment := range segments {
		if err := SanitizeSegment(segment); err != nil {
			return "", err
		}
		parts = append(parts, segment)
	}

	dir := filepath.Join(parts...)
	if err := s.fs.MkdirAll(dir, 0o750); err != nil {
		return "", apperrors.Wrap(apperrors.StorageError, "failed to create directory", err)
	}
	return dir, nil
}

// WriteFile persists content to <dir>/<filename>, overwriting any previous
// file. The filename is base-named so a client-supplied name can never point
// outside dir. A failed write removes whatever partial file was left behind
// and reports a storage error.
func (s *LocalStore) WriteFile(dir, filename string, content []byte) (string, int64, error) {
	safe := filepath.Base(filename)
	if safe == "" || safe == "." || safe == ".." || safe == string(filepath.Separator) {
		return "", 0, apperrors.Newf(apperrors.InvalidData, "invalid filename %q", filename)
	}

	path := filepath.Join(dir, safe)
	if err := afero.WriteFile(s.fs, path, content, 0o640); err != nil {
		_ = s.fs.Remove(path)
		return "", 0, apperrors.Wrap(apperrors.StorageError, "failed to write file", err)
	}
	return path, int64(len(content)), nil
}

// Root returns the absolute upload root.
func (s *LocalStore) Root() string {
	return s.root
}

// HTTPFileSystem exposes the upload root for static serving.
func (s *LocalStore) HTTPFileSystem() http.FileSystem {
	return afero.NewHttpFs(afero.NewBasePathFs(s.fs, s.root))
}
