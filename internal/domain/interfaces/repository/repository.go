package repository

// Store is the filesystem namespace the services persist into.
type Store interface {
	// EnsureDir resolves the sanitized segments under the upload root and
	// creates the directory if needed. Safe under concurrent callers.
	EnsureDir(segments ...string) (string, error)
	// WriteFile persists content to <dir>/<filename> and returns the final
	// path and the number of bytes written. A failed write leaves no file
	// behind.
	WriteFile(dir, filename string, content []byte) (string, int64, error)
}
