package client

import (
	"path/filepath"

	"github.com/spf13/afero"
)

// UploadFs resolves the configured upload directory to an absolute path and
// ensures it exists before the server starts taking requests.
func UploadFs(fs afero.Fs, dir string) (string, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	if err := fs.MkdirAll(root, 0o750); err != nil {
		return "", err
	}
	return root, nil
}
