// Package output persists rendered documents.
package output

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ErrWrite is returned when the output file cannot be written.
var ErrWrite = errors.New("failed to write output")

// WriteFile replaces path with data in one step, so readers never see a
// partial document. Missing parent directories are created.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return pkgerrors.Wrapf(ErrWrite, "failed to create directory %s: %v", dir, err)
	}

	if err := renameio.WriteFile(path, data, 0644); err != nil {
		return pkgerrors.Wrapf(ErrWrite, "failed to write %s: %v", path, err)
	}

	logrus.WithFields(logrus.Fields{
		"path":  path,
		"bytes": len(data),
	}).Debug("output written")

	return nil
}
