package artifact

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// ErrUnsafePath is returned for file names that would escape the target directory.
var ErrUnsafePath = errors.New("unsafe artifact path")

// Writer puts text artifacts on disk. Files are overwritten in place; there
// is no temp-file-and-rename step.
type Writer struct {
	logger *zap.Logger
}

// NewWriter creates a Writer. A nil logger discards log output.
func NewWriter(logger *zap.Logger) *Writer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Writer{logger: logger}
}

// Write creates dir (and parents) and writes content to dir/name, returning
// the written path. An empty dir means the working directory.
func (w *Writer) Write(dir, name, content string) (string, error) {
	if !filepath.IsLocal(name) {
		return "", fmt.Errorf("%w: %q", ErrUnsafePath, name)
	}
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	w.logger.Debug("artifact written", zap.String("path", path), zap.Int("bytes", len(content)))
	return path, nil
}
