// Package writer persists generated files without destroying what was
// there before.
package writer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

// ErrWriteFailed wraps every filesystem failure during Write.
var ErrWriteFailed = errors.New("failed to write file")

// Writer replaces files, first copying any existing file to
// "<path>.backup.<unix millis>".
type Writer struct {
	now func() time.Time
	log zerolog.Logger
}

func New(log zerolog.Logger) *Writer {
	return &Writer{now: time.Now, log: log}
}

// Result describes a completed write. BackupPath is empty when nothing was
// backed up.
type Result struct {
	Path       string
	BackupPath string
}

// Write stores content at path. The parent directory is created if needed.
// If a file already exists it is backed up before the target is touched.
// The new content goes to a temporary sibling that is renamed over path, so
// readers see either the old file or the complete new one.
func (w *Writer) Write(path string, content string) (*Result, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, failed("creating directory "+dir, err)
	}

	res := &Result{Path: path}
	mode := fs.FileMode(0o644)

	info, err := os.Stat(path)
	switch {
	case err == nil:
		if info.IsDir() {
			return nil, failed("checking "+path, errors.New("is a directory"))
		}
		mode = info.Mode().Perm()
		backup, err := w.backup(path, mode)
		if err != nil {
			return nil, err
		}
		res.BackupPath = backup
		w.log.Info().Str("path", path).Str("backup", backup).Msg("backed up existing file")
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, failed("checking "+path, err)
	}

	if err := replace(path, []byte(content), mode); err != nil {
		return nil, err
	}
	return res, nil
}

func (w *Writer) backup(path string, mode fs.FileMode) (string, error) {
	old, err := os.ReadFile(path)
	if err != nil {
		return "", failed("reading "+path, err)
	}
	backup := path + ".backup." + strconv.FormatInt(w.now().UnixMilli(), 10)
	if err := os.WriteFile(backup, old, mode); err != nil {
		return "", failed("writing backup "+backup, err)
	}
	return backup, nil
}

func replace(path string, data []byte, mode fs.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return failed("creating temp file for "+path, err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return failed("writing "+tmpName, err)
	}
	if err := tmp.Chmod(mode); err != nil {
		_ = tmp.Close()
		return failed("setting mode on "+tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return failed("closing "+tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return failed("renaming into "+path, err)
	}
	return nil
}

func failed(step string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrWriteFailed, step, err)
}
