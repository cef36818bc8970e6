package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// ErrNotApplicable is returned by readers that have no notion of file
// modification times, such as embedded asset bundles.
var ErrNotApplicable = errors.New("assets: modification time not applicable")

// FileReaderError reports a failed timestamp query.
type FileReaderError struct {
	Path string
	Err  error
}

func (e *FileReaderError) Error() string {
	return fmt.Sprintf("assets: stat %s: %v", e.Path, e.Err)
}

func (e *FileReaderError) Unwrap() error {
	return e.Err
}

// FileReader answers modification-time queries for asset paths. Both
// ErrNotApplicable and *FileReaderError mean the timestamp is unknown.
type FileReader interface {
	ModTime(path string) (time.Time, error)
}

// OSFileReader resolves paths against a directory on the local filesystem.
type OSFileReader struct {
	Root string
}

func (r OSFileReader) ModTime(path string) (time.Time, error) {
	full := path
	if r.Root != "" && !filepath.IsAbs(path) {
		full = filepath.Join(r.Root, path)
	}
	info, err := os.Stat(full)
	if err != nil {
		return time.Time{}, &FileReaderError{Path: path, Err: err}
	}
	return info.ModTime(), nil
}

// FSFileReader queries timestamps through an fs.FS. Paths use forward
// slashes, as required by io/fs.
type FSFileReader struct {
	FS fs.FS
}

func (r FSFileReader) ModTime(path string) (time.Time, error) {
	info, err := fs.Stat(r.FS, path)
	if err != nil {
		return time.Time{}, &FileReaderError{Path: path, Err: err}
	}
	return info.ModTime(), nil
}

// NopFileReader never knows a timestamp.
type NopFileReader struct{}

func (NopFileReader) ModTime(string) (time.Time, error) {
	return time.Time{}, ErrNotApplicable
}
