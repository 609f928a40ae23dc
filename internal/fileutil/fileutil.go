package fileutil

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const partialMarker = ".partial"

// Exists reports whether path names an existing regular file.
func Exists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err == nil {
		if info.IsDir() {
			return false, fmt.Errorf("%s is a directory", path)
		}
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// PartialPath returns the temporary sibling used while path is being produced.
// The extension is kept last so tools that infer a container from the file
// name (ffmpeg) still work: "talk.mp4" becomes "talk.partial.mp4".
func PartialPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + partialMarker + ext
}

// Commit runs produce against the partial path and renames the result into
// place only when produce succeeds. Any leftover partial file is removed first
// and again on failure, so the final name only ever holds complete output.
func Commit(path string, produce func(tmp string) error) error {
	tmp := PartialPath(path)
	if err := os.Remove(tmp); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove stale %s: %w", tmp, err)
	}
	if err := produce(tmp); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if ok, err := Exists(tmp); err != nil || !ok {
		_ = os.Remove(tmp)
		if err == nil {
			err = fmt.Errorf("%s was not created", tmp)
		}
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}

// WriteFileAtomic writes data to path through Commit.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	return Commit(path, func(tmp string) error {
		return os.WriteFile(tmp, data, perm)
	})
}

// StreamToFile copies r into path through Commit and returns the bytes written.
func StreamToFile(path string, r io.Reader) (int64, error) {
	var written int64
	err := Commit(path, func(tmp string) error {
		out, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			return err
		}
		n, copyErr := io.Copy(out, r)
		written = n
		closeErr := out.Close()
		if copyErr != nil {
			return copyErr
		}
		return closeErr
	})
	return written, err
}
