package crawler

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DocSuffix is the filename suffix that marks a documentation file.
const DocSuffix = "llms.txt"

// ErrNotDirectory is wrapped by a FilesystemError when the root is a file.
var ErrNotDirectory = errors.New("not a directory")

// FilesystemError reports a root directory that cannot be scanned.
// It is the only error that aborts a run.
type FilesystemError struct {
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("scan %s: %v", e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error {
	return e.Err
}

// SkippedDir is a subdirectory that could not be read during discovery.
type SkippedDir struct {
	Path string
	Err  error
}

// Discover walks root recursively and returns every regular file whose name
// ends with DocSuffix. Unreadable subdirectories are skipped and returned
// alongside the files; only a missing or unreadable root is an error.
// Symlinked directories are not followed.
func Discover(root string) ([]string, []SkippedDir, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, nil, &FilesystemError{Path: root, Err: err}
	}
	if !info.IsDir() {
		return nil, nil, &FilesystemError{Path: root, Err: ErrNotDirectory}
	}

	var files []string
	var skipped []SkippedDir

	walkErr := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			skipped = append(skipped, SkippedDir{Path: path, Err: err})
			if entry != nil && entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.IsDir() || !strings.HasSuffix(entry.Name(), DocSuffix) {
			return nil
		}
		if isRegularFile(path, entry) {
			files = append(files, path)
		}
		return nil
	})
	if walkErr != nil {
		return nil, nil, &FilesystemError{Path: root, Err: walkErr}
	}

	return files, skipped, nil
}

// isRegularFile reports whether entry is a regular file, resolving symlinks.
func isRegularFile(path string, entry fs.DirEntry) bool {
	if entry.Type().IsRegular() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
