package fileutil

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rohmanhakim/rudolf/pkg/failure"
)

// EnsureDir check if a given directory plus the following path exist, then create one if not
func EnsureDir(dir string, path ...string) failure.ClassifiedError {
	targetPath := []string{dir}
	targetPath = append(targetPath, path...)

	fullDir := filepath.Join(targetPath...)
	if err := os.MkdirAll(fullDir, 0755); err != nil {
		return &FileError{
			Message:   fmt.Sprintf("%v", err),
			Retryable: false,
			Cause:     ErrCausePathError,
		}
	}
	return nil
}

// EnsureParentDir creates the directory that will contain filePath.
// A bare file name lives in the working directory, which always exists.
func EnsureParentDir(filePath string) failure.ClassifiedError {
	dir := filepath.Dir(filePath)
	if dir == "." || dir == "" {
		return nil
	}
	return EnsureDir(dir)
}
