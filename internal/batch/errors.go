package batch

import (
	"errors"
	"fmt"
)

// ErrNoImages is returned when discovery finds no file with an allowed extension.
var ErrNoImages = errors.New("no images found")

// DirectoryNotFoundError reports an input root that is missing or not a directory.
type DirectoryNotFoundError struct {
	Path string
	Err  error // underlying stat error, nil when the path is a file
}

func (e *DirectoryNotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("input directory not found: %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("input directory not found: %s: not a directory", e.Path)
}

func (e *DirectoryNotFoundError) Unwrap() error { return e.Err }
