package convert

import "fmt"

// ImageReadError reports a source image that is missing, unreadable or corrupt.
type ImageReadError struct {
	Path string
	Err  error
}

func (e *ImageReadError) Error() string {
	return fmt.Sprintf("reading %s: %v", e.Path, e.Err)
}

func (e *ImageReadError) Unwrap() error { return e.Err }

// ImageWriteError reports a failure to create or encode the output image.
type ImageWriteError struct {
	Path string
	Err  error
}

func (e *ImageWriteError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Path, e.Err)
}

func (e *ImageWriteError) Unwrap() error { return e.Err }
