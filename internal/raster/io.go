package raster

import (
	"bufio"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// JPEGQuality is used when a destination path asks for JPEG output.
const JPEGQuality = 95

// Load decodes the image at path into a Raster.
func Load(path string) (*Raster, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(bufio.NewReader(file))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	return FromImage(img), nil
}

// Save encodes r to path, choosing the format from the file extension.
// PNG, BMP and TIFF are lossless; JPEG uses JPEGQuality.
func Save(path string, r *Raster) (err error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !IsWritableFormat(ext) {
		return fmt.Errorf("unsupported output format %q", ext)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create image: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close image: %w", cerr)
		}
	}()

	w := bufio.NewWriter(file)
	img := r.Image()

	switch ext {
	case ".png":
		err = png.Encode(w, img)
	case ".jpg", ".jpeg":
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: JPEGQuality})
	case ".bmp":
		err = bmp.Encode(w, img)
	case ".tif", ".tiff":
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	}
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", ext, err)
	}

	return w.Flush()
}

// WritableFormats returns the extensions Save can encode.
func WritableFormats() []string {
	return []string{".png", ".jpg", ".jpeg", ".bmp", ".tif", ".tiff"}
}

// IsWritableFormat checks if the given path or extension can be encoded.
func IsWritableFormat(path string) bool {
	return hasExt(path, WritableFormats())
}

func hasExt(path string, formats []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, format := range formats {
		if ext == format {
			return true
		}
	}
	return false
}
