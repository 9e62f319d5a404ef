// Package detect defines the contract between converted rasters and an
// external object detector. The detector itself lives outside this module;
// the converter only guarantees that what it writes satisfies CheckInput.
package detect

import (
	"context"
	"fmt"

	"channelprep/internal/raster"
	"channelprep/pkg/geometry"
)

// Detection is one detected object.
type Detection struct {
	Box        geometry.Rect `json:"box"`        // pixel coordinates, xmin/ymin at X/Y
	Confidence float64       `json:"confidence"` // 0-1
	Label      string        `json:"label"`
}

// Detector runs object detection on a 3-channel 8-bit raster.
type Detector interface {
	Detect(ctx context.Context, img *raster.Raster) ([]Detection, error)
}

// CheckInput verifies that img satisfies the detector input contract:
// non-empty, 3 channels, 8 bits per sample.
func CheckInput(img *raster.Raster) error {
	if img == nil {
		return fmt.Errorf("nil raster")
	}
	if img.Width <= 0 || img.Height <= 0 {
		return fmt.Errorf("empty raster %dx%d", img.Width, img.Height)
	}
	if want := img.Width * img.Height * 3; len(img.Pix) != want {
		return fmt.Errorf("raster %dx%d has %d samples, want %d for 3 channels", img.Width, img.Height, len(img.Pix), want)
	}
	return nil
}
