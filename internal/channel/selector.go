// Package channel picks one derived channel out of an RGB raster and packages
// it as a 3-channel raster with identical planes, the input shape expected by
// 3-channel detectors.
package channel

import (
	"fmt"

	"channelprep/internal/colorspace"
	"channelprep/internal/cvlab"
	"channelprep/internal/raster"
)

// Func converts a raster to the named channel replicated across three planes.
type Func func(src *raster.Raster, c colorspace.Channel) (*raster.Raster, error)

// Select extracts c using the standard transforms, with L, a and b taken
// from OpenCV's CIELAB conversion.
func Select(src *raster.Raster, c colorspace.Channel) (*raster.Raster, error) {
	plane, err := extract(src, c, labOpenCV)
	if err != nil {
		return nil, err
	}
	return plane.Replicate(), nil
}

// SelectLinear is Select with L, a and b taken from the linear
// lightness/chroma approximation instead of CIELAB.
func SelectLinear(src *raster.Raster, c colorspace.Channel) (*raster.Raster, error) {
	plane, err := extract(src, c, labLinear)
	if err != nil {
		return nil, err
	}
	return plane.Replicate(), nil
}

type labFunc func(*raster.Raster) (l, a, b *raster.Plane, err error)

func labOpenCV(src *raster.Raster) (l, a, b *raster.Plane, err error) {
	l, a, b, err = cvlab.Lab(src)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("lab conversion: %w", err)
	}
	return l, a, b, nil
}

func labLinear(src *raster.Raster) (l, a, b *raster.Plane, err error) {
	l, a, b = colorspace.LinearLab(src)
	return l, a, b, nil
}

func extract(src *raster.Raster, c colorspace.Channel, lab labFunc) (*raster.Plane, error) {
	var p0, p1, p2 *raster.Plane

	switch c.Family() {
	case colorspace.FamilyYCbCr:
		p0, p1, p2 = colorspace.YCbCr(src)
	case colorspace.FamilyHSI:
		p0, p1, p2 = colorspace.HSI(src)
	case colorspace.FamilyRGB:
		p0, p1, p2 = colorspace.RGB(src)
	case colorspace.FamilyLab:
		var err error
		p0, p1, p2, err = lab(src)
		if err != nil {
			return nil, err
		}
	default:
		return nil, &colorspace.UnsupportedChannelError{Channel: string(c)}
	}

	return colorspace.Triple(c, p0, p1, p2), nil
}
