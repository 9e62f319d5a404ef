// Package cvlab bridges rasters and OpenCV: colour image reads and the 8-bit
// BGR→Lab conversion (L scaled to 0-255, a and b offset by 128).
package cvlab

import (
	"fmt"

	"channelprep/internal/raster"

	"gocv.io/x/gocv"
)

// Load reads path as an 8-bit BGR colour image through OpenCV, so EXIF
// orientation is applied, alpha is dropped and grayscale is expanded.
// Files OpenCV cannot decode fall back to raster.Load.
func Load(path string) (*raster.Raster, error) {
	mat := gocv.IMRead(path, gocv.IMReadColor)
	defer mat.Close()
	if mat.Empty() {
		return raster.Load(path)
	}
	return fromMat(mat)
}

// fromMat copies a BGR CV_8UC3 Mat into a raster.
func fromMat(mat gocv.Mat) (*raster.Raster, error) {
	if mat.Type() != gocv.MatTypeCV8UC3 {
		return nil, fmt.Errorf("expected CV_8UC3 mat, got type %v", mat.Type())
	}
	bgr := mat.ToBytes()
	r := raster.New(mat.Cols(), mat.Rows())
	if len(bgr) != len(r.Pix) {
		return nil, fmt.Errorf("expected %d BGR bytes for %dx%d, got %d", len(r.Pix), r.Width, r.Height, len(bgr))
	}
	for i := 0; i < len(bgr); i += 3 {
		r.Pix[i], r.Pix[i+1], r.Pix[i+2] = bgr[i+2], bgr[i+1], bgr[i]
	}
	return r, nil
}

// toMat copies a raster into a BGR CV_8UC3 Mat. The caller must Close it.
func toMat(r *raster.Raster) (gocv.Mat, error) {
	mat, err := gocv.NewMatFromBytes(r.Height, r.Width, gocv.MatTypeCV8UC3, r.BGR())
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("creating BGR mat: %w", err)
	}
	return mat, nil
}

// Lab returns the L, a and b planes of r.
func Lab(r *raster.Raster) (l, a, b *raster.Plane, err error) {
	if r.Width == 0 || r.Height == 0 {
		return raster.NewPlane(r.Width, r.Height), raster.NewPlane(r.Width, r.Height), raster.NewPlane(r.Width, r.Height), nil
	}

	bgr, err := toMat(r)
	if err != nil {
		return nil, nil, nil, err
	}
	defer bgr.Close()

	lab := gocv.NewMat()
	defer lab.Close()
	gocv.CvtColor(bgr, &lab, gocv.ColorBGRToLab)

	parts := gocv.Split(lab)
	defer func() {
		for _, p := range parts {
			p.Close()
		}
	}()
	if len(parts) != 3 {
		return nil, nil, nil, fmt.Errorf("expected 3 Lab channels, got %d", len(parts))
	}

	planes := make([]*raster.Plane, 3)
	for i, p := range parts {
		planes[i] = &raster.Plane{Width: r.Width, Height: r.Height, Pix: p.ToBytes()}
	}

	return planes[0], planes[1], planes[2], nil
}
