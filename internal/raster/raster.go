// Package raster provides the 8-bit RGB raster and single-channel plane types
// used by the channel transforms, plus image file loading and saving.
package raster

import (
	"image"
	"image/color"

	"gonum.org/v1/gonum/stat"
)

// Raster is an 8-bit, 3-channel image with interleaved R,G,B samples in
// row-major order (3 bytes per pixel, no padding).
type Raster struct {
	Width  int
	Height int
	Pix    []uint8 // len = Width * Height * 3
}

// New allocates a zeroed raster.
func New(width, height int) *Raster {
	return &Raster{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*3),
	}
}

// FromImage copies any image.Image into a Raster. Alpha is dropped without
// compositing, so a transparent pixel keeps its stored colour.
func FromImage(img image.Image) *Raster {
	bounds := img.Bounds()
	r := New(bounds.Dx(), bounds.Dy())

	switch src := img.(type) {
	case *image.NRGBA:
		for y := 0; y < r.Height; y++ {
			row := src.Pix[src.PixOffset(bounds.Min.X, bounds.Min.Y+y):]
			for x := 0; x < r.Width; x++ {
				copy(r.Pix[(y*r.Width+x)*3:], row[x*4:x*4+3])
			}
		}
	case *image.Gray:
		for y := 0; y < r.Height; y++ {
			row := src.Pix[src.PixOffset(bounds.Min.X, bounds.Min.Y+y):]
			for x := 0; x < r.Width; x++ {
				v := row[x]
				i := (y*r.Width + x) * 3
				r.Pix[i], r.Pix[i+1], r.Pix[i+2] = v, v, v
			}
		}
	default:
		for y := 0; y < r.Height; y++ {
			for x := 0; x < r.Width; x++ {
				c := color.NRGBAModel.Convert(img.At(x+bounds.Min.X, y+bounds.Min.Y)).(color.NRGBA)
				r.SetRGB(x, y, c.R, c.G, c.B)
			}
		}
	}

	return r
}

// BGR returns a copy of the pixel data in B,G,R order.
func (r *Raster) BGR() []uint8 {
	out := make([]uint8, len(r.Pix))
	for i := 0; i < len(r.Pix); i += 3 {
		out[i], out[i+1], out[i+2] = r.Pix[i+2], r.Pix[i+1], r.Pix[i]
	}
	return out
}

// RGBAt returns the samples at (x, y).
func (r *Raster) RGBAt(x, y int) (uint8, uint8, uint8) {
	i := (y*r.Width + x) * 3
	return r.Pix[i], r.Pix[i+1], r.Pix[i+2]
}

// SetRGB stores the samples at (x, y).
func (r *Raster) SetRGB(x, y int, red, green, blue uint8) {
	i := (y*r.Width + x) * 3
	r.Pix[i], r.Pix[i+1], r.Pix[i+2] = red, green, blue
}

// Image converts the raster to an opaque *image.NRGBA for encoding.
func (r *Raster) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, r.Width, r.Height))
	for p := 0; p < r.Width*r.Height; p++ {
		copy(img.Pix[p*4:p*4+3], r.Pix[p*3:p*3+3])
		img.Pix[p*4+3] = 255
	}
	return img
}

// Plane extracts channel c (0=R, 1=G, 2=B).
func (r *Raster) Plane(c int) *Plane {
	p := NewPlane(r.Width, r.Height)
	for i := range p.Pix {
		p.Pix[i] = r.Pix[i*3+c]
	}
	return p
}

// Plane is a single 8-bit channel.
type Plane struct {
	Width  int
	Height int
	Pix    []uint8 // len = Width * Height
}

// NewPlane allocates a zeroed plane.
func NewPlane(width, height int) *Plane {
	return &Plane{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height),
	}
}

// Replicate copies the plane into all three channels of a new raster.
func (p *Plane) Replicate() *Raster {
	r := New(p.Width, p.Height)
	for i, v := range p.Pix {
		r.Pix[i*3], r.Pix[i*3+1], r.Pix[i*3+2] = v, v, v
	}
	return r
}

// Stats returns the mean and standard deviation of the plane samples.
func (p *Plane) Stats() (mean, stdDev float64) {
	if len(p.Pix) == 0 {
		return 0, 0
	}
	vals := make([]float64, len(p.Pix))
	for i, v := range p.Pix {
		vals[i] = float64(v)
	}
	if len(vals) == 1 {
		return vals[0], 0
	}
	return stat.MeanStdDev(vals, nil)
}
