package colorspace

import (
	"channelprep/internal/raster"
	"channelprep/pkg/colorutil"
)

// pixelFunc maps one RGB pixel to a float triple in display range.
type pixelFunc func(r, g, b uint8) (float32, float32, float32)

// apply evaluates fn on every pixel and quantizes the three results into
// separate planes.
func apply(src *raster.Raster, fn pixelFunc) [3]*raster.Plane {
	var out [3]*raster.Plane
	for i := range out {
		out[i] = raster.NewPlane(src.Width, src.Height)
	}

	for p := 0; p < src.Width*src.Height; p++ {
		i := p * 3
		c0, c1, c2 := fn(src.Pix[i], src.Pix[i+1], src.Pix[i+2])
		out[0].Pix[p] = colorutil.ToUint8(c0)
		out[1].Pix[p] = colorutil.ToUint8(c1)
		out[2].Pix[p] = colorutil.ToUint8(c2)
	}

	return out
}

// YCbCr returns the Y, Cb and Cr planes.
func YCbCr(src *raster.Raster) (y, cb, cr *raster.Plane) {
	p := apply(src, colorutil.RGBToYCbCr)
	return p[0], p[1], p[2]
}

// HSI returns the H, S and I planes. All three are always computed.
func HSI(src *raster.Raster) (h, s, i *raster.Plane) {
	p := apply(src, colorutil.RGBToHSI)
	return p[0], p[1], p[2]
}

// LinearLab returns L, a and b from the linear lightness/chroma
// approximation. It differs from the OpenCV Lab conversion and the two must
// not be substituted for each other.
func LinearLab(src *raster.Raster) (l, a, b *raster.Plane) {
	p := apply(src, colorutil.RGBToLinearLab)
	return p[0], p[1], p[2]
}

// RGB splits the raster into its R, G and B planes.
func RGB(src *raster.Raster) (r, g, b *raster.Plane) {
	return src.Plane(0), src.Plane(1), src.Plane(2)
}

// Triple selects the plane for c from a family triple.
func Triple(c Channel, p0, p1, p2 *raster.Plane) *raster.Plane {
	return [3]*raster.Plane{p0, p1, p2}[c.Index()]
}
