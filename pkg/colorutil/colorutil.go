// Package colorutil provides per-pixel colour model formulas shared by the
// channel transforms.
//
// All functions take 8-bit RGB samples and return float32 values in display
// range (0-255) before quantization. Every operation is rounded to float32
// on its own, so results match a float32 array pipeline bit for bit. Use
// ToUint8 to clip and truncate.
package colorutil

import (
	"math"
)

// Epsilon guards the degenerate denominators of the HSI formulas
// (pure black for saturation, R=G=B for hue).
const Epsilon float32 = 1e-6

const twoPi = float32(2 * math.Pi)

// The explicit float32 conversions around products keep the compiler from
// fusing them into the following add.

// RGBToYCbCr converts RGB (0-255) to luma and the two colour-difference
// signals. Cb and Cr are centred on 128 and computed from the unclipped Y.
func RGBToYCbCr(r, g, b uint8) (y, cb, cr float32) {
	rf, gf, bf := float32(r), float32(g), float32(b)

	y = float32(0.299*rf) + float32(0.587*gf)
	y += float32(0.114 * bf)
	cb = float32(0.564*(bf-y)) + 128
	cr = float32(0.713*(rf-y)) + 128

	return y, cb, cr
}

// RGBToHSI converts RGB (0-255) to hue, saturation and intensity, each scaled
// to 0-255. Hue is the geometric angle normalized by 2π.
func RGBToHSI(r, g, b uint8) (h, s, i float32) {
	rf := float32(r) / 255
	gf := float32(g) / 255
	bf := float32(b) / 255

	sum := rf + gf + bf
	i = sum / 3

	minC := min(rf, gf, bf)
	s = 1 - float32((3/(sum+Epsilon))*minC)

	num := 0.5 * ((rf - gf) + (rf - bf))
	den := float32((rf-gf)*(rf-gf)) + float32((rf-bf)*(gf-bf))
	den = float32(math.Sqrt(float64(den))) + Epsilon
	theta := float32(math.Acos(float64(Clamp(num/den, -1, 1))))

	h = theta
	if bf > gf {
		h = twoPi - theta
	}
	h /= twoPi

	return h * 255, s * 255, i * 255
}

// RGBToLinearLab applies the linear lightness/chroma approximation.
// It is not CIELAB: a and b are offset by 128 and nothing is gamma corrected.
func RGBToLinearLab(r, g, b uint8) (l, a, bb float32) {
	rf, gf, bf := float32(r), float32(g), float32(b)

	l = float32(0.213*rf) + float32(0.715*gf)
	l += float32(0.072 * bf)
	a = float32(0.326*rf) - float32(0.499*gf)
	a += float32(0.173 * bf)
	a += 128
	bb = float32(0.122*rf) + float32(0.379*gf)
	bb -= float32(0.500 * bf)
	bb += 128

	return l, a, bb
}

// ToUint8 clips v to [0, 255] and truncates toward zero.
// NaN maps to 0.
func ToUint8(v float32) uint8 {
	if math.IsNaN(float64(v)) {
		return 0
	}
	return uint8(Clamp(v, 0, 255))
}

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
