package cvlab

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"channelprep/internal/raster"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

func TestLabAchromatic(t *testing.T) {
	r := raster.New(3, 1)
	r.SetRGB(0, 0, 0, 0, 0)
	r.SetRGB(1, 0, 255, 255, 255)
	r.SetRGB(2, 0, 255, 0, 0)

	l, a, b, err := Lab(r)
	require.NoError(t, err)

	assert.Equal(t, uint8(0), l.Pix[0])
	assert.Equal(t, uint8(255), l.Pix[1])
	assert.Equal(t, []uint8{128, 128}, a.Pix[:2])
	assert.Equal(t, []uint8{128, 128}, b.Pix[:2])

	// Pure red sits on the positive a and b axes.
	assert.Greater(t, a.Pix[2], uint8(128))
	assert.Greater(t, b.Pix[2], uint8(128))
}

func TestLabDiffersFromLinear(t *testing.T) {
	r := raster.New(1, 1)
	r.SetRGB(0, 0, 0, 0, 255)

	_, _, b, err := Lab(r)
	require.NoError(t, err)

	// The linear approximation clips blue's b to 0; CIELAB does not reach it.
	assert.NotEqual(t, uint8(0), b.Pix[0])
}

func TestToMatIsBGR(t *testing.T) {
	r := raster.New(2, 2)
	r.SetRGB(1, 1, 9, 99, 199)

	mat, err := toMat(r)
	require.NoError(t, err)
	defer mat.Close()

	assert.Equal(t, gocv.MatTypeCV8UC3, mat.Type())
	assert.Equal(t, uint8(199), mat.GetUCharAt(1, 3))
	assert.Equal(t, uint8(99), mat.GetUCharAt(1, 4))
	assert.Equal(t, uint8(9), mat.GetUCharAt(1, 5))
}

func TestLabEmpty(t *testing.T) {
	l, a, b, err := Lab(raster.New(0, 0))
	require.NoError(t, err)
	assert.Empty(t, l.Pix)
	assert.Empty(t, a.Pix)
	assert.Empty(t, b.Pix)
}

// withOrientation inserts an EXIF APP1 segment carrying the given orientation
// tag right after the JPEG SOI marker.
func withOrientation(t *testing.T, jpg []byte, orientation uint16) []byte {
	t.Helper()
	var tiff bytes.Buffer
	tiff.WriteString("MM")
	// Header, one IFD entry (Orientation, SHORT, count 1), no next IFD.
	for _, v := range []any{
		uint16(0x2a), uint32(8),
		uint16(1),
		uint16(0x0112), uint16(3), uint32(1), orientation, uint16(0),
		uint32(0),
	} {
		require.NoError(t, binary.Write(&tiff, binary.BigEndian, v))
	}
	payload := append([]byte("Exif\x00\x00"), tiff.Bytes()...)

	var out bytes.Buffer
	out.Write(jpg[:2])
	out.Write([]byte{0xff, 0xe1})
	require.NoError(t, binary.Write(&out, binary.BigEndian, uint16(len(payload)+2)))
	out.Write(payload)
	out.Write(jpg[2:])
	return out.Bytes()
}

func TestLoadAppliesOrientation(t *testing.T) {
	// Left half red, right half blue.
	img := image.NewNRGBA(image.Rect(0, 0, 16, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 16; x++ {
			c := color.NRGBA{B: 255, A: 255}
			if x < 8 {
				c = color.NRGBA{R: 255, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	var jpg bytes.Buffer
	require.NoError(t, jpeg.Encode(&jpg, img, &jpeg.Options{Quality: 95}))

	path := filepath.Join(t.TempDir(), "phone.jpg")
	require.NoError(t, os.WriteFile(path, withOrientation(t, jpg.Bytes(), 6), 0o644))

	r, err := Load(path)
	require.NoError(t, err)

	// Orientation 6 is a quarter turn clockwise: the left half ends up on top.
	require.Equal(t, 8, r.Width)
	require.Equal(t, 16, r.Height)
	red, _, blue := r.RGBAt(4, 2)
	assert.Greater(t, red, blue)
	red, _, blue = r.RGBAt(4, 13)
	assert.Greater(t, blue, red)
}

func TestLoadLossless(t *testing.T) {
	src := raster.New(3, 2)
	src.SetRGB(0, 0, 200, 50, 30)
	src.SetRGB(2, 1, 9, 99, 199)
	path := filepath.Join(t.TempDir(), "in.png")
	require.NoError(t, raster.Save(path, src))

	r, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, src, r)
}

func TestLoadFallsBackToGoDecoders(t *testing.T) {
	dir := t.TempDir()

	pal := image.NewPaletted(image.Rect(0, 0, 5, 4), color.Palette{color.Black, color.White})
	var buf bytes.Buffer
	require.NoError(t, gif.Encode(&buf, pal, nil))
	gifPath := filepath.Join(dir, "anim.gif")
	require.NoError(t, os.WriteFile(gifPath, buf.Bytes(), 0o644))

	r, err := Load(gifPath)
	require.NoError(t, err)
	assert.Equal(t, 5, r.Width)
	assert.Equal(t, 4, r.Height)

	_, err = Load(filepath.Join(dir, "missing.png"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	corrupt := filepath.Join(dir, "corrupt.jpg")
	require.NoError(t, os.WriteFile(corrupt, []byte("not an image"), 0o644))
	_, err = Load(corrupt)
	assert.Error(t, err)
}
