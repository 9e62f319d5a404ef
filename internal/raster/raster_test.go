package raster

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gradient(w, h int) *Raster {
	r := New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r.SetRGB(x, y, uint8(x*40), uint8(y*60), uint8(x+y))
		}
	}
	return r
}

func TestFromImageDropsAlpha(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 0})
	img.SetNRGBA(1, 0, color.NRGBA{R: 200, G: 100, B: 50, A: 255})

	r := FromImage(img)

	assert.Equal(t, []uint8{10, 20, 30, 200, 100, 50}, r.Pix)
}

func TestFromImageSubImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	img.SetNRGBA(2, 3, color.NRGBA{R: 1, G: 2, B: 3, A: 255})
	sub := img.SubImage(image.Rect(2, 2, 4, 4))

	r := FromImage(sub)

	require.Equal(t, 2, r.Width)
	require.Equal(t, 2, r.Height)
	red, green, blue := r.RGBAt(0, 1)
	assert.Equal(t, [3]uint8{1, 2, 3}, [3]uint8{red, green, blue})
}

func TestFromImageGray(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 1, 1))
	img.SetGray(0, 0, color.Gray{Y: 77})

	assert.Equal(t, []uint8{77, 77, 77}, FromImage(img).Pix)
}

func TestBGR(t *testing.T) {
	r := gradient(3, 2)

	bgr := r.BGR()
	require.Len(t, bgr, len(r.Pix))
	for i := 0; i < len(bgr); i += 3 {
		assert.Equal(t, []uint8{r.Pix[i+2], r.Pix[i+1], r.Pix[i]}, bgr[i:i+3])
	}
}

func TestPlaneAndReplicate(t *testing.T) {
	r := gradient(4, 3)

	g := r.Plane(1)
	out := g.Replicate()

	require.Len(t, out.Pix, 4*3*3)
	for i := 0; i < 4*3; i++ {
		assert.Equal(t, r.Pix[i*3+1], out.Pix[i*3])
		assert.Equal(t, out.Pix[i*3], out.Pix[i*3+1])
		assert.Equal(t, out.Pix[i*3], out.Pix[i*3+2])
	}
}

func TestPlaneStats(t *testing.T) {
	p := &Plane{Width: 4, Height: 1, Pix: []uint8{2, 4, 4, 6}}

	mean, std := p.Stats()
	assert.InDelta(t, 4.0, mean, 1e-9)
	assert.InDelta(t, 1.632993, std, 1e-6)

	mean, std = (&Plane{Width: 1, Height: 1, Pix: []uint8{9}}).Stats()
	assert.Equal(t, 9.0, mean)
	assert.Equal(t, 0.0, std)
}

func TestSaveLoadLossless(t *testing.T) {
	dir := t.TempDir()
	r := gradient(5, 4)

	for _, ext := range []string{".png", ".bmp", ".tif", ".tiff"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(dir, "img"+ext)
			require.NoError(t, Save(path, r))

			got, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, r.Pix, got.Pix)
		})
	}
}

func TestSaveJPEG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "img.JPG")
	require.NoError(t, Save(path, gradient(8, 8)))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8, got.Width)
	assert.Equal(t, 8, got.Height)
}

func TestSaveUnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "img.xyz")

	err := Save(path, gradient(2, 2))
	assert.Error(t, err)
	assert.NoFileExists(t, path)
}

func TestLoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.png")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.png"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestIsWritableFormat(t *testing.T) {
	assert.True(t, IsWritableFormat("a/b/photo.JPEG"))
	assert.True(t, IsWritableFormat("scan.tif"))
	assert.False(t, IsWritableFormat("labels.txt"))
	assert.True(t, IsWritableFormat(".png"))
	assert.False(t, IsWritableFormat(".webp"))
}
