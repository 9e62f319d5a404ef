package convert

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"channelprep/internal/channel"
	"channelprep/internal/colorspace"
	"channelprep/internal/raster"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSource(t *testing.T, path string) {
	t.Helper()
	r := raster.New(3, 2)
	r.SetRGB(0, 0, 200, 50, 30)
	r.SetRGB(1, 0, 255, 255, 255)
	r.SetRGB(2, 1, 0, 0, 255)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, raster.Save(path, r))
}

func TestRunWritesReplicatedChannel(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.png")
	dst := filepath.Join(dir, "out", "nested", "in_y.png")
	writeSource(t, src)

	res, err := Run(Job{Src: src, Dst: dst, Channel: colorspace.Y}, Options{})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Width)
	assert.Equal(t, 2, res.Height)

	out, err := raster.Load(dst)
	require.NoError(t, err)
	r, g, b := out.RGBAt(0, 0)
	assert.Equal(t, [3]uint8{92, 92, 92}, [3]uint8{r, g, b})
	r, g, b = out.RGBAt(1, 0)
	assert.Equal(t, [3]uint8{255, 255, 255}, [3]uint8{r, g, b})
}

func TestRunLinearSelector(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.png")
	dst := filepath.Join(dir, "in_b3.png")
	writeSource(t, src)

	_, err := Run(Job{Src: src, Dst: dst, Channel: colorspace.Bb}, Options{Select: channel.SelectLinear})
	require.NoError(t, err)

	out, err := raster.Load(dst)
	require.NoError(t, err)
	v, _, _ := out.RGBAt(2, 1)
	assert.Equal(t, uint8(0), v)
	v, _, _ = out.RGBAt(0, 0)
	assert.Equal(t, uint8(156), v)
}

func TestRunReadErrors(t *testing.T) {
	dir := t.TempDir()
	corrupt := filepath.Join(dir, "corrupt.jpg")
	require.NoError(t, os.WriteFile(corrupt, []byte{0xFF, 0xD8, 0x00}, 0o644))

	for _, src := range []string{corrupt, filepath.Join(dir, "missing.png")} {
		dst := filepath.Join(dir, "out", filepath.Base(src)+".png")
		_, err := Run(Job{Src: src, Dst: dst, Channel: colorspace.Cr}, Options{})

		var re *ImageReadError
		require.True(t, errors.As(err, &re), "got %v", err)
		assert.Equal(t, src, re.Path)
		assert.True(t, IsFileError(err))
		assert.NoFileExists(t, dst)
	}
}

func TestRunWriteError(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.png")
	writeSource(t, src)

	_, err := Run(Job{Src: src, Dst: filepath.Join(dir, "out.xyz"), Channel: colorspace.S}, Options{})

	var we *ImageWriteError
	require.True(t, errors.As(err, &we), "got %v", err)
	assert.True(t, IsFileError(err))
}

func TestRunUnsupportedChannel(t *testing.T) {
	_, err := Run(Job{Src: "does-not-matter.png", Dst: "x.png", Channel: "Z"}, Options{})

	var uce *colorspace.UnsupportedChannelError
	require.True(t, errors.As(err, &uce))
	assert.False(t, IsFileError(err))
}

func TestNamingOutputPath(t *testing.T) {
	tests := []struct {
		name   string
		naming Naming
		rel    string
		want   string
	}{
		{"force png", Naming{Suffix: "_b3"}, filepath.Join("a", "img.JPG"), filepath.Join("out", "a", "img_b3.png")},
		{"keep ext", Naming{Suffix: "_b3", KeepExt: true}, "img.tiff", filepath.Join("out", "img_b3.tiff")},
		{"no suffix", Naming{}, filepath.Join("x", "y", "z.bmp"), filepath.Join("out", "x", "y", "z.png")},
		{"dotted stem", Naming{Suffix: "_s"}, "scan.v2.jpeg", filepath.Join("out", "scan.v2_s.png")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.naming.OutputPath("out", tt.rel))
		})
	}
}
