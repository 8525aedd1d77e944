package inspect

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quaero-icons/internal/pngenc"
	"quaero-icons/internal/raster"
)

func TestLoad_EncodedPNG(t *testing.T) {
	fb, err := raster.Rasterize(16, raster.DefaultStyle())
	require.NoError(t, err)
	data, err := pngenc.EncodeBytes(16, 16, fb.Color)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "icon16.png")
	require.NoError(t, os.WriteFile(path, data, 0644))

	img, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 16, img.Bounds().Dx())
	assert.Equal(t, 16, img.Bounds().Dy())
	assert.Equal(t, fb.Color, img.Pix)
}

func TestLoad_ExtensionIsCaseInsensitive(t *testing.T) {
	fb, err := raster.Rasterize(16, raster.DefaultStyle())
	require.NoError(t, err)
	data, err := pngenc.EncodeBytes(16, 16, fb.Color)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "ICON16.PNG")
	require.NoError(t, os.WriteFile(path, data, 0644))

	_, err = Load(path)
	assert.NoError(t, err)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.png"))
	assert.Error(t, err)

	bmp := filepath.Join(dir, "icon16.bmp")
	require.NoError(t, os.WriteFile(bmp, []byte("BM"), 0644))
	_, err = Load(bmp)
	assert.ErrorContains(t, err, "unsupported format")

	garbage := filepath.Join(dir, "icon16.png")
	require.NoError(t, os.WriteFile(garbage, []byte("not a png"), 0644))
	_, err = Load(garbage)
	assert.ErrorContains(t, err, "decode")
}
