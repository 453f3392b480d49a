package aurora

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestArchive(t *testing.T, names ...string) string {
	t.Helper()
	fname := filepath.Join(t.TempDir(), "frames.zip")
	f, err := os.Create(fname)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for i, name := range names {
		w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Store})
		require.NoError(t, err)
		img := image.NewRGBA(image.Rect(0, 0, 3+i, 2))
		img.Set(0, 0, color.RGBA{R: 255, A: 255})
		require.NoError(t, png.Encode(w, img))
	}
	w, err := zw.Create("notes.txt")
	require.NoError(t, err)
	_, err = w.Write([]byte("not an image"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return fname
}

func TestDecodeArchive(t *testing.T) {
	fname := writeTestArchive(t, "aurora_0001.png", "aurora_0000.png")

	names, imgs, err := DecodeArchive(fname)
	require.NoError(t, err)
	assert.Equal(t, []string{"aurora_0000.png", "aurora_0001.png"}, names)
	require.Len(t, imgs, 2)
	assert.Equal(t, 4, imgs[0].Bounds().Dx(), "entries are sorted by name")
}

func TestDecodeArchiveMissing(t *testing.T) {
	_, _, err := DecodeArchive(filepath.Join(t.TempDir(), "nope.zip"))
	assert.Error(t, err)
}

func TestVpCenter(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 20))
	assert.Equal(t, image.Point{5, 0}, VpCenter(img, 20, 10))
	assert.Equal(t, image.Point{0, 0}, VpCenter(img, 10, 20))
}
