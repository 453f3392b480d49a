package main

import (
	"image"
	"image/color"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellStyleStacksPixels(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 3))
	img.Set(1, 0, color.RGBA{R: 200, A: 255})
	img.Set(1, 1, color.RGBA{G: 100, A: 255})
	img.Set(1, 2, color.RGBA{B: 50, A: 255})

	fg, bg, _ := cellStyle(img, 1, 0).Decompose()
	assert.Equal(t, tcell.NewRGBColor(200, 0, 0), fg)
	assert.Equal(t, tcell.NewRGBColor(0, 100, 0), bg)

	// An odd last row repeats its pixel.
	fg, bg, _ = cellStyle(img, 1, 1).Decompose()
	assert.Equal(t, tcell.NewRGBColor(0, 0, 50), fg)
	assert.Equal(t, fg, bg)
}

func TestDrawFillsScreen(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(4, 2)

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, color.RGBA{R: uint8(60 * y), A: 255})
		}
	}
	draw(screen, img)

	mainc, _, style, _ := screen.GetContent(3, 1)
	assert.Equal(t, halfBlock, mainc)
	fg, bg, _ := style.Decompose()
	assert.Equal(t, tcell.NewRGBColor(120, 0, 0), fg)
	assert.Equal(t, tcell.NewRGBColor(180, 0, 0), bg)
}
