package aurora

import (
	"fmt"
	"image"
	_ "image/png" // archived frames are PNG
	"sort"
	"time"

	"github.com/klauspost/compress/zip"
	"github.com/pkg/errors"
)

// DecodeArchive opens a zip of captured frames and decodes every entry into
// an image.Image, sorted by entry name. Note that the number of images
// returned may not be the number of entries. Namely, an entry is skipped if
// it cannot be read or decoded into an image type that Go understands.
func DecodeArchive(fname string) ([]string, []image.Image, error) {
	zr, err := zip.OpenReader(fname)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "opening %s", fname)
	}
	defer zr.Close()

	files := make([]*zip.File, 0, len(zr.File))
	for _, f := range zr.File {
		if !f.FileInfo().IsDir() {
			files = append(files, f)
		}
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	names, imgs := decodeEntries(files)
	return names, imgs, nil
}

func decodeEntries(files []*zip.File) ([]string, []image.Image) {
	// A temporary type used to transport decoded images over channels.
	type tmpImage struct {
		img  image.Image
		name string
	}

	// Decode all entries in parallel.
	imgChans := make([]chan tmpImage, len(files))
	for i, f := range files {
		imgChans[i] = make(chan tmpImage)
		go func(i int, f *zip.File) {
			rc, err := f.Open()
			if err != nil {
				fmt.Println(err)
				close(imgChans[i])
				return
			}
			defer rc.Close()

			start := time.Now()
			img, kind, err := image.Decode(rc)
			if err != nil {
				fmt.Printf("Could not decode '%s' into a supported image "+
					"format: %s\n", f.Name, err)
				close(imgChans[i])
				return
			}
			fmt.Printf("Decoded '%s' into image type '%s' (%s).\n",
				f.Name, kind, time.Since(start))

			imgChans[i] <- tmpImage{
				img:  img,
				name: Basename(f.Name),
			}
		}(i, f)
	}

	// Now collect all the decoded images into a slice of names and a slice
	// of images.
	names := make([]string, 0, len(files))
	imgs := make([]image.Image, 0, len(files))
	for _, imgChan := range imgChans {
		if tmpImg, ok := <-imgChan; ok {
			names = append(names, tmpImg.name)
			imgs = append(imgs, tmpImg.img)
		}
	}

	return names, imgs
}

// VpCenter inspects the canvas and image geometry, and determines where the
// origin of the image should be painted into the canvas.
// If the image is bigger than the canvas, this is always (0, 0).
// If the image is the same size, then it is also (0, 0).
// If a dimension of the image is smaller than the canvas, then:
// x = (canvas_width - image_width) / 2 and
// y = (canvas_height - image_height) / 2
func VpCenter(ximg image.Image, canWidth, canHeight int) image.Point {
	xmargin, ymargin := 0, 0
	if ximg.Bounds().Dx() < canWidth {
		xmargin = (canWidth - ximg.Bounds().Dx()) / 2
	}
	if ximg.Bounds().Dy() < canHeight {
		ymargin = (canHeight - ximg.Bounds().Dy()) / 2
	}
	return image.Point{xmargin, ymargin}
}
