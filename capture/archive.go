package capture

import (
	"fmt"
	"io"
	"time"

	"github.com/klauspost/compress/zip"
	"github.com/pkg/errors"
)

// FrameName is the archive entry name of frame index: prefix_0007.png.
func FrameName(prefix string, index int) string {
	return fmt.Sprintf("%s_%04d.png", prefix, index)
}

// ArchiveName is the file name a finished capture is saved under.
func ArchiveName(prefix string) string {
	return prefix + "_frames.zip"
}

// WriteArchive stores the encoded frames, uncompressed, in a zip written to w.
func WriteArchive(w io.Writer, prefix string, frames [][]byte) error {
	zw := zip.NewWriter(w)
	modified := time.Now()
	for i, data := range frames {
		if data == nil {
			return errors.Errorf("frame %d was never encoded", i)
		}
		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:     FrameName(prefix, i),
			Method:   zip.Store,
			Modified: modified,
		})
		if err != nil {
			return errors.Wrapf(err, "adding frame %d", i)
		}
		if _, err := fw.Write(data); err != nil {
			return errors.Wrapf(err, "writing frame %d", i)
		}
	}
	return errors.Wrap(zw.Close(), "closing archive")
}
