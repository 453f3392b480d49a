package aurora

import (
	"fmt"
	"os"
	"path"

	"github.com/pkg/errors"
)

// Writer is a surface that can save itself to disk.
type Writer interface {
	WritePNG(fname string) error
}

// VectorWriter additionally supports vector formats.
type VectorWriter interface {
	Writer
	WriteSVG(fname string) error
	WritePDF(fname string) error
}

// SafeWrite noisily saves to tmp file and then moves
func (s Seed) SafeWrite(w Writer, prefix, ext string) error {
	fname := s.GetFilename(prefix, ext)
	if err := safeWrite(fname, func(tmp string) error { return writeSurface(w, tmp, ext) }); err != nil {
		fmt.Printf("Problem saving %s: %v\n", fname, err)
		return err
	}
	fmt.Printf("Saved to %s\n", fname)
	return nil
}

// SafeWriteFile atomically writes data to fname.
func SafeWriteFile(fname string, data []byte) error {
	return safeWrite(fname, func(tmp string) error {
		return os.WriteFile(tmp, data, 0664)
	})
}

func writeSurface(w Writer, fname, ext string) error {
	if ext == ".png" {
		return w.WritePNG(fname)
	}
	vw, ok := w.(VectorWriter)
	if !ok {
		return errors.Errorf("unsupported file format %s for a raster", ext)
	}
	switch ext {
	case ".svg":
		return vw.WriteSVG(fname)
	case ".pdf":
		return vw.WritePDF(fname)
	}
	return errors.Errorf("unsupported file format %s", ext)
}

// safeWrite writes to a temp file then renames atomically
func safeWrite(fname string, write func(tmp string) error) error {
	if err := MaybeCreateDir(path.Dir(fname)); err != nil {
		return err
	}

	// The temp file lives next to fname so the rename stays on one drive.
	ext := path.Ext(fname)
	tmpfile, err := os.CreateTemp(path.Dir(fname), "aurora.*"+ext)
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}
	tmpfile.Close()
	if err := write(tmpfile.Name()); err != nil {
		os.Remove(tmpfile.Name())
		return err
	}
	if err := os.Rename(tmpfile.Name(), fname); err != nil {
		os.Remove(tmpfile.Name())
		return errors.Wrapf(err, "moving to %s", fname)
	}

	return os.Chmod(fname, 0664)
}

// MaybeCreateDir creates dir and its parents if missing.
func MaybeCreateDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0775); err != nil {
		return errors.Wrapf(err, "creating %s", dir)
	}
	return nil
}
