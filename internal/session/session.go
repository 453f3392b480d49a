// Package session is the frame loop shared by the interactive hosts: it owns
// the animation state, the raster the curtains are drawn on and the capture
// recorder, and maps key presses onto them.
package session

import (
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/scottkirkwood/aurora"
	"github.com/scottkirkwood/aurora/anim"
	"github.com/scottkirkwood/aurora/capture"
	"github.com/scottkirkwood/aurora/preset"
)

// LoadPresets returns the built-in presets with fname laid over them.
// A missing fname is not an error; the built-ins are used alone.
func LoadPresets(fname string) (*preset.Set, error) {
	set, err := preset.Defaults()
	if err != nil {
		return nil, err
	}
	if fname == "" {
		return set, nil
	}
	if _, err := os.Stat(fname); os.IsNotExist(err) {
		return set, nil
	}
	return preset.LoadFile(fname, set)
}

// Session is one running animation.
type Session struct {
	log    *slog.Logger
	seed   int64
	outDir string

	preset preset.Preset
	driver *anim.Driver
	state  anim.State
	raster *aurora.Raster
	rec    *capture.Recorder
}

// New builds a session for p on a width x height raster.
func New(p preset.Preset, seed int64, width, height int, outDir string, log *slog.Logger) (*Session, error) {
	d, err := p.Build(seed)
	if err != nil {
		return nil, err
	}
	s := &Session{
		log:    log,
		seed:   seed,
		outDir: outDir,
		preset: p,
		driver: d,
		rec:    capture.New(p.Capture, log),
	}
	s.Resize(width, height)
	return s, nil
}

// Preset returns the bundle in use.
func (s *Session) Preset() preset.Preset {
	return s.preset
}

// State returns the animation state.
func (s *Session) State() *anim.State {
	return &s.state
}

// Image is the current frame; it changes on the next Step.
func (s *Session) Image() image.Image {
	return s.raster.Image()
}

// Recorder exposes the capture state, mostly for status lines.
func (s *Session) Recorder() *capture.Recorder {
	return s.rec
}

// Resize starts a fresh raster; trails do not survive a resize.
func (s *Session) Resize(width, height int) {
	width, height = max(1, width), max(1, height)
	s.state.Resize(float64(width), float64(height))
	s.raster = aurora.NewRaster(width, height, s.driver.BackgroundColor())
}

// MoveCursor records the pointer in raster pixels.
func (s *Session) MoveCursor(x, y float64) {
	s.state.MoveCursor(x, y)
}

// Step draws one frame and takes any capture snapshot due at now.
func (s *Session) Step(now time.Time) {
	s.driver.Draw(s.raster, &s.state)
	s.rec.Tick(now, s.raster)
}

// Apply swaps in a new preset, keeping the clock, pointer and raster.
// Capture settings take effect at the next capture; a running or finishing
// capture keeps its original settings and its archive.
func (s *Session) Apply(p preset.Preset) error {
	d, err := p.Build(s.seed)
	if err != nil {
		return err
	}
	s.preset, s.driver = p, d
	s.rec.SetConfig(p.Capture)
	s.log.Info("preset applied", "preset", p.Name)
	return nil
}

// StartCapture arms a capture unless one is already running.
func (s *Session) StartCapture(now time.Time) {
	if s.rec.Recording() {
		return
	}
	if err := s.rec.Start(now); err != nil {
		s.log.Warn("capture not started", "err", err)
	}
}

// Download saves the ready archive into the output folder. The archive is
// only released once it is on disk, so a failed save can be retried.
func (s *Session) Download() (string, error) {
	data, err := s.rec.Peek()
	if err != nil {
		return "", err
	}
	fname := filepath.Join(s.outDir, capture.ArchiveName(s.rec.Config().Prefix))
	if err := aurora.SafeWriteFile(fname, data); err != nil {
		return "", errors.Wrap(err, "saving archive")
	}
	if _, err := s.rec.Take(); err != nil {
		return "", err
	}
	s.log.Info("archive saved", "file", fname, "bytes", len(data))
	return fname, nil
}

// Key handles a key press and reports whether the host should quit.
// r starts a capture, d saves a ready archive, q quits.
func (s *Session) Key(r rune, now time.Time) (quit bool) {
	switch r {
	case 'r', 'R':
		s.StartCapture(now)
	case 'd', 'D':
		if _, err := s.Download(); err != nil && !errors.Is(err, capture.ErrNotReady) {
			s.log.Error("download failed", "err", err)
		}
	case 'q', 'Q':
		return true
	}
	return false
}
