// Package capture records timed PNG snapshots of a canvas and packages them
// into a single uncompressed zip once the run is complete.
//
// A Recorder is driven from the frame loop: Start arms it, Tick takes the
// snapshots that are due, and once the target count is reached the encode
// tasks are joined in the background and the archive becomes Ready.
// Every method must be called from the frame loop goroutine.
package capture

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"log/slog"
	"math"
	"time"

	"github.com/pkg/errors"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrRecording is returned by Start while a capture is running.
	ErrRecording = errors.New("capture already running")
	// ErrNotReady is returned by Take when no archive is waiting.
	ErrNotReady = errors.New("no archive ready")
	// ErrNoCanvas is returned when there is nothing to snapshot.
	ErrNoCanvas = errors.New("canvas not initialised")
)

// maxCatchUp bounds the snapshots taken in a single Tick after a stall.
const maxCatchUp = 3

// Config sets the capture rate and length.
type Config struct {
	FPS     float64 `yaml:"fps"`
	Seconds float64 `yaml:"seconds"`
	Prefix  string  `yaml:"prefix"`
}

// DefaultConfig is 5 seconds at 5 frames per second.
func DefaultConfig() Config {
	return Config{FPS: 5, Seconds: 5, Prefix: "aurora"}
}

// Validate checks the capture settings.
func (c Config) Validate() error {
	switch {
	case c.FPS <= 0:
		return errors.Errorf("capture fps must be positive, got %v", c.FPS)
	case c.Seconds <= 0:
		return errors.Errorf("capture seconds must be positive, got %v", c.Seconds)
	case c.Prefix == "":
		return errors.New("capture prefix must not be empty")
	}
	return nil
}

// TargetFrames is the number of snapshots in a full run, at least one.
func (c Config) TargetFrames() int {
	return max(1, int(math.Round(c.FPS*c.Seconds)))
}

// Interval is the time between snapshots.
func (c Config) Interval() time.Duration {
	return time.Duration(float64(time.Second) / c.FPS)
}

// Canvas is anything whose current pixels can be read.
type Canvas interface {
	Image() image.Image
}

type result struct {
	data []byte
	err  error
}

// Recorder runs one capture at a time.
type Recorder struct {
	cfg  Config // settings of the current or last run
	want Config // settings for the next Start
	log  *slog.Logger

	recording bool
	captured  int
	target    int
	next      time.Time

	group  *errgroup.Group
	gctx   context.Context
	cancel context.CancelFunc
	frames [][]byte

	done  chan result
	ready []byte
}

// New returns an idle recorder.
func New(cfg Config, log *slog.Logger) *Recorder {
	if log == nil {
		log = slog.Default()
	}
	return &Recorder{cfg: cfg, want: cfg, log: log}
}

// SetConfig changes the settings used from the next Start on. A run in
// progress, or an archive still being built, keeps the settings it began with.
func (r *Recorder) SetConfig(cfg Config) {
	r.want = cfg
}

// Config returns the settings of the current or last run.
func (r *Recorder) Config() Config {
	return r.cfg
}

// Pending reports whether snapshots are done but the archive is still being built.
func (r *Recorder) Pending() bool {
	return r.done != nil
}

// Recording reports whether snapshots are still being taken.
func (r *Recorder) Recording() bool {
	return r.recording
}

// Captured is the number of snapshots taken in the current or last run.
func (r *Recorder) Captured() int {
	return r.captured
}

// Target is the number of snapshots the current or last run aims for.
func (r *Recorder) Target() int {
	return r.target
}

// Start begins a capture; the first snapshot is due immediately.
func (r *Recorder) Start(now time.Time) error {
	if r.recording {
		return ErrRecording
	}
	r.reset()
	r.cfg = r.want
	ctx, cancel := context.WithCancel(context.Background())
	r.group, r.gctx = errgroup.WithContext(ctx)
	r.cancel = cancel
	r.target = r.cfg.TargetFrames()
	r.frames = make([][]byte, r.target)
	r.next = now
	r.recording = true
	r.log.Info("capture started", "frames", r.target, "fps", r.cfg.FPS)
	return nil
}

// Tick takes the snapshots due at now and reports whether this call
// completed the run. Snapshot failures abort the capture only.
func (r *Recorder) Tick(now time.Time, c Canvas) bool {
	if !r.recording {
		return false
	}
	for safety := 0; r.captured < r.target && !now.Before(r.next) && safety < maxCatchUp; safety++ {
		if err := r.snapshot(c); err != nil {
			r.log.Error("capture aborted", "frame", r.captured, "err", err)
			r.Cancel()
			return false
		}
		r.captured++
		r.next = r.next.Add(r.cfg.Interval())
	}
	if r.captured < r.target {
		return false
	}
	r.log.Info("capture complete, zipping", "frames", r.captured)
	r.finish()
	return true
}

// snapshot copies the canvas and queues its PNG encode.
func (r *Recorder) snapshot(c Canvas) error {
	if c == nil {
		return ErrNoCanvas
	}
	src := c.Image()
	if src == nil {
		return ErrNoCanvas
	}
	img := image.NewRGBA(src.Bounds())
	xdraw.Copy(img, img.Bounds().Min, src, src.Bounds(), xdraw.Src, nil)

	index := r.captured
	frames, gctx := r.frames, r.gctx
	r.group.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return errors.Wrapf(err, "encoding frame %d", index)
		}
		frames[index] = buf.Bytes()
		return nil
	})
	return nil
}

// finish joins the encode queue and builds the archive in the background.
func (r *Recorder) finish() {
	r.recording = false
	group, frames, prefix, cancel := r.group, r.frames, r.cfg.Prefix, r.cancel
	done := make(chan result, 1)
	r.done = done
	go func() {
		defer cancel()
		if err := group.Wait(); err != nil {
			done <- result{err: err}
			return
		}
		var buf bytes.Buffer
		if err := WriteArchive(&buf, prefix, frames); err != nil {
			done <- result{err: err}
			return
		}
		done <- result{data: buf.Bytes()}
	}()
}

// Ready reports whether an archive is waiting, collecting a finished
// background build if there is one.
func (r *Recorder) Ready() bool {
	if r.ready != nil {
		return true
	}
	if r.done == nil {
		return false
	}
	select {
	case res := <-r.done:
		r.done = nil
		if res.err != nil {
			r.log.Error("capture failed", "err", res.err)
			return false
		}
		r.ready = res.data
		r.log.Info("archive ready", "bytes", len(res.data))
		return true
	default:
		return false
	}
}

// Peek returns the ready archive and keeps it.
func (r *Recorder) Peek() ([]byte, error) {
	if !r.Ready() {
		r.log.Warn("no archive ready yet")
		return nil, ErrNotReady
	}
	return r.ready, nil
}

// Take hands over the ready archive and forgets it.
func (r *Recorder) Take() ([]byte, error) {
	data, err := r.Peek()
	if err != nil {
		return nil, err
	}
	r.ready = nil
	return data, nil
}

// Wait blocks until the pending archive is built, or ctx is done.
func (r *Recorder) Wait(ctx context.Context) ([]byte, error) {
	if r.ready != nil {
		return r.Take()
	}
	if r.done == nil {
		return nil, ErrNotReady
	}
	select {
	case res := <-r.done:
		r.done = nil
		if res.err != nil {
			return nil, res.err
		}
		r.ready = res.data
		return r.Take()
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Cancel drops any queued snapshots and resets the counters.
// A previously finished archive stays available.
func (r *Recorder) Cancel() {
	if r.cancel != nil && r.recording {
		r.cancel()
	}
	r.recording = false
	r.captured = 0
	r.frames = nil
	r.group = nil
	r.gctx = nil
}

func (r *Recorder) reset() {
	r.captured = 0
	r.target = 0
	r.frames = nil
	r.group = nil
	r.gctx = nil
	r.cancel = nil
}
