// Renders aurora curtains without a window: a still frame as PNG, SVG or
// PDF, or a timed capture of frames into a zip.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/peterbourgon/ff/v3"
	"github.com/pkg/errors"
	"github.com/scottkirkwood/aurora"
	"github.com/scottkirkwood/aurora/anim"
	"github.com/scottkirkwood/aurora/capture"
	"github.com/scottkirkwood/aurora/preset"
)

const (
	width  = 900 // pixels
	height = 500 // pixels
	warmup = 300 // frames drawn before a still is taken
)

type options struct {
	seed    string
	preset  string
	presets string
	width   int
	height  int
	frames  int
	ext     string
	capture bool
	out     string
	cursorX float64
	cursorY float64
}

func main() {
	fs := flag.NewFlagSet("borealis", flag.ExitOnError)
	var o options
	fs.StringVar(&o.seed, "seed", "", "Hex value for the seed to use")
	fs.StringVar(&o.preset, "preset", "", "Preset name (default from the preset file)")
	fs.StringVar(&o.presets, "presets", "", "Extra preset file laid over the built-in ones")
	fs.IntVar(&o.width, "width", width, "Canvas width in pixels")
	fs.IntVar(&o.height, "height", height, "Canvas height in pixels")
	fs.IntVar(&o.frames, "frames", warmup, "Frames to run before the still is taken")
	fs.StringVar(&o.ext, "ext", ".png", "Still format: .png, .svg or .pdf")
	fs.BoolVar(&o.capture, "capture", false, "Record a timed capture into a zip instead of a still")
	fs.StringVar(&o.out, "out", "samples", "Output folder")
	fs.Float64Var(&o.cursorX, "cursor-x", -1, "Pretend pointer x, negative for none")
	fs.Float64Var(&o.cursorY, "cursor-y", -1, "Pretend pointer y")
	_ = fs.String("config", "", "Config file with one flag per line")
	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("AURORA"),
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ff.PlainParser),
	); err != nil {
		fmt.Printf("Bad flags: %v\n", err)
		os.Exit(2)
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if err := run(o, log); err != nil {
		fmt.Printf("Unable to render: %v\n", err)
		os.Exit(1)
	}
}

func run(o options, log *slog.Logger) error {
	g, err := aurora.Init(o.seed)
	if err != nil {
		fmt.Printf("Unable to set the seed: %v\n", err)
	}

	set, err := preset.Defaults()
	if err != nil {
		return err
	}
	if o.presets != "" {
		if set, err = preset.LoadFile(o.presets, set); err != nil {
			return err
		}
	}
	p, err := set.Get(o.preset)
	if err != nil {
		return err
	}
	d, err := p.Build(g.GetSeed())
	if err != nil {
		return err
	}

	st := &anim.State{Width: float64(o.width), Height: float64(o.height)}
	if o.cursorX >= 0 {
		st.MoveCursor(o.cursorX, o.cursorY)
	}
	prefix := filepath.Join(o.out, p.Name+"-")

	if o.capture {
		return record(d, st, p.Capture, filepath.Join(o.out, capture.ArchiveName(p.Capture.Prefix)), log)
	}
	if o.ext == ".png" {
		return g.SafeWrite(drawRaster(d, st, o.frames), prefix, o.ext)
	}
	return g.SafeWrite(drawVector(d, st, o.frames), prefix, o.ext)
}

// drawRaster runs the animation so trails build up, then returns the raster.
func drawRaster(d *anim.Driver, st *anim.State, frames int) *aurora.Raster {
	r := aurora.NewRaster(int(st.Width), int(st.Height), d.BackgroundColor())
	for i := 0; i < max(1, frames); i++ {
		d.Draw(r, st)
	}
	return r
}

// drawVector advances the clock without drawing and paints a single frame,
// since a vector canvas keeps every stroke ever drawn.
func drawVector(d *anim.Driver, st *anim.State, frames int) *aurora.Context {
	ctx := aurora.NewContext(st.Width, st.Height)
	ctx.Wash(d.BackgroundColor())
	for i := 1; i < frames; i++ {
		d.Advance(st)
	}
	d.Paint(ctx, d.Advance(st))
	return ctx
}

// record draws frames on a simulated clock at the capture rate until the
// archive is complete, then saves it.
func record(d *anim.Driver, st *anim.State, cfg capture.Config, fname string, log *slog.Logger) error {
	r := aurora.NewRaster(int(st.Width), int(st.Height), d.BackgroundColor())
	rec := capture.New(cfg, log)

	// Let the trails settle before the first snapshot.
	for i := 0; i < warmup/10; i++ {
		d.Draw(r, st)
	}

	now := time.Unix(0, 0)
	step := cfg.Interval()
	if err := rec.Start(now); err != nil {
		return err
	}
	for !rec.Tick(now, r) {
		if !rec.Recording() {
			return errors.Errorf("capture aborted after %d frames", rec.Captured())
		}
		d.Draw(r, st)
		now = now.Add(step)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	data, err := rec.Wait(ctx)
	if err != nil {
		return err
	}
	if err := aurora.SafeWriteFile(fname, data); err != nil {
		return err
	}
	fmt.Printf("Saved %d frames to %s\n", rec.Captured(), fname)
	return nil
}
