// Shows the aurora animation in a window. The pointer steers the wind and
// touches the curtains, R records a capture, D saves it, Q or Esc quits.
// With -replay it steps through the frames of a saved capture instead.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"os"
	"time"

	"github.com/peterbourgon/ff/v3"
	"github.com/scottkirkwood/aurora"
	"github.com/scottkirkwood/aurora/internal/session"
	"github.com/scottkirkwood/aurora/internal/xdg"
	"github.com/scottkirkwood/aurora/preset"
	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
)

// tickEvent asks for the next animation frame.
type tickEvent struct{}

// reloadEvent carries presets that changed on disk.
type reloadEvent struct {
	set *preset.Set
}

type options struct {
	seed    string
	preset  string
	presets string
	width   int
	height  int
	scale   int
	fps     int
	out     string
	replay  string
}

func main() {
	fs := flag.NewFlagSet("viewer", flag.ExitOnError)
	var o options
	fs.StringVar(&o.seed, "seed", "", "Hex value for the seed to use")
	fs.StringVar(&o.preset, "preset", "", "Preset name (default from the preset file)")
	fs.StringVar(&o.presets, "presets", "", "Preset file to load and watch (default in the config folder)")
	fs.IntVar(&o.width, "width", 900, "Window width in pixels")
	fs.IntVar(&o.height, "height", 500, "Window height in pixels")
	fs.IntVar(&o.scale, "scale", 1, "Window pixels per canvas pixel")
	fs.IntVar(&o.fps, "fps", 30, "Animation frames per second")
	fs.StringVar(&o.out, "out", xdg.CaptureDir(), "Folder captures are saved to")
	fs.StringVar(&o.replay, "replay", "", "Capture zip to step through instead of animating")
	_ = fs.String("config", "", "Config file with one flag per line")
	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("AURORA"),
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ff.PlainParser),
	); err != nil {
		fmt.Printf("Bad flags: %v\n", err)
		os.Exit(2)
	}
	o.scale = max(1, o.scale)
	o.fps = max(1, o.fps)

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if o.replay != "" {
		replay(o.replay)
		return
	}
	if err := live(o, log); err != nil {
		fmt.Printf("Viewer failed: %v\n", err)
		os.Exit(1)
	}
}

func live(o options, log *slog.Logger) error {
	g, err := aurora.Init(o.seed)
	if err != nil {
		fmt.Printf("Unable to set the seed: %v\n", err)
	}
	if o.presets == "" {
		if o.presets, err = xdg.PresetsFile(); err != nil {
			log.Warn("no config folder", "err", err)
		}
	}
	builtin, err := preset.Defaults()
	if err != nil {
		return err
	}
	set, err := session.LoadPresets(o.presets)
	if err != nil {
		return err
	}
	p, err := set.Get(o.preset)
	if err != nil {
		return err
	}
	sess, err := session.New(p, g.GetSeed(), o.width/o.scale, o.height/o.scale, o.out, log)
	if err != nil {
		return err
	}
	fmt.Printf("Seed %x, preset %s\n", g.GetSeed(), p.Name)

	driver.Main(func(s screen.Screen) {
		w, err := s.NewWindow(&screen.NewWindowOptions{
			Width:  o.width,
			Height: o.height,
			Title:  "aurora",
		})
		if err != nil {
			fmt.Println(err)
			return
		}
		defer w.Release()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go tick(ctx, w, time.Second/time.Duration(o.fps))
		if o.presets != "" {
			go func() {
				err := preset.Watch(ctx, o.presets, builtin, func(set *preset.Set) {
					w.Send(reloadEvent{set})
				}, log)
				if err != nil {
					log.Warn("presets not watched", "err", err)
				}
			}()
		}

		var b screen.Buffer
		defer func() {
			if b != nil {
				b.Release()
			}
		}()
		var sz size.Event
		for {
			switch e := w.NextEvent().(type) {
			case tickEvent:
				sess.Step(time.Now())
				w.Send(paint.Event{})

			case reloadEvent:
				p, err := e.set.Get(sess.Preset().Name)
				if err != nil {
					log.Warn("preset gone after reload", "err", err)
					continue
				}
				if err := sess.Apply(p); err != nil {
					log.Warn("preset not applied", "err", err)
				}

			case key.Event:
				if e.Direction != key.DirPress {
					continue
				}
				if e.Code == key.CodeEscape || sess.Key(e.Rune, time.Now()) {
					return
				}

			case mouse.Event:
				sess.MoveCursor(float64(e.X)/float64(o.scale), float64(e.Y)/float64(o.scale))

			case size.Event:
				sz = e
				if sz.WidthPx == 0 || sz.HeightPx == 0 {
					continue
				}
				sess.Resize(sz.WidthPx/o.scale, sz.HeightPx/o.scale)
				if b != nil {
					b.Release()
				}
				if b, err = s.NewBuffer(sz.Size()); err != nil {
					fmt.Println(err)
					return
				}

			case paint.Event:
				if b == nil {
					continue
				}
				img := sess.Image()
				xdraw.BiLinear.Scale(b.RGBA(), b.Bounds(), img, img.Bounds(), xdraw.Src, nil)
				w.Upload(image.Point{}, b, b.Bounds())
				w.Publish()

			case lifecycle.Event:
				if e.To == lifecycle.StageDead {
					return
				}

			case error:
				fmt.Printf("Screen error: %v\n", e)
				return
			}
		}
	})
	return nil
}

// tick asks the window for a frame every interval until ctx is done.
func tick(ctx context.Context, w screen.Window, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			w.Send(tickEvent{})
		}
	}
}

// replay shows the frames of a capture archive; the arrows step through them.
func replay(fname string) {
	names, imgs, err := aurora.DecodeArchive(fname)
	if err != nil {
		fmt.Printf("Unable to read %s: %v\n", fname, err)
		return
	}
	if len(imgs) == 0 {
		fmt.Printf("No frames in %s\n", fname)
		return
	}

	driver.Main(func(s screen.Screen) {
		rect := imgs[0].Bounds()
		winSize := image.Point{min(rect.Dx(), 1000), min(rect.Dy(), 768)}

		w, err := s.NewWindow(&screen.NewWindowOptions{
			Width:  winSize.X,
			Height: winSize.Y,
			Title:  aurora.Basename(fname),
		})
		if err != nil {
			fmt.Println(err)
			return
		}
		defer w.Release()

		b, err := s.NewBuffer(rect.Size())
		if err != nil {
			fmt.Println(err)
			return
		}
		defer b.Release()

		var sz size.Event
		var i int // index of frame to display
		for {
			switch e := w.NextEvent().(type) {
			case key.Event:
				if e.Direction != key.DirPress {
					continue
				}
				switch e.Code {
				case key.CodeEscape, key.CodeQ:
					return
				case key.CodeRightArrow:
					i = (i + 1) % len(imgs)
				case key.CodeLeftArrow:
					i = (i + len(imgs) - 1) % len(imgs)
				default:
					continue
				}
				fmt.Printf("%s\n", names[i])
				w.Send(paint.Event{})

			case paint.Event:
				img := imgs[i]
				xdraw.Copy(b.RGBA(), image.Point{}, img, img.Bounds(), xdraw.Src, nil)
				dp := aurora.VpCenter(img, sz.WidthPx, sz.HeightPx)
				if dp != (image.Point{}) {
					w.Fill(sz.Bounds(), color.Black, xdraw.Src)
				}
				w.Upload(dp, b, img.Bounds().Sub(img.Bounds().Min))
				w.Publish()

			case size.Event:
				sz = e

			case lifecycle.Event:
				if e.To == lifecycle.StageDead {
					return
				}

			case error:
				fmt.Printf("Screen error: %v\n", e)
				return
			}
		}
	})
}
