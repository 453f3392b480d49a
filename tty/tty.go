// Shows the aurora animation in a terminal, two pixels per cell using the
// upper half block. Same keys as the window viewer: R records, D saves,
// Q or Esc quits. The mouse steers when the terminal reports it.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/peterbourgon/ff/v3"
	"github.com/scottkirkwood/aurora"
	"github.com/scottkirkwood/aurora/internal/session"
	"github.com/scottkirkwood/aurora/internal/xdg"
)

const halfBlock = '▀'

func main() {
	fs := flag.NewFlagSet("tty", flag.ExitOnError)
	seed := fs.String("seed", "", "Hex value for the seed to use")
	name := fs.String("preset", "", "Preset name (default from the preset file)")
	presets := fs.String("presets", "", "Preset file (default in the config folder)")
	out := fs.String("out", xdg.CaptureDir(), "Folder captures are saved to")
	logFile := fs.String("log", "", "File to log to; the screen is in use")
	fps := fs.Int("fps", 30, "Animation frames per second")
	_ = fs.String("config", "", "Config file with one flag per line")
	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("AURORA"),
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ff.PlainParser),
	); err != nil {
		fmt.Fprintf(os.Stderr, "bad flags: %v\n", err)
		os.Exit(2)
	}

	log := slog.New(slog.DiscardHandler)
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "opening log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log = slog.New(slog.NewTextHandler(f, nil))
	}

	if *presets == "" {
		*presets, _ = xdg.PresetsFile()
	}
	set, err := session.LoadPresets(*presets)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading presets: %v\n", err)
		os.Exit(1)
	}
	p, err := set.Get(*name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	g, err := aurora.Init(*seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "unable to set the seed: %v\n", err)
	}

	s, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "creating screen: %v\n", err)
		os.Exit(1)
	}
	if err := s.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "initializing screen: %v\n", err)
		os.Exit(1)
	}
	defer s.Fini()
	s.Clear()
	s.HideCursor()
	s.EnableMouse()

	width, height := s.Size()
	if width <= 0 || height <= 0 {
		return
	}
	sess, err := session.New(p, g.GetSeed(), width, height*2, *out, log)
	if err != nil {
		s.Fini()
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	run(s, sess, time.Second/time.Duration(max(1, *fps)))
}

// run is the frame loop; it returns when the user quits.
func run(s tcell.Screen, sess *session.Session, frameDelay time.Duration) {
	events := make(chan tcell.Event, 10)
	go func() {
		for {
			ev := s.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				switch ev.Key() {
				case tcell.KeyEscape, tcell.KeyCtrlC:
					return
				case tcell.KeyRune:
					if sess.Key(ev.Rune(), time.Now()) {
						return
					}
				}
			case *tcell.EventMouse:
				x, y := ev.Position()
				sess.MoveCursor(float64(x)+0.5, float64(y*2)+1)
			case *tcell.EventResize:
				width, height := s.Size()
				if width <= 0 || height <= 0 {
					return
				}
				sess.Resize(width, height*2)
				s.Sync()
			}
		default:
		}

		sess.Step(time.Now())
		draw(s, sess.Image())
		status(s, sess)
		s.Show()
		time.Sleep(frameDelay)
	}
}

// draw paints img onto the screen, one cell per two stacked pixels.
func draw(s tcell.Screen, img image.Image) {
	width, height := s.Size()
	b := img.Bounds()
	for row := 0; row < height && 2*row < b.Dy(); row++ {
		for col := 0; col < width && col < b.Dx(); col++ {
			s.SetContent(col, row, halfBlock, nil, cellStyle(img, col, row))
		}
	}
}

// cellStyle colors a half block: the top pixel is the foreground, the one
// below it the background.
func cellStyle(img image.Image, col, row int) tcell.Style {
	b := img.Bounds()
	top := img.At(b.Min.X+col, b.Min.Y+2*row)
	bottom := top
	if 2*row+1 < b.Dy() {
		bottom = img.At(b.Min.X+col, b.Min.Y+2*row+1)
	}
	return tcell.StyleDefault.Foreground(rgb(top)).Background(rgb(bottom))
}

func rgb(c color.Color) tcell.Color {
	r, g, b, _ := c.RGBA()
	return tcell.NewRGBColor(int32(r>>8), int32(g>>8), int32(b>>8))
}

// status writes a short capture note in the top-left corner.
func status(s tcell.Screen, sess *session.Session) {
	rec := sess.Recorder()
	var msg string
	switch {
	case rec.Recording():
		msg = fmt.Sprintf(" REC %d/%d ", rec.Captured(), rec.Target())
	case rec.Ready():
		msg = " zip ready, press d "
	case rec.Pending():
		msg = " zipping... "
	default:
		return
	}
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorMaroon)
	for i, r := range msg {
		s.SetContent(i, 0, r, nil, style)
	}
}
