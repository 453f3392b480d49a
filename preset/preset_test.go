package preset

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/scottkirkwood/aurora/anim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	s, err := Defaults()
	require.NoError(t, err)
	assert.Equal(t, "borealis", s.Default)
	assert.Equal(t, []string{"borealis", "drift", "interactive", "muted"}, s.Names())

	p, err := s.Get("")
	require.NoError(t, err)
	assert.Equal(t, "borealis", p.Name)
	assert.Equal(t, Builtin().Renderer, p.Renderer, "yaml mirrors the compiled-in tuning")
	assert.Equal(t, Builtin().Driver, p.Driver)
	assert.Equal(t, 4, p.Driver.Layers)
}

func TestExtendsOnlyOverridesListedKeys(t *testing.T) {
	s, err := Defaults()
	require.NoError(t, err)
	base, err := s.Get("borealis")
	require.NoError(t, err)
	p, err := s.Get("interactive")
	require.NoError(t, err)

	assert.True(t, p.Renderer.Cursor.Enabled)
	assert.True(t, p.Renderer.Smooth)
	assert.Equal(t, 72.0, p.Renderer.Alpha.Max)
	assert.Equal(t, base.Renderer.Alpha.Base, p.Renderer.Alpha.Base)
	assert.Equal(t, base.Renderer.Color.Palette, p.Renderer.Color.Palette)
	assert.Equal(t, base.Capture, p.Capture)

	drift, err := s.Get("drift")
	require.NoError(t, err)
	assert.Equal(t, anim.WindNoise, drift.Driver.Mood.WindSource)
	assert.Equal(t, base.Driver.Mood.Step, drift.Driver.Mood.Step)

	muted, err := s.Get("muted")
	require.NoError(t, err)
	assert.Equal(t, "#5aff8c", muted.Renderer.Color.Palette.Green.Hex())
}

func TestLoadOverlay(t *testing.T) {
	s, err := Defaults()
	require.NoError(t, err)

	user := `
default: mine
presets:
  mine:
    extends: interactive
    renderer:
      cols: 60
  borealis:
    capture: {fps: 10}
`
	got, err := Load(strings.NewReader(user), s)
	require.NoError(t, err)
	assert.Equal(t, "mine", got.Default)

	mine, err := got.Get("")
	require.NoError(t, err)
	assert.Equal(t, 60, mine.Renderer.Cols)
	assert.True(t, mine.Renderer.Cursor.Enabled)

	b, err := got.Get("borealis")
	require.NoError(t, err)
	assert.Equal(t, 10.0, b.Capture.FPS)
	assert.Equal(t, 5.0, b.Capture.Seconds)
	assert.Equal(t, 150, b.Renderer.Cols)

	// The base set is untouched.
	orig, err := s.Get("borealis")
	require.NoError(t, err)
	assert.Equal(t, 5.0, orig.Capture.FPS)
}

func TestLoadErrors(t *testing.T) {
	s, err := Defaults()
	require.NoError(t, err)

	tests := []struct {
		name, yaml string
	}{
		{"bad yaml", "presets: [1, 2"},
		{"unknown parent", "presets:\n  a:\n    extends: nope\n"},
		{"cycle", "presets:\n  a:\n    extends: b\n  b:\n    extends: a\n"},
		{"invalid values", "presets:\n  a:\n    renderer:\n      cols: 0\n"},
		{"bad color", "presets:\n  a:\n    renderer:\n      color:\n        palette:\n          green: nope\n"},
		{"bad noise", "presets:\n  a:\n    noise: worley\n"},
		{"unknown default", "default: ghost\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.yaml), s)
			assert.Error(t, err)
		})
	}

	_, err = s.Get("ghost")
	assert.ErrorIs(t, err, ErrUnknownPreset)
}

func TestBuild(t *testing.T) {
	s, err := Defaults()
	require.NoError(t, err)
	p, err := s.Get("interactive")
	require.NoError(t, err)

	d, err := p.Build(42)
	require.NoError(t, err)
	assert.Len(t, d.Depths(), 4)
}

func TestWatchReloads(t *testing.T) {
	s, err := Defaults()
	require.NoError(t, err)
	fname := filepath.Join(t.TempDir(), "presets.yaml")
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	changes := make(chan *Set, 16)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, fname, s, func(s *Set) { changes <- s }, log)
	}()

	var got *Set
	require.Eventually(t, func() bool {
		require.NoError(t, os.WriteFile(fname, []byte("default: drift\n"), 0644))
		select {
		case got = <-changes:
			return true
		default:
			return false
		}
	}, 5*time.Second, 50*time.Millisecond)
	assert.Equal(t, "drift", got.Default)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}
