// Package preset loads the named tuning bundles the aurora programs run with.
package preset

import (
	"bytes"
	_ "embed"
	"io"
	"os"
	"sort"

	"github.com/pkg/errors"
	"github.com/scottkirkwood/aurora/anim"
	"github.com/scottkirkwood/aurora/capture"
	"github.com/scottkirkwood/aurora/curtain"
	"github.com/scottkirkwood/aurora/noise"
	"gopkg.in/yaml.v3"
)

//go:embed presets.yaml
var defaultsYAML []byte

// ErrUnknownPreset is returned for names that are not in the set.
var ErrUnknownPreset = errors.New("unknown preset")

// Preset is one complete tuning bundle.
type Preset struct {
	Name     string         `yaml:"-"`
	Noise    string         `yaml:"noise"`
	Renderer curtain.Params `yaml:"renderer"`
	Driver   anim.Config    `yaml:"driver"`
	Capture  capture.Config `yaml:"capture"`
}

// Builtin returns the compiled-in defaults every preset starts from.
func Builtin() Preset {
	return Preset{
		Noise:    "p5",
		Renderer: curtain.DefaultParams(),
		Driver:   anim.DefaultConfig(),
		Capture:  capture.DefaultConfig(),
	}
}

// Validate checks every part of the bundle.
func (p Preset) Validate() error {
	if err := p.Renderer.Validate(); err != nil {
		return errors.Wrapf(err, "preset %s: renderer", p.Name)
	}
	if err := p.Driver.Validate(); err != nil {
		return errors.Wrapf(err, "preset %s: driver", p.Name)
	}
	if err := p.Capture.Validate(); err != nil {
		return errors.Wrapf(err, "preset %s: capture", p.Name)
	}
	if _, err := noise.New(p.Noise, 0); err != nil {
		return errors.Wrapf(err, "preset %s", p.Name)
	}
	return nil
}

// Build wires a noise field, renderer and driver for the bundle.
func (p Preset) Build(seed int64) (*anim.Driver, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	src, err := noise.New(p.Noise, seed)
	if err != nil {
		return nil, err
	}
	return anim.NewDriver(curtain.New(p.Renderer, src), src, p.Driver), nil
}

// Set is a collection of named presets with a default.
type Set struct {
	Default string
	presets map[string]Preset
}

type file struct {
	Default string               `yaml:"default"`
	Presets map[string]yaml.Node `yaml:"presets"`
}

type header struct {
	Extends string `yaml:"extends"`
}

// Defaults parses the compiled-in presets.
func Defaults() (*Set, error) {
	return Load(bytes.NewReader(defaultsYAML), nil)
}

// LoadFile reads a preset file and lays it over base, which may be nil.
func LoadFile(fname string, base *Set) (*Set, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, errors.Wrap(err, "opening presets")
	}
	defer f.Close()
	s, err := Load(f, base)
	return s, errors.Wrapf(err, "loading %s", fname)
}

// Load reads presets from r and lays them over base, which may be nil.
// A preset starts from its `extends` preset, from the base preset of the
// same name, or from Builtin, and only the keys it lists are changed.
func Load(r io.Reader, base *Set) (*Set, error) {
	var f file
	if err := yaml.NewDecoder(r).Decode(&f); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "parsing presets")
	}

	s := &Set{presets: map[string]Preset{}}
	if base != nil {
		s.Default = base.Default
		for name, p := range base.presets {
			s.presets[name] = p
		}
	}
	if f.Default != "" {
		s.Default = f.Default
	}

	resolving := map[string]bool{}
	var resolve func(name string) (Preset, error)
	resolve = func(name string) (Preset, error) {
		node, ok := f.Presets[name]
		if !ok {
			if p, ok := s.presets[name]; ok {
				return p, nil
			}
			return Preset{}, errors.Wrap(ErrUnknownPreset, name)
		}
		if resolving[name] {
			return Preset{}, errors.Errorf("preset %s extends itself", name)
		}
		resolving[name] = true
		defer delete(resolving, name)

		var h header
		if err := node.Decode(&h); err != nil {
			return Preset{}, errors.Wrapf(err, "preset %s", name)
		}
		p := Builtin()
		if h.Extends != "" {
			parent, err := resolve(h.Extends)
			if err != nil {
				return Preset{}, errors.Wrapf(err, "preset %s extends", name)
			}
			p = parent
		} else if prev, ok := s.presets[name]; ok {
			p = prev
		}
		if err := node.Decode(&p); err != nil {
			return Preset{}, errors.Wrapf(err, "preset %s", name)
		}
		p.Name = name
		return p, nil
	}

	names := make([]string, 0, len(f.Presets))
	for name := range f.Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	resolved := make(map[string]Preset, len(names))
	for _, name := range names {
		p, err := resolve(name)
		if err != nil {
			return nil, err
		}
		if err := p.Validate(); err != nil {
			return nil, err
		}
		resolved[name] = p
	}
	for name, p := range resolved {
		s.presets[name] = p
	}

	if s.Default == "" {
		return nil, errors.New("presets: no default")
	}
	if _, ok := s.presets[s.Default]; !ok {
		return nil, errors.Wrapf(ErrUnknownPreset, "default %s", s.Default)
	}
	return s, nil
}

// Get returns the named preset, or the default for "".
func (s *Set) Get(name string) (Preset, error) {
	if name == "" {
		name = s.Default
	}
	p, ok := s.presets[name]
	if !ok {
		return Preset{}, errors.Wrap(ErrUnknownPreset, name)
	}
	return p, nil
}

// Names lists the presets in alphabetical order.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.presets))
	for name := range s.presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
