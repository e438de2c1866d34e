// Package config loads game settings from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/plus3/tilefall/anim"
	"gopkg.in/yaml.v3"
)

var ErrInvalid = errors.New("config: invalid")

// Config holds everything a session and its host need to start.
type Config struct {
	Board   Board   `yaml:"board"`
	Timing  Timing  `yaml:"timing"`
	Display Display `yaml:"display"`

	// Easing names the curve used for piece animations: "linear" or "ease".
	Easing string `yaml:"easing"`

	// Seed fixes the piece sequence. Zero picks a random seed.
	Seed uint64 `yaml:"seed"`
}

type Board struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type Timing struct {
	// Animation is how long a piece takes to slide into a new cell.
	Animation time.Duration `yaml:"animation"`
	// Gravity is the interval between automatic downward moves at level 0.
	Gravity time.Duration `yaml:"gravity"`
	// GravityStep shortens the gravity interval for every level reached.
	GravityStep time.Duration `yaml:"gravity_step"`
	// GravityMin bounds how fast pieces can fall.
	GravityMin time.Duration `yaml:"gravity_min"`
	// FrameRate is the target number of frames per second for hosts that
	// drive the loop from a ticker.
	FrameRate int `yaml:"frame_rate"`
}

type Display struct {
	CellSize    int  `yaml:"cell_size"`
	PreviewSize int  `yaml:"preview_size"`
	Ghost       bool `yaml:"ghost"`
	Sound       bool `yaml:"sound"`
}

// Default returns the standard 10x20 game.
func Default() Config {
	return Config{
		Board: Board{Width: 10, Height: 20},
		Timing: Timing{
			Animation:   50 * time.Millisecond,
			Gravity:     800 * time.Millisecond,
			GravityStep: 60 * time.Millisecond,
			GravityMin:  100 * time.Millisecond,
			FrameRate:   60,
		},
		Display: Display{
			CellSize:    30,
			PreviewSize: 120,
			Ghost:       true,
		},
		Easing: "linear",
	}
}

// Load reads a YAML file on top of Default. Unknown keys are rejected.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML on top of Default and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the settings describe a playable game.
func (c Config) Validate() error {
	switch {
	case c.Board.Width < 4:
		return fmt.Errorf("%w: board width %d is narrower than the widest piece", ErrInvalid, c.Board.Width)
	case c.Board.Height < 4:
		return fmt.Errorf("%w: board height %d is shorter than the tallest piece", ErrInvalid, c.Board.Height)
	case c.Timing.Animation < 0:
		return fmt.Errorf("%w: negative animation duration %v", ErrInvalid, c.Timing.Animation)
	case c.Timing.Gravity <= 0:
		return fmt.Errorf("%w: gravity interval must be positive, got %v", ErrInvalid, c.Timing.Gravity)
	case c.Timing.GravityStep < 0:
		return fmt.Errorf("%w: negative gravity step %v", ErrInvalid, c.Timing.GravityStep)
	case c.Timing.GravityMin <= 0 || c.Timing.GravityMin > c.Timing.Gravity:
		return fmt.Errorf("%w: minimum gravity %v must be in (0, %v]", ErrInvalid, c.Timing.GravityMin, c.Timing.Gravity)
	case c.Timing.FrameRate <= 0:
		return fmt.Errorf("%w: frame rate must be positive, got %d", ErrInvalid, c.Timing.FrameRate)
	case c.Display.CellSize <= 0:
		return fmt.Errorf("%w: cell size must be positive, got %d", ErrInvalid, c.Display.CellSize)
	case c.Display.PreviewSize < 0:
		return fmt.Errorf("%w: negative preview size %d", ErrInvalid, c.Display.PreviewSize)
	}

	if _, ok := anim.EasingByName(c.Easing); !ok {
		return fmt.Errorf("%w: unknown easing %q", ErrInvalid, c.Easing)
	}
	return nil
}

// EasingFunc resolves the configured easing. It falls back to linear for
// names Validate would reject.
func (c Config) EasingFunc() anim.Easing {
	if ease, ok := anim.EasingByName(c.Easing); ok {
		return ease
	}
	return anim.Linear
}

// GravityAt returns the gravity interval for a level.
func (c Config) GravityAt(level int) time.Duration {
	interval := c.Timing.Gravity - time.Duration(level)*c.Timing.GravityStep
	return max(interval, c.Timing.GravityMin)
}

// FrameInterval is the ticker interval for the configured frame rate.
func (c Config) FrameInterval() time.Duration {
	if c.Timing.FrameRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.Timing.FrameRate)
}

// WindowSize is the pixel size of the board plus the preview column.
func (c Config) WindowSize() (width, height int) {
	width = c.Board.Width*c.Display.CellSize + c.Display.PreviewSize + c.Display.CellSize
	height = c.Board.Height * c.Display.CellSize
	return width, height
}

// Marshal encodes the configuration as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
