package engine

import "math"

// Grid size bounds enforced by setdim.
const (
	MinGridSize = 2
	MaxGridSize = 64
)

// Config holds the host-facing settings a script can adjust through the
// setter builtins. Invalid values are ignored rather than rejected: the
// previous value stays in effect.
type Config struct {
	GridSize        int     `json:"gridSize"`
	Background      string  `json:"background"`
	RotationMode    string  `json:"rotationMode"` // on, off, auto
	SecondsPerCycle float64 `json:"secondsPerCycle"`
}

// DefaultConfig returns the settings in effect before any setter runs.
func DefaultConfig() Config {
	return Config{
		GridSize:        32,
		Background:      "#10141c",
		RotationMode:    "auto",
		SecondsPerCycle: 1,
	}
}

// SetGridSize clamps n to the supported range.
func (c *Config) SetGridSize(n int) {
	if n < MinGridSize {
		n = MinGridSize
	}
	if n > MaxGridSize {
		n = MaxGridSize
	}
	c.GridSize = n
}

// SetBackground sets the frontend clear color.
func (c *Config) SetBackground(color string) {
	if color != "" {
		c.Background = color
	}
}

// SetRotationMode accepts on, off, or auto; anything else is ignored.
func (c *Config) SetRotationMode(mode string) {
	switch mode {
	case "on", "off", "auto":
		c.RotationMode = mode
	}
}

// SetSecondsPerCycle accepts positive finite values; anything else is
// ignored, leaving the previous value unchanged.
func (c *Config) SetSecondsPerCycle(v float64) {
	if v > 0 && !math.IsInf(v, 1) && !math.IsNaN(v) {
		c.SecondsPerCycle = v
	}
}
