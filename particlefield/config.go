package particlefield

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/gogpu/gg"
	"golang.org/x/image/colornames"
)

// Defaults used when a configuration field is omitted.
const (
	DefaultCount     = 2000
	DefaultColor     = "#ff84e4"
	DefaultPointSize = 0.02
	DefaultRotateX   = 0.03
	DefaultRotateY   = 0.06
)

// MaxCount bounds the point buffer of a single session (24 bytes per point).
const MaxCount = 1_000_000

var ErrInvalidConfig = errors.New("particlefield: invalid config")

// Config is the render configuration of one mounted field. It is compared by
// value: any difference means the session has to be rebuilt.
type Config struct {
	Count          int
	Color          color.NRGBA
	PointSize      float64
	RotationSpeedX float64
	RotationSpeedY float64
}

func DefaultConfig() Config {
	c, _ := ParseColor(DefaultColor)
	return Config{
		Count:          DefaultCount,
		Color:          c,
		PointSize:      DefaultPointSize,
		RotationSpeedX: DefaultRotateX,
		RotationSpeedY: DefaultRotateY,
	}
}

func (c Config) Validate() error {
	if c.Count <= 0 {
		return fmt.Errorf("%w: count must be positive, got %d", ErrInvalidConfig, c.Count)
	}
	if c.Count > MaxCount {
		return fmt.Errorf("%w: count %d exceeds %d", ErrInvalidConfig, c.Count, MaxCount)
	}
	if !(c.PointSize > 0) {
		return fmt.Errorf("%w: size must be positive, got %g", ErrInvalidConfig, c.PointSize)
	}
	for _, v := range []float64{c.PointSize, c.RotationSpeedX, c.RotationSpeedY} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite value %g", ErrInvalidConfig, v)
		}
	}
	return nil
}

// ParseConfig builds a Config from optional string parameters (count, color,
// size, rotateX, rotateY). lookup has the shape of gin's Context.GetQuery.
func ParseConfig(lookup func(key string) (string, bool)) (Config, error) {
	cfg := DefaultConfig()

	if v, ok := lookup("count"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("%w: count %q: %v", ErrInvalidConfig, v, err)
		}
		cfg.Count = n
	}
	if v, ok := lookup("color"); ok && v != "" {
		c, err := ParseColor(v)
		if err != nil {
			return Config{}, err
		}
		cfg.Color = c
	}

	floats := []struct {
		key string
		dst *float64
	}{
		{"size", &cfg.PointSize},
		{"rotateX", &cfg.RotationSpeedX},
		{"rotateY", &cfg.RotationSpeedY},
	}
	for _, f := range floats {
		v, ok := lookup(f.key)
		if !ok || v == "" {
			continue
		}
		x, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %s %q: %v", ErrInvalidConfig, f.key, v, err)
		}
		*f.dst = x
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseColor accepts #rgb, #rrggbb (with or without '#') or an SVG colour name.
// Alpha is forced opaque; the material has no per-colour transparency.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	if named, ok := colornames.Map[strings.ToLower(s)]; ok {
		return color.NRGBA{R: named.R, G: named.G, B: named.B, A: 0xff}, nil
	}

	hex := strings.TrimPrefix(s, "#")
	if (len(hex) != 3 && len(hex) != 6) || !isHex(hex) {
		return color.NRGBA{}, fmt.Errorf("%w: color %q", ErrInvalidConfig, s)
	}
	c := gg.Hex(hex).Color().(color.NRGBA)
	c.A = 0xff
	return c, nil
}

func isHex(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

// HexColor formats c as #rrggbb.
func HexColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
