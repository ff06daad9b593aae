package network

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
)

// ErrColorSpaceExhausted is returned by [Allocator.Next] once every 24-bit
// color has been handed out. Diagram-sized graphs never get close.
var ErrColorSpaceExhausted = errors.New("color space exhausted")

// colorSpace is the number of distinct 24-bit RGB values.
const colorSpace = 1 << 24

// Color is a 24-bit RGB value. Only the low 24 bits are meaningful.
type Color uint32

// RGB builds a Color from its three channels.
func RGB(r, g, b uint8) Color {
	return Color(r)<<16 | Color(g)<<8 | Color(b)
}

// R returns the red channel.
func (c Color) R() uint8 { return uint8(c >> 16) }

// G returns the green channel.
func (c Color) G() uint8 { return uint8(c >> 8) }

// B returns the blue channel.
func (c Color) B() uint8 { return uint8(c) }

// String formats the color as "#RRGGBB" with uppercase hex digits.
func (c Color) String() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R(), c.G(), c.B())
}

// MarshalText implements encoding.TextMarshaler so colors serialize as "#RRGGBB".
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(b []byte) error {
	parsed, err := ParseColor(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseColor parses "#RRGGBB" (either hex case).
func ParseColor(s string) (Color, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || len(hex) != 6 {
		return 0, fmt.Errorf("invalid color %q: want #RRGGBB", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return Color(v), nil
}

// Allocator hands out distinct random colors. Each channel is drawn
// uniformly from [0, 255]; a candidate that was already handed out is
// rejected and redrawn.
//
// An Allocator owns its used-color set and is meant to live for a single
// conversion. It is not safe for concurrent use.
type Allocator struct {
	rng   *rand.Rand
	used  map[Color]struct{}
	limit int
}

// NewAllocator creates an allocator drawing from rng. A nil rng uses a
// freshly seeded source.
func NewAllocator(rng *rand.Rand) *Allocator {
	if rng == nil {
		rng = newRand(0)
	}
	return &Allocator{rng: rng, used: make(map[Color]struct{}), limit: colorSpace}
}

// Next returns a color not returned before by this allocator, or
// ErrColorSpaceExhausted when none is left.
//
// Rejection sampling gets slower as the used set fills up; that is fine for
// diagrams of thousands of nodes and only degenerates near the 16.7M limit.
func (a *Allocator) Next() (Color, error) {
	if len(a.used) >= a.limit {
		return 0, ErrColorSpaceExhausted
	}
	for {
		c := a.draw()
		if _, taken := a.used[c]; taken {
			continue
		}
		a.used[c] = struct{}{}
		return c, nil
	}
}

// Used returns how many colors have been handed out.
func (a *Allocator) Used() int { return len(a.used) }

func (a *Allocator) draw() Color {
	return RGB(a.channel(), a.channel(), a.channel())
}

func (a *Allocator) channel() uint8 {
	return uint8(a.rng.IntN(256))
}

// newRand returns a PCG-backed generator. A zero seed draws one from the
// process-wide generator, which is safe for concurrent use.
func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}
