package game

import (
	"errors"
	"fmt"
	"strings"
)

// Color is a 32-bit ARGB color value.
type Color uint32

const (
	ColorBlack   Color = 0xFF000000
	ColorWhite   Color = 0xFFFFFFFF
	ColorGreen   Color = 0xFF00FF00
	ColorRed     Color = 0xFFFF0000
	ColorYellow  Color = 0xFFFFFF00
	ColorCyan    Color = 0xFF00FFFF
	ColorMagenta Color = 0xFFFF00FF
)

// RGB returns the color without its alpha channel, as 0xRRGGBB.
func (c Color) RGB() int32 {
	return int32(c & 0x00FFFFFF)
}

// Side identifies which end of the board a paddle guards.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	}
	return fmt.Sprintf("Side(%d)", int(s))
}

// WallHit reports which side wall, if any, a ball has crossed.
type WallHit int

const (
	NoWallHit WallHit = iota
	LeftWallHit
	RightWallHit
)

// ComputerPaddles selects which paddles are driven by the computer.
type ComputerPaddles int

const (
	ComputerNone ComputerPaddles = iota
	ComputerLeft
	ComputerRight
	ComputerBoth
)

var (
	ErrUnknownComputerPaddles = errors.New("computer controlled paddle must be none, left, right or both")
	ErrInvalidBoard           = errors.New("board dimensions must be positive")
)

var computerPaddleNames = map[ComputerPaddles]string{
	ComputerNone:  "none",
	ComputerLeft:  "left",
	ComputerRight: "right",
	ComputerBoth:  "both",
}

func (c ComputerPaddles) String() string {
	if name, ok := computerPaddleNames[c]; ok {
		return name
	}
	return fmt.Sprintf("ComputerPaddles(%d)", int(c))
}

// Valid reports whether c is one of the defined selectors.
func (c ComputerPaddles) Valid() bool {
	_, ok := computerPaddleNames[c]
	return ok
}

// Controls reports whether the paddle on the given side is computer controlled.
func (c ComputerPaddles) Controls(side Side) bool {
	switch side {
	case SideLeft:
		return c == ComputerLeft || c == ComputerBoth
	case SideRight:
		return c == ComputerRight || c == ComputerBoth
	}
	return false
}

// ParseComputerPaddles converts a selector name into a ComputerPaddles value.
func ParseComputerPaddles(s string) (ComputerPaddles, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for c, n := range computerPaddleNames {
		if n == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w, got %q", ErrUnknownComputerPaddles, s)
}
