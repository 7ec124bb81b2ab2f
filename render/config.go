// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package render

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Columns selects which columns are printed for each match.
type Columns int

const (
	// ColumnsAll prints identifier, version, and description.
	ColumnsAll Columns = iota

	// ColumnsNone prints the bare identifier.
	ColumnsNone

	// ColumnsVersion prints identifier and version.
	ColumnsVersion

	// ColumnsDescription prints identifier and description.
	ColumnsDescription
)

// ParseColumns maps a columns selection name to its Columns value.
func ParseColumns(s string) (Columns, error) {
	switch s {
	case "all":
		return ColumnsAll, nil
	case "none":
		return ColumnsNone, nil
	case "version":
		return ColumnsVersion, nil
	case "description":
		return ColumnsDescription, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownColumns, s)
}

func (c Columns) String() string {
	switch c {
	case ColumnsAll:
		return "all"
	case ColumnsNone:
		return "none"
	case ColumnsVersion:
		return "version"
	case ColumnsDescription:
		return "description"
	}
	return fmt.Sprintf("columns(%d)", int(c))
}

// ColorMode controls when styling is emitted.
type ColorMode int

const (
	// ColorAuto styles the output only when it goes to a terminal.
	ColorAuto ColorMode = iota

	// ColorAlways styles the output unconditionally.
	ColorAlways

	// ColorNever emits plain text.
	ColorNever
)

// ParseColorMode maps a color mode name to its ColorMode value.
func ParseColorMode(s string) (ColorMode, error) {
	switch s {
	case "auto":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownColorMode, s)
}

func (m ColorMode) String() string {
	switch m {
	case ColorAuto:
		return "auto"
	case ColorAlways:
		return "always"
	case ColorNever:
		return "never"
	}
	return fmt.Sprintf("colormode(%d)", int(m))
}

// Color names one of the eight basic ANSI foreground colors.
type Color string

const (
	ColorBlack   Color = "black"
	ColorBlue    Color = "blue"
	ColorGreen   Color = "green"
	ColorRed     Color = "red"
	ColorCyan    Color = "cyan"
	ColorMagenta Color = "magenta"
	ColorYellow  Color = "yellow"
	ColorWhite   Color = "white"
)

// ansiIndex maps each color name to its ANSI palette slot.
var ansiIndex = map[Color]string{
	ColorBlack:   "0",
	ColorRed:     "1",
	ColorGreen:   "2",
	ColorYellow:  "3",
	ColorBlue:    "4",
	ColorMagenta: "5",
	ColorCyan:    "6",
	ColorWhite:   "7",
}

// ParseColor maps a color name to its Color value.
func ParseColor(s string) (Color, error) {
	c := Color(s)
	if _, ok := ansiIndex[c]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownColor, s)
	}
	return c, nil
}

// terminal returns the lipgloss color for the ANSI palette slot.
func (c Color) terminal() lipgloss.Color {
	return lipgloss.Color(ansiIndex[c])
}

// Config holds the presentation settings for a Renderer.
type Config struct {
	// Columns selects which columns are printed.
	// Default: ColumnsAll
	Columns Columns

	// Separate inserts a blank line between printed tiers.
	// Default: true
	Separate bool

	// Flip reverses the tier print order to Indirect, Direct, Exact.
	// Default: false
	Flip bool

	// Mode controls when styling is emitted.
	// Default: ColorAuto
	Mode ColorMode

	// IgnoreCase makes term highlighting case insensitive. It should
	// match the classifier setting so highlighted spans line up with
	// what actually matched.
	// Default: true
	IgnoreCase bool

	// ExactColor is the tier color for exact matches.
	// Default: magenta
	ExactColor Color

	// DirectColor is the tier color for direct matches.
	// Default: blue
	DirectColor Color

	// IndirectColor is the tier color for indirect matches.
	// Default: green
	IndirectColor Color
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithColumns sets the columns selection.
func WithColumns(columns Columns) ConfigOption {
	return func(c *Config) {
		c.Columns = columns
	}
}

// WithSeparate controls the blank line between tiers.
func WithSeparate(separate bool) ConfigOption {
	return func(c *Config) {
		c.Separate = separate
	}
}

// WithFlip reverses the tier print order.
func WithFlip(flip bool) ConfigOption {
	return func(c *Config) {
		c.Flip = flip
	}
}

// WithColorMode sets when styling is emitted.
func WithColorMode(mode ColorMode) ConfigOption {
	return func(c *Config) {
		c.Mode = mode
	}
}

// WithIgnoreCase controls case folding during term highlighting.
func WithIgnoreCase(ignoreCase bool) ConfigOption {
	return func(c *Config) {
		c.IgnoreCase = ignoreCase
	}
}

// WithTierColors sets the colors for the exact, direct, and indirect tiers.
func WithTierColors(exact, direct, indirect Color) ConfigOption {
	return func(c *Config) {
		c.ExactColor = exact
		c.DirectColor = direct
		c.IndirectColor = indirect
	}
}

// DefaultConfig returns a Config with the stock presentation settings.
func DefaultConfig() *Config {
	return &Config{
		Columns:       ColumnsAll,
		Separate:      true,
		Flip:          false,
		Mode:          ColorAuto,
		IgnoreCase:    true,
		ExactColor:    ColorMagenta,
		DirectColor:   ColorBlue,
		IndirectColor: ColorGreen,
	}
}

// NewConfig creates a Config with the default values and applies the
// provided options.
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Validate checks that the configuration is valid and complete.
func (c *Config) Validate() error {
	if c.Columns < ColumnsAll || c.Columns > ColumnsDescription {
		return fmt.Errorf("render config: %w: %s", ErrUnknownColumns, c.Columns)
	}
	if c.Mode < ColorAuto || c.Mode > ColorNever {
		return fmt.Errorf("render config: %w: %s", ErrUnknownColorMode, c.Mode)
	}
	for _, color := range []Color{c.ExactColor, c.DirectColor, c.IndirectColor} {
		if _, ok := ansiIndex[color]; !ok {
			return fmt.Errorf("render config: %w: %q", ErrUnknownColor, color)
		}
	}
	return nil
}
