//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

package prefs

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	MinFontSize = 8
	MaxFontSize = 72
	MinPadding  = 0
	MaxPadding  = 500

	DefaultFontSize = 14
	DefaultPadding  = 100
	DefaultFontName = "Helvetica"
)

// RGB is an opaque 24-bit color.
type RGB struct {
	R, G, B uint8
}

var (
	Black = RGB{0, 0, 0}
	White = RGB{0xff, 0xff, 0xff}
)

// ParseHex reads colors written as #rrggbb or #rgb.
func ParseHex(s string) (RGB, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if len(s) == 4 {
		s = "#" + strings.Repeat(s[1:2], 2) + strings.Repeat(s[2:3], 2) + strings.Repeat(s[3:4], 2)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return FromColorful(c), nil
}

func FromColorful(c colorful.Color) RGB {
	r, g, b := c.Clamped().RGB255()
	return RGB{r, g, b}
}

func (c RGB) Colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Preferences are the viewer's display settings. They belong to the
// viewer, not to any document.
type Preferences struct {
	FontFamily          string
	FontSizePt          float64
	TextColor           RGB
	BackgroundColor     RGB
	HorizontalPaddingPx float64
}

func Defaults() Preferences {
	return Preferences{
		FontFamily:          DefaultFontName,
		FontSizePt:          DefaultFontSize,
		TextColor:           Black,
		BackgroundColor:     White,
		HorizontalPaddingPx: DefaultPadding,
	}
}

func ClampFontSize(pt float64) float64 {
	return clamp(pt, MinFontSize, MaxFontSize)
}

func ClampPadding(px float64) float64 {
	return clamp(px, MinPadding, MaxPadding)
}

// Clamped returns a copy with every ranged value inside its range and an
// empty font family replaced by the default.
func (p Preferences) Clamped() Preferences {
	p.FontSizePt = ClampFontSize(p.FontSizePt)
	p.HorizontalPaddingPx = ClampPadding(p.HorizontalPaddingPx)
	p.FontFamily = strings.TrimSpace(p.FontFamily)
	if p.FontFamily == "" {
		p.FontFamily = DefaultFontName
	}
	return p
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
