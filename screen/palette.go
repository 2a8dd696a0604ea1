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
package screen

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/timburks/rtfed/prefs"
)

// The xterm 256 color palette. Entries 0-15 are the system colors, which
// terminals commonly retheme; they are never chosen as nearest colors.
var palette = buildPalette()

const firstStableColor = 16

var cubeLevels = [6]uint8{0, 95, 135, 175, 215, 255}

func buildPalette() [256]prefs.RGB {
	var p [256]prefs.RGB
	system := []string{
		"#000000", "#800000", "#008000", "#808000", "#000080", "#800080", "#008080", "#c0c0c0",
		"#808080", "#ff0000", "#00ff00", "#ffff00", "#0000ff", "#ff00ff", "#00ffff", "#ffffff",
	}
	for i, hex := range system {
		c, _ := colorful.Hex(hex)
		p[i] = prefs.FromColorful(c)
	}
	i := firstStableColor
	for _, r := range cubeLevels {
		for _, g := range cubeLevels {
			for _, b := range cubeLevels {
				p[i] = prefs.RGB{R: r, G: g, B: b}
				i++
			}
		}
	}
	for j := 0; j < 24; j++ {
		v := uint8(8 + 10*j)
		p[i] = prefs.RGB{R: v, G: v, B: v}
		i++
	}
	return p
}

// Nearest returns the index of the palette entry that looks closest to c.
func Nearest(c prefs.RGB) int {
	target := c.Colorful()
	best, distance := firstStableColor, math.MaxFloat64
	for i := firstStableColor; i < len(palette); i++ {
		if palette[i] == c {
			return i
		}
		if d := target.DistanceLab(palette[i].Colorful()); d < distance {
			best, distance = i, d
		}
	}
	return best
}
