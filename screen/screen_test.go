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
	"testing"

	"github.com/nsf/termbox-go"
	"github.com/stretchr/testify/require"

	"github.com/timburks/rtfed/prefs"
	gott "github.com/timburks/rtfed/types"
)

func TestPalette(t *testing.T) {
	require.Equal(t, prefs.RGB{R: 0x5f, G: 0x87, B: 0xaf}, palette[67])
	require.Equal(t, prefs.RGB{R: 0xee, G: 0xee, B: 0xee}, palette[255])
	require.Equal(t, prefs.RGB{R: 0xc0, G: 0xc0, B: 0xc0}, palette[7])
}

func TestNearest(t *testing.T) {
	for _, tc := range []struct {
		color prefs.RGB
		index int
	}{
		{prefs.Black, 16},
		{prefs.White, 231},
		{prefs.RGB{R: 0x5f, G: 0x87, B: 0xaf}, 67},
		{prefs.RGB{R: 0x80, G: 0x80, B: 0x80}, 244},
		{prefs.RGB{R: 0xfe, G: 0x01, B: 0x02}, 196},
	} {
		require.Equal(t, tc.index, Nearest(tc.color), "%s", tc.color.Hex())
	}
}

func TestAttributes(t *testing.T) {
	s := newScreen()
	fg, bg := s.attributes(gott.Style{Fg: prefs.Black, Bg: prefs.White, Bold: true, Italic: true})
	require.Equal(t, termbox.Attribute(17)|termbox.AttrBold|termbox.AttrCursive, fg)
	require.Equal(t, termbox.Attribute(232), bg)

	fg, _ = s.attributes(gott.Style{Fg: prefs.Black, Reverse: true})
	require.Equal(t, termbox.Attribute(17)|termbox.AttrReverse, fg)
	require.Len(t, s.colors, 2)
}
