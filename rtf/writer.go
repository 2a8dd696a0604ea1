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

package rtf

import (
	"bytes"
	"fmt"
	"math"
	"unicode/utf16"

	"golang.org/x/text/encoding/charmap"
)

// Marshal serializes runs as an RTF document in the Windows-1252 code
// page. Characters outside the code page are written as \u escapes.
func Marshal(runs []Run) []byte {
	runs = append([]Run(nil), runs...)
	var fonts []string
	fontIndex := make(map[string]int)
	var colors []Color
	colorIndex := make(map[Color]int)
	for i := range runs {
		runs[i] = withDefaults(runs[i])
		if _, ok := fontIndex[runs[i].Font]; !ok {
			fontIndex[runs[i].Font] = len(fonts)
			fonts = append(fonts, runs[i].Font)
		}
		if runs[i].HasColor {
			if _, ok := colorIndex[runs[i].Color]; !ok {
				// color table index 0 is the automatic color
				colorIndex[runs[i].Color] = len(colors) + 1
				colors = append(colors, runs[i].Color)
			}
		}
	}
	if len(fonts) == 0 {
		fonts = append(fonts, DefaultFont)
	}

	var b bytes.Buffer
	b.WriteString(`{\rtf1\ansi\ansicpg1252\deff0\uc1`)
	b.WriteString("\n{\\fonttbl")
	for i, f := range fonts {
		fmt.Fprintf(&b, `{\f%d\fnil\fcharset0 `, i)
		writeText(&b, f)
		b.WriteString(";}")
	}
	b.WriteString("}\n")
	if len(colors) > 0 {
		b.WriteString(`{\colortbl;`)
		for _, c := range colors {
			fmt.Fprintf(&b, `\red%d\green%d\blue%d;`, c.R, c.G, c.B)
		}
		b.WriteString("}\n")
	}

	font, size, color := -1, -1, 0
	bold, italic := false, false
	for _, r := range runs {
		var ctl bytes.Buffer
		if f := fontIndex[r.Font]; f != font {
			fmt.Fprintf(&ctl, `\f%d`, f)
			font = f
		}
		if s := int(math.Round(r.SizePt * 2)); s != size {
			fmt.Fprintf(&ctl, `\fs%d`, s)
			size = s
		}
		c := 0
		if r.HasColor {
			c = colorIndex[r.Color]
		}
		if c != color {
			fmt.Fprintf(&ctl, `\cf%d`, c)
			color = c
		}
		if r.Bold != bold {
			ctl.WriteString(toggle(`\b`, r.Bold))
			bold = r.Bold
		}
		if r.Italic != italic {
			ctl.WriteString(toggle(`\i`, r.Italic))
			italic = r.Italic
		}
		if ctl.Len() > 0 {
			b.Write(ctl.Bytes())
			b.WriteByte(' ')
		}
		writeText(&b, r.Text)
	}
	b.WriteString("}\n")
	return b.Bytes()
}

func withDefaults(r Run) Run {
	if r.Font == "" {
		r.Font = DefaultFont
	}
	if r.SizePt <= 0 {
		r.SizePt = DefaultSizePt
	}
	return r
}

func toggle(word string, on bool) string {
	if on {
		return word
	}
	return word + "0"
}

func writeText(b *bytes.Buffer, text string) {
	for _, r := range text {
		switch {
		case r == '\\' || r == '{' || r == '}':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\n':
			b.WriteString("\\par\n")
		case r == '\t':
			b.WriteString(`\tab `)
		case r < 0x20:
			fmt.Fprintf(b, `\'%02x`, r)
		case r < 0x80:
			b.WriteRune(r)
		default:
			if c, ok := charmap.Windows1252.EncodeRune(r); ok {
				fmt.Fprintf(b, `\'%02x`, c)
				continue
			}
			if r > 0xFFFF {
				hi, lo := utf16.EncodeRune(r)
				writeUnicode(b, hi)
				writeUnicode(b, lo)
				continue
			}
			writeUnicode(b, r)
		}
	}
}

// \u takes a signed 16-bit value followed by one fallback character.
func writeUnicode(b *bytes.Buffer, r rune) {
	fmt.Fprintf(b, `\u%d?`, int16(uint16(r)))
}
