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
package editor

import (
	"math"

	"github.com/timburks/rtfed/prefs"
	"github.com/timburks/rtfed/reconcile"
	gott "github.com/timburks/rtfed/types"
)

// PixelsPerColumn converts horizontal padding to terminal columns.
const PixelsPerColumn = 8

// margins returns the padding on each side and the number of columns
// left for text in an area of the given width.
func (e *Editor) margins(width int) (int, int) {
	pad := int(math.Round(e.prefs.HorizontalPaddingPx / PixelsPerColumn))
	// always leave at least one column of text
	if limit := (width - 1) / 2; pad > limit {
		pad = limit
	}
	if pad < 0 {
		pad = 0
	}
	cols := width - 2*pad
	if cols < 0 {
		cols = 0
	}
	return pad, cols
}

func (e *Editor) textColumns() int {
	_, cols := e.margins(e.size.Cols)
	return cols
}

func (e *Editor) cursorColumn() int {
	return e.columnOf(e.cursor)
}

// GetCursorCell returns the screen cell of the cursor relative to the
// editing area.
func (e *Editor) GetCursorCell() gott.Point {
	pad, _ := e.margins(e.size.Cols)
	return gott.Point{
		Row: e.GetPoint().Row - e.Offset.Rows,
		Col: pad + e.cursorColumn() - e.Offset.Cols,
	}
}

func cellStyle(a reconcile.Attributes, background prefs.RGB) gott.Style {
	return gott.Style{
		Fg:     a.Foreground,
		Bg:     background,
		Bold:   a.Font.Bold,
		Italic: a.Font.Italic,
	}
}

// Render draws the working copy with its display attributes.
func (e *Editor) Render(display gott.Display, origin gott.Point, size gott.Size) {
	d := e.Reconciled().Display
	rows := layout(d)
	pad, cols := e.margins(size.Cols)
	blank := gott.Style{Fg: e.prefs.TextColor, Bg: d.Container.Background}
	selStart, selEnd, selected := e.GetSelection()

	for i := 0; i < size.Rows; i++ {
		y := origin.Row + i
		for x := 0; x < size.Cols; x++ {
			display.SetCell(origin.Col+x, y, ' ', blank)
		}
		if i+e.Offset.Rows >= len(rows) {
			display.SetCell(origin.Col+pad, y, '~', blank)
			continue
		}
		x := 0
		for _, c := range rows[i+e.Offset.Rows].cells {
			sx := x - e.Offset.Cols
			x += c.width
			if sx < 0 {
				continue
			}
			// truncate line to fit screen
			if sx+c.width > cols {
				break
			}
			style := cellStyle(c.attrs, d.Container.Background)
			style.Reverse = selected && c.pos >= selStart && c.pos < selEnd
			display.SetCell(origin.Col+pad+sx, y, c.c, style)
		}
	}
}
