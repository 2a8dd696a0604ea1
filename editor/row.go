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
	"github.com/mattn/go-runewidth"

	"github.com/timburks/rtfed/reconcile"
)

const tabWidth = 8

// A cell is one character of a laid out row. Wide characters span more
// than one screen column; tabs become several cells with the same pos.
type cell struct {
	c     rune
	width int
	pos   int
	attrs reconcile.Attributes
}

type row struct {
	cells []cell
}

// layout splits displayed runs into rows of cells.
func layout(d reconcile.Display) []*row {
	rows := []*row{{}}
	pos, col := 0, 0
	for _, run := range d.Runs {
		for _, c := range run.Text {
			current := rows[len(rows)-1]
			switch c {
			case '\n':
				rows = append(rows, &row{})
				col = 0
			case '\t':
				for w := tabWidth - col%tabWidth; w > 0; w-- {
					current.cells = append(current.cells, cell{c: ' ', width: 1, pos: pos, attrs: run.Attributes})
					col++
				}
			default:
				w := cellWidth(c)
				current.cells = append(current.cells, cell{c: c, width: w, pos: pos, attrs: run.Attributes})
				col += w
			}
			pos++
		}
	}
	return rows
}

func cellWidth(c rune) int {
	if w := runewidth.RuneWidth(c); w > 0 {
		return w
	}
	return 1
}

// columnOf returns the screen column of pos within its row.
func (e *Editor) columnOf(pos int) int {
	row, _ := e.doc.PointOf(pos)
	start, _ := e.doc.RowBounds(row)
	col := 0
	for i := start; i < pos; i++ {
		c := e.doc.RuneAt(i)
		if c == '\t' {
			col += tabWidth - col%tabWidth
		} else {
			col += cellWidth(c)
		}
	}
	return col
}
