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

package document

import "strings"

// Lines splits runs at newlines. The newline characters are dropped and
// there is always at least one (possibly empty) line.
func Lines(runs []Run) [][]Run {
	lines := [][]Run{{}}
	for _, r := range runs {
		parts := strings.Split(r.Text, "\n")
		for i, part := range parts {
			if i > 0 {
				lines = append(lines, []Run{})
			}
			if part != "" {
				last := len(lines) - 1
				lines[last] = append(lines[last], Run{Text: part, Traits: r.Traits})
			}
		}
	}
	return lines
}

// RowCount returns the number of lines in the document.
func (d *Document) RowCount() int {
	return strings.Count(d.Text(), "\n") + 1
}

// RowLength returns the length in runes of a line, excluding its newline.
func (d *Document) RowLength(row int) int {
	start, end := d.RowBounds(row)
	return end - start
}

// RowBounds returns the positions of the first character of a line and
// of its terminating newline (or the end of the document).
func (d *Document) RowBounds(row int) (int, int) {
	text := []rune(d.Text())
	current := 0
	start := 0
	for i, c := range text {
		if c != '\n' {
			continue
		}
		if current == row {
			return start, i
		}
		current++
		start = i + 1
	}
	if current < row {
		return len(text), len(text)
	}
	return start, len(text)
}

// PointOf converts a position to a row and column.
func (d *Document) PointOf(pos int) (int, int) {
	pos = d.clip(pos)
	row, col := 0, 0
	for i, c := range []rune(d.Text()) {
		if i == pos {
			break
		}
		if c == '\n' {
			row++
			col = 0
		} else {
			col++
		}
	}
	return row, col
}

// PositionOf converts a row and column to a position, clamping the column
// to the length of the row and the row to the document.
func (d *Document) PositionOf(row, col int) int {
	if row < 0 {
		return 0
	}
	if rows := d.RowCount(); row >= rows {
		return d.Len()
	}
	start, end := d.RowBounds(row)
	if col < 0 {
		col = 0
	}
	if start+col > end {
		return end
	}
	return start + col
}
