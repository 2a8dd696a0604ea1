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
	"unicode"

	gott "github.com/timburks/rtfed/types"
)

func clipToRange(i, min, max int) int {
	if i > max {
		i = max
	}
	if i < min {
		i = min
	}
	return i
}

func (e *Editor) GetCursor() int {
	return e.cursor
}

func (e *Editor) SetCursor(pos int) {
	e.cursor = clipToRange(pos, 0, e.doc.Len())
}

func (e *Editor) clampCursor() {
	e.cursor = clipToRange(e.cursor, 0, e.doc.Len())
	if e.anchor > e.doc.Len() {
		e.anchor = e.doc.Len()
	}
}

// GetPoint returns the row and column of the cursor.
func (e *Editor) GetPoint() gott.Point {
	row, col := e.doc.PointOf(e.cursor)
	return gott.Point{Row: row, Col: col}
}

func (e *Editor) RowBounds(row int) (int, int) {
	return e.doc.RowBounds(row)
}

// KeepCursorInRow keeps the cursor on a character: outside of insert
// mode it may not rest on the end of a non-empty row.
func (e *Editor) KeepCursorInRow() {
	e.clampCursor()
	if e.inserting {
		return
	}
	row, _ := e.doc.PointOf(e.cursor)
	start, end := e.doc.RowBounds(row)
	if e.cursor >= end && end > start {
		e.cursor = end - 1
	}
}

func (e *Editor) MoveCursor(direction int, multiplier int) {
	if multiplier < 1 {
		multiplier = 1
	}
	for i := 0; i < multiplier; i++ {
		row, col := e.doc.PointOf(e.cursor)
		switch direction {
		case gott.MoveLeft:
			start, _ := e.doc.RowBounds(row)
			if e.cursor > start {
				e.cursor--
			}
		case gott.MoveRight:
			_, end := e.doc.RowBounds(row)
			if e.cursor < end {
				e.cursor++
			}
		case gott.MoveUp:
			if row > 0 {
				e.cursor = e.doc.PositionOf(row-1, col)
			}
		case gott.MoveDown:
			if row < e.doc.RowCount()-1 {
				e.cursor = e.doc.PositionOf(row+1, col)
			}
		}
	}
	// don't go past the end of the current line
	e.KeepCursorInRow()
}

func (e *Editor) MoveToBeginningOfLine() {
	row, _ := e.doc.PointOf(e.cursor)
	e.cursor, _ = e.doc.RowBounds(row)
}

func (e *Editor) MoveToEndOfLine() {
	row, _ := e.doc.PointOf(e.cursor)
	_, e.cursor = e.doc.RowBounds(row)
	e.KeepCursorInRow()
}

func isWordChar(c rune) bool {
	return unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_'
}

// WordEnd returns the position after the multiplier words starting at
// pos, including the spaces that follow each word. It does not cross the
// end of the row.
func (e *Editor) WordEnd(pos int, multiplier int) int {
	row, _ := e.doc.PointOf(pos)
	_, end := e.doc.RowBounds(row)
	for i := 0; i < multiplier && pos < end; i++ {
		c := e.doc.RuneAt(pos)
		switch {
		case isWordChar(c):
			for pos < end && isWordChar(e.doc.RuneAt(pos)) {
				pos++
			}
		case !unicode.IsSpace(c):
			for pos < end && !isWordChar(e.doc.RuneAt(pos)) && !unicode.IsSpace(e.doc.RuneAt(pos)) {
				pos++
			}
		}
		for pos < end && unicode.IsSpace(e.doc.RuneAt(pos)) {
			pos++
		}
	}
	return pos
}

func (e *Editor) MoveCursorToNextWord(multiplier int) {
	n := e.doc.Len()
	for i := 0; i < multiplier; i++ {
		pos := e.cursor
		for pos < n && !unicode.IsSpace(e.doc.RuneAt(pos)) {
			pos++
		}
		for pos < n && unicode.IsSpace(e.doc.RuneAt(pos)) {
			pos++
		}
		if pos >= n {
			break
		}
		e.cursor = pos
	}
	e.KeepCursorInRow()
}

func (e *Editor) MoveCursorToPreviousWord(multiplier int) {
	for i := 0; i < multiplier; i++ {
		pos := e.cursor
		for pos > 0 && unicode.IsSpace(e.doc.RuneAt(pos-1)) {
			pos--
		}
		for pos > 0 && !unicode.IsSpace(e.doc.RuneAt(pos-1)) {
			pos--
		}
		e.cursor = pos
	}
}

func (e *Editor) PageUp(multiplier int) {
	row := e.GetPoint().Row
	// move to the top of the screen
	if row > e.Offset.Rows {
		row = e.Offset.Rows
	}
	// move up by a page
	row -= e.size.Rows * multiplier
	if row < 0 {
		row = 0
	}
	e.cursor = e.doc.PositionOf(row, 0)
}

func (e *Editor) PageDown(multiplier int) {
	// move to the bottom of the screen
	row := e.Offset.Rows + e.size.Rows - 1
	// move down by a page
	row += e.size.Rows * (multiplier - 1)
	if row < e.GetPoint().Row {
		row = e.GetPoint().Row
	}
	row = clipToRange(row, 0, e.doc.RowCount()-1)
	e.cursor = e.doc.PositionOf(row, 0)
}

func (e *Editor) halfPage() int {
	if e.size.Rows < 2 {
		return 1
	}
	return e.size.Rows / 2
}

func (e *Editor) HalfPageUp(multiplier int) {
	col := e.GetPoint().Col
	// move to the top of the screen
	row := e.GetPoint().Row
	if row > e.Offset.Rows {
		row = e.Offset.Rows
	}
	// move up by half a page
	row -= e.halfPage() * multiplier
	row = clipToRange(row, 0, e.doc.RowCount()-1)
	e.cursor = e.doc.PositionOf(row, col)
	e.KeepCursorInRow()
}

func (e *Editor) HalfPageDown(multiplier int) {
	col := e.GetPoint().Col
	// move to the bottom of the screen
	row := e.Offset.Rows + e.size.Rows - 1
	if row < e.GetPoint().Row {
		row = e.GetPoint().Row
	}
	// move down by half a page
	row += e.halfPage() * multiplier
	row = clipToRange(row, 0, e.doc.RowCount()-1)
	e.cursor = e.doc.PositionOf(row, col)
	e.KeepCursorInRow()
}

// Scroll keeps the cursor cell inside the editing area.
func (e *Editor) Scroll() {
	row := e.GetPoint().Row
	col := e.cursorColumn()
	cols := e.textColumns()
	if row < e.Offset.Rows {
		e.Offset.Rows = row
	}
	if e.size.Rows > 0 && row-e.Offset.Rows >= e.size.Rows {
		e.Offset.Rows = row - e.size.Rows + 1
	}
	if col < e.Offset.Cols {
		e.Offset.Cols = col
	}
	if cols > 0 && col-e.Offset.Cols >= cols {
		e.Offset.Cols = col - cols + 1
	}
}
