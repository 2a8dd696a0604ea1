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
package operations

import (
	"github.com/timburks/rtfed/document"
	gott "github.com/timburks/rtfed/types"
)

// DeleteCharacter deletes characters at the cursor. Outside of undo it
// stops at the end of the row.
type DeleteCharacter struct {
	operation
}

func (op *DeleteCharacter) Perform(e gott.Editor, multiplier int) gott.Operation {
	op.init(e, multiplier)
	start := op.Cursor
	end := start + op.Multiplier
	if !op.Undo {
		_, rowEnd := e.RowBounds(e.GetPoint().Row)
		if end > rowEnd {
			end = rowEnd
		}
	}
	removed := e.DeleteRange(start, end)
	e.SetCursor(start)
	if !op.Undo {
		e.KeepCursorInRow()
	}
	if document.RunsLen(removed) == 0 {
		return nil
	}
	inverse := &Insert{Position: gott.InsertAtCursor, Runs: removed}
	inverse.copyForUndo(&op.operation)
	inverse.Cursor = start
	return inverse
}

// DeleteWord deletes words and the spaces after them. At the end of a row
// it joins the next row.
type DeleteWord struct {
	operation
}

func (op *DeleteWord) Perform(e gott.Editor, multiplier int) gott.Operation {
	op.init(e, multiplier)
	end := e.WordEnd(op.Cursor, op.Multiplier)
	if end == op.Cursor && end < e.Len() {
		end++
	}
	removed := e.DeleteRange(op.Cursor, end)
	if document.RunsLen(removed) == 0 {
		return nil
	}
	e.SetPasteBoard(removed, gott.PasteAtCursor)
	e.SetCursor(op.Cursor)
	e.KeepCursorInRow()
	inverse := &Insert{Position: gott.InsertAtCursor, Runs: removed}
	inverse.copyForUndo(&op.operation)
	return inverse
}

// DeleteRow deletes whole rows and puts them on the pasteboard.
type DeleteRow struct {
	operation
}

func (op *DeleteRow) Perform(e gott.Editor, multiplier int) gott.Operation {
	op.init(e, multiplier)
	if e.Len() == 0 {
		return nil
	}
	row := e.GetPoint().Row
	start, _ := e.RowBounds(row)
	_, end := e.RowBounds(row + op.Multiplier - 1)

	yanked := e.SliceRange(start, end)
	yanked = append(yanked, document.Run{Text: "\n"})
	e.SetPasteBoard(yanked, gott.PasteNewLine)

	// take the newline after the rows, or before them on the last row
	if end < e.Len() {
		end++
	} else if start > 0 {
		start--
	}
	removed := e.DeleteRange(start, end)
	e.SetCursor(start)
	e.MoveToBeginningOfLine()

	inverse := &Insert{Position: gott.InsertAtCursor, Runs: removed}
	inverse.copyForUndo(&op.operation)
	inverse.Cursor = start
	return inverse
}

// DeleteSelection deletes a selected range and puts it on the pasteboard.
type DeleteSelection struct {
	operation
	Start int
	End   int
}

func (op *DeleteSelection) Perform(e gott.Editor, multiplier int) gott.Operation {
	op.init(e, multiplier)
	removed := e.DeleteRange(op.Start, op.End)
	if document.RunsLen(removed) == 0 {
		return nil
	}
	e.SetPasteBoard(removed, gott.PasteAtCursor)
	e.SetCursor(op.Start)
	e.KeepCursorInRow()
	inverse := &Insert{Position: gott.InsertAtCursor, Runs: removed}
	inverse.copyForUndo(&op.operation)
	inverse.Cursor = op.Start
	return inverse
}
