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

// Paste pastes the contents of the pasteboard into the document.
type Paste struct {
	operation
}

func (op *Paste) Perform(e gott.Editor, multiplier int) gott.Operation {
	op.init(e, multiplier)
	runs := e.GetPasteRuns()
	if document.RunsLen(runs) == 0 {
		return nil
	}
	runs = repeatRuns(runs, op.Multiplier)

	_, rowEnd := e.RowBounds(e.GetPoint().Row)
	pos := op.Cursor
	cursor := pos
	if e.GetPasteMode() == gott.PasteNewLine {
		if rowEnd < e.Len() {
			pos = rowEnd + 1
			cursor = pos
		} else {
			// the last row has no newline to paste after
			pos = rowEnd
			cursor = pos + 1
			runs = append([]document.Run{{Text: "\n"}}, trimTrailingNewline(runs)...)
		}
	} else if pos < rowEnd {
		pos++
		cursor = pos
	}

	e.InsertRuns(pos, runs)
	e.SetCursor(cursor)

	inverse := &DeleteCharacter{}
	inverse.copyForUndo(&op.operation)
	inverse.Cursor = pos
	inverse.Multiplier = document.RunsLen(runs)
	return inverse
}

func trimTrailingNewline(runs []document.Run) []document.Run {
	out := append([]document.Run(nil), runs...)
	n := len(out)
	if n == 0 {
		return out
	}
	text := out[n-1].Text
	if len(text) > 0 && text[len(text)-1] == '\n' {
		out[n-1].Text = text[:len(text)-1]
		if out[n-1].Text == "" {
			out = out[:n-1]
		}
	}
	return out
}
