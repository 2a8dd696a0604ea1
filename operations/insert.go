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

// Insert adds styled text at a position relative to the cursor. Without
// runs it puts the editor in insert mode and collects what is typed.
type Insert struct {
	operation
	Position  int
	Runs      []document.Run
	Inverse   *DeleteCharacter
	Commander gott.Commander
	newline   int
}

func (op *Insert) Perform(e gott.Editor, multiplier int) gott.Operation {
	op.init(e, multiplier)

	if len(op.Runs) > 0 {
		e.SetCursor(op.Cursor)
	} else {
		e.SetInsertOperation(op)
	}

	start, newline, newMode := e.InsertText(op.Runs, op.Position)
	if op.Commander != nil {
		op.Commander.SetMode(newMode)
	}
	op.newline = newline

	inverse := &DeleteCharacter{}
	inverse.copyForUndo(&op.operation)
	inverse.Cursor = start
	if newline >= 0 && newline < start {
		inverse.Cursor = newline
	}
	inverse.Multiplier = op.inverseLength()
	op.Inverse = inverse
	return inverse
}

func (op *Insert) inverseLength() int {
	n := document.RunsLen(op.Runs)
	if op.newline >= 0 {
		n++
	}
	return n
}

func (op *Insert) Length() int {
	return document.RunsLen(op.Runs)
}

func (op *Insert) AddCharacter(c rune, traits document.Traits) {
	op.Runs = appendRune(op.Runs, c, traits)
}

func (op *Insert) DeleteCharacter() {
	op.Runs = dropLastRune(op.Runs)
}

func (op *Insert) Close() {
	if op.Inverse != nil {
		op.Inverse.Multiplier = op.inverseLength()
	}
}
