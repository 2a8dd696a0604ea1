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
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/timburks/rtfed/document"
	gott "github.com/timburks/rtfed/types"
)

// ChangeWord replaces words with typed text.
type ChangeWord struct {
	operation
	Runs      []document.Run
	Commander gott.Commander
	delete    *DeleteCharacter
}

func (op *ChangeWord) Perform(e gott.Editor, multiplier int) gott.Operation {
	op.init(e, multiplier)

	replay := len(op.Runs) > 0
	if replay {
		e.SetCursor(op.Cursor)
	} else {
		e.SetInsertOperation(op)
	}

	// the word without the spaces after it
	end := e.WordEnd(op.Cursor, op.Multiplier)
	text := strings.TrimRightFunc(document.RunsText(e.SliceRange(op.Cursor, end)), unicode.IsSpace)
	end = op.Cursor + utf8.RuneCountInString(text)

	removed := e.DeleteRange(op.Cursor, end)
	e.SetCursor(op.Cursor)

	_, _, newMode := e.InsertText(op.Runs, gott.InsertAtCursor)
	if op.Commander != nil {
		op.Commander.SetMode(newMode)
	}

	op.delete = &DeleteCharacter{}
	op.delete.copyForUndo(&op.operation)
	op.delete.Multiplier = document.RunsLen(op.Runs)

	inverse := &Sequence{Operations: []gott.Operation{op.delete}}
	inverse.copyForUndo(&op.operation)
	if document.RunsLen(removed) > 0 {
		reinsert := &Insert{Position: gott.InsertAtCursor, Runs: removed}
		reinsert.copyForUndo(&op.operation)
		inverse.Operations = append(inverse.Operations, reinsert)
	}
	return inverse
}

func (op *ChangeWord) Length() int {
	return document.RunsLen(op.Runs)
}

func (op *ChangeWord) AddCharacter(c rune, traits document.Traits) {
	op.Runs = appendRune(op.Runs, c, traits)
}

func (op *ChangeWord) DeleteCharacter() {
	op.Runs = dropLastRune(op.Runs)
}

func (op *ChangeWord) Close() {
	if op.delete != nil {
		op.delete.Multiplier = document.RunsLen(op.Runs)
	}
}
