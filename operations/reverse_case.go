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
	"unicode"

	gott "github.com/timburks/rtfed/types"
)

// ReverseCaseCharacter flips the case of characters from the cursor,
// stopping at the end of the row. Traits are kept.
type ReverseCaseCharacter struct {
	operation
}

func (op *ReverseCaseCharacter) Perform(e gott.Editor, multiplier int) gott.Operation {
	op.init(e, multiplier)
	_, end := e.RowBounds(e.GetPoint().Row)
	stop := op.Cursor + op.Multiplier
	if stop > end {
		stop = end
	}
	if op.Cursor >= stop {
		return nil
	}
	before := e.SliceRange(op.Cursor, stop)
	pos, changed := op.Cursor, false
	for _, run := range before {
		for _, c := range run.Text {
			if r := reverseCase(c); r != c {
				e.ReplaceCharacterAt(pos, r)
				changed = true
			}
			pos++
		}
	}
	// leave the cursor after the last character, but on the row
	if stop < end {
		e.SetCursor(stop)
	} else {
		e.SetCursor(end - 1)
	}
	if !changed {
		return nil
	}
	inverse := &ReplaceRuns{Start: op.Cursor, Runs: before}
	inverse.copyForUndo(&op.operation)
	return inverse
}

func reverseCase(c rune) rune {
	switch {
	case unicode.IsUpper(c):
		return unicode.ToLower(c)
	case unicode.IsLower(c):
		return unicode.ToUpper(c)
	}
	return c
}
