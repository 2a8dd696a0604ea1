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

// ToggleTrait toggles bold or italic over a range of text. An empty range
// toggles the trait for the characters typed next.
type ToggleTrait struct {
	operation
	Trait document.Trait
	Start int
	End   int
}

func (op *ToggleTrait) Perform(e gott.Editor, multiplier int) gott.Operation {
	op.init(e, multiplier)
	if op.Start >= op.End {
		e.ToggleTypingTrait(op.Trait)
		return nil
	}
	before := e.SliceRange(op.Start, op.End)
	e.ToggleTrait(op.Start, op.End, op.Trait)
	e.SetCursor(op.Cursor)
	inverse := &ReplaceRuns{Start: op.Start, Runs: before}
	inverse.copyForUndo(&op.operation)
	return inverse
}

// ReplaceRuns replaces as much text as it carries, starting at Start.
type ReplaceRuns struct {
	operation
	Start int
	Runs  []document.Run
}

func (op *ReplaceRuns) Perform(e gott.Editor, multiplier int) gott.Operation {
	op.init(e, multiplier)
	removed := e.ReplaceRange(op.Start, op.Start+document.RunsLen(op.Runs), op.Runs)
	e.SetCursor(op.Cursor)
	inverse := &ReplaceRuns{Start: op.Start, Runs: removed}
	inverse.copyForUndo(&op.operation)
	return inverse
}
