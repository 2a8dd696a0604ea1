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
	gott "github.com/timburks/rtfed/types"
)

// JoinLine joins rows by deleting the newlines that end them.
type JoinLine struct {
	operation
}

func (op *JoinLine) Perform(e gott.Editor, multiplier int) gott.Operation {
	op.init(e, multiplier)
	var inverses []gott.Operation
	for i := 0; i < op.Multiplier; i++ {
		_, end := e.RowBounds(e.GetPoint().Row)
		if end >= e.Len() {
			break
		}
		removed := e.DeleteRange(end, end+1)
		e.SetCursor(end)
		inverse := &Insert{Position: gott.InsertAtCursor, Runs: removed}
		inverse.copyForUndo(&op.operation)
		inverse.Cursor = end
		inverses = append([]gott.Operation{inverse}, inverses...)
	}
	e.KeepCursorInRow()
	if len(inverses) == 0 {
		return nil
	}
	inverse := &Sequence{Operations: inverses}
	inverse.copyForUndo(&op.operation)
	return inverse
}
