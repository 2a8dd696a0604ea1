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

// ReplaceCharacter replaces the character at the cursor, keeping its traits.
type ReplaceCharacter struct {
	operation
	Character rune
}

func (op *ReplaceCharacter) Perform(e gott.Editor, multiplier int) gott.Operation {
	op.init(e, multiplier)
	old := e.ReplaceCharacterAt(op.Cursor, op.Character)
	e.SetCursor(op.Cursor)
	if old == rune(0) || old == '\n' || old == op.Character {
		return nil
	}
	inverse := &ReplaceCharacter{Character: old}
	inverse.copyForUndo(&op.operation)
	return inverse
}
