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

type operation struct {
	Cursor     int
	Multiplier int
	Undo       bool
}

func (op *operation) init(e gott.Editor, multiplier int) {
	if op.Undo {
		e.SetCursor(op.Cursor)
	} else {
		op.Cursor = e.GetCursor()
		if op.Multiplier == 0 {
			op.Multiplier = multiplier
		}
		if op.Multiplier < 1 {
			op.Multiplier = 1
		}
	}
}

func (op *operation) copyForUndo(other *operation) {
	op.Cursor = other.Cursor
	op.Multiplier = other.Multiplier
	op.Undo = true
}

// appendRune adds a character to the end of runs, extending the last run
// when its traits match.
func appendRune(runs []document.Run, c rune, traits document.Traits) []document.Run {
	if n := len(runs); n > 0 && runs[n-1].Traits == traits {
		runs[n-1].Text += string(c)
		return runs
	}
	return append(runs, document.Run{Text: string(c), Traits: traits})
}

func dropLastRune(runs []document.Run) []document.Run {
	for len(runs) > 0 {
		last := []rune(runs[len(runs)-1].Text)
		if len(last) > 1 {
			runs[len(runs)-1].Text = string(last[:len(last)-1])
			return runs
		}
		runs = runs[:len(runs)-1]
		if len(last) == 1 {
			return runs
		}
	}
	return runs
}

func repeatRuns(runs []document.Run, n int) []document.Run {
	var out []document.Run
	for i := 0; i < n; i++ {
		out = append(out, runs...)
	}
	return out
}
