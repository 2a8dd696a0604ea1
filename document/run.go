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

package document

import "unicode/utf8"

// A Trait is a character-level style flag.
type Trait int

const (
	Bold Trait = iota
	Italic
)

func (t Trait) String() string {
	switch t {
	case Bold:
		return "bold"
	case Italic:
		return "italic"
	default:
		return "unknown"
	}
}

// Traits holds the character-level style of a run.
type Traits struct {
	Bold   bool
	Italic bool
}

func (t Traits) Has(trait Trait) bool {
	switch trait {
	case Bold:
		return t.Bold
	case Italic:
		return t.Italic
	}
	return false
}

func (t Traits) With(trait Trait, on bool) Traits {
	switch trait {
	case Bold:
		t.Bold = on
	case Italic:
		t.Italic = on
	}
	return t
}

func (t Traits) Toggled(trait Trait) Traits {
	return t.With(trait, !t.Has(trait))
}

// A Run is a span of text sharing one set of traits.
type Run struct {
	Text   string
	Traits Traits
}

// Len returns the length of the run in runes.
func (r Run) Len() int {
	return utf8.RuneCountInString(r.Text)
}
