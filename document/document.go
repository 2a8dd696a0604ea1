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

import (
	"strings"
	"unicode/utf8"
)

// A Document is a sequence of styled runs.
// Adjacent runs never share the same traits and no run is empty;
// every mutating method restores this.
type Document struct {
	runs []Run
}

func New() *Document {
	return &Document{runs: make([]Run, 0)}
}

// FromRuns builds a document from runs, merging and dropping as needed.
func FromRuns(runs []Run) *Document {
	d := New()
	d.SetRuns(runs)
	return d
}

func (d *Document) SetRuns(runs []Run) {
	d.runs = normalize(runs)
}

// Runs returns a copy of the document's runs.
func (d *Document) Runs() []Run {
	out := make([]Run, len(d.runs))
	copy(out, d.runs)
	return out
}

func (d *Document) Clone() *Document {
	return &Document{runs: d.Runs()}
}

func (d *Document) Equal(other *Document) bool {
	if other == nil || len(d.runs) != len(other.runs) {
		return false
	}
	for i := range d.runs {
		if d.runs[i] != other.runs[i] {
			return false
		}
	}
	return true
}

// Len returns the length of the document in runes.
func (d *Document) Len() int {
	n := 0
	for _, r := range d.runs {
		n += r.Len()
	}
	return n
}

func (d *Document) IsEmpty() bool {
	return len(d.runs) == 0
}

func (d *Document) Text() string {
	var b strings.Builder
	for _, r := range d.runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// TraitsAt returns the traits of the character at pos.
func (d *Document) TraitsAt(pos int) (Traits, bool) {
	if pos < 0 {
		return Traits{}, false
	}
	n := 0
	for _, r := range d.runs {
		l := r.Len()
		if pos < n+l {
			return r.Traits, true
		}
		n += l
	}
	return Traits{}, false
}

// RuneAt returns the character at pos, or 0 if pos is out of range.
func (d *Document) RuneAt(pos int) rune {
	if pos < 0 {
		return 0
	}
	n := 0
	for _, r := range d.runs {
		l := r.Len()
		if pos < n+l {
			return []rune(r.Text)[pos-n]
		}
		n += l
	}
	return 0
}

func (d *Document) Insert(pos int, text string, t Traits) {
	if text == "" {
		return
	}
	d.InsertRuns(pos, []Run{{Text: text, Traits: t}})
}

func (d *Document) InsertRuns(pos int, runs []Run) {
	pos = d.clip(pos)
	d.Replace(pos, pos, runs)
}

// Delete removes the characters in [start, end) and returns them.
func (d *Document) Delete(start, end int) []Run {
	return d.Replace(start, end, nil)
}

// Slice returns a copy of the runs covering [start, end).
func (d *Document) Slice(start, end int) []Run {
	start, end = d.clipRange(start, end)
	if start == end {
		return []Run{}
	}
	c := d.Clone()
	s := c.split(start)
	e := c.split(end)
	out := make([]Run, e-s)
	copy(out, c.runs[s:e])
	return out
}

// Replace replaces the characters in [start, end) with runs and returns
// the runs that were removed.
func (d *Document) Replace(start, end int, runs []Run) []Run {
	start, end = d.clipRange(start, end)
	s := d.split(start)
	e := d.split(end)
	removed := make([]Run, e-s)
	copy(removed, d.runs[s:e])
	updated := make([]Run, 0, len(d.runs)-len(removed)+len(runs))
	updated = append(updated, d.runs[:s]...)
	updated = append(updated, runs...)
	updated = append(updated, d.runs[e:]...)
	d.runs = normalize(updated)
	return removed
}

// SetTrait turns a trait on or off for every character in [start, end).
func (d *Document) SetTrait(start, end int, trait Trait, on bool) {
	segment := d.Slice(start, end)
	for i := range segment {
		segment[i].Traits = segment[i].Traits.With(trait, on)
	}
	d.Replace(start, end, segment)
}

// ToggleTrait toggles a trait over [start, end) as one unit: if any
// character in the range lacks the trait, the whole range gains it,
// otherwise the whole range loses it. It returns the new state.
func (d *Document) ToggleTrait(start, end int, trait Trait) bool {
	start, end = d.clipRange(start, end)
	if start == end {
		return false
	}
	on := false
	for _, r := range d.Slice(start, end) {
		if !r.Traits.Has(trait) {
			on = true
			break
		}
	}
	d.SetTrait(start, end, trait, on)
	return on
}

func (d *Document) clip(pos int) int {
	if pos < 0 {
		return 0
	}
	if n := d.Len(); pos > n {
		return n
	}
	return pos
}

func (d *Document) clipRange(start, end int) (int, int) {
	start = d.clip(start)
	end = d.clip(end)
	if end < start {
		start, end = end, start
	}
	return start, end
}

// split makes pos a run boundary and returns the index of the first run
// at or after pos.
func (d *Document) split(pos int) int {
	n := 0
	for i, r := range d.runs {
		if pos == n {
			return i
		}
		l := r.Len()
		if pos < n+l {
			text := []rune(r.Text)
			head := Run{Text: string(text[:pos-n]), Traits: r.Traits}
			tail := Run{Text: string(text[pos-n:]), Traits: r.Traits}
			d.runs = append(d.runs[:i], append([]Run{head, tail}, d.runs[i+1:]...)...)
			return i + 1
		}
		n += l
	}
	return len(d.runs)
}

func normalize(runs []Run) []Run {
	out := make([]Run, 0, len(runs))
	for _, r := range runs {
		if r.Text == "" {
			continue
		}
		if last := len(out) - 1; last >= 0 && out[last].Traits == r.Traits {
			out[last].Text += r.Text
			continue
		}
		out = append(out, r)
	}
	return out
}

// RunsLen returns the total length in runes of a slice of runs.
func RunsLen(runs []Run) int {
	n := 0
	for _, r := range runs {
		n += utf8.RuneCountInString(r.Text)
	}
	return n
}

// RunsText concatenates the text of a slice of runs.
func RunsText(runs []Run) string {
	var b strings.Builder
	for _, r := range runs {
		b.WriteString(r.Text)
	}
	return b.String()
}
