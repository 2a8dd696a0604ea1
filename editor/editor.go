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
package editor

import (
	"github.com/timburks/rtfed/document"
	"github.com/timburks/rtfed/prefs"
	"github.com/timburks/rtfed/reconcile"
	gott "github.com/timburks/rtfed/types"
)

// A Listener is told about every change to the working copy.
type Listener interface {
	OnContentChanged(runs []document.Run)
}

// The Editor manages the editing of a working copy of the document.
type Editor struct {
	doc       *document.Document   // working copy
	cursor    int                  // cursor position
	anchor    int                  // selection anchor, -1 without a selection
	typing    document.Traits      // toggled bold/italic state
	typingAt  int                  // cursor position where typing was toggled, -1 if none
	prefs     prefs.Preferences    // viewer preferences used for rendering
	listener  Listener             // receives content changes
	Offset    gott.Size            // display offset
	size      gott.Size            // size of editing area
	pasteRuns []document.Run       // used to cut/copy and paste
	pasteMode int                  // how to paste the runs on the pasteboard
	previous  gott.Operation       // last operation performed, available to repeat
	undo      []gott.Operation     // stack of operations to undo
	insert    gott.InsertOperation // when in insert mode, the current insert operation
	inserting bool                 // insert mode allows the cursor past the last character of a row
}

func NewEditor(listener Listener) *Editor {
	return &Editor{
		doc:      document.New(),
		anchor:   -1,
		typingAt: -1,
		prefs:    prefs.Defaults(),
		listener: listener,
	}
}

// LoadDocument replaces the working copy, typically after the session
// opened or created a document. It is not reported as a change.
func (e *Editor) LoadDocument(doc *document.Document) {
	e.doc = doc.Clone()
	e.cursor = 0
	e.anchor = -1
	e.typing = document.Traits{}
	e.typingAt = -1
	e.Offset = gott.Size{}
	e.previous = nil
	e.undo = nil
	e.insert = nil
	e.inserting = false
}

// Document returns a copy of the working copy.
func (e *Editor) Document() *document.Document {
	return e.doc.Clone()
}

func (e *Editor) Text() string {
	return e.doc.Text()
}

func (e *Editor) Len() int {
	return e.doc.Len()
}

func (e *Editor) SetPreferences(p prefs.Preferences) {
	e.prefs = p.Clamped()
}

func (e *Editor) Preferences() prefs.Preferences {
	return e.prefs
}

func (e *Editor) changed() {
	if e.listener != nil {
		e.listener.OnContentChanged(e.doc.Runs())
	}
}

func (e *Editor) Perform(op gott.Operation, multiplier int) {
	// perform the operation
	inverse := op.Perform(e, multiplier)
	// save the operation for repeats
	e.previous = op
	// save the inverse of the operation for undo
	if inverse != nil {
		e.undo = append(e.undo, inverse)
	}
}

func (e *Editor) Repeat() {
	if e.previous != nil {
		inverse := e.previous.Perform(e, 0)
		if inverse != nil {
			e.undo = append(e.undo, inverse)
		}
	}
}

func (e *Editor) PerformUndo() {
	if len(e.undo) > 0 {
		last := len(e.undo) - 1
		undo := e.undo[last]
		e.undo = e.undo[0:last]
		undo.Perform(e, 0)
	}
}

// These editor primitives will make changes in insert mode and associate them with the current operation.

func (e *Editor) InsertChar(c rune) {
	traits := e.TypingTraits()
	if e.insert != nil {
		e.insert.AddCharacter(c, traits)
	}
	e.doc.Insert(e.cursor, string(c), traits)
	e.cursor++
	e.changed()
}

func (e *Editor) BackspaceChar() rune {
	if e.insert == nil || e.insert.Length() == 0 || e.cursor == 0 {
		return rune(0)
	}
	e.insert.DeleteCharacter()
	c := e.doc.RuneAt(e.cursor - 1)
	e.doc.Delete(e.cursor-1, e.cursor)
	e.cursor--
	e.changed()
	return c
}

// InsertText prepares an insertion at position and inserts runs there.
// It returns where the insertion starts, the position of a newline it
// added (or -1), and the mode to continue in: insert mode when there
// are no runs to insert yet.
func (e *Editor) InsertText(runs []document.Run, position int) (int, int, int) {
	e.ClearSelection()
	newline := -1
	row, _ := e.doc.PointOf(e.cursor)
	start, end := e.doc.RowBounds(row)
	switch position {
	case gott.InsertAtCursor:
		break
	case gott.InsertAfterCursor:
		if e.cursor < end {
			e.cursor++
		}
	case gott.InsertAtStartOfLine:
		e.cursor = start
	case gott.InsertAfterEndOfLine:
		e.cursor = end
	case gott.InsertAtNewLineBelowCursor:
		e.doc.Insert(end, "\n", e.traitsBefore(end))
		newline = end
		e.cursor = end + 1
	case gott.InsertAtNewLineAboveCursor:
		e.doc.Insert(start, "\n", e.traitsBefore(start))
		newline = start
		e.cursor = start
	}
	insertAt := e.cursor
	if len(runs) > 0 {
		e.doc.InsertRuns(e.cursor, runs)
		e.changed()
		return insertAt, newline, gott.ModeEdit
	}
	if newline >= 0 {
		e.changed()
	}
	e.inserting = true
	return insertAt, newline, gott.ModeInsert
}

func (e *Editor) traitsBefore(pos int) document.Traits {
	return reconcile.TypingTraits(e.doc, pos, e.typing)
}

func (e *Editor) InsertRuns(pos int, runs []document.Run) {
	if document.RunsLen(runs) == 0 {
		return
	}
	e.doc.InsertRuns(pos, runs)
	e.changed()
}

func (e *Editor) DeleteRange(start, end int) []document.Run {
	removed := e.doc.Delete(start, end)
	if document.RunsLen(removed) > 0 {
		e.changed()
	}
	e.clampCursor()
	return removed
}

func (e *Editor) SliceRange(start, end int) []document.Run {
	return e.doc.Slice(start, end)
}

func (e *Editor) ReplaceRange(start, end int, runs []document.Run) []document.Run {
	removed := e.doc.Replace(start, end, runs)
	e.changed()
	e.clampCursor()
	return removed
}

// ReplaceCharacterAt replaces the character at pos, keeping its traits,
// and returns the old character. Newlines are not replaced.
func (e *Editor) ReplaceCharacterAt(pos int, c rune) rune {
	if pos < 0 || pos >= e.doc.Len() {
		return rune(0)
	}
	old := e.doc.RuneAt(pos)
	if old == '\n' || old == c {
		return old
	}
	traits, _ := e.doc.TraitsAt(pos)
	e.doc.Replace(pos, pos+1, []document.Run{{Text: string(c), Traits: traits}})
	e.changed()
	return old
}

// ToggleTrait toggles a trait over a range. If any character in the range
// lacks the trait, all of them get it; otherwise all of them lose it.
func (e *Editor) ToggleTrait(start, end int, trait document.Trait) bool {
	on := e.doc.ToggleTrait(start, end, trait)
	if start != end {
		e.changed()
	}
	return on
}

// ToggleTypingTrait flips a trait for the characters typed next at the
// cursor. Existing text is not touched.
func (e *Editor) ToggleTypingTrait(trait document.Trait) {
	e.typing = e.TypingTraits().Toggled(trait)
	e.typingAt = e.cursor
}

// typingState returns the caret and toggled traits that decide the
// typing attributes. A toggle made at the caret wins over the preceding
// character.
func (e *Editor) typingState() (int, document.Traits) {
	if e.typingAt == e.cursor {
		return 0, e.typing
	}
	return e.cursor, e.typing
}

// TypingTraits returns the traits the next typed character will get.
func (e *Editor) TypingTraits() document.Traits {
	caret, toggled := e.typingState()
	return reconcile.TypingTraits(e.doc, caret, toggled)
}

// Reconciled returns the display, typing and storage attributes of the
// working copy at the cursor.
func (e *Editor) Reconciled() reconcile.Result {
	caret, toggled := e.typingState()
	return reconcile.Reconcile(e.doc, caret, toggled, e.prefs)
}

func (e *Editor) StartSelection() {
	e.anchor = e.cursor
}

func (e *Editor) ClearSelection() {
	e.anchor = -1
}

// GetSelection returns the selected range. The character under the
// cursor is part of the selection.
func (e *Editor) GetSelection() (int, int, bool) {
	if e.anchor < 0 {
		return 0, 0, false
	}
	start, end := e.anchor, e.cursor
	if start > end {
		start, end = end, start
	}
	end++
	if end > e.doc.Len() {
		end = e.doc.Len()
	}
	if start >= end {
		return 0, 0, false
	}
	return start, end, true
}

func (e *Editor) YankRow(multiplier int) {
	if e.doc.Len() == 0 {
		return
	}
	row, _ := e.doc.PointOf(e.cursor)
	start, _ := e.doc.RowBounds(row)
	last := row + multiplier - 1
	if last >= e.doc.RowCount() {
		last = e.doc.RowCount() - 1
	}
	_, end := e.doc.RowBounds(last)
	runs := e.doc.Slice(start, end)
	runs = append(runs, document.Run{Text: "\n", Traits: e.traitsBefore(end)})
	e.SetPasteBoard(runs, gott.PasteNewLine)
}

func (e *Editor) YankSelection() {
	if start, end, ok := e.GetSelection(); ok {
		e.SetPasteBoard(e.doc.Slice(start, end), gott.PasteAtCursor)
	}
}

func (e *Editor) SetPasteBoard(runs []document.Run, mode int) {
	e.pasteRuns = runs
	e.pasteMode = mode
}

func (e *Editor) GetPasteMode() int {
	return e.pasteMode
}

func (e *Editor) GetPasteRuns() []document.Run {
	return e.pasteRuns
}

func (e *Editor) SetInsertOperation(insert gott.InsertOperation) {
	e.insert = insert
}

func (e *Editor) CloseInsert() {
	if e.insert != nil {
		e.insert.Close()
	}
	e.insert = nil
	e.inserting = false
}

func (e *Editor) SetSize(s gott.Size) {
	e.size = s
}

func (e *Editor) GetOffset() gott.Size {
	return e.Offset
}
