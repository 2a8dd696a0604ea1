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
package types

import (
	"github.com/timburks/rtfed/document"
	"github.com/timburks/rtfed/prefs"
)

// Editor modes
const (
	ModeEdit    = 0
	ModeInsert  = 1
	ModeCommand = 2
	ModeLisp    = 3
	ModeVisual  = 4
	ModeSearch  = 5
	ModeQuit    = 9999
)

// Move directions
const (
	MoveUp    = 0
	MoveDown  = 1
	MoveRight = 2
	MoveLeft  = 3
)

// Insert positions
const (
	InsertAtCursor             = 0
	InsertAfterCursor          = 1
	InsertAtStartOfLine        = 2
	InsertAfterEndOfLine       = 3
	InsertAtNewLineBelowCursor = 4
	InsertAtNewLineAboveCursor = 5
)

// Paste modes
const (
	PasteAtCursor = 0
	PasteNewLine  = 1
)

type Point struct {
	Row int
	Col int
}

type Size struct {
	Rows int
	Cols int
}

// Style is how a single screen cell is drawn.
type Style struct {
	Fg      prefs.RGB
	Bg      prefs.RGB
	Bold    bool
	Italic  bool
	Reverse bool
}

type Display interface {
	SetCell(col int, row int, c rune, style Style)
}

// Editor positions are rune offsets into the document.
type Editor interface {
	GetCursor() int
	SetCursor(pos int)
	GetPoint() Point
	GetCursorCell() Point
	SetSize(size Size)
	GetOffset() Size
	Len() int

	RowBounds(row int) (start, end int)
	WordEnd(pos int, multiplier int) int

	InsertChar(c rune)
	InsertText(runs []document.Run, position int) (start int, newline int, mode int)
	InsertRuns(pos int, runs []document.Run)
	DeleteRange(start, end int) []document.Run
	SliceRange(start, end int) []document.Run
	ReplaceRange(start, end int, runs []document.Run) []document.Run
	ReplaceCharacterAt(pos int, c rune) rune
	ToggleTrait(start, end int, trait document.Trait) bool
	ToggleTypingTrait(trait document.Trait)
	TypingTraits() document.Traits

	StartSelection()
	ClearSelection()
	GetSelection() (start, end int, ok bool)

	SetPasteBoard(runs []document.Run, mode int)
	GetPasteMode() int
	GetPasteRuns() []document.Run
	SetInsertOperation(insert InsertOperation)

	Scroll()

	Perform(op Operation, multiplier int)
	YankRow(multiplier int)
	YankSelection()
	PageUp(multiplier int)
	PageDown(multiplier int)
	HalfPageUp(multiplier int)
	HalfPageDown(multiplier int)
	PerformSearch(text string) bool

	MoveToBeginningOfLine()
	MoveToEndOfLine()
	MoveCursor(direction int, multiplier int)
	MoveCursorToNextWord(multiplier int)
	MoveCursorToPreviousWord(multiplier int)
	PerformUndo()
	Repeat()
	CloseInsert()
	KeepCursorInRow()
	BackspaceChar() rune

	Render(display Display, origin Point, size Size)
}

type Operation interface {
	Perform(e Editor, multiplier int) Operation // performs the operation and returns its inverse
}

type InsertOperation interface {
	Operation
	AddCharacter(c rune, traits document.Traits)
	DeleteCharacter()
	Close()
	Length() int
}

type Commander interface {
	SetMode(int)
	GetMode() int
	GetCommand() string
	GetLispText() string
	GetSearchText() string
	GetMessage() string
	GetInfo() string
}
