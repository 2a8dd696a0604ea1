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
package commander

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/timburks/rtfed/document"
	"github.com/timburks/rtfed/operations"
	"github.com/timburks/rtfed/prefs"
	"github.com/timburks/rtfed/reconcile"
	"github.com/timburks/rtfed/session"
	gott "github.com/timburks/rtfed/types"
)

// Editor is the editing surface the commander drives.
type Editor interface {
	gott.Editor
	LoadDocument(doc *document.Document)
	SetPreferences(p prefs.Preferences)
	Reconciled() reconcile.Result
	Text() string
}

// Session is the document lifecycle the commander drives.
type Session interface {
	NewDocument() error
	OpenDocument(path string) error
	Persist() error
	Rename(name string) error
	Relocate(folder string) error
	Location() session.Location
	Dirty() bool
	TakeDisplaySync() (*document.Document, bool)
}

// The Commander converts user input into commands for the Editor.
type Commander struct {
	editor      Editor
	session     Session
	prefs       *prefs.Manager
	mode        int    // editor mode
	debug       bool   // debug mode displays information about events (key codes, etc)
	editKeys    string // edit key sequences in progress
	command     string // command as it is being typed on the command line
	lispText    string // lisp command as it is being typed
	searchText  string // text to search for
	message     string // status message
	multiplier  string // multiplier string as it is being entered
	unsubscribe func()
}

func NewCommander(e Editor, s Session, p *prefs.Manager) *Commander {
	c := &Commander{editor: e, session: s, prefs: p, mode: gott.ModeEdit}
	e.SetPreferences(p.Get())
	c.unsubscribe = p.Subscribe(e.SetPreferences)
	current = c
	c.SyncDisplay()
	return c
}

// Close stops following preference changes.
func (c *Commander) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
	if current == c {
		current = nil
	}
}

func (c *Commander) GetMode() int {
	return c.mode
}

func (c *Commander) SetMode(m int) {
	c.mode = m
}

func (c *Commander) IsRunning() bool {
	return c.mode != gott.ModeQuit
}

// SyncDisplay loads the session's document into the editor after it was
// replaced by a new or opened document.
func (c *Commander) SyncDisplay() {
	if doc, ok := c.session.TakeDisplaySync(); ok {
		c.editor.LoadDocument(doc)
		c.mode = gott.ModeEdit
	}
}

func (c *Commander) ProcessEvent(event *gott.Event) error {
	if c.debug {
		c.message = fmt.Sprintf("event=%+v", event)
	}
	switch event.Type {
	case gott.EventKey:
		return c.ProcessKey(event)
	case gott.EventResize:
		return c.ProcessResize(event)
	default:
		return nil
	}
}

func (c *Commander) ProcessResize(event *gott.Event) error {
	return nil
}

func (c *Commander) ProcessKeyEditMode(event *gott.Event) error {
	e := c.editor

	key := event.Key
	ch := event.Ch

	// multikey commands have highest precedence
	if len(c.editKeys) > 0 {
		switch c.editKeys {
		case "c":
			switch ch {
			case 'w':
				e.Perform(&operations.ChangeWord{Commander: c}, c.Multiplier())
			}
		case "d":
			switch ch {
			case 'd':
				e.Perform(&operations.DeleteRow{}, c.Multiplier())
			case 'w':
				e.Perform(&operations.DeleteWord{}, c.Multiplier())
			}
		case "r":
			if key != 0 {
				if key == gott.KeySpace {
					e.Perform(&operations.ReplaceCharacter{Character: rune(' ')}, c.Multiplier())
				}
			} else if ch != 0 {
				e.Perform(&operations.ReplaceCharacter{Character: rune(event.Ch)}, c.Multiplier())
			}
		case "y":
			switch ch {
			case 'y': // YankRow
				e.YankRow(c.Multiplier())
			default:
				break
			}
		}
		c.editKeys = ""
		return nil
	}
	if key != 0 {
		switch key {
		case gott.KeyEsc:
			break
		case gott.KeyCtrlB, gott.KeyPgup:
			e.PageUp(c.Multiplier())
		case gott.KeyCtrlF, gott.KeyPgdn:
			e.PageDown(c.Multiplier())
		case gott.KeyCtrlD:
			e.HalfPageDown(c.Multiplier())
		case gott.KeyCtrlU:
			e.HalfPageUp(c.Multiplier())
		case gott.KeyCtrlA, gott.KeyHome:
			e.MoveToBeginningOfLine()
		case gott.KeyCtrlE, gott.KeyEnd:
			e.MoveToEndOfLine()
		case gott.KeyArrowUp:
			e.MoveCursor(gott.MoveUp, c.Multiplier())
		case gott.KeyArrowDown:
			e.MoveCursor(gott.MoveDown, c.Multiplier())
		case gott.KeyArrowLeft:
			e.MoveCursor(gott.MoveLeft, c.Multiplier())
		case gott.KeyArrowRight:
			e.MoveCursor(gott.MoveRight, c.Multiplier())
		case gott.KeyDelete:
			e.Perform(&operations.DeleteCharacter{}, c.Multiplier())
		}
	}
	if ch != 0 {
		switch ch {
		//
		// command multipliers are saved when operations are created
		//
		case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
			c.multiplier += string(ch)
		//
		// commands go to the message bar
		//
		case ':':
			c.mode = gott.ModeCommand
			c.command = ""
		//
		// lisp commands go to the message bar
		//
		case '(':
			c.mode = gott.ModeLisp
			c.lispText = "("
		//
		// searches go to the message bar
		//
		case '/':
			c.mode = gott.ModeSearch
			c.searchText = ""
		case 'n': // repeat the last search
			c.search()
		//
		// cursor movement isn't logged
		//
		case 'h':
			e.MoveCursor(gott.MoveLeft, c.Multiplier())
		case 'j':
			e.MoveCursor(gott.MoveDown, c.Multiplier())
		case 'k':
			e.MoveCursor(gott.MoveUp, c.Multiplier())
		case 'l':
			e.MoveCursor(gott.MoveRight, c.Multiplier())
		case 'w':
			e.MoveCursorToNextWord(c.Multiplier())
		case 'b':
			e.MoveCursorToPreviousWord(c.Multiplier())
		//
		// selections are made in visual mode
		//
		case 'v':
			e.StartSelection()
			c.mode = gott.ModeVisual
		//
		// "performed" operations are saved for undo and repetition
		//
		case 'i':
			e.Perform(&operations.Insert{Position: gott.InsertAtCursor, Commander: c}, c.Multiplier())
		case 'a':
			e.Perform(&operations.Insert{Position: gott.InsertAfterCursor, Commander: c}, c.Multiplier())
		case 'I':
			e.Perform(&operations.Insert{Position: gott.InsertAtStartOfLine, Commander: c}, c.Multiplier())
		case 'A':
			e.Perform(&operations.Insert{Position: gott.InsertAfterEndOfLine, Commander: c}, c.Multiplier())
		case 'o':
			e.Perform(&operations.Insert{Position: gott.InsertAtNewLineBelowCursor, Commander: c}, c.Multiplier())
		case 'O':
			e.Perform(&operations.Insert{Position: gott.InsertAtNewLineAboveCursor, Commander: c}, c.Multiplier())
		case 'x':
			e.Perform(&operations.DeleteCharacter{}, c.Multiplier())
		case 'J':
			e.Perform(&operations.JoinLine{}, c.Multiplier())
		case 'p': // PasteText
			e.Perform(&operations.Paste{}, c.Multiplier())
		case '~': // reverse case
			e.Perform(&operations.ReverseCaseCharacter{}, c.Multiplier())
		//
		// a few keys open multi-key commands
		//
		case 'c':
			c.editKeys = "c"
		case 'd':
			c.editKeys = "d"
		case 'y':
			c.editKeys = "y"
		case 'r':
			c.editKeys = "r"
		//
		// undo
		//
		case 'u':
			e.PerformUndo()
		//
		// repeat
		//
		case '.':
			e.Repeat()
		}
	}
	return nil
}

func (c *Commander) ProcessKeyInsertMode(event *gott.Event) error {
	e := c.editor

	key := event.Key
	ch := event.Ch
	if key != 0 {
		switch key {
		case gott.KeyEsc: // end an insert operation.
			e.CloseInsert()
			c.mode = gott.ModeEdit
			e.KeepCursorInRow()
		case gott.KeyBackspace2:
			e.BackspaceChar()
		case gott.KeyTab:
			e.InsertChar('\t')
		case gott.KeyEnter:
			e.InsertChar('\n')
		case gott.KeySpace:
			e.InsertChar(' ')
		case gott.KeyCtrlB:
			e.ToggleTypingTrait(document.Bold)
		case gott.KeyCtrlT:
			e.ToggleTypingTrait(document.Italic)
		}
	}
	if ch != 0 {
		e.InsertChar(ch)
	}
	return nil
}

func (c *Commander) ProcessKeyVisualMode(event *gott.Event) error {
	e := c.editor

	key := event.Key
	ch := event.Ch
	if key != 0 {
		switch key {
		case gott.KeyEsc:
			c.leaveVisual()
		case gott.KeyCtrlB:
			c.toggleSelection(document.Bold)
		case gott.KeyCtrlT:
			c.toggleSelection(document.Italic)
		case gott.KeyArrowUp:
			e.MoveCursor(gott.MoveUp, c.Multiplier())
		case gott.KeyArrowDown:
			e.MoveCursor(gott.MoveDown, c.Multiplier())
		case gott.KeyArrowLeft:
			e.MoveCursor(gott.MoveLeft, c.Multiplier())
		case gott.KeyArrowRight:
			e.MoveCursor(gott.MoveRight, c.Multiplier())
		case gott.KeyCtrlA, gott.KeyHome:
			e.MoveToBeginningOfLine()
		case gott.KeyCtrlE, gott.KeyEnd:
			e.MoveToEndOfLine()
		}
	}
	if ch != 0 {
		switch ch {
		case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
			c.multiplier += string(ch)
		case 'h':
			e.MoveCursor(gott.MoveLeft, c.Multiplier())
		case 'j':
			e.MoveCursor(gott.MoveDown, c.Multiplier())
		case 'k':
			e.MoveCursor(gott.MoveUp, c.Multiplier())
		case 'l':
			e.MoveCursor(gott.MoveRight, c.Multiplier())
		case 'w':
			e.MoveCursorToNextWord(c.Multiplier())
		case 'b':
			e.MoveCursorToPreviousWord(c.Multiplier())
		case 'B':
			c.toggleSelection(document.Bold)
		case 'I':
			c.toggleSelection(document.Italic)
		case 'y':
			e.YankSelection()
			c.leaveVisual()
		case 'd', 'x':
			if start, end, ok := e.GetSelection(); ok {
				e.Perform(&operations.DeleteSelection{Start: start, End: end}, 1)
			}
			c.leaveVisual()
		case ':':
			c.mode = gott.ModeCommand
			c.command = ""
		}
	}
	return nil
}

func (c *Commander) leaveVisual() {
	c.editor.ClearSelection()
	c.mode = gott.ModeEdit
	c.editor.KeepCursorInRow()
}

// toggleSelection toggles a trait over the selection, or for the next
// typed characters when nothing is selected.
func (c *Commander) toggleSelection(trait document.Trait) {
	start, end, ok := c.editor.GetSelection()
	if !ok {
		start, end = 0, 0
	}
	c.editor.Perform(&operations.ToggleTrait{Trait: trait, Start: start, End: end}, 1)
}

func (c *Commander) ProcessKeyCommandMode(event *gott.Event) error {
	key := event.Key
	ch := event.Ch
	if key != 0 {
		switch key {
		case gott.KeyEsc:
			c.command = ""
			c.endCommand()
		case gott.KeyEnter:
			c.PerformCommand()
		case gott.KeyBackspace2:
			if len(c.command) > 0 {
				c.command = c.command[0 : len(c.command)-1]
			}
		case gott.KeySpace:
			c.command += " "
		}
	}
	if ch != 0 {
		c.command = c.command + string(ch)
	}
	return nil
}

func (c *Commander) ProcessKeySearchMode(event *gott.Event) error {
	key := event.Key
	ch := event.Ch
	if key != 0 {
		switch key {
		case gott.KeyEsc:
			c.mode = gott.ModeEdit
		case gott.KeyEnter:
			c.mode = gott.ModeEdit
			c.search()
		case gott.KeyBackspace2:
			if len(c.searchText) > 0 {
				_, size := utf8.DecodeLastRuneInString(c.searchText)
				c.searchText = c.searchText[:len(c.searchText)-size]
			}
		case gott.KeySpace:
			c.searchText += " "
		}
	}
	if ch != 0 {
		c.searchText += string(ch)
	}
	return nil
}

func (c *Commander) search() {
	if c.searchText == "" {
		return
	}
	if c.editor.PerformSearch(c.searchText) {
		c.message = ""
	} else {
		c.message = "not found: " + c.searchText
	}
}

func (c *Commander) ProcessKeyLispMode(event *gott.Event) error {
	key := event.Key
	ch := event.Ch
	if key != 0 {
		switch key {
		case gott.KeyEsc:
			c.mode = gott.ModeEdit
		case gott.KeyEnter:
			c.message = c.ParseEval(c.lispText)
			if c.mode == gott.ModeLisp {
				c.mode = gott.ModeEdit
			}
		case gott.KeyBackspace2:
			if len(c.lispText) > 0 {
				c.lispText = c.lispText[0 : len(c.lispText)-1]
			}
		case gott.KeySpace:
			c.lispText += " "
		}
	}
	if ch != 0 {
		c.lispText = c.lispText + string(ch)
	}

	return nil
}

func (c *Commander) ProcessKey(event *gott.Event) error {
	var err error
	switch c.mode {
	case gott.ModeEdit:
		err = c.ProcessKeyEditMode(event)
	case gott.ModeInsert:
		err = c.ProcessKeyInsertMode(event)
	case gott.ModeVisual:
		err = c.ProcessKeyVisualMode(event)
	case gott.ModeCommand:
		err = c.ProcessKeyCommandMode(event)
	case gott.ModeLisp:
		err = c.ProcessKeyLispMode(event)
	case gott.ModeSearch:
		err = c.ProcessKeySearchMode(event)
	}
	return err
}

// endCommand returns to edit mode unless a command asked to quit. A
// selection made before the command ends with it.
func (c *Commander) endCommand() {
	if c.mode == gott.ModeQuit {
		return
	}
	c.editor.ClearSelection()
	c.mode = gott.ModeEdit
}

func (c *Commander) PerformCommand() {
	defer c.endCommand()
	e := c.editor

	line := strings.TrimSpace(c.command)
	c.command = ""
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return
	}
	// the rest of the line, which may contain spaces
	arg := strings.TrimSpace(strings.TrimPrefix(line, parts[0]))

	if i, err := strconv.Atoi(parts[0]); err == nil {
		start, _ := e.RowBounds(i - 1)
		if i < 1 {
			start = 0
		}
		e.SetCursor(start)
		e.MoveToBeginningOfLine()
		return
	}
	var err error
	c.message = ""
	switch parts[0] {
	case "q":
		c.mode = gott.ModeQuit
	case "w":
		err = c.Save()
	case "wq":
		if err = c.Save(); err == nil {
			c.mode = gott.ModeQuit
		}
	case "e":
		err = c.Open(arg)
	case "new":
		err = c.NewDocument()
	case "rename":
		err = c.session.Rename(arg)
	case "folder":
		err = c.session.Relocate(arg)
	case "font":
		err = c.prefs.SetFontFamily(arg)
	case "size":
		var pt float64
		if pt, err = strconv.ParseFloat(arg, 64); err == nil {
			err = c.prefs.SetFontSize(pt)
		}
	case "padding":
		var px float64
		if px, err = strconv.ParseFloat(arg, 64); err == nil {
			err = c.prefs.SetPadding(px)
		}
	case "fg", "bg":
		var color prefs.RGB
		if color, err = prefs.ParseHex(arg); err == nil {
			if parts[0] == "fg" {
				err = c.prefs.SetTextColor(color)
			} else {
				err = c.prefs.SetBackgroundColor(color)
			}
		}
	case "bold":
		c.toggleSelection(document.Bold)
	case "italic":
		c.toggleSelection(document.Italic)
	case "$":
		start, _ := e.RowBounds(e.Len())
		e.SetCursor(start)
		e.MoveToBeginningOfLine()
	case "eval": // evaluate the document as lisp
		c.message = c.ParseEval(e.Text())
	case "debug":
		if len(parts) == 2 {
			if parts[1] == "on" {
				c.debug = true
			} else if parts[1] == "off" {
				c.debug = false
				c.message = ""
			}
		}
	default:
		c.message = "unknown command: " + parts[0]
	}
	if err != nil {
		c.message = err.Error()
	}
}

// Save writes the document now.
func (c *Commander) Save() error {
	err := c.session.Persist()
	if errors.Is(err, session.ErrNoDestination) {
		return errors.New("no folder chosen, use :folder <dir>")
	}
	return err
}

func (c *Commander) Open(path string) error {
	if path == "" {
		return errors.New("no file name")
	}
	if err := c.session.OpenDocument(path); err != nil {
		return err
	}
	c.SyncDisplay()
	return nil
}

func (c *Commander) NewDocument() error {
	err := c.session.NewDocument()
	c.SyncDisplay()
	return err
}

func (c *Commander) Multiplier() int {
	if c.multiplier == "" {
		return 1
	}
	i, err := strconv.ParseInt(c.multiplier, 10, 64)
	if err != nil {
		c.multiplier = ""
		return 1
	}
	c.multiplier = ""
	return int(i)
}

func (c *Commander) GetSearchText() string {
	return c.searchText
}

func (c *Commander) GetLispText() string {
	return c.lispText
}

func (c *Commander) GetCommand() string {
	return c.command
}

func (c *Commander) GetMessage() string {
	return c.message
}

// GetInfo describes the document and the typing state for the info bar.
func (c *Commander) GetInfo() string {
	loc := c.session.Location()
	name := loc.FileName
	if name == "" {
		name = "[no file]"
	}
	if c.session.Dirty() {
		name += " +"
	}
	font := c.editor.Reconciled().Typing.Font
	var marks string
	if font.Bold {
		marks += "[B]"
	}
	if font.Italic {
		marks += "[I]"
	}
	return fmt.Sprintf("%s - %s %gpt %s", name, font.Family, font.SizePt, marks)
}
