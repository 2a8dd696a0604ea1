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
package screen

import (
	"log"

	"github.com/mattn/go-runewidth"
	"github.com/nsf/termbox-go"

	"github.com/timburks/rtfed/prefs"
	gott "github.com/timburks/rtfed/types"
)

// The Screen draws the state of an Editor.
type Screen struct {
	size   gott.Size                       // screen size
	colors map[prefs.RGB]termbox.Attribute // nearest palette colors already found
}

func NewScreen() *Screen {
	// Open the terminal.
	err := termbox.Init()
	if err != nil {
		log.Output(1, err.Error())
		return nil
	}
	termbox.SetOutputMode(termbox.Output256)
	return newScreen()
}

func newScreen() *Screen {
	return &Screen{colors: make(map[prefs.RGB]termbox.Attribute)}
}

func (s *Screen) Close() {
	termbox.Close()
}

func (s *Screen) Render(e gott.Editor, c gott.Commander) {
	termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)
	var screenSize gott.Size
	screenSize.Cols, screenSize.Rows = termbox.Size()
	s.size = screenSize

	editSize := screenSize
	editSize.Rows -= 2
	if editSize.Rows < 0 {
		editSize.Rows = 0
	}
	e.SetSize(editSize)

	e.Scroll()
	e.Render(s, gott.Point{Row: 0, Col: 0}, editSize)
	s.RenderInfoBar(c)
	s.RenderMessageBar(c)
	cursor := e.GetCursorCell()
	switch c.GetMode() {
	case gott.ModeCommand, gott.ModeLisp, gott.ModeSearch:
		termbox.HideCursor()
	default:
		termbox.SetCursor(cursor.Col, cursor.Row)
	}
	termbox.Flush()
}

// SetCell draws one cell of the editing area.
func (s *Screen) SetCell(col int, row int, c rune, style gott.Style) {
	fg, bg := s.attributes(style)
	termbox.SetCell(col, row, c, fg, bg)
}

func (s *Screen) attributes(style gott.Style) (termbox.Attribute, termbox.Attribute) {
	fg := s.color(style.Fg)
	bg := s.color(style.Bg)
	if style.Bold {
		fg |= termbox.AttrBold
	}
	if style.Italic {
		fg |= termbox.AttrCursive
	}
	if style.Reverse {
		fg |= termbox.AttrReverse
	}
	return fg, bg
}

// color converts an RGB value to a termbox color. In 256 color mode
// termbox numbers palette entries from one.
func (s *Screen) color(c prefs.RGB) termbox.Attribute {
	if a, ok := s.colors[c]; ok {
		return a
	}
	a := termbox.Attribute(Nearest(c) + 1)
	s.colors[c] = a
	return a
}

func (s *Screen) RenderInfoBar(c gott.Commander) {
	text := runewidth.FillRight(" "+c.GetInfo(), s.size.Cols)
	text = runewidth.Truncate(text, s.size.Cols, "")
	x := 0
	for _, ch := range text {
		termbox.SetCell(x, s.size.Rows-2, ch, termbox.ColorBlack, termbox.ColorWhite)
		x += runewidth.RuneWidth(ch)
	}
}

func (s *Screen) RenderMessageBar(c gott.Commander) {
	var line string
	switch c.GetMode() {
	case gott.ModeCommand:
		line += ":" + c.GetCommand()
	case gott.ModeLisp:
		line += c.GetLispText()
	case gott.ModeSearch:
		line += "/" + c.GetSearchText()
	case gott.ModeInsert:
		line += "-- INSERT --"
	case gott.ModeVisual:
		line += "-- VISUAL --"
	default:
		line += c.GetMessage()
	}
	line = runewidth.Truncate(line, s.size.Cols, "")
	x := 0
	for _, ch := range line {
		termbox.SetCell(x, s.size.Rows-1, ch, termbox.ColorDefault, termbox.ColorDefault)
		x += runewidth.RuneWidth(ch)
	}
}

func (s *Screen) GetNextEvent() *gott.Event {
	event := termbox.PollEvent()
	if event.Type == termbox.EventResize {
		termbox.Flush()
	}
	return &gott.Event{
		Type: eventType(event.Type),
		Key:  key(event.Key),
		Ch:   event.Ch,
	}
}

func eventType(t termbox.EventType) int {
	switch t {
	case termbox.EventKey:
		return gott.EventKey
	case termbox.EventResize:
		return gott.EventResize
	default:
		return gott.EventOther
	}
}

func key(k termbox.Key) gott.Key {
	if k == 0 {
		return 0
	}
	switch k {
	case termbox.KeyArrowDown:
		return gott.KeyArrowDown
	case termbox.KeyArrowLeft:
		return gott.KeyArrowLeft
	case termbox.KeyArrowRight:
		return gott.KeyArrowRight
	case termbox.KeyArrowUp:
		return gott.KeyArrowUp
	case termbox.KeyBackspace2:
		return gott.KeyBackspace2
	case termbox.KeyCtrlA:
		return gott.KeyCtrlA
	case termbox.KeyCtrlB:
		return gott.KeyCtrlB
	case termbox.KeyCtrlC:
		return gott.KeyCtrlC
	case termbox.KeyCtrlD:
		return gott.KeyCtrlD
	case termbox.KeyCtrlE:
		return gott.KeyCtrlE
	case termbox.KeyCtrlF:
		return gott.KeyCtrlF
	case termbox.KeyCtrlG:
		return gott.KeyCtrlG
	case termbox.KeyCtrlH:
		return gott.KeyCtrlH
	case termbox.KeyCtrlJ:
		return gott.KeyCtrlJ
	case termbox.KeyCtrlK:
		return gott.KeyCtrlK
	case termbox.KeyCtrlL:
		return gott.KeyCtrlL
	case termbox.KeyCtrlN:
		return gott.KeyCtrlN
	case termbox.KeyCtrlO:
		return gott.KeyCtrlO
	case termbox.KeyCtrlP:
		return gott.KeyCtrlP
	case termbox.KeyCtrlQ:
		return gott.KeyCtrlQ
	case termbox.KeyCtrlR:
		return gott.KeyCtrlR
	case termbox.KeyCtrlS:
		return gott.KeyCtrlS
	case termbox.KeyCtrlT:
		return gott.KeyCtrlT
	case termbox.KeyCtrlU:
		return gott.KeyCtrlU
	case termbox.KeyCtrlV:
		return gott.KeyCtrlV
	case termbox.KeyCtrlW:
		return gott.KeyCtrlW
	case termbox.KeyCtrlX:
		return gott.KeyCtrlX
	case termbox.KeyCtrlY:
		return gott.KeyCtrlY
	case termbox.KeyCtrlZ:
		return gott.KeyCtrlZ
	case termbox.KeyDelete:
		return gott.KeyDelete
	case termbox.KeyEnd:
		return gott.KeyEnd
	case termbox.KeyEnter:
		return gott.KeyEnter
	case termbox.KeyEsc:
		return gott.KeyEsc
	case termbox.KeyHome:
		return gott.KeyHome
	case termbox.KeyPgdn:
		return gott.KeyPgdn
	case termbox.KeyPgup:
		return gott.KeyPgup
	case termbox.KeySpace:
		return gott.KeySpace
	case termbox.KeyTab:
		return gott.KeyTab
	default:
		return gott.KeyUnsupported
	}
}
