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

package rtf

import (
	"bytes"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

type destination int

const (
	destText destination = iota
	destFontTable
	destColorTable
	destSkip
)

// Destinations whose content is never text.
var skipped = map[string]bool{
	"stylesheet":         true,
	"info":               true,
	"pict":               true,
	"object":             true,
	"header":             true,
	"headerl":            true,
	"headerr":            true,
	"headerf":            true,
	"footer":             true,
	"footerl":            true,
	"footerr":            true,
	"footerf":            true,
	"footnote":           true,
	"fldinst":            true,
	"listtable":          true,
	"listoverridetable":  true,
	"rsidtbl":            true,
	"generator":          true,
	"filetbl":            true,
	"themedata":          true,
	"colorschememapping": true,
	"latentstyles":       true,
	"datastore":          true,
	"xmlnstbl":           true,
	"revtbl":             true,
}

var symbols = map[string]rune{
	"emdash":    '—',
	"endash":    '–',
	"emspace":   '\u2003',
	"enspace":   '\u2002',
	"bullet":    '•',
	"lquote":    '‘',
	"rquote":    '’',
	"ldblquote": '“',
	"rdblquote": '”',
}

var codePages = map[int]*charmap.Charmap{
	437:   charmap.CodePage437,
	850:   charmap.CodePage850,
	1250:  charmap.Windows1250,
	1251:  charmap.Windows1251,
	1252:  charmap.Windows1252,
	1253:  charmap.Windows1253,
	1254:  charmap.Windows1254,
	1255:  charmap.Windows1255,
	1256:  charmap.Windows1256,
	1257:  charmap.Windows1257,
	1258:  charmap.Windows1258,
	10000: charmap.Macintosh,
}

// state is the part of the reader that is saved and restored by groups.
type state struct {
	dest   destination
	bold   bool
	italic bool
	font   int
	fs     int
	cf     int
	uc     int
}

type reader struct {
	data  []byte
	pos   int
	stack []state
	state

	cp   *charmap.Charmap
	deff int

	fonts     map[int]string
	fontDef   int
	fontName  strings.Builder
	colors    []*Color
	red       int
	green     int
	blue      int
	colorSet  bool
	skip      int
	surrogate rune

	runs []Run
	cur  Run
	text strings.Builder
	open bool
}

// Unmarshal parses an RTF document into runs. Adjacent runs with the same
// attributes are merged. Unknown control words and destinations are
// ignored.
func Unmarshal(data []byte) ([]Run, error) {
	start := 0
	if bytes.HasPrefix(data, []byte("\xef\xbb\xbf")) {
		start = 3
	}
	for start < len(data) && isSpace(data[start]) {
		start++
	}
	if !bytes.HasPrefix(data[start:], []byte(`{\rtf`)) {
		return nil, &ParseError{Offset: start, Msg: `missing {\rtf header`}
	}
	r := &reader{
		data:  data,
		pos:   start,
		cp:    charmap.Windows1252,
		fonts: make(map[int]string),
		state: state{fs: DefaultSizePt * 2, uc: 1},
	}
	if err := r.parse(); err != nil {
		return nil, err
	}
	if i := bytes.IndexByte(data[r.pos:], '}'); i >= 0 {
		return nil, &ParseError{Offset: r.pos + i, Msg: "unbalanced closing brace"}
	}
	r.flushRun()
	if r.runs == nil {
		return []Run{}, nil
	}
	return r.runs, nil
}

func (r *reader) parse() error {
	depth := 0
	for r.pos < len(r.data) {
		c := r.data[r.pos]
		switch c {
		case '{':
			r.stack = append(r.stack, r.state)
			r.skip = 0
			depth++
			r.pos++
		case '}':
			if depth == 0 {
				return &ParseError{Offset: r.pos, Msg: "unbalanced closing brace"}
			}
			r.endGroup()
			depth--
			r.pos++
			if depth == 0 {
				r.flushSurrogate()
				return nil
			}
		case '\\':
			if err := r.control(); err != nil {
				return err
			}
		case '\r', '\n':
			r.pos++
		default:
			r.pos++
			if c >= 0x80 {
				r.char(r.cp.DecodeByte(c))
			} else {
				r.char(rune(c))
			}
		}
	}
	return &ParseError{Offset: r.pos, Msg: "unexpected end of input inside group"}
}

func (r *reader) endGroup() {
	if r.dest == destFontTable {
		r.commitFont()
	}
	r.state = r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
	r.skip = 0
}

func (r *reader) control() error {
	start := r.pos
	r.pos++
	if r.pos >= len(r.data) {
		return &ParseError{Offset: start, Msg: "truncated control sequence"}
	}
	c := r.data[r.pos]
	if !isLetter(c) {
		r.pos++
		switch c {
		case '\'':
			if r.pos+2 > len(r.data) {
				return &ParseError{Offset: start, Msg: "truncated hex escape"}
			}
			v, err := strconv.ParseUint(string(r.data[r.pos:r.pos+2]), 16, 8)
			if err != nil {
				return &ParseError{Offset: start, Msg: "bad hex escape"}
			}
			r.pos += 2
			r.char(r.cp.DecodeByte(byte(v)))
		case '\\', '{', '}':
			r.char(rune(c))
		case '~':
			r.char('\u00a0')
		case '_':
			r.char('\u2011')
		case '*':
			r.dest = destSkip
		case '\n', '\r':
			r.char('\n')
		}
		return nil
	}

	wordStart := r.pos
	for r.pos < len(r.data) && isLetter(r.data[r.pos]) {
		r.pos++
	}
	word := string(r.data[wordStart:r.pos])
	param, hasParam := 0, false
	paramStart := r.pos
	if r.pos < len(r.data) && r.data[r.pos] == '-' {
		r.pos++
	}
	for r.pos < len(r.data) && r.data[r.pos] >= '0' && r.data[r.pos] <= '9' {
		r.pos++
	}
	if digits := string(r.data[paramStart:r.pos]); digits != "" && digits != "-" {
		v, err := strconv.Atoi(digits)
		if err != nil {
			return &ParseError{Offset: start, Msg: "bad control word parameter"}
		}
		param, hasParam = v, true
	}
	if r.pos < len(r.data) && r.data[r.pos] == ' ' {
		r.pos++
	}

	if word == "bin" {
		if hasParam && param > 0 {
			r.pos += param
			if r.pos > len(r.data) {
				return &ParseError{Offset: start, Msg: "truncated binary data"}
			}
		}
		return nil
	}
	if r.skip > 0 && r.dest == destText {
		r.skip--
		return nil
	}
	r.word(word, param, hasParam)
	return nil
}

func (r *reader) word(word string, param int, hasParam bool) {
	switch r.dest {
	case destSkip:
		return
	case destFontTable:
		switch word {
		case "f":
			r.commitFont()
			r.fontDef = param
		}
		return
	case destColorTable:
		switch word {
		case "red":
			r.red, r.colorSet = param, true
		case "green":
			r.green, r.colorSet = param, true
		case "blue":
			r.blue, r.colorSet = param, true
		}
		return
	}

	if s, ok := symbols[word]; ok {
		r.char(s)
		return
	}
	if skipped[word] {
		r.dest = destSkip
		return
	}
	on := !hasParam || param != 0
	switch word {
	case "ansi":
		r.cp = charmap.Windows1252
	case "mac":
		r.cp = charmap.Macintosh
	case "pc":
		r.cp = charmap.CodePage437
	case "pca":
		r.cp = charmap.CodePage850
	case "ansicpg":
		if cp, ok := codePages[param]; ok {
			r.cp = cp
		}
	case "deff":
		r.deff = param
		r.font = param
	case "fonttbl":
		r.dest = destFontTable
		r.fontName.Reset()
	case "colortbl":
		r.dest = destColorTable
		r.red, r.green, r.blue, r.colorSet = 0, 0, 0, false
	case "plain":
		r.bold, r.italic = false, false
		r.font = r.deff
		r.fs = DefaultSizePt * 2
		r.cf = 0
	case "b":
		r.bold = on
	case "i":
		r.italic = on
	case "f":
		r.font = param
	case "fs":
		if hasParam && param > 0 {
			r.fs = param
		}
	case "cf":
		r.cf = param
	case "uc":
		if hasParam && param >= 0 {
			r.uc = param
		}
	case "u":
		v := param
		if v < 0 {
			v += 0x10000
		}
		r.unicode(rune(v))
		r.skip = r.uc
	case "par", "line", "sect", "page":
		r.char('\n')
	case "tab":
		r.char('\t')
	}
}

func (r *reader) unicode(u rune) {
	switch {
	case utf16.IsSurrogate(u) && u < 0xdc00:
		r.flushSurrogate()
		r.surrogate = u
	case utf16.IsSurrogate(u):
		if r.surrogate != 0 {
			hi := r.surrogate
			r.surrogate = 0
			r.emit(utf16.DecodeRune(hi, u))
			return
		}
		r.emit(utf8.RuneError)
	default:
		r.flushSurrogate()
		r.emit(u)
	}
}

func (r *reader) flushSurrogate() {
	if r.surrogate != 0 {
		r.surrogate = 0
		r.emit(utf8.RuneError)
	}
}

// char handles a literal character from the input: it may be a \u
// fallback that must be dropped.
func (r *reader) char(c rune) {
	if r.skip > 0 {
		r.skip--
		return
	}
	r.flushSurrogate()
	r.emit(c)
}

func (r *reader) emit(c rune) {
	switch r.dest {
	case destText:
		r.appendRune(c)
	case destFontTable:
		if c == ';' {
			r.commitFont()
			return
		}
		r.fontName.WriteRune(c)
	case destColorTable:
		if c == ';' {
			if r.colorSet {
				r.colors = append(r.colors, &Color{R: uint8(r.red), G: uint8(r.green), B: uint8(r.blue)})
			} else {
				r.colors = append(r.colors, nil)
			}
			r.red, r.green, r.blue, r.colorSet = 0, 0, 0, false
		}
	}
}

func (r *reader) commitFont() {
	if name := strings.TrimSpace(r.fontName.String()); name != "" {
		r.fonts[r.fontDef] = name
	}
	r.fontName.Reset()
}

func (r *reader) appendRune(c rune) {
	run := Run{
		Font:   r.fonts[r.font],
		SizePt: float64(r.fs) / 2,
		Bold:   r.bold,
		Italic: r.italic,
	}
	if run.Font == "" {
		run.Font = DefaultFont
	}
	if r.cf > 0 && r.cf < len(r.colors) && r.colors[r.cf] != nil {
		run.Color, run.HasColor = *r.colors[r.cf], true
	}
	if !r.open || !r.cur.sameAttributes(run) {
		r.flushRun()
		r.cur, r.open = run, true
	}
	r.text.WriteRune(c)
}

func (r *reader) flushRun() {
	if !r.open {
		return
	}
	r.cur.Text = r.text.String()
	r.runs = append(r.runs, r.cur)
	r.text.Reset()
	r.open = false
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}
