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
	"log"
	"os"

	"github.com/steelseries/golisp"

	"github.com/timburks/rtfed/document"
	"github.com/timburks/rtfed/operations"
	"github.com/timburks/rtfed/prefs"
	gott "github.com/timburks/rtfed/types"
)

// current is the commander that lisp primitives act on.
var current *Commander

var errNoCommander = errors.New("no active editor")

func init() {
	golisp.MakePrimitiveFunction("font", "0|1", FontImpl)
	golisp.MakePrimitiveFunction("font-size", "0|1", FontSizeImpl)
	golisp.MakePrimitiveFunction("padding", "0|1", PaddingImpl)
	golisp.MakePrimitiveFunction("text-color", "0|1", TextColorImpl)
	golisp.MakePrimitiveFunction("background-color", "0|1", BackgroundColorImpl)
	golisp.MakePrimitiveFunction("bold", "0", BoldImpl)
	golisp.MakePrimitiveFunction("italic", "0", ItalicImpl)
	golisp.MakePrimitiveFunction("insert", "1", InsertImpl)
	golisp.MakePrimitiveFunction("text", "0", TextImpl)
	golisp.MakePrimitiveFunction("save", "0", SaveImpl)
	golisp.MakePrimitiveFunction("open", "1", OpenImpl)
	golisp.MakePrimitiveFunction("new-document", "0", NewDocumentImpl)
	golisp.MakePrimitiveFunction("rename", "1", RenameImpl)
	golisp.MakePrimitiveFunction("relocate", "1", RelocateImpl)
	golisp.MakePrimitiveFunction("file-name", "0", FileNameImpl)
}

func active() (*Commander, error) {
	if current == nil {
		return nil, errNoCommander
	}
	return current, nil
}

func stringArg(args *golisp.Data, name string) (string, error) {
	val := golisp.Car(args)
	if !golisp.StringP(val) {
		return "", fmt.Errorf("%s requires a string argument", name)
	}
	return golisp.StringValue(val), nil
}

func numberArg(args *golisp.Data, name string) (float64, error) {
	val := golisp.Car(args)
	switch {
	case golisp.IntegerP(val):
		return float64(golisp.IntegerValue(val)), nil
	case golisp.FloatP(val):
		return float64(golisp.FloatValue(val)), nil
	}
	return 0, fmt.Errorf("%s requires a numeric argument", name)
}

func FontImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	c, err := active()
	if err != nil {
		return nil, err
	}
	if !golisp.NilP(args) {
		name, err := stringArg(args, "font")
		if err != nil {
			return nil, err
		}
		if err := c.prefs.SetFontFamily(name); err != nil {
			return nil, err
		}
	}
	return golisp.StringWithValue(c.prefs.Get().FontFamily), nil
}

func FontSizeImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	c, err := active()
	if err != nil {
		return nil, err
	}
	if !golisp.NilP(args) {
		pt, err := numberArg(args, "font-size")
		if err != nil {
			return nil, err
		}
		if err := c.prefs.SetFontSize(pt); err != nil {
			return nil, err
		}
	}
	return golisp.FloatWithValue(float32(c.prefs.Get().FontSizePt)), nil
}

func PaddingImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	c, err := active()
	if err != nil {
		return nil, err
	}
	if !golisp.NilP(args) {
		px, err := numberArg(args, "padding")
		if err != nil {
			return nil, err
		}
		if err := c.prefs.SetPadding(px); err != nil {
			return nil, err
		}
	}
	return golisp.FloatWithValue(float32(c.prefs.Get().HorizontalPaddingPx)), nil
}

func colorImpl(args *golisp.Data, name string, get func(prefs.Preferences) prefs.RGB, set func(prefs.RGB) error) (*golisp.Data, error) {
	c, err := active()
	if err != nil {
		return nil, err
	}
	if !golisp.NilP(args) {
		hex, err := stringArg(args, name)
		if err != nil {
			return nil, err
		}
		color, err := prefs.ParseHex(hex)
		if err != nil {
			return nil, err
		}
		if err := set(color); err != nil {
			return nil, err
		}
	}
	return golisp.StringWithValue(get(c.prefs.Get()).Hex()), nil
}

func TextColorImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	if current == nil {
		return nil, errNoCommander
	}
	return colorImpl(args, "text-color",
		func(p prefs.Preferences) prefs.RGB { return p.TextColor },
		current.prefs.SetTextColor)
}

func BackgroundColorImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	if current == nil {
		return nil, errNoCommander
	}
	return colorImpl(args, "background-color",
		func(p prefs.Preferences) prefs.RGB { return p.BackgroundColor },
		current.prefs.SetBackgroundColor)
}

func BoldImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	c, err := active()
	if err != nil {
		return nil, err
	}
	c.toggleSelection(document.Bold)
	return golisp.BooleanWithValue(c.editor.TypingTraits().Bold), nil
}

func ItalicImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	c, err := active()
	if err != nil {
		return nil, err
	}
	c.toggleSelection(document.Italic)
	return golisp.BooleanWithValue(c.editor.TypingTraits().Italic), nil
}

// InsertImpl inserts a string at the cursor with the current typing traits.
func InsertImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	c, err := active()
	if err != nil {
		return nil, err
	}
	text, err := stringArg(args, "insert")
	if err != nil {
		return nil, err
	}
	if text != "" {
		runs := []document.Run{{Text: text, Traits: c.editor.TypingTraits()}}
		c.editor.Perform(&operations.Insert{Position: gott.InsertAtCursor, Runs: runs}, 1)
		c.editor.SetCursor(c.editor.GetCursor() + len([]rune(text)))
	}
	return golisp.StringWithValue(text), nil
}

func TextImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	c, err := active()
	if err != nil {
		return nil, err
	}
	return golisp.StringWithValue(c.editor.Text()), nil
}

func SaveImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	c, err := active()
	if err != nil {
		return nil, err
	}
	if err := c.Save(); err != nil {
		return nil, err
	}
	return golisp.StringWithValue(c.session.Location().FileURL), nil
}

func OpenImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	c, err := active()
	if err != nil {
		return nil, err
	}
	path, err := stringArg(args, "open")
	if err != nil {
		return nil, err
	}
	if err := c.Open(path); err != nil {
		return nil, err
	}
	return golisp.StringWithValue(c.session.Location().FileName), nil
}

func NewDocumentImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	c, err := active()
	if err != nil {
		return nil, err
	}
	if err := c.NewDocument(); err != nil {
		return nil, err
	}
	return golisp.StringWithValue(c.session.Location().FileName), nil
}

func RenameImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	c, err := active()
	if err != nil {
		return nil, err
	}
	name, err := stringArg(args, "rename")
	if err != nil {
		return nil, err
	}
	if err := c.session.Rename(name); err != nil {
		return nil, err
	}
	return golisp.StringWithValue(c.session.Location().FileName), nil
}

func RelocateImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	c, err := active()
	if err != nil {
		return nil, err
	}
	folder, err := stringArg(args, "relocate")
	if err != nil {
		return nil, err
	}
	if err := c.session.Relocate(folder); err != nil {
		return nil, err
	}
	return golisp.StringWithValue(c.session.Location().Folder), nil
}

func FileNameImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	c, err := active()
	if err != nil {
		return nil, err
	}
	return golisp.StringWithValue(c.session.Location().FileName), nil
}

// ParseEval evaluates a lisp expression and returns its printed value or
// the error it produced.
func (c *Commander) ParseEval(command string) string {
	current = c
	value, err := golisp.ParseAndEval(command)
	if err != nil {
		log.Printf("ERR %+v", err)
		return err.Error()
	}
	log.Printf("SEXPR %+v", golisp.String(value))
	return golisp.String(value)
}

// ParseEvalFile evaluates every expression in a script file.
func (c *Commander) ParseEvalFile(filename string) error {
	b, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	current = c
	value, err := golisp.ParseAndEvalAll(string(b))
	if err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}
	log.Printf("SEXPR %+v", golisp.String(value))
	return nil
}
