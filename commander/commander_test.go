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
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/timburks/rtfed/document"
	"github.com/timburks/rtfed/editor"
	"github.com/timburks/rtfed/prefs"
	"github.com/timburks/rtfed/session"
	gott "github.com/timburks/rtfed/types"
)

func setup(t *testing.T) (*Commander, *editor.Editor, *session.Session, *prefs.Manager) {
	t.Helper()
	m, err := prefs.Load(context.Background(), prefs.NewMemoryStore())
	require.NoError(t, err)
	s := session.New(session.Options{
		Prefs:    m,
		Logger:   log.New(io.Discard, "", 0),
		Debounce: time.Hour,
	})
	require.NoError(t, s.NewDocument())
	e := editor.NewEditor(s)
	c := NewCommander(e, s, m)
	t.Cleanup(func() {
		c.Close()
		_ = s.Close()
	})
	return c, e, s, m
}

func keys(t *testing.T, c *Commander, text string) {
	t.Helper()
	for _, ch := range text {
		var event gott.Event
		if ch == ' ' {
			event = gott.Event{Type: gott.EventKey, Key: gott.KeySpace}
		} else {
			event = gott.Event{Type: gott.EventKey, Ch: ch}
		}
		require.NoError(t, c.ProcessEvent(&event))
	}
}

func key(t *testing.T, c *Commander, k gott.Key) {
	t.Helper()
	require.NoError(t, c.ProcessEvent(&gott.Event{Type: gott.EventKey, Key: k}))
}

func command(t *testing.T, c *Commander, line string) {
	t.Helper()
	keys(t, c, ":"+line)
	key(t, c, gott.KeyEnter)
}

func TestTypingWithToggledTraits(t *testing.T) {
	c, e, s, _ := setup(t)
	keys(t, c, "i")
	require.Equal(t, gott.ModeInsert, c.GetMode())
	keys(t, c, "plain ")
	key(t, c, gott.KeyCtrlB)
	keys(t, c, "bold")
	key(t, c, gott.KeyCtrlB)
	key(t, c, gott.KeyCtrlT)
	keys(t, c, "it")
	require.Contains(t, c.GetInfo(), "[I]")
	key(t, c, gott.KeyEsc)
	require.Equal(t, gott.ModeEdit, c.GetMode())

	require.Equal(t, []document.Run{
		{Text: "plain "},
		{Text: "bold", Traits: document.Traits{Bold: true}},
		{Text: "it", Traits: document.Traits{Italic: true}},
	}, e.Document().Runs())
	require.True(t, s.Dirty())
	require.True(t, s.Document().Equal(e.Document()))
	require.Contains(t, c.GetInfo(), "+")
}

func TestVisualToggle(t *testing.T) {
	c, e, _, _ := setup(t)
	keys(t, c, "ihello world")
	key(t, c, gott.KeyEsc)
	key(t, c, gott.KeyHome)
	keys(t, c, "v4lB")
	require.Equal(t, gott.ModeVisual, c.GetMode())
	key(t, c, gott.KeyEsc)
	require.Equal(t, gott.ModeEdit, c.GetMode())
	require.Equal(t, []document.Run{
		{Text: "hello", Traits: document.Traits{Bold: true}},
		{Text: " world"},
	}, e.Document().Runs())

	keys(t, c, "u")
	require.Equal(t, []document.Run{{Text: "hello world"}}, e.Document().Runs())
}

func TestVisualDelete(t *testing.T) {
	c, e, _, _ := setup(t)
	keys(t, c, "ihello world")
	key(t, c, gott.KeyEsc)
	key(t, c, gott.KeyHome)
	keys(t, c, "v5ld")
	require.Equal(t, "world", e.Text())
	keys(t, c, "p")
	keys(t, c, "u")
	require.Equal(t, "world", e.Text())
	keys(t, c, "u")
	require.Equal(t, "hello world", e.Text())
}

func TestPreferenceCommands(t *testing.T) {
	c, e, _, m := setup(t)
	command(t, c, "font Georgia Pro")
	require.Equal(t, "Georgia Pro", m.Get().FontFamily)
	require.Equal(t, "Georgia Pro", e.Preferences().FontFamily)

	command(t, c, "size 500")
	require.Equal(t, float64(prefs.MaxFontSize), m.Get().FontSizePt)

	command(t, c, "fg #336699")
	require.Equal(t, prefs.RGB{R: 0x33, G: 0x66, B: 0x99}, e.Preferences().TextColor)

	command(t, c, "bg nonsense")
	require.NotEmpty(t, c.GetMessage())
	require.Equal(t, prefs.White, m.Get().BackgroundColor)

	command(t, c, "padding 40")
	require.Equal(t, 40.0, e.Preferences().HorizontalPaddingPx)
	require.Equal(t, gott.ModeEdit, c.GetMode())
}

func TestSaveCommands(t *testing.T) {
	c, _, s, _ := setup(t)
	keys(t, c, "itext")
	key(t, c, gott.KeyEsc)

	command(t, c, "w")
	require.Contains(t, c.GetMessage(), "folder")
	require.True(t, s.Dirty())

	dir := t.TempDir()
	command(t, c, "folder "+dir)
	command(t, c, "w")
	require.Empty(t, c.GetMessage())
	require.False(t, s.Dirty())
	_, err := os.Stat(filepath.Join(dir, session.PlaceholderName+session.Extension))
	require.NoError(t, err)

	command(t, c, "rename Letter")
	require.Equal(t, "Letter", s.Location().FileName)
	require.True(t, strings.HasPrefix(c.GetInfo(), "Letter"))

	command(t, c, "wq")
	require.False(t, c.IsRunning())
}

func TestOpenAndNewCommands(t *testing.T) {
	c, e, _, _ := setup(t)
	path := filepath.Join(t.TempDir(), "note.rtf")
	require.NoError(t, os.WriteFile(path, []byte(`{\rtf1\ansi{\fonttbl\f0 Helvetica;}\f0 Hi {\b there}}`), 0o644))

	command(t, c, "e "+path)
	require.Empty(t, c.GetMessage())
	require.Equal(t, []document.Run{
		{Text: "Hi "},
		{Text: "there", Traits: document.Traits{Bold: true}},
	}, e.Document().Runs())

	command(t, c, "new")
	require.Equal(t, "", e.Text())
}

func TestUnknownCommand(t *testing.T) {
	c, _, _, _ := setup(t)
	command(t, c, "frobnicate")
	require.Equal(t, "unknown command: frobnicate", c.GetMessage())
	command(t, c, "q")
	require.False(t, c.IsRunning())
}

func TestLisp(t *testing.T) {
	c, e, _, m := setup(t)
	c.ParseEval(`(font "Georgia")`)
	require.Equal(t, "Georgia", m.Get().FontFamily)
	c.ParseEval(`(font-size 18)`)
	require.Equal(t, 18.0, e.Preferences().FontSizePt)
	c.ParseEval(`(bold)`)
	c.ParseEval(`(insert "Hello")`)
	require.Equal(t, []document.Run{{Text: "Hello", Traits: document.Traits{Bold: true}}}, e.Document().Runs())
	require.Contains(t, c.ParseEval(`(text)`), "Hello")
}

func TestLispMode(t *testing.T) {
	c, _, _, m := setup(t)
	keys(t, c, `(padding 24)`)
	require.Equal(t, gott.ModeLisp, c.GetMode())
	key(t, c, gott.KeyEnter)
	require.Equal(t, gott.ModeEdit, c.GetMode())
	require.Equal(t, 24.0, m.Get().HorizontalPaddingPx)
}

func TestEvalDocument(t *testing.T) {
	c, _, _, m := setup(t)
	keys(t, c, `i(font "Georgia")`)
	key(t, c, gott.KeyEsc)
	command(t, c, "eval")
	require.Equal(t, gott.ModeEdit, c.GetMode())
	require.Equal(t, "Georgia", m.Get().FontFamily)
}

func TestSearchAndReverseCase(t *testing.T) {
	c, e, _, _ := setup(t)
	keys(t, c, "ione two")
	key(t, c, gott.KeyEnter)
	keys(t, c, "two")
	key(t, c, gott.KeyEsc)
	command(t, c, "1")
	require.Equal(t, 0, e.GetCursor())

	keys(t, c, "/tw")
	require.Equal(t, gott.ModeSearch, c.GetMode())
	require.Equal(t, "tw", c.GetSearchText())
	key(t, c, gott.KeyEnter)
	require.Equal(t, gott.ModeEdit, c.GetMode())
	require.Equal(t, 4, e.GetCursor())
	keys(t, c, "n")
	require.Equal(t, 8, e.GetCursor())

	keys(t, c, "~")
	require.Equal(t, "one two\nTwo", e.Text())
	require.Equal(t, 9, e.GetCursor())

	keys(t, c, "/zz")
	key(t, c, gott.KeyEnter)
	require.Equal(t, "not found: zz", c.GetMessage())
	require.Equal(t, 9, e.GetCursor())

	keys(t, c, "u")
	require.Equal(t, "one two\ntwo", e.Text())
}
