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

// Package reconcile derives concrete attributes from a document's
// bold/italic traits and the viewer's preferences. There are three
// directions: display (what the screen shows), typing (what the next
// inserted character gets) and storage (what is written to disk).
// Loading runs the storage direction backwards.
// Everything here is pure; nothing holds state between calls.
package reconcile

import (
	"strings"

	"github.com/timburks/rtfed/document"
	"github.com/timburks/rtfed/prefs"
)

// Every stored run uses this font; viewers substitute their own.
const (
	ReferenceFamily = "Helvetica"
	ReferenceSizePt = 12
)

// FontStyle is a resolved font request. Turning it into something
// renderable happens at the screen.
type FontStyle struct {
	Family string
	SizePt float64
	Bold   bool
	Italic bool
}

func (f FontStyle) Traits() document.Traits {
	return document.Traits{Bold: f.Bold, Italic: f.Italic}
}

type Alignment int

const (
	AlignNatural Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
	AlignJustified
)

type Paragraph struct {
	FirstLineIndent float64
	HeadIndent      float64
	Alignment       Alignment
}

// DefaultParagraph is applied to every displayed run.
var DefaultParagraph = Paragraph{Alignment: AlignNatural}

// Attributes are the concrete attributes of a run.
type Attributes struct {
	Font       FontStyle
	Colored    bool
	Foreground prefs.RGB
	Paragraph  Paragraph
}

type AttributedRun struct {
	Text       string
	Attributes Attributes
}

// Container holds the attributes applied to the editing area as a whole.
type Container struct {
	Background          prefs.RGB
	HorizontalPaddingPx float64
}

type Display struct {
	Container Container
	Runs      []AttributedRun
}

type Result struct {
	Display Display
	Typing  Attributes
	Storage []AttributedRun
}

// Reconcile computes all three attribute sets at once.
func Reconcile(doc *document.Document, caret int, toggled document.Traits, p prefs.Preferences) Result {
	runs := doc.Runs()
	return Result{
		Display: ForDisplay(runs, p),
		Typing:  ForTyping(doc, caret, toggled, p),
		Storage: ForStorage(runs),
	}
}

// DisplayAttributes puts a run's traits on top of the viewer's font and
// text color.
func DisplayAttributes(t document.Traits, p prefs.Preferences) Attributes {
	p = p.Clamped()
	return Attributes{
		Font: FontStyle{
			Family: p.FontFamily,
			SizePt: p.FontSizePt,
			Bold:   t.Bold,
			Italic: t.Italic,
		},
		Colored:    true,
		Foreground: p.TextColor,
		Paragraph:  DefaultParagraph,
	}
}

func ForDisplay(runs []document.Run, p prefs.Preferences) Display {
	p = p.Clamped()
	out := make([]AttributedRun, 0, len(runs))
	for _, r := range runs {
		out = append(out, AttributedRun{Text: r.Text, Attributes: DisplayAttributes(r.Traits, p)})
	}
	return Display{
		Container: Container{
			Background:          p.BackgroundColor,
			HorizontalPaddingPx: p.HorizontalPaddingPx,
		},
		Runs: out,
	}
}

// TypingTraits returns the traits for a character inserted at caret:
// those of the preceding character, or the toggled state when there is
// no preceding character.
func TypingTraits(doc *document.Document, caret int, toggled document.Traits) document.Traits {
	if caret <= 0 {
		return toggled
	}
	if t, ok := doc.TraitsAt(caret - 1); ok {
		return t
	}
	return toggled
}

func ForTyping(doc *document.Document, caret int, toggled document.Traits, p prefs.Preferences) Attributes {
	return DisplayAttributes(TypingTraits(doc, caret, toggled), p)
}

// StorageAttributes drops colors and replaces the font with the
// reference font, keeping the traits.
func StorageAttributes(t document.Traits) Attributes {
	return Attributes{
		Font: FontStyle{
			Family: ReferenceFamily,
			SizePt: ReferenceSizePt,
			Bold:   t.Bold,
			Italic: t.Italic,
		},
		Paragraph: DefaultParagraph,
	}
}

func ForStorage(runs []document.Run) []AttributedRun {
	out := make([]AttributedRun, 0, len(runs))
	for _, r := range runs {
		out = append(out, AttributedRun{Text: r.Text, Attributes: StorageAttributes(r.Traits)})
	}
	return out
}

// FromStorage recovers document runs from stored runs. Only bold and
// italic survive; a face name such as "Helvetica-BoldOblique" counts the
// same as an explicit trait.
func FromStorage(runs []AttributedRun) []document.Run {
	out := make([]document.Run, 0, len(runs))
	for _, r := range runs {
		t := r.Attributes.Font.Traits()
		face := strings.ToLower(r.Attributes.Font.Family)
		if strings.Contains(face, "bold") || strings.Contains(face, "black") || strings.Contains(face, "heavy") {
			t.Bold = true
		}
		if strings.Contains(face, "italic") || strings.Contains(face, "oblique") {
			t.Italic = true
		}
		out = append(out, document.Run{Text: r.Text, Traits: t})
	}
	return out
}
