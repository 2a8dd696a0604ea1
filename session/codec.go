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

package session

import (
	"github.com/timburks/rtfed/document"
	"github.com/timburks/rtfed/prefs"
	"github.com/timburks/rtfed/reconcile"
	"github.com/timburks/rtfed/rtf"
)

// Encode applies the storage attributes to a document and serializes it.
func Encode(doc *document.Document) []byte {
	stored := reconcile.ForStorage(doc.Runs())
	runs := make([]rtf.Run, 0, len(stored))
	for _, r := range stored {
		a := r.Attributes
		run := rtf.Run{
			Text:   r.Text,
			Font:   a.Font.Family,
			SizePt: a.Font.SizePt,
			Bold:   a.Font.Bold,
			Italic: a.Font.Italic,
		}
		if a.Colored {
			run.Color = rtf.Color{R: a.Foreground.R, G: a.Foreground.G, B: a.Foreground.B}
			run.HasColor = true
		}
		runs = append(runs, run)
	}
	return rtf.Marshal(runs)
}

// Decode parses a stored document. Only bold and italic are kept.
func Decode(data []byte) (*document.Document, error) {
	runs, err := rtf.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	stored := make([]reconcile.AttributedRun, 0, len(runs))
	for _, r := range runs {
		stored = append(stored, reconcile.AttributedRun{
			Text: r.Text,
			Attributes: reconcile.Attributes{
				Font: reconcile.FontStyle{
					Family: r.Font,
					SizePt: r.SizePt,
					Bold:   r.Bold,
					Italic: r.Italic,
				},
				Colored:    r.HasColor,
				Foreground: prefs.RGB{R: r.Color.R, G: r.Color.G, B: r.Color.B},
			},
		})
	}
	return document.FromRuns(reconcile.FromStorage(stored)), nil
}
