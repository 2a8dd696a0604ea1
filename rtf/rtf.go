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

// Package rtf reads and writes the subset of RTF 1 that rtfed stores:
// plain text runs with a font, a size, bold, italic and an optional
// foreground color. Everything else in a file is tolerated and dropped.
package rtf

import (
	"fmt"
)

const (
	DefaultFont   = "Helvetica"
	DefaultSizePt = 12
)

type Color struct {
	R, G, B uint8
}

// Run is a stretch of text sharing one set of character attributes.
type Run struct {
	Text     string
	Font     string
	SizePt   float64
	Bold     bool
	Italic   bool
	Color    Color
	HasColor bool
}

func (r Run) sameAttributes(o Run) bool {
	return r.Font == o.Font &&
		r.SizePt == o.SizePt &&
		r.Bold == o.Bold &&
		r.Italic == o.Italic &&
		r.HasColor == o.HasColor &&
		(!r.HasColor || r.Color == o.Color)
}

// ParseError reports malformed input and the byte offset where it was
// detected.
type ParseError struct {
	Offset int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("rtf: %s at offset %d", e.Msg, e.Offset)
}
