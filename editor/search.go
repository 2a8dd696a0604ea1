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

// PerformSearch moves the cursor to the next occurrence of text after
// the cursor, wrapping around at the end of the document. It reports
// whether text was found.
func (e *Editor) PerformSearch(text string) bool {
	needle := []rune(text)
	if len(needle) == 0 || e.doc.Len() == 0 {
		return false
	}
	haystack := []rune(e.doc.Text())
	n := len(haystack)
	for i := 1; i <= n; i++ {
		pos := (e.cursor + i) % n
		if matchAt(haystack, pos, needle) {
			e.cursor = pos
			return true
		}
	}
	return false
}

func matchAt(haystack []rune, pos int, needle []rune) bool {
	if pos+len(needle) > len(haystack) {
		return false
	}
	for i, c := range needle {
		if haystack[pos+i] != c {
			return false
		}
	}
	return true
}
