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

package document

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	plain  = Traits{}
	bold   = Traits{Bold: true}
	italic = Traits{Italic: true}
)

func sample() *Document {
	return FromRuns([]Run{
		{Text: "Four score ", Traits: plain},
		{Text: "and seven", Traits: bold},
		{Text: " years ago", Traits: plain},
	})
}

func TestFromRunsMergesAndDropsEmpty(t *testing.T) {
	d := FromRuns([]Run{
		{Text: "a", Traits: plain},
		{Text: "", Traits: bold},
		{Text: "b", Traits: plain},
		{Text: "c", Traits: bold},
		{Text: "d", Traits: bold},
	})
	require.Equal(t, []Run{
		{Text: "ab", Traits: plain},
		{Text: "cd", Traits: bold},
	}, d.Runs())
}

func TestInsertInsideRun(t *testing.T) {
	d := sample()
	d.Insert(4, "!", bold)
	require.Equal(t, "Four! score and seven years ago", d.Text())
	require.Equal(t, []Run{
		{Text: "Four", Traits: plain},
		{Text: "!", Traits: bold},
		{Text: " score ", Traits: plain},
		{Text: "and seven", Traits: bold},
		{Text: " years ago", Traits: plain},
	}, d.Runs())
}

func TestInsertMatchingTraitsMerges(t *testing.T) {
	d := sample()
	d.Insert(11, "all ", bold)
	require.Len(t, d.Runs(), 3)
	require.Equal(t, Run{Text: "all and seven", Traits: bold}, d.Runs()[1])
}

func TestDeleteReturnsRemovedRuns(t *testing.T) {
	d := sample()
	removed := d.Delete(5, 15)
	require.Equal(t, []Run{
		{Text: "score ", Traits: plain},
		{Text: "and ", Traits: bold},
	}, removed)
	require.Equal(t, "Four seven years ago", d.Text())

	d.InsertRuns(5, removed)
	require.True(t, sample().Equal(d))
}

func TestDeleteMergesNeighbours(t *testing.T) {
	d := sample()
	d.Delete(11, 20)
	require.Equal(t, []Run{{Text: "Four score  years ago", Traits: plain}}, d.Runs())
}

func TestSliceDoesNotMutate(t *testing.T) {
	d := sample()
	s := d.Slice(8, 14)
	require.Equal(t, []Run{
		{Text: "re ", Traits: plain},
		{Text: "and", Traits: bold},
	}, s)
	require.Len(t, d.Runs(), 3)
}

func TestToggleTraitIsSelectionUniform(t *testing.T) {
	// a selection mixing bold and plain becomes entirely bold
	d := sample()
	on := d.ToggleTrait(5, 15, Bold)
	require.True(t, on)
	require.Equal(t, []Run{
		{Text: "Four ", Traits: plain},
		{Text: "score and seven", Traits: bold},
		{Text: " years ago", Traits: plain},
	}, d.Runs())

	// an entirely bold selection becomes plain
	on = d.ToggleTrait(5, 20, Bold)
	require.False(t, on)
	require.Equal(t, []Run{{Text: "Four score and seven years ago", Traits: plain}}, d.Runs())
}

func TestToggleTraitKeepsOtherTrait(t *testing.T) {
	d := FromRuns([]Run{{Text: "abc", Traits: italic}})
	d.ToggleTrait(0, 3, Bold)
	require.Equal(t, []Run{{Text: "abc", Traits: Traits{Bold: true, Italic: true}}}, d.Runs())
}

func TestToggleEmptyRangeChangesNothing(t *testing.T) {
	d := sample()
	d.ToggleTrait(4, 4, Bold)
	require.True(t, sample().Equal(d))
}

func TestTraitsAt(t *testing.T) {
	d := sample()
	tr, ok := d.TraitsAt(11)
	require.True(t, ok)
	require.Equal(t, bold, tr)
	_, ok = d.TraitsAt(d.Len())
	require.False(t, ok)
}

func TestMultibyteRunes(t *testing.T) {
	d := FromRuns([]Run{{Text: "héllo wörld", Traits: plain}})
	require.Equal(t, 11, d.Len())
	d.ToggleTrait(6, 11, Italic)
	require.Equal(t, []Run{
		{Text: "héllo ", Traits: plain},
		{Text: "wörld", Traits: italic},
	}, d.Runs())
	require.Equal(t, 'ö', d.RuneAt(7))
}

func TestLinesAndPoints(t *testing.T) {
	d := FromRuns([]Run{
		{Text: "one\ntw", Traits: plain},
		{Text: "o\n\nthree", Traits: bold},
	})
	require.Equal(t, 4, d.RowCount())
	lines := Lines(d.Runs())
	require.Len(t, lines, 4)
	require.Equal(t, []Run{{Text: "tw", Traits: plain}, {Text: "o", Traits: bold}}, lines[1])
	require.Empty(t, lines[2])

	row, col := d.PointOf(6)
	require.Equal(t, 1, row)
	require.Equal(t, 2, col)
	require.Equal(t, 6, d.PositionOf(1, 2))
	require.Equal(t, 7, d.PositionOf(1, 99))
	require.Equal(t, d.Len(), d.PositionOf(9, 0))

	start, end := d.RowBounds(3)
	require.Equal(t, "three", string([]rune(d.Text())[start:end]))
	require.Equal(t, 0, d.RowLength(2))
}
