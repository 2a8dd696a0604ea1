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

package prefs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T, dir string) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLiteStore(context.Background(), dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestDefaultsWhenStoreIsEmpty(t *testing.T) {
	m, err := Load(context.Background(), NewMemoryStore())
	require.NoError(t, err)
	p := m.Get()
	require.Equal(t, 14.0, p.FontSizePt)
	require.Equal(t, 100.0, p.HorizontalPaddingPx)
	require.Equal(t, "Helvetica", p.FontFamily)
	require.Equal(t, Black, p.TextColor)
	require.Equal(t, White, p.BackgroundColor)
	require.Empty(t, m.FolderBookmark())
	require.Empty(t, m.LastFilePath())
}

func TestClamping(t *testing.T) {
	m, err := Load(context.Background(), NewMemoryStore())
	require.NoError(t, err)

	require.NoError(t, m.SetFontSize(200))
	require.Equal(t, 72.0, m.Get().FontSizePt)
	require.NoError(t, m.SetFontSize(0))
	require.Equal(t, 8.0, m.Get().FontSizePt)
	require.NoError(t, m.SetPadding(9999))
	require.Equal(t, 500.0, m.Get().HorizontalPaddingPx)
	require.NoError(t, m.SetPadding(-3))
	require.Equal(t, 0.0, m.Get().HorizontalPaddingPx)
}

func TestStoredValuesAreClampedOnLoad(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, KeyFontSize, "300"))
	require.NoError(t, store.Set(ctx, KeyPadding, "not a number"))
	require.NoError(t, store.Set(ctx, KeyTextColor, "#zzzzzz"))

	m, err := Load(ctx, store)
	require.NoError(t, err)
	p := m.Get()
	require.Equal(t, 72.0, p.FontSizePt)
	require.Equal(t, 100.0, p.HorizontalPaddingPx)
	require.Equal(t, Black, p.TextColor)
}

func TestSQLiteStorePersistsAcrossSessions(t *testing.T) {
	dir := t.TempDir()
	m, err := Load(context.Background(), openStore(t, dir))
	require.NoError(t, err)
	require.NoError(t, m.SetFontFamily("Georgia"))
	require.NoError(t, m.SetFontSize(18.5))
	require.NoError(t, m.SetTextColor(RGB{0x11, 0x22, 0x33}))
	require.NoError(t, m.SetBackgroundColor(RGB{0xfa, 0xf0, 0xe6}))
	require.NoError(t, m.SetPadding(40))
	require.NoError(t, m.SetLastFilePath("/tmp/notes.rtf"))

	store := openStore(t, dir)
	reloaded, err := Load(context.Background(), store)
	require.NoError(t, err)
	require.Equal(t, m.Get(), reloaded.Get())
	require.Equal(t, "/tmp/notes.rtf", reloaded.LastFilePath())

	v, ok, err := store.Get(context.Background(), KeyTextColor)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "#112233", v)

	keys, err := store.Keys(context.Background())
	require.NoError(t, err)
	require.Contains(t, keys, KeyFontName)
}

func TestSubscribersSeeChanges(t *testing.T) {
	m, err := Load(context.Background(), NewMemoryStore())
	require.NoError(t, err)

	var seen []Preferences
	cancel := m.Subscribe(func(p Preferences) { seen = append(seen, p) })
	require.NoError(t, m.SetFontFamily("  Georgia "))
	require.Len(t, seen, 1)
	require.Equal(t, "Georgia", seen[0].FontFamily)

	cancel()
	require.NoError(t, m.SetFontSize(20))
	require.Len(t, seen, 1)
}

func TestEmptyFontFamilyFallsBackToDefault(t *testing.T) {
	m, err := Load(context.Background(), NewMemoryStore())
	require.NoError(t, err)
	require.NoError(t, m.SetFontFamily("   "))
	require.Equal(t, DefaultFontName, m.Get().FontFamily)
}

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#FF8000")
	require.NoError(t, err)
	require.Equal(t, RGB{0xff, 0x80, 0x00}, c)
	require.Equal(t, "#ff8000", c.Hex())

	c, err = ParseHex("0f0")
	require.NoError(t, err)
	require.Equal(t, RGB{0, 0xff, 0}, c)

	_, err = ParseHex("#12")
	require.Error(t, err)
}

func TestBookmarkResolves(t *testing.T) {
	dir := t.TempDir()
	token, err := NewBookmark(dir)
	require.NoError(t, err)

	resolved, err := ResolveBookmark(token)
	require.NoError(t, err)
	abs, _ := filepath.Abs(dir)
	require.Equal(t, abs, resolved)
}

func TestBookmarkGoesStaleWhenFolderDisappears(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "docs")
	require.NoError(t, os.Mkdir(dir, 0o755))
	token, err := NewBookmark(dir)
	require.NoError(t, err)
	require.NoError(t, os.Remove(dir))

	_, err = ResolveBookmark(token)
	require.True(t, errors.Is(err, ErrPermissionStale))
	// the folder is still known after it went stale
	require.Equal(t, dir, BookmarkPath(token))

	_, err = ResolveBookmark("%%%not-base64")
	require.True(t, errors.Is(err, ErrPermissionStale))
	require.Empty(t, BookmarkPath("%%%not-base64"))
}
