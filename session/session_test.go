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
	"context"
	"errors"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/timburks/rtfed/document"
	"github.com/timburks/rtfed/prefs"
	"github.com/timburks/rtfed/rtf"
)

// countingFS records writes and can be told to fail.
type countingFS struct {
	OSFileSystem
	mu         sync.Mutex
	writes     int
	lastWrite  time.Time
	failWrite  error
	failRename error
}

func (f *countingFS) WriteFile(path string, data []byte) error {
	f.mu.Lock()
	f.writes++
	f.lastWrite = time.Now()
	err := f.failWrite
	f.mu.Unlock()
	if err != nil {
		return err
	}
	return f.OSFileSystem.WriteFile(path, data)
}

func (f *countingFS) Rename(from, to string) error {
	f.mu.Lock()
	err := f.failRename
	f.mu.Unlock()
	if err != nil {
		return err
	}
	return f.OSFileSystem.Rename(from, to)
}

func (f *countingFS) Writes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writes
}

func (f *countingFS) LastWrite() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastWrite
}

func (f *countingFS) setFailWrite(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failWrite = err
}

func newSession(t *testing.T, debounce time.Duration) (*Session, *countingFS, *prefs.Manager) {
	t.Helper()
	m, err := prefs.Load(context.Background(), prefs.NewMemoryStore())
	require.NoError(t, err)
	cfs := &countingFS{}
	s := New(Options{
		Prefs:    m,
		FS:       cfs,
		Logger:   log.New(io.Discard, "", 0),
		Debounce: debounce,
	})
	t.Cleanup(func() { _ = s.Close() })
	return s, cfs, m
}

func sampleRuns() []document.Run {
	return []document.Run{
		{Text: "Four score "},
		{Text: "and seven", Traits: document.Traits{Bold: true}},
		{Text: " years ago", Traits: document.Traits{Italic: true}},
	}
}

func readDoc(t *testing.T, path string) *document.Document {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	doc, err := Decode(data)
	require.NoError(t, err)
	return doc
}

func TestNewDocumentWithoutFolder(t *testing.T) {
	s, cfs, _ := newSession(t, time.Hour)
	require.Equal(t, StateEmpty, s.State())

	require.NoError(t, s.NewDocument())
	require.Equal(t, StateLoaded, s.State())
	require.Empty(t, s.Location().FileURL)

	err := s.Persist()
	require.True(t, errors.Is(err, ErrNoDestination))
	require.Equal(t, 0, cfs.Writes())

	doc, ok := s.TakeDisplaySync()
	require.True(t, ok)
	require.True(t, doc.IsEmpty())
	_, ok = s.TakeDisplaySync()
	require.False(t, ok)
}

func TestNewDocumentCreatesPlaceholderFile(t *testing.T) {
	dir := t.TempDir()
	s, _, _ := newSession(t, time.Hour)
	require.NoError(t, s.Relocate(dir))

	require.NoError(t, s.NewDocument())
	loc := s.Location()
	require.Equal(t, "untitled", loc.FileName)
	require.Equal(t, filepath.Join(dir, "untitled.rtf"), loc.FileURL)
	require.FileExists(t, loc.FileURL)

	require.NoError(t, s.NewDocument())
	require.Equal(t, "untitled 2", s.Location().FileName)
	require.FileExists(t, filepath.Join(dir, "untitled 2.rtf"))
}

func TestAutosaveIsDebounced(t *testing.T) {
	dir := t.TempDir()
	s, cfs, _ := newSession(t, 100*time.Millisecond)
	require.NoError(t, s.Relocate(dir))
	require.NoError(t, s.NewDocument())
	base := cfs.Writes()

	runs := sampleRuns()
	var lastChange time.Time
	for i := 1; i <= 3; i++ {
		lastChange = time.Now()
		s.OnContentChanged(runs[:i])
		require.Equal(t, StateDirty, s.State())
		time.Sleep(20 * time.Millisecond)
	}
	require.Eventually(t, func() bool { return cfs.Writes() == base+1 }, 2*time.Second, 10*time.Millisecond)
	// the write waits a full period after the last change, not the first
	require.False(t, cfs.LastWrite().Before(lastChange.Add(100*time.Millisecond)))
	time.Sleep(300 * time.Millisecond)
	require.Equal(t, base+1, cfs.Writes())
	require.Equal(t, StateLoaded, s.State())

	got := readDoc(t, s.Location().FileURL)
	require.True(t, document.FromRuns(runs).Equal(got))
}

func TestAutosaveFailureStaysDirty(t *testing.T) {
	dir := t.TempDir()
	s, cfs, _ := newSession(t, 20*time.Millisecond)
	require.NoError(t, s.Relocate(dir))
	cfs.setFailWrite(errors.New("disk full"))

	s.OnContentChanged(sampleRuns())
	require.Eventually(t, func() bool { return cfs.Writes() >= 1 }, 2*time.Second, 5*time.Millisecond)
	require.Equal(t, StateDirty, s.State())
	require.Empty(t, s.Location().FileURL)

	cfs.setFailWrite(nil)
	s.OnContentChanged(sampleRuns())
	require.Eventually(t, func() bool { return s.State() == StateLoaded }, 2*time.Second, 5*time.Millisecond)
	require.FileExists(t, s.Location().FileURL)
}

func TestPersistWithoutFolderKeepsDirty(t *testing.T) {
	s, cfs, _ := newSession(t, 10*time.Millisecond)
	s.OnContentChanged(sampleRuns())
	time.Sleep(50 * time.Millisecond)
	require.Equal(t, StateDirty, s.State())
	require.Equal(t, 0, cfs.Writes())
}

func TestOpenDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "speech.rtf")
	require.NoError(t, os.WriteFile(path, Encode(document.FromRuns(sampleRuns())), 0o644))

	s, _, m := newSession(t, time.Hour)
	require.NoError(t, s.OpenDocument(path))
	require.Equal(t, StateLoaded, s.State())
	require.Equal(t, Location{Folder: dir, FileName: "speech", FileURL: path}, s.Location())
	require.Equal(t, path, m.LastFilePath())

	doc, ok := s.TakeDisplaySync()
	require.True(t, ok)
	require.True(t, document.FromRuns(sampleRuns()).Equal(doc))
}

func TestOpenMalformedLeavesSessionUnchanged(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.rtf")
	bad := filepath.Join(dir, "bad.rtf")
	require.NoError(t, os.WriteFile(good, Encode(document.FromRuns(sampleRuns())), 0o644))
	require.NoError(t, os.WriteFile(bad, []byte("not rich text"), 0o644))

	s, _, _ := newSession(t, time.Hour)
	require.NoError(t, s.OpenDocument(good))
	_, _ = s.TakeDisplaySync()
	before := s.Location()

	err := s.OpenDocument(bad)
	var perr *rtf.ParseError
	require.True(t, errors.As(err, &perr))
	require.Equal(t, before, s.Location())
	require.Equal(t, StateLoaded, s.State())
	require.True(t, document.FromRuns(sampleRuns()).Equal(s.Document()))
	_, ok := s.TakeDisplaySync()
	require.False(t, ok)

	err = s.OpenDocument(filepath.Join(dir, "missing.rtf"))
	var ioerr *IOError
	require.True(t, errors.As(err, &ioerr))
	require.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestRenameBlankIsNoop(t *testing.T) {
	dir := t.TempDir()
	s, _, _ := newSession(t, time.Hour)
	require.NoError(t, s.Relocate(dir))
	require.NoError(t, s.NewDocument())
	before := s.Location()

	require.NoError(t, s.Rename("   "))
	require.NoError(t, s.Rename(""))
	require.Equal(t, before, s.Location())
	require.FileExists(t, before.FileURL)
}

func TestRenameMovesFile(t *testing.T) {
	dir := t.TempDir()
	s, _, m := newSession(t, time.Hour)
	require.NoError(t, s.Relocate(dir))
	require.NoError(t, s.NewDocument())
	old := s.Location().FileURL
	s.OnContentChanged(sampleRuns())

	require.NoError(t, s.Rename("  speech.rtf "))
	loc := s.Location()
	require.Equal(t, "speech", loc.FileName)
	require.Equal(t, filepath.Join(dir, "speech.rtf"), loc.FileURL)
	require.NoFileExists(t, old)
	require.Equal(t, loc.FileURL, m.LastFilePath())
	require.Equal(t, StateLoaded, s.State())
	require.True(t, document.FromRuns(sampleRuns()).Equal(readDoc(t, loc.FileURL)))
}

func TestRenameFailureKeepsOldFile(t *testing.T) {
	dir := t.TempDir()
	s, cfs, _ := newSession(t, time.Hour)
	require.NoError(t, s.Relocate(dir))
	require.NoError(t, s.NewDocument())
	before := s.Location()

	cfs.mu.Lock()
	cfs.failRename = errors.New("permission denied")
	cfs.mu.Unlock()

	err := s.Rename("speech")
	var ioerr *IOError
	require.True(t, errors.As(err, &ioerr))
	require.Equal(t, before, s.Location())
	require.FileExists(t, before.FileURL)
	require.NoFileExists(t, filepath.Join(dir, "speech.rtf"))
}

func TestRenameRefusesExistingFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "taken.rtf"), []byte("{\\rtf1 x}"), 0o644))
	s, _, _ := newSession(t, time.Hour)
	require.NoError(t, s.Relocate(dir))
	require.NoError(t, s.NewDocument())

	err := s.Rename("taken")
	require.True(t, errors.Is(err, fs.ErrExist))
	require.Equal(t, "untitled", s.Location().FileName)

	require.True(t, errors.Is(s.Rename("a/b"), ErrInvalidName))
}

func TestRenameBeforeFirstSave(t *testing.T) {
	s, cfs, _ := newSession(t, time.Hour)
	require.NoError(t, s.NewDocument())
	require.NoError(t, s.Rename("draft"))
	require.Equal(t, "draft", s.Location().FileName)
	require.Empty(t, s.Location().FileURL)
	require.Equal(t, 0, cfs.Writes())

	dir := t.TempDir()
	require.NoError(t, s.Relocate(dir))
	require.NoError(t, s.Persist())
	require.Equal(t, filepath.Join(dir, "draft.rtf"), s.Location().FileURL)
}

func TestRelocateMovesFile(t *testing.T) {
	first, second := t.TempDir(), t.TempDir()
	s, _, m := newSession(t, time.Hour)
	require.NoError(t, s.Relocate(first))
	require.NoError(t, s.NewDocument())
	s.OnContentChanged(sampleRuns())
	old := s.Location().FileURL

	require.NoError(t, s.Relocate(second))
	loc := s.Location()
	require.Equal(t, second, loc.Folder)
	require.Equal(t, filepath.Join(second, "untitled.rtf"), loc.FileURL)
	require.NoFileExists(t, old)
	require.True(t, document.FromRuns(sampleRuns()).Equal(readDoc(t, loc.FileURL)))

	resolved, err := prefs.ResolveBookmark(m.FolderBookmark())
	require.NoError(t, err)
	require.Equal(t, second, resolved)

	var ioerr *IOError
	require.True(t, errors.As(s.Relocate(filepath.Join(second, "nope")), &ioerr))
	require.Equal(t, second, s.Location().Folder)
}

func TestRestore(t *testing.T) {
	dir := t.TempDir()
	s, _, m := newSession(t, time.Hour)
	require.NoError(t, s.Relocate(dir))
	require.NoError(t, s.NewDocument())
	s.OnContentChanged(sampleRuns())
	require.NoError(t, s.Persist())
	path := s.Location().FileURL

	next := New(Options{Prefs: m, Logger: log.New(io.Discard, "", 0)})
	defer next.Close()
	require.NoError(t, next.Restore())
	require.Equal(t, path, next.Location().FileURL)
	require.True(t, document.FromRuns(sampleRuns()).Equal(next.Document()))
}

func TestRestoreWithStaleBookmark(t *testing.T) {
	parent := t.TempDir()
	dir := filepath.Join(parent, "docs")
	require.NoError(t, os.Mkdir(dir, 0o755))

	s, _, m := newSession(t, time.Hour)
	require.NoError(t, s.Relocate(dir))
	require.NoError(t, os.Remove(dir))

	next := New(Options{Prefs: m, Logger: log.New(io.Discard, "", 0)})
	defer next.Close()
	err := next.Restore()
	require.True(t, errors.Is(err, prefs.ErrPermissionStale))
	require.Empty(t, next.Location().Folder)
	require.Equal(t, StateEmpty, next.State())
}

func TestRestoreSkipsLastFileInStaleFolder(t *testing.T) {
	parent := t.TempDir()
	dir := filepath.Join(parent, "docs")
	require.NoError(t, os.Mkdir(dir, 0o755))

	s, _, m := newSession(t, time.Hour)
	require.NoError(t, s.Relocate(dir))
	require.NoError(t, s.NewDocument())
	require.NoError(t, s.Close())
	require.Equal(t, filepath.Join(dir, "untitled.rtf"), m.LastFilePath())
	require.NoError(t, os.RemoveAll(dir))

	next := New(Options{Prefs: m, Logger: log.New(io.Discard, "", 0)})
	defer next.Close()
	err := next.Restore()
	require.True(t, errors.Is(err, prefs.ErrPermissionStale))
	var ioerr *IOError
	require.False(t, errors.As(err, &ioerr))
	require.Empty(t, next.Location().Folder)
	require.Equal(t, StateEmpty, next.State())
}

func TestRestoreWithStaleBookmarkReopensFileElsewhere(t *testing.T) {
	parent := t.TempDir()
	dir := filepath.Join(parent, "docs")
	require.NoError(t, os.Mkdir(dir, 0o755))
	other := t.TempDir()
	path := filepath.Join(other, "speech.rtf")
	require.NoError(t, os.WriteFile(path, Encode(document.FromRuns(sampleRuns())), 0o644))

	s, _, m := newSession(t, time.Hour)
	require.NoError(t, s.Relocate(dir))
	require.NoError(t, s.OpenDocument(path))
	require.NoError(t, os.Remove(dir))

	next := New(Options{Prefs: m, Logger: log.New(io.Discard, "", 0)})
	defer next.Close()
	err := next.Restore()
	require.True(t, errors.Is(err, prefs.ErrPermissionStale))
	require.Equal(t, path, next.Location().FileURL)
}

func TestChooseFolderLeavesExistingFile(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	path := filepath.Join(first, "speech.rtf")
	require.NoError(t, os.WriteFile(path, Encode(document.FromRuns(sampleRuns())), 0o644))

	s, _, m := newSession(t, time.Hour)
	require.NoError(t, s.OpenDocument(path))
	require.NoError(t, s.ChooseFolder(second))
	require.Equal(t, Location{Folder: first, FileName: "speech", FileURL: path}, s.Location())
	require.FileExists(t, path)
	resolved, err := prefs.ResolveBookmark(m.FolderBookmark())
	require.NoError(t, err)
	require.Equal(t, second, resolved)

	// new documents go to the chosen folder
	require.NoError(t, s.NewDocument())
	require.Equal(t, filepath.Join(second, "untitled.rtf"), s.Location().FileURL)
	require.FileExists(t, path)
}

func TestChooseFolderForUnsavedDocument(t *testing.T) {
	dir := t.TempDir()
	s, _, _ := newSession(t, time.Hour)
	require.NoError(t, s.NewDocument())
	s.OnContentChanged(sampleRuns())
	require.True(t, errors.Is(s.Persist(), ErrNoDestination))

	require.NoError(t, s.ChooseFolder(dir))
	require.Equal(t, dir, s.Location().Folder)
	require.NoError(t, s.Persist())
	require.True(t, document.FromRuns(sampleRuns()).Equal(readDoc(t, filepath.Join(dir, "untitled.rtf"))))

	var ioerr *IOError
	require.True(t, errors.As(s.ChooseFolder(filepath.Join(dir, "nope")), &ioerr))
	require.NoError(t, s.ChooseFolder(" "))
}

func TestCloseFlushesDirtyDocument(t *testing.T) {
	dir := t.TempDir()
	s, _, _ := newSession(t, time.Hour)
	require.NoError(t, s.Relocate(dir))
	require.NoError(t, s.NewDocument())
	s.OnContentChanged(sampleRuns())

	require.NoError(t, s.Close())
	require.Equal(t, StateLoaded, s.State())
	require.True(t, document.FromRuns(sampleRuns()).Equal(readDoc(t, s.Location().FileURL)))
}

func TestStoredFileUsesReferenceFont(t *testing.T) {
	data := Encode(document.FromRuns(sampleRuns()))
	runs, err := rtf.Unmarshal(data)
	require.NoError(t, err)
	for _, r := range runs {
		require.Equal(t, "Helvetica", r.Font)
		require.Equal(t, 12.0, r.SizePt)
		require.False(t, r.HasColor)
	}
}

func TestAutosaverFiresOnceForLatestNotify(t *testing.T) {
	var mu sync.Mutex
	fired := 0
	a := NewAutosaver(30*time.Millisecond, func() {
		mu.Lock()
		fired++
		mu.Unlock()
	})
	for i := 0; i < 5; i++ {
		a.Notify()
		time.Sleep(5 * time.Millisecond)
	}
	require.True(t, a.Pending())
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return fired == 1
	}, time.Second, 5*time.Millisecond)
	require.False(t, a.Pending())

	a.Notify()
	a.Cancel()
	time.Sleep(60 * time.Millisecond)
	a.Stop()
	a.Notify()
	require.False(t, a.Pending())
	mu.Lock()
	require.Equal(t, 1, fired)
	mu.Unlock()
}
