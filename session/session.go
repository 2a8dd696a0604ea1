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

// Package session owns the lifecycle of the current document: creating,
// opening, autosaving, renaming and moving it.
package session

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/timburks/rtfed/document"
	"github.com/timburks/rtfed/prefs"
)

const (
	Extension       = ".rtf"
	PlaceholderName = "untitled"
)

type State int

const (
	StateEmpty State = iota
	StateLoaded
	StateDirty
	StateSaving
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateLoaded:
		return "loaded"
	case StateDirty:
		return "dirty"
	case StateSaving:
		return "saving"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Location says where the document lives. FileURL is empty until the
// document has been written once.
type Location struct {
	Folder   string
	FileName string
	FileURL  string
}

type Options struct {
	Prefs    *prefs.Manager
	FS       FileSystem
	Logger   *log.Logger
	Debounce time.Duration
}

// A Session holds the authoritative copy of the current document.
// All methods are safe to call from the event loop and from the
// autosave timer.
type Session struct {
	mu               sync.Mutex
	state            State
	needsDisplaySync bool
	doc              *document.Document
	loc              Location
	destination      string // folder chosen for new documents

	prefs    *prefs.Manager
	fs       FileSystem
	logger   *log.Logger
	autosave *Autosaver
}

func New(opts Options) *Session {
	s := &Session{
		doc:    document.New(),
		prefs:  opts.Prefs,
		fs:     opts.FS,
		logger: opts.Logger,
	}
	if s.fs == nil {
		s.fs = OSFileSystem{}
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	s.autosave = NewAutosaver(opts.Debounce, s.autosaveFire)
	return s
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Dirty() bool {
	return s.State() == StateDirty
}

func (s *Session) Location() Location {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loc
}

// Document returns a copy of the current document.
func (s *Session) Document() *document.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

// TakeDisplaySync reports whether the document was replaced since the
// last call, and if so returns a copy for the editing surface to load.
func (s *Session) TakeDisplaySync() (*document.Document, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.needsDisplaySync {
		return nil, false
	}
	s.needsDisplaySync = false
	return s.doc.Clone(), true
}

// NewDocument saves the current document if there is one and starts an
// empty one. With a folder chosen, the backing file is created at once.
func (s *Session) NewDocument() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.autosave.Cancel()
	if s.state != StateEmpty {
		if err := s.persistLocked(); err != nil && !errors.Is(err, ErrNoDestination) {
			s.logger.Printf("saving %s before new document: %v", s.loc.FileName, err)
		}
	}
	s.doc = document.New()
	s.loc.FileURL = ""
	s.loc.FileName = ""
	s.state = StateLoaded
	s.needsDisplaySync = true
	if s.destination != "" {
		s.loc.Folder = s.destination
	}
	if s.loc.Folder == "" {
		return nil
	}
	if err := s.persistLocked(); err != nil {
		s.loc.FileName = ""
		return err
	}
	return nil
}

// OpenDocument replaces the current document with the one stored at
// path. A file that cannot be parsed leaves the session unchanged.
func (s *Session) OpenDocument(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return &IOError{Op: "open", Path: path, Err: err}
	}
	data, err := s.fs.ReadFile(abs)
	if err != nil {
		return &IOError{Op: "open", Path: abs, Err: err}
	}
	doc, err := Decode(data)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.autosave.Cancel()
	if s.state == StateDirty {
		if err := s.persistLocked(); err != nil && !errors.Is(err, ErrNoDestination) {
			s.logger.Printf("saving %s before open: %v", s.loc.FileName, err)
		}
	}
	base := filepath.Base(abs)
	s.doc = doc
	s.loc = Location{
		Folder:   filepath.Dir(abs),
		FileName: strings.TrimSuffix(base, filepath.Ext(base)),
		FileURL:  abs,
	}
	s.state = StateLoaded
	s.needsDisplaySync = true
	s.rememberLocked(abs)
	return nil
}

// OnContentChanged records new content from the editing surface and
// (re)starts the autosave timer.
func (s *Session) OnContentChanged(runs []document.Run) {
	s.mu.Lock()
	s.doc = document.FromRuns(runs)
	s.state = StateDirty
	s.mu.Unlock()
	s.autosave.Notify()
}

func (s *Session) autosaveFire() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateDirty {
		return
	}
	if err := s.persistLocked(); err != nil && !errors.Is(err, ErrNoDestination) {
		s.logger.Printf("autosave: %v", err)
	}
}

// Persist writes the current document. It returns ErrNoDestination
// when no folder has been chosen.
func (s *Session) Persist() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistLocked()
}

func (s *Session) persistLocked() error {
	if s.state == StateEmpty {
		return nil
	}
	if s.loc.Folder == "" {
		return ErrNoDestination
	}
	synthesized := false
	if s.loc.FileURL == "" {
		if s.loc.FileName == "" {
			name, err := s.uniqueName(s.loc.Folder)
			if err != nil {
				return err
			}
			s.loc.FileName = name
		}
		s.loc.FileURL = filepath.Join(s.loc.Folder, s.loc.FileName+Extension)
		synthesized = true
	}

	previous := s.state
	s.state = StateSaving
	if err := s.fs.WriteFile(s.loc.FileURL, Encode(s.doc)); err != nil {
		s.state = previous
		path := s.loc.FileURL
		if synthesized {
			s.loc.FileURL = ""
		}
		return &IOError{Op: "write", Path: path, Err: err}
	}
	s.state = StateLoaded
	s.rememberLocked(s.loc.FileURL)
	return nil
}

// uniqueName returns the placeholder name, suffixed with a number if a
// file of that name already exists in dir.
func (s *Session) uniqueName(dir string) (string, error) {
	for i := 1; ; i++ {
		name := PlaceholderName
		if i > 1 {
			name = fmt.Sprintf("%s %d", PlaceholderName, i)
		}
		free, err := s.free(filepath.Join(dir, name+Extension))
		if err != nil {
			return "", err
		}
		if free {
			return name, nil
		}
	}
}

func (s *Session) free(path string) (bool, error) {
	_, err := s.fs.Stat(path)
	switch {
	case err == nil:
		return false, nil
	case errors.Is(err, fs.ErrNotExist):
		return true, nil
	default:
		return false, &IOError{Op: "stat", Path: path, Err: err}
	}
}

// Rename gives the document a new file name. Blank names are ignored.
// If the document has a file, it is saved and then moved; if the move
// fails the old file and name are kept.
func (s *Session) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	if strings.EqualFold(filepath.Ext(name), Extension) {
		name = strings.TrimSpace(strings.TrimSuffix(name, filepath.Ext(name)))
	}
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return ErrInvalidName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loc.FileURL == "" {
		if s.loc.Folder != "" {
			target := filepath.Join(s.loc.Folder, name+Extension)
			free, err := s.free(target)
			if err != nil {
				return err
			}
			if !free {
				return &IOError{Op: "rename", Path: target, Err: fs.ErrExist}
			}
		}
		old := s.loc.FileName
		s.loc.FileName = name
		if err := s.persistLocked(); err != nil && !errors.Is(err, ErrNoDestination) {
			s.loc.FileName = old
			return err
		}
		return nil
	}

	if err := s.persistLocked(); err != nil {
		return err
	}
	target := filepath.Join(s.loc.Folder, name+Extension)
	if target == s.loc.FileURL {
		s.loc.FileName = name
		return nil
	}
	if err := s.move(target); err != nil {
		return err
	}
	s.loc.FileName = name
	return nil
}

// Relocate makes folder the destination of the document. An existing
// file is saved and moved there under the same name.
func (s *Session) Relocate(folder string) error {
	abs, err := s.directory("relocate", folder)
	if err != nil || abs == "" {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loc.FileURL != "" {
		if err := s.persistLocked(); err != nil {
			return err
		}
		target := filepath.Join(abs, filepath.Base(s.loc.FileURL))
		if target != s.loc.FileURL {
			if err := s.move(target); err != nil {
				return err
			}
		}
	}
	s.loc.Folder = abs
	s.destination = abs
	if s.state == StateDirty {
		s.autosave.Notify()
	}
	s.rememberFolderLocked(abs)
	return nil
}

// ChooseFolder makes folder the destination for new documents. Unlike
// Relocate it leaves a document that already has a file where it is; a
// document that was never written goes to the new folder.
func (s *Session) ChooseFolder(folder string) error {
	abs, err := s.directory("choose folder", folder)
	if err != nil || abs == "" {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.destination = abs
	if s.loc.FileURL == "" {
		s.loc.Folder = abs
		if s.state == StateDirty {
			s.autosave.Notify()
		}
	}
	s.rememberFolderLocked(abs)
	return nil
}

// directory returns the absolute path of an existing folder, or "" for
// a blank name.
func (s *Session) directory(op, folder string) (string, error) {
	folder = strings.TrimSpace(folder)
	if folder == "" {
		return "", nil
	}
	abs, err := filepath.Abs(folder)
	if err != nil {
		return "", &IOError{Op: op, Path: folder, Err: err}
	}
	info, err := s.fs.Stat(abs)
	if err != nil {
		return "", &IOError{Op: op, Path: abs, Err: err}
	}
	if !info.IsDir() {
		return "", &IOError{Op: op, Path: abs, Err: fmt.Errorf("not a directory")}
	}
	return abs, nil
}

func (s *Session) rememberFolderLocked(abs string) {
	if s.prefs == nil {
		return
	}
	token, err := prefs.NewBookmark(abs)
	if err == nil {
		err = s.prefs.SetFolderBookmark(token)
	}
	if err != nil {
		s.logger.Printf("remembering folder %s: %v", abs, err)
	}
}

// move renames the backing file to target, refusing to replace an
// existing file.
func (s *Session) move(target string) error {
	free, err := s.free(target)
	if err != nil {
		return err
	}
	if !free {
		return &IOError{Op: "rename", Path: target, Err: fs.ErrExist}
	}
	if err := s.fs.Rename(s.loc.FileURL, target); err != nil {
		return &IOError{Op: "rename", Path: s.loc.FileURL, Err: err}
	}
	s.loc.FileURL = target
	s.rememberLocked(target)
	return nil
}

// Restore reopens the folder and document of the previous run. A stale
// folder bookmark leaves the folder unset until one is chosen again, so
// a last document inside that folder is not reopened either. The stale
// bookmark error is returned after any other document has been reopened.
func (s *Session) Restore() error {
	if s.prefs == nil {
		return nil
	}
	var errs []error
	stale := ""
	if token := s.prefs.FolderBookmark(); token != "" {
		dir, err := prefs.ResolveBookmark(token)
		if err != nil {
			s.logger.Printf("folder bookmark: %v", err)
			errs = append(errs, err)
			stale = prefs.BookmarkPath(token)
		} else {
			s.mu.Lock()
			s.loc.Folder = dir
			s.destination = dir
			s.mu.Unlock()
		}
	}
	last := s.prefs.LastFilePath()
	if last != "" && stale != "" && filepath.Dir(filepath.Clean(last)) == filepath.Clean(stale) {
		s.logger.Printf("not reopening %s: its folder is no longer available", last)
		last = ""
	}
	if last != "" {
		if err := s.OpenDocument(last); err != nil {
			s.logger.Printf("reopening %s: %v", last, err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close stops autosaving and writes a dirty document.
func (s *Session) Close() error {
	s.autosave.Stop()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateDirty {
		return nil
	}
	if err := s.persistLocked(); err != nil && !errors.Is(err, ErrNoDestination) {
		return err
	}
	return nil
}

func (s *Session) rememberLocked(path string) {
	if s.prefs == nil {
		return
	}
	if err := s.prefs.SetLastFilePath(path); err != nil {
		s.logger.Printf("remembering %s: %v", path, err)
	}
}
