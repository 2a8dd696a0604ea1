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
	"log"
	"strconv"
	"strings"
	"sync"
)

// The Manager owns the viewer preferences. It reads them once from a
// Store, persists every change immediately and publishes changes to
// subscribers.
type Manager struct {
	mu          sync.Mutex
	store       Store
	current     Preferences
	bookmark    string
	lastFile    string
	subscribers map[int]func(Preferences)
	nextID      int
}

// Load reads preferences from a store. Missing or unreadable values fall
// back to their defaults.
func Load(ctx context.Context, store Store) (*Manager, error) {
	m := &Manager{
		store:       store,
		current:     Defaults(),
		subscribers: make(map[int]func(Preferences)),
	}
	get := func(key string) (string, bool, error) {
		v, ok, err := store.Get(ctx, key)
		if err != nil {
			return "", false, err
		}
		return strings.TrimSpace(v), ok && strings.TrimSpace(v) != "", nil
	}

	if v, ok, err := get(KeyFontSize); err != nil {
		return nil, err
	} else if ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			m.current.FontSizePt = f
		} else {
			log.Printf("ignoring stored %s %q: %v", KeyFontSize, v, err)
		}
	}
	if v, ok, err := get(KeyPadding); err != nil {
		return nil, err
	} else if ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			m.current.HorizontalPaddingPx = f
		} else {
			log.Printf("ignoring stored %s %q: %v", KeyPadding, v, err)
		}
	}
	if v, ok, err := get(KeyFontName); err != nil {
		return nil, err
	} else if ok {
		m.current.FontFamily = v
	}
	if v, ok, err := get(KeyTextColor); err != nil {
		return nil, err
	} else if ok {
		if c, err := ParseHex(v); err == nil {
			m.current.TextColor = c
		} else {
			log.Printf("ignoring stored %s: %v", KeyTextColor, err)
		}
	}
	if v, ok, err := get(KeyBackgroundColor); err != nil {
		return nil, err
	} else if ok {
		if c, err := ParseHex(v); err == nil {
			m.current.BackgroundColor = c
		} else {
			log.Printf("ignoring stored %s: %v", KeyBackgroundColor, err)
		}
	}
	var err error
	if m.bookmark, _, err = get(KeyFolderBookmark); err != nil {
		return nil, err
	}
	if m.lastFile, _, err = get(KeyLastFilePath); err != nil {
		return nil, err
	}
	m.current = m.current.Clamped()
	return m, nil
}

// Get returns the current preferences.
func (m *Manager) Get() Preferences {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Subscribe registers fn to be called with the new preferences after
// every change. The returned function removes the subscription.
func (m *Manager) Subscribe(fn func(Preferences)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID
	m.nextID++
	m.subscribers[id] = fn
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subscribers, id)
	}
}

func (m *Manager) SetFontFamily(name string) error {
	return m.update(func(p *Preferences) (string, string) {
		p.FontFamily = name
		*p = p.Clamped()
		return KeyFontName, p.FontFamily
	})
}

func (m *Manager) SetFontSize(pt float64) error {
	return m.update(func(p *Preferences) (string, string) {
		p.FontSizePt = ClampFontSize(pt)
		return KeyFontSize, formatFloat(p.FontSizePt)
	})
}

func (m *Manager) SetPadding(px float64) error {
	return m.update(func(p *Preferences) (string, string) {
		p.HorizontalPaddingPx = ClampPadding(px)
		return KeyPadding, formatFloat(p.HorizontalPaddingPx)
	})
}

func (m *Manager) SetTextColor(c RGB) error {
	return m.update(func(p *Preferences) (string, string) {
		p.TextColor = c
		return KeyTextColor, c.Hex()
	})
}

func (m *Manager) SetBackgroundColor(c RGB) error {
	return m.update(func(p *Preferences) (string, string) {
		p.BackgroundColor = c
		return KeyBackgroundColor, c.Hex()
	})
}

// update applies a change in memory, persists it and notifies
// subscribers. The in-memory value is kept even if persisting fails.
func (m *Manager) update(change func(p *Preferences) (key, value string)) error {
	m.mu.Lock()
	next := m.current
	key, value := change(&next)
	m.current = next
	subscribers := make([]func(Preferences), 0, len(m.subscribers))
	for _, fn := range m.subscribers {
		subscribers = append(subscribers, fn)
	}
	m.mu.Unlock()

	err := m.store.Set(context.Background(), key, value)
	for _, fn := range subscribers {
		fn(next)
	}
	return err
}

func (m *Manager) FolderBookmark() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bookmark
}

func (m *Manager) SetFolderBookmark(token string) error {
	m.mu.Lock()
	m.bookmark = token
	m.mu.Unlock()
	return m.store.Set(context.Background(), KeyFolderBookmark, token)
}

func (m *Manager) LastFilePath() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastFile
}

func (m *Manager) SetLastFilePath(path string) error {
	m.mu.Lock()
	if m.lastFile == path {
		m.mu.Unlock()
		return nil
	}
	m.lastFile = path
	m.mu.Unlock()
	return m.store.Set(context.Background(), KeyLastFilePath, path)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
