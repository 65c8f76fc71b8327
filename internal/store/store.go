// Package store persists drawing sessions in a keyed string store.
package store

import (
	"sync"

	"fyne.io/fyne/v2"
)

// Store is the keyed storage a session is saved to.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Remove(key string) error
}

// Memory is an in-process Store.
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *Memory) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Preferences stores records in the application's fyne preferences, which
// fyne writes to disk per app id.
type Preferences struct {
	prefs fyne.Preferences
}

// NewPreferences wraps an app's preferences.
func NewPreferences(p fyne.Preferences) *Preferences {
	return &Preferences{prefs: p}
}

// Get reports a key as missing when it holds the empty string; records are
// never empty.
func (p *Preferences) Get(key string) (string, bool) {
	v := p.prefs.String(key)
	return v, v != ""
}

func (p *Preferences) Set(key, value string) error {
	p.prefs.SetString(key, value)
	return nil
}

func (p *Preferences) Remove(key string) error {
	p.prefs.RemoveValue(key)
	return nil
}
