// Package kv provides orchard.KeyValueStore backends: Gdata persists under
// the per-user application data directory, Memory keeps values in process.
package kv

import (
	"fmt"
	"log"
	"sync"

	"github.com/quasilyte/gdata/v2"
)

// object is the gdata object all orchard keys live under.
const object = "orchard"

// Gdata stores values as properties of a single gdata object.
type Gdata struct {
	manager *gdata.Manager
}

// Open opens (creating if needed) the data directory for appName.
func Open(appName string) (*Gdata, error) {
	if appName == "" {
		return nil, fmt.Errorf("kv: app name must not be empty")
	}
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("failed to open gdata for %q: %w", appName, err)
	}
	log.Printf("[kv] Opened gdata store for %s", appName)
	return &Gdata{manager: manager}, nil
}

// NewGdata wraps an already opened manager.
func NewGdata(manager *gdata.Manager) *Gdata {
	return &Gdata{manager: manager}
}

// Load returns the stored value, or nil when key was never saved.
func (g *Gdata) Load(key string) ([]byte, error) {
	if !g.manager.ObjectPropExists(object, key) {
		return nil, nil
	}
	data, err := g.manager.LoadObjectProp(object, key)
	if err != nil {
		return nil, fmt.Errorf("failed to load %q: %w", key, err)
	}
	return data, nil
}

// Save overwrites the value stored under key.
func (g *Gdata) Save(key string, data []byte) error {
	if err := g.manager.SaveObjectProp(object, key, data); err != nil {
		return fmt.Errorf("failed to save %q: %w", key, err)
	}
	return nil
}

// Memory is an in-process store, for tests and for running without a data
// directory. It is safe for concurrent use.
type Memory struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemory returns an empty store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

// Load returns a copy of the stored value, or nil when absent.
func (m *Memory) Load(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), v...), nil
}

// Save stores a copy of data under key.
func (m *Memory) Save(key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), data...)
	return nil
}
