package blob

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

const memoryBucket = "memory"

// Memory keeps objects in a map for tests.
type Memory struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

// NewMemory returns an initialized in-memory Store.
func NewMemory() *Memory {
	return &Memory{objects: make(map[string][]byte)}
}

func (m *Memory) Write(_ context.Context, path string, _ string, data []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[path] = append([]byte(nil), data...)
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", memoryBucket, path), nil
}

func (m *Memory) Delete(_ context.Context, url string) error {
	path, ok := strings.CutPrefix(url, fmt.Sprintf("https://storage.googleapis.com/%s/", memoryBucket))
	if !ok {
		return fmt.Errorf("blob: url %q is not in bucket %s", url, memoryBucket)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.objects[path]; !ok {
		return fmt.Errorf("blob: object %s does not exist", path)
	}
	delete(m.objects, path)
	return nil
}

// Object returns the stored bytes for a path, for assertions in tests.
func (m *Memory) Object(path string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.objects[path]
	return data, ok
}

// Len reports how many objects are stored.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}
