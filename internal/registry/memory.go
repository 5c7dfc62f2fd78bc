package registry

import (
	"sync"

	"github.com/tidwall/btree"
)

// Memory is an in-process content-hash registry backed by an ordered map.
type Memory struct {
	lock    sync.Mutex
	entries btree.Map[string, string]
}

func NewMemory() *Memory {
	return &Memory{}
}

// Put stores source text and returns its content hash.
func (m *Memory) Put(source string) string {
	hash := HashOf(source)

	m.lock.Lock()
	defer m.lock.Unlock()
	m.entries.Set(hash, source)
	return hash
}

func (m *Memory) Resolve(hash string) (string, bool) {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.entries.Get(hash)
}

// Hashes returns all registered hashes in lexical order.
func (m *Memory) Hashes() []string {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.entries.Keys()
}
