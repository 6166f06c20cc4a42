// Package audittest provides an audit recorder that keeps entries in memory.
package audittest

import (
	"context"
	"database/sql"
	"sync"

	"github.com/eliezerb2/presence/internal/audit"
)

type MemoryRecorder struct {
	mu      sync.Mutex
	entries []audit.Entry

	// Err, when set, fails every Record call.
	Err error
}

func NewMemoryRecorder() *MemoryRecorder {
	return &MemoryRecorder{}
}

func (m *MemoryRecorder) Record(ctx context.Context, tx *sql.Tx, e audit.Entry) error {
	if m.Err != nil {
		return m.Err
	}
	if e.Changes == nil {
		e.Changes = audit.Diff(e.Before, e.After)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, e)
	return nil
}

func (m *MemoryRecorder) Entries() []audit.Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]audit.Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

func (m *MemoryRecorder) Actions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e.Action)
	}
	return out
}

func (m *MemoryRecorder) ByAction(action string) []audit.Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []audit.Entry
	for _, e := range m.entries {
		if e.Action == action {
			out = append(out, e)
		}
	}
	return out
}

func (m *MemoryRecorder) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = nil
}
