package clipboard

import (
	"sync"

	"github.com/atotto/clipboard"
)

// System writes to the host system clipboard. On headless deployments
// without a clipboard provider every write fails; callers treat that as
// non-fatal.
type System struct{}

// Write copies text to the system clipboard.
func (System) Write(text string) error {
	return clipboard.WriteAll(text)
}

// Memory is an in-process clipboard for tests and headless servers:
// it records the last written value instead of touching the host.
type Memory struct {
	mu   sync.Mutex
	last string
}

// Write records the text as the clipboard content.
func (m *Memory) Write(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.last = text
	return nil
}

// Last returns the most recently written value.
func (m *Memory) Last() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last
}
