// Package clipboard reads and writes the local system clipboard.
package clipboard

import (
	"fmt"
	"sync"

	"github.com/atotto/clipboard"
)

type Clipboard interface {
	Read() (string, error)
	Write(text string) error
}

type system struct{}

// System returns the OS clipboard. On Linux it needs xclip, xsel or
// wl-clipboard on PATH.
func System() Clipboard {
	return system{}
}

func (system) Read() (string, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("failed to read from clipboard: %w", err)
	}
	return text, nil
}

func (system) Write(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return nil
}

// IsAvailable reports whether the OS clipboard can be used on this machine.
func IsAvailable() bool {
	return !clipboard.Unsupported
}

// Memory is an in-process clipboard, used when no system clipboard exists.
type Memory struct {
	mu   sync.Mutex
	text string
}

func (m *Memory) Read() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text, nil
}

func (m *Memory) Write(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
	return nil
}
