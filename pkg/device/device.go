// Package device implements client-local device identity and vote history.
// The identity is a generated "device-" prefixed UUID persisted on disk so a
// returning client keeps the same id across restarts.
package device

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
)

const idPrefix = "device-"

const idFileName = "device_id"

// Manager owns one device identity backed by a file under dir. The id is
// cached in memory after the first read; disk failures degrade to a fresh
// in-memory id rather than an error.
type Manager struct {
	dir string

	mu sync.Mutex
	id string
}

func NewManager(dir string) *Manager {
	return &Manager{dir: dir}
}

// DeviceID returns the persistent device id, generating and storing one when
// none exists. When the id file is unreadable or corrupt a new id is
// generated; when it cannot be written the id still works for the lifetime
// of the process.
func (m *Manager) DeviceID() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.id != "" {
		return m.id
	}

	if id, err := m.readStored(); err == nil && IsValid(id) {
		m.id = id
		return m.id
	}

	m.id = Generate()
	_ = m.store(m.id)
	return m.id
}

// Reset discards the current identity and generates a new one.
func (m *Manager) Reset() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.id = Generate()
	_ = m.store(m.id)
	return m.id
}

func (m *Manager) readStored() (string, error) {
	data, err := os.ReadFile(filepath.Join(m.dir, idFileName))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func (m *Manager) store(id string) error {
	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create device dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(m.dir, idFileName), []byte(id), 0o644); err != nil {
		return fmt.Errorf("failed to store device id: %w", err)
	}
	return nil
}

// Generate produces a fresh device id.
func Generate() string {
	return idPrefix + uuid.NewString()
}

// IsValid reports whether s is a well-formed device id.
func IsValid(s string) bool {
	if !strings.HasPrefix(s, idPrefix) {
		return false
	}
	_, err := uuid.Parse(strings.TrimPrefix(s, idPrefix))
	return err == nil
}
