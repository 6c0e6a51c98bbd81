// Package mock provides test doubles for the source lifecycle collaborators.
package mock

import (
	"fmt"
	"sync"

	"github.com/osinstall/nfs-source/pkg/mount"
)

// MockMounter is a mock implementation of mount.Mounter for testing
type MockMounter struct {
	mu sync.RWMutex

	// Mounted filesystems: target path -> source address
	mounted map[string]string

	// Error injection
	mountErr   error
	unmountErr error

	// Call tracking
	mountCalls   []MountCall
	unmountCalls []string
}

// MountCall tracks a Mount operation
type MountCall struct {
	Source  string
	Target  string
	FSType  string
	Options []string
}

// NewMockMounter creates a new mock mounter
func NewMockMounter() *MockMounter {
	return &MockMounter{
		mounted: make(map[string]string),
	}
}

// Mount implements mount.Mounter
func (m *MockMounter) Mount(source, target, fsType string, options []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.mountCalls = append(m.mountCalls, MountCall{
		Source:  source,
		Target:  target,
		FSType:  fsType,
		Options: options,
	})

	if m.mountErr != nil {
		return m.mountErr
	}

	m.mounted[target] = source
	return nil
}

// Unmount implements mount.Mounter. Like the real mounter it is not
// idempotent: unmounting a path that is not mounted is an error.
func (m *MockMounter) Unmount(target string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.unmountCalls = append(m.unmountCalls, target)

	if m.unmountErr != nil {
		return m.unmountErr
	}

	if _, mounted := m.mounted[target]; !mounted {
		return fmt.Errorf("umount %s: not mounted", target)
	}

	delete(m.mounted, target)
	return nil
}

// IsLikelyMountPoint implements mount.Mounter
func (m *MockMounter) IsLikelyMountPoint(path string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, mounted := m.mounted[path]
	return mounted, nil
}

// GetDeviceStats implements mount.Mounter
func (m *MockMounter) GetDeviceStats(path string) (*mount.DeviceStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if _, mounted := m.mounted[path]; !mounted {
		return nil, fmt.Errorf("not mounted: %s", path)
	}

	return &mount.DeviceStats{
		TotalBytes:      10 * 1024 * 1024 * 1024, // 10 GiB
		UsedBytes:       1 * 1024 * 1024 * 1024,  // 1 GiB
		AvailableBytes:  9 * 1024 * 1024 * 1024,  // 9 GiB
		TotalInodes:     1000000,
		UsedInodes:      100000,
		AvailableInodes: 900000,
	}, nil
}

// Test helper methods

// SetMountError sets an error to return on Mount operations
func (m *MockMounter) SetMountError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mountErr = err
}

// SetUnmountError sets an error to return on Unmount operations
func (m *MockMounter) SetUnmountError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.unmountErr = err
}

// SetMounted records a mount without going through Mount, for tests
// that need pre-existing mount state.
func (m *MockMounter) SetMounted(target, source string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mounted[target] = source
}

// GetMountCalls returns the history of Mount calls
func (m *MockMounter) GetMountCalls() []MountCall {
	m.mu.RLock()
	defer m.mu.RUnlock()
	calls := make([]MountCall, len(m.mountCalls))
	copy(calls, m.mountCalls)
	return calls
}

// GetUnmountCalls returns the history of Unmount calls
func (m *MockMounter) GetUnmountCalls() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	calls := make([]string, len(m.unmountCalls))
	copy(calls, m.unmountCalls)
	return calls
}

// IsMounted checks if a path is currently mounted
func (m *MockMounter) IsMounted(path string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, mounted := m.mounted[path]
	return mounted
}

// Reset clears all state for test isolation
func (m *MockMounter) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mounted = make(map[string]string)
	m.mountCalls = nil
	m.unmountCalls = nil
	m.mountErr = nil
	m.unmountErr = nil
}
