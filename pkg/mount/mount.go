package mount

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"k8s.io/klog/v2"
)

// Mounter handles filesystem operations for the installation source
type Mounter interface {
	// Mount mounts source to target with the given fsType and options
	Mount(source, target, fsType string, options []string) error

	// Unmount unmounts the target. Not idempotent: unmounting a path
	// that is not a mount point fails.
	Unmount(target string) error

	// IsLikelyMountPoint checks if a path is currently a mount point
	IsLikelyMountPoint(path string) (bool, error)

	// GetDeviceStats returns filesystem statistics for a mounted path
	GetDeviceStats(path string) (*DeviceStats, error)
}

// mounter implements Mounter using system commands
type mounter struct {
	execCommand func(name string, args ...string) *exec.Cmd
}

// NewMounter creates a new filesystem mounter
func NewMounter() Mounter {
	return &mounter{
		execCommand: exec.Command,
	}
}

// Mount mounts source to target with the given filesystem type and options
func (m *mounter) Mount(source, target, fsType string, options []string) error {
	klog.V(2).Infof("Mounting %s to %s (fsType: %s, options: %v)", source, target, fsType, options)

	// Create the mount location if it doesn't exist; the install tree
	// may be absent on first use.
	if err := os.MkdirAll(target, 0750); err != nil {
		return fmt.Errorf("failed to create mount location: %w", err)
	}

	args := []string{}
	if fsType != "" {
		args = append(args, "-t", fsType)
	}
	if len(options) > 0 {
		args = append(args, "-o", strings.Join(options, ","))
	}
	args = append(args, source, target)

	cmd := m.execCommand("mount", args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("mount failed: %w, output: %s", err, string(output))
	}

	klog.V(4).Infof("mount output: %s", string(output))
	klog.V(2).Infof("Successfully mounted %s to %s", source, target)
	return nil
}

// Unmount unmounts the target path. There is deliberately no mounted
// pre-check: callers gate teardown on readiness, and unmounting a path
// that is not mounted must surface the umount error.
func (m *mounter) Unmount(target string) error {
	klog.V(2).Infof("Unmounting %s", target)

	cmd := m.execCommand("umount", target)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("umount failed: %w, output: %s", err, string(output))
	}

	klog.V(4).Infof("umount output: %s", string(output))
	klog.V(2).Infof("Successfully unmounted %s", target)
	return nil
}
