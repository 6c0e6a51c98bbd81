package mount

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/moby/sys/mountinfo"
	"k8s.io/klog/v2"
)

// MountTableTimeout is the maximum time to wait for a mount table read.
// A hung NFS server can stall traversal of /proc/self/mountinfo.
const MountTableTimeout = 10 * time.Second

// IsLikelyMountPoint checks if a path is currently a mount point by
// consulting the live mount table. A path that does not exist is not a
// mount point, not an error.
func (m *mounter) IsLikelyMountPoint(path string) (bool, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return false, nil
	}

	mounted, err := mountinfo.Mounted(path)
	if err != nil {
		return false, fmt.Errorf("failed to query mount table for %s: %w", path, err)
	}

	klog.V(4).Infof("Mount table query for %s: mounted=%v", path, mounted)
	return mounted, nil
}

// GetMountsWithTimeout reads the mount table with a timeout to prevent
// hangs on unresponsive NFS mounts. Returns an error if the read takes
// longer than MountTableTimeout.
func GetMountsWithTimeout(ctx context.Context) ([]*mountinfo.Info, error) {
	ctx, cancel := context.WithTimeout(ctx, MountTableTimeout)
	defer cancel()

	type result struct {
		mounts []*mountinfo.Info
		err    error
	}
	resultCh := make(chan result, 1)

	go func() {
		mounts, err := mountinfo.GetMounts(nil)
		resultCh <- result{mounts: mounts, err: err}
	}()

	select {
	case res := <-resultCh:
		return res.mounts, res.err
	case <-ctx.Done():
		return nil, fmt.Errorf("mount table read timed out after %v: %w", MountTableTimeout, ctx.Err())
	}
}

// FindMountEntry returns the mount table entry for the given mount
// point, or an error if the path is not mounted.
func FindMountEntry(ctx context.Context, mountPath string) (*mountinfo.Info, error) {
	mounts, err := GetMountsWithTimeout(ctx)
	if err != nil {
		return nil, err
	}

	for _, entry := range mounts {
		if entry.Mountpoint == mountPath {
			klog.V(4).Infof("Found mount entry for %s: source=%s, fstype=%s, options=%s",
				mountPath, entry.Source, entry.FSType, entry.Options)
			return entry, nil
		}
	}

	return nil, fmt.Errorf("mount point not found: %s", mountPath)
}
