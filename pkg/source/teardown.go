package source

import (
	"context"
	"fmt"

	"k8s.io/klog/v2"

	"github.com/osinstall/nfs-source/pkg/mount"
	"github.com/osinstall/nfs-source/pkg/utils"
)

// TearDownNFSSourceTask unmounts the install tree. One-shot, and not
// idempotent: unmounting a location that is not mounted is an error.
// Callers gate teardown on a prior successful setup.
type TearDownNFSSourceTask struct {
	mountLocation string
	mounter       mount.Mounter
}

// NewTearDownNFSSourceTask creates a teardown task for the given mount
// location.
func NewTearDownNFSSourceTask(mountLocation string, mounter mount.Mounter) *TearDownNFSSourceTask {
	return &TearDownNFSSourceTask{
		mountLocation: mountLocation,
		mounter:       mounter,
	}
}

// Name returns the task's progress-reporting label.
func (t *TearDownNFSSourceTask) Name() string {
	return "Tear down NFS installation source"
}

// Run unmounts the install tree exactly once; on failure the error
// carries the underlying cause and the filesystem is left unchanged.
func (t *TearDownNFSSourceTask) Run(ctx context.Context) error {
	klog.V(4).Infof("Tearing down NFS source at %s", t.mountLocation)

	if err := t.mounter.Unmount(t.mountLocation); err != nil {
		return fmt.Errorf("%w: %s: %w", utils.ErrUnmountFailed, t.mountLocation, err)
	}
	return nil
}
