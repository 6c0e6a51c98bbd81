package source

import (
	"context"
	"fmt"

	"k8s.io/klog/v2"

	"github.com/osinstall/nfs-source/pkg/mount"
	"github.com/osinstall/nfs-source/pkg/nfsurl"
	"github.com/osinstall/nfs-source/pkg/utils"
)

// nfsFSType is the filesystem type passed to every source mount.
const nfsFSType = "nfs"

// SetUpNFSSourceTask mounts the configured NFS export at the install
// tree. One-shot: construct, run once, discard.
type SetUpNFSSourceTask struct {
	mountLocation string
	url           string
	mounter       mount.Mounter
}

// NewSetUpNFSSourceTask creates a setup task for the given mount
// location and raw NFS URL. The URL is parsed at run time, not here.
func NewSetUpNFSSourceTask(mountLocation, url string, mounter mount.Mounter) *SetUpNFSSourceTask {
	return &SetUpNFSSourceTask{
		mountLocation: mountLocation,
		url:           url,
		mounter:       mounter,
	}
}

// Name returns the task's progress-reporting label.
func (t *SetUpNFSSourceTask) Name() string {
	return "Set up NFS installation source"
}

// Run parses the URL and mounts the export at the install tree. The
// mount is attempted exactly once; on failure the filesystem is left
// unchanged and the error carries the underlying cause.
func (t *SetUpNFSSourceTask) Run(ctx context.Context) error {
	target, err := nfsurl.Parse(t.url)
	if err != nil {
		return err
	}

	klog.V(4).Infof("Setting up NFS source %s at %s (options: %s)",
		target.Address, t.mountLocation, target.Options)

	if err := t.mounter.Mount(target.Address, t.mountLocation, nfsFSType, target.OptionList()); err != nil {
		return fmt.Errorf("%w: mounting %s at %s: %w",
			utils.ErrMountFailed, target.Address, t.mountLocation, err)
	}
	return nil
}
