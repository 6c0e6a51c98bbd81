// Package source manages the lifecycle of an NFS-backed installation
// source: a remote export mounted at a fixed install-tree location for
// the duration of an installation.
package source

import (
	"sync"

	"k8s.io/klog/v2"

	"github.com/osinstall/nfs-source/pkg/mount"
	"github.com/osinstall/nfs-source/pkg/task"
)

// Type identifies the kind of installation source.
type Type string

const (
	// TypeNFS is the source type tag for NFS-backed sources.
	TypeNFS Type = "NFS"

	// InstallTree is the fixed location where the installation source
	// is mounted. All NFS sources share it, which is why at most one
	// may be set up at a time.
	InstallTree = "/run/install/source"
)

// NFSSource is the source module for an NFS-backed install tree.
//
// Readiness is never cached: every IsReady call derives it from the
// live OS mount table, so it stays correct across process restarts and
// mount state changes made outside this module. The module itself
// never mounts or unmounts; it only produces the one-shot tasks that
// do.
type NFSSource struct {
	mu  sync.RWMutex
	url string

	mountLocation string
	mounter       mount.Mounter
}

// Config carries construction parameters for an NFSSource.
type Config struct {
	// MountLocation overrides the default install tree location.
	MountLocation string

	// Mounter overrides the default system mounter.
	Mounter mount.Mounter
}

// New creates an NFS source module. The zero Config uses the fixed
// install tree and the system mounter.
func New(cfg Config) *NFSSource {
	if cfg.MountLocation == "" {
		cfg.MountLocation = InstallTree
	}
	if cfg.Mounter == nil {
		cfg.Mounter = mount.NewMounter()
	}
	return &NFSSource{
		mountLocation: cfg.MountLocation,
		mounter:       cfg.Mounter,
	}
}

// Type returns the source type tag.
func (s *NFSSource) Type() Type {
	return TypeNFS
}

// MountLocation returns the location this source mounts at.
func (s *NFSSource) MountLocation() string {
	return s.mountLocation
}

// URL returns the currently configured NFS URL, or the empty string if
// the source is unconfigured.
func (s *NFSSource) URL() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.url
}

// SetURL replaces the configured URL unconditionally. The value is
// stored opaque; validation happens when a setup task parses it.
func (s *NFSSource) SetURL(url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.url = url
	klog.V(2).Infof("NFS source URL set to %q", url)
}

// IsReady reports whether the install tree is currently mounted,
// queried from the live mount table. Safe to call at any time,
// including while a produced task is running.
func (s *NFSSource) IsReady() (bool, error) {
	return s.mounter.IsLikelyMountPoint(s.mountLocation)
}

// SetUpWithTasks returns the tasks that make this source ready: a
// single setup task constructed with the current URL. The tasks are
// not started and the module is not mutated.
func (s *NFSSource) SetUpWithTasks() []task.Task {
	return []task.Task{
		NewSetUpNFSSourceTask(s.mountLocation, s.URL(), s.mounter),
	}
}

// TearDownWithTasks returns the tasks that tear this source down: a
// single teardown task for the mount location.
func (s *NFSSource) TearDownWithTasks() []task.Task {
	return []task.Task{
		NewTearDownNFSSourceTask(s.mountLocation, s.mounter),
	}
}
