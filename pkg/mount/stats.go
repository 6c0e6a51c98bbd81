package mount

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// DeviceStats represents filesystem statistics for a mounted path.
// The installer uses these for free-space checks against the install
// tree before committing to a payload.
type DeviceStats struct {
	// Total size in bytes
	TotalBytes int64

	// Used bytes
	UsedBytes int64

	// Available bytes
	AvailableBytes int64

	// Total inodes
	TotalInodes int64

	// Used inodes
	UsedInodes int64

	// Available inodes
	AvailableInodes int64
}

// GetDeviceStats returns filesystem statistics for the given path
func (m *mounter) GetDeviceStats(path string) (*DeviceStats, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return nil, fmt.Errorf("statfs %s failed: %w", path, err)
	}

	return &DeviceStats{
		TotalBytes:      int64(st.Blocks) * st.Bsize,
		UsedBytes:       int64(st.Blocks-st.Bfree) * st.Bsize,
		AvailableBytes:  int64(st.Bavail) * st.Bsize,
		TotalInodes:     int64(st.Files),
		UsedInodes:      int64(st.Files - st.Ffree),
		AvailableInodes: int64(st.Ffree),
	}, nil
}
