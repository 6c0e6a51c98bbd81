package source

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osinstall/nfs-source/pkg/utils"
	"github.com/osinstall/nfs-source/test/mock"
)

func TestSetUpTaskName(t *testing.T) {
	task := NewSetUpNFSSourceTask(testMountLocation, testURL, mock.NewMockMounter())
	assert.Equal(t, "Set up NFS installation source", task.Name())
}

func TestSetUpTaskRun(t *testing.T) {
	tests := []struct {
		name        string
		url         string
		wantOptions []string
	}{
		{
			name:        "plain url mounts with nolock",
			url:         testURL,
			wantOptions: []string{"nolock"},
		},
		{
			name:        "caller option gets nolock appended",
			url:         "nfs:some-option:" + testAddress,
			wantOptions: []string{"some-option", "nolock"},
		},
		{
			name:        "nolock in caller options is not duplicated",
			url:         "nfs:some-option,nolock:" + testAddress,
			wantOptions: []string{"some-option", "nolock"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mounter := mock.NewMockMounter()
			task := NewSetUpNFSSourceTask(testMountLocation, tt.url, mounter)

			require.NoError(t, task.Run(context.Background()))

			calls := mounter.GetMountCalls()
			require.Len(t, calls, 1, "mount must be invoked exactly once")
			assert.Equal(t, testAddress, calls[0].Source)
			assert.Equal(t, testMountLocation, calls[0].Target)
			assert.Equal(t, "nfs", calls[0].FSType)
			assert.Equal(t, tt.wantOptions, calls[0].Options)

			assert.True(t, mounter.IsMounted(testMountLocation))
		})
	}
}

func TestSetUpTaskMalformedURL(t *testing.T) {
	mounter := mock.NewMockMounter()
	task := NewSetUpNFSSourceTask(testMountLocation, "nfs:opt:host:/path:extra", mounter)

	err := task.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, utils.ErrMalformedURL)

	assert.Empty(t, mounter.GetMountCalls(), "malformed URLs must fail before mounting")
}

func TestSetUpTaskMountFailure(t *testing.T) {
	cause := errors.New("mount.nfs: Connection timed out")
	mounter := mock.NewMockMounter()
	mounter.SetMountError(cause)

	task := NewSetUpNFSSourceTask(testMountLocation, testURL, mounter)

	err := task.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, utils.ErrMountFailed)
	assert.ErrorIs(t, err, cause)

	// No retry, and no state change.
	require.Len(t, mounter.GetMountCalls(), 1)
	assert.False(t, mounter.IsMounted(testMountLocation))
}
