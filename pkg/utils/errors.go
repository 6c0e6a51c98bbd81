// Package utils provides shared error definitions for the source lifecycle.
package utils

import (
	"errors"
)

// Sentinel errors for source lifecycle failures.
// Use errors.Is() to check for these rather than string matching.
var (
	// ErrMalformedURL indicates an installation source URL that cannot be parsed
	ErrMalformedURL = errors.New("malformed source URL")

	// ErrMountFailed indicates a mount operation failed
	ErrMountFailed = errors.New("mount failed")

	// ErrUnmountFailed indicates an unmount operation failed
	ErrUnmountFailed = errors.New("unmount failed")

	// ErrSourceNotReady indicates the install tree is not mounted
	ErrSourceNotReady = errors.New("source not ready")
)
