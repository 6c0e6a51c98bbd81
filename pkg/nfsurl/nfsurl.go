// Package nfsurl parses installation source URLs of the form
// "nfs:[options:]host:export-path" into the address and option string
// handed to the mount syscall.
//
// The grammar is the installer's compact form, not a standard URL:
// the colon both terminates the scheme and separates the optional
// mount options from the export address, so net/url cannot parse it.
package nfsurl

import (
	"fmt"
	"strings"

	"github.com/osinstall/nfs-source/pkg/utils"
)

// Scheme is the prefix identifying NFS installation source URLs.
const Scheme = "nfs:"

// nolockOption must be present in every resolved option string.
// Installer environments run without rpc.statd, so NFS locking has to
// be disabled for the mount to succeed.
const nolockOption = "nolock"

// Target is the transient parse result consumed by a setup task.
type Target struct {
	// Address is the "host:export-path" string passed as the mount source.
	Address string

	// Options is the comma-separated mount option string. It is never
	// empty and contains "nolock" exactly once.
	Options string
}

// OptionList returns the mount options split into individual tokens,
// the form mount collaborators take.
func (t Target) OptionList() []string {
	return strings.Split(t.Options, ",")
}

// Parse parses a raw NFS source URL.
//
// Two forms are accepted: "nfs:host:path" and "nfs:options:host:path".
// Any other segment count is a malformed-URL error; there is no
// best-effort parse.
func Parse(raw string) (Target, error) {
	if !strings.HasPrefix(raw, Scheme) {
		return Target{}, fmt.Errorf("%w: %q does not start with %q", utils.ErrMalformedURL, raw, Scheme)
	}

	segments := strings.Split(strings.TrimPrefix(raw, Scheme), ":")
	switch len(segments) {
	case 2:
		return Target{
			Address: segments[0] + ":" + segments[1],
			Options: normalizeOptions(""),
		}, nil
	case 3:
		return Target{
			Address: segments[1] + ":" + segments[2],
			Options: normalizeOptions(segments[0]),
		}, nil
	default:
		return Target{}, fmt.Errorf("%w: %q has %d segments, want 2 or 3", utils.ErrMalformedURL, raw, len(segments))
	}
}

// normalizeOptions treats options as a comma-separated set and ensures
// nolock is a member, without duplicating it.
func normalizeOptions(options string) string {
	if options == "" {
		return nolockOption
	}
	for _, opt := range strings.Split(options, ",") {
		if opt == nolockOption {
			return options
		}
	}
	return options + "," + nolockOption
}
