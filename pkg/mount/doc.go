// Package mount provides the mount, unmount and mount-table collaborators
// for the installation source lifecycle.
//
// # Logging Verbosity Convention
//
// This package follows Kubernetes logging conventions for verbosity levels:
//
//   - V(0): Always visible - programmer errors, panics
//   - V(2): Production default - operation outcomes, state changes
//     Examples: "Mounted example.com:/path to /run/install/source"
//   - V(4): Debug level - intermediate steps, parameters, diagnostics
//   - V(5): Trace level - command output, mount table entries
//
// V(3) is avoided in favor of V(2) (if actionable) or V(4) (if diagnostic).
package mount
