// Package cli implements the gitpilot command tree.
//
// Commands resolve the repository enclosing the -C directory, run one
// repository operation and hand the result to the output printer. Setting
// git.async routes every operation through the non-blocking handle.
package cli
