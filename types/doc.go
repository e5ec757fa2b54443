// Package types provides validated identifiers for git operations.
//
// Every identifier is an immutable wrapper around a string that satisfied a
// format check at construction time:
//   - RemoteURL: git://, ssh://, http(s):// and scp-like git@host:path URLs ending in .git
//   - RefName: branch and other reference names
//   - CommitHash: abbreviated or full hexadecimal object names
//   - RemoteName, Tag, StashRef
//
// Identifiers are only built by their Parse functions, so a value that reaches
// a git argument list can never start with "-" and be read as a flag.
package types
