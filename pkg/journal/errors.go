// Package journal is an append-only log of record changes, replayed on
// start-up to rebuild in-memory state
package journal

import "errors"

var (
	// ErrCorrupted indicates an entry whose checksum does not match
	ErrCorrupted = errors.New("journal: corrupted entry")

	// ErrTruncated indicates an entry cut short, usually by a crash mid-write
	ErrTruncated = errors.New("journal: truncated entry")

	// ErrClosed indicates an operation on a closed journal
	ErrClosed = errors.New("journal: closed")
)
