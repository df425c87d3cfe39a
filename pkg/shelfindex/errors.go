package shelfindex

import "errors"

var (
	// ErrRecordNotFound is returned when removing a record that is not indexed.
	ErrRecordNotFound = errors.New("shelfindex: record not found")

	// ErrInvalidRecord is returned for a record without an ID or items.
	ErrInvalidRecord = errors.New("shelfindex: invalid record")

	// ErrInvalidBrowse is returned for a browse request without a library.
	ErrInvalidBrowse = errors.New("shelfindex: invalid browse request")
)
