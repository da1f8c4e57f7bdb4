package issue

import "errors"

var (
	// ErrNotFound indicates the requested issue ID has no record on disk.
	ErrNotFound = errors.New("issue not found")

	// ErrInvalidFormat indicates an issue record could not be decoded.
	ErrInvalidFormat = errors.New("invalid issue record")

	// ErrReservedLabel indicates a body block used a reserved label.
	ErrReservedLabel = errors.New("block label is reserved")

	// ErrLeftoverFiles indicates the record was removed but the issue
	// directory still holds files the store does not own. The directory is
	// left in place for the user to inspect.
	ErrLeftoverFiles = errors.New("issue directory not empty after record removal")

	// ErrIDExhausted indicates ID allocation could not find a free slot.
	ErrIDExhausted = errors.New("could not allocate a unique issue id")
)
