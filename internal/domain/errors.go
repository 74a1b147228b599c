package domain

import "errors"

// Gate and store errors returned as typed values across the engine
// boundary. Callers map these to transport codes; nothing here is
// fatal to the process.
var (
	ErrPassNotFound = errors.New("gate pass not found")

	// ErrStatusConflict is returned to the loser of a concurrent
	// status update: the pass changed between read and write, so the
	// caller should refetch before retrying.
	ErrStatusConflict = errors.New("pass status changed concurrently")

	// ErrNotAuthorizedForExit means the pass has not reached its
	// chain's final approval status.
	ErrNotAuthorizedForExit = errors.New("pass is not authorized for exit")

	// ErrAlreadyOut means an unmatched exit scan already exists; a
	// pass cannot be out twice concurrently.
	ErrAlreadyOut = errors.New("pass already has an open exit")

	// ErrNoActiveExit means an entry scan was attempted with no
	// unmatched exit to close.
	ErrNoActiveExit = errors.New("pass has no open exit to close")

	ErrStudentNotFound = errors.New("student not found in directory")
)
