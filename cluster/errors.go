package cluster

import "clusterhttp/internal/baseerror"

var (
	// ErrNotFound is the parent of all resolution failures. Handlers match
	// it with errors.Is to produce 404 responses.
	ErrNotFound = baseerror.New("not found")

	ErrMemberNotFound = ErrNotFound.New("member not found")

	ErrUnsupportedOperation = baseerror.New("operation not supported")

	ErrInvalidAddress = baseerror.New("invalid address")
)
