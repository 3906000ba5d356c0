package pool

import "errors"

var (
	// ErrBadHandle indicates a dereference of the null sentinel or of a handle
	// beyond the current backing storage.
	ErrBadHandle = errors.New("pool: bad handle")

	// ErrEmptyStack indicates a Pop on the empty-stack handle.
	ErrEmptyStack = errors.New("pool: pop on empty stack")

	// ErrPoolFull indicates that the uint32 handle space is exhausted.
	ErrPoolFull = errors.New("pool: handle space exhausted")

	// ErrBadCount indicates a negative count passed to Reserve.
	ErrBadCount = errors.New("pool: negative count")
)
