package pool

// Cursor is a forward-only, single-pass view over one chain of a Pool. It
// holds only a pool reference and the current handle, so copying a cursor is
// cheap and copies share no state beyond the pool itself.
//
// Two cursors are equal (==) iff they reference the same pool and the same
// current handle, which is how end-of-traversal is detected:
//
//	for c := p.Begin(head); c != p.End(); c.Advance() { ... }
//
// A cursor owns nothing and protects against nothing: it must not outlive
// its pool, and any Pop or FreeStack that recycles nodes the cursor has yet
// to visit invalidates it without notice.
type Cursor[T any] struct {
	pool    *Pool[T]
	current Handle
}

// Begin returns a cursor positioned at head. Begin(None) is already at the
// end.
func (p *Pool[T]) Begin(h Handle) Cursor[T] {
	return Cursor[T]{pool: p, current: h}
}

// End returns the past-the-end cursor every traversal of this pool
// terminates at.
func (p *Pool[T]) End() Cursor[T] {
	return Cursor[T]{pool: p, current: None}
}

// Handle returns the handle the cursor is positioned at; None at the end.
func (c Cursor[T]) Handle() Handle {
	return c.current
}

// AtEnd reports whether the cursor has reached the end of its chain.
func (c Cursor[T]) AtEnd() bool {
	return c.current == None
}

// Value returns the payload at the cursor's position. Dereferencing the end
// cursor is ErrBadHandle.
func (c Cursor[T]) Value() (T, error) {
	if c.current == None || c.pool == nil {
		var zero T
		return zero, ErrBadHandle
	}
	return c.pool.Value(c.current)
}

// Advance moves the cursor to the successor of its current node. Advancing a
// cursor already at the end is ErrBadHandle.
func (c *Cursor[T]) Advance() error {
	if c.current == None || c.pool == nil {
		return ErrBadHandle
	}
	next, err := c.pool.Next(c.current)
	if err != nil {
		return err
	}
	c.current = next
	return nil
}
