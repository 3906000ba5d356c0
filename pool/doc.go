// Package pool implements a growable node pool that backs many independent
// singly-linked stacks with one contiguous array.
//
// # Overview
//
// A Pool stores fixed-size nodes in a single growable slice and refers to them
// by small integer handles instead of pointers. Each node carries a value and
// the handle of its successor, so a logical stack is nothing more than the
// handle of its top node. Freed nodes are threaded into an internal free list
// using the same successor field, and are reused before the backing slice ever
// grows again. Repeated push/pop/free cycles therefore never leak slots.
//
// # Handles
//
// Handles are uint32 offsets into the pool, shifted by one:
//
//	Handle 0 (None)  → the empty stack / end of traversal
//	Handle h (h > 0) → the node stored at index h-1
//
// The off-by-one encoding reserves the all-zero handle as the null sentinel,
// so an empty stack needs no separate representation. Handles stay valid
// across growth of the backing slice because they are indices, not addresses.
//
// # Usage Example
//
//	p := pool.New[int]()
//
//	s := p.NewStack()
//	s, _ = p.Push(10, s)
//	s, _ = p.Push(20, s)
//
//	for c := p.Begin(s); c != p.End(); c.Advance() {
//	    v, _ := c.Value()
//	    fmt.Println(v) // 20, then 10
//	}
//
//	s, _ = p.FreeStack(s) // whole chain back on the free list
//
// # Multiple Stacks
//
// Any number of stacks may share one pool. The pool keeps no registry of live
// stack heads; which handles denote stacks is caller discipline alone. A node
// belongs to at most one chain at a time - either exactly one stack or the
// free list.
//
// # Cost Model
//
// Push, Pop and the checked accessors are O(1); Push grows the backing slice
// by one node only when the free list is empty. FreeStack is O(length of the
// chain) because finding the bottom requires a full traversal; there is no
// tail pointer. Reuse order is LIFO: the most recently freed node is the next
// one handed out.
//
// # Error Handling
//
// Misuse surfaces as sentinel errors, never as silent corruption: ErrBadHandle
// for a dereference of None or of an out-of-range handle, ErrEmptyStack for
// popping an empty stack, ErrPoolFull when the uint32 handle space is
// exhausted. A failed operation leaves the pool exactly as it was.
//
// # Thread Safety
//
// Pool instances are not thread-safe. All stacks in a pool share the same
// mutable backing storage, so callers must synchronize access externally if a
// pool is driven from more than one goroutine. Cursors are non-owning views:
// a Pop or FreeStack that recycles nodes a cursor has yet to visit silently
// invalidates that cursor.
package pool
