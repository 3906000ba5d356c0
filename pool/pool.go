package pool

import (
	"fmt"
	"math"
	"os"
)

// Runtime debug flag for pool operation logging - controlled by STACKPOOL_LOG env var.
var logPool = os.Getenv("STACKPOOL_LOG") != ""

// maxNodes is the maximum number of nodes a pool can hold. Handles are uint32
// and handle = index+1, so the node at index math.MaxUint32-1 carries the
// largest representable handle.
const maxNodes = math.MaxUint32

// Handle is a reference to a node in a Pool. Handle 0 is the null sentinel
// ("empty stack" / end of traversal); handle h > 0 names the node stored at
// index h-1 of the backing slice.
type Handle = uint32

// None is the null handle: the empty stack, and the end of every chain.
const None Handle = 0

// node is one slot of the backing storage: a value plus the handle of its
// successor. The same layout serves live stacks and the free list; a freed
// node keeps whatever stale value it last held.
type node[T any] struct {
	value T
	next  Handle
}

// poolStats holds internal pool statistics.
type poolStats struct {
	PushCalls      int // Total Push() calls
	PopCalls       int // Total Pop() calls
	FreeStackCalls int // Total FreeStack() calls (including no-ops on None)
	NodeGrows      int // Pushes that appended a brand-new node
	NodeReuses     int // Pushes satisfied from the free list
	NodesRecycled  int // Nodes spliced onto the free list by Pop/FreeStack
}

// Stats is a snapshot of pool counters and occupancy.
type Stats struct {
	Capacity  int // Backing-slice capacity in nodes
	Length    int // Nodes ever created (live + free)
	FreeNodes int // Nodes currently on the free list
	LiveNodes int // Nodes currently on some stack

	PushCalls      int
	PopCalls       int
	FreeStackCalls int
	NodeGrows      int
	NodeReuses     int
	NodesRecycled  int
}

// Pool is a growable arena of nodes shared by any number of independent
// stacks. The zero value is NOT ready to use; construct with New or
// NewWithCapacity.
//
// Key characteristics:
//   - O(1) Push/Pop; storage grows by one node only when the free list is empty
//   - Freed nodes are recycled LIFO before storage ever grows again
//   - Handles survive growth (they are indices, not addresses)
//   - No per-stack bookkeeping: a stack is just the handle a caller holds
//
// Pool instances are not thread-safe; see the package documentation.
type Pool[T any] struct {
	// nodes is the backing storage. A node's handle is its index plus one,
	// so handle 0 never indexes into the slice.
	nodes []node[T]

	// freeHead roots the free list, threaded through the same next fields
	// as live stacks. None means the free list is empty.
	freeHead Handle

	// freeLen tracks the free-list length so occupancy is O(1) to report.
	freeLen int

	stats poolStats
}

// New creates an empty Pool.
func New[T any]() *Pool[T] {
	return &Pool[T]{freeHead: None}
}

// NewWithCapacity creates a Pool with room pre-allocated for n nodes.
// The hint only affects amortized Push cost, never semantics; n <= 0 is
// treated as no hint.
func NewWithCapacity[T any](n int) *Pool[T] {
	p := New[T]()
	if n > 0 {
		_ = p.Reserve(n)
	}
	return p
}

// node returns the slot for handle h. Callers must have validated h.
func (p *Pool[T]) node(h Handle) *node[T] {
	return &p.nodes[h-1]
}

// checkHandle validates that h references a node that exists in storage.
func (p *Pool[T]) checkHandle(h Handle) error {
	if h == None || uint64(h) > uint64(len(p.nodes)) {
		return ErrBadHandle
	}
	return nil
}

// NewStack returns the handle of a fresh, empty stack. It never fails and
// allocates nothing: an empty stack is just the null handle.
func (p *Pool[T]) NewStack() Handle {
	return None
}

// IsEmptyStack reports whether h denotes the empty stack.
func (p *Pool[T]) IsEmptyStack(h Handle) bool {
	return h == None
}

// Reserve pre-allocates capacity for at least n nodes. Existing handles keep
// their meaning; only the amortized cost of future Push calls changes.
// Growth is all-or-nothing: on error the pool is unchanged.
func (p *Pool[T]) Reserve(n int) error {
	if n < 0 {
		return ErrBadCount
	}
	if uint64(n) > maxNodes {
		return ErrPoolFull
	}
	if n <= cap(p.nodes) {
		return nil
	}

	grown := make([]node[T], len(p.nodes), n)
	copy(grown, p.nodes)
	p.nodes = grown

	if logPool {
		fmt.Fprintf(os.Stderr, "[POOL] Reserve: capacity now %d nodes\n", cap(p.nodes))
	}

	return nil
}

// Capacity returns the current backing-storage capacity in nodes. This is
// capacity, not element count - informational only.
func (p *Pool[T]) Capacity() int {
	return cap(p.nodes)
}

// Len returns the length of the chain rooted at h by walking it. Len(None)
// is 0. Cost is O(length).
func (p *Pool[T]) Len(h Handle) (int, error) {
	n := 0
	for h != None {
		if err := p.checkHandle(h); err != nil {
			return 0, err
		}
		h = p.node(h).next
		n++
	}
	return n, nil
}

// Push prepends v to the chain rooted at head and returns the new head.
//
// If the free list is empty, exactly one brand-new node is appended to
// storage; otherwise the most recently freed node is reused. Either way the
// node's successor becomes head. A failed Push leaves freeHead and storage
// exactly as they were.
func (p *Pool[T]) Push(v T, head Handle) (Handle, error) {
	if head != None {
		if err := p.checkHandle(head); err != nil {
			return None, err
		}
	}

	if p.freeHead == None {
		// The only place storage grows: synthesize one node whose next is the
		// sentinel and point the free list at it.
		if uint64(len(p.nodes)) >= maxNodes {
			return None, ErrPoolFull
		}
		p.nodes = append(p.nodes, node[T]{next: None})
		p.freeHead = Handle(len(p.nodes))
		p.freeLen++
		p.stats.NodeGrows++
	} else {
		p.stats.NodeReuses++
	}

	newHead := p.freeHead
	nd := p.node(newHead)
	p.freeHead = nd.next
	p.freeLen--

	nd.value = v
	nd.next = head

	p.stats.PushCalls++

	return newHead, nil
}

// Pop removes the front node of the chain rooted at head and returns the new
// head. The removed node is spliced onto the front of the free list.
//
// Popping the empty stack is caller error (ErrEmptyStack), not a no-op.
func (p *Pool[T]) Pop(head Handle) (Handle, error) {
	if head == None {
		return None, ErrEmptyStack
	}
	if err := p.checkHandle(head); err != nil {
		return None, err
	}

	nd := p.node(head)
	newHead := nd.next

	nd.next = p.freeHead
	p.freeHead = head
	p.freeLen++

	p.stats.PopCalls++
	p.stats.NodesRecycled++

	return newHead, nil
}

// FreeStack releases the entire chain rooted at head in one splice and
// returns the empty-stack handle. FreeStack(None) is a defined no-op, so the
// call is idempotent. Cost is O(length of the chain): the bottom must be
// found by traversal before its next can be pointed at the free list.
func (p *Pool[T]) FreeStack(head Handle) (Handle, error) {
	p.stats.FreeStackCalls++

	if head == None {
		return None, nil
	}
	if err := p.checkHandle(head); err != nil {
		return None, err
	}

	// Walk to the bottom of the chain, counting as we go.
	n := 1
	bottom := head
	for {
		nd := p.node(bottom)
		if nd.next == None {
			break
		}
		bottom = nd.next
		if err := p.checkHandle(bottom); err != nil {
			return None, err
		}
		n++
	}

	p.node(bottom).next = p.freeHead
	p.freeHead = head
	p.freeLen += n
	p.stats.NodesRecycled += n

	if logPool {
		fmt.Fprintf(os.Stderr, "[POOL] FreeStack: recycled %d nodes, free list now %d\n", n, p.freeLen)
	}

	return None, nil
}

// Value returns the payload stored at h.
func (p *Pool[T]) Value(h Handle) (T, error) {
	if err := p.checkHandle(h); err != nil {
		var zero T
		return zero, err
	}
	return p.node(h).value, nil
}

// SetValue overwrites the payload stored at h.
func (p *Pool[T]) SetValue(h Handle, v T) error {
	if err := p.checkHandle(h); err != nil {
		return err
	}
	p.node(h).value = v
	return nil
}

// Next returns the successor handle stored at h. The successor of the last
// node of a chain is None.
func (p *Pool[T]) Next(h Handle) (Handle, error) {
	if err := p.checkHandle(h); err != nil {
		return None, err
	}
	return p.node(h).next, nil
}

// NewStackOf builds a new stack by pushing each element of values in order,
// so the last element ends up on top. An empty slice yields the empty stack.
func (p *Pool[T]) NewStackOf(values []T) (Handle, error) {
	head := p.NewStack()
	for _, v := range values {
		var err error
		head, err = p.Push(v, head)
		if err != nil {
			return None, err
		}
	}
	return head, nil
}

// Collect materializes the chain rooted at h top-down into a fresh slice.
// Collect(None) returns an empty slice.
func (p *Pool[T]) Collect(h Handle) ([]T, error) {
	out := []T{}
	for c := p.Begin(h); !c.AtEnd(); {
		v, err := c.Value()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
		if err := c.Advance(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Stats returns a snapshot of pool counters and occupancy.
func (p *Pool[T]) Stats() Stats {
	return Stats{
		Capacity:  cap(p.nodes),
		Length:    len(p.nodes),
		FreeNodes: p.freeLen,
		LiveNodes: len(p.nodes) - p.freeLen,

		PushCalls:      p.stats.PushCalls,
		PopCalls:       p.stats.PopCalls,
		FreeStackCalls: p.stats.FreeStackCalls,
		NodeGrows:      p.stats.NodeGrows,
		NodeReuses:     p.stats.NodeReuses,
		NodesRecycled:  p.stats.NodesRecycled,
	}
}
