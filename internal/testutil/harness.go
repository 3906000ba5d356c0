package testutil

import (
	"fmt"

	"github.com/joshuapare/stackpool/pool"
)

// Harness drives a Pool and a Model in lockstep. Every mutation goes through
// both; Check compares their full observable state.
type Harness[T comparable] struct {
	Pool  *pool.Pool[T]
	Model *Model[T]

	// Heads holds the current head handle of each model stack id.
	Heads []pool.Handle
}

// NewHarness creates a harness around an empty pool and model.
func NewHarness[T comparable]() *Harness[T] {
	return &Harness[T]{
		Pool:  pool.New[T](),
		Model: NewModel[T](),
	}
}

// NewStack registers a fresh stack on both sides and returns its id.
func (h *Harness[T]) NewStack() int {
	id := h.Model.NewStack()
	h.Heads = append(h.Heads, h.Pool.NewStack())
	return id
}

// Push pushes v onto stack id on both sides.
func (h *Harness[T]) Push(id int, v T) error {
	head, err := h.Pool.Push(v, h.Heads[id])
	if err != nil {
		return fmt.Errorf("push on stack %d: %w", id, err)
	}
	h.Heads[id] = head
	h.Model.Push(id, v)
	return nil
}

// Pop pops stack id on both sides. Popping an empty stack must fail on the
// pool side and is not forwarded to the model.
func (h *Harness[T]) Pop(id int) error {
	want, ok := h.Model.Pop(id)

	if !ok {
		if _, err := h.Pool.Pop(h.Heads[id]); err == nil {
			return fmt.Errorf("pop on empty stack %d: pool did not reject", id)
		}
		return nil
	}

	got, err := h.Pool.Value(h.Heads[id])
	if err != nil {
		return fmt.Errorf("pop on stack %d: reading top: %w", id, err)
	}
	if got != want {
		return fmt.Errorf("pop on stack %d: top is %v, model says %v", id, got, want)
	}

	head, err := h.Pool.Pop(h.Heads[id])
	if err != nil {
		return fmt.Errorf("pop on stack %d: %w", id, err)
	}
	h.Heads[id] = head
	return nil
}

// Free releases stack id on both sides.
func (h *Harness[T]) Free(id int) error {
	head, err := h.Pool.FreeStack(h.Heads[id])
	if err != nil {
		return fmt.Errorf("free of stack %d: %w", id, err)
	}
	if head != pool.None {
		return fmt.Errorf("free of stack %d: returned handle %d, want None", id, head)
	}
	h.Heads[id] = head
	h.Model.Free(id)
	return nil
}

// Check verifies that every stack reads back exactly as the model predicts
// and that pool occupancy accounts for every node ever created.
func (h *Harness[T]) Check() error {
	for id, head := range h.Heads {
		got, err := h.Pool.Collect(head)
		if err != nil {
			return fmt.Errorf("stack %d: collect: %w", id, err)
		}
		want := h.Model.Values(id)
		if len(got) != len(want) {
			return fmt.Errorf("stack %d: length %d, model says %d", id, len(got), len(want))
		}
		for i := range got {
			if got[i] != want[i] {
				return fmt.Errorf("stack %d: value %d is %v, model says %v", id, i, got[i], want[i])
			}
		}

		// Traversal must terminate in exactly len steps.
		n, err := h.Pool.Len(head)
		if err != nil {
			return fmt.Errorf("stack %d: len: %w", id, err)
		}
		if n != len(want) {
			return fmt.Errorf("stack %d: walk took %d steps, model says %d", id, n, len(want))
		}
	}

	st := h.Pool.Stats()
	if st.LiveNodes != h.Model.TotalLive() {
		return fmt.Errorf("live nodes %d, model says %d", st.LiveNodes, h.Model.TotalLive())
	}
	if st.LiveNodes+st.FreeNodes != st.Length {
		return fmt.Errorf("occupancy leak: live %d + free %d != length %d",
			st.LiveNodes, st.FreeNodes, st.Length)
	}

	return nil
}
