// Package testutil provides a reference model of pool stack semantics and a
// mirroring harness. The randomized property tests and the poolctl verify
// command drive a Pool and a Model in lockstep and fail on any divergence.
package testutil

// Model is a deliberately naive reference implementation of many stacks:
// each stack is a plain slice with its top at the end. It has none of the
// pool's handle or free-list machinery, which is the point - it cannot share
// the pool's bugs.
type Model[T comparable] struct {
	stacks [][]T
}

// NewModel creates an empty Model.
func NewModel[T comparable]() *Model[T] {
	return &Model[T]{}
}

// NewStack registers a new empty stack and returns its id.
func (m *Model[T]) NewStack() int {
	m.stacks = append(m.stacks, nil)
	return len(m.stacks) - 1
}

// Stacks returns the number of registered stacks.
func (m *Model[T]) Stacks() int {
	return len(m.stacks)
}

// Push appends v as the new top of stack id.
func (m *Model[T]) Push(id int, v T) {
	m.stacks[id] = append(m.stacks[id], v)
}

// Pop removes and returns the top of stack id; ok is false if it is empty.
func (m *Model[T]) Pop(id int) (v T, ok bool) {
	s := m.stacks[id]
	if len(s) == 0 {
		return v, false
	}
	v = s[len(s)-1]
	m.stacks[id] = s[:len(s)-1]
	return v, true
}

// Free empties stack id.
func (m *Model[T]) Free(id int) {
	m.stacks[id] = nil
}

// Len returns the length of stack id.
func (m *Model[T]) Len(id int) int {
	return len(m.stacks[id])
}

// Values returns stack id top-down, the order a pool cursor visits it.
func (m *Model[T]) Values(id int) []T {
	s := m.stacks[id]
	out := make([]T, 0, len(s))
	for i := len(s) - 1; i >= 0; i-- {
		out = append(out, s[i])
	}
	return out
}

// TotalLive returns the number of elements across all stacks.
func (m *Model[T]) TotalLive() int {
	n := 0
	for _, s := range m.stacks {
		n += len(s)
	}
	return n
}
