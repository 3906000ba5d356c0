package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Test_Cursor_TraversalOrder verifies the cursor walks a chain top-down and
// stops exactly at the end sentinel.
func Test_Cursor_TraversalOrder(t *testing.T) {
	p := New[int]()

	s, err := p.NewStackOf([]int{1, 2, 3})
	require.NoError(t, err)

	var got []int
	for c := p.Begin(s); c != p.End(); {
		v, err := c.Value()
		require.NoError(t, err)
		got = append(got, v)
		require.NoError(t, c.Advance())
	}
	require.Equal(t, []int{3, 2, 1}, got)
}

// Test_Cursor_EmptyStack verifies Begin(None) is already the end cursor.
func Test_Cursor_EmptyStack(t *testing.T) {
	p := New[int]()

	c := p.Begin(p.NewStack())
	require.True(t, c.AtEnd())
	require.True(t, c == p.End())
}

// Test_Cursor_Equality verifies equality semantics: same pool and same
// position, and nothing else.
func Test_Cursor_Equality(t *testing.T) {
	p := New[int]()
	q := New[int]()

	s, err := p.Push(1, None)
	require.NoError(t, err)

	require.True(t, p.Begin(s) == p.Begin(s))
	require.False(t, p.Begin(s) == p.End())

	// End cursors of different pools are distinct even though both sit at
	// the sentinel.
	require.False(t, p.End() == q.End())
}

// Test_Cursor_EndMisuse verifies that dereferencing or advancing the end
// cursor fails instead of reading a recycled slot.
func Test_Cursor_EndMisuse(t *testing.T) {
	p := New[int]()

	c := p.End()
	_, err := c.Value()
	require.ErrorIs(t, err, ErrBadHandle)
	require.ErrorIs(t, c.Advance(), ErrBadHandle)

	// Still at the end afterwards.
	require.True(t, c.AtEnd())
}

// Test_Cursor_CopySemantics verifies that a cursor is a value: advancing a
// copy leaves the original where it was.
func Test_Cursor_CopySemantics(t *testing.T) {
	p := New[int]()

	s, err := p.NewStackOf([]int{1, 2})
	require.NoError(t, err)

	orig := p.Begin(s)
	copied := orig
	require.NoError(t, copied.Advance())

	require.Equal(t, s, orig.Handle())
	require.NotEqual(t, orig, copied)

	v, err := orig.Value()
	require.NoError(t, err)
	require.Equal(t, 2, v)
}

// Test_Cursor_Handle verifies the cursor exposes the handle it is positioned
// at, usable with the pool's direct accessors.
func Test_Cursor_Handle(t *testing.T) {
	p := New[int]()

	s, err := p.NewStackOf([]int{1, 2, 3})
	require.NoError(t, err)

	c := p.Begin(s)
	require.Equal(t, s, c.Handle())

	require.NoError(t, c.Advance())
	next, err := p.Next(s)
	require.NoError(t, err)
	require.Equal(t, next, c.Handle())

	require.NoError(t, p.SetValue(c.Handle(), 22))
	v, err := c.Value()
	require.NoError(t, err)
	require.Equal(t, 22, v)
}

// Test_Cursor_TerminatesInLenSteps verifies traversal reaches the sentinel
// in exactly the stack's length, for stacks produced by push/pop churn.
func Test_Cursor_TerminatesInLenSteps(t *testing.T) {
	p := New[int]()

	s := p.NewStack()
	var err error
	for i := 0; i < 50; i++ {
		s, err = p.Push(i, s)
		require.NoError(t, err)
	}
	for n := 0; n < 17; n++ {
		s, err = p.Pop(s)
		require.NoError(t, err)
	}

	steps := 0
	for c := p.Begin(s); !c.AtEnd(); {
		require.NoError(t, c.Advance())
		steps++
		require.LessOrEqual(t, steps, 50, "traversal must not cycle")
	}
	require.Equal(t, 33, steps)
}

// Test_Collect verifies the materializing helper, including the empty chain.
func Test_Collect(t *testing.T) {
	p := New[int]()

	got, err := p.Collect(None)
	require.NoError(t, err)
	require.Empty(t, got)

	s, err := p.NewStackOf([]int{7, 8})
	require.NoError(t, err)
	got, err = p.Collect(s)
	require.NoError(t, err)
	require.Equal(t, []int{8, 7}, got)

	_, err = p.Collect(Handle(42))
	require.ErrorIs(t, err, ErrBadHandle)
}
