package queue //nolint:testpackage

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checkInvariants verifies the head/tail/size bookkeeping against the chain.
func checkInvariants[T any](t *testing.T, q *Queue[T]) {
	t.Helper()

	if q.head == none {
		require.Equal(t, none, q.tail, "tail must be unset on an empty queue")
		require.Zero(t, q.size)
		return
	}

	count := 0
	last := none
	for r := q.head; r != none; r = q.at(r).next {
		last = r
		count++
		require.LessOrEqual(t, count, len(q.nodes), "cycle in chain")
	}

	require.Equal(t, last, q.tail, "tail must be the last reachable node")
	require.Equal(t, count, q.size)
}

func TestPushPop(t *testing.T) {
	t.Parallel()

	q := New[string]()
	q.Push("foo")
	q.Push("bar")
	q.Push("baz")
	assert.Equal(t, 3, q.Size())
	checkInvariants(t, q)

	for _, want := range []string{"foo", "bar", "baz"} {
		got, ok := q.Pop()
		require.True(t, ok)
		assert.Equal(t, want, got)
		checkInvariants(t, q)
	}

	got, ok := q.Pop()
	assert.False(t, ok)
	assert.Empty(t, got)
	assert.Equal(t, 0, q.Size())
}

func TestEmpty(t *testing.T) {
	t.Parallel()

	t.Run("zero value", func(t *testing.T) {
		t.Parallel()

		var q Queue[int]
		assert.True(t, q.IsEmpty())
		q.Push(7)
		v, ok := q.Peek()
		require.True(t, ok)
		assert.Equal(t, 7, v)
		checkInvariants(t, &q)
	})

	t.Run("repeated pop", func(t *testing.T) {
		t.Parallel()

		q := New[int]()
		for range 3 {
			_, ok := q.Pop()
			assert.False(t, ok)
			assert.Equal(t, 0, q.Size())
			checkInvariants(t, q)
		}

		_, ok := q.Peek()
		assert.False(t, ok)
	})

	t.Run("push after drain", func(t *testing.T) {
		t.Parallel()

		q := New[int]()
		q.Push(1)
		_, _ = q.Pop()
		checkInvariants(t, q)

		q.Push(2)
		q.Push(3)
		checkInvariants(t, q)
		assert.Equal(t, []int{2, 3}, slices.Collect(q.All()))
	})
}

func TestSlotReuse(t *testing.T) {
	t.Parallel()

	q := New[int]()
	q.Push(1)
	q.Push(2)
	_, _ = q.Pop()
	q.Push(3)

	assert.Len(t, q.nodes, 2, "freed slot must be reused")
	checkInvariants(t, q)
	assert.Equal(t, []int{2, 3}, slices.Collect(q.All()))

	_, _ = q.Pop()
	assert.Zero(t, q.nodes[1].val, "popped slot must not keep its value")
}

func TestClear(t *testing.T) {
	t.Parallel()

	q := New[*int]()
	for i := range 10 {
		q.Push(&i)
	}

	q.Clear()
	assert.True(t, q.IsEmpty())
	assert.Equal(t, 0, q.Size())
	checkInvariants(t, q)

	for _, n := range q.nodes[:cap(q.nodes)] {
		assert.Nil(t, n.val)
	}

	q.Push(nil)
	assert.Equal(t, 1, q.Size())
}

func TestAllBreak(t *testing.T) {
	t.Parallel()

	q := New[int]()
	for i := range 5 {
		q.Push(i)
	}

	var seen []int
	for v := range q.All() {
		if v == 2 {
			break
		}
		seen = append(seen, v)
	}

	assert.Equal(t, []int{0, 1}, seen)
	assert.Equal(t, 5, q.Size())
}

func TestRandomOps(t *testing.T) {
	t.Parallel()

	rnd := rand.New(rand.NewPCG(1, 2)) //nolint:gosec
	q := New[int]()
	var model []int
	pushes, pops := 0, 0

	for i := range 10_000 {
		if rnd.IntN(100) < 55 {
			q.Push(i)
			model = append(model, i)
			pushes++
		} else {
			got, ok := q.Pop()
			if len(model) == 0 {
				require.False(t, ok)
			} else {
				require.True(t, ok)
				require.Equal(t, model[0], got)
				model = model[1:]
				pops++
			}
		}

		require.Equal(t, pushes-pops, q.Size())
		if i%97 == 0 {
			checkInvariants(t, q)
		}
	}

	assert.Equal(t, model, slices.Collect(q.All()))
}

func BenchmarkPushPop(b *testing.B) {
	q := New[int]()

	b.ResetTimer()
	for i := range b.N {
		q.Push(i)
		if i%2 == 1 {
			q.Pop()
			q.Pop()
		}
	}
}
