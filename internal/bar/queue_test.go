package bar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue(t *testing.T) {
	q := NewQueue[int]()

	_, ok := q.DequeueFirst()
	assert.False(t, ok)

	q.Enqueue(NewMessage[int]("a"))
	q.Enqueue(NewMessage[int]("b"))
	q.Enqueue(NewMessage[int]("c"))
	assert.Equal(t, 3, q.Len())

	snap := q.Snapshot()
	snap[0] = NewMessage[int]("mutated")

	m, ok := q.DequeueFirst()
	require.True(t, ok)
	assert.Equal(t, "a", m.Text())
	assert.Equal(t, []string{"b", "c"}, texts(q.Snapshot()))

	q.Restore([]Message[int]{NewMessage[int]("x"), NewMessage[int]("y")})
	assert.Equal(t, []string{"x", "y"}, texts(q.Snapshot()))

	q.Clear()
	assert.Equal(t, 0, q.Len())
	assert.Empty(t, q.Snapshot())
}

func TestQueue_RemoveFunc(t *testing.T) {
	q := NewQueue[int]()
	for _, text := range []string{"a", "b", "a", "c"} {
		q.Enqueue(NewMessage[int](text))
	}

	removed := q.RemoveFunc(func(m Message[int]) bool { return m.Text() == "a" })
	assert.Equal(t, 2, removed)
	assert.Equal(t, []string{"b", "c"}, texts(q.Snapshot()))

	assert.Equal(t, 0, q.RemoveFunc(func(Message[int]) bool { return false }))
	assert.Equal(t, 2, q.Len())
}
