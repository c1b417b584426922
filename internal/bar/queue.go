package bar

import "container/list"

// Queue holds messages waiting for the surface, oldest first.
type Queue[T any] struct {
	items *list.List // of Message[T]
}

// NewQueue creates an empty queue.
func NewQueue[T any]() *Queue[T] {
	return &Queue[T]{items: list.New()}
}

// Enqueue appends m to the tail.
func (q *Queue[T]) Enqueue(m Message[T]) {
	q.items.PushBack(m)
}

// DequeueFirst removes and returns the head of the queue.
// It returns false when the queue is empty.
func (q *Queue[T]) DequeueFirst() (Message[T], bool) {
	front := q.items.Front()
	if front == nil {
		var zero Message[T]
		return zero, false
	}
	q.items.Remove(front)
	return front.Value.(Message[T]), true
}

// Clear drops every queued message.
func (q *Queue[T]) Clear() {
	q.items.Init()
}

// RemoveFunc drops every queued message for which match returns true and
// returns how many were dropped. Order of the rest is kept.
func (q *Queue[T]) RemoveFunc(match func(Message[T]) bool) int {
	removed := 0
	for e := q.items.Front(); e != nil; {
		next := e.Next()
		if match(e.Value.(Message[T])) {
			q.items.Remove(e)
			removed++
		}
		e = next
	}
	return removed
}

// Len returns the number of queued messages.
func (q *Queue[T]) Len() int {
	return q.items.Len()
}

// Snapshot returns the queued messages in order. The slice is a copy.
func (q *Queue[T]) Snapshot() []Message[T] {
	out := make([]Message[T], 0, q.items.Len())
	for e := q.items.Front(); e != nil; e = e.Next() {
		out = append(out, e.Value.(Message[T]))
	}
	return out
}

// Restore replaces the queue contents with msgs, preserving order.
func (q *Queue[T]) Restore(msgs []Message[T]) {
	q.items.Init()
	for _, m := range msgs {
		q.items.PushBack(m)
	}
}
