package sim

import "container/heap"

// timeHeap implements heap.Interface over the distinct pending bucket times.
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-IntHeap
type timeHeap []float64

func (h timeHeap) Len() int           { return len(h) }
func (h timeHeap) Less(i, j int) bool { return h[i] < h[j] }
func (h timeHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *timeHeap) Push(x any) {
	*h = append(*h, x.(float64))
}

func (h *timeHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[0 : n-1]
	return item
}

// EventQueue maps each pending time to the ordered list of events due then.
// Buckets are withdrawn whole, in strictly increasing time order.
type EventQueue struct {
	times   timeHeap
	buckets map[float64][]Event
	pending int
}

// NewEventQueue creates an empty EventQueue.
func NewEventQueue() *EventQueue {
	return &EventQueue{
		times:   make(timeHeap, 0),
		buckets: make(map[float64][]Event),
	}
}

// Schedule appends ev to the bucket for its timestamp.
func (q *EventQueue) Schedule(ev Event) {
	t := ev.Timestamp()
	if _, ok := q.buckets[t]; !ok {
		heap.Push(&q.times, t)
	}
	q.buckets[t] = append(q.buckets[t], ev)
	q.pending++
}

// Len returns the number of pending events across all buckets.
func (q *EventQueue) Len() int { return q.pending }

// Buckets returns the number of distinct pending times.
func (q *EventQueue) Buckets() int { return len(q.times) }

// peekTime returns the earliest pending time.
func (q *EventQueue) peekTime() (float64, bool) {
	if len(q.times) == 0 {
		return 0, false
	}
	return q.times[0], true
}

// PopBucket withdraws the earliest bucket and returns its time and events in
// insertion order.
func (q *EventQueue) PopBucket() (float64, []Event, bool) {
	if len(q.times) == 0 {
		return 0, nil, false
	}
	t := heap.Pop(&q.times).(float64)
	events := q.buckets[t]
	delete(q.buckets, t)
	q.pending -= len(events)
	return t, events, true
}

// Clear discards every pending event.
func (q *EventQueue) Clear() {
	q.times = q.times[:0]
	q.buckets = make(map[float64][]Event)
	q.pending = 0
}
