// Package fifo implements the multi-endpoint, time-ordered FIFO Core B's
// render loop uses to merge heterogeneous inputs and drain heterogeneous
// outputs (spec §3.2 "Multi-endpoint FIFO", §4.B.5). Queue is a
// preallocated ring of fixed capacity: Push/PopFront never grow the
// backing slice, the same preallocate-and-reuse
// discipline the teacher's analysis buffers use (c.f.
// tphakala-birdnet-go's ringbuffer-backed myaudio buffers, which this
// package's sibling internal/dispatch/hostbridge puts the
// byte-oriented github.com/smallnest/ringbuffer to use directly, for the
// non-realtime host-facing leg of the pipeline).
package fifo

import "dspcc/internal/performer"

// Entry is one (endpoint, time, value) triple (spec §3.2). Value holds a
// float32, a performer.RampHolder, a performer.MIDIMessage, a transport
// structured value, or a free-form output event, per endpoint kind.
type Entry struct {
	Endpoint performer.EndpointHandle
	Time     uint64
	Value    any
}

// Queue is a single-producer/single-consumer ring buffer of Entry values
// with a fixed, preallocated capacity (spec §5: "single-producer/
// single-consumer per direction").
type Queue struct {
	buf   []Entry
	head  int
	count int
}

// NewQueue returns an empty queue preallocated to hold capacity entries.
func NewQueue(capacity int) *Queue {
	return &Queue{buf: make([]Entry, capacity)}
}

// Len reports the number of entries currently queued.
func (q *Queue) Len() int { return q.count }

// Cap reports the queue's fixed capacity.
func (q *Queue) Cap() int { return len(q.buf) }

// Push enqueues e, returning false iff the queue is full (spec §7: "FIFO
// overflow... the event is dropped and the caller decides").
func (q *Queue) Push(e Entry) bool {
	if q.count == len(q.buf) {
		return false
	}
	tail := (q.head + q.count) % len(q.buf)
	q.buf[tail] = e
	q.count++
	return true
}

// PeekFront returns the oldest queued entry without removing it.
func (q *Queue) PeekFront() (Entry, bool) {
	if q.count == 0 {
		return Entry{}, false
	}
	return q.buf[q.head], true
}

// PopFront removes and returns the oldest queued entry.
func (q *Queue) PopFront() (Entry, bool) {
	e, ok := q.PeekFront()
	if !ok {
		return Entry{}, false
	}
	q.head = (q.head + 1) % len(q.buf)
	q.count--
	return e, true
}

// Reset empties the queue without touching its backing storage.
func (q *Queue) Reset() {
	q.head = 0
	q.count = 0
}

// minEventTimeAfter scans the queue (without removing anything) for the
// smallest Time strictly greater than after and less than limit. It returns
// limit if no such entry exists. Used by IterateChunks to find the next
// forced chunk boundary.
func (q *Queue) minEventTimeAfter(after, limit uint64) uint64 {
	best := limit
	for i := 0; i < q.count; i++ {
		e := q.buf[(q.head+i)%len(q.buf)]
		if e.Time > after && e.Time < best {
			best = e.Time
		}
	}
	return best
}

// IterateChunks partitions [startTime, startTime+totalSize) into
// sub-intervals no larger than maxChunk, further cut so that no queued
// entry falls strictly inside a sub-interval (spec §4.B.5). For each
// sub-interval it calls beginChunk(n), then onInput for every queued entry
// whose Time equals the sub-interval's starting boundary (in FIFO order,
// i.e. enqueue order), then endChunk(n).
func (q *Queue) IterateChunks(startTime uint64, totalSize, maxChunk int, beginChunk func(int), onInput func(Entry), endChunk func(int)) {
	end := startTime + uint64(totalSize)
	cur := startTime

	for cur < end {
		nextEvent := q.minEventTimeAfter(cur, end)
		chunkEnd := cur + uint64(maxChunk)
		if nextEvent < chunkEnd {
			chunkEnd = nextEvent
		}
		if chunkEnd > end {
			chunkEnd = end
		}
		n := int(chunkEnd - cur)

		beginChunk(n)
		// Rotate through every queued entry once: deliver those due at cur,
		// re-queue the rest in their original relative order.
		pending := q.count
		for i := 0; i < pending; i++ {
			e, _ := q.PopFront()
			if e.Time == cur {
				onInput(e)
			} else {
				q.Push(e)
			}
		}
		endChunk(n)

		cur = chunkEnd
	}
}
