package radio

import (
	"log"

	"github.com/sweeney/smart-plug/internal/plug"
)

// inbox is a fixed-capacity FIFO of received frames waiting for the loop.
// Not safe for concurrent use; the caller must synchronize.
type inbox struct {
	buf      []plug.Message
	capacity int
	head     int // next write position
	count    int
	overflow bool // true if any message was dropped since the inbox last emptied
}

func newInbox(capacity int) *inbox {
	if capacity < 1 {
		capacity = 1
	}
	return &inbox{
		buf:      make([]plug.Message, capacity),
		capacity: capacity,
	}
}

func (r *inbox) push(msg plug.Message) {
	if r.count == r.capacity {
		if !r.overflow {
			log.Printf("radio: inbox full (%d messages), dropping oldest", r.capacity)
			r.overflow = true
		}
		// Overwrite oldest: head is already pointing at it
		r.buf[r.head] = msg
		r.head = (r.head + 1) % r.capacity
		// count stays at capacity
		return
	}
	r.buf[r.head] = msg
	r.head = (r.head + 1) % r.capacity
	r.count++
}

// pop removes and returns the oldest message.
func (r *inbox) pop() (plug.Message, bool) {
	if r.count == 0 {
		return plug.Message{}, false
	}
	// Oldest item is at (head - count) mod capacity
	start := (r.head - r.count + r.capacity) % r.capacity
	msg := r.buf[start]
	r.buf[start] = plug.Message{}
	r.count--
	if r.count == 0 {
		r.overflow = false
	}
	return msg, true
}

func (r *inbox) len() int {
	return r.count
}
