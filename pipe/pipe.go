// Package pipe implements the bounded byte pipe used to move samples and
// coded bytes between pipeline stages running on different goroutines.
//
// The pipe is a single ring buffer of bytes with one reserved element-sized
// sentinel slot at begin: unread data starts elemSize bytes past begin, so
// the ring is empty when end sits elemSize past begin and full when end has
// wrapped round to begin. Producer and consumer sides are guarded by
// separate mutexes with separate condition variables; whenever both locks
// are taken, the end (producer) lock is acquired first.
package pipe

import (
	"fmt"
	"sync"

	"github.com/safecrypto/libsafecrypto-go/scmath"
)

// DefaultMinCap is the initial capacity of a pipe in elements.
const DefaultMinCap = 32

// Pipe is a bounded single-ring byte pipe with producer/consumer refcounts.
type Pipe struct {
	beginLock sync.Mutex
	endLock   sync.Mutex

	justPushed *sync.Cond // waited on by consumers, under beginLock
	justPulled *sync.Cond // waited on by producers, under endLock

	buffer   []byte
	begin    int // sentinel offset; data starts elemSize past it
	end      int // next byte to write
	elemSize int
	minCap   int
	maxCap   int

	producerRefcount int
	consumerRefcount int
}

// Producer is a producer handle holding one producer reference.
type Producer struct {
	p *Pipe
}

// Consumer is a consumer handle holding one consumer reference.
type Consumer struct {
	p *Pipe
}

// New creates a pipe carrying elements of elemSize bytes. limit bounds the
// capacity in elements; zero means unbounded growth.
func New(elemSize, limit int) (*Pipe, error) {
	if elemSize <= 0 {
		return nil, fmt.Errorf("pipe element size must be positive, got %d", elemSize)
	}

	capacity := elemSize * DefaultMinCap

	p := &Pipe{
		buffer:           make([]byte, capacity),
		begin:            0,
		end:              elemSize,
		elemSize:         elemSize,
		minCap:           capacity,
		producerRefcount: 1,
		consumerRefcount: 1,
	}

	if limit > 0 {
		bound := (limit + 1) * elemSize
		if bound < capacity {
			bound = capacity
		}
		p.maxCap = 1 << scmath.CeilLog2_64(uint64(bound))
	} else {
		p.maxCap = int(^uint(0) >> 1)
	}

	p.justPushed = sync.NewCond(&p.beginLock)
	p.justPulled = sync.NewCond(&p.endLock)

	return p, nil
}

// capacity returns the usable byte capacity, the buffer less its sentinel.
func (p *Pipe) capacity() int {
	return len(p.buffer) - p.elemSize
}

// bytesInUse returns the number of buffered unread bytes.
func (p *Pipe) bytesInUse() int {
	if p.begin >= p.end {
		return (p.end + len(p.buffer) - p.begin) - p.elemSize
	}
	return (p.end - p.begin) - p.elemSize
}

func (p *Pipe) wrap(off int) int {
	if off >= len(p.buffer) {
		return off - len(p.buffer)
	}
	return off
}

// resize reallocates the ring at newCap usable bytes, relocating the
// unconsumed region to the front. Both locks must be held.
func (p *Pipe) resize(newCap int) {
	if newCap > p.maxCap {
		newCap = p.maxCap
	}
	if newCap < p.minCap {
		newCap = p.minCap
	}
	if newCap < p.bytesInUse() {
		return
	}

	buffer := make([]byte, newCap+p.elemSize)
	n := 0
	if p.begin >= p.end {
		n += copy(buffer, p.buffer[p.begin:])
		n += copy(buffer[n:], p.buffer[:p.end])
	} else {
		n += copy(buffer, p.buffer[p.begin:p.end])
	}
	p.buffer = buffer
	p.begin = 0
	p.end = n
}

// pushBytes writes elems at the end offset, wrapping once. The end lock must
// be held and the caller guarantees the bytes fit.
func (p *Pipe) pushBytes(elems []byte) {
	n := copy(p.buffer[p.end:], elems)
	if n < len(elems) {
		copy(p.buffer, elems[n:])
	}
	p.end = p.wrap(p.end + len(elems))
}

// pullBytes copies up to len(target) buffered bytes into target. The begin
// lock must be held.
func (p *Pipe) pullBytes(target []byte) int {
	want := len(target)
	if avail := p.bytesInUse(); want > avail {
		want = avail
	}
	if 0 == want {
		return 0
	}

	start := p.wrap(p.begin + p.elemSize)
	n := copy(target[:want], p.buffer[start:])
	if n < want {
		copy(target[n:want], p.buffer)
	}

	p.begin = p.wrap(p.begin + want)
	return want
}

func (p *Pipe) signalPushed(broadcast bool) {
	p.beginLock.Lock()
	if broadcast {
		p.justPushed.Broadcast()
	} else {
		p.justPushed.Signal()
	}
	p.beginLock.Unlock()
}

func (p *Pipe) signalPulled(broadcast bool) {
	p.endLock.Lock()
	if broadcast {
		p.justPulled.Broadcast()
	} else {
		p.justPulled.Signal()
	}
	p.endLock.Unlock()
}

// Push appends the bytes of elems, blocking while the buffer is full and a
// consumer still exists. It fails once every consumer handle has been
// destroyed. When the data does not fit the buffer grows by doubling up to
// the configured bound; beyond that the push completes in chunks as the
// consumer drains.
func (pr *Producer) Push(elems []byte) error {
	p := pr.p
	if 0 == len(elems) {
		return fmt.Errorf("pipe push of zero bytes")
	}

	for len(elems) > 0 {
		p.endLock.Lock()

		for p.pushBlocked() {
			p.justPulled.Wait()
		}

		if 0 == p.consumerRefcount {
			p.endLock.Unlock()
			return fmt.Errorf("pipe push with no remaining consumers")
		}

		p.beginLock.Lock()
		needed := len(elems) + p.bytesInUse()
		if needed > p.capacity() {
			elemsNeeded := needed/p.elemSize + 1
			p.resize((1 << scmath.CeilLog2_64(uint64(elemsNeeded))) * p.elemSize)
		}

		room := p.capacity() - p.bytesInUse()
		pushed := len(elems)
		if pushed > room {
			pushed = room
		}
		if pushed > 0 {
			p.pushBytes(elems[:pushed])
		}
		p.beginLock.Unlock()
		p.endLock.Unlock()

		if pushed > 0 {
			p.signalPushed(pushed != p.elemSize)
		}

		elems = elems[pushed:]
	}

	return nil
}

// pushBlocked reports whether a producer must wait: the ring is at its bound
// and full while a consumer remains. The end lock must be held.
func (p *Pipe) pushBlocked() bool {
	p.beginLock.Lock()
	full := p.bytesInUse() >= p.maxCap
	p.beginLock.Unlock()
	return full && p.consumerRefcount > 0
}

// Pull reads up to len(target) bytes, blocking while the pipe is empty and a
// producer still exists. Once every producer handle is gone and the buffer
// is drained it returns 0.
func (c *Consumer) Pull(target []byte) int {
	p := c.p
	if 0 == len(target) {
		return 0
	}

	p.beginLock.Lock()

	for p.bytesInUse() == 0 && p.producerRefcount > 0 {
		p.justPushed.Wait()
	}

	if p.bytesInUse() == 0 {
		p.beginLock.Unlock()
		return 0
	}

	pulled := p.pullBytes(target)
	p.beginLock.Unlock()

	p.signalPulled(pulled != p.elemSize)

	return pulled
}

// PullNonBlocking reads whatever is immediately available, returning 0 when
// the pipe is empty.
func (c *Consumer) PullNonBlocking(target []byte) int {
	p := c.p
	if 0 == len(target) {
		return 0
	}

	p.beginLock.Lock()
	pulled := p.pullBytes(target)
	p.beginLock.Unlock()

	if pulled > 0 {
		p.signalPulled(pulled != p.elemSize)
	}

	return pulled
}

// Clear discards all buffered data.
func (p *Pipe) Clear() {
	p.endLock.Lock()
	p.beginLock.Lock()
	p.begin = 0
	p.end = p.elemSize
	p.beginLock.Unlock()
	p.endLock.Unlock()

	p.signalPulled(true)
}

// Reserve grows the buffer to hold at least count elements.
func (p *Pipe) Reserve(count int) {
	p.endLock.Lock()
	p.beginLock.Lock()
	bytes := count * p.elemSize
	if bytes > p.capacity() {
		p.resize(1 << scmath.CeilLog2_64(uint64(bytes)))
	}
	p.beginLock.Unlock()
	p.endLock.Unlock()
}

// NewProducer returns a new producer handle, incrementing the producer
// refcount.
func (p *Pipe) NewProducer() *Producer {
	p.beginLock.Lock()
	p.producerRefcount++
	p.beginLock.Unlock()
	return &Producer{p: p}
}

// NewConsumer returns a new consumer handle, incrementing the consumer
// refcount.
func (p *Pipe) NewConsumer() *Consumer {
	p.endLock.Lock()
	p.consumerRefcount++
	p.endLock.Unlock()
	return &Consumer{p: p}
}

// Destroy drops the pipe's own producer and consumer references, waking any
// waiter that can now observe a disconnect.
func (p *Pipe) Destroy() {
	p.beginLock.Lock()
	p.producerRefcount--
	producers := p.producerRefcount
	p.beginLock.Unlock()

	p.endLock.Lock()
	p.consumerRefcount--
	consumers := p.consumerRefcount
	p.endLock.Unlock()

	if 0 == consumers && producers > 0 {
		p.signalPulled(true)
	} else if 0 == producers && consumers > 0 {
		p.signalPushed(true)
	}
}

// Destroy releases the producer handle; the last producer wakes blocked
// consumers so they can drain and observe end-of-stream.
func (pr *Producer) Destroy() {
	p := pr.p
	p.beginLock.Lock()
	p.producerRefcount--
	remaining := p.producerRefcount
	p.beginLock.Unlock()

	if 0 == remaining {
		p.signalPushed(true)
	}
}

// Destroy releases the consumer handle; the last consumer wakes blocked
// producers so their pushes can fail fast.
func (c *Consumer) Destroy() {
	p := c.p
	p.endLock.Lock()
	p.consumerRefcount--
	remaining := p.consumerRefcount
	p.endLock.Unlock()

	if 0 == remaining {
		p.signalPulled(true)
	}
}
