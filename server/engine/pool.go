package engine

import "sync"

// Pool caps the number of in-flight connections and recycles their
// read buffers. Overload queues at the accept loop (Acquire blocks)
// instead of spawning unbounded goroutines.
type Pool struct {
	slots chan struct{}
	bufs  sync.Pool
}

func NewPool(maxConns, bufSize int) *Pool {
	return &Pool{
		slots: make(chan struct{}, maxConns),
		bufs: sync.Pool{
			New: func() any {
				return make([]byte, bufSize)
			},
		},
	}
}

// Acquire blocks until a connection slot is free
func (p *Pool) Acquire() {
	p.slots <- struct{}{}
}

func (p *Pool) Release() {
	<-p.slots
}

func (p *Pool) getBuf() []byte {
	return p.bufs.Get().([]byte)
}

func (p *Pool) putBuf(b []byte) {
	p.bufs.Put(b)
}
