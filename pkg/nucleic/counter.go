package nucleic

import (
	"errors"
	"math"
	"sync/atomic"
)

// ErrIDsExhausted is returned once every 32-bit id has been handed out
var ErrIDsExhausted = errors.New("record ids exhausted")

// Counter hands out record ids. It is safe for concurrent use: ids are
// unique and increase in the order Next is called. A Counter issues at most
// 2^32 ids; it does not wrap back to zero.
type Counter struct {
	next atomic.Uint64
}

// NewCounter returns a Counter whose first id is start
func NewCounter(start uint32) *Counter {
	c := &Counter{}
	c.next.Store(uint64(start))
	return c
}

// Next returns a fresh id, or ErrIDsExhausted after math.MaxUint32 has been
// issued
func (c *Counter) Next() (uint32, error) {
	v := c.next.Add(1) - 1
	if v > math.MaxUint32 {
		return 0, ErrIDsExhausted
	}
	return uint32(v), nil
}

// Peek returns the id the next call to Next will try to hand out. It is
// greater than math.MaxUint32 once the Counter is exhausted.
func (c *Counter) Peek() uint64 {
	return c.next.Load()
}

// Reset makes v the next id handed out. Ids already issued are not
// revoked, so this is only for isolating tests or reinitialising a host.
func (c *Counter) Reset(v uint32) {
	c.next.Store(uint64(v))
}
