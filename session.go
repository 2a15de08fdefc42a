package ofxconnect

import (
	"strconv"
	"sync/atomic"
)

// initialCookie is where client cookies start. Servers have been seen to reject
// cookies starting lower.
const initialCookie = 3

// SessionCounter hands out strictly increasing client cookies.
// It is safe for concurrent use.
type SessionCounter struct {
	value int64
}

// NewSessionCounter returns a counter whose first value is "4".
func NewSessionCounter() *SessionCounter {
	return &SessionCounter{value: initialCookie}
}

// Next increments the counter and returns the new value.
func (c *SessionCounter) Next() string {
	return strconv.FormatInt(atomic.AddInt64(&c.value, 1), 10)
}
