package api

import (
	"sync/atomic"
	"time"
)

var lastTimestamp int64

// nextTimestampRange reserves count strictly increasing timestamps and
// returns the first. Timestamps never repeat even when the clock stalls or
// steps backwards.
func nextTimestampRange(count int64) int64 {
	if count <= 0 {
		return 0
	}
	for {
		now := time.Now().UnixNano()
		last := atomic.LoadInt64(&lastTimestamp)
		start := now
		if start <= last {
			start = last + 1
		}
		if atomic.CompareAndSwapInt64(&lastTimestamp, last, start+count-1) {
			return start
		}
	}
}
