package buffer

import "time"

// Option applies a configuration option to the Buffer.
type Option func(*Buffer)

// WithFlushInterval sets the periodic flush interval.
func WithFlushInterval(d time.Duration) Option {
	return func(b *Buffer) {
		if d > 0 {
			b.interval = d
		}
	}
}

// WithMaxEvents sets the queued-event count that forces a flush.
func WithMaxEvents(n int) Option {
	return func(b *Buffer) {
		if n > 0 {
			b.maxEvents = n
		}
	}
}
