package kinematics

import (
	"time"

	"github.com/shopmorph/morph/internal/domain/model"
)

// Option applies a configuration option to the Sampler.
type Option func(*Sampler)

// WithMinInterval sets the minimum interval between accepted samples.
func WithMinInterval(d time.Duration) Option {
	return func(s *Sampler) {
		if d > 0 {
			s.minInterval = d
		}
	}
}

// WithBufferCap sets the raw-sample buffer size that forces a flush.
func WithBufferCap(n int) Option {
	return func(s *Sampler) {
		if n > 0 {
			s.bufferCap = n
		}
	}
}

// WithDevice sets the pointer device reported in runs.
func WithDevice(d model.PointerDevice) Option {
	return func(s *Sampler) {
		if d != "" {
			s.device = d
		}
	}
}
