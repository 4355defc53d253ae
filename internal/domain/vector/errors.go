package vector

import "errors"

// Sentinel kinds for vector errors.
var (
	// ErrDimensionMismatch reports similarity between vectors of unequal
	// length. Comparing mismatched vector spaces silently would produce
	// meaningless but non-obviously-wrong scores, so it fails fast.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
)
