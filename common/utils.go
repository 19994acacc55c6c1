package common

// Coalesce returns the first non-zero value from the provided values, or the zero value if all are zero.
//
// Parameters:
//   - values: a variadic list of values to check for non-zero status
//
// Returns:
//   - T: the first non-zero value from the input, or the zero value if all are zero
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// NextPow2 returns the smallest power of two >= n, with a floor of 1.
// Buffer growth uses this so repeated small increases amortize to O(log n) reallocations.
//
// Parameters:
//   - n: the requested size
//
// Returns:
//   - uint64: the next power of two >= n
func NextPow2(n uint64) uint64 {
	p := uint64(1)
	for p < n {
		p <<= 1
	}
	return p
}
