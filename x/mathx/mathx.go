package mathx

import "golang.org/x/exp/constraints"

// Between reports lo <= v && v <= hi (order-insensitive).
func Between[T constraints.Ordered](v, lo, hi T) bool {
	if hi < lo {
		lo, hi = hi, lo
	}
	return v >= lo && v <= hi
}

// MulDiv returns v*num/den, truncated toward zero. den == 0 yields 0.
// Keep v*num within T; durations in this module stay far below that.
func MulDiv[T constraints.Integer](v, num, den T) T {
	if den == 0 {
		return 0
	}
	return v * num / den
}

// Near reports whether v is within pct percent of want.
func Near[T constraints.Integer](v, want, pct T) bool {
	d := MulDiv(want, pct, 100)
	return Between(v, want-d, want+d)
}
