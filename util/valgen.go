// Package valgen holds closures that generate operand values for test
// programs.
package valgen

import "math/rand"

// Gen yields the next operand value.
type Gen func() int64

func MakeConstGen(constant int64) Gen {
	return func() int64 {
		return constant
	}
}

func MakeIncreasingGen(start int64) Gen {
	current := start
	return func() int64 {
		current++
		return current
	}
}

// MakeRangeGen draws uniformly from [lo, hi]. Zero is skipped when nonZero
// is set, so the values can serve as divisors.
func MakeRangeGen(r *rand.Rand, lo, hi int64, nonZero bool) Gen {
	if hi < lo {
		panic("valgen: empty range")
	}
	if nonZero && lo == 0 && hi == 0 {
		panic("valgen: range holds only zero")
	}

	return func() int64 {
		for {
			v := lo + r.Int63n(hi-lo+1)
			if !nonZero || v != 0 {
				return v
			}
		}
	}
}

// Take collects n values from g.
func Take(g Gen, n int) []int64 {
	out := make([]int64, n)
	for i := range out {
		out[i] = g()
	}
	return out
}
