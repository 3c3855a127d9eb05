package value

import (
	"fmt"
	"math"
)

// Num4 is four packed 32 bit floats, with component accessors named both
// x,y,z,w and r,g,b,a.
type Num4 [4]float32

func (n Num4) String() string {
	return fmt.Sprintf("(%v, %v, %v, %v)", n[0], n[1], n[2], n[3])
}
func (Num4) Type() string      { return "Num4" }
func (Num4) IsImmutable() bool { return true }

// Length returns the Euclidean norm of the vector.
func (n Num4) Length() float64 {
	return math.Sqrt(float64(n[0])*float64(n[0]) +
		float64(n[1])*float64(n[1]) +
		float64(n[2])*float64(n[2]) +
		float64(n[3])*float64(n[3]))
}

// Normalize returns the unit-length vector in the same direction as n.
// A zero-length vector normalizes to itself (all components stay zero).
func (n Num4) Normalize() Num4 {
	length := n.Length()
	if length == 0 {
		return n
	}
	inv := float32(1 / length)
	return Num4{n[0] * inv, n[1] * inv, n[2] * inv, n[3] * inv}
}

// Min returns the smallest component.
func (n Num4) Min() float32 {
	m := n[0]
	for _, c := range n[1:] {
		if c < m {
			m = c
		}
	}
	return m
}

// Max returns the largest component.
func (n Num4) Max() float32 {
	m := n[0]
	for _, c := range n[1:] {
		if c > m {
			m = c
		}
	}
	return m
}

// Sum returns the sum of all four components, as a float64 (matching the
// Rust original which widens to f64 before summing).
func (n Num4) Sum() float64 {
	return float64(n[0]) + float64(n[1]) + float64(n[2]) + float64(n[3])
}

// Product returns the product of all four components, as a float64.
func (n Num4) Product() float64 {
	return float64(n[0]) * float64(n[1]) * float64(n[2]) * float64(n[3])
}

// With returns a copy of n with component i replaced by value.
// i must be 0..=3; the caller (num4.with) is responsible for validating it
// and producing the "invalid index" runtime error on mismatch.
func (n Num4) With(i int, value float32) (Num4, bool) {
	if i < 0 || i > 3 {
		return n, false
	}
	result := n
	result[i] = value
	return result, true
}

// Num4Lerp linearly interpolates between a and b by t: a + t*(b-a).
func Num4Lerp(a, b Num4, t float64) Num4 {
	tf := float32(t)
	return Num4{
		a[0] + tf*(b[0]-a[0]),
		a[1] + tf*(b[1]-a[1]),
		a[2] + tf*(b[2]-a[2]),
		a[3] + tf*(b[3]-a[3]),
	}
}
