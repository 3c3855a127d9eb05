package value

import (
	"strconv"
)

// Number is Koto's numeric value, internally either a signed 64 bit
// integer or a 64 bit float, mirroring the Rust runtime's ValueNumber enum.
type Number struct {
	isFloat bool
	i       int64
	f       float64
}

// Int returns an integer Number.
func Int(i int64) Number { return Number{i: i} }

// Float returns a float Number.
func Float(f float64) Number { return Number{isFloat: true, f: f} }

// IsFloat reports whether the number is stored as a float.
func (n Number) IsFloat() bool { return n.isFloat }

// IsInt reports whether the number is stored as an integer.
func (n Number) IsInt() bool { return !n.isFloat }

// AsI64 returns the number as an int64, truncating floats.
func (n Number) AsI64() int64 {
	if n.isFloat {
		return int64(n.f)
	}
	return n.i
}

// AsF64 returns the number as a float64.
func (n Number) AsF64() float64 {
	if n.isFloat {
		return n.f
	}
	return float64(n.i)
}

func (n Number) String() string {
	if n.isFloat {
		return strconv.FormatFloat(n.f, 'g', -1, 64)
	}
	return strconv.FormatInt(n.i, 10)
}

func (Number) Type() string {
	return "Number"
}

// TypeName returns "Int" or "Float", matching the Rust runtime's reported
// Value::Number sub-type (see Value::type_as_string in value.rs).
func (n Number) TypeName() string {
	if n.isFloat {
		return "Float"
	}
	return "Int"
}

func (Number) IsImmutable() bool { return true }

// Add, Mul, Less implement the numeric operators needed by the iterator
// module's sum/product/min/max operations (via Vm.RunBinaryOp) and by the
// stub compiler's binary operators.
func (n Number) Add(other Number) Number {
	if n.isFloat || other.isFloat {
		return Float(n.AsF64() + other.AsF64())
	}
	return Int(n.i + other.i)
}

func (n Number) Mul(other Number) Number {
	if n.isFloat || other.isFloat {
		return Float(n.AsF64() * other.AsF64())
	}
	return Int(n.i * other.i)
}

func (n Number) Less(other Number) bool {
	if n.isFloat || other.isFloat {
		return n.AsF64() < other.AsF64()
	}
	return n.i < other.i
}
