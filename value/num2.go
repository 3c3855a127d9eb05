package value

import "fmt"

// Num2 is a pair of 64 bit floats, useful for 2 dimensional values.
type Num2 [2]float64

func (n Num2) String() string     { return fmt.Sprintf("(%v, %v)", n[0], n[1]) }
func (Num2) Type() string         { return "Num2" }
func (Num2) IsImmutable() bool    { return true }
