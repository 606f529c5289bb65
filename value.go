package exattr

import "fmt"

// Value is an optional attribute value. The zero Value is None, which is
// distinct from a present empty value.
type Value struct {
	data    []byte
	present bool
}

// Some returns a present value. A nil b is stored as an empty value.
func Some(b []byte) Value {
	if b == nil {
		b = []byte{}
	}
	return Value{data: b, present: true}
}

// None returns the absent value.
func None() Value {
	return Value{}
}

// Bytes returns the value and whether it is present.
func (v Value) Bytes() ([]byte, bool) {
	return v.data, v.present
}

// Present reports whether v holds a value.
func (v Value) Present() bool {
	return v.present
}

func (v Value) String() string {
	if !v.present {
		return "None"
	}
	return fmt.Sprintf("Some(%q)", v.data)
}
