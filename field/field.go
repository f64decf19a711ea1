// Package field adapts gnark-crypto's BLS12-381 scalar field to the
// value-semantics Poseidon expects: every operation returns a new element
// rather than mutating a receiver in place, so permutation and constraint
// code can treat an Fe like any other immutable value.
package field

import (
	"fmt"
	"strings"

	bls12381fr "github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// Fe is a single element of the BLS12-381 scalar field.
type Fe struct {
	v bls12381fr.Element
}

// Zero returns the additive identity.
func Zero() Fe {
	return Fe{}
}

// One returns the multiplicative identity.
func One() Fe {
	var e Fe
	e.v.SetOne()
	return e
}

// FromUint64 embeds a uint64 into the field.
func FromUint64(x uint64) Fe {
	var e Fe
	e.v.SetUint64(x)
	return e
}

// FromHex parses a "0x"-prefixed hexadecimal string into a field element.
// The prefix must be present; callers that strip it unconditionally risk
// silently dropping the first two significant digits of a prefix-less
// table entry.
func FromHex(s string) (Fe, error) {
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return Fe{}, fmt.Errorf("field: hex literal %q missing 0x prefix", s)
	}
	var e Fe
	if _, err := e.v.SetString(s); err != nil {
		return Fe{}, fmt.Errorf("field: invalid hex literal %q: %w", s, err)
	}
	return e, nil
}

// FromDecimal parses a base-10 string into a field element, the inverse of
// Fe.String. Used when round-tripping a value through a format (CBOR, log
// lines) that carries Fe.String's output rather than raw bytes.
func FromDecimal(s string) (Fe, error) {
	var e Fe
	if _, err := e.v.SetString(s); err != nil {
		return Fe{}, fmt.Errorf("field: invalid decimal literal %q: %w", s, err)
	}
	return e, nil
}

// Add returns a+b.
func Add(a, b Fe) Fe {
	var r Fe
	r.v.Add(&a.v, &b.v)
	return r
}

// Sub returns a-b.
func Sub(a, b Fe) Fe {
	var r Fe
	r.v.Sub(&a.v, &b.v)
	return r
}

// Mul returns a*b.
func Mul(a, b Fe) Fe {
	var r Fe
	r.v.Mul(&a.v, &b.v)
	return r
}

// Square returns a*a.
func Square(a Fe) Fe {
	var r Fe
	r.v.Square(&a.v)
	return r
}

// Inverse returns a^-1. Panics if a is zero, matching the precondition
// enforced by the non-zero gadget on the circuit side before the native
// Inverse S-box is ever applied to an untrusted value.
func Inverse(a Fe) Fe {
	if a.v.IsZero() {
		panic("field: inverse of zero")
	}
	var r Fe
	r.v.Inverse(&a.v)
	return r
}

// IsZero reports whether e is the additive identity.
func (e Fe) IsZero() bool {
	return e.v.IsZero()
}

// Equal reports whether e and o represent the same field element.
func (e Fe) Equal(o Fe) bool {
	return e.v.Equal(&o.v)
}

// String renders e in decimal.
func (e Fe) String() string {
	return e.v.String()
}

// Bytes returns e's canonical big-endian encoding.
func (e Fe) Bytes() [32]byte {
	return e.v.Bytes()
}
