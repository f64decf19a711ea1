package poseidon

import "github.com/nume-crypto/poseidon/field"

// SboxType selects which S-box the permutation applies at each round,
// mirroring the original's SboxType enum (Cube, Inverse, Quint).
type SboxType int

const (
	// Cube computes x^3.
	Cube SboxType = iota
	// Inverse computes x^-1 (and 0 for x=0, matching a Bulletproofs-style
	// gadget's usual convention of mapping the non-invertible point to
	// itself rather than failing the whole permutation).
	Inverse
	// Quint computes x^5.
	Quint
)

func (s SboxType) String() string {
	switch s {
	case Cube:
		return "cube"
	case Inverse:
		return "inverse"
	case Quint:
		return "quint"
	default:
		return "unknown"
	}
}

// Apply evaluates the S-box natively, mirroring apply_sbox in the original:
// Cube via one squaring and one multiply, Quint via two squarings and one
// multiply, Inverse via field inversion with zero mapped to itself.
func (s SboxType) Apply(x field.Fe) field.Fe {
	switch s {
	case Cube:
		sq := field.Square(x)
		return field.Mul(sq, x)
	case Quint:
		sq := field.Square(x)
		sq2 := field.Square(sq)
		return field.Mul(sq2, x)
	case Inverse:
		if x.IsZero() {
			return x
		}
		return field.Inverse(x)
	default:
		panic("poseidon: unknown sbox type")
	}
}
