package poseidon

import "github.com/nume-crypto/poseidon/field"

// Capacity constants prepended to a fixed-arity hash's input before
// permuting, one per supported width (arity+1 = width). Values mirror
// CAP_CONST_W_3/5/9 in the original: all-ones bit patterns of 2, 5 and 9
// bits respectively.
const (
	CapacityW3 = 3   // 0b11
	CapacityW5 = 31  // 0b11111
	CapacityW9 = 511 // 0b111111111
)

func capacityFor(width int) (field.Fe, error) {
	switch width {
	case 3:
		return field.FromUint64(CapacityW3), nil
	case 5:
		return field.FromUint64(CapacityW5), nil
	case 9:
		return field.FromUint64(CapacityW9), nil
	default:
		return field.Fe{}, configErrorf("no capacity constant defined for width %d", width)
	}
}

func fixedArityHash(params *Parameters, sbox SboxType, inputs []field.Fe, arity int) (field.Fe, error) {
	if params.Width() != arity+1 {
		return field.Fe{}, configErrorf("parameters width %d does not match arity %d hash (want width %d)", params.Width(), arity, arity+1)
	}
	if len(inputs) != arity {
		return field.Fe{}, &ArityError{Got: len(inputs), Expected: arity}
	}
	cap, err := capacityFor(params.Width())
	if err != nil {
		return field.Fe{}, err
	}
	state := make([]field.Fe, 0, params.Width())
	state = append(state, cap)
	state = append(state, inputs...)

	logger().Debug().Int("arity", arity).Msg("permuting")
	out, err := Permute(params, sbox, state)
	if err != nil {
		return field.Fe{}, err
	}
	// The capacity slot occupies index 0; the hash digest is the next
	// slot, index 1 -- the original discards index 0 the same way.
	return out[1], nil
}

// Hash2 computes the arity-2 fixed hash (width 3). inputs must have length
// 2; any other length returns an *ArityError, mirroring Poseidon_hash_2's
// Vec-length check in the original rather than a compile-time-only arity
// a fixed-size array would enforce.
func Hash2(params *Parameters, sbox SboxType, inputs []field.Fe) (field.Fe, error) {
	return fixedArityHash(params, sbox, inputs, 2)
}

// Hash4 computes the arity-4 fixed hash (width 5). inputs must have length
// 4; any other length returns an *ArityError.
func Hash4(params *Parameters, sbox SboxType, inputs []field.Fe) (field.Fe, error) {
	return fixedArityHash(params, sbox, inputs, 4)
}

// Hash8 computes the arity-8 fixed hash (width 9). inputs must have length
// 8; any other length returns an *ArityError.
func Hash8(params *Parameters, sbox SboxType, inputs []field.Fe) (field.Fe, error) {
	return fixedArityHash(params, sbox, inputs, 8)
}
