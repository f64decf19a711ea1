package circuit

import (
	"fmt"

	"github.com/nume-crypto/poseidon/field"
	"github.com/nume-crypto/poseidon/poseidon"
	"github.com/nume-crypto/poseidon/r1cs"
)

// AllocatedInput wraps a variable already bound to a witness value by the
// caller, matching the original's AllocatedQuantity input type for the
// gadget-level hash forms (supplemented from the original source per
// SPEC_FULL.md: spec.md's distillation only carries bare linear
// combinations as hash input, dropping this binding step).
type AllocatedInput struct {
	Var r1cs.Variable
}

func fixedArityConstraints(cs r1cs.ConstraintSystem, params *poseidon.Parameters, sbox poseidon.SboxType, capacity r1cs.LinearCombination, inputs []r1cs.LinearCombination, arity int) (r1cs.LinearCombination, error) {
	if params.Width() != arity+1 {
		return r1cs.LinearCombination{}, fmt.Errorf("circuit: parameters width %d does not match arity %d hash (want width %d)", params.Width(), arity, arity+1)
	}
	if len(inputs) != arity {
		return r1cs.LinearCombination{}, fmt.Errorf("circuit: incorrect width for hash: got %d inputs, expected %d", len(inputs), arity)
	}
	state := make([]r1cs.LinearCombination, 0, params.Width())
	state = append(state, capacity)
	state = append(state, inputs...)

	out, err := SynthesizePermutation(cs, params, sbox, state)
	if err != nil {
		return r1cs.LinearCombination{}, err
	}
	return out[1], nil
}

// Hash2Constraints synthesizes the arity-2 fixed hash over a and b. capacity
// is a caller-provided linear combination, not a hard-coded constant: the
// caller is responsible for constraining it to equal the width's capacity
// constant (poseidon.CapacityW3/W5/W9), the same division of responsibility
// as Poseidon_hash_2_constraints(cs, inputs, capacity_const, ...) in the
// original. Hard-coding it here would hide a missing capacity-binding
// constraint from the very soundness tests meant to catch it.
func Hash2Constraints(cs r1cs.ConstraintSystem, params *poseidon.Parameters, sbox poseidon.SboxType, capacity, a, b r1cs.LinearCombination) (r1cs.LinearCombination, error) {
	return fixedArityConstraints(cs, params, sbox, capacity, []r1cs.LinearCombination{a, b}, 2)
}

// Hash4Constraints synthesizes the arity-4 fixed hash. See Hash2Constraints
// for the capacity argument's contract.
func Hash4Constraints(cs r1cs.ConstraintSystem, params *poseidon.Parameters, sbox poseidon.SboxType, capacity r1cs.LinearCombination, in [4]r1cs.LinearCombination) (r1cs.LinearCombination, error) {
	return fixedArityConstraints(cs, params, sbox, capacity, in[:], 4)
}

// Hash8Constraints synthesizes the arity-8 fixed hash. See Hash2Constraints
// for the capacity argument's contract.
func Hash8Constraints(cs r1cs.ConstraintSystem, params *poseidon.Parameters, sbox poseidon.SboxType, capacity r1cs.LinearCombination, in [8]r1cs.LinearCombination) (r1cs.LinearCombination, error) {
	return fixedArityConstraints(cs, params, sbox, capacity, in[:], 8)
}

// Hash2Gadget synthesizes Hash2 over allocated inputs and binds the result
// to the public expected image, mirroring Poseidon_hash_2_gadget. capacity
// is an allocated variable the caller has already witnessed and is
// responsible for constraining to the width's capacity constant.
func Hash2Gadget(cs r1cs.ConstraintSystem, params *poseidon.Parameters, sbox poseidon.SboxType, capacity r1cs.Variable, a, b AllocatedInput, image field.Fe) error {
	out, err := Hash2Constraints(cs, params, sbox, r1cs.LC(capacity), r1cs.LC(a.Var), r1cs.LC(b.Var))
	if err != nil {
		return err
	}
	return cs.ConstrainLCWithScalar(out, image)
}

// Hash4Gadget synthesizes Hash4 over allocated inputs and binds the result
// to the public expected image. See Hash2Gadget for the capacity argument's
// contract.
func Hash4Gadget(cs r1cs.ConstraintSystem, params *poseidon.Parameters, sbox poseidon.SboxType, capacity r1cs.Variable, in [4]AllocatedInput, image field.Fe) error {
	var lcs [4]r1cs.LinearCombination
	for i, a := range in {
		lcs[i] = r1cs.LC(a.Var)
	}
	out, err := Hash4Constraints(cs, params, sbox, r1cs.LC(capacity), lcs)
	if err != nil {
		return err
	}
	return cs.ConstrainLCWithScalar(out, image)
}

// Hash8Gadget synthesizes Hash8 over allocated inputs and binds the result
// to the public expected image. See Hash2Gadget for the capacity argument's
// contract.
func Hash8Gadget(cs r1cs.ConstraintSystem, params *poseidon.Parameters, sbox poseidon.SboxType, capacity r1cs.Variable, in [8]AllocatedInput, image field.Fe) error {
	var lcs [8]r1cs.LinearCombination
	for i, a := range in {
		lcs[i] = r1cs.LC(a.Var)
	}
	out, err := Hash8Constraints(cs, params, sbox, r1cs.LC(capacity), lcs)
	if err != nil {
		return err
	}
	return cs.ConstrainLCWithScalar(out, image)
}
