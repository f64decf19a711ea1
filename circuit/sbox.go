// Package circuit synthesizes the Poseidon permutation and its fixed-arity
// hashes as R1CS constraints over a github.com/nume-crypto/poseidon/r1cs
// ConstraintSystem, mirroring the native package github.com/nume-crypto/poseidon
// operation for operation. Grounded directly on
// synthesize_{cube,quint,inverse}_sbox and Poseidon_permutation_constraints
// in the original gadget helpers this was translated from.
package circuit

import (
	"fmt"

	"github.com/nume-crypto/poseidon/field"
	"github.com/nume-crypto/poseidon/poseidon"
	"github.com/nume-crypto/poseidon/r1cs"
)

// synthesizeCube constrains out = in^3 with two multiply gates, mirroring
// synthesize_cube_sbox: square, then multiply by the original value.
func synthesizeCube(cs r1cs.ConstraintSystem, in r1cs.LinearCombination) (r1cs.LinearCombination, error) {
	_, _, sq, err := cs.Multiply(in, in)
	if err != nil {
		return r1cs.LinearCombination{}, fmt.Errorf("circuit: cube sbox square gate: %w", err)
	}
	_, _, cube, err := cs.Multiply(sq, in)
	if err != nil {
		return r1cs.LinearCombination{}, fmt.Errorf("circuit: cube sbox multiply gate: %w", err)
	}
	return cube, nil
}

// synthesizeQuint constrains out = in^5 with three multiply gates,
// mirroring synthesize_quint_sbox.
func synthesizeQuint(cs r1cs.ConstraintSystem, in r1cs.LinearCombination) (r1cs.LinearCombination, error) {
	_, _, sq, err := cs.Multiply(in, in)
	if err != nil {
		return r1cs.LinearCombination{}, fmt.Errorf("circuit: quint sbox square gate: %w", err)
	}
	_, _, fourth, err := cs.Multiply(sq, sq)
	if err != nil {
		return r1cs.LinearCombination{}, fmt.Errorf("circuit: quint sbox fourth-power gate: %w", err)
	}
	_, _, quint, err := cs.Multiply(fourth, in)
	if err != nil {
		return r1cs.LinearCombination{}, fmt.Errorf("circuit: quint sbox multiply gate: %w", err)
	}
	return quint, nil
}

// synthesizeInverse constrains out = in^-1 with a single multiply gate plus
// a non-zero gadget, mirroring synthesize_inverse_sbox: allocate the input
// and the claimed inverse as fresh witnessed variables, assert the input
// variable is non-zero via the gadget, then constrain their product to
// exactly one.
func synthesizeInverse(cs r1cs.ConstraintSystem, in r1cs.LinearCombination) (r1cs.LinearCombination, error) {
	valL, ok, err := cs.EvaluateLC(in)
	if err != nil {
		return r1cs.LinearCombination{}, fmt.Errorf("circuit: inverse sbox: evaluating input: %w", err)
	}
	var valR field.Fe
	if ok {
		if valL.IsZero() {
			return r1cs.LinearCombination{}, fmt.Errorf("circuit: inverse sbox: input witness is zero")
		}
		valR = field.Inverse(valL)
	}

	varL, lcL, err := cs.AllocateSingle(valL)
	if err != nil {
		return r1cs.LinearCombination{}, fmt.Errorf("circuit: inverse sbox: allocating input: %w", err)
	}
	_, lcR, err := cs.AllocateSingle(valR)
	if err != nil {
		return r1cs.LinearCombination{}, fmt.Errorf("circuit: inverse sbox: allocating inverse: %w", err)
	}

	// in == varL
	if err := cs.ConstrainLCWithScalar(in.Add(lcL.Scale(field.Sub(field.Zero(), field.One()))), field.Zero()); err != nil {
		return r1cs.LinearCombination{}, fmt.Errorf("circuit: inverse sbox: binding input variable: %w", err)
	}

	if _, err := cs.IsNonzeroGadget(varL); err != nil {
		return r1cs.LinearCombination{}, fmt.Errorf("circuit: inverse sbox: non-zero gadget: %w", err)
	}

	_, _, product, err := cs.Multiply(lcL, lcR)
	if err != nil {
		return r1cs.LinearCombination{}, fmt.Errorf("circuit: inverse sbox: product gate: %w", err)
	}
	if err := cs.ConstrainLCWithScalar(product, field.One()); err != nil {
		return r1cs.LinearCombination{}, fmt.Errorf("circuit: inverse sbox: constraining product to one: %w", err)
	}
	return lcR, nil
}

// Synthesize applies sbox's circuit form to in, returning the output LC.
func Synthesize(cs r1cs.ConstraintSystem, sbox poseidon.SboxType, in r1cs.LinearCombination) (r1cs.LinearCombination, error) {
	switch sbox {
	case poseidon.Cube:
		return synthesizeCube(cs, in)
	case poseidon.Quint:
		return synthesizeQuint(cs, in)
	case poseidon.Inverse:
		return synthesizeInverse(cs, in)
	default:
		return r1cs.LinearCombination{}, fmt.Errorf("circuit: unknown sbox type %v", sbox)
	}
}
