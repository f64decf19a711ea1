package circuit

import (
	"fmt"

	"github.com/nume-crypto/poseidon/field"
	"github.com/nume-crypto/poseidon/poseidon"
	"github.com/nume-crypto/poseidon/r1cs"
)

// SynthesizePermutation mirrors poseidon.Permute's round structure against cs: full
// rounds apply the S-box to every slot, partial rounds apply it only to
// the last slot (the rest just gain a round-key term, no gate), and the
// linear combinations built during a partial round's linear layer are
// simplified before the next round -- matching the original's single
// `.simplify()` call placed only on the partial-round path, never on the
// full-round path.
func SynthesizePermutation(cs r1cs.ConstraintSystem, params *poseidon.Parameters, sbox poseidon.SboxType, input []r1cs.LinearCombination) ([]r1cs.LinearCombination, error) {
	w := params.Width()
	if len(input) != w {
		return nil, fmt.Errorf("circuit: permutation input has %d elements, want %d", len(input), w)
	}

	state := make([]r1cs.LinearCombination, w)
	copy(state, input)

	keys := params.RoundKeys()
	mds := params.MDS()
	offset := 0

	fullRound := func() error {
		for i := 0; i < w; i++ {
			state[i] = state[i].AddConstant(keys[offset])
			offset++
			out, err := Synthesize(cs, sbox, state[i])
			if err != nil {
				return fmt.Errorf("circuit: full round sbox at slot %d: %w", i, err)
			}
			state[i] = out
		}
		state = linearLayer(mds, state)
		return nil
	}

	partialRound := func() error {
		for i := 0; i < w; i++ {
			state[i] = state[i].AddConstant(keys[offset])
			offset++
		}
		out, err := Synthesize(cs, sbox, state[w-1])
		if err != nil {
			return fmt.Errorf("circuit: partial round sbox: %w", err)
		}
		state[w-1] = out
		state = linearLayer(mds, state)
		// Simplify only here: the linear layer concatenates every
		// slot's terms into each output, and the slots that bypass the
		// S-box in a partial round would otherwise carry those growing
		// term lists into the next round across the whole partial phase.
		for i := range state {
			state[i] = state[i].Simplify()
		}
		return nil
	}

	for r := 0; r < params.FullRoundsBeginning(); r++ {
		if err := fullRound(); err != nil {
			return nil, err
		}
	}
	for r := 0; r < params.PartialRounds(); r++ {
		if err := partialRound(); err != nil {
			return nil, err
		}
	}
	for r := 0; r < params.FullRoundsEnd(); r++ {
		if err := fullRound(); err != nil {
			return nil, err
		}
	}

	if offset != len(keys) {
		return nil, fmt.Errorf("circuit: round-key cursor ended at %d, table has %d entries", offset, len(keys))
	}
	return state, nil
}

// linearLayer applies the MDS matrix over linear combinations without
// allocating any gates: out[i] = sum_j M[i][j] * state[j], scalar-scaled
// linear combination arithmetic only.
func linearLayer(mds [][]field.Fe, state []r1cs.LinearCombination) []r1cs.LinearCombination {
	w := len(state)
	out := make([]r1cs.LinearCombination, w)
	for i := 0; i < w; i++ {
		acc := r1cs.LinearCombination{}
		for j := 0; j < w; j++ {
			acc = acc.Add(state[j].Scale(mds[i][j]))
		}
		out[i] = acc
	}
	return out
}
