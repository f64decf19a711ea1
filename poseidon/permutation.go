package poseidon

import "github.com/nume-crypto/poseidon/field"

// Permute runs the full Poseidon permutation over input (length must equal
// params.Width()) under sbox, mirroring Poseidon_permutation: a block of
// full rounds, a block of partial rounds where the S-box touches only the
// last state slot, then a closing block of full rounds. The round-key
// cursor is monotone and consumes exactly TotalRounds()*Width() keys,
// ending exactly at the end of the table.
func Permute(params *Parameters, sbox SboxType, input []field.Fe) ([]field.Fe, error) {
	w := params.Width()
	if len(input) != w {
		return nil, configErrorf("permutation input has %d elements, want %d", len(input), w)
	}

	state := make([]field.Fe, w)
	copy(state, input)

	keys := params.roundKeys
	offset := 0

	fullRound := func() {
		for i := 0; i < w; i++ {
			state[i] = field.Add(state[i], keys[offset])
			state[i] = sbox.Apply(state[i])
			offset++
		}
		state = linearLayer(params, state)
	}

	partialRound := func() {
		for i := 0; i < w; i++ {
			state[i] = field.Add(state[i], keys[offset])
			offset++
		}
		state[w-1] = sbox.Apply(state[w-1])
		state = linearLayer(params, state)
	}

	for r := 0; r < params.FullRoundsBeginning(); r++ {
		fullRound()
	}
	for r := 0; r < params.PartialRounds(); r++ {
		partialRound()
	}
	for r := 0; r < params.FullRoundsEnd(); r++ {
		fullRound()
	}

	if offset != len(keys) {
		panic("poseidon: round-key cursor did not exhaust the table exactly")
	}
	return state, nil
}

// linearLayer applies the MDS matrix: out[i] = sum_j M[i][j] * state[j].
func linearLayer(params *Parameters, state []field.Fe) []field.Fe {
	w := params.Width()
	out := make([]field.Fe, w)
	for i := 0; i < w; i++ {
		acc := field.Zero()
		for j := 0; j < w; j++ {
			acc = field.Add(acc, field.Mul(params.mds[i][j], state[j]))
		}
		out[i] = acc
	}
	return out
}
