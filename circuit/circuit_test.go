package circuit_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nume-crypto/poseidon/circuit"
	"github.com/nume-crypto/poseidon/field"
	"github.com/nume-crypto/poseidon/poseidon"
	"github.com/nume-crypto/poseidon/r1cs"
)

func allocateAll(t *testing.T, cs *r1cs.ProverCS, vals []field.Fe) []r1cs.LinearCombination {
	t.Helper()
	lcs := make([]r1cs.LinearCombination, len(vals))
	for i, v := range vals {
		_, lc, err := cs.AllocateSingle(v)
		require.NoError(t, err)
		lcs[i] = lc
	}
	return lcs
}

func capacityLCFor(t *testing.T, width int) r1cs.LinearCombination {
	t.Helper()
	switch width {
	case 3:
		return r1cs.LinearCombination{Constant: field.FromUint64(poseidon.CapacityW3)}
	case 5:
		return r1cs.LinearCombination{Constant: field.FromUint64(poseidon.CapacityW5)}
	case 9:
		return r1cs.LinearCombination{Constant: field.FromUint64(poseidon.CapacityW9)}
	default:
		t.Fatalf("no capacity constant for width %d", width)
		return r1cs.LinearCombination{}
	}
}

func TestSynthesizePermutationMatchesNativeForEachSbox(t *testing.T) {
	for _, sbox := range []poseidon.SboxType{poseidon.Cube, poseidon.Quint, poseidon.Inverse} {
		sbox := sbox
		t.Run(sbox.String(), func(t *testing.T) {
			params, err := poseidon.DefaultParameters(3)
			require.NoError(t, err)

			in := []field.Fe{field.FromUint64(11), field.FromUint64(22), field.FromUint64(33)}
			native, err := poseidon.Permute(params, sbox, in)
			require.NoError(t, err)

			cs := r1cs.NewProverCS()
			lcs := allocateAll(t, cs, in)
			synthesized, err := circuit.SynthesizePermutation(cs, params, sbox, lcs)
			require.NoError(t, err)
			require.Len(t, synthesized, len(native))

			for i, lc := range synthesized {
				val, ok, err := cs.EvaluateLC(lc)
				require.NoError(t, err)
				require.True(t, ok)
				require.True(t, val.Equal(native[i]), "slot %d: native %s, circuit %s", i, native[i].String(), val.String())
			}
		})
	}
}

func TestHash2ConstraintsMatchesNativeHash2(t *testing.T) {
	params, err := poseidon.DefaultParameters(3)
	require.NoError(t, err)

	a, b := field.FromUint64(5), field.FromUint64(9)
	native, err := poseidon.Hash2(params, poseidon.Cube, []field.Fe{a, b})
	require.NoError(t, err)

	cs := r1cs.NewProverCS()
	_, aLC, err := cs.AllocateSingle(a)
	require.NoError(t, err)
	_, bLC, err := cs.AllocateSingle(b)
	require.NoError(t, err)

	out, err := circuit.Hash2Constraints(cs, params, poseidon.Cube, capacityLCFor(t, params.Width()), aLC, bLC)
	require.NoError(t, err)

	val, ok, err := cs.EvaluateLC(out)
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, val.Equal(native))
}

// TestHash2ConstraintsCapacityIsCallerResponsibility is the soundness test
// the capacity argument exists to let callers pass: a caller who binds the
// wrong capacity constant (or forgets to constrain it to the width's
// correct value) gets a different digest, not a silently-corrected one.
// The constrained hash form trusts its caller's capacity input exactly as
// the original's Poseidon_hash_2_constraints does.
func TestHash2ConstraintsCapacityIsCallerResponsibility(t *testing.T) {
	params, err := poseidon.DefaultParameters(3)
	require.NoError(t, err)

	a, b := field.FromUint64(5), field.FromUint64(9)
	correct, err := poseidon.Hash2(params, poseidon.Cube, []field.Fe{a, b})
	require.NoError(t, err)

	cs := r1cs.NewProverCS()
	_, aLC, err := cs.AllocateSingle(a)
	require.NoError(t, err)
	_, bLC, err := cs.AllocateSingle(b)
	require.NoError(t, err)

	wrongCapacity := r1cs.LinearCombination{Constant: field.FromUint64(poseidon.CapacityW3 + 1)}
	out, err := circuit.Hash2Constraints(cs, params, poseidon.Cube, wrongCapacity, aLC, bLC)
	require.NoError(t, err)

	val, ok, err := cs.EvaluateLC(out)
	require.NoError(t, err)
	require.True(t, ok)
	require.False(t, val.Equal(correct), "a wrong caller-supplied capacity must not produce the correct digest")
}

func TestHash2GadgetAcceptsCorrectImageRejectsWrong(t *testing.T) {
	params, err := poseidon.DefaultParameters(3)
	require.NoError(t, err)

	a, b := field.FromUint64(3), field.FromUint64(4)
	image, err := poseidon.Hash2(params, poseidon.Quint, []field.Fe{a, b})
	require.NoError(t, err)

	cs := r1cs.NewProverCS()
	capVar, _, err := cs.AllocateSingle(field.FromUint64(poseidon.CapacityW3))
	require.NoError(t, err)
	aVar, _, err := cs.AllocateSingle(a)
	require.NoError(t, err)
	bVar, _, err := cs.AllocateSingle(b)
	require.NoError(t, err)

	err = circuit.Hash2Gadget(cs, params, poseidon.Quint, capVar,
		circuit.AllocatedInput{Var: aVar}, circuit.AllocatedInput{Var: bVar}, image)
	require.NoError(t, err)

	cs2 := r1cs.NewProverCS()
	capVar2, _, err := cs2.AllocateSingle(field.FromUint64(poseidon.CapacityW3))
	require.NoError(t, err)
	aVar2, _, err := cs2.AllocateSingle(a)
	require.NoError(t, err)
	bVar2, _, err := cs2.AllocateSingle(b)
	require.NoError(t, err)
	err = circuit.Hash2Gadget(cs2, params, poseidon.Quint, capVar2,
		circuit.AllocatedInput{Var: aVar2}, circuit.AllocatedInput{Var: bVar2}, field.FromUint64(0xdead))
	require.Error(t, err)
}

func TestHash4And8ConstraintsMatchNative(t *testing.T) {
	params5, err := poseidon.DefaultParameters(5)
	require.NoError(t, err)
	var in4vals [4]field.Fe
	for i := range in4vals {
		in4vals[i] = field.FromUint64(uint64(100 + i))
	}
	native4, err := poseidon.Hash4(params5, poseidon.Cube, in4vals[:])
	require.NoError(t, err)

	cs := r1cs.NewProverCS()
	var in4lcs [4]r1cs.LinearCombination
	for i, v := range in4vals {
		_, lc, err := cs.AllocateSingle(v)
		require.NoError(t, err)
		in4lcs[i] = lc
	}
	out4, err := circuit.Hash4Constraints(cs, params5, poseidon.Cube, capacityLCFor(t, params5.Width()), in4lcs)
	require.NoError(t, err)
	val4, ok, err := cs.EvaluateLC(out4)
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, val4.Equal(native4))

	params9, err := poseidon.DefaultParameters(9)
	require.NoError(t, err)
	var in8vals [8]field.Fe
	for i := range in8vals {
		in8vals[i] = field.FromUint64(uint64(200 + i))
	}
	native8, err := poseidon.Hash8(params9, poseidon.Quint, in8vals[:])
	require.NoError(t, err)

	cs9 := r1cs.NewProverCS()
	var in8lcs [8]r1cs.LinearCombination
	for i, v := range in8vals {
		_, lc, err := cs9.AllocateSingle(v)
		require.NoError(t, err)
		in8lcs[i] = lc
	}
	out8, err := circuit.Hash8Constraints(cs9, params9, poseidon.Quint, capacityLCFor(t, params9.Width()), in8lcs)
	require.NoError(t, err)
	val8, ok, err := cs9.EvaluateLC(out8)
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, val8.Equal(native8))
}

func TestSynthesizePermutationRejectsWrongWidthInput(t *testing.T) {
	params, err := poseidon.DefaultParameters(3)
	require.NoError(t, err)

	cs := r1cs.NewProverCS()
	lcs := allocateAll(t, cs, []field.Fe{field.FromUint64(1), field.FromUint64(2)})
	_, err = circuit.SynthesizePermutation(cs, params, poseidon.Cube, lcs)
	require.Error(t, err)
}
