package r1cs_test

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/nume-crypto/poseidon/field"
	"github.com/nume-crypto/poseidon/r1cs"
)

func TestLinearCombinationSimplifyCoalesces(t *testing.T) {
	cs := r1cs.NewProverCS()
	v, _, err := cs.AllocateSingle(field.FromUint64(3))
	require.NoError(t, err)

	lc := r1cs.LC(v).Add(r1cs.LC(v)).Add(r1cs.LC(v))
	simplified := lc.Simplify()
	require.Len(t, simplified.Terms, 1)

	val, ok, err := cs.EvaluateLC(simplified)
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, val.Equal(field.FromUint64(9)))
}

func TestSimplifyDropsZeroCoefficient(t *testing.T) {
	cs := r1cs.NewProverCS()
	v, _, err := cs.AllocateSingle(field.FromUint64(5))
	require.NoError(t, err)

	lc := r1cs.LC(v).Add(r1cs.LC(v).Scale(field.Sub(field.Zero(), field.One())))
	simplified := lc.Simplify()
	require.Empty(t, simplified.Terms)
}

func TestMultiplyGateWitnessesProduct(t *testing.T) {
	cs := r1cs.NewProverCS()
	l, llc, err := cs.AllocateSingle(field.FromUint64(6))
	require.NoError(t, err)
	_, rlc, err := cs.AllocateSingle(field.FromUint64(7))
	require.NoError(t, err)
	_ = l

	_, _, olc, err := cs.Multiply(llc, rlc)
	require.NoError(t, err)

	val, ok, err := cs.EvaluateLC(olc)
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, val.Equal(field.FromUint64(42)))
	require.Equal(t, 1, cs.NbGates())
}

func TestConstrainLCWithScalar(t *testing.T) {
	cs := r1cs.NewProverCS()
	_, lc, err := cs.AllocateSingle(field.FromUint64(10))
	require.NoError(t, err)

	require.NoError(t, cs.ConstrainLCWithScalar(lc, field.FromUint64(10)))
	require.Error(t, cs.ConstrainLCWithScalar(lc, field.FromUint64(11)))
}

func TestIsNonzeroGadgetRejectsZero(t *testing.T) {
	cs := r1cs.NewProverCS()
	v, _, err := cs.AllocateSingle(field.Zero())
	require.NoError(t, err)

	_, err = cs.IsNonzeroGadget(v)
	require.Error(t, err)
}

func TestIsNonzeroGadgetAcceptsNonzero(t *testing.T) {
	cs := r1cs.NewProverCS()
	v, _, err := cs.AllocateSingle(field.FromUint64(9))
	require.NoError(t, err)

	inv, err := cs.IsNonzeroGadget(v)
	require.NoError(t, err)

	val, ok, err := cs.EvaluateLC(r1cs.LC(inv))
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, val.Equal(field.Inverse(field.FromUint64(9))))
}

func TestVerifierCSTracksShapeWithoutWitness(t *testing.T) {
	cs := r1cs.NewVerifierCS()
	v, lc, err := cs.AllocateSingle(field.Zero())
	require.NoError(t, err)
	_ = v

	_, _, _, err = cs.Multiply(lc, lc)
	require.NoError(t, err)
	require.Equal(t, 1, cs.NbGates())

	_, ok, err := cs.EvaluateLC(lc)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSnapshotRoundTrip(t *testing.T) {
	cs := r1cs.NewProverCS()
	_, llc, err := cs.AllocateSingle(field.FromUint64(3))
	require.NoError(t, err)
	_, rlc, err := cs.AllocateSingle(field.FromUint64(5))
	require.NoError(t, err)
	_, _, _, err = cs.Multiply(llc, rlc)
	require.NoError(t, err)

	snap := r1cs.SnapshotProver(cs)

	var buf bytes.Buffer
	_, err = snap.WriteTo(&buf)
	require.NoError(t, err)

	got, err := r1cs.ReadFromSnapshot(&buf)
	require.NoError(t, err)

	if diff := cmp.Diff(snap, got, cmp.AllowUnexported(field.Fe{}, r1cs.Variable{})); diff != "" {
		t.Fatalf("snapshot round trip mismatch (-want +got):\n%s", diff)
	}
}
