package r1cs

import (
	"bytes"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
	"github.com/nume-crypto/poseidon/field"
)

// wireTerm and wireLC are the CBOR-friendly mirrors of Term/LinearCombination:
// field.Fe has no exported fields for cbor to walk, so we project through
// its decimal string form, the same indirection the teacher's SparseR1CS
// uses when persisting fr.Element coefficients.
type wireTerm struct {
	VarID int    `cbor:"v"`
	Coeff string `cbor:"c"`
}

type wireLC struct {
	Terms    []wireTerm `cbor:"t"`
	Constant string     `cbor:"k"`
}

type wireGate struct {
	L wireLC `cbor:"l"`
	R wireLC `cbor:"r"`
	O wireLC `cbor:"o"`
}

// ConstraintSnapshot is a serializable projection of a synthesized
// circuit's shape: its variable count and multiplication gates. It carries
// no witness data and is meant for persistence/inspection of a circuit,
// not for driving a prover.
type ConstraintSnapshot struct {
	NbVariables int
	Gates       []Gate
}

func toWireLC(lc LinearCombination) wireLC {
	w := wireLC{Constant: lc.Constant.String(), Terms: make([]wireTerm, len(lc.Terms))}
	for i, t := range lc.Terms {
		w.Terms[i] = wireTerm{VarID: t.Var.id, Coeff: t.Coeff.String()}
	}
	return w
}

// WriteTo serializes the snapshot as CBOR, mirroring the teacher's
// SparseR1CS.WriteTo use of a deterministic core encoding mode so the same
// snapshot always serializes to the same bytes.
func (s ConstraintSnapshot) WriteTo(w io.Writer) (int64, error) {
	mode, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return 0, fmt.Errorf("r1cs: cbor encode mode: %w", err)
	}
	wireGates := make([]wireGate, len(s.Gates))
	for i, g := range s.Gates {
		wireGates[i] = wireGate{L: toWireLC(g.L), R: toWireLC(g.R), O: toWireLC(g.O)}
	}
	payload := struct {
		NbVariables int        `cbor:"n"`
		Gates       []wireGate `cbor:"g"`
	}{NbVariables: s.NbVariables, Gates: wireGates}

	var buf bytes.Buffer
	if err := mode.NewEncoder(&buf).Encode(payload); err != nil {
		return 0, fmt.Errorf("r1cs: cbor encode: %w", err)
	}
	n, err := w.Write(buf.Bytes())
	return int64(n), err
}

func fromWireLC(w wireLC) (LinearCombination, error) {
	c, err := field.FromDecimal(w.Constant)
	if err != nil {
		return LinearCombination{}, err
	}
	lc := LinearCombination{Constant: c, Terms: make([]Term, len(w.Terms))}
	for i, t := range w.Terms {
		coeff, err := field.FromDecimal(t.Coeff)
		if err != nil {
			return LinearCombination{}, err
		}
		lc.Terms[i] = Term{Var: Variable{id: t.VarID}, Coeff: coeff}
	}
	return lc, nil
}

// ReadFromSnapshot deserializes a snapshot previously written by WriteTo.
func ReadFromSnapshot(r io.Reader) (ConstraintSnapshot, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return ConstraintSnapshot{}, fmt.Errorf("r1cs: cbor read: %w", err)
	}
	dm, err := cbor.DecOptions{}.DecMode()
	if err != nil {
		return ConstraintSnapshot{}, fmt.Errorf("r1cs: cbor decode mode: %w", err)
	}
	var payload struct {
		NbVariables int        `cbor:"n"`
		Gates       []wireGate `cbor:"g"`
	}
	if err := dm.Unmarshal(buf, &payload); err != nil {
		return ConstraintSnapshot{}, fmt.Errorf("r1cs: cbor decode: %w", err)
	}
	snap := ConstraintSnapshot{NbVariables: payload.NbVariables, Gates: make([]Gate, len(payload.Gates))}
	for i, g := range payload.Gates {
		l, err := fromWireLC(g.L)
		if err != nil {
			return ConstraintSnapshot{}, err
		}
		rr, err := fromWireLC(g.R)
		if err != nil {
			return ConstraintSnapshot{}, err
		}
		o, err := fromWireLC(g.O)
		if err != nil {
			return ConstraintSnapshot{}, err
		}
		snap.Gates[i] = Gate{L: l, R: rr, O: o}
	}
	return snap, nil
}

// SnapshotProver captures a ProverCS's current gate bookkeeping;
// SnapshotVerifier does the same for a VerifierCS.
func SnapshotProver(cs *ProverCS) ConstraintSnapshot {
	return ConstraintSnapshot{NbVariables: cs.nbVars, Gates: append([]Gate(nil), cs.gates...)}
}

// SnapshotVerifier captures cs's current gate bookkeeping.
func SnapshotVerifier(cs *VerifierCS) ConstraintSnapshot {
	return ConstraintSnapshot{NbVariables: cs.nbVars, Gates: append([]Gate(nil), cs.gates...)}
}
