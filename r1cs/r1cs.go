// Package r1cs provides the rank-1 constraint system vocabulary a Poseidon
// circuit is synthesized against: variables, linear combinations, and a
// narrow ConstraintSystem interface covering exactly the operations a
// Bulletproofs-style gadget needs (multiply gates, single-variable
// allocation, linear-combination evaluation against a witness,
// constrain-to-scalar, and a non-zero gadget). The proving/verifying
// system itself stays external; ProverCS and VerifierCS here are enough to
// exercise and test a synthesized circuit, not a full SNARK backend.
package r1cs

import (
	"fmt"

	"github.com/nume-crypto/poseidon/field"
)

// Variable names one allocated wire in a constraint system.
type Variable struct {
	id int
}

// Term is a scalar multiple of a Variable.
type Term struct {
	Var   Variable
	Coeff field.Fe
}

// LinearCombination is a sum of Terms plus a constant, mirroring the
// original's LinearCombination type used throughout the gadget helpers. The
// zero value is the zero LC.
type LinearCombination struct {
	Terms    []Term
	Constant field.Fe
}

// LC builds a single-term linear combination v*1.
func LC(v Variable) LinearCombination {
	return LinearCombination{Terms: []Term{{Var: v, Coeff: field.One()}}}
}

// Add returns lc + other, without simplifying.
func (lc LinearCombination) Add(other LinearCombination) LinearCombination {
	out := LinearCombination{
		Terms:    make([]Term, 0, len(lc.Terms)+len(other.Terms)),
		Constant: field.Add(lc.Constant, other.Constant),
	}
	out.Terms = append(out.Terms, lc.Terms...)
	out.Terms = append(out.Terms, other.Terms...)
	return out
}

// AddConstant returns lc + c.
func (lc LinearCombination) AddConstant(c field.Fe) LinearCombination {
	out := lc
	out.Constant = field.Add(lc.Constant, c)
	return out
}

// Scale returns lc scaled by s.
func (lc LinearCombination) Scale(s field.Fe) LinearCombination {
	out := LinearCombination{
		Terms:    make([]Term, len(lc.Terms)),
		Constant: field.Mul(lc.Constant, s),
	}
	for i, t := range lc.Terms {
		out.Terms[i] = Term{Var: t.Var, Coeff: field.Mul(t.Coeff, s)}
	}
	return out
}

// Simplify coalesces terms that share the same Variable, dropping any whose
// combined coefficient is zero. Grounded on the original's per-round
// `.simplify()` call, which is made only after a partial round's linear
// layer — never after a full round's — to keep the LC that becomes next
// round's S-box input from growing unboundedly across many partial rounds.
func (lc LinearCombination) Simplify() LinearCombination {
	byVar := make(map[Variable]field.Fe, len(lc.Terms))
	order := make([]Variable, 0, len(lc.Terms))
	for _, t := range lc.Terms {
		if acc, ok := byVar[t.Var]; ok {
			byVar[t.Var] = field.Add(acc, t.Coeff)
		} else {
			byVar[t.Var] = t.Coeff
			order = append(order, t.Var)
		}
	}
	out := LinearCombination{Constant: lc.Constant}
	for _, v := range order {
		c := byVar[v]
		if c.IsZero() {
			continue
		}
		out.Terms = append(out.Terms, Term{Var: v, Coeff: c})
	}
	return out
}

// ConstraintSystem is the external collaborator a Poseidon circuit is
// synthesized against. Implementations decide how multiplication gates,
// allocated variables, and scalar constraints ultimately feed a proof
// system; this package only prescribes the shape of the interaction.
type ConstraintSystem interface {
	// Multiply allocates a multiplication gate witnessing l*r=o and
	// returns the linear combinations for its three wires.
	Multiply(l, r LinearCombination) (lOut, rOut, oOut LinearCombination, err error)

	// AllocateSingle allocates one free variable witnessed with val (a
	// verifier-mode implementation may ignore val) and returns it
	// alongside the LC that refers to it.
	AllocateSingle(val field.Fe) (Variable, LinearCombination, error)

	// EvaluateLC returns the witnessed value of lc, if this constraint
	// system carries a witness. The second result is false for a
	// verifier-only constraint system.
	EvaluateLC(lc LinearCombination) (field.Fe, bool, error)

	// ConstrainLCWithScalar asserts lc == s.
	ConstrainLCWithScalar(lc LinearCombination, s field.Fe) error

	// IsNonzeroGadget asserts that the witnessed value of v is non-zero,
	// via an auxiliary inverse variable, and returns that variable.
	IsNonzeroGadget(v Variable) (Variable, error)
}

// Gate records one multiplication constraint a*b=c, named the way the
// teacher's SparseR1C gate triples are (left, right, output).
type Gate struct {
	L, R, O LinearCombination
}

type baseCS struct {
	nbVars int
	gates  []Gate
}

func (b *baseCS) alloc() Variable {
	v := Variable{id: b.nbVars}
	b.nbVars++
	return v
}

// ProverCS is a witness-carrying constraint system sufficient to evaluate
// linear combinations and check gate satisfiability; it is not a
// Bulletproofs prover, only enough plumbing to test the consistency
// theorem between native and synthesized Poseidon.
type ProverCS struct {
	baseCS
	witness []field.Fe
}

// NewProverCS returns an empty prover-mode constraint system.
func NewProverCS() *ProverCS {
	return &ProverCS{witness: []field.Fe{}}
}

func (cs *ProverCS) evalLocal(lc LinearCombination) field.Fe {
	acc := lc.Constant
	for _, t := range lc.Terms {
		acc = field.Add(acc, field.Mul(t.Coeff, cs.witness[t.Var.id]))
	}
	return acc
}

// AllocateWitnessed allocates one free variable with witness value val.
func (cs *ProverCS) AllocateWitnessed(val field.Fe) (Variable, LinearCombination) {
	v := cs.alloc()
	cs.witness = append(cs.witness, val)
	return v, LC(v)
}

// AllocateSingle implements ConstraintSystem, matching the original's
// `cs.allocate_single(val)` taking an explicit witness value.
func (cs *ProverCS) AllocateSingle(val field.Fe) (Variable, LinearCombination, error) {
	v, lc := cs.AllocateWitnessed(val)
	return v, lc, nil
}

// Multiply allocates l*r=o and witnesses o from l and r's current values.
func (cs *ProverCS) Multiply(l, r LinearCombination) (LinearCombination, LinearCombination, LinearCombination, error) {
	lv := cs.evalLocal(l)
	rv := cs.evalLocal(r)
	ov := field.Mul(lv, rv)
	oVar, oLC := cs.AllocateWitnessed(ov)
	cs.gates = append(cs.gates, Gate{L: l, R: r, O: oLC})
	return l, r, LC(oVar), nil
}

// EvaluateLC returns lc's witnessed value.
func (cs *ProverCS) EvaluateLC(lc LinearCombination) (field.Fe, bool, error) {
	return cs.evalLocal(lc), true, nil
}

// ConstrainLCWithScalar asserts lc evaluates to s under the current witness.
func (cs *ProverCS) ConstrainLCWithScalar(lc LinearCombination, s field.Fe) error {
	if got := cs.evalLocal(lc); !got.Equal(s) {
		return fmt.Errorf("r1cs: constraint violated: got %s, want %s", got.String(), s.String())
	}
	return nil
}

// IsNonzeroGadget witnesses inv = v^-1 and constrains v*inv = 1, the
// standard non-zero gadget the Inverse S-box's circuit form relies on
// (mirrors `is_nonzero_gadget` in the original gadget helpers).
func (cs *ProverCS) IsNonzeroGadget(v Variable) (Variable, error) {
	val := cs.witness[v.id]
	if val.IsZero() {
		return Variable{}, fmt.Errorf("r1cs: is_nonzero_gadget: witness is zero")
	}
	invVar, invLC := cs.AllocateWitnessed(field.Inverse(val))
	_, _, oLC, err := cs.Multiply(LC(v), invLC)
	if err != nil {
		return Variable{}, err
	}
	if err := cs.ConstrainLCWithScalar(oLC, field.One()); err != nil {
		return Variable{}, err
	}
	return invVar, nil
}

// NbGates reports how many multiplication gates have been allocated.
func (cs *ProverCS) NbGates() int { return len(cs.gates) }

// VerifierCS tracks the same gate bookkeeping as ProverCS but carries no
// witness: EvaluateLC always reports false, matching a verifier's view of
// the circuit (it knows the shape of the computation, never its values).
type VerifierCS struct {
	baseCS
}

// NewVerifierCS returns an empty verifier-mode constraint system.
func NewVerifierCS() *VerifierCS {
	return &VerifierCS{}
}

func (cs *VerifierCS) AllocateSingle(field.Fe) (Variable, LinearCombination, error) {
	v := cs.alloc()
	return v, LC(v), nil
}

func (cs *VerifierCS) Multiply(l, r LinearCombination) (LinearCombination, LinearCombination, LinearCombination, error) {
	_, oLC, err := cs.AllocateSingle(field.Fe{})
	if err != nil {
		return LinearCombination{}, LinearCombination{}, LinearCombination{}, err
	}
	cs.gates = append(cs.gates, Gate{L: l, R: r, O: oLC})
	return l, r, oLC, nil
}

func (cs *VerifierCS) EvaluateLC(LinearCombination) (field.Fe, bool, error) {
	return field.Fe{}, false, nil
}

func (cs *VerifierCS) ConstrainLCWithScalar(LinearCombination, field.Fe) error {
	return nil
}

func (cs *VerifierCS) IsNonzeroGadget(v Variable) (Variable, error) {
	inv := cs.alloc()
	if _, _, _, err := cs.Multiply(LC(v), LC(inv)); err != nil {
		return Variable{}, err
	}
	return inv, nil
}

// NbGates reports how many multiplication gates have been allocated.
func (cs *VerifierCS) NbGates() int { return len(cs.gates) }
