// Package poseidon implements the Poseidon permutation, its fixed-arity
// sponge hashes, and the parameter block they run against, grounded on
// PoseidonParams / Poseidon_permutation / Poseidon_hash_2/4/8 in the
// original gadget helpers this module's R1CS synthesizer (package circuit)
// mirrors as constraints.
package poseidon

import (
	"github.com/blang/semver/v4"
	"golang.org/x/exp/slices"

	"github.com/nume-crypto/poseidon/field"
)

// TableFormatVersion is the format version this binary's built-in
// round-constant and MDS tables were encoded against. DefaultParameters
// checks it through CheckTableFormatVersion before building those tables,
// the way a config-loading layer in the teacher's ecosystem would guard
// against a stale or future table format.
const TableFormatVersion = "1.0.0"

var tableFormatRange = semver.MustParseRange(">=1.0.0 <2.0.0")

// CheckTableFormatVersion validates a version string against the range of
// table formats this package understands.
func CheckTableFormatVersion(v string) error {
	parsed, err := semver.Parse(v)
	if err != nil {
		return configErrorf("malformed table format version %q: %v", v, err)
	}
	if !tableFormatRange(parsed) {
		return configErrorf("table format version %s not supported by this build (want %s)", v, TableFormatVersion)
	}
	return nil
}

// supportedWidths enumerates the sponge widths this package implements,
// matching the capacity-plus-arity-2/4/8 state sizes the spec fixes.
var supportedWidths = map[int]bool{3: true, 5: true, 9: true}

// Parameters bundles everything a permutation call needs: the width, the
// full/partial round counts, the flattened round-constant table, and the
// MDS matrix. It is immutable after construction and safe to share across
// concurrent callers (see HashBatch).
type Parameters struct {
	width          int
	fullRoundsBeg  int
	fullRoundsEnd  int
	partialRounds  int
	roundKeys      []field.Fe
	mds            [][]field.Fe
}

// Width returns the state width this parameter block was built for.
func (p *Parameters) Width() int { return p.width }

// FullRoundsBeginning returns the number of full rounds run before the
// partial-round phase.
func (p *Parameters) FullRoundsBeginning() int { return p.fullRoundsBeg }

// FullRoundsEnd returns the number of full rounds run after the
// partial-round phase.
func (p *Parameters) FullRoundsEnd() int { return p.fullRoundsEnd }

// PartialRounds returns the number of partial rounds.
func (p *Parameters) PartialRounds() int { return p.partialRounds }

// TotalRounds returns the sum of all three round phases.
func (p *Parameters) TotalRounds() int {
	return p.fullRoundsBeg + p.fullRoundsEnd + p.partialRounds
}

// RoundKeys returns a defensive copy of the flattened round-constant
// table, length TotalRounds()*Width().
func (p *Parameters) RoundKeys() []field.Fe {
	return slices.Clone(p.roundKeys)
}

// MDS returns a defensive copy of the width x width MDS matrix.
func (p *Parameters) MDS() [][]field.Fe {
	out := make([][]field.Fe, len(p.mds))
	for i, row := range p.mds {
		out[i] = slices.Clone(row)
	}
	return out
}

// NewParameters validates and constructs a parameter block from caller
// supplied round keys and an MDS matrix. Mirrors PoseidonParams::new's
// width check and its implicit requirement that round_keys and the MDS
// matrix be shaped consistently with (width, full_rounds_beginning,
// full_rounds_end, partial_rounds).
func NewParameters(width, fullRoundsBeg, fullRoundsEnd, partialRounds int, roundKeys []field.Fe, mds [][]field.Fe) (*Parameters, error) {
	if !supportedWidths[width] {
		return nil, configErrorf("unsupported width %d (must be one of 3, 5, 9)", width)
	}
	if fullRoundsBeg <= 0 || fullRoundsEnd <= 0 || partialRounds <= 0 {
		return nil, configErrorf("round counts must be positive: beg=%d end=%d partial=%d", fullRoundsBeg, fullRoundsEnd, partialRounds)
	}
	total := fullRoundsBeg + fullRoundsEnd + partialRounds
	wantKeys := total * width
	// At least wantKeys constants are required; a longer table is
	// truncated to that prefix rather than rejected, matching the
	// original's `if ROUND_CONSTS.len() < cap { panic }` followed by
	// consuming only the first cap entries.
	if len(roundKeys) < wantKeys {
		return nil, configErrorf("round-key table has %d entries, need at least %d (total_rounds=%d * width=%d)", len(roundKeys), wantKeys, total, width)
	}
	if len(mds) != width {
		return nil, configErrorf("MDS matrix has %d rows, want %d", len(mds), width)
	}
	for i, row := range mds {
		if len(row) != width {
			return nil, configErrorf("MDS matrix row %d has %d entries, want %d", i, len(row), width)
		}
	}
	mdsCopy := make([][]field.Fe, width)
	for i, row := range mds {
		mdsCopy[i] = slices.Clone(row)
	}
	return &Parameters{
		width:         width,
		fullRoundsBeg: fullRoundsBeg,
		fullRoundsEnd: fullRoundsEnd,
		partialRounds: partialRounds,
		roundKeys:     slices.Clone(roundKeys[:wantKeys]),
		mds:           mdsCopy,
	}, nil
}

// defaultRoundCounts mirrors the shape (not the bit-exact values) of a
// production Poseidon instance's round schedule for each supported width:
// a handful of full rounds on each side of a longer partial-round phase.
var defaultRoundCounts = map[int][3]int{
	3: {2, 2, 4},
	5: {2, 2, 4},
	9: {2, 2, 4},
}

// DefaultParameters returns this package's built-in parameter block for
// width, built from its compiled-in round-constant and MDS tables.
func DefaultParameters(width int) (*Parameters, error) {
	if err := CheckTableFormatVersion(TableFormatVersion); err != nil {
		return nil, err
	}
	counts, ok := defaultRoundCounts[width]
	if !ok {
		return nil, configErrorf("unsupported width %d (must be one of 3, 5, 9)", width)
	}
	total := counts[0] + counts[1] + counts[2]
	roundKeys, err := buildRoundKeys(width, total)
	if err != nil {
		return nil, err
	}
	mds, err := buildMDS(width)
	if err != nil {
		return nil, err
	}
	return NewParameters(width, counts[0], counts[1], counts[2], roundKeys, mds)
}
