package flow

import (
	"math"

	"github.com/flowband/flowband/pkg/errors"
)

// Side identifies one column of the diagram.
type Side string

const (
	// SideLeft is the left column of the diagram.
	SideLeft Side = "left"
	// SideRight is the right column of the diagram.
	SideRight Side = "right"
)

// Record is a single paired observation: a flow of Weight from the Left
// category to the Right category. RightWeight optionally gives the flow
// a different weight on the right side, so a band can enter its right
// stack thicker or thinner than it left the left one; zero means the
// right side reuses Weight.
type Record struct {
	Left        string  `json:"left"`
	Right       string  `json:"right"`
	Weight      float64 `json:"weight"`
	RightWeight float64 `json:"rightWeight,omitempty"`
}

// Records is an ordered sequence of observations. Order matters: it is
// the tie-break for weight-derived stack orderings.
type Records []Record

// New builds Records from parallel label slices and an optional weight
// slice. If weights is nil, every record gets weight 1. It returns an
// error when the slices have mismatched lengths, a label is empty, or a
// weight is negative or not a number.
func New(left, right []string, weights []float64) (Records, error) {
	return NewTwoSided(left, right, weights, nil)
}

// NewTwoSided builds Records with separate left and right weight
// slices. A nil rightWeights slice gives every record the same weight
// on both sides, which is what New does.
func NewTwoSided(left, right []string, weights, rightWeights []float64) (Records, error) {
	if len(left) != len(right) {
		return nil, errors.New(errors.ErrCodeInvalidLength,
			"left and right must have equal length (got %d and %d)", len(left), len(right))
	}
	if weights != nil && len(weights) != len(left) {
		return nil, errors.New(errors.ErrCodeInvalidLength,
			"weights must match label length (got %d, want %d)", len(weights), len(left))
	}
	if rightWeights != nil && len(rightWeights) != len(left) {
		return nil, errors.New(errors.ErrCodeInvalidLength,
			"right weights must match label length (got %d, want %d)", len(rightWeights), len(left))
	}
	if len(left) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no records given")
	}

	recs := make(Records, len(left))
	for i := range left {
		w := 1.0
		if weights != nil {
			w = weights[i]
		}
		rec := Record{Left: left[i], Right: right[i], Weight: w}
		if rightWeights != nil {
			rec.RightWeight = rightWeights[i]
		}
		recs[i] = rec
	}
	if err := recs.Validate(); err != nil {
		return nil, err
	}
	return recs, nil
}

// Validate checks every record for empty labels and invalid weights.
func (r Records) Validate() error {
	if len(r) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "no records given")
	}
	for i, rec := range r {
		if err := errors.ValidateLabel(rec.Left); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "record %d: left label", i)
		}
		if err := errors.ValidateLabel(rec.Right); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "record %d: right label", i)
		}
		if math.IsNaN(rec.Weight) || math.IsInf(rec.Weight, 0) {
			return errors.New(errors.ErrCodeInvalidInput, "record %d: weight is not a finite number", i)
		}
		if rec.Weight < 0 {
			return errors.New(errors.ErrCodeInvalidInput, "record %d: weight must be non-negative (got %v)", i, rec.Weight)
		}
		if math.IsNaN(rec.RightWeight) || math.IsInf(rec.RightWeight, 0) {
			return errors.New(errors.ErrCodeInvalidInput, "record %d: right weight is not a finite number", i)
		}
		if rec.RightWeight < 0 {
			return errors.New(errors.ErrCodeInvalidInput, "record %d: right weight must be non-negative (got %v)", i, rec.RightWeight)
		}
	}
	return nil
}

// labelOf returns the record's label on the given side.
func (rec Record) labelOf(side Side) string {
	if side == SideRight {
		return rec.Right
	}
	return rec.Left
}

// weightOf returns the record's weight on the given side. The right
// side falls back to Weight when no explicit RightWeight is set.
func (rec Record) weightOf(side Side) float64 {
	if side == SideRight && rec.RightWeight > 0 {
		return rec.RightWeight
	}
	return rec.Weight
}

// Labels returns the distinct category labels of one side in order of
// first appearance.
func (r Records) Labels(side Side) []string {
	seen := make(map[string]struct{}, len(r))
	var labels []string
	for _, rec := range r {
		l := rec.labelOf(side)
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		labels = append(labels, l)
	}
	return labels
}

// LabelUnion returns the distinct labels across both sides in order of
// first appearance, left label before right label within a record.
func (r Records) LabelUnion() []string {
	seen := make(map[string]struct{}, 2*len(r))
	var labels []string
	add := func(l string) {
		if _, ok := seen[l]; !ok {
			seen[l] = struct{}{}
			labels = append(labels, l)
		}
	}
	for _, rec := range r {
		add(rec.Left)
		add(rec.Right)
	}
	return labels
}

// Totals returns the aggregate weight per category on one side, using
// that side's weights.
func (r Records) Totals(side Side) map[string]float64 {
	totals := make(map[string]float64)
	for _, rec := range r {
		totals[rec.labelOf(side)] += rec.weightOf(side)
	}
	return totals
}

// Total returns the grand total weight of one side. The sides only
// differ when records carry explicit right weights.
func (r Records) Total(side Side) float64 {
	var sum float64
	for _, rec := range r {
		sum += rec.weightOf(side)
	}
	return sum
}

// PairTotals returns the aggregate weight per (left, right) pair on one
// side. Pairs with zero aggregate weight are included only if a record
// for them exists.
func (r Records) PairTotals(side Side) map[Pair]float64 {
	totals := make(map[Pair]float64)
	for _, rec := range r {
		totals[Pair{Left: rec.Left, Right: rec.Right}] += rec.weightOf(side)
	}
	return totals
}

// Pair identifies a (left category, right category) flow.
type Pair struct {
	Left  string
	Right string
}
