package flow

import "sort"

// OrderByWeight returns the distinct categories of one side sorted by
// descending aggregate weight. Ties keep first-appearance order, so the
// result is deterministic for a given record sequence.
//
// This is the ordering used for a stack when the caller supplies none,
// and it is exported so callers can compute an ordering up front, adjust
// it, and pass it back explicitly.
func OrderByWeight(r Records, side Side) []string {
	labels := r.Labels(side)
	totals := r.Totals(side)

	order := make([]string, len(labels))
	copy(order, labels)
	sort.SliceStable(order, func(i, j int) bool {
		return totals[order[i]] > totals[order[j]]
	})
	return order
}
