package snapparse

import "slices"

// Result is the outcome of running a parser at one offset.
//
// On success Index is the offset just past the consumed text and Value holds
// the produced value. Whatever the status, Furthest and Expected describe the
// deepest failure observed while producing the result; Furthest is -1 when
// nothing failed. Expected is kept sorted and free of duplicates.
type Result struct {
	Status   bool
	Index    int
	Value    any
	Furthest int
	Expected []string
}

// Success returns a successful Result that ends at index.
func Success(index int, value any) Result {
	return Result{
		Status:   true,
		Index:    index,
		Value:    value,
		Furthest: -1,
	}
}

// Failure returns a failed Result at index that expected the given label.
func Failure(index int, expected string) Result {
	return Result{
		Index:    -1,
		Furthest: index,
		Expected: []string{expected},
	}
}

// noResult is the empty furthest-failure record; merging with it is the identity.
var noResult = Result{Furthest: -1}

// merge folds the furthest-failure record of last into result. The greater
// furthest offset wins; on a tie the label sets are unioned. Status, Index and
// Value always come from result.
func merge(result, last Result) Result {
	if result.Furthest > last.Furthest {
		return result
	}

	expected := last.Expected
	if result.Furthest == last.Furthest {
		expected = unionExpected(result.Expected, last.Expected)
	}

	result.Furthest = last.Furthest
	result.Expected = expected

	return result
}

// unionExpected returns the sorted set union of two label lists. Inputs are
// never modified; when one side is empty the other is returned as is.
func unionExpected(xs, ys []string) []string {
	if len(xs) == 0 {
		return ys
	}

	if len(ys) == 0 {
		return xs
	}

	out := make([]string, 0, len(xs)+len(ys))
	out = append(out, xs...)
	out = append(out, ys...)
	slices.Sort(out)

	return slices.Compact(out)
}

// normalizeExpected sorts and deduplicates labels produced outside the engine.
func normalizeExpected(expected []string) []string {
	if len(expected) < 2 {
		return expected
	}

	if slices.IsSorted(expected) && len(slices.Compact(slices.Clone(expected))) == len(expected) {
		return expected
	}

	out := slices.Clone(expected)
	slices.Sort(out)

	return slices.Compact(out)
}
