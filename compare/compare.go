// Package compare checks a candidate extension sequence against a reference.
//
// Both sequences must be sorted by extension.Extension.Compare. Compare walks
// them once, left to right, with one cursor per side:
//
//   - equal extensions count as correct and advance both cursors,
//   - a smaller reference extension is missing and advances the reference,
//   - a smaller candidate extension is surplus and advances the candidate.
//
// The walk ends as soon as either side is exhausted. Entries left on the
// other side are not classified individually; they are still reflected in
// the totals because Wrong is |candidate| - Correct and Missing is
// Total - Correct.
package compare

import (
	"github.com/hupe1980/extcheck/extension"
	"github.com/hupe1980/extcheck/solution"
)

// Verdict is the outcome of a comparison.
type Verdict string

const (
	// VerdictOK means both solutions hold exactly the same extensions.
	VerdictOK Verdict = "OK"
	// VerdictWrong means at least one extension is missing or surplus.
	VerdictWrong Verdict = "WRONG"
)

// Summary is the reportable part of a comparison.
type Summary struct {
	Verdict Verdict
	Total   int
	Correct int
	Wrong   int
}

// Result is the full outcome of a comparison.
type Result struct {
	Summary

	// Candidates is the number of candidate extensions.
	Candidates int

	// MissingIdx holds the reference indices classified as missing during the walk.
	MissingIdx []int
	// SurplusIdx holds the candidate indices classified as surplus during the walk.
	SurplusIdx []int

	// UnvisitedReference counts reference entries left when the candidate ran out.
	UnvisitedReference int
	// UnvisitedCandidate counts candidate entries left when the reference ran out.
	UnvisitedCandidate int
}

// OK reports whether the verdict is VerdictOK.
func (r Result) OK() bool {
	return r.Verdict == VerdictOK
}

// Missing returns the number of reference extensions without a match.
func (r Result) Missing() int {
	return r.Total - r.Correct
}

// Compare merges two sorted extension sequences.
func Compare(reference, candidate []*extension.Extension) Result {
	var res Result

	i, j := 0, 0
	for i < len(reference) && j < len(candidate) {
		switch reference[i].Compare(candidate[j]) {
		case 0:
			res.Correct++
			i++
			j++
		case -1:
			res.MissingIdx = append(res.MissingIdx, i)
			i++
		default:
			res.SurplusIdx = append(res.SurplusIdx, j)
			j++
		}
	}

	res.UnvisitedReference = len(reference) - i
	res.UnvisitedCandidate = len(candidate) - j

	res.Total = len(reference)
	res.Candidates = len(candidate)
	res.Wrong = res.Candidates - res.Correct

	res.Verdict = VerdictWrong
	if res.Total == res.Candidates && res.Total == res.Correct {
		res.Verdict = VerdictOK
	}

	return res
}

// Collections compares two solution collections.
func Collections(reference, candidate *solution.Collection) Result {
	return Compare(reference.Extensions(), candidate.Extensions())
}
