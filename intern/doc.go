// Package intern assigns dense numeric identifiers to argument tokens.
//
// An Interner is created once per comparison and threaded through the parsing
// of both solution files, so that the same external token maps to the same
// ArgumentID in the reference and in the candidate:
//
//	in := intern.New()
//	a, _ := in.Intern("a1") // 0
//	b, _ := in.Intern("a7") // 1
//	a2, _ := in.Intern("a1") // 0 again
//
// Identifiers are handed out in first-occurrence order starting at 0. They are
// never removed or reused. The number of distinct tokens is bounded by a
// configurable ceiling; exceeding it returns an error matching ErrCapacity.
//
// An Interner is not safe for concurrent use.
package intern
