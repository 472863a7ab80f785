// Package extension encodes argumentation extensions as ordered bit-sets.
//
// An Extension is an immutable set of intern.ArgumentIDs stored as a growable
// bit-vector: bit i is set iff argument i is a member. The vector grows to
// fit the largest identifier it holds, so the argument space is not limited
// to a machine word.
//
// Extensions are totally ordered by the numeric value of their bit-vector.
// Comparing two extensions therefore looks at the largest member first:
//
//	{0,1} < {2} < {0,2} < {1,2} < {3}
//
// Equal extensions have identical bit patterns regardless of how much
// storage each one allocated.
//
// The Encoder turns the raw text of one bracketed group into an Extension,
// interning every token it meets:
//
//	enc := extension.NewEncoder(intern.New())
//	ext, err := enc.Encode("[a1,a3,a2]")
package extension
