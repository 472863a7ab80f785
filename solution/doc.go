// Package solution reads solver solution files into sorted extension
// collections.
//
// A solution file holds either a single extension,
//
//	[a1,a2,a5]
//
// or a list of extensions,
//
//	[[a1,a2],[a3],[a1,a4]]
//
// The Reader splits the stream into raw bracketed records lazily. The shape is
// decided by the first group: if a second '[' appears before the first ']',
// the outer bracket is a list and is stripped. The Builder drains a Reader,
// encodes every record with an extension.Encoder and sorts the result into a
// Collection ready for comparison.
//
// An empty group ("[]" or "[[]]") is one empty extension.
package solution
