package extension

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bits-and-blooms/bitset"

	"github.com/hupe1980/extcheck/intern"
)

// headerBytes approximates the fixed cost of one Extension value: the bitset
// length word plus its slice header and the cached cardinality.
const headerBytes = 40

// ErrUnknownArgument is returned when decoding meets an identifier that the
// interner never assigned.
var ErrUnknownArgument = errors.New("unknown argument id")

// Extension is an immutable set of argument identifiers.
type Extension struct {
	bits bitset.BitSet
	card int
}

// FromIDs builds an Extension holding the given identifiers.
// Repeated identifiers collapse into one member.
func FromIDs(ids ...intern.ArgumentID) *Extension {
	e := &Extension{}
	for _, id := range ids {
		e.bits.Set(uint(id))
	}
	e.card = int(e.bits.Count())
	return e
}

// Contains reports whether id is a member.
func (e *Extension) Contains(id intern.ArgumentID) bool {
	return e.bits.Test(uint(id))
}

// Len returns the number of members.
func (e *Extension) Len() int {
	return e.card
}

// IsEmpty reports whether the extension has no members.
func (e *Extension) IsEmpty() bool {
	return e.card == 0
}

// Members returns the member identifiers in ascending order.
func (e *Extension) Members() []intern.ArgumentID {
	out := make([]intern.ArgumentID, 0, e.card)
	for i, ok := e.bits.NextSet(0); ok; i, ok = e.bits.NextSet(i + 1) {
		out = append(out, intern.ArgumentID(i))
	}
	return out
}

// Max returns the largest member. ok is false for the empty extension.
func (e *Extension) Max() (id intern.ArgumentID, ok bool) {
	words := e.bits.Words()
	n := significantWords(words)
	if n == 0 {
		return 0, false
	}
	i, ok := e.bits.PreviousSet(uint(n*64 - 1))
	return intern.ArgumentID(i), ok
}

// Compare orders extensions by the numeric value of their bit-vectors.
// It returns -1, 0 or +1.
func (e *Extension) Compare(other *Extension) int {
	a, b := e.bits.Words(), other.bits.Words()
	na, nb := significantWords(a), significantWords(b)

	switch {
	case na < nb:
		return -1
	case na > nb:
		return 1
	}

	for i := na - 1; i >= 0; i-- {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	return 0
}

// Equal reports whether both extensions hold exactly the same members.
func (e *Extension) Equal(other *Extension) bool {
	if e.card != other.card {
		return false
	}
	return e.Compare(other) == 0
}

// SizeBytes estimates the memory held by the extension.
func (e *Extension) SizeBytes() int {
	return headerBytes + 8*cap(e.bits.Words())
}

// Decode maps the members back to their tokens, in ascending identifier order.
func (e *Extension) Decode(in *intern.Interner) ([]string, error) {
	members := e.Members()
	out := make([]string, 0, len(members))
	for _, id := range members {
		tok, ok := in.Token(id)
		if !ok {
			return nil, fmt.Errorf("%w: %d", ErrUnknownArgument, id)
		}
		out = append(out, tok)
	}
	return out, nil
}

// String renders the member identifiers, e.g. "{0,3,7}".
func (e *Extension) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	first := true
	for i, ok := e.bits.NextSet(0); ok; i, ok = e.bits.NextSet(i + 1) {
		if !first {
			sb.WriteByte(',')
		}
		first = false
		sb.WriteString(strconv.FormatUint(uint64(i), 10))
	}
	sb.WriteByte('}')
	return sb.String()
}

// significantWords returns the number of words up to and including the
// highest non-zero one.
func significantWords(words []uint64) int {
	n := len(words)
	for n > 0 && words[n-1] == 0 {
		n--
	}
	return n
}
