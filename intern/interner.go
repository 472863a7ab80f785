package intern

import (
	"errors"
	"fmt"
	"math"
)

// ArgumentID is the dense internal identifier of an argument.
type ArgumentID uint32

// DefaultMaxArguments is the default ceiling on distinct argument tokens.
// It keeps every identifier representable as an ArgumentID.
const DefaultMaxArguments uint64 = math.MaxUint32

// ErrCapacity is returned when the number of distinct tokens would exceed the
// configured ceiling.
var ErrCapacity = errors.New("argument capacity exceeded")

// CapacityError reports the token that did not fit into the argument space.
type CapacityError struct {
	Limit uint64
	Token string
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("argument capacity exceeded: limit %d reached at token %q", e.Limit, e.Token)
}

func (e *CapacityError) Unwrap() error { return ErrCapacity }

type options struct {
	maxArguments uint64
	sizeHint     int
}

// Option configures an Interner.
type Option func(*options)

// WithMaxArguments sets the maximum number of distinct tokens.
// Values of 0 or above DefaultMaxArguments select DefaultMaxArguments.
func WithMaxArguments(n uint64) Option {
	return func(o *options) {
		if n == 0 || n > DefaultMaxArguments {
			n = DefaultMaxArguments
		}
		o.maxArguments = n
	}
}

// WithSizeHint preallocates room for n tokens.
func WithSizeHint(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.sizeHint = n
		}
	}
}

// Interner maps argument tokens to ArgumentIDs.
type Interner struct {
	ids    map[string]ArgumentID
	tokens []string
	max    uint64
}

// New creates an empty Interner.
func New(optFns ...Option) *Interner {
	o := options{maxArguments: DefaultMaxArguments}
	for _, fn := range optFns {
		fn(&o)
	}

	return &Interner{
		ids:    make(map[string]ArgumentID, o.sizeHint),
		tokens: make([]string, 0, o.sizeHint),
		max:    o.maxArguments,
	}
}

// Intern returns the identifier of token, assigning the next free one on first
// sight.
func (in *Interner) Intern(token string) (ArgumentID, error) {
	if id, ok := in.ids[token]; ok {
		return id, nil
	}

	if uint64(len(in.tokens)) >= in.max {
		return 0, &CapacityError{Limit: in.max, Token: token}
	}

	id := ArgumentID(len(in.tokens))
	in.ids[token] = id
	in.tokens = append(in.tokens, token)

	return id, nil
}

// Lookup returns the identifier of token without assigning one.
func (in *Interner) Lookup(token string) (ArgumentID, bool) {
	id, ok := in.ids[token]
	return id, ok
}

// Token returns the token that was assigned id.
func (in *Interner) Token(id ArgumentID) (string, bool) {
	if uint64(id) >= uint64(len(in.tokens)) {
		return "", false
	}
	return in.tokens[id], true
}

// Len returns the number of distinct tokens seen so far.
func (in *Interner) Len() int {
	return len(in.tokens)
}

// Max returns the configured ceiling.
func (in *Interner) Max() uint64 {
	return in.max
}
