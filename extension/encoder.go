package extension

import (
	"strings"
	"unicode"

	"github.com/hupe1980/extcheck/intern"
)

// Encoder converts raw bracketed groups into Extensions.
type Encoder struct {
	interner *intern.Interner
}

// NewEncoder returns an Encoder that interns tokens into in.
func NewEncoder(in *intern.Interner) *Encoder {
	return &Encoder{interner: in}
}

// Interner returns the interner shared by this encoder.
func (enc *Encoder) Interner() *intern.Interner {
	return enc.interner
}

// Encode parses group and returns the set of its tokens.
//
// Tokens are separated by whitespace, ',', ':', '[' or ']'. Empty tokens are
// skipped and repeated tokens collapse. New tokens grow the shared interner;
// the only failure is an interner capacity error.
func (enc *Encoder) Encode(group string) (*Extension, error) {
	e := &Extension{}
	for _, tok := range strings.FieldsFunc(group, IsSeparator) {
		id, err := enc.interner.Intern(tok)
		if err != nil {
			return nil, err
		}
		e.bits.Set(uint(id))
	}
	e.card = int(e.bits.Count())
	return e, nil
}

// IsSeparator reports whether r separates argument tokens.
func IsSeparator(r rune) bool {
	switch r {
	case ',', ':', '[', ']':
		return true
	}
	return unicode.IsSpace(r)
}
