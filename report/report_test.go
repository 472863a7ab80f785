package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/extcheck/compare"
	"github.com/hupe1980/extcheck/extension"
)

func TestWrite(t *testing.T) {
	res := compare.Result{Summary: compare.Summary{Verdict: compare.VerdictWrong, Total: 2, Correct: 1, Wrong: 1}}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, res))
	assert.Equal(t, "WRONG\n2 total\n1 correct\n1 wrong\n", buf.String())
}

func TestWrite_FromCompare(t *testing.T) {
	ref := []*extension.Extension{extension.FromIDs(0, 1), extension.FromIDs(2)}
	res := compare.Compare(ref, ref)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, res))
	assert.Equal(t, "OK\n2 total\n2 correct\n0 wrong\n", buf.String())

	s, err := Parse(&buf)
	require.NoError(t, err)
	assert.Equal(t, res.Summary, s)
}

func TestParse(t *testing.T) {
	s, err := Parse(strings.NewReader("OK\n3 total\n3 correct\n0 wrong\n"))
	require.NoError(t, err)
	assert.Equal(t, compare.Summary{Verdict: compare.VerdictOK, Total: 3, Correct: 3}, s)

	// Trailing whitespace and blank lines are tolerated.
	s, err = Parse(strings.NewReader("WRONG\r\n1 total\r\n\n0 correct\r\n1 wrong"))
	require.NoError(t, err)
	assert.Equal(t, compare.Summary{Verdict: compare.VerdictWrong, Total: 1, Wrong: 1}, s)
}

func TestParse_Invalid(t *testing.T) {
	tests := map[string]string{
		"Empty":        "",
		"ShortReport":  "OK\n1 total\n",
		"BadVerdict":   "MAYBE\n1 total\n1 correct\n0 wrong\n",
		"SwappedLines": "OK\n1 correct\n1 total\n0 wrong\n",
		"NotANumber":   "OK\nx total\n1 correct\n0 wrong\n",
		"Negative":     "OK\n-1 total\n1 correct\n0 wrong\n",
		"ExtraLine":    "OK\n1 total\n1 correct\n0 wrong\nmore\n",
	}

	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(in))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidReport))
		})
	}
}
