package compare

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/extcheck/extension"
	"github.com/hupe1980/extcheck/intern"
	"github.com/hupe1980/extcheck/solution"
)

// collections parses ref and cand with one shared interner.
func collections(t *testing.T, ref, cand string) (*solution.Collection, *solution.Collection) {
	t.Helper()

	b := solution.NewBuilder(extension.NewEncoder(intern.New()))

	r, err := b.Build(context.Background(), solution.NewReader(strings.NewReader(ref)))
	require.NoError(t, err)
	c, err := b.Build(context.Background(), solution.NewReader(strings.NewReader(cand)))
	require.NoError(t, err)

	return r, c
}

func TestCollections_Scenarios(t *testing.T) {
	tests := []struct {
		name      string
		ref, cand string
		want      Summary
	}{
		{"ExactMatch", "[[a,b],[c]]", "[[a,b],[c]]", Summary{VerdictOK, 2, 2, 0}},
		{"ReorderedMatch", "[[a,b],[c]]", "[[c],[b,a]]", Summary{VerdictOK, 2, 2, 0}},
		{"PartialMatch", "[[a,b],[c,d]]", "[[a,b],[x,y]]", Summary{VerdictWrong, 2, 1, 1}},
		{"Disjoint", "[[a,b]]", "[[c,d]]", Summary{VerdictWrong, 1, 0, 1}},
		{"SingleShape", "[a,b]", "[[b,a]]", Summary{VerdictOK, 1, 1, 0}},
		{"CandidateMissingOne", "[[a],[b],[c]]", "[[a],[c]]", Summary{VerdictWrong, 3, 2, 0}},
		{"CandidateSurplus", "[[a]]", "[[a],[b]]", Summary{VerdictWrong, 1, 1, 1}},
		{"EmptyExtensions", "[[]]", "[]", Summary{VerdictOK, 1, 1, 0}},
		{"DuplicateInReference", "[[a],[a]]", "[[a]]", Summary{VerdictWrong, 2, 1, 0}},
		{"DuplicatesBothSides", "[[a],[a]]", "[[a],[a]]", Summary{VerdictOK, 2, 2, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, cand := collections(t, tt.ref, tt.cand)
			res := Collections(ref, cand)
			assert.Equal(t, tt.want, res.Summary)
			assert.Equal(t, tt.want.Verdict == VerdictOK, res.OK())
			assert.Equal(t, tt.want.Total-tt.want.Correct, res.Missing())
		})
	}
}

func TestCompare_Identity(t *testing.T) {
	input := "[[a,b,c],[d],[],[e,a],[b,d,f]]"
	ref, cand := collections(t, input, input)

	res := Collections(ref, cand)
	assert.True(t, res.OK())
	assert.Equal(t, res.Total, res.Correct)
	assert.Zero(t, res.Wrong)
	assert.Empty(t, res.MissingIdx)
	assert.Empty(t, res.SurplusIdx)
}

func TestCompare_Classification(t *testing.T) {
	// ids: 0..4 in order of appearance.
	ref := []*extension.Extension{
		extension.FromIDs(0),
		extension.FromIDs(1),
		extension.FromIDs(3),
	}
	cand := []*extension.Extension{
		extension.FromIDs(0),
		extension.FromIDs(2),
		extension.FromIDs(3),
		extension.FromIDs(4),
	}

	res := Compare(ref, cand)
	assert.Equal(t, 2, res.Correct)
	assert.Equal(t, []int{1}, res.MissingIdx)
	assert.Equal(t, []int{1}, res.SurplusIdx)
	assert.Equal(t, 0, res.UnvisitedReference)
	assert.Equal(t, 1, res.UnvisitedCandidate)
	assert.Equal(t, 2, res.Wrong)
	assert.Equal(t, 4, res.Candidates)
}

func TestCompare_TrailingEntriesNotVisited(t *testing.T) {
	ref := []*extension.Extension{
		extension.FromIDs(5),
		extension.FromIDs(6),
		extension.FromIDs(7),
	}
	cand := []*extension.Extension{
		extension.FromIDs(0),
	}

	res := Compare(ref, cand)
	assert.Equal(t, Summary{VerdictWrong, 3, 0, 1}, res.Summary)
	assert.Empty(t, res.MissingIdx)
	assert.Equal(t, []int{0}, res.SurplusIdx)
	assert.Equal(t, 3, res.UnvisitedReference)
	assert.Equal(t, 3, res.Missing())
}

func TestCompare_Empty(t *testing.T) {
	res := Compare(nil, nil)
	assert.Equal(t, Summary{VerdictOK, 0, 0, 0}, res.Summary)

	res = Compare([]*extension.Extension{extension.FromIDs(1)}, nil)
	assert.Equal(t, Summary{VerdictWrong, 1, 0, 0}, res.Summary)
	assert.Equal(t, 1, res.UnvisitedReference)
}

func TestCompare_Deterministic(t *testing.T) {
	ref := "[[a,b],[c,d],[e],[a,e],[b,c,d]]"
	cand := "[[b,c,d],[a,b],[x],[e,a]]"

	r1, c1 := collections(t, ref, cand)
	r2, c2 := collections(t, ref, cand)
	assert.Equal(t, Collections(r1, c1), Collections(r2, c2))
}

func BenchmarkCompare(b *testing.B) {
	ref := make([]*extension.Extension, 0, 4096)
	cand := make([]*extension.Extension, 0, 4096)
	for i := 0; i < 4096; i++ {
		ids := []intern.ArgumentID{intern.ArgumentID(i), intern.ArgumentID(i + 4096)}
		ref = append(ref, extension.FromIDs(ids...))
		if i%16 != 0 {
			cand = append(cand, extension.FromIDs(ids...))
		}
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Compare(ref, cand)
	}
}
