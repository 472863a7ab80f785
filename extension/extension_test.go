package extension

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/extcheck/intern"
)

func TestExtension_Compare(t *testing.T) {
	tests := []struct {
		name string
		a, b []intern.ArgumentID
		want int
	}{
		{"EmptyEqual", nil, nil, 0},
		{"EmptyLess", nil, []intern.ArgumentID{0}, -1},
		{"HighestBitWins", []intern.ArgumentID{0, 1}, []intern.ArgumentID{2}, -1},
		{"SameTopLowerDecides", []intern.ArgumentID{1, 2}, []intern.ArgumentID{0, 2}, 1},
		{"Equal", []intern.ArgumentID{3, 1}, []intern.ArgumentID{1, 3}, 0},
		{"AcrossWords", []intern.ArgumentID{63}, []intern.ArgumentID{64}, -1},
		{"WideUniverse", []intern.ArgumentID{1_000_000}, []intern.ArgumentID{999_999, 5}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := FromIDs(tt.a...), FromIDs(tt.b...)
			assert.Equal(t, tt.want, a.Compare(b))
			assert.Equal(t, -tt.want, b.Compare(a))
			assert.Equal(t, tt.want == 0, a.Equal(b))
		})
	}
}

func TestExtension_CompareIgnoresSpareWords(t *testing.T) {
	// Same members, different storage: one vector grew past 128 bits
	// before being reduced back by construction order.
	small := FromIDs(1, 2)
	wide := &Extension{}
	wide.bits.Set(1)
	wide.bits.Set(2)
	wide.bits.Set(200)
	wide.bits.Clear(200)
	wide.card = int(wide.bits.Count())

	assert.Greater(t, len(wide.bits.Words()), len(small.bits.Words()))
	assert.Equal(t, 0, small.Compare(wide))
	assert.True(t, small.Equal(wide))
}

func TestExtension_OrderMatchesNumericValue(t *testing.T) {
	// Each subset of {0..5} sorts like the integer sum(2^id).
	var exts []*Extension
	for v := 0; v < 1<<6; v++ {
		var ids []intern.ArgumentID
		for bit := 0; bit < 6; bit++ {
			if v&(1<<bit) != 0 {
				ids = append(ids, intern.ArgumentID(bit))
			}
		}
		exts = append(exts, FromIDs(ids...))
	}

	shuffled := slices.Clone(exts)
	slices.Reverse(shuffled)
	slices.SortFunc(shuffled, (*Extension).Compare)

	for i := range exts {
		assert.True(t, exts[i].Equal(shuffled[i]), "position %d", i)
	}
}

func TestExtension_Accessors(t *testing.T) {
	e := FromIDs(7, 3, 3, 130)

	assert.Equal(t, 3, e.Len())
	assert.False(t, e.IsEmpty())
	assert.Equal(t, []intern.ArgumentID{3, 7, 130}, e.Members())
	assert.True(t, e.Contains(130))
	assert.False(t, e.Contains(4))
	assert.False(t, e.Contains(10_000))
	assert.Equal(t, "{3,7,130}", e.String())

	top, ok := e.Max()
	require.True(t, ok)
	assert.Equal(t, intern.ArgumentID(130), top)

	assert.GreaterOrEqual(t, e.SizeBytes(), headerBytes+3*8)
}

func TestExtension_Empty(t *testing.T) {
	e := FromIDs()

	assert.True(t, e.IsEmpty())
	assert.Empty(t, e.Members())
	assert.Equal(t, "{}", e.String())
	assert.Equal(t, headerBytes, e.SizeBytes())

	_, ok := e.Max()
	assert.False(t, ok)
}

func TestExtension_DecodeUnknown(t *testing.T) {
	in := intern.New()
	_, err := in.Intern("a")
	require.NoError(t, err)

	_, err = FromIDs(0, 5).Decode(in)
	assert.ErrorIs(t, err, ErrUnknownArgument)
}
