package extension

import (
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/extcheck/intern"
)

func TestEncoder_Encode(t *testing.T) {
	enc := NewEncoder(intern.New())

	e, err := enc.Encode("[a,b,c]")
	require.NoError(t, err)
	assert.Equal(t, []intern.ArgumentID{0, 1, 2}, e.Members())

	t.Run("TokenOrderIndependent", func(t *testing.T) {
		other, err := enc.Encode("[c,a,b]")
		require.NoError(t, err)
		assert.True(t, e.Equal(other))
	})

	t.Run("DuplicateTokensCollapse", func(t *testing.T) {
		dup, err := enc.Encode("[a,a,b]")
		require.NoError(t, err)
		plain, err := enc.Encode("[a,b]")
		require.NoError(t, err)
		assert.True(t, dup.Equal(plain))
		assert.Equal(t, 2, dup.Len())
	})

	t.Run("Separators", func(t *testing.T) {
		mixed, err := enc.Encode("[ a :b,\tc\r\n]")
		require.NoError(t, err)
		assert.True(t, e.Equal(mixed))
	})

	t.Run("EmptyTokensSkipped", func(t *testing.T) {
		sparse, err := enc.Encode("[,,a,, ,b,]")
		require.NoError(t, err)
		assert.Equal(t, []intern.ArgumentID{0, 1}, sparse.Members())
	})

	t.Run("EmptyGroup", func(t *testing.T) {
		empty, err := enc.Encode("[]")
		require.NoError(t, err)
		assert.True(t, empty.IsEmpty())
	})

	t.Run("GrowsSharedInterner", func(t *testing.T) {
		before := enc.Interner().Len()
		_, err := enc.Encode("[a,zz]")
		require.NoError(t, err)
		assert.Equal(t, before+1, enc.Interner().Len())
	})
}

func TestEncoder_RoundTrip(t *testing.T) {
	in := intern.New()
	enc := NewEncoder(in)

	// Pre-intern in a scrambled order so ids and lexical order differ.
	for _, tok := range []string{"q", "b", "x", "a"} {
		_, err := in.Intern(tok)
		require.NoError(t, err)
	}

	tokens := []string{"a", "x", "q", "new1", "b", "new2"}
	group := "["
	for i, tok := range tokens {
		if i > 0 {
			group += ","
		}
		group += tok
	}
	group += "]"

	e, err := enc.Encode(group)
	require.NoError(t, err)

	decoded, err := e.Decode(in)
	require.NoError(t, err)

	// Decoded tokens come back in ascending id order.
	want := append([]string(nil), tokens...)
	sort.Slice(want, func(i, j int) bool {
		a, _ := in.Lookup(want[i])
		b, _ := in.Lookup(want[j])
		return a < b
	})
	assert.Equal(t, want, decoded)
	assert.ElementsMatch(t, tokens, decoded)
}

func TestEncoder_CapacityError(t *testing.T) {
	enc := NewEncoder(intern.New(intern.WithMaxArguments(2)))

	_, err := enc.Encode("[a,b,c]")
	require.Error(t, err)
	assert.ErrorIs(t, err, intern.ErrCapacity)
}

func TestIsSeparator(t *testing.T) {
	for _, r := range " \t\n\r,:[]" {
		assert.True(t, IsSeparator(r), "%q", r)
	}
	for _, r := range "a0_-.()" {
		assert.False(t, IsSeparator(r), "%q", r)
	}
}

func BenchmarkEncoder_Encode(b *testing.B) {
	enc := NewEncoder(intern.New())
	group := "["
	for i := 0; i < 256; i++ {
		if i > 0 {
			group += ","
		}
		group += fmt.Sprintf("a%d", i*7)
	}
	group += "]"

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := enc.Encode(group); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkExtension_Compare(b *testing.B) {
	ids := make([]intern.ArgumentID, 0, 512)
	for i := 0; i < 512; i++ {
		ids = append(ids, intern.ArgumentID(i*13))
	}
	x := FromIDs(ids...)
	y := FromIDs(ids...)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = x.Compare(y)
	}
}
