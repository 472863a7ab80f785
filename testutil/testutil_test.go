package testutil

import (
	"bytes"
	"io"
	"os"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/extcheck/internal/compress"
)

func TestSolution(t *testing.T) {
	rng := NewRNG(4711)

	exts := rng.Solution(50, 12, 5)
	assert.Len(t, exts, 50)

	seen := make(map[string]bool)
	for _, ext := range exts {
		assert.LessOrEqual(t, len(ext), 5)
		key := strings.Join(ext, ",")
		assert.False(t, seen[key], "duplicate extension %q", key)
		seen[key] = true
	}
}

func TestSolution_Deterministic(t *testing.T) {
	a := NewRNG(42).Solution(20, 10, 4)
	b := NewRNG(42).Solution(20, 10, 4)
	assert.Equal(t, a, b)

	rng := NewRNG(42)
	first := rng.Solution(20, 10, 4)
	rng.Reset()
	assert.Equal(t, first, rng.Solution(20, 10, 4))
	assert.Equal(t, int64(42), rng.Seed())
}

func TestSolution_SmallUniverse(t *testing.T) {
	// Only 4 subsets of {a1,a2} exist.
	exts := NewRNG(1).Solution(10, 2, 2)
	assert.LessOrEqual(t, len(exts), 4)
}

func TestShuffle(t *testing.T) {
	rng := NewRNG(7)
	exts := rng.Solution(30, 10, 4)
	shuffled := rng.Shuffle(exts)

	require.Len(t, shuffled, len(exts))
	assert.ElementsMatch(t, canonical(exts), canonical(shuffled))
}

func canonical(exts [][]string) []string {
	out := make([]string, len(exts))
	for i, ext := range exts {
		cp := slices.Clone(ext)
		slices.Sort(cp)
		out[i] = strings.Join(cp, ",")
	}
	return out
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "[[a1,a2],[],[a3]]\n", Format([][]string{{"a1", "a2"}, {}, {"a3"}}))
	assert.Equal(t, "[]\n", Format(nil))
	assert.Equal(t, "[a1,a2]\n", FormatSingle([]string{"a1", "a2"}))
}

func TestWriteCompressed(t *testing.T) {
	dir := t.TempDir()
	content := Format([][]string{{"a1"}, {"a2", "a3"}})

	for _, codec := range []compress.Codec{compress.None, compress.Gzip, compress.Zstd, compress.LZ4} {
		t.Run(codec.String(), func(t *testing.T) {
			path := WriteCompressed(t, dir, "sol-"+codec.String(), codec, content)

			raw, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, codec, compress.Detect(raw))

			rc, _, err := compress.NewReader(bytes.NewReader(raw))
			require.NoError(t, err)
			defer rc.Close()

			got, err := io.ReadAll(rc)
			require.NoError(t, err)
			assert.Equal(t, content, string(got))
		})
	}
}
