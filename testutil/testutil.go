package testutil

import (
	"bytes"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/extcheck/internal/compress"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Argument returns the token of the i-th argument.
func Argument(i int) string {
	return fmt.Sprintf("a%d", i+1)
}

// Solution generates up to n distinct extensions over the arguments
// a1..a<universe>, each with at most maxSize members. Members are sorted by
// argument index. Fewer than n extensions are returned when the space of
// distinct extensions is exhausted first.
func (r *RNG) Solution(n, universe, maxSize int) [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()

	maxSize = min(maxSize, universe)
	seen := make(map[string]struct{}, n)
	out := make([][]string, 0, n)

	for attempts := 0; len(out) < n && attempts < n*20; attempts++ {
		size := r.rand.Intn(maxSize + 1)
		idx := r.rand.Perm(universe)[:size]
		slices.Sort(idx)

		ext := make([]string, size)
		for i, a := range idx {
			ext[i] = Argument(a)
		}

		key := strings.Join(ext, ",")
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, ext)
	}

	return out
}

// Shuffle returns a copy of exts with the extensions and the members of
// every extension in random order.
func (r *RNG) Shuffle(exts [][]string) [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([][]string, len(exts))
	for i, ext := range exts {
		cp := slices.Clone(ext)
		r.rand.Shuffle(len(cp), func(a, b int) { cp[a], cp[b] = cp[b], cp[a] })
		out[i] = cp
	}
	r.rand.Shuffle(len(out), func(a, b int) { out[a], out[b] = out[b], out[a] })

	return out
}

// Format renders exts as a list of extensions: [[a1,a2],[a3]].
func Format(exts [][]string) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, ext := range exts {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteByte('[')
		sb.WriteString(strings.Join(ext, ","))
		sb.WriteByte(']')
	}
	sb.WriteString("]\n")
	return sb.String()
}

// FormatSingle renders one bare extension: [a1,a2].
func FormatSingle(ext []string) string {
	return "[" + strings.Join(ext, ",") + "]\n"
}

// WriteSolution writes content to dir/name and returns the path.
func WriteSolution(tb testing.TB, dir, name, content string) string {
	tb.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		tb.Fatalf("write solution %s: %v", path, err)
	}
	return path
}

// WriteCompressed writes content compressed with codec to dir/name and
// returns the path.
func WriteCompressed(tb testing.TB, dir, name string, codec compress.Codec, content string) string {
	tb.Helper()

	data, err := Compress(codec, []byte(content))
	if err != nil {
		tb.Fatalf("compress %s: %v", name, err)
	}
	return WriteSolution(tb, dir, name, string(data))
}

// Compress encodes data with codec.
func Compress(codec compress.Codec, data []byte) ([]byte, error) {
	var buf bytes.Buffer
	var w io.WriteCloser

	switch codec {
	case compress.Gzip:
		w = gzip.NewWriter(&buf)
	case compress.Zstd:
		enc, err := zstd.NewWriter(&buf)
		if err != nil {
			return nil, err
		}
		w = enc
	case compress.LZ4:
		w = lz4.NewWriter(&buf)
	default:
		return bytes.Clone(data), nil
	}

	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
