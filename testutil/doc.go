// Package testutil provides testing utilities for extcheck.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating random solutions and writing them to
// disk, optionally compressed.
//
// # Random Solutions
//
//	rng := testutil.NewRNG(seed)
//	exts := rng.Solution(100, 40, 8)    // 100 distinct extensions over a1..a40
//	shuffled := rng.Shuffle(exts)       // same solution, different order
//
// # Fixtures
//
//	path := testutil.WriteSolution(t, dir, "ref.txt", testutil.Format(exts))
//	path = testutil.WriteCompressed(t, dir, "ref.txt.zst", compress.Zstd, testutil.Format(exts))
package testutil
