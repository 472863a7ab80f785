// Package mmap maps local solution files read-only into memory.
//
// Solution files are scanned once from front to back, so a mapping is
// usually opened with a sequential access hint:
//
//	m, err := mmap.Open("reference.txt")
//	if err != nil { ... }
//	defer m.Close()
//
//	_ = m.Advise(mmap.AccessSequential)
//	r := io.NewSectionReader(m, 0, int64(m.Size()))
//
// On Unix the file is mapped with mmap(2) and hints go to madvise(2).
// Other platforms read the file into an owned buffer and ignore hints.
package mmap
