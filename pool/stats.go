// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pool

import "fmt"

// ClassStats reports the occupancy of a single size class. It can be
// optionally filled by Allocator.Stats.
type ClassStats struct {
	Size      int // block size, in bytes, as passed to Init
	Blocks    int // total blocks laid out for this class at Init
	FreeCount int // blocks currently on the class's free list
}

// AllocCount returns the number of blocks in this class currently held by
// callers (Blocks minus FreeCount).
func (c ClassStats) AllocCount() int {
	return c.Blocks - c.FreeCount
}

// Stats is a snapshot of every class's occupancy, in class index order
// (largest block size first).
type Stats []ClassStats

// Stats walks every class's free list and reports its occupancy. It is
// diagnostic-only: unlike Allocate and Free it is not O(1), it is O(total
// free blocks across all classes), and it is meant for tests and the
// poolstat collaborator rather than the hot path.
func (a *Allocator) Stats() Stats {
	s := make(Stats, a.classCount)
	for i := 0; i < a.classCount; i++ {
		s[i] = ClassStats{
			Size:   int(a.classSize[i]),
			Blocks: a.classBlocks[i],
		}
		for off := a.head[i]; off != 0; {
			s[i].FreeCount++
			off = headerNext(a.heap[:], headerOf(off))
		}
	}
	return s
}

// Verify walks every class's free list and confirms it stays within the
// owning class's offset range, is no longer than the class's block count,
// and never revisits an offset (which would indicate a corrupted or
// cyclic list). It returns the first inconsistency found, or nil if none
// is found.
//
// Verify is an offline integrity check, not a defense the hot-path methods
// rely on: Allocate and Free never call it, and nothing in the package
// calls it automatically. It exists for tests and for callers who want a
// debug-mode sanity check, matching the kind of opt-in validation the
// package's design notes describe.
func (a *Allocator) Verify() error {
	for i := 0; i < a.classCount; i++ {
		stride := int(a.classSize[i]) + HeaderSize
		lo, hi := a.partitionRange(i)
		seen := make(map[uint16]bool, a.classBlocks[i])

		count := 0
		for off := a.head[i]; off != 0; {
			if seen[off] {
				return fmt.Errorf("pool: class %d free list cycles back to offset %d", i, off)
			}
			seen[off] = true

			header := int(headerOf(off))
			if header < lo || header >= hi || (header-lo)%stride != 0 {
				return fmt.Errorf("pool: class %d free block at offset %d lies outside its partition [%d, %d)", i, off, lo, hi)
			}

			count++
			if count > a.classBlocks[i] {
				return fmt.Errorf("pool: class %d free list is longer than its %d laid-out blocks", i, a.classBlocks[i])
			}

			off = headerNext(a.heap[:], headerOf(off))
		}
	}
	return nil
}

// partitionRange returns the half-open byte range [lo, hi) class i's
// blocks occupy, from the start offset and block count Init recorded for
// it.
func (a *Allocator) partitionRange(i int) (lo, hi int) {
	stride := int(a.classSize[i]) + HeaderSize
	lo = int(a.classStart[i])
	hi = lo + a.classBlocks[i]*stride
	return lo, hi
}
