// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pool

import "github.com/cznic/mathutil"

// Init lays out the heap into len(sizes) size classes and threads each
// class's free list, discarding any partitioning a previous call to Init
// produced. It reports whether the layout succeeded; on failure the
// allocator is left exactly as it was before the call (the layout is built
// in a scratch buffer and only swapped in on full success), so a failed
// Init never leaves the allocator half-initialized.
//
// Init fails, returning false, if sizes is nil or empty, if len(sizes)
// exceeds MaxClasses, if any size is not in [1, HeapSize-HeaderSize], or if
// the classes as laid out by the rule below would not fit in HeapSize
// bytes.
//
// Classes are sorted by size, descending, before being laid out; ties are
// broken arbitrarily and duplicate sizes are preserved as distinct
// classes. Walking classes largest-first and giving each one either its
// equal share of what remains (rounded down to a whole number of blocks)
// or one block, whichever is bigger, lets the few large classes placed
// first consume more than their share only when they must, leaving the
// smaller classes that follow at least their fair share of the heap.
func (a *Allocator) Init(sizes []int) bool {
	n := len(sizes)
	if sizes == nil || n == 0 || n > MaxClasses {
		return false
	}
	for _, s := range sizes {
		if s < 1 || s > HeapSize-HeaderSize {
			return false
		}
	}

	sorted := sortedDescending(sizes)

	var heap [HeapSize]byte
	var classSize [MaxClasses]uint16
	var classBlocks [MaxClasses]int
	var classStart [MaxClasses]uint16
	var head [MaxClasses]uint16

	remaining := HeapSize
	cursor := 0
	for i, s64 := range sorted {
		s := int(s64)
		stride := s + HeaderSize
		equalShare := remaining / (n - i)
		partBytes := mathutil.Max(stride, equalShare-(equalShare%stride))
		if partBytes > remaining {
			return false
		}

		classSize[i] = uint16(s)
		classStart[i] = uint16(cursor)
		head[i] = payloadOf(uint16(cursor))

		blocks := 0
		for idx := cursor; idx < cursor+partBytes; idx += stride {
			nextHeader := idx + stride
			var next uint16
			if nextHeader < cursor+partBytes && nextHeader <= 65535-HeaderSize {
				next = payloadOf(uint16(nextHeader))
			}
			writeHeader(heap[:], uint16(idx), next, uint8(i))
			blocks++
		}
		classBlocks[i] = blocks

		cursor += partBytes
		remaining = HeapSize - cursor
	}

	a.heap = heap
	a.classSize = classSize
	a.classBlocks = classBlocks
	a.classStart = classStart
	a.head = head
	a.classCount = n
	return true
}

// Allocate returns a handle to n usable bytes drawn from the smallest
// non-empty class able to serve the request, and true. It returns
// (NullPtr, false) if n is not positive, if n exceeds every configured
// class's block size, or if every class large enough to serve n is
// currently exhausted.
//
// Class selection scans from the smallest class up to the largest,
// stopping at the first non-empty class whose block size is at least n.
// This is best-fit among non-empty classes, not strict best-fit: a
// request that could be served by an exhausted smaller class spills into
// the next larger non-empty one rather than failing while space remains
// elsewhere.
func (a *Allocator) Allocate(n int) (Ptr, bool) {
	if n <= 0 || a.classCount == 0 || n > int(a.classSize[0]) {
		return NullPtr, false
	}

	for i := a.classCount - 1; i >= 0; i-- {
		if int(a.classSize[i]) < n || a.head[i] == 0 {
			continue
		}

		off := a.head[i]
		a.head[i] = headerNext(a.heap[:], headerOf(off))
		return Ptr(off), true
	}

	return NullPtr, false
}

// Free returns the block referenced by p to its owning class's free list.
// p must have been returned by a prior Allocate and not freed since;
// violating that precondition is undefined behavior, as Free has no way to
// tell a valid handle from garbage and does not try.
func (a *Allocator) Free(p Ptr) {
	off := uint16(p)
	header := headerOf(off)
	class := headerPartition(a.heap[:], header)
	setHeaderNext(a.heap[:], header, a.head[class])
	a.head[class] = off
}

// Bytes returns a slice view of the n payload bytes starting at p. It is
// the caller's way to read or write through a handle without the package
// resorting to unsafe.Pointer; it performs no bounds checking against the
// block's actual class size beyond ordinary Go slice bounds checking.
func (a *Allocator) Bytes(p Ptr, n int) []byte {
	off := int(p)
	return a.heap[off : off+n]
}

// ClassCount returns the number of size classes configured by the most
// recent successful Init, or 0 if Init has never succeeded.
func (a *Allocator) ClassCount() int {
	return a.classCount
}

// ClassSize returns the block size, in bytes, of class i. It panics if i
// is out of [0, ClassCount()).
func (a *Allocator) ClassSize(i int) int {
	if i < 0 || i >= a.classCount {
		panic("pool: class index out of range")
	}
	return int(a.classSize[i])
}
