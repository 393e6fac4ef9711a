// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pool

// Compile-time parameters. These are part of the on-heap layout's ABI;
// changing any of them invalidates the invariants the rest of the package
// relies on.
const (
	// HeapSize is the fixed size, in bytes, of the backing region an
	// Allocator manages.
	HeapSize = 65536

	// MaxClasses is the largest number of size classes Init will accept.
	MaxClasses = 255

	// HeaderSize is the length, in bytes, of the in-band header stored
	// immediately before every block's payload.
	HeaderSize = 3
)

// Ptr is a handle to a block's payload, returned by Allocate and consumed
// by Free and Bytes. It is the block's payload offset from the base of the
// heap. The zero value, NullPtr, never refers to a real block: offset 0 is
// always occupied by the first class's first header, never a payload.
type Ptr uint16

// NullPtr is the sentinel value returned by Allocate on failure. No
// successful Allocate ever returns it.
const NullPtr Ptr = 0

// Allocator is a segregated block-pool allocator over a HeapSize-byte
// array it owns by value. The zero value is an allocator with no size
// classes configured; until Init succeeds, Allocate returns failure and
// Free is undefined per its contract.
//
// Allocator is not safe for concurrent use by multiple goroutines; see
// package poolsafe for a wrapper that is.
type Allocator struct {
	heap [HeapSize]byte

	classSize   [MaxClasses]uint16
	classBlocks [MaxClasses]int
	classStart  [MaxClasses]uint16 // header offset of the class's first block, fixed at Init
	head        [MaxClasses]uint16
	classCount  int
}

// NewAllocator returns a freshly zeroed Allocator. Init must be called
// before Allocate will return anything but failure.
func NewAllocator() *Allocator {
	return &Allocator{}
}
