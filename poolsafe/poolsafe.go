// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package poolsafe wraps a pool.Allocator behind a single mutex so that it
// can be shared by multiple goroutines.
//
// pool.Allocator itself is deliberately not safe for concurrent use: none
// of its three operations block, suspend, or take a context, and adding
// locking to the core would cost every single-threaded caller a mutex they
// don't need. Callers who do need concurrent access serialize through
// Allocator here instead, the same way package dbm serialized access to
// its lldb.Allocator behind a single "big kernel lock".
package poolsafe

import (
	"sync"

	"github.com/premwong/pool-allocator/pool"
)

// Allocator serializes Init, Allocate, and Free calls to an embedded
// pool.Allocator behind a single mutex (the "big lock"). The heap array
// and the partition table are one unit of shared state and are always
// locked together, matching the requirement that a caller's own
// mutual-exclusion discipline protect them as a pair.
type Allocator struct {
	bkl sync.Mutex
	a   pool.Allocator
}

// New returns a ready-to-use, concurrency-safe Allocator. Init must still
// be called before Allocate will return anything but failure.
func New() *Allocator {
	return &Allocator{}
}

// Init behaves as pool.Allocator.Init, under the big lock.
func (s *Allocator) Init(sizes []int) bool {
	s.bkl.Lock()
	defer s.bkl.Unlock()
	return s.a.Init(sizes)
}

// Allocate behaves as pool.Allocator.Allocate, under the big lock.
func (s *Allocator) Allocate(n int) (pool.Ptr, bool) {
	s.bkl.Lock()
	defer s.bkl.Unlock()
	return s.a.Allocate(n)
}

// Free behaves as pool.Allocator.Free, under the big lock.
func (s *Allocator) Free(p pool.Ptr) {
	s.bkl.Lock()
	defer s.bkl.Unlock()
	s.a.Free(p)
}

// Bytes behaves as pool.Allocator.Bytes, under the big lock. The returned
// slice aliases the underlying heap; callers must stop using it no later
// than their next call to Free(p) or Init, same as with the unwrapped
// allocator — the lock only protects the three operations against each
// other, it does not extend a borrowed slice's lifetime.
func (s *Allocator) Bytes(p pool.Ptr, n int) []byte {
	s.bkl.Lock()
	defer s.bkl.Unlock()
	return s.a.Bytes(p, n)
}

// Stats behaves as pool.Allocator.Stats, under the big lock.
func (s *Allocator) Stats() pool.Stats {
	s.bkl.Lock()
	defer s.bkl.Unlock()
	return s.a.Stats()
}
