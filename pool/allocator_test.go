// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pool

import (
	"flag"
	"math/rand"
	"testing"
)

var (
	rndTestN      = flag.Int("N", 2000, "pool rnd test operation count")
	rndTestSeed   = flag.Int64("seed", 1, "pool rnd test PRNG seed")
	rndTestMaxReq = flag.Int("maxreq", 512, "pool rnd test maximum request size")
)

func TestInitBoundary(t *testing.T) {
	var a Allocator

	if a.Init(nil) {
		t.Fatal("Init(nil) unexpectedly succeeded")
	}

	if a.Init([]int{}) {
		t.Fatal("Init([]) unexpectedly succeeded")
	}

	big := make([]int, MaxClasses+1)
	for i := range big {
		big[i] = 1
	}
	if a.Init(big) {
		t.Fatal("Init with 256 classes unexpectedly succeeded")
	}

	if a.Init([]int{4, 0, 8}) {
		t.Fatal("Init with a zero size unexpectedly succeeded")
	}

	if a.Init([]int{HeapSize - 2}) {
		t.Fatal("Init with an oversized class unexpectedly succeeded")
	}

	if !a.Init([]int{HeapSize - HeaderSize}) {
		t.Fatal("Init with the maximal single class size unexpectedly failed")
	}

	if p, ok := a.Allocate(HeapSize - HeaderSize); !ok || p == NullPtr {
		t.Fatal("Allocate of the single maximal block failed")
	}
}

func TestExhaustSmallestClass(t *testing.T) {
	var a Allocator
	if !a.Init([]int{1}) {
		t.Fatal("Init failed")
	}

	const want = HeapSize / (1 + HeaderSize)
	got := 0
	for {
		if _, ok := a.Allocate(1); !ok {
			break
		}
		got++
	}

	if got != want {
		t.Fatalf("got %d successful allocations, want %d", got, want)
	}

	if _, ok := a.Allocate(1); ok {
		t.Fatal("allocation unexpectedly succeeded after exhaustion")
	}
}

func TestBestFitSpill(t *testing.T) {
	var a Allocator
	if !a.Init([]int{1, 2, 6}) {
		t.Fatal("Init failed")
	}

	p, ok := a.Allocate(4)
	if !ok {
		t.Fatal("Allocate(4) unexpectedly failed")
	}

	// The size-1 and size-2 classes cannot serve a 4-byte request; only
	// the size-6 class can.
	classIdx := -1
	for i := 0; i < a.ClassCount(); i++ {
		lo, hi := a.partitionRange(i)
		off := int(p) - HeaderSize
		if off >= lo && off < hi {
			classIdx = i
			break
		}
	}
	if classIdx == -1 || a.ClassSize(classIdx) != 6 {
		t.Fatalf("Allocate(4) was not served by the size-6 class (class index %d)", classIdx)
	}
}

func TestFreeReuseIdentity(t *testing.T) {
	var a Allocator
	if !a.Init([]int{50, 3, 24, 8}) {
		t.Fatal("Init failed")
	}

	p1, ok := a.Allocate(24)
	assertOK(t, ok, "allocate(24) #1")
	if _, ok := a.Allocate(6); !ok {
		t.Fatal("allocate(6) failed")
	}
	p3, ok := a.Allocate(2)
	assertOK(t, ok, "allocate(2)")
	if _, ok := a.Allocate(20); !ok {
		t.Fatal("allocate(20) failed")
	}
	p5, ok := a.Allocate(25)
	assertOK(t, ok, "allocate(25)")

	a.Free(p1)
	a.Free(p3)
	a.Free(p5)

	if got, ok := a.Allocate(2); !ok || got != p3 {
		t.Fatalf("Allocate(2) after free = %v, %v, want %v, true", got, ok, p3)
	}
	if got, ok := a.Allocate(24); !ok || got != p1 {
		t.Fatalf("Allocate(24) after free = %v, %v, want %v, true", got, ok, p1)
	}
	if got, ok := a.Allocate(25); !ok || got != p5 {
		t.Fatalf("Allocate(25) after free = %v, %v, want %v, true", got, ok, p5)
	}
}

func assertOK(t *testing.T, ok bool, what string) {
	t.Helper()
	if !ok {
		t.Fatalf("%s unexpectedly failed", what)
	}
}

func TestDuplicateSizes(t *testing.T) {
	sizes := make([]int, 128)
	for i := range sizes {
		sizes[i] = 509
	}

	var a Allocator
	if !a.Init(sizes) {
		t.Fatal("Init with 128 duplicate sizes failed")
	}

	got := 0
	for {
		if _, ok := a.Allocate(1); !ok {
			break
		}
		got++
	}

	if got != 128 {
		t.Fatalf("got %d successful allocations of size 1, want 128", got)
	}
}

func TestLayoutArithmeticUneven(t *testing.T) {
	var a Allocator
	if !a.Init([]int{53360, 1}) {
		t.Fatal("Init failed")
	}

	h, ok := a.Allocate(2)
	assertOK(t, ok, "allocate(2)")

	want := []Ptr{h + 53363, h + 53367, h + 53371}
	for _, w := range want {
		got, ok := a.Allocate(1)
		assertOK(t, ok, "allocate(1)")
		if got != w {
			t.Fatalf("Allocate(1) = %d, want %d", got, w)
		}
	}
}

func TestFullCycle(t *testing.T) {
	var a Allocator
	if !a.Init([]int{1}) {
		t.Fatal("Init failed")
	}

	const want = HeapSize / (1 + HeaderSize)

	for pass := 0; pass < 2; pass++ {
		var ptrs []Ptr
		for {
			p, ok := a.Allocate(1)
			if !ok {
				break
			}
			ptrs = append(ptrs, p)
		}
		if len(ptrs) != want {
			t.Fatalf("pass %d: got %d allocations, want %d", pass, len(ptrs), want)
		}
		for _, p := range ptrs {
			a.Free(p)
		}
	}
}

func TestStatsAndVerify(t *testing.T) {
	var a Allocator
	if !a.Init([]int{50, 3, 24, 8}) {
		t.Fatal("Init failed")
	}

	if err := a.Verify(); err != nil {
		t.Fatalf("Verify after Init: %v", err)
	}

	var held []Ptr
	for i := 0; i < 5; i++ {
		p, ok := a.Allocate(3)
		if !ok {
			break
		}
		held = append(held, p)
	}

	if err := a.Verify(); err != nil {
		t.Fatalf("Verify after allocating: %v", err)
	}

	stats := a.Stats()
	total := 0
	for _, cs := range stats {
		if cs.AllocCount()+cs.FreeCount != cs.Blocks {
			t.Fatalf("class %+v: alloc+free != blocks", cs)
		}
		total += cs.AllocCount()
	}
	if total != len(held) {
		t.Fatalf("Stats reports %d allocated blocks, want %d", total, len(held))
	}

	for _, p := range held {
		a.Free(p)
	}
	if err := a.Verify(); err != nil {
		t.Fatalf("Verify after freeing: %v", err)
	}
}

// TestAllocatorRnd is a randomized paranoid exercise of Allocate/Free: it
// keeps its own model of which blocks are live, rejects any Allocate that
// returns an already-live pointer, and after the last operation runs
// Verify and checks that the allocated-block count from Stats matches the
// model. It is deliberately similar in shape to the
// teacher's own random allocator test, trimmed to this package's
// fixed-size-class world.
func TestAllocatorRnd(t *testing.T) {
	rng := rand.New(rand.NewSource(*rndTestSeed))

	sizes := make([]int, 1+rng.Intn(20))
	for i := range sizes {
		sizes[i] = 1 + rng.Intn(*rndTestMaxReq)
	}

	var a Allocator
	if !a.Init(sizes) {
		t.Skip("random size list did not fit the heap, skipping")
	}

	live := map[Ptr]int{} // ptr -> requested size

	for op := 0; op < *rndTestN; op++ {
		if len(live) == 0 || rng.Intn(2) == 0 {
			n := 1 + rng.Intn(*rndTestMaxReq)
			p, ok := a.Allocate(n)
			if ok {
				if _, dup := live[p]; dup {
					t.Fatalf("Allocate returned a pointer already live: %v", p)
				}
				live[p] = n
			}
			continue
		}

		for p := range live {
			a.Free(p)
			delete(live, p)
			break
		}
	}

	if err := a.Verify(); err != nil {
		t.Fatalf("Verify after random ops: %v", err)
	}

	total := 0
	for _, cs := range a.Stats() {
		total += cs.AllocCount()
	}
	if total != len(live) {
		t.Fatalf("Stats reports %d allocated blocks, want %d (model)", total, len(live))
	}
}
