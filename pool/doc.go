// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package pool implements a fixed-capacity, segregated block-pool allocator
over a single statically sized byte region.

A caller declares up to MaxClasses size classes once, by calling Init. From
then on Allocate and Free hand out and recycle fixed-size blocks drawn
exclusively from the allocator's own backing array; there is never any
recourse to the host allocator, the heap never grows, and no two blocks are
ever coalesced or split. The payoff is deterministic O(1) allocation and
freeing and a bounded, known-in-advance memory footprint, which is what
makes the type suitable for constrained or real-time callers.

The allocator is not safe for concurrent use; see the poolsafe package for
a mutex-guarded wrapper.
*/
package pool
