// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pool

import (
	"sort"

	"github.com/cznic/sortutil"
)

// sortedDescending returns a copy of sizes sorted largest-first. Duplicates
// are preserved; ties are broken arbitrarily, as sort.Sort makes no
// stability guarantee and none is required here.
//
// The comparison is performed on the real int64 value of each size, never
// on a byte-reinterpretation of the slice, to sidestep the endianness
// type-punning pitfall a naive port of the original comparator would fall
// into.
func sortedDescending(sizes []int) []int64 {
	a := make(sortutil.Int64Slice, len(sizes))
	for i, s := range sizes {
		a[i] = int64(s)
	}
	sort.Sort(sort.Reverse(a))
	return a
}
