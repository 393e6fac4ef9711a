// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command poolstat builds a pool.Allocator from a comma-separated list of
// size-class sizes, drives it through a small scripted sequence of
// allocate/free calls, and reports per-class occupancy. It exists purely
// as a diagnostics/printing front end over the allocator's public API; it
// has no access to, and makes no assumption about, the allocator's
// internals.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/premwong/pool-allocator/pool"
)

var (
	oSizes = flag.String("sizes", "8,16,32,64", "comma-separated size-class sizes")
	oAlloc = flag.String("alloc", "4,12,40", "comma-separated sequence of allocation request sizes")
)

func main() {
	flag.Parse()
	if err := run(*oSizes, *oAlloc, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "poolstat:", err)
		os.Exit(1)
	}
}

// run is the testable core of the command: it never touches os.Args or
// the flag package directly, so a test can drive it with fixed inputs and
// diff the report text against out.
func run(sizesCSV, allocCSV string, out io.Writer) error {
	sizes, err := parseInts(sizesCSV)
	if err != nil {
		return fmt.Errorf("parsing -sizes: %w", err)
	}

	reqs, err := parseInts(allocCSV)
	if err != nil {
		return fmt.Errorf("parsing -alloc: %w", err)
	}

	var a pool.Allocator
	if !a.Init(sizes) {
		return fmt.Errorf("Init(%v) failed: sizes must be 1..%d entries of 1..%d bytes that fit a %d-byte heap",
			sizes, pool.MaxClasses, pool.HeapSize-pool.HeaderSize, pool.HeapSize)
	}

	for _, n := range reqs {
		p, ok := a.Allocate(n)
		if !ok {
			fmt.Fprintf(out, "allocate(%d): failed (out of memory)\n", n)
			continue
		}
		fmt.Fprintf(out, "allocate(%d): ptr=%d\n", n, p)
	}

	if err := a.Verify(); err != nil {
		return fmt.Errorf("post-run integrity check failed: %w", err)
	}

	fmt.Fprintln(out, "class  size  blocks  free  alloc")
	for i, cs := range a.Stats() {
		fmt.Fprintf(out, "%5d  %4d  %6d  %4d  %5d\n", i, cs.Size, cs.Blocks, cs.FreeCount, cs.AllocCount())
	}
	return nil
}

func parseInts(csv string) ([]int, error) {
	fields := strings.Split(csv, ",")
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("empty list")
	}
	return out, nil
}
