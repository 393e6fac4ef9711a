// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pool

import "encoding/binary"

// The block header is three bytes: a 16-bit next-free-payload offset
// followed by an 8-bit partition index. A Go struct{ next uint16; part
// uint8 } would be padded to four bytes by the compiler's alignment rules,
// which would break the block stride (size+3) the rest of the package
// depends on, so the header is packed by hand into the heap array instead
// of ever being materialized as a struct.

// headerOf returns the offset of the header belonging to the block whose
// payload starts at payload.
func headerOf(payload uint16) uint16 {
	return payload - HeaderSize
}

// payloadOf returns the offset of the payload belonging to the block whose
// header starts at header.
func payloadOf(header uint16) uint16 {
	return header + HeaderSize
}

// writeHeader stores a block header at offset header: next is the payload
// offset of the next free block in the same partition (0 if none), and
// part is the owning class's index.
func writeHeader(heap []byte, header uint16, next uint16, part uint8) {
	binary.LittleEndian.PutUint16(heap[header:header+2], next)
	heap[header+2] = part
}

// headerNext reads the next-free-payload field of the header at offset
// header.
func headerNext(heap []byte, header uint16) uint16 {
	return binary.LittleEndian.Uint16(heap[header : header+2])
}

// setHeaderNext overwrites the next-free-payload field of the header at
// offset header, leaving the partition index untouched.
func setHeaderNext(heap []byte, header uint16, next uint16) {
	binary.LittleEndian.PutUint16(heap[header:header+2], next)
}

// headerPartition reads the partition-index field of the header at offset
// header.
func headerPartition(heap []byte, header uint16) uint8 {
	return heap[header+2]
}
