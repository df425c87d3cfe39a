// ABOUTME: B+tree page layout and the copy-on-write node helpers
// ABOUTME: A page is a byte slice: header, child pointers, offsets, then key/value pairs

package btree

import (
	"bytes"
	"encoding/binary"
)

const (
	nodeInternal = 1 // internal pages carry child pointers and no values
	nodeLeaf     = 2 // leaf pages carry values
)

const (
	headerSize = 4

	// PageSize is the size of one tree page.
	PageSize = 4096
	// MaxKeySize and MaxValSize bound a single entry so it always fits a page.
	MaxKeySize = 1000
	MaxValSize = 3000
)

// bnode is one page. Layout:
//
//	| type | nkeys | pointers   | offsets    | key-values |
//	| 2B   | 2B    | nkeys * 8B | nkeys * 2B | ...        |
//
// and each key-value is | klen 2B | vlen 2B | key | val |.
type bnode []byte

func (n bnode) btype() uint16 {
	return binary.LittleEndian.Uint16(n[0:2])
}

func (n bnode) nkeys() uint16 {
	return binary.LittleEndian.Uint16(n[2:4])
}

func (n bnode) setHeader(btype uint16, nkeys uint16) {
	binary.LittleEndian.PutUint16(n[0:2], btype)
	binary.LittleEndian.PutUint16(n[2:4], nkeys)
}

func (n bnode) getPtr(idx uint16) uint64 {
	if idx >= n.nkeys() {
		panic("btree: pointer index out of range")
	}
	pos := headerSize + 8*idx
	return binary.LittleEndian.Uint64(n[pos:])
}

func (n bnode) setPtr(idx uint16, val uint64) {
	if idx >= n.nkeys() {
		panic("btree: pointer index out of range")
	}
	pos := headerSize + 8*idx
	binary.LittleEndian.PutUint64(n[pos:], val)
}

func offsetPos(n bnode, idx uint16) uint16 {
	if idx < 1 || idx > n.nkeys() {
		panic("btree: offset index out of range")
	}
	return headerSize + 8*n.nkeys() + 2*(idx-1)
}

// getOffset is where the idx-th pair starts, relative to the first pair.
func (n bnode) getOffset(idx uint16) uint16 {
	if idx == 0 {
		return 0
	}
	return binary.LittleEndian.Uint16(n[offsetPos(n, idx):])
}

func (n bnode) setOffset(idx uint16, offset uint16) {
	binary.LittleEndian.PutUint16(n[offsetPos(n, idx):], offset)
}

func (n bnode) kvPos(idx uint16) uint16 {
	if idx > n.nkeys() {
		panic("btree: key index out of range")
	}
	return headerSize + 8*n.nkeys() + 2*n.nkeys() + n.getOffset(idx)
}

func (n bnode) getKey(idx uint16) []byte {
	if idx >= n.nkeys() {
		panic("btree: key index out of range")
	}
	pos := n.kvPos(idx)
	klen := binary.LittleEndian.Uint16(n[pos:])
	return n[pos+4:][:klen]
}

func (n bnode) getVal(idx uint16) []byte {
	if idx >= n.nkeys() {
		panic("btree: key index out of range")
	}
	pos := n.kvPos(idx)
	klen := binary.LittleEndian.Uint16(n[pos+0:])
	vlen := binary.LittleEndian.Uint16(n[pos+2:])
	return n[pos+4+klen:][:vlen]
}

// nbytes is the used size of the page.
func (n bnode) nbytes() uint16 {
	return n.kvPos(n.nkeys())
}

// lookupLE returns the index of the last key <= key. The first key of every
// page is <= any key routed to it, so the result is always valid.
func lookupLE(n bnode, key []byte) uint16 {
	nkeys := n.nkeys()
	found := uint16(0)
	for i := uint16(1); i < nkeys; i++ {
		cmp := bytes.Compare(n.getKey(i), key)
		if cmp <= 0 {
			found = i
		}
		if cmp >= 0 {
			break
		}
	}
	return found
}

// appendRange copies n pairs from old[srcOld:] into dst[dstNew:].
func appendRange(dst bnode, old bnode, dstNew uint16, srcOld uint16, n uint16) {
	if srcOld+n > old.nkeys() {
		panic("btree: source range out of bounds")
	}
	if dstNew+n > dst.nkeys() {
		panic("btree: destination range out of bounds")
	}
	if n == 0 {
		return
	}

	if old.btype() == nodeInternal {
		for i := uint16(0); i < n; i++ {
			dst.setPtr(dstNew+i, old.getPtr(srcOld+i))
		}
	}

	dstBegin := dst.getOffset(dstNew)
	srcBegin := old.getOffset(srcOld)
	for i := uint16(1); i <= n; i++ {
		dst.setOffset(dstNew+i, dstBegin+old.getOffset(srcOld+i)-srcBegin)
	}

	begin := old.kvPos(srcOld)
	end := old.kvPos(srcOld + n)
	copy(dst[dst.kvPos(dstNew):], old[begin:end])
}

// appendKV writes one pair at idx. Pairs must be appended in order.
func appendKV(dst bnode, idx uint16, ptr uint64, key []byte, val []byte) {
	dst.setPtr(idx, ptr)

	pos := dst.kvPos(idx)
	binary.LittleEndian.PutUint16(dst[pos+0:], uint16(len(key)))
	binary.LittleEndian.PutUint16(dst[pos+2:], uint16(len(val)))
	copy(dst[pos+4:], key)
	copy(dst[pos+4+uint16(len(key)):], val)

	dst.setOffset(idx+1, dst.getOffset(idx)+4+uint16(len(key)+len(val)))
}

func init() {
	if headerSize+8+2+4+MaxKeySize+MaxValSize > PageSize {
		panic("btree: a maximal entry does not fit one page")
	}
}
