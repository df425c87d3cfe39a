// ABOUTME: Copy-on-write B+tree over pages supplied by a Pager
// ABOUTME: Insert, Get and Delete; pages are never modified once written

package btree

import (
	"bytes"
	"errors"
	"fmt"
)

var (
	ErrEmptyKey      = errors.New("btree: empty key")
	ErrKeyTooLarge   = errors.New("btree: key too large")
	ErrValueTooLarge = errors.New("btree: value too large")
)

// Pager hands out, resolves and frees pages.
type Pager interface {
	Get(ptr uint64) []byte
	New(page []byte) uint64
	Del(ptr uint64)
}

// Tree is a B+tree of byte keys. It is not safe for concurrent use.
type Tree struct {
	root  uint64
	pages Pager
}

// New returns an empty tree storing its pages in p.
func New(p Pager) *Tree {
	return &Tree{pages: p}
}

// Root is the page number of the root, zero for an empty tree.
func (t *Tree) Root() uint64 { return t.root }

// Get returns the value stored under key.
func (t *Tree) Get(key []byte) ([]byte, bool) {
	if t.root == 0 {
		return nil, false
	}
	return t.get(bnode(t.pages.Get(t.root)), key)
}

func (t *Tree) get(n bnode, key []byte) ([]byte, bool) {
	idx := lookupLE(n, key)
	switch n.btype() {
	case nodeLeaf:
		if bytes.Equal(key, n.getKey(idx)) {
			return n.getVal(idx), true
		}
		return nil, false
	case nodeInternal:
		return t.get(bnode(t.pages.Get(n.getPtr(idx))), key)
	default:
		panic("btree: bad node type")
	}
}

func checkEntry(key, val []byte) error {
	switch {
	case len(key) == 0:
		return ErrEmptyKey
	case len(key) > MaxKeySize:
		return fmt.Errorf("%w: %d bytes", ErrKeyTooLarge, len(key))
	case len(val) > MaxValSize:
		return fmt.Errorf("%w: %d bytes", ErrValueTooLarge, len(val))
	}
	return nil
}

// Insert stores val under key, replacing any previous value.
func (t *Tree) Insert(key []byte, val []byte) error {
	if err := checkEntry(key, val); err != nil {
		return err
	}
	if t.root == 0 {
		// The empty sentinel key covers the whole key space.
		root := bnode(make([]byte, PageSize))
		root.setHeader(nodeLeaf, 2)
		appendKV(root, 0, 0, nil, nil)
		appendKV(root, 1, 0, key, val)
		t.root = t.pages.New(root)
		return nil
	}

	n := t.insert(bnode(t.pages.Get(t.root)), key, val)
	nsplit, split := split3(n)
	t.pages.Del(t.root)
	if nsplit > 1 {
		root := bnode(make([]byte, PageSize))
		root.setHeader(nodeInternal, nsplit)
		for i, kid := range split[:nsplit] {
			appendKV(root, uint16(i), t.pages.New(kid), kid.getKey(0), nil)
		}
		t.root = t.pages.New(root)
	} else {
		t.root = t.pages.New(split[0])
	}
	return nil
}

// insert returns a copy of n with key set. The copy may exceed one page.
func (t *Tree) insert(n bnode, key []byte, val []byte) bnode {
	out := bnode(make([]byte, 2*PageSize))
	idx := lookupLE(n, key)
	switch n.btype() {
	case nodeLeaf:
		if bytes.Equal(key, n.getKey(idx)) {
			leafUpdate(out, n, idx, key, val)
		} else {
			leafInsert(out, n, idx+1, key, val)
		}
	case nodeInternal:
		kptr := n.getPtr(idx)
		kid := t.insert(bnode(t.pages.Get(kptr)), key, val)
		nsplit, split := split3(kid)
		t.pages.Del(kptr)
		t.replaceKids(out, n, idx, split[:nsplit]...)
	default:
		panic("btree: bad node type")
	}
	return out
}

func leafInsert(dst bnode, old bnode, idx uint16, key []byte, val []byte) {
	dst.setHeader(nodeLeaf, old.nkeys()+1)
	appendRange(dst, old, 0, 0, idx)
	appendKV(dst, idx, 0, key, val)
	appendRange(dst, old, idx+1, idx, old.nkeys()-idx)
}

func leafUpdate(dst bnode, old bnode, idx uint16, key []byte, val []byte) {
	dst.setHeader(nodeLeaf, old.nkeys())
	appendRange(dst, old, 0, 0, idx)
	appendKV(dst, idx, 0, key, val)
	appendRange(dst, old, idx+1, idx+1, old.nkeys()-(idx+1))
}

// replaceKids swaps the link at idx for one link per kid.
func (t *Tree) replaceKids(dst bnode, old bnode, idx uint16, kids ...bnode) {
	inc := uint16(len(kids))
	dst.setHeader(nodeInternal, old.nkeys()+inc-1)
	appendRange(dst, old, 0, 0, idx)
	for i, kid := range kids {
		appendKV(dst, idx+uint16(i), t.pages.New(kid), kid.getKey(0), nil)
	}
	appendRange(dst, old, idx+inc, idx+1, old.nkeys()-(idx+1))
}

// split3 cuts an oversized node into at most three pages.
func split3(old bnode) (uint16, [3]bnode) {
	if old.nbytes() <= PageSize {
		return 1, [3]bnode{old[:PageSize]}
	}
	left := bnode(make([]byte, 2*PageSize))
	right := bnode(make([]byte, PageSize))
	split2(left, right, old)
	if left.nbytes() <= PageSize {
		return 2, [3]bnode{left[:PageSize], right}
	}
	leftleft := bnode(make([]byte, PageSize))
	middle := bnode(make([]byte, PageSize))
	split2(leftleft, middle, left)
	return 3, [3]bnode{leftleft, middle, right}
}

// split2 fills left to about three quarters of a page and moves the rest right.
func split2(left bnode, right bnode, old bnode) {
	nkeys := old.nkeys()
	nleft := uint16(0)
	for i := uint16(0); i < nkeys; i++ {
		nleft = i + 1
		if old.kvPos(nleft) >= PageSize*3/4 {
			break
		}
	}
	left.setHeader(old.btype(), nleft)
	appendRange(left, old, 0, 0, nleft)
	right.setHeader(old.btype(), nkeys-nleft)
	appendRange(right, old, 0, nleft, nkeys-nleft)
}

// Delete removes key and reports whether it was present.
func (t *Tree) Delete(key []byte) bool {
	if t.root == 0 || len(key) == 0 {
		return false
	}
	updated := t.delete(bnode(t.pages.Get(t.root)), key)
	if len(updated) == 0 {
		return false
	}
	t.pages.Del(t.root)
	if updated.btype() == nodeInternal && updated.nkeys() == 1 {
		t.root = updated.getPtr(0)
	} else {
		t.root = t.pages.New(updated)
	}
	return true
}

func (t *Tree) delete(n bnode, key []byte) bnode {
	idx := lookupLE(n, key)
	switch n.btype() {
	case nodeLeaf:
		if !bytes.Equal(key, n.getKey(idx)) {
			return nil
		}
		out := bnode(make([]byte, PageSize))
		out.setHeader(nodeLeaf, n.nkeys()-1)
		appendRange(out, n, 0, 0, idx)
		appendRange(out, n, idx, idx+1, n.nkeys()-(idx+1))
		return out
	case nodeInternal:
		return t.deleteFromKid(n, idx, key)
	default:
		panic("btree: bad node type")
	}
}

func (t *Tree) deleteFromKid(n bnode, idx uint16, key []byte) bnode {
	kptr := n.getPtr(idx)
	updated := t.delete(bnode(t.pages.Get(kptr)), key)
	if len(updated) == 0 {
		return nil
	}
	t.pages.Del(kptr)

	out := bnode(make([]byte, PageSize))
	dir, sibling := t.mergeTarget(n, idx, updated)
	switch {
	case dir < 0:
		merged := bnode(make([]byte, PageSize))
		merge(merged, sibling, updated)
		t.pages.Del(n.getPtr(idx - 1))
		replace2Kids(out, n, idx-1, t.pages.New(merged), merged.getKey(0))
	case dir > 0:
		merged := bnode(make([]byte, PageSize))
		merge(merged, updated, sibling)
		t.pages.Del(n.getPtr(idx + 1))
		replace2Kids(out, n, idx, t.pages.New(merged), merged.getKey(0))
	case updated.nkeys() == 0:
		out.setHeader(nodeInternal, 0)
	default:
		t.replaceKids(out, n, idx, updated)
	}
	return out
}

// mergeTarget picks a sibling to absorb a kid that shrank below a quarter page.
func (t *Tree) mergeTarget(n bnode, idx uint16, updated bnode) (int, bnode) {
	if updated.nbytes() > PageSize/4 {
		return 0, nil
	}
	if idx > 0 {
		sibling := bnode(t.pages.Get(n.getPtr(idx - 1)))
		if sibling.nbytes()+updated.nbytes()-headerSize <= PageSize {
			return -1, sibling
		}
	}
	if idx+1 < n.nkeys() {
		sibling := bnode(t.pages.Get(n.getPtr(idx + 1)))
		if sibling.nbytes()+updated.nbytes()-headerSize <= PageSize {
			return +1, sibling
		}
	}
	return 0, nil
}

func merge(dst bnode, left bnode, right bnode) {
	dst.setHeader(left.btype(), left.nkeys()+right.nkeys())
	appendRange(dst, left, 0, 0, left.nkeys())
	appendRange(dst, right, left.nkeys(), 0, right.nkeys())
}

func replace2Kids(dst bnode, old bnode, idx uint16, ptr uint64, key []byte) {
	dst.setHeader(nodeInternal, old.nkeys()-1)
	appendRange(dst, old, 0, 0, idx)
	appendKV(dst, idx, ptr, key, nil)
	appendRange(dst, old, idx+1, idx+2, old.nkeys()-(idx+2))
}
