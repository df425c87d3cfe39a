// ABOUTME: Ordered iteration over a B+tree
// ABOUTME: SeekLE positions on a key; Next walks leaves left to right

package btree

import "bytes"

// Iter walks a tree in key order. It is invalidated by any write.
type Iter struct {
	tree *Tree
	path []bnode  // root to current leaf
	pos  []uint16 // index at each level
}

// NewIterator returns an unpositioned iterator.
func (t *Tree) NewIterator() *Iter {
	return &Iter{
		tree: t,
		path: make([]bnode, 0, 8),
		pos:  make([]uint16, 0, 8),
	}
}

// SeekLE positions the iterator at the last key <= key. It returns false for
// an empty tree.
func (it *Iter) SeekLE(key []byte) bool {
	it.path = it.path[:0]
	it.pos = it.pos[:0]
	if it.tree.root == 0 {
		return false
	}

	n := bnode(it.tree.pages.Get(it.tree.root))
	for {
		it.path = append(it.path, n)
		idx := lookupLE(n, key)
		it.pos = append(it.pos, idx)
		if n.btype() == nodeLeaf {
			return true
		}
		n = bnode(it.tree.pages.Get(n.getPtr(idx)))
	}
}

// Valid reports whether the iterator is on a key.
func (it *Iter) Valid() bool {
	if len(it.path) == 0 {
		return false
	}
	return it.pos[len(it.pos)-1] < it.path[len(it.path)-1].nkeys()
}

func (it *Iter) Key() []byte {
	if !it.Valid() {
		return nil
	}
	return it.path[len(it.path)-1].getKey(it.pos[len(it.pos)-1])
}

func (it *Iter) Val() []byte {
	if !it.Valid() {
		return nil
	}
	return it.path[len(it.path)-1].getVal(it.pos[len(it.pos)-1])
}

// Next moves to the following key. It returns false past the last key.
func (it *Iter) Next() bool {
	if len(it.path) == 0 {
		return false
	}

	leaf := len(it.pos) - 1
	it.pos[leaf]++
	if it.pos[leaf] < it.path[leaf].nkeys() {
		return true
	}

	// Leaf exhausted: climb until a parent has another kid, then go down
	// its leftmost edge.
	it.path = it.path[:leaf]
	it.pos = it.pos[:leaf]
	for len(it.pos) > 0 {
		top := len(it.pos) - 1
		it.pos[top]++
		if it.pos[top] < it.path[top].nkeys() {
			return it.descendLeftmost()
		}
		it.path = it.path[:top]
		it.pos = it.pos[:top]
	}
	return false
}

func (it *Iter) descendLeftmost() bool {
	for {
		top := len(it.path) - 1
		kid := bnode(it.tree.pages.Get(it.path[top].getPtr(it.pos[top])))
		it.path = append(it.path, kid)
		it.pos = append(it.pos, 0)
		if kid.btype() == nodeLeaf {
			return true
		}
	}
}

// Scan calls fn for every key >= start in order until fn returns false. The
// internal sentinel key is never reported.
func (t *Tree) Scan(start []byte, fn func(key, val []byte) bool) {
	it := t.NewIterator()
	if !it.SeekLE(start) {
		return
	}
	if bytes.Compare(it.Key(), start) < 0 || len(it.Key()) == 0 {
		if !it.Next() {
			return
		}
	}
	for it.Valid() {
		if !fn(it.Key(), it.Val()) {
			return
		}
		if !it.Next() {
			return
		}
	}
}

// ScanPrefix calls fn for every key starting with prefix, in order, until fn
// returns false.
func (t *Tree) ScanPrefix(prefix []byte, fn func(key, val []byte) bool) {
	t.Scan(prefix, func(key, val []byte) bool {
		if !bytes.HasPrefix(key, prefix) {
			return false
		}
		return fn(key, val)
	})
}
