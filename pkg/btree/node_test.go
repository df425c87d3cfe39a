package btree

import (
	"bytes"
	"testing"
)

func leafWith(pairs ...string) bnode {
	n := bnode(make([]byte, PageSize))
	n.setHeader(nodeLeaf, uint16(len(pairs)/2))
	for i := 0; i+1 < len(pairs); i += 2 {
		appendKV(n, uint16(i/2), 0, []byte(pairs[i]), []byte(pairs[i+1]))
	}
	return n
}

func TestNodeHeader(t *testing.T) {
	n := bnode(make([]byte, PageSize))
	n.setHeader(nodeLeaf, 3)
	if n.btype() != nodeLeaf {
		t.Errorf("type = %d, want %d", n.btype(), nodeLeaf)
	}
	if n.nkeys() != 3 {
		t.Errorf("nkeys = %d, want 3", n.nkeys())
	}
}

func TestNodePointers(t *testing.T) {
	n := bnode(make([]byte, PageSize))
	n.setHeader(nodeInternal, 3)
	for i, ptr := range []uint64{100, 200, 300} {
		n.setPtr(uint16(i), ptr)
	}
	for i, want := range []uint64{100, 200, 300} {
		if got := n.getPtr(uint16(i)); got != want {
			t.Errorf("ptr %d = %d, want %d", i, got, want)
		}
	}
}

func TestNodeKeyValues(t *testing.T) {
	n := leafWith("lc qa  0076", "item-1", "lc qa  0077", "item-2", "lc qb  0001", "item-3")
	want := []string{"lc qa  0076", "item-1", "lc qa  0077", "item-2", "lc qb  0001", "item-3"}
	for i := 0; i < 3; i++ {
		if got := n.getKey(uint16(i)); !bytes.Equal(got, []byte(want[2*i])) {
			t.Errorf("key %d = %q, want %q", i, got, want[2*i])
		}
		if got := n.getVal(uint16(i)); !bytes.Equal(got, []byte(want[2*i+1])) {
			t.Errorf("val %d = %q, want %q", i, got, want[2*i+1])
		}
	}
	if size := n.nbytes(); size == 0 || size > PageSize {
		t.Errorf("nbytes = %d", size)
	}
}

func TestLookupLE(t *testing.T) {
	n := leafWith("a", "", "c", "", "e", "", "g", "")
	tests := []struct {
		key  string
		want uint16
	}{
		{"a", 0}, {"b", 0}, {"c", 1}, {"d", 1},
		{"e", 2}, {"f", 2}, {"g", 3}, {"h", 3},
	}
	for _, tt := range tests {
		if got := lookupLE(n, []byte(tt.key)); got != tt.want {
			t.Errorf("lookupLE(%q) = %d, want %d", tt.key, got, tt.want)
		}
	}
}

func TestAppendRange(t *testing.T) {
	old := leafWith("a", "1", "b", "2", "c", "3")
	dst := bnode(make([]byte, PageSize))
	dst.setHeader(nodeLeaf, 2)
	appendRange(dst, old, 0, 1, 2)

	for i, want := range []string{"b", "c"} {
		if got := string(dst.getKey(uint16(i))); got != want {
			t.Errorf("key %d = %q, want %q", i, got, want)
		}
	}
	if got := string(dst.getVal(1)); got != "3" {
		t.Errorf("val 1 = %q, want 3", got)
	}
}
