package btree

import (
	"fmt"
	"testing"
)

func TestIteratorEmpty(t *testing.T) {
	it := NewInMemory().NewIterator()
	if it.SeekLE([]byte("key1")) {
		t.Error("SeekLE on empty tree")
	}
	if it.Valid() {
		t.Error("iterator valid on empty tree")
	}
}

func TestIteratorSeekLE(t *testing.T) {
	h := newHarness()
	h.add(t, "key1", "val1")
	h.add(t, "key3", "val3")
	h.add(t, "key5", "val5")

	it := h.tree.NewIterator()
	if !it.SeekLE([]byte("key3")) || string(it.Key()) != "key3" || string(it.Val()) != "val3" {
		t.Fatalf("SeekLE(key3) at %q", it.Key())
	}
	if !it.SeekLE([]byte("key4")) || string(it.Key()) != "key3" {
		t.Errorf("SeekLE(key4) at %q, want key3", it.Key())
	}
	if !it.SeekLE([]byte("key0")) || len(it.Key()) != 0 {
		t.Errorf("SeekLE(key0) at %q, want the sentinel", it.Key())
	}
}

func TestIteratorNext(t *testing.T) {
	h := newHarness()
	for i := 0; i < 10; i++ {
		h.add(t, fmt.Sprintf("key%02d", i), fmt.Sprintf("val%02d", i))
	}

	it := h.tree.NewIterator()
	if !it.SeekLE([]byte("key00")) {
		t.Fatal("SeekLE failed")
	}
	count := 0
	for it.Valid() {
		if want := fmt.Sprintf("key%02d", count); string(it.Key()) != want {
			t.Errorf("key = %q, want %q", it.Key(), want)
		}
		count++
		more := it.Next()
		if count < 10 && !more {
			t.Fatalf("Next failed at %d", count)
		}
		if count == 10 && more {
			t.Error("Next past the end")
		}
	}
	if count != 10 {
		t.Errorf("visited %d keys, want 10", count)
	}
}

func TestScanAcrossLeaves(t *testing.T) {
	h := newHarness()
	for i := 0; i < 1000; i++ {
		h.add(t, shelfKey(i), fmt.Sprintf("item-%04d", i))
	}

	var got []string
	h.tree.Scan([]byte(shelfKey(100)), func(key, val []byte) bool {
		got = append(got, string(key))
		return len(got) < 500
	})
	if len(got) != 500 {
		t.Fatalf("scanned %d keys, want 500", len(got))
	}
	for i, k := range got {
		if want := shelfKey(100 + i); k != want {
			t.Fatalf("position %d = %q, want %q", i, k, want)
		}
	}
}

func TestScanSkipsSentinel(t *testing.T) {
	h := newHarness()
	h.add(t, "b", "1")
	var keys []string
	h.tree.Scan(nil, func(key, val []byte) bool {
		keys = append(keys, string(key))
		return true
	})
	if len(keys) != 1 || keys[0] != "b" {
		t.Errorf("keys = %q", keys)
	}
}

func TestScanPrefix(t *testing.T) {
	h := newHarness()
	for _, k := range []string{"green/a", "green/b", "law/a", "main/a", "green/c"} {
		h.add(t, k, "")
	}
	var keys []string
	h.tree.ScanPrefix([]byte("green/"), func(key, val []byte) bool {
		keys = append(keys, string(key))
		return true
	})
	want := []string{"green/a", "green/b", "green/c"}
	if fmt.Sprint(keys) != fmt.Sprint(want) {
		t.Errorf("keys = %q, want %q", keys, want)
	}
}
