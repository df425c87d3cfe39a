package shelfindex

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/nainya/shelfkey/pkg/callnumber"
)

// DefaultMemoSize is the number of call numbers a Memo keeps by default.
const DefaultMemoSize = 10000

type memoKey struct {
	raw    string
	scheme callnumber.Scheme
	serial bool
}

// Memo caches computed keys per (call number, scheme, serial), dropping the
// least recently used once it holds size entries. Keys never depend on
// anything else, so entries are never invalidated. Safe for concurrent use.
type Memo struct {
	engine *callnumber.Engine
	keys   *lru.Cache[memoKey, callnumber.Keys]
	hits   atomic.Int64
	misses atomic.Int64
}

// NewMemo returns a cache of at most size entries. A size below one means
// DefaultMemoSize.
func NewMemo(engine *callnumber.Engine, size int) *Memo {
	if size < 1 {
		size = DefaultMemoSize
	}
	keys, err := lru.New[memoKey, callnumber.Keys](size)
	if err != nil {
		panic(err)
	}
	return &Memo{engine: engine, keys: keys}
}

// Keys returns the keys for raw, computing them on first use.
func (m *Memo) Keys(raw string, scheme callnumber.Scheme, serial bool) callnumber.Keys {
	k := memoKey{raw: raw, scheme: scheme, serial: serial}
	if v, ok := m.keys.Get(k); ok {
		m.hits.Add(1)
		return v
	}
	m.misses.Add(1)
	v := m.engine.Compute(raw, scheme, serial, "")
	m.keys.Add(k, v)
	return v
}

// Len is the number of cached entries.
func (m *Memo) Len() int { return m.keys.Len() }

// Stats returns the hit and miss counts so far.
func (m *Memo) Stats() (hits, misses int64) {
	return m.hits.Load(), m.misses.Load()
}
