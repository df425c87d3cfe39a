package btree

// MemPager keeps pages in a map. Page numbers start at 1 so zero can mean
// "no root".
type MemPager struct {
	pages map[uint64][]byte
	next  uint64
}

// NewMemPager returns an empty in-memory pager.
func NewMemPager() *MemPager {
	return &MemPager{pages: make(map[uint64][]byte), next: 1}
}

// NewInMemory returns an empty tree backed by a fresh MemPager.
func NewInMemory() *Tree {
	return New(NewMemPager())
}

func (p *MemPager) Get(ptr uint64) []byte {
	page, ok := p.pages[ptr]
	if !ok {
		panic("btree: page not found")
	}
	return page
}

func (p *MemPager) New(page []byte) uint64 {
	if bnode(page).nbytes() > PageSize {
		panic("btree: page too large")
	}
	ptr := p.next
	p.next++
	p.pages[ptr] = page
	return ptr
}

func (p *MemPager) Del(ptr uint64) {
	if _, ok := p.pages[ptr]; !ok {
		panic("btree: page not allocated")
	}
	delete(p.pages, ptr)
}

// Pages is the number of live pages.
func (p *MemPager) Pages() int { return len(p.pages) }
