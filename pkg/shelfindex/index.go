// ABOUTME: Shelf browse index over forward and reverse shelf keys
// ABOUTME: Two copy-on-write B+trees keyed by library, key, record and item

package shelfindex

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/nainya/shelfkey/pkg/btree"
	"github.com/nainya/shelfkey/pkg/callnumber"
	"github.com/nainya/shelfkey/pkg/holding"
)

const (
	DefaultBrowseLimit = 20
	MaxBrowseLimit     = 500
)

// Direction is the way a browse walks the shelf.
type Direction int

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// Observer receives index activity. Implementations must be safe for
// concurrent use.
type Observer interface {
	ObserveIndexOp(op, status string, d time.Duration)
	SetIndexEntries(n int)
}

type nopObserver struct{}

func (nopObserver) ObserveIndexOp(string, string, time.Duration) {}
func (nopObserver) SetIndexEntries(int)                          {}

// Option configures an Index.
type Option func(*Index)

// WithLogger sets the logger used for index events.
func WithLogger(log zerolog.Logger) Option {
	return func(ix *Index) { ix.log = log }
}

// WithObserver sets the receiver of operation timings and sizes.
func WithObserver(obs Observer) Option {
	return func(ix *Index) { ix.obs = obs }
}

// WithMemo shares a key cache with the index.
func WithMemo(m *Memo) Option {
	return func(ix *Index) { ix.memo = m }
}

type entryKeys struct {
	forward []byte
	reverse []byte
	value   []byte
}

// Index holds the browse entries of every indexed record.
type Index struct {
	engine *callnumber.Engine
	memo   *Memo
	log    zerolog.Logger
	obs    Observer
	now    func() time.Time

	mu      sync.RWMutex
	forward *btree.Tree
	reverse *btree.Tree
	records map[string][]entryKeys
	entries int
}

// New returns an empty in-memory index.
func New(engine *callnumber.Engine, opts ...Option) *Index {
	ix := &Index{
		engine:  engine,
		log:     zerolog.Nop(),
		obs:     nopObserver{},
		now:     time.Now,
		forward: btree.NewInMemory(),
		reverse: btree.NewInMemory(),
		records: make(map[string][]entryKeys),
	}
	for _, opt := range opts {
		opt(ix)
	}
	if ix.memo == nil {
		ix.memo = NewMemo(engine, DefaultMemoSize)
	}
	return ix
}

// Memo returns the key cache used for browse start points.
func (ix *Index) Memo() *Memo { return ix.memo }

// Add indexes every displayed item of rec, replacing what was indexed for
// the same record ID before. It returns the number of entries written.
func (ix *Index) Add(ctx context.Context, rec *holding.Record) (int, error) {
	return ix.AddThen(ctx, rec, nil)
}

// AddThen is Add followed by commit, which runs with the write lock held.
// When commit fails the record's previous entries are put back and the
// error is returned.
func (ix *Index) AddThen(ctx context.Context, rec *holding.Record, commit func() error) (n int, err error) {
	start := time.Now()
	defer func() { ix.observe("add", start, err) }()

	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if rec == nil || rec.ID == "" || len(rec.Items) == 0 {
		return 0, ErrInvalidRecord
	}
	seen := make(map[string]bool, len(rec.Items))
	for _, it := range rec.Items {
		if seen[it.ID()] {
			return 0, fmt.Errorf("%w: duplicate item %s in record %s", ErrInvalidRecord, it.ID(), rec.ID)
		}
		seen[it.ID()] = true
	}

	at := ix.now().UTC()
	var batch []Entry
	for _, r := range rec.Resolve(ix.engine) {
		if r.Display.Omit || r.Display.ShelfKey == "" {
			continue
		}
		batch = append(batch, newEntry(rec.ID, r, at))
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()

	prev, existed := ix.records[rec.ID]
	ix.removeLocked(rec.ID)
	keys, err := ix.insertLocked(batch)
	if err != nil {
		ix.restoreLocked(rec.ID, prev, existed)
		return 0, err
	}
	ix.records[rec.ID] = keys
	ix.entries += len(keys)
	if commit != nil {
		if err := commit(); err != nil {
			ix.removeLocked(rec.ID)
			ix.restoreLocked(rec.ID, prev, existed)
			return 0, err
		}
	}
	ix.obs.SetIndexEntries(ix.entries)

	ix.log.Debug().
		Str("record_id", rec.ID).
		Int("items", len(rec.Items)).
		Int("entries", len(keys)).
		Msg("record indexed")
	return len(keys), nil
}

// insertLocked writes batch to both trees. On failure nothing of batch is
// left behind.
func (ix *Index) insertLocked(batch []Entry) ([]entryKeys, error) {
	keys := make([]entryKeys, 0, len(batch))
	for _, e := range batch {
		k := entryKeys{forward: e.forwardKey(), reverse: e.reverseKey(), value: e.encode()}
		if err := ix.insertKeys(k); err != nil {
			ix.deleteKeys(keys)
			return nil, fmt.Errorf("index item %s: %w", e.ItemID, err)
		}
		keys = append(keys, k)
	}
	return keys, nil
}

func (ix *Index) insertKeys(k entryKeys) error {
	if err := ix.forward.Insert(k.forward, k.value); err != nil {
		return err
	}
	if err := ix.reverse.Insert(k.reverse, k.value); err != nil {
		ix.forward.Delete(k.forward)
		return err
	}
	return nil
}

func (ix *Index) deleteKeys(keys []entryKeys) {
	for _, k := range keys {
		ix.forward.Delete(k.forward)
		ix.reverse.Delete(k.reverse)
	}
}

// restoreLocked puts back entries taken out by removeLocked. They were in the
// trees before, so they fit again.
func (ix *Index) restoreLocked(recordID string, keys []entryKeys, existed bool) {
	if !existed {
		return
	}
	for _, k := range keys {
		if err := ix.insertKeys(k); err != nil {
			ix.log.Error().Err(err).Str("record_id", recordID).Msg("restore entry failed")
		}
	}
	ix.records[recordID] = keys
	ix.entries += len(keys)
}

// Remove drops every entry of the record.
func (ix *Index) Remove(ctx context.Context, recordID string) error {
	return ix.RemoveThen(ctx, recordID, nil)
}

// RemoveThen is Remove followed by commit, which runs with the write lock
// held. When commit fails the record is put back.
func (ix *Index) RemoveThen(ctx context.Context, recordID string, commit func() error) (err error) {
	start := time.Now()
	defer func() { ix.observe("remove", start, err) }()

	if err := ctx.Err(); err != nil {
		return err
	}
	ix.mu.Lock()
	defer ix.mu.Unlock()
	prev, ok := ix.records[recordID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrRecordNotFound, recordID)
	}
	ix.removeLocked(recordID)
	if commit != nil {
		if err := commit(); err != nil {
			ix.restoreLocked(recordID, prev, true)
			return err
		}
	}
	ix.obs.SetIndexEntries(ix.entries)
	ix.log.Debug().Str("record_id", recordID).Msg("record removed")
	return nil
}

func (ix *Index) removeLocked(recordID string) {
	keys, ok := ix.records[recordID]
	if !ok {
		return
	}
	ix.deleteKeys(keys)
	ix.entries -= len(keys)
	delete(ix.records, recordID)
}

// BrowseRequest selects a stretch of one library's shelf. The start point is
// ShelfKey when set, otherwise the shelf key of CallNumber under Scheme. With
// neither, the browse starts at the beginning (Forward) or end (Backward).
type BrowseRequest struct {
	Library    string
	ShelfKey   string
	CallNumber string
	Scheme     callnumber.Scheme
	Direction  Direction
	Limit      int
	// Distinct keeps one entry per record and shelf key.
	Distinct bool
}

// Browse returns up to Limit entries starting at the requested point. Forward
// entries come in ascending shelf order, Backward ones in descending order;
// both include entries whose shelf key equals the start.
func (ix *Index) Browse(ctx context.Context, req BrowseRequest) (out []Entry, err error) {
	start := time.Now()
	defer func() { ix.observe("browse_"+req.Direction.String(), start, err) }()

	if req.Library == "" {
		return nil, fmt.Errorf("%w: library is required", ErrInvalidBrowse)
	}
	limit := req.Limit
	switch {
	case limit <= 0:
		limit = DefaultBrowseLimit
	case limit > MaxBrowseLimit:
		limit = MaxBrowseLimit
	}

	shelfKey := req.ShelfKey
	if shelfKey == "" && req.CallNumber != "" {
		shelfKey = ix.memo.Keys(req.CallNumber, req.Scheme, false).ShelfKey
	}

	tree, prefix := ix.forward, prefixForward
	if req.Direction == Backward {
		tree, prefix = ix.reverse, prefixReverse
		if shelfKey != "" {
			shelfKey = ix.engine.ReverseKey(shelfKey)
		}
	}
	library := encodeKey(prefix, bytesValue(req.Library))
	from := encodeKey(prefix, bytesValue(req.Library), bytesValue(shelfKey))

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	out = make([]Entry, 0, limit)
	var last *Entry
	tree.Scan(from, func(key, val []byte) bool {
		if err = ctx.Err(); err != nil {
			return false
		}
		if !bytes.HasPrefix(key, library) {
			return false
		}
		var e Entry
		if e, err = decodeEntry(val); err != nil {
			return false
		}
		if req.Distinct && last != nil && last.RecordID == e.RecordID && last.ShelfKey == e.ShelfKey {
			return true
		}
		out = append(out, e)
		last = &out[len(out)-1]
		return len(out) < limit
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Len returns the number of indexed entries.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.entries
}

// Records returns the number of indexed records.
func (ix *Index) Records() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.records)
}

func (ix *Index) observe(op string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	ix.obs.ObserveIndexOp(op, status, time.Since(start))
}
