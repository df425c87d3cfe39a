package shelfindex

import (
	"fmt"
	"time"

	"github.com/nainya/shelfkey/pkg/callnumber"
	"github.com/nainya/shelfkey/pkg/holding"
)

// Entry is one shelved item as stored in the index.
type Entry struct {
	Library         string            `json:"library" yaml:"library"`
	Location        string            `json:"location" yaml:"location"`
	Scheme          callnumber.Scheme `json:"scheme" yaml:"scheme"`
	RecordID        string            `json:"record_id" yaml:"record_id"`
	ItemID          string            `json:"item_id" yaml:"item_id"`
	CallNumber      string            `json:"call_number" yaml:"call_number"`
	Enumeration     string            `json:"enumeration,omitempty" yaml:"enumeration,omitempty"`
	ShelfKey        string            `json:"shelfkey" yaml:"shelfkey"`
	ReverseShelfKey string            `json:"reverse_shelfkey" yaml:"reverse_shelfkey"`
	Ellipsis        bool              `json:"ellipsis" yaml:"ellipsis"`
	IndexedAt       time.Time         `json:"indexed_at" yaml:"indexed_at"`
}

// Label is the call number as shown in a browse list.
func (e Entry) Label() string {
	return callnumber.Display{CallNumber: e.CallNumber, Ellipsis: e.Ellipsis}.Label()
}

func newEntry(recordID string, r holding.Resolved, at time.Time) Entry {
	return Entry{
		Library:         r.Item.Library(),
		Location:        r.Item.HomeLocation(),
		Scheme:          r.Item.Scheme(),
		RecordID:        recordID,
		ItemID:          r.Item.ID(),
		CallNumber:      r.Display.CallNumber,
		Enumeration:     r.Item.Enumeration(),
		ShelfKey:        r.Display.ShelfKey,
		ReverseShelfKey: r.Display.ReverseShelfKey,
		Ellipsis:        r.Display.Ellipsis,
		IndexedAt:       at,
	}
}

func (e Entry) forwardKey() []byte {
	return encodeKey(prefixForward,
		bytesValue(e.Library), bytesValue(e.ShelfKey), bytesValue(e.RecordID), bytesValue(e.ItemID))
}

func (e Entry) reverseKey() []byte {
	return encodeKey(prefixReverse,
		bytesValue(e.Library), bytesValue(e.ReverseShelfKey), bytesValue(e.RecordID), bytesValue(e.ItemID))
}

const entryColumns = 11

func (e Entry) encode() []byte {
	ellipsis := uint64(0)
	if e.Ellipsis {
		ellipsis = 1
	}
	return encodeValues(make([]byte, 0, 256), []Value{
		bytesValue(e.Library),
		bytesValue(e.Location),
		bytesValue(string(e.Scheme)),
		bytesValue(e.RecordID),
		bytesValue(e.ItemID),
		bytesValue(e.CallNumber),
		bytesValue(e.Enumeration),
		bytesValue(e.ShelfKey),
		bytesValue(e.ReverseShelfKey),
		uint64Value(ellipsis),
		int64Value(e.IndexedAt.UnixNano()),
	})
}

func decodeEntry(data []byte) (Entry, error) {
	vals, err := decodeValues(data)
	if err != nil {
		return Entry{}, err
	}
	if len(vals) != entryColumns {
		return Entry{}, fmt.Errorf("%w: entry has %d columns", errCorrupt, len(vals))
	}
	str := func(i int) string { return string(vals[i].Str) }
	return Entry{
		Library:         str(0),
		Location:        str(1),
		Scheme:          callnumber.Scheme(str(2)),
		RecordID:        str(3),
		ItemID:          str(4),
		CallNumber:      str(5),
		Enumeration:     str(6),
		ShelfKey:        str(7),
		ReverseShelfKey: str(8),
		Ellipsis:        vals[9].U64 == 1,
		IndexedAt:       time.Unix(0, vals[10].I64).UTC(),
	}, nil
}
