// ABOUTME: Holding data model for items attached to a bibliographic record
// ABOUTME: Item satisfies callnumber.Holding; Record groups items with a serial flag

package holding

import (
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"github.com/nainya/shelfkey/pkg/callnumber"
)

// Flag marks item states that change how an item is shelved or shown.
type Flag uint8

const (
	FlagIgnored           Flag = 1 << iota // on order, in process, placeholder
	FlagEResource                          // online only
	FlagShelvedByLocation                  // shelved by title rather than call number
	FlagLostOrMissing
)

// Has reports whether every bit of f2 is set.
func (f Flag) Has(f2 Flag) bool { return f&f2 == f2 }

// ItemSpec is the plain form of an item used on the wire and in config files.
type ItemSpec struct {
	ID              string `json:"id,omitempty" yaml:"id,omitempty"`
	CallNumber      string `json:"call_number" yaml:"call_number"`
	Scheme          string `json:"scheme" yaml:"scheme"`
	Library         string `json:"library" yaml:"library"`
	HomeLocation    string `json:"home_location" yaml:"home_location"`
	CurrentLocation string `json:"current_location,omitempty" yaml:"current_location,omitempty"`
	Enumeration     string `json:"enumeration,omitempty" yaml:"enumeration,omitempty"`
	Flags           Flag   `json:"flags,omitempty" yaml:"flags,omitempty"`
}

// Item is one physical or virtual copy. It is immutable once built.
type Item struct {
	id          string
	callNumber  string
	scheme      callnumber.Scheme
	library     string
	home        string
	current     string
	enumeration string
	flags       Flag
}

// NewItem normalizes spec into an Item. Call numbers and enumeration are
// trimmed and put in Unicode NFC so equal shelf marks compare equal. A
// missing ID is generated; a missing current location is the home location.
func NewItem(spec ItemSpec) Item {
	scheme, _ := callnumber.ParseScheme(spec.Scheme)
	id := strings.TrimSpace(spec.ID)
	if id == "" {
		id = uuid.NewString()
	}
	current := strings.TrimSpace(spec.CurrentLocation)
	if current == "" {
		current = strings.TrimSpace(spec.HomeLocation)
	}
	return Item{
		id:          id,
		callNumber:  normalize(spec.CallNumber),
		scheme:      scheme,
		library:     strings.TrimSpace(spec.Library),
		home:        strings.TrimSpace(spec.HomeLocation),
		current:     current,
		enumeration: normalize(spec.Enumeration),
		flags:       spec.Flags,
	}
}

func normalize(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}

func (i Item) ID() string                { return i.id }
func (i Item) CallNumber() string        { return i.callNumber }
func (i Item) Scheme() callnumber.Scheme { return i.scheme }
func (i Item) Library() string           { return i.library }
func (i Item) HomeLocation() string      { return i.home }
func (i Item) CurrentLocation() string   { return i.current }
func (i Item) Enumeration() string       { return i.enumeration }
func (i Item) Flags() Flag               { return i.flags }
func (i Item) Ignored() bool             { return i.flags.Has(FlagIgnored) }
func (i Item) EResource() bool           { return i.flags.Has(FlagEResource) }
func (i Item) ShelvedByLocation() bool   { return i.flags.Has(FlagShelvedByLocation) }
func (i Item) LostOrMissing() bool       { return i.flags.Has(FlagLostOrMissing) }

// Spec returns the plain form of i.
func (i Item) Spec() ItemSpec {
	return ItemSpec{
		ID:              i.id,
		CallNumber:      i.callNumber,
		Scheme:          string(i.scheme),
		Library:         i.library,
		HomeLocation:    i.home,
		CurrentLocation: i.current,
		Enumeration:     i.enumeration,
		Flags:           i.flags,
	}
}

var _ callnumber.Holding = Item{}

// RecordSpec is the plain form of a Record.
type RecordSpec struct {
	ID     string     `json:"id,omitempty" yaml:"id,omitempty"`
	Serial bool       `json:"serial" yaml:"serial"`
	Items  []ItemSpec `json:"items" yaml:"items"`
}

// Record is a bibliographic record and the items attached to it.
type Record struct {
	ID     string
	Serial bool
	Items  []Item
}

// NewRecord builds a Record, generating IDs where they are missing.
func NewRecord(spec RecordSpec) *Record {
	id := strings.TrimSpace(spec.ID)
	if id == "" {
		id = uuid.NewString()
	}
	r := &Record{ID: id, Serial: spec.Serial, Items: make([]Item, 0, len(spec.Items))}
	for _, s := range spec.Items {
		r.Items = append(r.Items, NewItem(s))
	}
	return r
}

// Spec returns the plain form of r.
func (r *Record) Spec() RecordSpec {
	items := make([]ItemSpec, len(r.Items))
	for i, it := range r.Items {
		items[i] = it.Spec()
	}
	return RecordSpec{ID: r.ID, Serial: r.Serial, Items: items}
}
