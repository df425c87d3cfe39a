package holding

import "github.com/nainya/shelfkey/pkg/callnumber"

// GroupKey identifies the items shelved together: same library, same home
// location, same scheme.
type GroupKey struct {
	Library  string
	Location string
	Scheme   callnumber.Scheme
}

// KeyOf returns the group item belongs to.
func KeyOf(item Item) GroupKey {
	return GroupKey{Library: item.library, Location: item.home, Scheme: item.scheme}
}

// counted reports whether item takes part in grouping. Ignored, online and
// lost items are not on the shelf.
func counted(item Item) bool {
	return !item.Ignored() && !item.EResource() && !item.LostOrMissing()
}

// Groups partitions items by GroupKey, keeping input order inside a group.
func Groups(items []Item) map[GroupKey][]Item {
	groups := make(map[GroupKey][]Item)
	for _, it := range items {
		if !counted(it) {
			continue
		}
		k := KeyOf(it)
		groups[k] = append(groups[k], it)
	}
	return groups
}

// Siblings returns the call numbers of the shelved items in item's group, in
// input order. item itself is included when it is shelved.
func Siblings(items []Item, item Item) []string {
	key := KeyOf(item)
	var out []string
	for _, it := range items {
		if counted(it) && KeyOf(it) == key {
			out = append(out, it.callNumber)
		}
	}
	return out
}

// Resolved pairs an item with how it is displayed.
type Resolved struct {
	Item    Item
	Display callnumber.Display
}

// Resolve runs the display decision for every item of r against its group.
func (r *Record) Resolve(e *callnumber.Engine) []Resolved {
	out := make([]Resolved, 0, len(r.Items))
	for _, it := range r.Items {
		out = append(out, Resolved{
			Item:    it,
			Display: e.Resolve(it, r.Serial, Siblings(r.Items, it)),
		})
	}
	return out
}
