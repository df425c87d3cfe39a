package holding

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nainya/shelfkey/pkg/callnumber"
)

func TestNewItemNormalizes(t *testing.T) {
	// "e" followed by a combining acute accent
	it := NewItem(ItemSpec{
		CallNumber:   "  PQ2605 .É v.1 ",
		Scheme:       "lc",
		Library:      " GREEN ",
		HomeLocation: "STACKS",
	})
	assert.Equal(t, "PQ2605 .\u00c9 v.1", it.CallNumber())
	assert.Equal(t, callnumber.SchemeLC, it.Scheme())
	assert.Equal(t, "GREEN", it.Library())
	assert.Equal(t, "STACKS", it.CurrentLocation())

	_, err := uuid.Parse(it.ID())
	assert.NoError(t, err)
}

func TestNewItemUnknownScheme(t *testing.T) {
	it := NewItem(ItemSpec{ID: "i1", CallNumber: "X 1", Scheme: "local"})
	assert.Equal(t, "i1", it.ID())
	assert.Equal(t, callnumber.SchemeOther, it.Scheme())
}

func TestFlags(t *testing.T) {
	it := NewItem(ItemSpec{Flags: FlagIgnored | FlagShelvedByLocation})
	assert.True(t, it.Ignored())
	assert.True(t, it.ShelvedByLocation())
	assert.False(t, it.EResource())
	assert.False(t, it.LostOrMissing())
}

func TestRecordSpecRoundTrip(t *testing.T) {
	spec := RecordSpec{ID: "r1", Serial: true, Items: []ItemSpec{
		{ID: "a", CallNumber: "QA76 .A1 v.1", Scheme: "LC", Library: "GREEN", HomeLocation: "STACKS", CurrentLocation: "STACKS"},
	}}
	assert.Equal(t, spec, NewRecord(spec).Spec())
}

func sampleItems() []Item {
	return []Item{
		NewItem(ItemSpec{ID: "1", CallNumber: "QA76 .A1 v.1", Scheme: "LC", Library: "GREEN", HomeLocation: "STACKS"}),
		NewItem(ItemSpec{ID: "2", CallNumber: "QA76 .A1 v.2", Scheme: "LC", Library: "GREEN", HomeLocation: "STACKS"}),
		NewItem(ItemSpec{ID: "3", CallNumber: "QA76 .A1 v.3", Scheme: "LC", Library: "GREEN", HomeLocation: "STACKS", Flags: FlagLostOrMissing}),
		NewItem(ItemSpec{ID: "4", CallNumber: "QA76 .A1 v.4", Scheme: "LC", Library: "GREEN", HomeLocation: "REF"}),
		NewItem(ItemSpec{ID: "5", CallNumber: "ON ORDER", Scheme: "LC", Library: "GREEN", HomeLocation: "STACKS", Flags: FlagIgnored}),
	}
}

func TestGroups(t *testing.T) {
	groups := Groups(sampleItems())
	require.Len(t, groups, 2)

	stacks := groups[GroupKey{Library: "GREEN", Location: "STACKS", Scheme: callnumber.SchemeLC}]
	require.Len(t, stacks, 2)
	assert.Equal(t, "1", stacks[0].ID())
	assert.Equal(t, "2", stacks[1].ID())
}

func TestSiblings(t *testing.T) {
	items := sampleItems()
	assert.Equal(t, []string{"QA76 .A1 v.1", "QA76 .A1 v.2"}, Siblings(items, items[0]))
	assert.Equal(t, []string{"QA76 .A1 v.4"}, Siblings(items, items[3]))
}

func TestRecordResolve(t *testing.T) {
	r := &Record{ID: "r", Items: sampleItems()}
	got := r.Resolve(callnumber.Default())
	require.Len(t, got, 5)

	assert.Equal(t, "QA76 .A1", got[0].Display.CallNumber)
	assert.True(t, got[0].Display.Ellipsis)
	assert.Equal(t, got[0].Display.ShelfKey, got[1].Display.ShelfKey)
	assert.Equal(t, "QA76 .A1 v.4", got[3].Display.CallNumber)
	assert.False(t, got[3].Display.Ellipsis)
	assert.True(t, got[4].Display.Omit)
}
