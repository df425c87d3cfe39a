package callnumber

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDewey(t *testing.T) {
	d := ParseDewey("330.973 .S34 v.2")
	assert.Equal(t, "330", d.Number)
	assert.Equal(t, ".973", d.Decimal)
	assert.Equal(t, ".S34", d.Cutter1)
	assert.Equal(t, " v.2", d.After)
	assert.Equal(t, "v.2", d.Rest)

	d = ParseDewey("813.54 /Ab12cd")
	assert.Equal(t, "/Ab12cd", d.Cutter1)
}

func TestDeweyShelfKey(t *testing.T) {
	assert.Equal(t, "dewey 001.00000000 m .320000 002002", ParseDewey("1 .M32 2002").ShelfKey(""))
	assert.Equal(t, "dewey 330.97300000 s .340000 v.000002", ParseDewey("330.973 .S34 v.2").ShelfKey(""))
}

func TestDeweyLopped(t *testing.T) {
	assert.Equal(t, "330.973 .S34", ParseDewey("330.973 .S34 v.2").Lopped(false))
	assert.Equal(t, "1 .M32 2002", ParseDewey("1 .M32 2002").Lopped(false))
	assert.Equal(t, "1 .M32", ParseDewey("1 .M32 2002").Lopped(true))
	assert.Equal(t, "330.973 .A1 C3", ParseDewey("330.973 .A1 C3").Lopped(false))
	assert.Equal(t, "330.973 .A1 C3", ParseDewey("330.973 .A1 C3 v.2").Lopped(false))
	assert.Equal(t, "813.54 .T5 K5", ParseDewey("813.54 .T5 K5").Lopped(false))
}

func TestDeweyEndToEndOrder(t *testing.T) {
	want := []string{"1 .M32 2002", "1.1 .M32 2002", "12 .M32 2002"}
	for _, input := range [][]string{
		{"12 .M32 2002", "1 .M32 2002", "1.1 .M32 2002"},
		{"1.1 .M32 2002", "12 .M32 2002", "1 .M32 2002"},
		{"1 .M32 2002", "1.1 .M32 2002", "12 .M32 2002"},
	} {
		got := append([]string(nil), input...)
		sort.Slice(got, func(i, j int) bool {
			return ShelfKey(Parse(got[i], SchemeDewey), "") < ShelfKey(Parse(got[j], SchemeDewey), "")
		})
		assert.Equal(t, want, got)
	}
}

func TestLeadingZeros(t *testing.T) {
	assert.Equal(t, "001 .M32 2002", LeadingZeros(ParseDewey("1 .M32 2002")))
	assert.Equal(t, "330.973 .S34", LeadingZeros(ParseDewey("330.973 .S34")))
	assert.Panics(t, func() { LeadingZeros(ParseLC("QA76 .A1")) })
}
