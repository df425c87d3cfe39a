package callnumber

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLC(t *testing.T) {
	lc := ParseLC("  QA76.73 .J38 2003 v.1 ")
	assert.Equal(t, "QA76.73 .J38 2003 v.1", lc.Raw())
	assert.Equal(t, "QA", lc.Class)
	assert.Equal(t, "76", lc.Number)
	assert.Equal(t, ".73", lc.Decimal)
	assert.Equal(t, ".J38", lc.Cutter1)
	assert.Equal(t, "2003", lc.Doon2)
	assert.Equal(t, "v.1", lc.Rest)

	lc = ParseLC("PS3545 .I345 Z5 1990")
	assert.Equal(t, ".I345", lc.Cutter1)
	assert.Equal(t, "Z5", lc.Cutter2)
	assert.Equal(t, "1990", lc.Doon3)
	assert.Empty(t, lc.Rest)
}

func TestParseLCUnmatched(t *testing.T) {
	lc := ParseLC("1234 nonsense")
	assert.Empty(t, lc.Class)
	assert.Equal(t, "1234 nonsense", lc.Rest)
	assert.Equal(t, "lc 001234 nonsense", lc.ShelfKey(""))
}

func TestLCShelfKey(t *testing.T) {
	assert.Equal(t, "lc qa  0076.730000 j .380000 002003 v.000001",
		ParseLC("QA76.73 .J38 2003 v.1").ShelfKey(""))
	assert.Equal(t, "lc b   0001.000000 c .300000", ParseLC("B1 .C3").ShelfKey(""))
	assert.Equal(t, "lc qa  0076.000000 a .100000 c.000002",
		ParseLC("QA76 .A1").ShelfKey("c.2"))
}

func TestLCLopped(t *testing.T) {
	tests := []struct {
		raw    string
		serial bool
		want   string
	}{
		{"QA76.73 .J38 2003 v.1", false, "QA76.73 .J38 2003"},
		{"QA76.73 .J38 2003 v.1", true, "QA76.73 .J38"},
		{"QA76 v.2", false, "QA76"},
		{"QA76.73 .J38 2003", false, "QA76.73 .J38 2003"},
		{"HD9502 .A1 O34 Box 2", false, "HD9502 .A1 O34"},
		{"PN1993 .F5 no. 12 (1995)", false, "PN1993 .F5"},
		{"AP2 .N6 June 2001", true, "AP2 .N6"},
		{"PQ2603 .A1 T5", false, "PQ2603 .A1 T5"},
		{"HD1 .B2 C3", false, "HD1 .B2 C3"},
		{"QA1 .A1 N5", false, "QA1 .A1 N5"},
		{"DS1 .A1 K5", false, "DS1 .A1 K5"},
		{"DS1 .A1 H5 v.2", false, "DS1 .A1 H5"},
		{"PS3545 .I345 H5 1990", false, "PS3545 .I345 H5 1990"},
		{"PS3545 .I345 H5 1990", true, "PS3545 .I345 H5"},
		{"QA1 .A1 C3 c.2", false, "QA1 .A1 C3"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLC(tt.raw).Lopped(tt.serial))
		})
	}
}

func TestLCVolumeOrdering(t *testing.T) {
	raws := []string{"QA76 .A1 v.10", "QA76 .A1 v.9", "QA76 .A1 v.1"}
	sort.Slice(raws, func(i, j int) bool {
		return ParseLC(raws[i]).ShelfKey("") < ParseLC(raws[j]).ShelfKey("")
	})
	assert.Equal(t, []string{"QA76 .A1 v.1", "QA76 .A1 v.9", "QA76 .A1 v.10"}, raws)
}
