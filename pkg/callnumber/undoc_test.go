package callnumber

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseUNDOC(t *testing.T) {
	u := ParseUNDOC("OEA/SER.L/V/ III")
	assert.Equal(t, []string{"OEA", "SER.L", "5", "3"}, u.Parts)
	assert.Equal(t, "OEA", u.Symbol())
	assert.Equal(t, "undoc oea ser.l 000005 000003", u.ShelfKey(""))

	u = ParseUNDOC("E/CN.4/1995/ 100 (PART 2)")
	assert.Equal(t, []string{"E", "CN4", "1995", "100 (PART2)"}, u.Parts)
}

func TestUNDOCTwoDigitYears(t *testing.T) {
	u := ParseUNDOC("A/52/PV.45")
	assert.Equal(t, []string{"A", "52", "PV45"}, u.Parts)

	u = ParseUNDOC("E/89/12")
	assert.Equal(t, []string{"E", "1989", "12"}, u.Parts)

	u = ParseUNDOC("E/10/12")
	assert.Equal(t, []string{"E", "2010", "12"}, u.Parts)

	u = ParseUNDOC("E/89/12/1990")
	assert.Equal(t, []string{"E", "89", "12", "1990"}, u.Parts)
}

func TestUNDOCRomanOrdering(t *testing.T) {
	raws := []string{"OEA/SER.L/V/5", "OEA/SER.L/V/ III"}
	sort.Slice(raws, func(i, j int) bool {
		return ShelfKey(Parse(raws[i], SchemeUNDOC), "") < ShelfKey(Parse(raws[j], SchemeUNDOC), "")
	})
	assert.Equal(t, []string{"OEA/SER.L/V/ III", "OEA/SER.L/V/5"}, raws)
}

func TestUNDOCLopped(t *testing.T) {
	assert.Equal(t, "ST/ESA/SER.A/360", ParseUNDOC("ST/ESA/SER.A/360 v.2").Lopped(false))
	assert.Equal(t, "ST/ESA/SER.A", ParseUNDOC("ST/ESA/SER.A/1998").Lopped(true))
	assert.Equal(t, "ST/ESA/SER.A/1998", ParseUNDOC("ST/ESA/SER.A/1998").Lopped(false))
}

func TestSplitScoped(t *testing.T) {
	parts, ends := splitScoped("A/B (C/D)/E", '/')
	assert.Equal(t, []string{"A", "B (C/D)", "E"}, parts)
	assert.Equal(t, []int{1, 9, 11}, ends)
}
