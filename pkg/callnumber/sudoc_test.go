package callnumber

import (
	"sort"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYearWindowContains(t *testing.T) {
	w := DefaultOptions().SudocYears
	assert.True(t, w.Contains("999"))
	assert.True(t, w.Contains("841"))
	assert.False(t, w.Contains("840"))
	assert.True(t, w.Contains("1841"))
	assert.False(t, w.Contains("1840"))
	assert.True(t, w.Contains(strconv.Itoa(time.Now().Year())))
	assert.False(t, w.Contains(strconv.Itoa(time.Now().Year()+1)))
	assert.False(t, w.Contains("12"))
	assert.False(t, w.Contains("19a5"))

	fixed := YearWindow{ShortMin: 841, ShortMax: 999, Min: 1900, Max: 1950}
	assert.False(t, fixed.Contains("1951"))
	assert.True(t, fixed.Contains("1950"))
}

func TestParseSUDOC(t *testing.T) {
	s := ParseSUDOC("HE 20.3152:D 84/2000", DefaultOptions().SudocYears)
	assert.Equal(t, "HE", s.Agency)
	assert.Equal(t, "20", s.Number)
	assert.Equal(t, "3152:D 84/2000", s.Remainder)

	require.Len(t, s.Tokens, 4)
	kinds := []TokenKind{s.Tokens[0].Kind, s.Tokens[1].Kind, s.Tokens[2].Kind, s.Tokens[3].Kind}
	assert.Equal(t, []TokenKind{TokenNumber, TokenText, TokenNumber, TokenYear}, kinds)
	assert.Equal(t, "/", s.Tokens[3].Delim)
}

func TestSUDOCYearNeedsDelimiter(t *testing.T) {
	s := ParseSUDOC("C 3.2 1990", DefaultOptions().SudocYears)
	require.Len(t, s.Tokens, 2)
	assert.Equal(t, TokenNumber, s.Tokens[1].Kind)

	s = ParseSUDOC("C 3.2:1990-95", DefaultOptions().SudocYears)
	require.Len(t, s.Tokens, 2)
	assert.Equal(t, TokenYearRange, s.Tokens[1].Kind)
	assert.Equal(t, "sudoc c    000003 3000002 11990-1995 !", s.ShelfKey(""))
}

func TestSUDOCShelfKey(t *testing.T) {
	a := ParseSUDOC("Y 4.ED 8/1:117-48", DefaultOptions().SudocYears).ShelfKey("")
	b := ParseSUDOC("Y4.ED8/1:117-53", DefaultOptions().SudocYears).ShelfKey("")
	assert.Equal(t, "sudoc y    000004 2ed 3000008 3000001 3000117-000048 !", a)
	assert.Equal(t, "sudoc y    000004 2ed 3000008 3000001 3000117-000053 !", b)

	raws := []string{"Y4.ED8/1:117-53", "Y 4.ED 8/1:117-48"}
	sort.Slice(raws, func(i, j int) bool {
		return ShelfKey(Parse(raws[i], SchemeSUDOC), "") < ShelfKey(Parse(raws[j], SchemeSUDOC), "")
	})
	assert.Equal(t, []string{"Y 4.ED 8/1:117-48", "Y4.ED8/1:117-53"}, raws)
}

func TestSUDOCPrecedence(t *testing.T) {
	window := DefaultOptions().SudocYears
	year := ParseSUDOC("A 1.1:1999", window).ShelfKey("")
	text := ParseSUDOC("A 1.1:ABC", window).ShelfKey("")
	number := ParseSUDOC("A 1.1:5", window).ShelfKey("")
	assert.Less(t, year, text)
	assert.Less(t, text, number)
}

func TestSUDOCLopped(t *testing.T) {
	window := DefaultOptions().SudocYears
	assert.Equal(t, "Y 4.ED 8/1:117-48", ParseSUDOC("Y 4.ED 8/1:117-48 v. 2", window).Lopped(false))
	assert.Equal(t, "Y 4.ED 8/1", ParseSUDOC("Y 4.ED 8/1:2005", window).Lopped(true))
	assert.Equal(t, "Y 4.ED 8/1:2005", ParseSUDOC("Y 4.ED 8/1:2005", window).Lopped(false))
}

func TestSUDOCWithoutStemIsOther(t *testing.T) {
	p := Parse("12345", SchemeSUDOC)
	o, ok := p.(*Other)
	require.True(t, ok)
	assert.Equal(t, "sudoc", o.Tag())
	assert.Equal(t, "sudoc 012345", ShelfKey(p, ""))
	assert.Equal(t, "sudoc 012345", LopShelfKey(p, false))
}
