// ABOUTME: California state document numbers
// ABOUTME: Agency letter and number, book numbers, years and a NO. accession

package callnumber

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	caldocPattern = regexp.MustCompile(`^(?i:CALIF)\s*(?P<letter>[A-Za-z])\s*(?P<number>\d+)` +
		`(?P<subagency>\.\d+)?\s*` +
		`(?P<book1>\.[A-Za-z]+\d*[A-Za-z]?|[A-Za-z]+\d+[A-Za-z]?)?\s*` +
		`(?P<book2>\.?[A-Za-z]+\d+[A-Za-z]?)?\s*` +
		`(?:(?P<year>\d{4})(?:[-/](?P<year2>\d{2,4}))?\b)?\s*` +
		`(?P<rest>.*)$`)
	accessionPattern  = regexp.MustCompile(`(?i)\bNO\.\s*(\d+|[IVXLCDM]+)\b`)
	romanVolumePrefix = regexp.MustCompile(`(?i)\b(no|v|vol|pt)\.\s*([IVXLCDM]+)\b`)
)

// CALDOC is a California document number such as "CALIF L425 .L5 1979 NO.3".
type CALDOC struct {
	raw string

	Letter    string
	Number    string
	SubAgency string
	Book1     string
	Book2     string
	Year      string
	Year2     string
	Rest      string
	// Accession is the decimal value of a "NO." statement in Rest.
	Accession string

	yearStart int
	restStart int
}

// ParseCALDOC decomposes raw. Text that does not fit the grammar ends up in Rest.
func ParseCALDOC(raw string) *CALDOC {
	raw = strings.TrimSpace(raw)
	c := &CALDOC{raw: raw, Rest: raw, yearStart: -1, restStart: -1}
	if m, ok := matchNamed(caldocPattern, raw); ok {
		c.Letter = m.group("letter")
		c.Number = m.group("number")
		c.SubAgency = m.group("subagency")
		c.Book1 = m.group("book1")
		c.Book2 = m.group("book2")
		c.Year = m.group("year")
		c.Year2 = m.group("year2")
		c.Rest = strings.TrimSpace(m.group("rest"))
		c.yearStart = m.start("year")
		if c.Rest != "" {
			c.restStart = m.start("rest")
		}
	}
	c.Accession = accessionNumber(c.Rest)
	return c
}

func (c *CALDOC) Scheme() Scheme { return SchemeCALDOC }
func (c *CALDOC) Raw() string    { return c.raw }
func (c *CALDOC) sealed()        {}

// Lopped cuts at the volume material that follows the years. Serials are cut
// at the first year instead.
func (c *CALDOC) Lopped(serial bool) string {
	if serial && c.yearStart > 0 {
		return trimLopped(c.raw[:c.yearStart])
	}
	if c.restStart > 0 {
		return trimLopped(c.raw[:c.restStart])
	}
	return c.raw
}

// DisplayVolume is Rest with roman volume numbers written in decimal.
func (c *CALDOC) DisplayVolume() string {
	return romanVolumePrefix.ReplaceAllStringFunc(c.Rest, func(s string) string {
		m := romanVolumePrefix.FindStringSubmatch(s)
		if v, ok := romanToInt(strings.ToUpper(m[2])); ok {
			return m[1] + "." + strconv.Itoa(v)
		}
		return s
	})
}

// DisplayCallNumber is the call number with DisplayVolume in place of Rest.
func (c *CALDOC) DisplayCallNumber() string {
	if c.restStart < 0 {
		return c.raw
	}
	return c.raw[:c.restStart] + c.DisplayVolume()
}

// ShelfKey builds "caldoc <letter> <number> <books> <years> <accession> <rest>".
func (c *CALDOC) ShelfKey(volume string) string {
	number := ""
	if c.Number != "" {
		number = PadNumber(c.Number, classNumWidth)
	}
	subagency := ""
	if c.SubAgency != "" {
		subagency = Pad(c.SubAgency, decimalWidth, PadRight, '0')
	}
	accession := ""
	if c.Accession != "" {
		accession = PadNumber(c.Accession, restWidth)
	}
	return joinKey(
		SchemeCALDOC.Tag(),
		strings.ToLower(c.Letter),
		number+subagency,
		cutterKey(c.Book1),
		cutterKey(c.Book2),
		c.Year,
		fullYearPair(c.Year, c.Year2),
		accession,
		PadAllDigits(c.Rest, restWidth),
		PadAllDigits(volume, restWidth),
	)
}

// fullYearPair widens a shortened second year against the first.
func fullYearPair(year, year2 string) string {
	if year2 == "" {
		return ""
	}
	if year == "" {
		return year2
	}
	return relativeEnd(year, year2)
}

// accessionNumber reads the number after "NO.", converting roman numerals.
func accessionNumber(rest string) string {
	m := accessionPattern.FindStringSubmatch(rest)
	if m == nil {
		return ""
	}
	if m[1][0] >= '0' && m[1][0] <= '9' {
		return m[1]
	}
	if v, ok := romanToInt(strings.ToUpper(m[1])); ok {
		return strconv.Itoa(v)
	}
	return ""
}
