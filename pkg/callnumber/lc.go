// ABOUTME: Library of Congress call numbers
// ABOUTME: Class letters, class number, doons, up to three cutters and a folio flag

package callnumber

import (
	"regexp"
	"strings"
)

const (
	doonPattern   = `\d{1,4}(?i:ST|ND|RD|TH|D)?(?:\s+|$)`
	lcCutter      = `\.?[A-Za-z]+\d+[A-Za-z]?`
	folioPattern  = `[+.]{1,2}\s*(?i:FF?)\b`
	classNumWidth = 4
	decimalWidth  = 6
	doonWidth     = 6
	restWidth     = 6
)

var lcPattern = regexp.MustCompile(`^(?P<class>[A-Za-z]{1,3})\s*` +
	`(?P<number>\d+)?(?P<decimal>\.\d+)?\s*` +
	`(?P<doon1>` + doonPattern + `)?\s*` +
	`(?P<cutter1>` + lcCutter + `)?\s*` +
	`(?P<doon2>` + doonPattern + `)?\s*` +
	`(?P<cutter2>` + lcCutter + `)?\s*` +
	`(?P<doon3>` + doonPattern + `)?\s*` +
	`(?P<cutter3>` + lcCutter + `)?\s*` +
	`(?P<folio>` + folioPattern + `)?\s*` +
	`(?P<rest>.*)$`)

// LC is a Library of Congress call number such as "QA76.73 .J38 2003 v.1".
type LC struct {
	raw string

	Class   string
	Number  string
	Decimal string
	Doon1   string
	Cutter1 string
	Doon2   string
	Cutter2 string
	Doon3   string
	Cutter3 string
	Folio   string
	Rest    string

	// volumeFrom is where volume material may begin; text before it is
	// structure. Serial dates are looked for from serialFrom, after cutter1.
	volumeFrom int
	serialFrom int
}

// ParseLC decomposes raw. Text that does not fit the grammar ends up in Rest.
func ParseLC(raw string) *LC {
	raw = strings.TrimSpace(raw)
	lc := &LC{raw: raw, Rest: raw}
	m, ok := matchNamed(lcPattern, raw)
	if !ok {
		return lc
	}
	lc.Class = m.group("class")
	lc.Number = m.group("number")
	lc.Decimal = m.group("decimal")
	lc.Doon1 = strings.TrimSpace(m.group("doon1"))
	lc.Cutter1 = m.group("cutter1")
	lc.Doon2 = strings.TrimSpace(m.group("doon2"))
	lc.Cutter2 = m.group("cutter2")
	lc.Doon3 = strings.TrimSpace(m.group("doon3"))
	lc.Cutter3 = m.group("cutter3")
	lc.Folio = strings.TrimSpace(m.group("folio"))
	lc.Rest = strings.TrimSpace(m.group("rest"))

	lc.serialFrom = m.lastEnd(m.end("class"), "number", "decimal", "cutter1")
	lc.volumeFrom = m.lastEnd(lc.serialFrom, "doon1", "doon2", "cutter2", "doon3", "cutter3", "folio")
	return lc
}

func (lc *LC) Scheme() Scheme { return SchemeLC }
func (lc *LC) Raw() string    { return lc.raw }
func (lc *LC) sealed()        {}

// Lopped drops volume material that follows the last cutter. Serials also
// lose dates found after the first cutter.
func (lc *LC) Lopped(serial bool) string {
	lopped := lopVolume(lc.raw, lc.volumeFrom)
	if serial {
		lopped = lopSerial(lopped, lc.serialFrom)
	}
	return lopped
}

// ShelfKey builds "lc <class> <number> <doon1> <cutter1> ... <rest>".
func (lc *LC) ShelfKey(volume string) string {
	return joinKey(
		SchemeLC.Tag(),
		classKey(PadText(strings.ToLower(lc.Class), 3), lc.Number, classNumWidth, lc.Decimal, decimalWidth),
		PadAllDigits(lc.Doon1, doonWidth),
		cutterKey(lc.Cutter1),
		PadAllDigits(lc.Doon2, doonWidth),
		cutterKey(lc.Cutter2),
		PadAllDigits(lc.Doon3, doonWidth),
		cutterKey(lc.Cutter3),
		strings.ToLower(lc.Folio),
		PadAllDigits(lc.Rest, restWidth),
		PadAllDigits(volume, restWidth),
	)
}

// classKey pads the class letters, number and decimal into one column group.
func classKey(letters, number string, numberWidth int, decimal string, decimalWidth int) string {
	if number == "" {
		return letters
	}
	if decimal == "" {
		decimal = "."
	}
	num := PadNumber(number, numberWidth) + Pad(decimal, decimalWidth, PadRight, '0')
	if letters == "" {
		return num
	}
	return letters + " " + num
}

func cutterKey(cutter string) string {
	key, _ := PadCutter(cutter)
	return key
}
