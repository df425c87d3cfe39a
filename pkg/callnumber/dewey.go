// ABOUTME: Dewey Decimal call numbers
// ABOUTME: Keeps the text after the first cutter apart as lop candidate material

package callnumber

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	deweyCutter       = `[./]?[A-Za-z]+\d+[A-Za-z]*`
	deweyNumberWidth  = 3
	deweyDecimalWidth = 8
)

var deweyPattern = regexp.MustCompile(`^(?P<number>\d{1,3})(?P<decimal>\.\d+)?\s*` +
	`(?P<doon1>` + doonPattern + `)?\s*` +
	`(?P<cutter1>` + deweyCutter + `)?` +
	`(?P<after>\s*` +
	`(?P<doon2>` + doonPattern + `)?\s*` +
	`(?P<cutter2>` + deweyCutter + `)?\s*` +
	`(?P<cutter3>` + deweyCutter + `)?\s*` +
	`(?P<folio>` + folioPattern + `)?\s*` +
	`(?P<rest>.*))$`)

// Dewey is a Dewey Decimal call number such as "330.973 .S34 v.2".
type Dewey struct {
	raw string

	Number  string
	Decimal string
	Doon1   string
	Cutter1 string
	// After is everything following the first cutter; volume statements and
	// serial dates are only looked for here.
	After   string
	Doon2   string
	Cutter2 string
	Cutter3 string
	Folio   string
	Rest    string

	afterStart int
	volumeFrom int
}

// ParseDewey decomposes raw. Text that does not fit the grammar ends up in Rest.
func ParseDewey(raw string) *Dewey {
	raw = strings.TrimSpace(raw)
	d := &Dewey{raw: raw, Rest: raw, After: raw}
	m, ok := matchNamed(deweyPattern, raw)
	if !ok {
		return d
	}
	d.Number = m.group("number")
	d.Decimal = m.group("decimal")
	d.Doon1 = strings.TrimSpace(m.group("doon1"))
	d.Cutter1 = m.group("cutter1")
	d.After = m.group("after")
	d.Doon2 = strings.TrimSpace(m.group("doon2"))
	d.Cutter2 = m.group("cutter2")
	d.Cutter3 = m.group("cutter3")
	d.Folio = strings.TrimSpace(m.group("folio"))
	d.Rest = strings.TrimSpace(m.group("rest"))
	d.afterStart = m.start("after")
	d.volumeFrom = m.lastEnd(d.afterStart, "doon2", "cutter2", "cutter3", "folio")
	return d
}

func (d *Dewey) Scheme() Scheme { return SchemeDewey }
func (d *Dewey) Raw() string    { return d.raw }
func (d *Dewey) sealed()        {}

// Lopped drops volume material found after the last cutter. Serial dates are
// looked for anywhere after the first one.
func (d *Dewey) Lopped(serial bool) string {
	lopped := lopVolume(d.raw, d.volumeFrom)
	if serial {
		lopped = lopSerial(lopped, d.afterStart)
	}
	return lopped
}

// ShelfKey builds "dewey <number> <doon1> <cutter1> ... <rest>".
func (d *Dewey) ShelfKey(volume string) string {
	return joinKey(
		SchemeDewey.Tag(),
		classKey("", d.Number, deweyNumberWidth, d.Decimal, deweyDecimalWidth),
		PadAllDigits(d.Doon1, doonWidth),
		cutterKey(d.Cutter1),
		PadAllDigits(d.Doon2, doonWidth),
		cutterKey(d.Cutter2),
		cutterKey(d.Cutter3),
		strings.ToLower(d.Folio),
		PadAllDigits(d.Rest, restWidth),
		PadAllDigits(volume, restWidth),
	)
}

// WithLeadingZeros rewrites the class number to three digits, so "1 .M32"
// reads "001 .M32".
func (d *Dewey) WithLeadingZeros() string {
	if d.Number == "" {
		return d.raw
	}
	return PadNumber(d.Number, deweyNumberWidth) + d.raw[len(d.Number):]
}

// LeadingZeros is WithLeadingZeros for a value only known as Parsed. Asking
// for it on anything but a Dewey call number is a programming error.
func LeadingZeros(p Parsed) string {
	d, ok := p.(*Dewey)
	if !ok {
		panic(fmt.Sprintf("callnumber: leading zeros requested for %s call number %q", p.Scheme(), p.Raw()))
	}
	return d.WithLeadingZeros()
}
