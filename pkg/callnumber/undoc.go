// ABOUTME: United Nations and intergovernmental document symbols
// ABOUTME: Splits on slashes outside parentheses and normalizes each part

package callnumber

import (
	"regexp"
	"strconv"
	"strings"
)

// yearBasis is the first year two digit UN years can stand for.
const yearBasis = 1945

var (
	symbolPart       = regexp.MustCompile(`^[A-Z][A-Z.]{0,7}$`)
	letterDotDigit   = regexp.MustCompile(`([A-Za-z])\.(\d)`)
	digitDotLetter   = regexp.MustCompile(`(\d)\.([A-Za-z])`)
	parenthesized    = regexp.MustCompile(`\([^)]*\)`)
	twoDigitPart     = regexp.MustCompile(`^\d{2}$`)
	sessionalPart    = regexp.MustCompile(`^\d{1,4}[A-Za-z]?(?:\s*\(.*\))?$`)
	fourDigitYear    = regexp.MustCompile(`(?:^|\D)(?:1[89]|20)\d{2}(?:\D|$)`)
	trailingYearPart = regexp.MustCompile(`^\(?\d{4}(?:[-/]\d{2,4})?\)?$`)
)

// UNDOC is a document symbol such as "ST/ESA/SER.A/360" or "OEA/SER.L/V/II.118".
type UNDOC struct {
	raw string

	// Parts holds the normalized slash separated parts.
	Parts []string

	// partEnds are the byte offsets in raw where each part stops.
	partEnds []int
}

// ParseUNDOC splits and normalizes raw.
func ParseUNDOC(raw string) *UNDOC {
	raw = strings.TrimSpace(raw)
	parts, ends := splitScoped(raw, '/')
	u := &UNDOC{raw: raw, partEnds: ends}

	for i, p := range parts {
		p = strings.TrimSpace(p)
		p = parenthesized.ReplaceAllStringFunc(p, func(s string) string {
			return strings.Join(strings.Fields(s), "")
		})
		if i >= 2 || !symbolPart.MatchString(p) {
			p = replaceRomans(p)
		}
		p = letterDotDigit.ReplaceAllString(p, "$1$2")
		p = digitDotLetter.ReplaceAllString(p, "$1$2")
		parts[i] = p
	}
	u.Parts = expandTwoDigitYears(parts)
	return u
}

func (u *UNDOC) Scheme() Scheme { return SchemeUNDOC }
func (u *UNDOC) Raw() string    { return u.raw }
func (u *UNDOC) sealed()        {}

// Symbol is the issuing body prefix, the first part.
func (u *UNDOC) Symbol() string {
	if len(u.Parts) == 0 {
		return ""
	}
	return u.Parts[0]
}

// Lopped cuts volume statements found after the symbol prefix. Serials also
// lose a final part that is only a year.
func (u *UNDOC) Lopped(serial bool) string {
	from := 0
	if len(u.partEnds) > 1 {
		from = u.partEnds[1]
	} else if len(u.partEnds) == 1 {
		from = u.partEnds[0]
	}
	lopped := lopVolume(u.raw, from)
	if !serial || len(u.partEnds) < 3 {
		return lopped
	}
	last := len(u.partEnds) - 1
	cutAt := u.partEnds[last-1]
	tail := strings.TrimSpace(u.raw[min(cutAt+1, len(u.raw)):u.partEnds[last]])
	if cutAt < len(lopped) && trailingYearPart.MatchString(tail) {
		return trimLopped(lopped[:cutAt])
	}
	return lopped
}

// ShelfKey builds "undoc <symbol> <parts...>".
func (u *UNDOC) ShelfKey(volume string) string {
	keys := make([]string, 0, len(u.Parts)+2)
	keys = append(keys, SchemeUNDOC.Tag())
	for _, p := range u.Parts {
		keys = append(keys, PadAllDigits(p, restWidth))
	}
	keys = append(keys, PadAllDigits(volume, restWidth))
	return joinKey(keys...)
}

// splitScoped splits s on sep except inside parentheses. It also returns the
// offset where each part ends.
func splitScoped(s string, sep byte) ([]string, []int) {
	var parts []string
	var ends []int
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case sep:
			if depth == 0 {
				parts = append(parts, s[start:i])
				ends = append(ends, i)
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	ends = append(ends, len(s))
	return parts, ends
}

// expandTwoDigitYears widens a bare two digit part to a year when the next part
// looks like a session or issue number. Symbols that already carry a four
// digit year are left alone so the same date is not read twice.
func expandTwoDigitYears(parts []string) []string {
	for _, p := range parts {
		if fourDigitYear.MatchString(p) {
			return parts
		}
	}
	for i := 0; i+1 < len(parts); i++ {
		if !twoDigitPart.MatchString(parts[i]) || !sessionalPart.MatchString(parts[i+1]) {
			continue
		}
		yy, _ := strconv.Atoi(parts[i])
		year := 1900 + yy
		if year < yearBasis {
			year += 100
		}
		parts[i] = strconv.Itoa(year)
	}
	return parts
}
