// ABOUTME: U.S. Superintendent of Documents classification numbers
// ABOUTME: Tokenizes the stem so years, words and numbers file in that order

package callnumber

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// TokenKind classifies one content token of a SUDOC remainder.
type TokenKind int

const (
	TokenText TokenKind = iota
	TokenNumber
	TokenNumberRange
	TokenMixedRange
	TokenYear
	TokenYearRange
)

// Precedence markers: years file before words, words before numbers.
const (
	markYear    = "1"
	markText    = "2"
	markNumeric = "3"

	sudocEnd         = "!"
	sudocAgencyWidth = 4
	sudocNumberWidth = 6
)

var (
	sudocPattern = regexp.MustCompile(`^(?P<agency>[A-Za-z]+)\s*(?P<number>\d+)\s*\.?\s*(?P<rest>.*)$`)
	numberToken  = regexp.MustCompile(`^\d+$`)
	rangeToken   = regexp.MustCompile(`^(\d+)-(\d+)$`)
	mixedToken   = regexp.MustCompile(`^[A-Za-z0-9]+-[A-Za-z0-9]+$`)
	alnumRun     = regexp.MustCompile(`[A-Za-z]+|\d+`)
)

// Token is one classified piece of a SUDOC remainder. Delim is the delimiter
// run that preceded it.
type Token struct {
	Kind  TokenKind
	Text  string
	Delim string
}

// SUDOC is a documents class number such as "Y 4.ED 8/1:117-48".
type SUDOC struct {
	raw string

	Agency    string
	Number    string
	Remainder string
	Tokens    []Token

	restStart int
}

// ParseSUDOC decomposes raw, reading years with window.
func ParseSUDOC(raw string, window YearWindow) *SUDOC {
	raw = strings.TrimSpace(raw)
	s := &SUDOC{raw: raw, Remainder: raw}
	if m, ok := matchNamed(sudocPattern, raw); ok {
		s.Agency = m.group("agency")
		s.Number = m.group("number")
		s.Remainder = strings.TrimSpace(m.group("rest"))
		s.restStart = m.start("rest")
	}
	s.Tokens = tokenizeSUDOC(s.Remainder, window)
	return s
}

func (s *SUDOC) Scheme() Scheme { return SchemeSUDOC }
func (s *SUDOC) Raw() string    { return s.raw }
func (s *SUDOC) sealed()        {}

// Lopped cuts at the first volume statement in the remainder. For serials a
// trailing year or year range token is dropped as well.
func (s *SUDOC) Lopped(serial bool) string {
	lopped := lopVolume(s.raw, s.restStart)
	if !serial {
		return lopped
	}
	for i := len(s.Tokens) - 1; i >= 0; i-- {
		t := s.Tokens[i]
		if t.Kind != TokenYear && t.Kind != TokenYearRange {
			continue
		}
		if at := strings.LastIndex(lopped, t.Text); at > s.restStart {
			if cut := trimLopped(lopped[:at]); len(cut) >= 4 {
				return cut
			}
		}
		break
	}
	return lopped
}

// ShelfKey builds "sudoc <agency> <number> <tokens> !".
func (s *SUDOC) ShelfKey(volume string) string {
	encoded := make([]string, 0, len(s.Tokens)+1)
	for _, t := range s.Tokens {
		if e := t.encode(); e != "" {
			encoded = append(encoded, e)
		}
	}
	encoded = append(encoded, sudocEnd)

	number := ""
	if s.Number != "" {
		number = PadNumber(s.Number, sudocNumberWidth)
	}
	return joinKey(
		SchemeSUDOC.Tag(),
		PadText(strings.ToLower(s.Agency), sudocAgencyWidth),
		number,
		strings.Join(encoded, " "),
		PadAllDigits(volume, restWidth),
	)
}

func (t Token) encode() string {
	switch t.Kind {
	case TokenYear:
		return markYear + fullYear(t.Text)
	case TokenYearRange:
		m := rangeToken.FindStringSubmatch(t.Text)
		return markYear + fullYear(m[1]) + "-" + fullYear(relativeEnd(m[1], m[2]))
	case TokenNumber:
		return markNumeric + PadNumber(t.Text, sudocNumberWidth)
	case TokenNumberRange:
		m := rangeToken.FindStringSubmatch(t.Text)
		return markNumeric + PadNumber(m[1], sudocNumberWidth) + "-" + PadNumber(m[2], sudocNumberWidth)
	case TokenMixedRange:
		return markNumeric + PadAllDigits(t.Text, sudocNumberWidth)
	default:
		text := strings.ToLower(alnumOnly(t.Text))
		if text == "" {
			return ""
		}
		return markText + text
	}
}

func isSUDOCDelim(r rune) bool {
	return r == ':' || r == ';' || r == '/' || r == '+' || unicode.IsSpace(r)
}

// tokenizeSUDOC splits rest into delimiter and content runs and classifies
// each content run.
func tokenizeSUDOC(rest string, window YearWindow) []Token {
	var tokens []Token
	delim := ""
	for len(rest) > 0 {
		i := strings.IndexFunc(rest, func(r rune) bool { return !isSUDOCDelim(r) })
		if i < 0 {
			break
		}
		delim, rest = rest[:i], rest[i:]
		j := strings.IndexFunc(rest, isSUDOCDelim)
		if j < 0 {
			j = len(rest)
		}
		content := rest[:j]
		rest = rest[j:]
		tokens = append(tokens, classifySUDOC(content, delim, window)...)
	}
	return tokens
}

func classifySUDOC(content, delim string, window YearWindow) []Token {
	yearContext := afterYearDelim(delim)
	switch {
	case numberToken.MatchString(content):
		kind := TokenNumber
		if yearContext && window.Contains(content) {
			kind = TokenYear
		}
		return []Token{{Kind: kind, Text: content, Delim: delim}}
	case rangeToken.MatchString(content):
		m := rangeToken.FindStringSubmatch(content)
		kind := TokenNumberRange
		if yearContext && window.Contains(m[1]) && yearValue(relativeEnd(m[1], m[2])) > yearValue(m[1]) {
			kind = TokenYearRange
		}
		return []Token{{Kind: kind, Text: content, Delim: delim}}
	case mixedToken.MatchString(content):
		return []Token{{Kind: TokenMixedRange, Text: content, Delim: delim}}
	}

	// Split runs such as "ED8" so spacing differences do not change the key.
	var out []Token
	for i, run := range alnumRun.FindAllString(content, -1) {
		d := ""
		if i == 0 {
			d = delim
		}
		kind := TokenText
		if run[0] >= '0' && run[0] <= '9' {
			kind = TokenNumber
		}
		out = append(out, Token{Kind: kind, Text: run, Delim: d})
	}
	return out
}

// afterYearDelim reports whether the delimiter run ends in ':' or '/'.
func afterYearDelim(delim string) bool {
	d := strings.TrimRightFunc(delim, unicode.IsSpace)
	return strings.HasSuffix(d, ":") || strings.HasSuffix(d, "/")
}

// relativeEnd widens a shortened range end using the start's leading digits,
// so 1998-99 ends in 1999.
func relativeEnd(start, end string) string {
	if len(end) >= len(start) {
		return end
	}
	return start[:len(start)-len(end)] + end
}

// yearValue reads a year, lifting three digit years into the 1800s and 1900s.
func yearValue(digits string) int {
	v, _ := strconv.Atoi(digits)
	if len(digits) == 3 {
		v += 1000
	}
	return v
}

func fullYear(digits string) string {
	return strconv.Itoa(yearValue(digits))
}

func alnumOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}
