// ABOUTME: Classification schemes and the parsed call number union
// ABOUTME: Parsed is sealed; builders switch over its six concrete variants

package callnumber

import (
	"regexp"
	"strings"
)

// Scheme identifies the classification a call number was assigned under.
type Scheme string

const (
	SchemeLC     Scheme = "LC"
	SchemeDewey  Scheme = "DEWEY"
	SchemeSUDOC  Scheme = "SUDOC"
	SchemeUNDOC  Scheme = "UNDOC"
	SchemeCALDOC Scheme = "CALDOC"
	SchemeOther  Scheme = "OTHER"
)

// Schemes lists every scheme in a stable order.
var Schemes = []Scheme{SchemeLC, SchemeDewey, SchemeSUDOC, SchemeUNDOC, SchemeCALDOC, SchemeOther}

// ParseScheme accepts a scheme name in any case. Unknown names map to
// SchemeOther with ok false.
func ParseScheme(name string) (Scheme, bool) {
	s := Scheme(strings.ToUpper(strings.TrimSpace(name)))
	for _, known := range Schemes {
		if s == known {
			return s, true
		}
	}
	return SchemeOther, false
}

// Tag is the lower-case scheme prefix written at the front of shelf keys.
func (s Scheme) Tag() string {
	return strings.ToLower(string(s))
}

// Parsed is a call number decomposed under one scheme. The implementations
// are *LC, *Dewey, *SUDOC, *UNDOC, *CALDOC and *Other.
type Parsed interface {
	Scheme() Scheme
	Raw() string
	sealed()
}

// submatch gives named access to a regexp match by byte offsets.
type submatch struct {
	re  *regexp.Regexp
	s   string
	loc []int
}

func matchNamed(re *regexp.Regexp, s string) (submatch, bool) {
	loc := re.FindStringSubmatchIndex(s)
	return submatch{re: re, s: s, loc: loc}, loc != nil
}

func (m submatch) group(name string) string {
	i := m.re.SubexpIndex(name)
	if i < 0 || m.loc[2*i] < 0 {
		return ""
	}
	return m.s[m.loc[2*i]:m.loc[2*i+1]]
}

func (m submatch) start(name string) int {
	i := m.re.SubexpIndex(name)
	if i < 0 {
		return -1
	}
	return m.loc[2*i]
}

func (m submatch) end(name string) int {
	i := m.re.SubexpIndex(name)
	if i < 0 {
		return -1
	}
	return m.loc[2*i+1]
}

// lastEnd is the furthest end of the named groups that matched, or from when
// none reaches past it.
func (m submatch) lastEnd(from int, names ...string) int {
	for _, name := range names {
		if end := m.end(name); end > from {
			from = end
		}
	}
	return from
}

// joinKey writes the non-blank parts separated by spaces. Padding inside a
// part is kept.
func joinKey(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.TrimSpace(strings.Join(kept, " "))
}
