package callnumber

import (
	"strings"
	"time"
)

// YearWindow bounds the values a SUDOC number may take to be read as a year.
// Three digit years (841-999) are the nineteenth and twentieth century
// shorthand used in older documents. A zero Max means the current year.
type YearWindow struct {
	ShortMin int
	ShortMax int
	Min      int
	Max      int
}

// Contains reports whether the raw digits describe a plausible year.
func (w YearWindow) Contains(digits string) bool {
	v, ok := atoi(digits)
	if !ok {
		return false
	}
	switch len(digits) {
	case 3:
		return v >= w.ShortMin && v <= w.ShortMax
	case 4:
		latest := w.Max
		if latest == 0 {
			latest = time.Now().Year()
		}
		return v >= w.Min && v <= latest
	}
	return false
}

// Options holds the tunables of an Engine. The zero value is not useful; start
// from DefaultOptions.
type Options struct {
	// ReverseWidth is the padded width of reverse shelf keys.
	ReverseWidth int
	// SudocYears decides which SUDOC numbers are years.
	SudocYears YearWindow
	// PrefixBlocklist lists common prefixes never accepted as an Other base.
	PrefixBlocklist []string
	// SeriesLocations are location codes shelved by series title.
	SeriesLocations []string
}

// DefaultOptions returns the settings that match the existing browse index.
func DefaultOptions() Options {
	return Options{
		ReverseWidth: DefaultReverseWidth,
		SudocYears: YearWindow{
			ShortMin: 841,
			ShortMax: 999,
			Min:      1841,
		},
		PrefixBlocklist: []string{"mcd", "mdvd", "zdvd", "mfilm", "mfiche"},
		SeriesLocations: []string{"SHELBYSER"},
	}
}

func (o Options) blocked(prefix string) bool {
	for _, b := range o.PrefixBlocklist {
		if strings.EqualFold(b, prefix) {
			return true
		}
	}
	return false
}

func (o Options) seriesLocation(code string) bool {
	for _, s := range o.SeriesLocations {
		if strings.EqualFold(s, code) {
			return true
		}
	}
	return false
}

func atoi(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
		if n > 1<<30 {
			return 0, false
		}
	}
	return n, true
}
