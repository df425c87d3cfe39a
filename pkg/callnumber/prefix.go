package callnumber

import (
	"regexp"
	"strings"
)

var (
	trailingPartialYear = regexp.MustCompile(`[\s(]\(?[12]\d{0,3}\)?$`)
	trailingSeparator   = regexp.MustCompile(`[\s.,:;/-]$`)
	trailingVolumeWord  = regexp.MustCompile(`(?i)` + volumeLead + `(` + alternation(datedVolumeWords) + `\.?)$`)
)

const minPrefixLength = 4

// LongestCommonPrefix returns the byte prefix shared by all values. It is empty
// for fewer than two values. Order does not matter and values is not modified.
func LongestCommonPrefix(values []string) string {
	if len(values) < 2 {
		return ""
	}
	prefix := values[0]
	for _, v := range values[1:] {
		n := 0
		for n < len(prefix) && n < len(v) && prefix[n] == v[n] {
			n++
		}
		prefix = prefix[:n]
		if prefix == "" {
			break
		}
	}
	return prefix
}

// OtherBase picks the base call number for an Other holding from the prefix
// it shares with its siblings. The prefix loses a trailing partial year,
// anything from a volume statement on, and one trailing separator. When what
// is left is empty, too short or a known media prefix, the call number itself
// is returned. siblings may or may not include callNumber.
func (e *Engine) OtherBase(callNumber string, siblings []string) string {
	callNumber = strings.TrimSpace(callNumber)
	values := make([]string, 0, len(siblings)+1)
	member := false
	for _, s := range siblings {
		s = strings.TrimSpace(s)
		member = member || s == callNumber
		values = append(values, s)
	}
	if !member {
		values = append(values, callNumber)
	}

	prefix := LongestCommonPrefix(values)
	prefix = trailingPartialYear.ReplaceAllString(prefix, "")
	if cut := volumeCut(prefix, 0); cut >= 0 {
		prefix = prefix[:cut]
	}
	if loc := trailingVolumeWord.FindStringSubmatchIndex(prefix); loc != nil {
		prefix = prefix[:loc[2]]
	}
	prefix = trailingSeparator.ReplaceAllString(prefix, "")
	prefix = strings.TrimSpace(prefix)

	if prefix == "" || len(prefix) <= minPrefixLength || e.opts.blocked(prefix) {
		return callNumber
	}
	return prefix
}
