// ABOUTME: Lopping of volume, part, supplement and year material
// ABOUTME: Cuts a call number back to the base shared by every piece of a set

package callnumber

import (
	"regexp"
	"sort"
	"strings"
)

// volumeWords are the abbreviations that introduce a volume or part statement.
var volumeWords = []string{
	"v", "vol", "vols", "no", "nos", "n", "bd", "bde", "h", "hft", "heft",
	"t", "tome", "tomo", "tom", "pt", "pts", "part", "ser", "series",
	"k", "kn", "kniga", "jahrg", "jaarg", "anno", "ano", "ann", "suppl", "supp",
	"index", "yr", "year", "disc", "disk", "c", "copy", "ch", "chap", "sec",
	"sect", "iss", "issue", "bk", "book", "vyp", "new ser", "n.s",
}

// monthWords also count as volume words; serials are often split by issue date.
var monthWords = []string{
	"jan", "january", "feb", "february", "mar", "march", "apr", "april", "may",
	"jun", "june", "jul", "july", "aug", "august", "sep", "sept", "september",
	"oct", "october", "nov", "november", "dec", "december", "spring", "summer",
	"fall", "autumn", "winter",
}

// additionalVolumeWords mark containers that need no trailing number.
var additionalVolumeWords = []string{
	"box", "boxes", "reel", "reels", "tube", "tubes", "fiche", "carton",
	"cartons", "folder", "folders", "flat box", "map case", "envelope",
	"portfolio", "cassette", "roll", "rolls", "oversize box", "half box",
}

const volumeLead = `(?:^|[\s,;:(])`

var (
	datedVolumeWords = append(append([]string(nil), volumeWords...), monthWords...)

	volumeNumbered = vocabPattern(datedVolumeWords,
		`\.?\s*\d+[a-z]?(?:[-/]\d+)?(?:[\s,:]*\(?\d{4}(?:[-/]\d{2,4})?\)?)?`)
	volumeLoose = vocabPattern(datedVolumeWords,
		`\.\s*\S`)
	volumeBare = vocabPattern(datedVolumeWords,
		`\s+[a-z0-9](?:\s|$)`)
	volumeAdditional = vocabPattern(additionalVolumeWords, `\b`)

	volumePatterns = []*regexp.Regexp{volumeNumbered, volumeLoose, volumeBare, volumeAdditional}

	looseMonth = regexp.MustCompile(`(?i)` + volumeLead + `(` + alternation(monthWords) +
		`\.?(?:\s*[-/]\s*` + alternation(monthWords) + `\.?)?(?:\s*\d{1,4})?\s*)$`)
	serialMonth = regexp.MustCompile(`(?i)` + volumeLead + `(` + alternation(monthWords) + `)\b`)
	serialYear  = regexp.MustCompile(`(?:^|[\s(,:])(\d{4})\b`)
)

// alternation builds a non-capturing group, longest word first.
func alternation(words []string) string {
	sorted := append([]string(nil), words...)
	sort.SliceStable(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })
	quoted := make([]string, len(sorted))
	for i, w := range sorted {
		quoted[i] = strings.ReplaceAll(regexp.QuoteMeta(w), " ", `\s+`)
	}
	return `(?:` + strings.Join(quoted, "|") + `)`
}

// vocabPattern captures, in group 1, a vocabulary word followed by tail.
func vocabPattern(words []string, tail string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + volumeLead + `(` + alternation(words) + tail + `)`)
}

// volumeCut returns the offset in s where volume material starts, searching
// from offset from. Patterns are tried in priority order and the first one
// that matches anywhere wins. It returns -1 when nothing matches.
func volumeCut(s string, from int) int {
	if from < 0 || from > len(s) {
		from = 0
	}
	tail := s[from:]
	for _, re := range volumePatterns {
		if loc := re.FindStringSubmatchIndex(tail); loc != nil {
			return from + loc[2]
		}
	}
	return -1
}

// lopVolume cuts s before its volume statement and any trailing month text.
func lopVolume(s string, from int) string {
	if cut := volumeCut(s, from); cut >= 0 {
		s = trimLopped(s[:cut])
	}
	if from > len(s) {
		return s
	}
	if loc := looseMonth.FindStringSubmatchIndex(s[from:]); loc != nil {
		s = trimLopped(s[:from+loc[2]])
	}
	return s
}

// lopSerial additionally cuts a serial call number at the earlier of a month
// name or a bare four digit year. A cut that would leave fewer than four
// characters is skipped in favour of the next one.
func lopSerial(s string, from int) string {
	if from > len(s) {
		return s
	}
	tail := s[from:]
	var cuts []int
	if loc := serialMonth.FindStringSubmatchIndex(tail); loc != nil {
		cuts = append(cuts, from+loc[2])
	}
	if loc := serialYear.FindStringSubmatchIndex(tail); loc != nil {
		cuts = append(cuts, from+loc[2])
	}
	sort.Ints(cuts)
	for _, cut := range cuts {
		if lopped := trimLopped(s[:cut]); len(lopped) >= 4 {
			return lopped
		}
	}
	return s
}

// trimLopped drops whitespace and dangling separators left by a cut.
func trimLopped(s string) string {
	return strings.TrimRight(s, " \t,;:(-/")
}
