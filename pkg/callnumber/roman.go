package callnumber

import (
	"regexp"
	"strconv"
)

var romanWord = regexp.MustCompile(`\b[IVXLCDM]+\b`)

var romanValues = map[byte]int{
	'I': 1, 'V': 5, 'X': 10, 'L': 50, 'C': 100, 'D': 500, 'M': 1000,
}

var romanTable = []struct {
	value  int
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"}, {100, "C"}, {90, "XC"},
	{50, "L"}, {40, "XL"}, {10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

// romanToInt reads an upper-case roman numeral. Only canonical spellings are
// accepted, so "IIII" or "VX" are left alone as text.
func romanToInt(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	total := 0
	for i := 0; i < len(s); i++ {
		v, ok := romanValues[s[i]]
		if !ok {
			return 0, false
		}
		if i+1 < len(s) && romanValues[s[i+1]] > v {
			total -= v
		} else {
			total += v
		}
	}
	if total <= 0 || intToRoman(total) != s {
		return 0, false
	}
	return total, true
}

func intToRoman(n int) string {
	var out []byte
	for _, r := range romanTable {
		for n >= r.value {
			out = append(out, r.symbol...)
			n -= r.value
		}
	}
	return string(out)
}

// replaceRomans swaps every standalone roman numeral word in s for its
// decimal value.
func replaceRomans(s string) string {
	return romanWord.ReplaceAllStringFunc(s, func(word string) string {
		if v, ok := romanToInt(word); ok {
			return strconv.Itoa(v)
		}
		return word
	})
}
