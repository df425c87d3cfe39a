// ABOUTME: Reverse shelf key encoding
// ABOUTME: Maps each key character onto its complement so keys sort descending

package callnumber

import (
	"strings"
	"unicode"
)

const (
	// DefaultReverseWidth is the padded width of a reverse shelf key.
	DefaultReverseWidth = 50

	nearEnd  = '~'
	terminal = '~'
)

const alphanum = "0123456789abcdefghijklmnopqrstuvwxyz"

var reverseTable = buildReverseTable()

func buildReverseTable() map[rune]rune {
	t := make(map[rune]rune, len(alphanum)+16)
	for i, c := range alphanum {
		t[c] = rune(alphanum[len(alphanum)-1-i])
	}
	t['.'] = '}'
	for _, c := range " /:-!,;+" {
		t[c] = nearEnd
	}
	for _, c := range "{|}~" {
		t[c] = ' '
	}
	return t
}

// reverseRune complements a single character. Letters and digits outside the
// table land on '0', just below the mapped digits; anything else is terminal.
func reverseRune(c rune) rune {
	if r, ok := reverseTable[unicode.ToLower(c)]; ok {
		return r
	}
	if unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_' {
		return '0'
	}
	return terminal
}

// Reverse complements every character of key without padding.
func Reverse(key string) string {
	var b strings.Builder
	b.Grow(len(key))
	for _, c := range key {
		b.WriteRune(reverseRune(c))
	}
	return b.String()
}

// ReverseKey complements key and pads it with the terminal sentinel to width.
// Keys longer than width are never cut.
func ReverseKey(key string, width int) string {
	return padTerminal(Reverse(key), width)
}

func padTerminal(r string, width int) string {
	if n := width - len(r); n > 0 {
		r += strings.Repeat(string(terminal), n)
	}
	return r
}
