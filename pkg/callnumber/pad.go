// ABOUTME: Fixed-width padding primitives shared by every shelf key builder
// ABOUTME: Pads numbers, free text and cutters so byte order matches shelf order

package callnumber

import (
	"fmt"
	"regexp"
	"strings"
)

// Direction selects which side of a value receives fill characters.
type Direction int

const (
	PadLeft  Direction = iota // fill before the value (numbers)
	PadRight                  // fill after the value (text, decimals)
)

const (
	cutterLetterWidth = 2
	cutterDigitWidth  = 6
)

var (
	digitRun     = regexp.MustCompile(`\d+`)
	cutterFormat = regexp.MustCompile(`^([A-Za-z]*)(\d*)(.*)$`)
)

// Pad fills value up to width with fill on the given side. A value that starts
// or ends with a period gets one extra column so the point does not eat into
// the digits. Values already at or over width are returned unchanged.
func Pad(value string, width int, dir Direction, fill byte) string {
	if strings.HasPrefix(value, ".") || strings.HasSuffix(value, ".") {
		width++
	}
	n := width - len(value)
	switch dir {
	case PadLeft:
		if n <= 0 {
			return value
		}
		return strings.Repeat(string(fill), n) + value
	case PadRight:
		if n <= 0 {
			return value
		}
		return value + strings.Repeat(string(fill), n)
	default:
		panic(fmt.Sprintf("callnumber: invalid pad direction %d", dir))
	}
}

// PadNumber left-pads value with zeros.
func PadNumber(value string, width int) string {
	return Pad(value, width, PadLeft, '0')
}

// PadText right-pads value with spaces.
func PadText(value string, width int) string {
	return Pad(value, width, PadRight, ' ')
}

// PadAllDigits lower-cases value and left-pads every run of digits to width,
// so "v.9" sorts before "v.10".
func PadAllDigits(value string, width int) string {
	value = strings.ToLower(value)
	value = digitRun.ReplaceAllStringFunc(value, func(run string) string {
		return PadNumber(run, width)
	})
	return strings.TrimSpace(value)
}

// PadCutter normalizes a cutter such as ".M32" into "m .320000". The digits
// are a decimal fraction and are rounded to six places when longer; this only
// affects sorting. The second result is false when there is no cutter.
func PadCutter(cutter string) (string, bool) {
	cutter = strings.TrimSpace(cutter)
	cutter = strings.TrimLeft(cutter, "./")
	if cutter == "" {
		return "", false
	}

	m := cutterFormat.FindStringSubmatch(cutter)
	letters, digits, suffix := m[1], m[2], m[3]
	digits = roundCutterDigits(digits)

	var b strings.Builder
	b.WriteString(PadText(strings.ToLower(letters), cutterLetterWidth))
	b.WriteString(Pad("."+digits, cutterDigitWidth, PadRight, '0'))
	b.WriteString(strings.ToLower(strings.TrimSpace(suffix)))
	return b.String(), true
}

// roundCutterDigits rounds a digit string read as a fraction to six places,
// half up. A carry out of the sixth place saturates at 999999 since a cutter
// never reaches the next whole number.
func roundCutterDigits(digits string) string {
	if len(digits) <= cutterDigitWidth {
		return digits
	}
	kept := []byte(digits[:cutterDigitWidth])
	if digits[cutterDigitWidth] < '5' {
		return string(kept)
	}
	for i := len(kept) - 1; i >= 0; i-- {
		if kept[i] < '9' {
			kept[i]++
			return string(kept)
		}
		kept[i] = '0'
	}
	return strings.Repeat("9", cutterDigitWidth)
}
