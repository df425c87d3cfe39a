package callnumber

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPad(t *testing.T) {
	tests := []struct {
		name  string
		value string
		width int
		dir   Direction
		fill  byte
		want  string
	}{
		{"number", "7", 3, PadLeft, '0', "007"},
		{"text", "qa", 3, PadRight, ' ', "qa "},
		{"leading point widens", ".5", 4, PadRight, '0', ".5000"},
		{"trailing point widens", "12.", 3, PadLeft, '0', "012."},
		{"never truncates", "abcd", 2, PadLeft, '0', "abcd"},
		{"empty", "", 2, PadLeft, '0', "00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Pad(tt.value, tt.width, tt.dir, tt.fill))
		})
	}
}

func TestPadInvalidDirectionPanics(t *testing.T) {
	assert.Panics(t, func() { Pad("1", 3, Direction(7), '0') })
}

func TestPadAllDigits(t *testing.T) {
	assert.Equal(t, "v.009 pt 010", PadAllDigits("V.9 Pt 10", 3))
	assert.Equal(t, "", PadAllDigits("   ", 3))
	assert.Less(t, PadAllDigits("v.9", 6), PadAllDigits("v.10", 6))
}

func TestPadCutter(t *testing.T) {
	tests := []struct {
		cutter string
		want   string
	}{
		{".M32", "m .320000"},
		{"M32", "m .320000"},
		{"/S34", "s .340000"},
		{".M32ab", "m .320000ab"},
		{"A1234567", "a .123457"},
		{"A1234564", "a .123456"},
		{"B9999999", "b .999999"},
		{"Abc12", "abc.120000"},
	}
	for _, tt := range tests {
		t.Run(tt.cutter, func(t *testing.T) {
			got, ok := PadCutter(tt.cutter)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := PadCutter(" . ")
	assert.False(t, ok)
}
