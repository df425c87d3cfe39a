package callnumber

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLopSerialKeepsFourCharacters(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"ABCD 1990", "ABCD"},
		// cutting at the year would leave "AB"
		{"AB 1990", "AB 1990"},
		// the month cut is too short, the year cut is not
		{"AB JAN 1990", "AB JAN"},
		{"ABCDE JAN 1990", "ABCDE"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, lopSerial(tt.raw, 0))
		})
	}
}

func TestSUDOCSerialLopKeepsFourCharacters(t *testing.T) {
	window := DefaultOptions().SudocYears
	assert.Equal(t, "Y 4:1990", ParseSUDOC("Y 4:1990", window).Lopped(true))
	assert.Equal(t, "Y 4.ED 8/1", ParseSUDOC("Y 4.ED 8/1:2005", window).Lopped(true))
}
