package callnumber

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRomanToInt(t *testing.T) {
	for in, want := range map[string]int{"I": 1, "IV": 4, "XIV": 14, "MCMXCIV": 1994} {
		got, ok := romanToInt(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	for _, in := range []string{"", "IIII", "VX", "ABC"} {
		_, ok := romanToInt(in)
		assert.False(t, ok, in)
	}
}

func TestReplaceRomans(t *testing.T) {
	assert.Equal(t, "PART 4", replaceRomans("PART IV"))
	assert.Equal(t, "SESS 12 IIII", replaceRomans("SESS XII IIII"))
}
