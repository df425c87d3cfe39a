package callnumber

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLongestCommonPrefix(t *testing.T) {
	assert.Equal(t, "", LongestCommonPrefix(nil))
	assert.Equal(t, "", LongestCommonPrefix([]string{"abc"}))
	assert.Equal(t, "ab", LongestCommonPrefix([]string{"abc", "abd", "ab"}))
	assert.Equal(t, "ab", LongestCommonPrefix([]string{"ab", "abd", "abc"}))
	assert.Equal(t, "", LongestCommonPrefix([]string{"abc", "xyz"}))

	values := []string{"abc", "abd"}
	LongestCommonPrefix(values)
	assert.Equal(t, []string{"abc", "abd"}, values)
}

func TestOtherBase(t *testing.T) {
	e := Default()
	tests := []struct {
		name       string
		callNumber string
		siblings   []string
		want       string
	}{
		{"volume cut", "VIDEO 1234 v.1", []string{"VIDEO 1234 v.1", "VIDEO 1234 v.12"}, "VIDEO 1234"},
		{"dangling volume word", "VIDEO 1234 v.1", []string{"VIDEO 1234 v.1", "VIDEO 1234 v.2"}, "VIDEO 1234"},
		{"partial year", "FILM 1234 1998", []string{"FILM 1234 1999"}, "FILM 1234"},
		{"blocked media prefix", "MFILM 123", []string{"MFILM 456"}, "MFILM 123"},
		{"too short", "AB12 1", []string{"AB12 2"}, "AB12 1"},
		{"nothing shared", "ABC", []string{"XYZ"}, "ABC"},
		{"alone", "VIDEO 1234 v.1", nil, "VIDEO 1234 v.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.OtherBase(tt.callNumber, tt.siblings))
		})
	}
}

func TestOtherBaseCustomBlocklist(t *testing.T) {
	e := New(Options{PrefixBlocklist: []string{"video 1234"}})
	assert.Equal(t, "VIDEO 1234 v.1", e.OtherBase("VIDEO 1234 v.1", []string{"VIDEO 1234 v.2"}))
}
