package callnumber

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReverseTable(t *testing.T) {
	tests := map[string]string{
		"0":  "z",
		"9":  "q",
		"a":  "p",
		"A":  "p",
		"z":  "0",
		".":  "}",
		" ":  "~",
		"/":  "~",
		"!":  "~",
		"~":  " ",
		"{":  " ",
		"é":  "0",
		"#":  "~",
		"ab": "po",
	}
	for in, want := range tests {
		assert.Equal(t, want, Reverse(in), "reverse of %q", in)
	}
}

func TestReverseKeyPadding(t *testing.T) {
	assert.Equal(t, "po~~~", ReverseKey("ab", 5))

	long := strings.Repeat("a", 60)
	assert.Len(t, ReverseKey(long, DefaultReverseWidth), 60)
	assert.Len(t, ReverseKey("lc", DefaultReverseWidth), DefaultReverseWidth)
}

func TestReverseOrderLaw(t *testing.T) {
	raws := []string{
		"QA76.73 .J38 2003 v.10",
		"B1 .C3",
		"QA76 .A1",
		"PS3545 .I345 Z5 1990",
		"QA76.73 .J38 2003",
		"QA76.5 .B2",
		"QA76.73 .J38 2003 v.9",
		"QA76.73 .J38 2003 v.1",
	}
	pairs := schemePairs(SchemeLC, raws...)
	assertMirrored(t, pairs)

	forward := append([]keyPair(nil), pairs...)
	sort.Slice(forward, func(i, j int) bool { return forward[i].key < forward[j].key })
	assert.Equal(t, "B1 .C3", forward[0].label)
	assert.Equal(t, "QA76.73 .J38 2003 v.10", forward[len(forward)-1].label)
}

type keyPair struct{ label, key, rev string }

// assertMirrored sorts pairs by forward and by reverse key and expects the
// two orders to be each other's mirror.
func assertMirrored(t *testing.T, pairs []keyPair) {
	t.Helper()
	seen := make(map[string]string, len(pairs))
	for _, p := range pairs {
		require.NotContains(t, seen, p.key, "%q and %q share a key", seen[p.key], p.label)
		seen[p.key] = p.label
	}

	forward := append([]keyPair(nil), pairs...)
	sort.Slice(forward, func(i, j int) bool { return forward[i].key < forward[j].key })
	backward := append([]keyPair(nil), pairs...)
	sort.Slice(backward, func(i, j int) bool { return backward[i].rev < backward[j].rev })

	for i := range forward {
		assert.Equal(t, forward[i].label, backward[len(backward)-1-i].label, "position %d", i)
	}
}

func schemePairs(scheme Scheme, raws ...string) []keyPair {
	pairs := make([]keyPair, 0, len(raws))
	for _, raw := range raws {
		key := ShelfKey(Parse(raw, scheme), "")
		pairs = append(pairs, keyPair{label: raw, key: key, rev: Default().ReverseKey(key)})
	}
	return pairs
}

func TestReverseOrderLawPerScheme(t *testing.T) {
	sets := map[Scheme][]string{
		SchemeLC: {
			"QA76.73 .J38 2003 v.10", "B1 .C3", "QA76 .A1", "PQ2603 .A1 T5",
			"PS3545 .I345 Z5 1990", "QA76.73 .J38 2003", "QA76.73 .J38 2003 v.9",
		},
		SchemeDewey: {
			"12 .M32 2002", "1 .M32 2002", "1.1 .M32 2002",
			"330.973 .S34 v.10", "330.973 .S34 v.2", "330.973 .S34",
		},
		SchemeSUDOC: {
			"Y 4.ED 8/1:117-48", "Y4.ED8/1:117-53", "A 1.1:1999", "A 1.1:ABC",
			"A 1.1:5", "A 1.1", "C 3.2:1990-95", "HE 20.3152:D 84/2000",
		},
		SchemeUNDOC: {
			"OEA/SER.L/V/ III", "OEA/SER.L/V/5", "A/52/PV.45", "A/52/PV.5",
			"A/53/PV.1", "E/CN.4/1995/100",
		},
		SchemeCALDOC: {
			"CALIF L425 .L5 1979 NO.3", "CALIF L425 .L5 1979 NO.12", "CALIF L425 .L5",
			"CALIF G800 .H5 1991-92", "CALIF L500 .P7 1985",
		},
		SchemeOther: {
			"DVD 123 disc 2", "DVD 123 disc 10", "DVD 45", "CD 9", "MFILM 12",
		},
	}

	var all []keyPair
	for scheme, raws := range sets {
		pairs := schemePairs(scheme, raws...)
		all = append(all, pairs...)
		t.Run(string(scheme), func(t *testing.T) {
			assertMirrored(t, pairs)
		})
	}
	t.Run("mixed", func(t *testing.T) {
		assertMirrored(t, all)
	})
}

func TestReverseOrderLawOtherPadding(t *testing.T) {
	key := ShelfKey(Parse("DVD 45", SchemeOther), "")
	assert.Equal(t, "other dvd 000045", key)
	assert.Len(t, Default().ReverseKey(key), DefaultReverseWidth)
}

func TestReverseOrderLawShelvedByLocation(t *testing.T) {
	var pairs []keyPair
	for _, volume := range []string{"v.10", "", "v.2", "v.1"} {
		h := lcHolding("")
		h.byLocation = true
		h.enumeration = volume
		d := Resolve(h, false, nil)
		pairs = append(pairs, keyPair{label: d.CallNumber, key: d.ShelfKey, rev: d.ReverseShelfKey})
	}
	// Only the volume is reverse encoded, so the law holds within one label.
	assertMirrored(t, pairs)
}
