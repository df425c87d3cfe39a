package callnumber

import "strings"

// Other is a call number with no structure we can rely on: accession numbers,
// local schemes, media shelf marks. Its base comes from the common prefix of
// the holdings it is shelved with.
type Other struct {
	raw string
	tag string
}

// ParseOther wraps raw. sudoc marks documents numbers that are filed as
// SUDOC but were not parsed as such; their keys carry the "sudoc" tag.
func ParseOther(raw string, sudoc bool) *Other {
	tag := SchemeOther.Tag()
	if sudoc {
		tag = SchemeSUDOC.Tag()
	}
	return &Other{raw: strings.TrimSpace(raw), tag: tag}
}

func (o *Other) Scheme() Scheme { return SchemeOther }
func (o *Other) Raw() string    { return o.raw }
func (o *Other) sealed()        {}

// Tag is the scheme prefix written into the shelf key.
func (o *Other) Tag() string { return o.tag }

// ShelfKey is the tag followed by the digit padded call number and volume.
// It is deliberately not padded to a fixed width.
func (o *Other) ShelfKey(volume string) string {
	return joinKey(o.tag, PadAllDigits(o.raw, restWidth), PadAllDigits(volume, restWidth))
}
