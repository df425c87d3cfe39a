// ABOUTME: Scheme dispatch for parsing, lopping and shelf keys
// ABOUTME: Engine is immutable and safe to share between goroutines

package callnumber

import (
	"fmt"
	"strings"
)

// Engine parses call numbers and builds their keys under one set of Options.
type Engine struct {
	opts Options
}

// New returns an Engine. Unset widths and windows fall back to the defaults.
func New(opts Options) *Engine {
	def := DefaultOptions()
	if opts.ReverseWidth <= 0 {
		opts.ReverseWidth = def.ReverseWidth
	}
	if opts.SudocYears == (YearWindow{}) {
		opts.SudocYears = def.SudocYears
	}
	if opts.PrefixBlocklist == nil {
		opts.PrefixBlocklist = def.PrefixBlocklist
	}
	if opts.SeriesLocations == nil {
		opts.SeriesLocations = def.SeriesLocations
	}
	return &Engine{opts: opts}
}

var defaultEngine = New(DefaultOptions())

// Default returns the engine used by the package level functions.
func Default() *Engine { return defaultEngine }

// Options returns a copy of the engine settings.
func (e *Engine) Options() Options { return e.opts }

// Parse decomposes raw under scheme. It never fails; a call number that does
// not fit its grammar still parses, with the unmatched text kept as remainder.
// SUDOC numbers without an agency stem are returned as Other tagged "sudoc".
func (e *Engine) Parse(raw string, scheme Scheme) Parsed {
	switch scheme {
	case SchemeLC:
		return ParseLC(raw)
	case SchemeDewey:
		return ParseDewey(raw)
	case SchemeSUDOC:
		s := ParseSUDOC(raw, e.opts.SudocYears)
		if s.Agency == "" {
			return ParseOther(raw, true)
		}
		return s
	case SchemeUNDOC:
		return ParseUNDOC(raw)
	case SchemeCALDOC:
		return ParseCALDOC(raw)
	default:
		return ParseOther(raw, false)
	}
}

// Lopped returns the base call number with volume material removed; serial
// call numbers also lose trailing dates. Other call numbers come back whole
// since their base depends on their siblings (see OtherBase).
func (e *Engine) Lopped(p Parsed, serial bool) string {
	switch v := p.(type) {
	case *LC:
		return v.Lopped(serial)
	case *Dewey:
		return v.Lopped(serial)
	case *SUDOC:
		return v.Lopped(serial)
	case *UNDOC:
		return v.Lopped(serial)
	case *CALDOC:
		return v.Lopped(serial)
	case *Other:
		return v.Raw()
	default:
		panic(fmt.Sprintf("callnumber: unhandled call number type %T", p))
	}
}

// ShelfKey builds the forward shelf key. volume is optional enumeration kept
// outside the call number, such as an item's volume statement.
func (e *Engine) ShelfKey(p Parsed, volume string) string {
	switch v := p.(type) {
	case *LC:
		return v.ShelfKey(volume)
	case *Dewey:
		return v.ShelfKey(volume)
	case *SUDOC:
		return v.ShelfKey(volume)
	case *UNDOC:
		return v.ShelfKey(volume)
	case *CALDOC:
		return v.ShelfKey(volume)
	case *Other:
		return v.ShelfKey(volume)
	default:
		panic(fmt.Sprintf("callnumber: unhandled call number type %T", p))
	}
}

// LopShelfKey is the shelf key of the re-parsed lopped call number.
func (e *Engine) LopShelfKey(p Parsed, serial bool) string {
	lopped := e.Lopped(p, serial)
	if o, ok := p.(*Other); ok {
		return ParseOther(lopped, o.Tag() == SchemeSUDOC.Tag()).ShelfKey("")
	}
	return e.ShelfKey(e.Parse(lopped, p.Scheme()), "")
}

// ReverseKey returns the key that sorts in the opposite order of shelfKey.
func (e *Engine) ReverseKey(shelfKey string) string {
	return ReverseKey(shelfKey, e.opts.ReverseWidth)
}

// Keys bundles everything computed for one call number.
type Keys struct {
	Scheme          Scheme `json:"scheme" yaml:"scheme"`
	CallNumber      string `json:"call_number" yaml:"call_number"`
	Lopped          string `json:"lopped" yaml:"lopped"`
	ShelfKey        string `json:"shelfkey" yaml:"shelfkey"`
	ReverseShelfKey string `json:"reverse_shelfkey" yaml:"reverse_shelfkey"`
	LoppedShelfKey  string `json:"lopped_shelfkey" yaml:"lopped_shelfkey"`
	LoppedReverse   string `json:"lopped_reverse_shelfkey" yaml:"lopped_reverse_shelfkey"`
}

// Compute runs every step for raw in one call.
func (e *Engine) Compute(raw string, scheme Scheme, serial bool, volume string) Keys {
	p := e.Parse(raw, scheme)
	key := e.ShelfKey(p, volume)
	lopKey := e.LopShelfKey(p, serial)
	return Keys{
		Scheme:          scheme,
		CallNumber:      strings.TrimSpace(raw),
		Lopped:          e.Lopped(p, serial),
		ShelfKey:        key,
		ReverseShelfKey: e.ReverseKey(key),
		LoppedShelfKey:  lopKey,
		LoppedReverse:   e.ReverseKey(lopKey),
	}
}

// Parse decomposes raw with the default engine.
func Parse(raw string, scheme Scheme) Parsed { return defaultEngine.Parse(raw, scheme) }

// Lopped lops p with the default engine.
func Lopped(p Parsed, serial bool) string { return defaultEngine.Lopped(p, serial) }

// ShelfKey builds p's forward key with the default engine.
func ShelfKey(p Parsed, volume string) string { return defaultEngine.ShelfKey(p, volume) }

// LopShelfKey builds the key of p's lopped form with the default engine.
func LopShelfKey(p Parsed, serial bool) string { return defaultEngine.LopShelfKey(p, serial) }
