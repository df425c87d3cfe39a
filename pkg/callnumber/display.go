// ABOUTME: Chooses the call number and sort keys shown for one holding
// ABOUTME: Single holdings show in full, groups show their lopped base

package callnumber

import "strings"

const (
	ShelvedByTitle  = "Shelved by title"
	ShelvedBySeries = "Shelved by Series title"

	ellipsis = "..."
)

// Holding is the view of an item the display decision needs.
type Holding interface {
	CallNumber() string
	Scheme() Scheme
	Ignored() bool
	EResource() bool
	ShelvedByLocation() bool
	LostOrMissing() bool
	Library() string
	HomeLocation() string
	CurrentLocation() string
	// Enumeration is volume text recorded outside the call number.
	Enumeration() string
}

// Display is what a holding contributes to a browse list. Omit is set when
// the holding has nothing to show.
type Display struct {
	CallNumber      string `json:"call_number" yaml:"call_number"`
	ShelfKey        string `json:"shelfkey" yaml:"shelfkey"`
	ReverseShelfKey string `json:"reverse_shelfkey" yaml:"reverse_shelfkey"`
	Ellipsis        bool   `json:"ellipsis" yaml:"ellipsis"`
	Omit            bool   `json:"omit" yaml:"omit"`
}

// Label is the call number as shown, with the ellipsis when one applies.
func (d Display) Label() string {
	if d.Ellipsis {
		return d.CallNumber + " " + ellipsis
	}
	return d.CallNumber
}

// Resolve decides how h is shown. siblings holds the call numbers of every
// holding in h's library, location and scheme group; h's own call number is
// counted in when it is missing. siblings is not modified and its order does
// not matter.
func (e *Engine) Resolve(h Holding, serial bool, siblings []string) Display {
	if h.ShelvedByLocation() {
		return e.shelvedByLocation(h)
	}
	if h.Ignored() || h.EResource() {
		return Display{Omit: true}
	}

	raw := strings.TrimSpace(h.CallNumber())
	p := e.Parse(raw, h.Scheme())
	if groupSize(raw, siblings) <= 1 {
		key := e.ShelfKey(p, h.Enumeration())
		label := raw
		if c, ok := p.(*CALDOC); ok {
			label = c.DisplayCallNumber()
		}
		return Display{
			CallNumber:      label,
			ShelfKey:        key,
			ReverseShelfKey: e.ReverseKey(key),
		}
	}

	base, key := e.base(p, serial, siblings)
	d := Display{
		CallNumber:      base,
		ShelfKey:        key,
		ReverseShelfKey: e.ReverseKey(key),
		Ellipsis:        base != raw,
	}
	if !d.Ellipsis {
		for _, s := range siblings {
			s = strings.TrimSpace(s)
			if s == raw {
				continue
			}
			if sb, _ := e.base(e.Parse(s, h.Scheme()), serial, siblings); sb == base {
				d.Ellipsis = true
				break
			}
		}
	}
	return d
}

// base is the lopped call number of p within its group and its shelf key.
func (e *Engine) base(p Parsed, serial bool, siblings []string) (string, string) {
	if o, ok := p.(*Other); ok {
		base := e.OtherBase(o.Raw(), siblings)
		return base, ParseOther(base, o.Tag() == SchemeSUDOC.Tag()).ShelfKey("")
	}
	lopped := e.Lopped(p, serial)
	return lopped, e.ShelfKey(e.Parse(lopped, p.Scheme()), "")
}

func (e *Engine) shelvedByLocation(h Holding) Display {
	label := ShelvedByTitle
	if e.opts.seriesLocation(h.HomeLocation()) {
		label = ShelvedBySeries
	}
	tag := strings.ToLower(label)
	volume := strings.TrimSpace(h.Enumeration())
	if volume == "" {
		return Display{
			CallNumber:      label,
			ShelfKey:        tag,
			ReverseShelfKey: padTerminal(tag, e.opts.ReverseWidth),
		}
	}
	padded := PadAllDigits(volume, restWidth)
	return Display{
		CallNumber:      label + " " + volume,
		ShelfKey:        tag + " " + padded,
		ReverseShelfKey: padTerminal(tag+" "+Reverse(padded), e.opts.ReverseWidth),
	}
}

func groupSize(raw string, siblings []string) int {
	n := len(siblings)
	for _, s := range siblings {
		if strings.TrimSpace(s) == raw {
			return n
		}
	}
	return n + 1
}

// Resolve decides how h is shown using the default engine.
func Resolve(h Holding, serial bool, siblings []string) Display {
	return defaultEngine.Resolve(h, serial, siblings)
}
