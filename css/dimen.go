/*
Package css holds value types for CSS properties.

Dimensions are kept in the typesetting units of package tyse/core/dimen.
Pixels are CSS reference pixels, 1px = ¾pt.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package css

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/tyse/core/dimen"
)

const (
	dimenNone uint32 = 0

	dimenAbsolute uint32 = 0x0001
	dimenAuto     uint32 = 0x0002
	dimenInherit  uint32 = 0x0003
	dimenInitial  uint32 = 0x0004
	kindMask      uint32 = 0x000f

	dimenPercent uint32 = 0x0900
	relativeMask uint32 = 0xff00
)

// ErrNotADimension is returned for property values which are not CSS lengths.
var ErrNotADimension = errors.New("not a CSS dimension")

// DimenT is an option type for CSS dimensions.
type DimenT struct {
	d       dimen.DU
	percent float64
	flags   uint32
}

/*
type DimenT
	= None
	| Auto
	| Inherit
	| Initial
	| JustDimen dimen
	| Percentage p
*/

func Auto() DimenT {
	return DimenT{flags: dimenAuto}
}

func Inherit() DimenT {
	return DimenT{flags: dimenInherit}
}

func Initial() DimenT {
	return DimenT{flags: dimenInitial}
}

// JustDimen creates a CSS dimension with a fixed value of x.
func JustDimen(x dimen.DU) DimenT {
	return DimenT{d: x, flags: dimenAbsolute}
}

// Percentage creates a CSS dimension with a %-relative value.
func Percentage(p float64) DimenT {
	return DimenT{percent: p, flags: dimenPercent}
}

// IsNone is true for the zero value, i.e. for unset properties.
func (d DimenT) IsNone() bool {
	return d.flags == dimenNone
}

// units in points
var units = map[string]float64{
	"pt": 1,
	"px": 0.75,
	"pc": 12,
	"in": 72,
	"cm": 72 / 2.54,
	"mm": 72 / 25.4,
}

// ParseDimen reads a property value like "12px", "80%" or "auto".
// An empty value is None. Unitless zero is accepted.
func ParseDimen(v string) (DimenT, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	switch v {
	case "":
		return DimenT{}, nil
	case "auto":
		return Auto(), nil
	case "inherit":
		return Inherit(), nil
	case "initial":
		return Initial(), nil
	case "0":
		return JustDimen(0), nil
	}
	if num, ok := strings.CutSuffix(v, "%"); ok {
		p, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return DimenT{}, fmt.Errorf("%q: %w", v, ErrNotADimension)
		}
		return Percentage(p), nil
	}
	if len(v) > 2 {
		if pt, ok := units[v[len(v)-2:]]; ok {
			x, err := strconv.ParseFloat(v[:len(v)-2], 64)
			if err == nil {
				return JustDimen(dimen.DU(x * pt * float64(dimen.PT))), nil
			}
		}
	}
	return DimenT{}, fmt.Errorf("%q: %w", v, ErrNotADimension)
}

// Pixels returns a fixed dimension in CSS pixels.
func (d DimenT) Pixels() (float64, bool) {
	var du dimen.DU
	switch m := d.Match(); m {
	case m.Just(&du):
		return float64(du) / float64(dimen.PT) / units["px"], true
	}
	return 0, false
}

func (d DimenT) String() string {
	switch d.flags & kindMask {
	case dimenAuto:
		return "auto"
	case dimenInherit:
		return "inherit"
	case dimenInitial:
		return "initial"
	case dimenAbsolute:
		return fmt.Sprintf("%gpt", float64(d.d)/float64(dimen.PT))
	}
	if d.flags&dimenPercent > 0 {
		return fmt.Sprintf("%g%%", d.percent)
	}
	return "none"
}

// ---------------------------------------------------------------------------

// Match starts a type switch over the kinds of a dimension:
//
//	switch m := d.Match(); m {
//	case m.Just(&du): ...
//	case m.IsKind(css.Auto()): ...
//	}
func (d DimenT) Match() *Matcher {
	return &Matcher{dimen: d}
}

type Matcher struct {
	dimen DimenT
}

func (m *Matcher) IsKind(d DimenT) *Matcher {
	switch {
	case m.dimen.flags&relativeMask > 0 || d.flags&relativeMask > 0:
		if m.dimen.flags&relativeMask == d.flags&relativeMask {
			return m
		}
	case (m.dimen.flags & kindMask) == (d.flags & kindMask):
		return m
	}
	return nil
}

func (m *Matcher) Just(du *dimen.DU) *Matcher {
	if m.dimen.flags&kindMask == dimenAbsolute {
		if du != nil {
			*du = m.dimen.d
		}
		return m
	}
	return nil
}

func (m *Matcher) Percentage(p *float64) *Matcher {
	if m.dimen.flags&dimenPercent > 0 {
		if p != nil {
			*p = m.dimen.percent
		}
		return m
	}
	return nil
}
