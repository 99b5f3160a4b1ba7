package models

import (
	"slices"
	"strings"
)

// PanelRules configures the instrumentation-panel layout pass and the
// site-specific bar overrides. Loaded from YAML.
type PanelRules struct {
	Units           []string      `json:"units" yaml:"units"`
	IndicatorWidth  int           `json:"indicatorWidth" yaml:"indicator_width"`
	IndicatorHeight int           `json:"indicatorHeight" yaml:"indicator_height"`
	LabelGap        int           `json:"labelGap" yaml:"label_gap"`         // pixels between indicator and units label
	LabelNudge      int           `json:"labelNudge" yaml:"label_nudge"`     // x/y shift applied to labels in layout mode
	BarColor        int           `json:"barColor" yaml:"bar_color"`         // indicator colour index for bars without an override
	BarOverrides    []BarOverride `json:"barOverrides" yaml:"bar_overrides"` // first match wins
}

// BarOverride forces the size and colour of bar monitors whose PV name
// contains Match.
type BarOverride struct {
	Match  string `json:"match" yaml:"match"`
	Color  int    `json:"color" yaml:"color"`
	Width  int    `json:"width" yaml:"width"`
	Height int    `json:"height" yaml:"height"`
	Center bool   `json:"center" yaml:"center"` // keep the source horizontal centre
}

// DefaultPanelRules returns the rules used when no rules file is given.
func DefaultPanelRules() *PanelRules {
	return &PanelRules{
		Units:           []string{"K", "Torr", "Atm", "Pa", "%", "mS", "KN", "lbs"},
		IndicatorWidth:  40,
		IndicatorHeight: 20,
		LabelGap:        5,
		LabelNudge:      2,
		BarColor:        0,
	}
}

// IsUnit reports whether s is one of the configured unit strings.
func (r *PanelRules) IsUnit(s string) bool {
	return slices.Contains(r.Units, s)
}

// FindBarOverride returns the first override whose Match occurs in pv.
// PV names are case-sensitive, so the match is exact.
func (r *PanelRules) FindBarOverride(pv string) (BarOverride, bool) {
	for _, o := range r.BarOverrides {
		if o.Match != "" && strings.Contains(pv, o.Match) {
			return o, true
		}
	}
	return BarOverride{}, false
}
