package parser

import (
	"fmt"
	"io"
	"os"

	"github.com/tmlemon/opi2edl/internal/models"
	"gopkg.in/yaml.v3"
)

// ParsePanelRules parses a YAML panel rules file. Keys missing from the
// file keep their defaults.
//
//	units: [K, Torr, "%"]
//	indicator_width: 40
//	indicator_height: 20
//	bar_color: 0
//	bar_overrides:
//	  - match: N2
//	    color: 15
//	    width: 15
//	    height: 125
func ParsePanelRules(filePath string) (*models.PanelRules, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return ParsePanelRulesFromReader(file)
}

// ParsePanelRulesFromReader parses panel rules from an io.Reader.
func ParsePanelRulesFromReader(r io.Reader) (*models.PanelRules, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	rules := models.DefaultPanelRules()
	if err := yaml.Unmarshal(data, rules); err != nil {
		return nil, err
	}

	if rules.IndicatorWidth <= 0 || rules.IndicatorHeight <= 0 {
		return nil, fmt.Errorf("indicator size must be positive, got %dx%d",
			rules.IndicatorWidth, rules.IndicatorHeight)
	}
	if rules.BarColor < 0 {
		return nil, fmt.Errorf("bar_color must not be negative, got %d", rules.BarColor)
	}
	for i, o := range rules.BarOverrides {
		if o.Match == "" {
			return nil, fmt.Errorf("bar_overrides[%d]: match is required", i)
		}
		if o.Width < 0 || o.Height < 0 {
			return nil, fmt.Errorf("bar_overrides[%d]: size must not be negative", i)
		}
	}

	return rules, nil
}
