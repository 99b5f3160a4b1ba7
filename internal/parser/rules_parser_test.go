package parser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePanelRules(t *testing.T) {
	content := `
units: [K, Torr, "%", psi]
indicator_width: 50
indicator_height: 22
bar_color: 14

bar_overrides:
  - match: N2
    color: 15
    width: 15
    height: 125
  - match: He
    color: 54
    width: 44
    height: 125
    center: true
`
	path := filepath.Join(t.TempDir(), "panel.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	rules, err := ParsePanelRules(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"K", "Torr", "%", "psi"}, rules.Units)
	assert.Equal(t, 50, rules.IndicatorWidth)
	assert.Equal(t, 22, rules.IndicatorHeight)
	assert.Equal(t, 14, rules.BarColor)
	// Unset keys keep their defaults
	assert.Equal(t, 5, rules.LabelGap)
	assert.Equal(t, 2, rules.LabelNudge)

	require.Len(t, rules.BarOverrides, 2)
	assert.Equal(t, "He", rules.BarOverrides[1].Match)
	assert.True(t, rules.BarOverrides[1].Center)

	o, ok := rules.FindBarOverride("SYS:N2:LEVEL")
	require.True(t, ok)
	assert.Equal(t, 15, o.Color)

	_, ok = rules.FindBarOverride("SYS:AR:LEVEL")
	assert.False(t, ok)
}

func TestParsePanelRulesFromReader(t *testing.T) {
	t.Run("empty input keeps defaults", func(t *testing.T) {
		rules, err := ParsePanelRulesFromReader(strings.NewReader(""))
		require.NoError(t, err)
		assert.True(t, rules.IsUnit("Torr"))
		assert.False(t, rules.IsUnit("torr"))
		assert.Equal(t, 40, rules.IndicatorWidth)
		assert.Equal(t, 20, rules.IndicatorHeight)
		assert.Equal(t, 0, rules.BarColor)
	})

	t.Run("negative bar colour", func(t *testing.T) {
		_, err := ParsePanelRulesFromReader(strings.NewReader("bar_color: -1"))
		assert.ErrorContains(t, err, "bar_color")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := ParsePanelRulesFromReader(strings.NewReader("units: [K"))
		assert.Error(t, err)
	})

	t.Run("zero indicator size", func(t *testing.T) {
		_, err := ParsePanelRulesFromReader(strings.NewReader("indicator_width: 0"))
		assert.ErrorContains(t, err, "indicator size")
	})

	t.Run("override without match", func(t *testing.T) {
		_, err := ParsePanelRulesFromReader(strings.NewReader("bar_overrides:\n  - color: 3\n"))
		assert.ErrorContains(t, err, "match is required")
	})

	t.Run("negative override size", func(t *testing.T) {
		_, err := ParsePanelRulesFromReader(strings.NewReader("bar_overrides:\n  - match: X\n    width: -1\n"))
		assert.ErrorContains(t, err, "must not be negative")
	})
}

func TestParsePanelRules_MissingFile(t *testing.T) {
	_, err := ParsePanelRules(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
