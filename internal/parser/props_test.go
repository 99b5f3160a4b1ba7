package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProperty(t *testing.T) {
	lines := []string{
		`<widget typeId="org.csstudio.opibuilder.widgets.TextUpdate" version="1.0.0">`,
		`  <pv_name>SYS:PRESSURE</pv_name>`,
		`  <text>first</text>`,
		`  <text>second</text>`,
		`  <tooltip>$(pv_name)`,
		`  <empty></empty>`,
		`</widget>`,
	}

	tests := []struct {
		name string
		prop string
		want string
	}{
		{"single value", "pv_name", "SYS:PRESSURE"},
		{"first occurrence wins", "text", "first"},
		{"unterminated value runs to end of line", "tooltip", "$(pv_name)"},
		{"empty value", "empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Property(lines, tt.prop)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("missing property", func(t *testing.T) {
		_, err := Property(lines, "PV_NAME")
		assert.ErrorIs(t, err, ErrPropertyNotFound)

		var perr *PropertyError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, "PV_NAME", perr.Name)
	})
}
