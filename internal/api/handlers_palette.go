// handlers_palette.go - Colour palette handlers
package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/tmlemon/opi2edl/internal/edl"
	"github.com/tmlemon/opi2edl/internal/models"
)

// PaletteHandlerImpl implements the PaletteHandler interface
type PaletteHandlerImpl struct {
	palette edl.Palette
}

// NewPaletteHandler creates a new palette handler
func NewPaletteHandler(palette edl.Palette) PaletteHandler {
	if len(palette) == 0 {
		palette = edl.DefaultPalette
	}
	return &PaletteHandlerImpl{palette: palette}
}

// HandlePalette lists every palette entry
func (h *PaletteHandlerImpl) HandlePalette(c echo.Context) error {
	return c.JSON(http.StatusOK, h.palette)
}

// HandleMatch returns the palette entry nearest to the r, g and b query values
func (h *PaletteHandlerImpl) HandleMatch(c echo.Context) error {
	var rgb [3]uint8
	for i, name := range [...]string{"r", "g", "b"} {
		v, err := strconv.ParseUint(c.QueryParam(name), 10, 8)
		if err != nil {
			return NewValidationError(name)
		}
		rgb[i] = uint8(v)
	}

	idx, dist := h.palette.Nearest(models.RGB{R: rgb[0], G: rgb[1], B: rgb[2]})
	return c.JSON(http.StatusOK, map[string]interface{}{
		"index":    idx,
		"distance": dist,
	})
}
