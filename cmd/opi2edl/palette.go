package main

import (
	"fmt"
	"strconv"

	"github.com/tmlemon/opi2edl/internal/edl"
	"github.com/tmlemon/opi2edl/internal/models"
)

func (c *cli) cmdPalette(args []string) int {
	if len(args) != 0 {
		c.printError("palette takes no arguments")
		return exitError
	}
	for _, e := range edl.DefaultPalette {
		_, _ = fmt.Fprintf(c.stdout, "%2d  %3d %3d %3d\n", e.Index, e.R, e.G, e.B)
	}
	return exitOK
}

func (c *cli) cmdMatch(args []string) int {
	if len(args) != 3 {
		c.printError("match needs three components: R G B")
		return exitError
	}

	var rgb [3]uint8
	for i, a := range args {
		v, err := strconv.ParseUint(a, 10, 8)
		if err != nil {
			c.printError("invalid colour component %q: must be 0-255", a)
			return exitError
		}
		rgb[i] = uint8(v)
	}

	idx, dist := edl.DefaultPalette.Nearest(models.RGB{R: rgb[0], G: rgb[1], B: rgb[2]})
	e := edl.DefaultPalette[idx]
	_, _ = fmt.Fprintf(c.stdout, "index %d (%d %d %d), distance %.2f\n", idx, e.R, e.G, e.B, dist)
	return exitOK
}
