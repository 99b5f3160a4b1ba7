package edl

import (
	"math"

	"github.com/tmlemon/opi2edl/internal/models"
)

// PaletteEntry is one colour of the EDM display palette.
type PaletteEntry struct {
	Index int   `json:"index" msgpack:"index"`
	R     uint8 `json:"r" msgpack:"r"`
	G     uint8 `json:"g" msgpack:"g"`
	B     uint8 `json:"b" msgpack:"b"`
}

// Palette is an ordered colour table addressed by index.
type Palette []PaletteEntry

// DefaultPalette is the colour list served by WEDM. Entry i has index i.
var DefaultPalette = buildPalette([][3]uint8{
	{255, 255, 255}, {235, 235, 235}, {218, 218, 218}, {200, 200, 200},
	{187, 187, 187}, {174, 174, 174}, {158, 158, 158}, {145, 145, 145},
	{133, 133, 133}, {120, 120, 120}, {105, 105, 105}, {90, 90, 90},
	{70, 70, 70}, {45, 45, 45}, {0, 0, 0}, {0, 216, 0},
	{30, 187, 0}, {51, 153, 0}, {45, 142, 0}, {33, 108, 0},
	{253, 0, 0}, {222, 19, 9}, {190, 25, 11}, {160, 18, 7},
	{130, 4, 0}, {88, 147, 255}, {89, 126, 225}, {75, 110, 199},
	{58, 94, 171}, {39, 84, 141}, {251, 243, 74}, {249, 200, 60},
	{238, 182, 43}, {225, 144, 21}, {205, 97, 0}, {255, 176, 255},
	{214, 127, 226}, {174, 78, 188}, {139, 26, 150}, {97, 10, 117},
	{164, 170, 255}, {135, 147, 226}, {106, 115, 193}, {77, 82, 164},
	{52, 51, 134}, {199, 187, 109}, {183, 157, 92}, {164, 126, 60},
	{125, 86, 39}, {88, 52, 15}, {153, 255, 255}, {115, 223, 255},
	{78, 165, 249}, {42, 99, 228}, {10, 0, 184}, {235, 241, 181},
	{212, 219, 157}, {187, 193, 135}, {166, 164, 98}, {139, 130, 57},
	{115, 255, 107}, {82, 218, 59}, {60, 180, 32}, {40, 147, 21},
	{26, 115, 9}, {0, 255, 255}, {0, 224, 224}, {0, 192, 192},
	{0, 160, 160}, {0, 128, 128}, {255, 0, 255}, {192, 0, 192},
	{206, 220, 205}, {185, 198, 184}, {166, 178, 165}, {225, 248, 177},
	{202, 223, 159}, {244, 218, 168}, {183, 164, 126}, {122, 109, 84},
	{181, 249, 215}, {162, 224, 193}, {194, 218, 217}, {174, 196, 195},
	{156, 176, 175}, {176, 218, 249}, {158, 196, 224}, {205, 202, 221},
	{184, 181, 198}, {165, 162, 178}, {222, 196, 251}, {199, 175, 225},
	{198, 181, 198}, {178, 162, 178}, {251, 235, 236}, {225, 176, 212},
	{255, 150, 168}, {192, 113, 126}, {184, 46, 0},
})

func buildPalette(rgb [][3]uint8) Palette {
	p := make(Palette, len(rgb))
	for i, c := range rgb {
		p[i] = PaletteEntry{Index: i, R: c[0], G: c[1], B: c[2]}
	}
	return p
}

// Nearest returns the index of the entry closest to c in RGB space and the
// Euclidean distance to it. Ties go to the entry declared first.
// Nearest panics on an empty palette.
func (p Palette) Nearest(c models.RGB) (int, float64) {
	best, bestDist := -1, math.MaxInt
	for _, e := range p {
		dr := int(c.R) - int(e.R)
		dg := int(c.G) - int(e.G)
		db := int(c.B) - int(e.B)
		if d := dr*dr + dg*dg + db*db; d < bestDist {
			best, bestDist = e.Index, d
		}
	}
	if best < 0 {
		panic("edl: empty palette")
	}
	return best, math.Sqrt(float64(bestDist))
}
