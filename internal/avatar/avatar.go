// Package avatar turns an avatar configuration into a layered figure that can be
// drawn in the terminal.
package avatar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tatianab/hikaye/internal/models"
)

const (
	Width  = 11
	Height = 13
)

// Fixed colors that do not depend on the configuration.
const (
	pantsColor = "#2C3E50"
	shoeColor  = "#333333"
	eyeColor   = "#1F2937"
	mouthColor = "#E11D48"
	cheekColor = "#FDA4AF"
)

// Cell is one painted position of the figure. The zero Cell is transparent.
type Cell struct {
	Glyph      rune
	Color      string
	Background string
}

// Layer is a sprite: each non-space rune of Rows is looked up in Paint.
type Layer struct {
	Name  string
	Rows  []string
	Paint map[rune]Cell
}

// Figure is a stack of layers, back to front.
type Figure struct {
	Layers []Layer
}

var backHair = map[int][]string{
	2: {
		"",
		"",
		"hh       hh",
		"hhh     hhh",
		"hh       hh",
		" h       h ",
	},
	3: {
		"",
		"",
		" hhhhhhhhh ",
		" hhhhhhhhh ",
		" hhhhhhhhh ",
		" hh     hh ",
		" hh     hh ",
		" hh     hh ",
		"  h     h  ",
	},
}

var bodyRows = []string{
	"",
	"",
	"",
	"",
	"",
	"    sss    ",
	"  ttttttt  ",
	" sttttttts ",
	" sttttttts ",
	" s ttttt s ",
	"   pp pp   ",
	"   pp pp   ",
	"   bb bb   ",
}

var headRows = []string{
	"",
	"   sssss   ",
	"  sssssss  ",
	"  sEsssEs  ",
	"  sCsMsCs  ",
	"   sssss   ",
}

var frontHair = map[int][]string{
	0: {
		"   hhhhh   ",
		"  hhhhhhh  ",
		"  h     h  ",
	},
	1: {
		"  h h h h  ",
		"  hhhhhhh  ",
		"  hh   hh  ",
	},
	2: {
		"   hhhhh   ",
		"  hhhhhhh  ",
		"  hh h hh  ",
	},
	3: {
		"   hhhhh   ",
		"  hhhhhhh  ",
		"  hh   hh  ",
		"  h     h  ",
	},
}

// Render builds the figure for cfg. It has no side effects and always returns
// the same figure for the same configuration.
func Render(cfg models.AvatarConfig) Figure {
	fill := func(color string) Cell { return Cell{Glyph: '█', Color: color} }
	hair := map[rune]Cell{'h': fill(cfg.HairColor)}

	var layers []Layer
	if rows, ok := backHair[cfg.Style]; ok {
		layers = append(layers, Layer{Name: "back-hair", Rows: rows, Paint: hair})
	}
	layers = append(layers,
		Layer{Name: "body", Rows: bodyRows, Paint: map[rune]Cell{
			's': fill(cfg.SkinColor),
			't': fill(cfg.ShirtColor),
			'p': fill(pantsColor),
			'b': fill(shoeColor),
		}},
		Layer{Name: "head", Rows: headRows, Paint: map[rune]Cell{
			's': fill(cfg.SkinColor),
			'E': {Glyph: '●', Color: eyeColor, Background: cfg.SkinColor},
			'M': {Glyph: '◡', Color: mouthColor, Background: cfg.SkinColor},
			'C': {Glyph: '•', Color: cheekColor, Background: cfg.SkinColor},
		}},
	)
	front, ok := frontHair[cfg.Style]
	if !ok {
		front = frontHair[0]
	}
	layers = append(layers, Layer{Name: "front-hair", Rows: front, Paint: hair})

	return Figure{Layers: layers}
}

// Cells flattens the figure; later layers cover earlier ones.
func (f Figure) Cells() [Height][Width]Cell {
	var grid [Height][Width]Cell
	for _, l := range f.Layers {
		for y, row := range l.Rows {
			if y >= Height {
				break
			}
			for x, r := range []rune(row) {
				if x >= Width || r == ' ' {
					continue
				}
				if c, ok := l.Paint[r]; ok {
					grid[y][x] = c
				}
			}
		}
	}
	return grid
}

// View draws the figure with every cell doubled horizontally so it keeps its
// proportions in a terminal.
func (f Figure) View() string {
	grid := f.Cells()
	var b strings.Builder
	for y := range grid {
		for _, c := range grid[y] {
			b.WriteString(c.View())
		}
		if y < Height-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// View draws the cell two columns wide. Transparent cells are blank.
func (c Cell) View() string {
	if c.Glyph == 0 {
		return "  "
	}
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color))
	if c.Background != "" {
		style = style.Background(lipgloss.Color(c.Background))
	}
	if c.Glyph == '█' {
		return style.Render("██")
	}
	return style.Render(string(c.Glyph) + " ")
}
