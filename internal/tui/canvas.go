package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// canvas is a grid of terminal cells. A cell holding a wide glyph is followed
// by empty cells that it covers.
type canvas struct {
	cols, rows int
	cells      [][]string
	styled     [][]bool
	background []string
}

func newCanvas(cols, rows int) *canvas {
	c := &canvas{cols: cols, rows: rows, background: make([]string, rows)}
	c.cells = make([][]string, rows)
	c.styled = make([][]bool, rows)
	for r := range c.cells {
		c.cells[r] = make([]string, cols)
		c.styled[r] = make([]bool, cols)
		for col := range c.cells[r] {
			c.cells[r][col] = " "
		}
	}
	return c
}

// fill sets the background color of rows [from, to).
func (c *canvas) fill(from, to int, color string) {
	for r := max(from, 0); r < min(to, c.rows); r++ {
		c.background[r] = color
	}
}

// put writes plain text at a cell. Text that does not fit is dropped.
func (c *canvas) put(col, row int, s string) {
	c.place(col, row, s, lipgloss.Width(s), false)
}

// putStyled writes text that carries its own colors.
func (c *canvas) putStyled(col, row int, s string, width int) {
	c.place(col, row, s, width, true)
}

func (c *canvas) place(col, row int, s string, width int, styled bool) {
	if row < 0 || row >= c.rows || col < 0 || col+width > c.cols || width < 1 {
		return
	}
	// Blank out wide glyphs that would be cut in half.
	for i := col; i > 0 && c.cells[row][i] == ""; i-- {
		c.cells[row][i-1] = " "
		c.styled[row][i-1] = false
	}
	for i := col + width; i < c.cols && c.cells[row][i] == ""; i++ {
		c.cells[row][i] = " "
	}

	c.cells[row][col] = s
	c.styled[row][col] = styled
	for i := 1; i < width; i++ {
		c.cells[row][col+i] = ""
		c.styled[row][col+i] = false
	}
}

func (c *canvas) render() string {
	lines := make([]string, c.rows)
	for r := range c.cells {
		bg := lipgloss.NewStyle()
		if c.background[r] != "" {
			bg = bg.Background(lipgloss.Color(c.background[r]))
		}
		var line, run strings.Builder
		flush := func() {
			if run.Len() > 0 {
				line.WriteString(bg.Render(run.String()))
				run.Reset()
			}
		}
		for col, cell := range c.cells[r] {
			if c.styled[r][col] {
				flush()
				line.WriteString(cell)
				continue
			}
			run.WriteString(cell)
		}
		flush()
		lines[r] = line.String()
	}
	return strings.Join(lines, "\n")
}
