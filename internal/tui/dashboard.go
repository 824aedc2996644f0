package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tatianab/hikaye/internal/avatar"
	"github.com/tatianab/hikaye/internal/space"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var coinPrinter = message.NewPrinter(language.Turkish)

// The dashboard has a header line above the space and help plus notice
// lines below it.
const (
	spaceTop    = 1
	spaceFooter = 2
)

func (m model) spaceSize() (cols, rows int) {
	return max(m.width, 1), max(m.height-spaceTop-spaceFooter, 1)
}

func (m *model) updateDashboard(msg tea.Msg) tea.Cmd {
	cols, rows := m.spaceSize()
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "r", "enter":
			m.endDrag()
			return m.run(m.orch.StartReading)
		case "esc":
			m.orch.DismissNotice()
			m.sync()
		case "q":
			return tea.Quit
		}

	case tea.MouseMsg:
		switch msg.Action {
		case tea.MouseActionPress:
			if msg.Button != tea.MouseButtonLeft {
				return nil
			}
			if it, ok := m.board.ItemAt(msg.X, msg.Y-spaceTop, cols, rows); ok {
				if err := m.board.Begin(it.ID); err != nil {
					m.logger.Printf("begin drag: %v", err)
				}
			}
		case tea.MouseActionMotion:
			m.board.Move(float64(msg.X), float64(msg.Y), space.Rect{
				Top:    spaceTop,
				Width:  float64(cols),
				Height: float64(rows),
			})
		case tea.MouseActionRelease:
			m.endDrag()
		}

	case tea.BlurMsg:
		// The pointer left the terminal.
		m.endDrag()
	}
	return nil
}

func (m *model) endDrag() {
	items, ok := m.board.End()
	if !ok {
		return
	}
	if err := m.orch.UpdateItems(items); err != nil {
		m.logger.Printf("commit items: %v", err)
	}
	m.sync()
}

func (m model) dashboardView() string {
	p := m.snapshot.Profile
	cols, rows := m.spaceSize()
	info := m.catalog.Spaces[p.Space]

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		titleStyle.Render(cases.Upper(language.Turkish).String(p.Name)),
		"  ",
		info.Emoji+" "+info.Label,
		"  ",
		coinPrinter.Sprintf("🪙 %d", p.Coins),
	)

	scene := space.SceneFor(p.Space)
	c := newCanvas(cols, rows)
	floor := int(scene.FloorFrom / 100 * float64(rows))
	c.fill(0, floor, scene.Background)
	c.fill(floor, rows, scene.Floor)
	for _, d := range scene.Decor {
		col, row := space.Cell(d.X, d.Y, cols, rows)
		c.put(col, row, d.Glyph)
	}

	// The avatar stands at the bottom center of the space.
	left := (cols - 2*avatar.Width) / 2
	top := rows - avatar.Height
	grid := avatar.Render(p.Avatar).Cells()
	for y := range grid {
		for x, cell := range grid[y] {
			if cell.Glyph != 0 {
				c.putStyled(left+2*x, top+y, cell.View(), 2)
			}
		}
	}

	dragging, _ := m.board.Dragging()
	for _, it := range m.board.Items() {
		col, row := space.Cell(it.X, it.Y, cols, rows)
		if it.ID == dragging {
			c.putStyled(col, row, dragStyle.Render(it.Emoji), lipgloss.Width(it.Emoji))
			continue
		}
		c.put(col, row, it.Emoji)
	}

	help := helpStyle.Render(fmt.Sprintf("r: yeni hikaye • fare ile eşyaları taşı • q: çıkış • %d eşya", len(p.Inventory)))
	return header + "\n" + c.render() + "\n" + help + "\n" + m.noticeView()
}
