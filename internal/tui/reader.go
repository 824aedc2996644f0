package tui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tatianab/hikaye/internal/models"
)

var (
	storyStyle = lipgloss.NewStyle().Padding(0, 2)
	imageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A855F7")).Italic(true)
)

type readerView struct {
	story    models.Story
	viewport viewport.Model
}

func newReaderView(story models.Story, width, height int) *readerView {
	r := &readerView{story: story}
	r.viewport = viewport.New(width, height)
	r.resize(width, height)
	return r
}

// resize fits the story under the title line and above the help line.
func (r *readerView) resize(width, height int) {
	r.viewport.Width = width
	r.viewport.Height = max(height-4, 1)
	r.viewport.SetContent(storyStyle.Width(max(width-2, 10)).Render(r.story.Content))
}

func (r *readerView) view() string {
	title := titleStyle.Render(r.story.Title)
	if r.story.ImageURL != "" {
		title += "  " + imageStyle.Render("🖼️ resimli hikaye")
	}
	help := helpStyle.Render("↑↓: kaydır • enter: bitirdim!")
	return title + "\n\n" + r.viewport.View() + "\n" + help
}

func (m *model) updateReader(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		return m.run(m.orch.FinishReading)
	}
	var cmd tea.Cmd
	m.reader.viewport, cmd = m.reader.viewport.Update(msg)
	return cmd
}
