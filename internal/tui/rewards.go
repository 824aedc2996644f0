package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tatianab/hikaye/internal/app"
)

func (m *model) updateRewards(msg tea.Msg) tea.Cmd {
	screen, ok := m.snapshot.Screen.(app.RewardScreen)
	key, isKey := msg.(tea.KeyMsg)
	if !ok || !isKey || len(screen.Options) == 0 {
		return nil
	}
	n := len(screen.Options)
	switch key.String() {
	case "left", "up":
		m.reward = (m.reward - 1 + n) % n
	case "right", "down", "tab":
		m.reward = (m.reward + 1) % n
	case "enter":
		if err := m.orch.ClaimReward(screen.Options[m.reward]); err != nil {
			m.logger.Printf("claim reward: %v", err)
		}
		m.sync()
	}
	return nil
}

func (m model) rewardsView() string {
	screen := m.snapshot.Screen.(app.RewardScreen)
	var cards []string
	for i, opt := range screen.Options {
		card := lipgloss.JoinVertical(lipgloss.Center, opt.Emoji, opt.Name, helpStyle.Render(opt.Description))
		if i == m.reward {
			cards = append(cards, focusStyle.Border(lipgloss.RoundedBorder()).Render(card))
		} else {
			cards = append(cards, optionStyle.Render(card))
		}
	}
	header := titleStyle.Render("Tebrikler! Bir ödül seç")
	help := helpStyle.Render(fmt.Sprintf("←→: seç • enter: al (+%d 🪙)", app.RewardCoins))
	return header + "\n\n" + lipgloss.JoinHorizontal(lipgloss.Top, cards...) + "\n\n" + help
}
