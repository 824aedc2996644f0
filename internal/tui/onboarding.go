package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tatianab/hikaye/internal/avatar"
	"github.com/tatianab/hikaye/internal/models"
	"github.com/tatianab/hikaye/internal/onboarding"
)

// Rows of the identity step.
const (
	rowName = iota
	rowGender
	rowFriend1
	rowFriend2
	rowAge
)

// Rows of the avatar step.
const (
	rowStyle = iota
	rowSkin
	rowHair
	rowShirt
)

var styleNames = map[int]string{0: "Kısa", 1: "Dikenli", 2: "Kuyruklu", 3: "Uzun"}

type onboardingView struct {
	wizard  *onboarding.Wizard
	catalog *models.Catalog
	inputs  map[int]*textinput.Model
	row     int
	blocked bool
}

func newOnboardingView(c *models.Catalog) *onboardingView {
	v := &onboardingView{
		wizard:  onboarding.New(c),
		catalog: c,
		inputs:  map[int]*textinput.Model{},
	}
	for row, placeholder := range map[int]string{
		rowName:    "Adın ne?",
		rowFriend1: "En iyi arkadaşın",
		rowFriend2: "Diğer arkadaşın",
	} {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.CharLimit = 40
		ti.Width = 24
		v.inputs[row] = &ti
	}
	return v
}

func (v *onboardingView) rows() int {
	switch v.wizard.Step() {
	case onboarding.StepIdentity:
		return 5
	case onboarding.StepAvatar:
		return 4
	}
	return 1
}

// focusCmd focuses the text input under the cursor, if any.
func (v *onboardingView) focusCmd() tea.Cmd {
	var cmd tea.Cmd
	for row, ti := range v.inputs {
		if v.wizard.Step() == onboarding.StepIdentity && row == v.row {
			cmd = ti.Focus()
		} else {
			ti.Blur()
		}
	}
	return cmd
}

func (v *onboardingView) moveRow(delta int) tea.Cmd {
	n := v.rows()
	v.row = (v.row + delta + n) % n
	return v.focusCmd()
}

// update handles a message and returns the completed profile once the last
// step is confirmed.
func (v *onboardingView) update(msg tea.Msg) (tea.Cmd, *models.UserProfile) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return v.updateInput(msg), nil
	}

	switch key.String() {
	case "tab", "down":
		return v.moveRow(1), nil
	case "shift+tab", "up":
		return v.moveRow(-1), nil
	case "esc":
		v.wizard.Back()
		v.row = 0
		v.blocked = false
		return v.focusCmd(), nil
	case "enter":
		if v.wizard.Step() == onboarding.StepSpace {
			p, err := v.wizard.Complete()
			if err != nil {
				return nil, nil
			}
			return nil, &p
		}
		if err := v.wizard.Next(); err != nil {
			v.blocked = true
			return nil, nil
		}
		v.row = 0
		v.blocked = false
		return v.focusCmd(), nil
	case "left", "right":
		delta := 1
		if key.String() == "left" {
			delta = -1
		}
		if v.cycle(delta) {
			return nil, nil
		}
	}
	return v.updateInput(msg), nil
}

// cycle changes the selector under the cursor. It reports false on text rows.
func (v *onboardingView) cycle(delta int) bool {
	w := v.wizard
	switch w.Step() {
	case onboarding.StepIdentity:
		switch v.row {
		case rowGender:
			if w.Gender() == models.GenderMale {
				w.SetGender(models.GenderFemale)
			} else {
				w.SetGender(models.GenderMale)
			}
		case rowAge:
			w.SetAge(w.Age() + delta)
		default:
			return false
		}
	case onboarding.StepAvatar:
		a := w.Avatar()
		switch v.row {
		case rowStyle:
			w.SetStyle(next(w.Gender().ValidStyles(), a.Style, delta))
		case rowSkin:
			w.SetSkin(next(v.catalog.Palettes.Skin, a.SkinColor, delta))
		case rowHair:
			w.SetHair(next(v.catalog.Palettes.Hair, a.HairColor, delta))
		case rowShirt:
			w.SetShirt(next(v.catalog.Palettes.Shirt, a.ShirtColor, delta))
		}
	case onboarding.StepSpace:
		w.SetSpace(next(models.SelectableSpaces, w.Space(), delta))
	}
	return true
}

func next[T comparable](options []T, current T, delta int) T {
	i := slices.Index(options, current)
	n := len(options)
	return options[((i+delta)%n+n)%n]
}

func (v *onboardingView) updateInput(msg tea.Msg) tea.Cmd {
	ti, ok := v.inputs[v.row]
	if !ok || v.wizard.Step() != onboarding.StepIdentity {
		return nil
	}
	var cmd tea.Cmd
	*ti, cmd = ti.Update(msg)
	switch v.row {
	case rowName:
		v.wizard.SetName(ti.Value())
	case rowFriend1:
		v.wizard.SetFriend(0, ti.Value())
	case rowFriend2:
		v.wizard.SetFriend(1, ti.Value())
	}
	if v.wizard.CanAdvance() {
		v.blocked = false
	}
	return cmd
}

func (v *onboardingView) line(row int, label, value string) string {
	l := labelStyle.Render(label)
	if row == v.row {
		return focusStyle.Render("›") + " " + l + value
	}
	return "  " + l + value
}

func (v *onboardingView) view() string {
	w := v.wizard
	var body, help string
	switch w.Step() {
	case onboarding.StepIdentity:
		gender := fmt.Sprintf("‹ %s ›", w.Gender())
		body = strings.Join([]string{
			v.line(rowName, "Adın", v.inputs[rowName].View()),
			v.line(rowGender, "Cinsiyet", gender),
			v.line(rowFriend1, "1. Arkadaş", v.inputs[rowFriend1].View()),
			v.line(rowFriend2, "2. Arkadaş", v.inputs[rowFriend2].View()),
			v.line(rowAge, "Yaşın", fmt.Sprintf("‹ %d ›  (%d-%d)", w.Age(), models.MinAge, models.MaxAge)),
		}, "\n")
		if v.blocked {
			body += "\n\n" + errorStyle.Render("Adını ve iki arkadaşını yazmalısın!")
		}
		help = "tab/↑↓: alan seç • ←→: değiştir • enter: ileri"

	case onboarding.StepAvatar:
		a := w.Avatar()
		var styles []string
		for _, s := range w.Gender().ValidStyles() {
			name := styleNames[s]
			if s == a.Style {
				name = "[" + name + "]"
			}
			styles = append(styles, name)
		}
		form := strings.Join([]string{
			v.line(rowStyle, "Saç modeli", strings.Join(styles, " ")),
			v.line(rowSkin, "Ten rengi", swatches(v.catalog.Palettes.Skin, a.SkinColor)),
			v.line(rowHair, "Saç rengi", swatches(v.catalog.Palettes.Hair, a.HairColor)),
			v.line(rowShirt, "Tişört", swatches(v.catalog.Palettes.Shirt, a.ShirtColor)),
		}, "\n")
		body = lipgloss.JoinHorizontal(lipgloss.Center, avatar.Render(a).View(), "    ", form)
		help = "↑↓: seç • ←→: değiştir • enter: ileri • esc: geri"

	case onboarding.StepSpace:
		var choices []string
		for _, s := range models.SelectableSpaces {
			info := v.catalog.Spaces[s]
			label := info.Emoji + " " + info.Label
			if s == w.Space() {
				choices = append(choices, focusStyle.Render(label))
			} else {
				choices = append(choices, optionStyle.Render(label))
			}
		}
		body = "Nerede yaşamak istersin?\n\n" + lipgloss.JoinHorizontal(lipgloss.Center, choices...)
		help = "←→: seç • enter: başla! • esc: geri"
	}

	header := titleStyle.Render(fmt.Sprintf("Hoş geldin! (%d/3)", w.Step()))
	return panelStyle.Render(header+"\n\n"+body) + "\n" + helpStyle.Render(help)
}

func swatches(palette []string, selected string) string {
	var b strings.Builder
	for _, c := range palette {
		b.WriteString(swatch(c, c == selected))
	}
	return b.String()
}

func (m *model) updateOnboarding(msg tea.Msg) tea.Cmd {
	cmd, profile := m.onboarding.update(msg)
	if profile == nil {
		return cmd
	}
	if err := m.orch.CompleteOnboarding(*profile); err != nil {
		m.logger.Printf("complete onboarding: %v", err)
	}
	m.sync()
	return cmd
}
