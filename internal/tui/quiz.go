package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tatianab/hikaye/internal/quiz"
)

func (m *model) updateQuiz(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "1", "2", "3":
			if _, err := m.quiz.Answer(int(msg.Runes[0] - '1')); err != nil {
				return nil
			}
			return tea.Tick(quiz.FeedbackDelay, func(time.Time) tea.Msg { return feedbackDoneMsg{} })
		}

	case feedbackDoneMsg:
		finished, err := m.quiz.Resolve()
		if err != nil || !finished {
			return nil
		}
		success := m.quiz.Success()
		return m.run(func(ctx context.Context) error {
			return m.orch.CompleteQuiz(ctx, success)
		})
	}
	return nil
}

func (m model) quizView() string {
	q, i := m.quiz.Current()
	fb, pending := m.quiz.Pending()

	if m.quiz.Finished() {
		return panelStyle.Render(correctStyle.Render("Bitti!"))
	}
	header := titleStyle.Render(fmt.Sprintf("Soru %d/%d", i+1, m.quiz.Total()))
	var options []string
	for n, opt := range q.Options {
		label := fmt.Sprintf("%d. %s", n+1, opt)
		switch {
		case pending && n == fb.Option && fb.Correct:
			options = append(options, correctStyle.Render(label+" ✓"))
		case pending && n == fb.Option:
			options = append(options, wrongStyle.Render(label+" ✗"))
		default:
			options = append(options, optionStyle.Render(label))
		}
	}

	var status string
	switch {
	case pending && fb.Correct:
		status = correctStyle.Render("Harika! Doğru cevap!")
	case pending:
		status = wrongStyle.Render("Olmadı, tekrar dene!")
	default:
		status = helpStyle.Render("1-3: cevabını seç")
	}

	body := strings.Join([]string{header, "", q.Text, "", lipgloss.JoinVertical(lipgloss.Left, options...), "", status}, "\n")
	return panelStyle.Render(body)
}
