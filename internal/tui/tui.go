package tui

import (
	"context"
	"fmt"
	"log"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tatianab/hikaye/internal/app"
	"github.com/tatianab/hikaye/internal/avatar"
	"github.com/tatianab/hikaye/internal/config"
	"github.com/tatianab/hikaye/internal/engine"
	"github.com/tatianab/hikaye/internal/models"
	"github.com/tatianab/hikaye/internal/quiz"
	"github.com/tatianab/hikaye/internal/space"
)

type model struct {
	orch    *app.Orchestrator
	catalog *models.Catalog
	logger  *log.Logger

	snapshot app.Snapshot
	phase    app.Phase
	width    int
	height   int
	spinner  spinner.Model

	onboarding *onboardingView
	board      *space.Board
	reader     *readerView
	quiz       *quiz.Session
	reward     int
}

// stateChangedMsg is sent whenever the orchestrator's state changes.
type stateChangedMsg struct{}

// transitionDoneMsg carries the result of a transition that ran as a command.
type transitionDoneMsg struct {
	err error
}

// feedbackDoneMsg fires once quiz feedback has been shown long enough.
type feedbackDoneMsg struct{}

func NewModel(orch *app.Orchestrator, catalog *models.Catalog, logger *log.Logger) model {
	m := model{
		orch:       orch,
		catalog:    catalog,
		logger:     logger,
		spinner:    spinner.New(spinner.WithSpinner(spinner.Dot)),
		onboarding: newOnboardingView(catalog),
		width:      80,
		height:     24,
	}
	m.sync()
	return m
}

func (m model) Init() tea.Cmd {
	return m.onboarding.focusCmd()
}

// sync refreshes the snapshot and rebuilds per-screen state when the screen changes.
func (m *model) sync() {
	m.snapshot = m.orch.Snapshot()
	screen := m.snapshot.Screen
	changed := screen.Phase() != m.phase
	m.phase = screen.Phase()

	switch s := screen.(type) {
	case app.DashboardScreen:
		// A drag never outlives the dashboard it started on.
		if changed || m.board == nil {
			m.board = space.NewBoard(m.snapshot.Profile.Inventory)
		} else {
			m.board.Sync(m.snapshot.Profile.Inventory)
		}
	case app.ReadingScreen:
		if changed || m.reader == nil {
			m.reader = newReaderView(s.Story, m.width, m.height)
		}
	case app.QuizScreen:
		if changed || m.quiz == nil {
			m.quiz = quiz.New(s.Quiz)
		}
	case app.RewardScreen:
		if changed {
			m.reward = 0
		}
	}
}

// run executes a blocking orchestrator call as a command and keeps the
// spinner turning while it is in flight.
func (m model) run(op func(context.Context) error) tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			return transitionDoneMsg{err: op(context.Background())}
		},
		m.spinner.Tick,
	)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.reader != nil {
			m.reader.resize(msg.Width, msg.Height)
		}
		return m, nil

	case stateChangedMsg:
		wasLoading := m.snapshot.Loading
		m.sync()
		if m.snapshot.Loading && !wasLoading {
			return m, m.spinner.Tick
		}
		return m, nil

	case transitionDoneMsg:
		if msg.err != nil {
			m.logger.Printf("transition rejected: %v", msg.err)
		}
		m.sync()
		return m, nil

	case spinner.TickMsg:
		if !m.snapshot.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	// Input is ignored while content is being generated.
	if m.snapshot.Loading {
		return m, nil
	}

	var cmd tea.Cmd
	switch m.phase {
	case app.PhaseOnboarding:
		cmd = m.updateOnboarding(msg)
	case app.PhaseDashboard:
		cmd = m.updateDashboard(msg)
	case app.PhaseReading:
		cmd = m.updateReader(msg)
	case app.PhaseQuiz:
		cmd = m.updateQuiz(msg)
	case app.PhaseRewardSelection:
		cmd = m.updateRewards(msg)
	}
	return m, cmd
}

func (m model) View() string {
	if m.snapshot.Loading {
		return m.loadingView()
	}

	var s string
	switch m.phase {
	case app.PhaseOnboarding:
		s = m.onboarding.view()
	case app.PhaseDashboard:
		s = m.dashboardView()
	case app.PhaseReading:
		s = m.reader.view()
	case app.PhaseQuiz:
		s = m.quizView()
	case app.PhaseRewardSelection:
		s = m.rewardsView()
	}
	return s
}

func (m model) loadingView() string {
	var figure string
	if p := m.snapshot.Profile; p != nil {
		figure = avatar.Render(p.Avatar).View()
	} else {
		figure = "🦊"
	}
	content := lipgloss.JoinVertical(lipgloss.Center,
		figure,
		"",
		m.spinner.View()+" "+loadingStyle.Render(m.snapshot.LoadingMessage),
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m model) noticeView() string {
	if m.snapshot.Notice == "" {
		return ""
	}
	return errorStyle.Render(m.snapshot.Notice)
}

// NewProgram wires a program whose model re-renders on every orchestrator change.
func NewProgram(gen engine.Generator, catalog *models.Catalog, logger *log.Logger) *tea.Program {
	var p *tea.Program
	orch := app.New(gen, catalog,
		app.WithLogger(logger),
		app.WithNotify(func() {
			// Send blocks until the event loop reads the message, and the
			// orchestrator may be called from inside Update.
			go p.Send(stateChangedMsg{})
		}),
	)
	p = tea.NewProgram(NewModel(orch, catalog, logger),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
	)
	return p
}

func Run(gen engine.Generator, catalog *models.Catalog, logger *log.Logger) error {
	_, err := NewProgram(gen, catalog, logger).Run()
	return err
}

// Start loads the configuration, connects to Gemini and runs the app.
func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	f, err := tea.LogToFile(cfg.LogFile, "hikaye ")
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()
	logger := log.Default()

	catalog, err := models.LoadCatalog()
	if err != nil {
		return err
	}

	ctx := context.Background()
	eng, err := engine.NewEngine(ctx, cfg, catalog, logger)
	if err != nil {
		return fmt.Errorf("creating engine: %w", err)
	}
	defer eng.Close()

	return Run(eng, catalog, logger)
}
