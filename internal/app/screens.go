package app

import "github.com/tatianab/hikaye/internal/models"

// Phase names the active screen.
type Phase int

const (
	PhaseOnboarding Phase = iota
	PhaseDashboard
	PhaseReading
	PhaseQuiz
	PhaseRewardSelection
)

func (p Phase) String() string {
	switch p {
	case PhaseOnboarding:
		return "ONBOARDING"
	case PhaseDashboard:
		return "DASHBOARD"
	case PhaseReading:
		return "READING"
	case PhaseQuiz:
		return "QUIZ"
	case PhaseRewardSelection:
		return "REWARD_SELECTION"
	}
	return "UNKNOWN"
}

// Screen is the active screen together with the data only it needs.
// It is one of OnboardingScreen, DashboardScreen, ReadingScreen, QuizScreen
// or RewardScreen.
type Screen interface {
	Phase() Phase
}

type OnboardingScreen struct{}

type DashboardScreen struct{}

type ReadingScreen struct {
	Story models.Story
}

type QuizScreen struct {
	Story models.Story
	Quiz  models.Quiz
}

type RewardScreen struct {
	Story   models.Story
	Options []models.RewardOption
}

func (OnboardingScreen) Phase() Phase { return PhaseOnboarding }
func (DashboardScreen) Phase() Phase  { return PhaseDashboard }
func (ReadingScreen) Phase() Phase    { return PhaseReading }
func (QuizScreen) Phase() Phase       { return PhaseQuiz }
func (RewardScreen) Phase() Phase     { return PhaseRewardSelection }
