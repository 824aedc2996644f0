// Package enginetest provides a deterministic content generator for tests.
package enginetest

import (
	"context"
	"slices"
	"sync"

	"github.com/tatianab/hikaye/internal/engine"
	"github.com/tatianab/hikaye/internal/models"
)

// Stub is an engine.Generator that returns canned content. Set an Err field
// to make the matching call fail. Calls are recorded.
type Stub struct {
	mu sync.Mutex

	Story   models.Story
	Quiz    models.Quiz
	Rewards []models.RewardOption

	StoryErr   error
	QuizErr    error
	RewardsErr error

	StoryRequests []engine.StoryRequest
	QuizStories   []models.Story
	Excluded      [][]string

	// Block, when set, is waited on before every call returns.
	Block chan struct{}
}

var _ engine.Generator = (*Stub)(nil)

// NewStub returns a stub with a small story, a three-question quiz whose
// answers are 0, 1, 2 and three rewards.
func NewStub() *Stub {
	return &Stub{
		Story: models.Story{
			Title:   "Kayıp Anahtar",
			Content: "Bir varmış; bir yokmuş. Ayşe kayıp anahtarı buldu.",
			Theme:   "Mystery",
		},
		Quiz: models.Quiz{Questions: []models.Question{
			{Text: "Kim anahtarı buldu?", Options: []string{"Ayşe", "Elif", "Zeynep"}, CorrectIndex: 0},
			{Text: "Ne kayıptı?", Options: []string{"Top", "Anahtar", "Kedi"}, CorrectIndex: 1},
			{Text: "Hikaye nasıl başladı?", Options: []string{"Merhaba", "Günaydın", "Bir varmış"}, CorrectIndex: 2},
		}},
		Rewards: []models.RewardOption{
			{Name: "Büyüteç", Emoji: "🔍", Description: "İpuçlarını bulur."},
			{Name: "Yıldız", Emoji: "⭐", Description: "Parlak bir yıldız."},
			{Name: "Harita", Emoji: "🗺️", Description: "Gizli yolları gösterir."},
		},
	}
}

func (s *Stub) wait(ctx context.Context) error {
	s.mu.Lock()
	block := s.Block
	s.mu.Unlock()
	if block == nil {
		return nil
	}
	select {
	case <-block:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Stub) GenerateStory(ctx context.Context, req engine.StoryRequest) (models.Story, error) {
	if err := s.wait(ctx); err != nil {
		return models.Story{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.StoryRequests = append(s.StoryRequests, req)
	if s.StoryErr != nil {
		return models.Story{}, s.StoryErr
	}
	return s.Story, nil
}

func (s *Stub) GenerateQuiz(ctx context.Context, story models.Story, _ int) (models.Quiz, error) {
	if err := s.wait(ctx); err != nil {
		return models.Quiz{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.QuizStories = append(s.QuizStories, story)
	if s.QuizErr != nil {
		return models.Quiz{}, s.QuizErr
	}
	return s.Quiz, nil
}

func (s *Stub) GenerateRewardOptions(ctx context.Context, _ string, excluded []string) ([]models.RewardOption, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Excluded = append(s.Excluded, slices.Clone(excluded))
	if s.RewardsErr != nil {
		return nil, s.RewardsErr
	}
	return slices.Clone(s.Rewards), nil
}

// Calls returns how many times each operation was called.
func (s *Stub) Calls() (story, quiz, rewards int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.StoryRequests), len(s.QuizStories), len(s.Excluded)
}
