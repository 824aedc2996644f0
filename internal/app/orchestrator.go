// Package app sequences the screens of a session and applies their side
// effects: seeding coins, generating content and claiming rewards.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/tatianab/hikaye/internal/engine"
	"github.com/tatianab/hikaye/internal/models"
)

const (
	SeedCoins   = 50
	RewardCoins = 20
)

var (
	ErrBusy              = errors.New("a transition is already in progress")
	ErrInvalidTransition = errors.New("not allowed on the current screen")
	ErrUnknownReward     = errors.New("reward was not offered")
)

// Snapshot is a consistent copy of the orchestrator's state for drawing.
type Snapshot struct {
	Screen         Screen
	Profile        *models.UserProfile
	Loading        bool
	LoadingMessage string
	Notice         string
}

// Orchestrator owns the session state. Its methods may be called from any
// goroutine; the ones that generate content block until the generator returns.
type Orchestrator struct {
	gen     engine.Generator
	catalog *models.Catalog
	logger  *log.Logger
	newID   func() string
	notify  func()

	mu             sync.Mutex
	screen         Screen
	profile        *models.UserProfile
	loading        bool
	loadingMessage string
	notice         string
}

type Option func(*Orchestrator)

func WithLogger(l *log.Logger) Option { return func(o *Orchestrator) { o.logger = l } }

// WithIDs replaces the item id source.
func WithIDs(f func() string) Option { return func(o *Orchestrator) { o.newID = f } }

// WithNotify registers a function called after every state change.
func WithNotify(f func()) Option { return func(o *Orchestrator) { o.notify = f } }

func New(gen engine.Generator, catalog *models.Catalog, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		gen:     gen,
		catalog: catalog,
		logger:  log.New(io.Discard, "", 0),
		newID:   newItemID,
		notify:  func() {},
		screen:  OnboardingScreen{},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// newItemID returns a time-ordered id.
func newItemID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func (o *Orchestrator) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	s := Snapshot{
		Screen:         o.screen,
		Loading:        o.loading,
		LoadingMessage: o.loadingMessage,
		Notice:         o.notice,
	}
	if o.profile != nil {
		p := *o.profile
		p.Inventory = slices.Clone(p.Inventory)
		s.Profile = &p
	}
	return s
}

// DismissNotice clears the message shown after a recovered failure.
func (o *Orchestrator) DismissNotice() {
	o.update(func() error {
		o.notice = ""
		return nil
	})
}

// update runs f under the lock and notifies listeners if it succeeded.
func (o *Orchestrator) update(f func() error) error {
	o.mu.Lock()
	err := f()
	o.mu.Unlock()
	if err == nil {
		o.notify()
	}
	return err
}

// begin checks the current phase, raises the loading flag and returns the
// screen and profile the transition starts from. The caller must defer end.
func (o *Orchestrator) begin(from Phase, message string) (Screen, models.UserProfile, error) {
	var (
		screen  Screen
		profile models.UserProfile
	)
	err := o.update(func() error {
		if o.loading {
			return ErrBusy
		}
		if o.screen.Phase() != from {
			return fmt.Errorf("%w: %s", ErrInvalidTransition, o.screen.Phase())
		}
		o.loading = true
		o.loadingMessage = message
		o.notice = ""
		screen = o.screen
		profile = *o.profile
		profile.Inventory = slices.Clone(o.profile.Inventory)
		return nil
	})
	return screen, profile, err
}

func (o *Orchestrator) end() {
	o.update(func() error {
		o.loading = false
		o.loadingMessage = ""
		return nil
	})
}

// CompleteOnboarding stores the profile with the starting coins and opens the dashboard.
func (o *Orchestrator) CompleteOnboarding(p models.UserProfile) error {
	return o.update(func() error {
		if o.loading {
			return ErrBusy
		}
		if o.screen.Phase() != PhaseOnboarding {
			return fmt.Errorf("%w: %s", ErrInvalidTransition, o.screen.Phase())
		}
		p.Inventory = []models.Item{}
		p.Coins = SeedCoins
		o.profile = &p
		o.screen = DashboardScreen{}
		return nil
	})
}

// UpdateItems stores item positions after a drag.
func (o *Orchestrator) UpdateItems(items []models.Item) error {
	return o.update(func() error {
		if o.screen.Phase() != PhaseDashboard || o.profile == nil {
			return fmt.Errorf("%w: %s", ErrInvalidTransition, o.screen.Phase())
		}
		o.profile.Inventory = slices.Clone(items)
		return nil
	})
}

// StartReading generates a story and opens the reader. If generation fails
// the dashboard stays open with a notice.
func (o *Orchestrator) StartReading(ctx context.Context) error {
	_, p, err := o.begin(PhaseDashboard, o.catalog.Messages.LoadingStory)
	if err != nil {
		return err
	}
	defer o.end()

	story, err := o.gen.GenerateStory(ctx, engine.StoryRequest{
		Age:     p.Age,
		Name:    p.Name,
		Gender:  p.Gender,
		Friends: p.Friends,
	})
	return o.update(func() error {
		if err != nil {
			o.logger.Printf("story generation failed: %v", err)
			o.notice = o.catalog.Messages.StoryFailed
			return nil
		}
		o.screen = ReadingScreen{Story: story}
		return nil
	})
}

// FinishReading generates the quiz for the story being read. If that fails
// the quiz is skipped and the dashboard opens.
func (o *Orchestrator) FinishReading(ctx context.Context) error {
	screen, p, err := o.begin(PhaseReading, o.catalog.Messages.LoadingQuiz)
	if err != nil {
		return err
	}
	defer o.end()
	story := screen.(ReadingScreen).Story

	quiz, err := o.gen.GenerateQuiz(ctx, story, p.Age)
	return o.update(func() error {
		if err != nil {
			o.logger.Printf("quiz generation failed: %v", err)
			o.notice = o.catalog.Messages.QuizFailed
			o.screen = DashboardScreen{}
			return nil
		}
		o.screen = QuizScreen{Story: story, Quiz: quiz}
		return nil
	})
}

// CompleteQuiz moves on from the quiz. A passed quiz offers rewards, falling
// back to the catalog's rewards if none can be generated; a failed one goes
// back to the dashboard.
func (o *Orchestrator) CompleteQuiz(ctx context.Context, success bool) error {
	if !success {
		return o.update(func() error {
			if o.loading {
				return ErrBusy
			}
			if o.screen.Phase() != PhaseQuiz {
				return fmt.Errorf("%w: %s", ErrInvalidTransition, o.screen.Phase())
			}
			o.notice = o.catalog.Messages.QuizLost
			o.screen = DashboardScreen{}
			return nil
		})
	}

	screen, p, err := o.begin(PhaseQuiz, o.catalog.Messages.LoadingRewards)
	if err != nil {
		return err
	}
	defer o.end()
	story := screen.(QuizScreen).Story

	options, err := o.gen.GenerateRewardOptions(ctx, story.Theme, p.ItemNames())
	return o.update(func() error {
		if err != nil {
			o.logger.Printf("reward generation failed, using fallback rewards: %v", err)
			options = fallbackRewards(o.catalog.FallbackRewards, p.ItemNames())
		}
		o.screen = RewardScreen{Story: story, Options: options}
		return nil
	})
}

// fallbackRewards drops the rewards the child already owns. If that leaves
// nothing, all of them are offered again.
func fallbackRewards(all []models.RewardOption, owned []string) []models.RewardOption {
	options := slices.DeleteFunc(slices.Clone(all), func(o models.RewardOption) bool {
		return slices.ContainsFunc(owned, func(name string) bool {
			return strings.EqualFold(name, o.Name)
		})
	})
	if len(options) == 0 {
		return slices.Clone(all)
	}
	return options
}

// ClaimReward adds the chosen reward to the inventory, pays the reward coins
// and returns to the dashboard.
func (o *Orchestrator) ClaimReward(opt models.RewardOption) error {
	return o.update(func() error {
		if o.loading {
			return ErrBusy
		}
		screen, ok := o.screen.(RewardScreen)
		if !ok {
			return fmt.Errorf("%w: %s", ErrInvalidTransition, o.screen.Phase())
		}
		if !slices.Contains(screen.Options, opt) {
			return fmt.Errorf("%w: %s", ErrUnknownReward, opt.Name)
		}
		item := models.NewItem(opt, o.newID())
		o.profile.Inventory = append(o.profile.Inventory, item)
		o.profile.Coins += RewardCoins
		o.screen = DashboardScreen{}
		o.logger.Printf("claimed %s (%s)", opt.Name, item.ID)
		return nil
	})
}
