package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tatianab/hikaye/internal/engine/enginetest"
	"github.com/tatianab/hikaye/internal/models"
)

func ayse() models.UserProfile {
	return models.UserProfile{
		Name:    "Ayşe",
		Gender:  models.GenderFemale,
		Friends: [2]string{"Elif", "Zeynep"},
		Age:     7,
		Avatar:  models.AvatarConfig{SkinColor: "#FFD1AA", HairColor: "#4A3627", ShirtColor: "#FF6B6B", Style: 2},
		Space:   models.SpaceRoom,
	}
}

func newOrchestrator(t *testing.T, stub *enginetest.Stub, opts ...Option) *Orchestrator {
	t.Helper()
	c, err := models.LoadCatalog()
	if err != nil {
		t.Fatal(err)
	}
	return New(stub, c, append([]Option{WithIDs(func() string { return "id-1" })}, opts...)...)
}

func onDashboard(t *testing.T, stub *enginetest.Stub) *Orchestrator {
	t.Helper()
	o := newOrchestrator(t, stub)
	if err := o.CompleteOnboarding(ayse()); err != nil {
		t.Fatalf("CompleteOnboarding: %v", err)
	}
	return o
}

func phase(o *Orchestrator) Phase { return o.Snapshot().Screen.Phase() }

func TestCompleteOnboarding(t *testing.T) {
	o := newOrchestrator(t, enginetest.NewStub())
	if phase(o) != PhaseOnboarding {
		t.Fatalf("initial phase = %s", phase(o))
	}
	p := ayse()
	p.Coins = 3
	p.Inventory = []models.Item{{ID: "x"}}
	if err := o.CompleteOnboarding(p); err != nil {
		t.Fatal(err)
	}

	s := o.Snapshot()
	if s.Screen.Phase() != PhaseDashboard {
		t.Errorf("phase = %s, want DASHBOARD", s.Screen.Phase())
	}
	if s.Profile.Coins != SeedCoins || len(s.Profile.Inventory) != 0 {
		t.Errorf("coins %d inventory %v, want 50 and empty", s.Profile.Coins, s.Profile.Inventory)
	}
	if s.Profile.Name != "Ayşe" {
		t.Errorf("name = %q", s.Profile.Name)
	}
	if err := o.CompleteOnboarding(p); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("second CompleteOnboarding = %v", err)
	}
}

func TestFullRound(t *testing.T) {
	stub := enginetest.NewStub()
	o := onDashboard(t, stub)
	ctx := context.Background()

	if err := o.StartReading(ctx); err != nil {
		t.Fatal(err)
	}
	reading, ok := o.Snapshot().Screen.(ReadingScreen)
	if !ok || reading.Story.Title != stub.Story.Title {
		t.Fatalf("screen = %#v", o.Snapshot().Screen)
	}
	if req := stub.StoryRequests[0]; req.Name != "Ayşe" || req.Age != 7 || req.Friends[1] != "Zeynep" || req.Gender != models.GenderFemale {
		t.Errorf("story request = %+v", req)
	}

	if err := o.FinishReading(ctx); err != nil {
		t.Fatal(err)
	}
	quiz, ok := o.Snapshot().Screen.(QuizScreen)
	if !ok || len(quiz.Quiz.Questions) != 3 {
		t.Fatalf("screen = %#v", o.Snapshot().Screen)
	}

	if err := o.CompleteQuiz(ctx, true); err != nil {
		t.Fatal(err)
	}
	rewards, ok := o.Snapshot().Screen.(RewardScreen)
	if !ok || len(rewards.Options) != 3 {
		t.Fatalf("screen = %#v", o.Snapshot().Screen)
	}
	if len(stub.Excluded[0]) != 0 {
		t.Errorf("excluded = %v, want none", stub.Excluded[0])
	}

	star := models.RewardOption{Name: "Yıldız", Emoji: "⭐", Description: "Parlak bir yıldız."}
	if err := o.ClaimReward(star); err != nil {
		t.Fatal(err)
	}
	s := o.Snapshot()
	if _, ok := s.Screen.(DashboardScreen); !ok {
		t.Fatalf("screen = %#v, want dashboard", s.Screen)
	}
	want := models.Item{ID: "id-1", Name: "Yıldız", Emoji: "⭐", Description: "Parlak bir yıldız.", X: 50, Y: 50}
	if len(s.Profile.Inventory) != 1 || s.Profile.Inventory[0] != want {
		t.Errorf("inventory = %+v", s.Profile.Inventory)
	}
	if s.Profile.Coins != SeedCoins+RewardCoins {
		t.Errorf("coins = %d, want %d", s.Profile.Coins, SeedCoins+RewardCoins)
	}
	if s.Loading {
		t.Error("still loading")
	}

	// Owned items are excluded from the next round of rewards.
	o.StartReading(ctx)
	o.FinishReading(ctx)
	o.CompleteQuiz(ctx, true)
	if got := stub.Excluded[1]; len(got) != 1 || got[0] != "Yıldız" {
		t.Errorf("excluded = %v, want [Yıldız]", got)
	}
}

func TestStartReadingFailureStaysOnDashboard(t *testing.T) {
	stub := enginetest.NewStub()
	stub.StoryErr = errors.New("provider down")
	o := onDashboard(t, stub)

	if err := o.StartReading(context.Background()); err != nil {
		t.Fatalf("StartReading = %v, want recovered failure", err)
	}
	s := o.Snapshot()
	if _, ok := s.Screen.(DashboardScreen); !ok {
		t.Errorf("screen = %#v, want dashboard", s.Screen)
	}
	if s.Notice == "" {
		t.Error("no notice after a failed story")
	}
	if s.Loading || s.LoadingMessage != "" {
		t.Errorf("loading = %v %q after failure", s.Loading, s.LoadingMessage)
	}
	if s.Profile.Coins != SeedCoins {
		t.Errorf("coins changed to %d", s.Profile.Coins)
	}

	o.DismissNotice()
	if o.Snapshot().Notice != "" {
		t.Error("notice not dismissed")
	}
}

func TestFinishReadingFailureSkipsQuiz(t *testing.T) {
	stub := enginetest.NewStub()
	stub.QuizErr = errors.New("bad json")
	o := onDashboard(t, stub)
	ctx := context.Background()
	o.StartReading(ctx)

	if err := o.FinishReading(ctx); err != nil {
		t.Fatal(err)
	}
	s := o.Snapshot()
	if s.Screen.Phase() != PhaseDashboard || s.Notice == "" {
		t.Errorf("phase %s notice %q", s.Screen.Phase(), s.Notice)
	}
	if s.Profile.Coins != SeedCoins || len(s.Profile.Inventory) != 0 {
		t.Errorf("profile changed: %+v", s.Profile)
	}
}

func TestRewardFailureUsesFallback(t *testing.T) {
	stub := enginetest.NewStub()
	stub.RewardsErr = errors.New("timeout")
	o := onDashboard(t, stub)
	ctx := context.Background()
	o.StartReading(ctx)
	o.FinishReading(ctx)

	if err := o.CompleteQuiz(ctx, true); err != nil {
		t.Fatal(err)
	}
	rewards, ok := o.Snapshot().Screen.(RewardScreen)
	if !ok {
		t.Fatalf("screen = %#v", o.Snapshot().Screen)
	}
	if len(rewards.Options) != 3 || rewards.Options[0].Name != "Gizemli Kutu" {
		t.Errorf("options = %+v", rewards.Options)
	}
	if err := o.ClaimReward(rewards.Options[2]); err != nil {
		t.Fatal(err)
	}
}

func TestFallbackSkipsOwnedRewards(t *testing.T) {
	stub := enginetest.NewStub()
	stub.RewardsErr = errors.New("timeout")
	o := onDashboard(t, stub)
	ctx := context.Background()

	round := func() []models.RewardOption {
		t.Helper()
		o.StartReading(ctx)
		o.FinishReading(ctx)
		if err := o.CompleteQuiz(ctx, true); err != nil {
			t.Fatal(err)
		}
		rewards, ok := o.Snapshot().Screen.(RewardScreen)
		if !ok {
			t.Fatalf("screen = %#v", o.Snapshot().Screen)
		}
		return rewards.Options
	}

	first := round()
	if err := o.ClaimReward(first[1]); err != nil {
		t.Fatal(err)
	}
	second := round()
	if len(second) != 2 {
		t.Fatalf("options = %+v, want 2", second)
	}
	for _, opt := range second {
		if opt.Name == first[1].Name {
			t.Errorf("owned reward %q offered again", opt.Name)
		}
	}
}

func TestFallbackRewardsAllOwned(t *testing.T) {
	all := []models.RewardOption{{Name: "Yıldız", Emoji: "⭐"}, {Name: "Çiçek", Emoji: "🌸"}}
	tests := []struct {
		owned []string
		want  int
	}{
		{nil, 2},
		{[]string{"yıldız"}, 1},
		{[]string{"Yıldız", "Çiçek"}, 2},
	}
	for _, tt := range tests {
		if got := fallbackRewards(all, tt.owned); len(got) != tt.want {
			t.Errorf("fallbackRewards(%v) = %+v, want %d options", tt.owned, got, tt.want)
		}
	}
}

func TestFailedQuizReturnsToDashboard(t *testing.T) {
	stub := enginetest.NewStub()
	o := onDashboard(t, stub)
	ctx := context.Background()
	o.StartReading(ctx)
	o.FinishReading(ctx)

	if err := o.CompleteQuiz(ctx, false); err != nil {
		t.Fatal(err)
	}
	s := o.Snapshot()
	if s.Screen.Phase() != PhaseDashboard {
		t.Errorf("phase = %s", s.Screen.Phase())
	}
	if _, _, rewards := stub.Calls(); rewards != 0 {
		t.Errorf("rewards generated %d times for a failed quiz", rewards)
	}
	if s.Profile.Coins != SeedCoins {
		t.Errorf("coins = %d", s.Profile.Coins)
	}
}

func TestInvalidTransitions(t *testing.T) {
	stub := enginetest.NewStub()
	o := newOrchestrator(t, stub)
	ctx := context.Background()

	if err := o.StartReading(ctx); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("StartReading during onboarding = %v", err)
	}
	o.CompleteOnboarding(ayse())
	if err := o.FinishReading(ctx); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("FinishReading on dashboard = %v", err)
	}
	if err := o.CompleteQuiz(ctx, true); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("CompleteQuiz on dashboard = %v", err)
	}
	if err := o.ClaimReward(stub.Rewards[0]); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("ClaimReward on dashboard = %v", err)
	}

	o.StartReading(ctx)
	o.FinishReading(ctx)
	o.CompleteQuiz(ctx, true)
	if err := o.ClaimReward(models.RewardOption{Name: "Ejderha", Emoji: "🐉"}); !errors.Is(err, ErrUnknownReward) {
		t.Errorf("ClaimReward of an unoffered reward = %v", err)
	}
	if err := o.UpdateItems(nil); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("UpdateItems on reward screen = %v", err)
	}
	if story, quiz, rewards := stub.Calls(); story != 1 || quiz != 1 || rewards != 1 {
		t.Errorf("calls = %d %d %d", story, quiz, rewards)
	}
}

func TestBusyWhileLoading(t *testing.T) {
	stub := enginetest.NewStub()
	stub.Block = make(chan struct{})
	var notified atomic.Int32
	o := newOrchestrator(t, stub, WithNotify(func() { notified.Add(1) }))
	o.CompleteOnboarding(ayse())

	done := make(chan error)
	go func() { done <- o.StartReading(context.Background()) }()

	deadline := time.Now().Add(2 * time.Second)
	for !o.Snapshot().Loading {
		if time.Now().After(deadline) {
			t.Fatal("loading flag never raised")
		}
		time.Sleep(time.Millisecond)
	}
	s := o.Snapshot()
	if s.LoadingMessage == "" {
		t.Error("no loading message")
	}
	if s.Screen.Phase() != PhaseDashboard {
		t.Errorf("phase changed before the story arrived: %s", s.Screen.Phase())
	}
	if err := o.StartReading(context.Background()); !errors.Is(err, ErrBusy) {
		t.Errorf("second StartReading = %v, want ErrBusy", err)
	}

	close(stub.Block)
	if err := <-done; err != nil {
		t.Fatal(err)
	}
	if o.Snapshot().Loading {
		t.Error("loading flag not cleared")
	}
	if phase(o) != PhaseReading {
		t.Errorf("phase = %s", phase(o))
	}
	if notified.Load() < 3 {
		t.Errorf("notified %d times, want at least 3", notified.Load())
	}
}

func TestUpdateItems(t *testing.T) {
	o := onDashboard(t, enginetest.NewStub())
	items := []models.Item{{ID: "a", X: 10, Y: 20}}
	if err := o.UpdateItems(items); err != nil {
		t.Fatal(err)
	}
	items[0].X = 99
	if got := o.Snapshot().Profile.Inventory[0].X; got != 10 {
		t.Errorf("inventory shares memory with the caller: X = %v", got)
	}
}

func TestItemIDsAreTimeOrdered(t *testing.T) {
	a, b := newItemID(), newItemID()
	if a == b || a > b {
		t.Errorf("ids %q and %q are not increasing", a, b)
	}
}
