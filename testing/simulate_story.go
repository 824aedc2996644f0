package main

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/tatianab/hikaye/internal/app"
	"github.com/tatianab/hikaye/internal/config"
	"github.com/tatianab/hikaye/internal/engine"
	"github.com/tatianab/hikaye/internal/models"
	"github.com/tatianab/hikaye/internal/quiz"
	"google.golang.org/api/option"
)

const rounds = 3

func main() {
	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	catalog, err := models.LoadCatalog()
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	// The storyteller
	eng, err := engine.NewEngine(ctx, cfg, catalog, log.Default())
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}
	defer eng.Close()

	// The child answering the quizzes
	readerClient, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		log.Fatalf("Failed to create reader client: %v", err)
	}
	defer readerClient.Close()
	reader := readerClient.GenerativeModel(cfg.TextModel)

	orch := app.New(eng, catalog, app.WithLogger(log.Default()))
	err = orch.CompleteOnboarding(models.UserProfile{
		Name:    "Ayşe",
		Gender:  models.GenderFemale,
		Friends: [2]string{"Elif", "Zeynep"},
		Age:     7,
		Avatar:  catalog.InitialAvatar.ForGender(models.GenderFemale),
		Space:   models.SpaceIsland,
	})
	if err != nil {
		log.Fatalf("Failed to onboard: %v", err)
	}

	for round := 1; round <= rounds; round++ {
		fmt.Printf("--- Round %d ---\n", round)

		if err := orch.StartReading(ctx); err != nil {
			log.Fatalf("StartReading: %v", err)
		}
		snap := orch.Snapshot()
		screen, ok := snap.Screen.(app.ReadingScreen)
		if !ok {
			fmt.Printf("No story: %s\n\n", snap.Notice)
			continue
		}
		story := screen.Story
		fmt.Printf("Title: %s (%s)\n%s\n", story.Title, story.Theme, story.Content)
		if story.ImageURL != "" {
			fmt.Printf("Illustration: %d bytes\n", len(story.ImageURL))
		}
		fmt.Println()

		if err := orch.FinishReading(ctx); err != nil {
			log.Fatalf("FinishReading: %v", err)
		}
		quizScreen, ok := orch.Snapshot().Screen.(app.QuizScreen)
		if !ok {
			fmt.Printf("No quiz: %s\n\n", orch.Snapshot().Notice)
			continue
		}

		session := quiz.New(quizScreen.Quiz)
		for !session.Finished() {
			q, i := session.Current()
			answer := answerQuestion(ctx, reader, story, q)
			fb, err := session.Answer(answer)
			if err != nil {
				log.Fatalf("Answer: %v", err)
			}
			fmt.Printf("Q%d: %s -> %s (correct: %v)\n", i+1, q.Text, q.Options[answer], fb.Correct)
			if _, err := session.Resolve(); err != nil {
				log.Fatalf("Resolve: %v", err)
			}
		}
		fmt.Printf("Mistakes: %d, passed: %v\n\n", session.Mistakes(), session.Success())

		if err := orch.CompleteQuiz(ctx, session.Success()); err != nil {
			log.Fatalf("CompleteQuiz: %v", err)
		}
		rewards, ok := orch.Snapshot().Screen.(app.RewardScreen)
		if !ok {
			fmt.Printf("Notice: %s\n\n", orch.Snapshot().Notice)
			continue
		}
		for _, opt := range rewards.Options {
			fmt.Printf("Reward: %s %s - %s\n", opt.Emoji, opt.Name, opt.Description)
		}
		if err := orch.ClaimReward(rewards.Options[0]); err != nil {
			log.Fatalf("ClaimReward: %v", err)
		}

		p := orch.Snapshot().Profile
		fmt.Printf("Coins: %d, Items: %v\n\n", p.Coins, p.ItemNames())
	}
}

// answerQuestion asks the reader model for an option index. Unusable replies
// pick the first option.
func answerQuestion(ctx context.Context, model *genai.GenerativeModel, story models.Story, q models.Question) int {
	var options strings.Builder
	for i, opt := range q.Options {
		fmt.Fprintf(&options, "%d. %s\n", i+1, opt)
	}
	prompt := fmt.Sprintf(`You are a child who just read this story.

%s

Question: %s
%s
Answer with ONLY the number of the option you choose.`, story.Content, q.Text, options.String())

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return 0
	}
	reply := strings.TrimSpace(fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]))
	n, err := strconv.Atoi(strings.TrimRight(reply, "."))
	if err != nil || n < 1 || n > len(q.Options) {
		return 0
	}
	return n - 1
}
