package engine

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"strings"
	"text/template"

	"github.com/google/generative-ai-go/genai"
	"github.com/tatianab/hikaye/internal/config"
	"github.com/tatianab/hikaye/internal/models"
	"google.golang.org/api/option"
)

//go:embed prompts/story.txt
var storyPrompt string

//go:embed prompts/illustration.txt
var illustrationPrompt string

//go:embed prompts/quiz.txt
var quizPrompt string

//go:embed prompts/rewards.txt
var rewardsPrompt string

var (
	ErrEmptyResponse = errors.New("no content returned from Gemini")
	ErrContract      = errors.New("response does not match the requested shape")
)

// StoryRequest is who the story is written for.
type StoryRequest struct {
	Age     int
	Name    string
	Gender  models.Gender
	Friends [2]string
}

// Generator produces the content the app shows. Every call is a single round
// trip; errors are returned as they are, without retries.
type Generator interface {
	GenerateStory(ctx context.Context, req StoryRequest) (models.Story, error)
	GenerateQuiz(ctx context.Context, story models.Story, age int) (models.Quiz, error)
	GenerateRewardOptions(ctx context.Context, theme string, excluded []string) ([]models.RewardOption, error)
}

// generateFunc sends one prompt and asks for JSON matching schema.
type generateFunc func(ctx context.Context, schema *genai.Schema, prompt string) (*genai.GenerateContentResponse, error)

// illustrator draws a picture for a prompt and returns it as a data URI.
type illustrator interface {
	Illustrate(ctx context.Context, prompt string) (string, error)
}

type Engine struct {
	client      *genai.Client
	textModel   string
	generate    generateFunc
	illustrator illustrator
	catalog     *models.Catalog
	pick        func(n int) int
	logger      *log.Logger
}

var _ Generator = (*Engine)(nil)

func NewEngine(ctx context.Context, cfg *config.Config, catalog *models.Catalog, logger *log.Logger) (*Engine, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		return nil, err
	}

	e := &Engine{
		client:    client,
		textModel: cfg.TextModel,
		catalog:   catalog,
		pick:      rand.IntN,
		logger:    logger,
	}
	e.generate = e.callGemini

	if cfg.Illustrations {
		il, err := NewIllustrator(ctx, cfg.GeminiAPIKey, cfg.ImageModel)
		if err != nil {
			client.Close()
			return nil, err
		}
		e.illustrator = il
	}
	return e, nil
}

func (e *Engine) Close() {
	e.client.Close()
}

func (e *Engine) callGemini(ctx context.Context, schema *genai.Schema, prompt string) (*genai.GenerateContentResponse, error) {
	model := e.client.GenerativeModel(e.textModel)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = schema
	return model.GenerateContent(ctx, genai.Text(prompt))
}

// ask renders a prompt template, sends it and decodes the JSON answer into out.
func (e *Engine) ask(ctx context.Context, name, text string, data any, schema *genai.Schema, out any) error {
	prompt, err := render(name, text, data)
	if err != nil {
		return err
	}
	resp, err := e.generate(ctx, schema, prompt)
	if err != nil {
		return err
	}
	body, err := responseText(resp)
	if err != nil {
		return err
	}
	return decodeJSON(body, out)
}

func render(name, text string, data any) (string, error) {
	tmpl, err := template.New(name).Parse(text)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (e *Engine) GenerateStory(ctx context.Context, req StoryRequest) (models.Story, error) {
	theme := e.catalog.Themes[e.pick(len(e.catalog.Themes))]
	data := struct {
		Age           int
		GenderTerm    string
		Name          string
		Friends       string
		Theme         string
		OpeningPhrase string
	}{
		Age:           req.Age,
		GenderTerm:    req.Gender.Term(),
		Name:          req.Name,
		Friends:       strings.Join(req.Friends[:], " and "),
		Theme:         theme,
		OpeningPhrase: e.catalog.OpeningPhrase,
	}

	var story models.Story
	if err := e.ask(ctx, "story", storyPrompt, data, storySchema, &story); err != nil {
		return models.Story{}, fmt.Errorf("generate story: %w", err)
	}
	if story.Title == "" || story.Content == "" {
		return models.Story{}, fmt.Errorf("generate story: %w: missing title or content", ErrContract)
	}
	if story.Theme == "" {
		story.Theme = theme
	}
	if !strings.HasPrefix(strings.TrimSpace(story.Content), e.catalog.OpeningPhrase) {
		e.logger.Printf("story %q does not start with the opening phrase", story.Title)
	}

	story.ImageURL = e.illustrate(ctx, req, story)
	return story, nil
}

// illustrate returns an empty URL when no picture could be drawn.
func (e *Engine) illustrate(ctx context.Context, req StoryRequest, story models.Story) string {
	if e.illustrator == nil {
		return ""
	}
	prompt, err := render("illustration", illustrationPrompt, struct {
		GenderTerm, Name, Theme, Title string
	}{req.Gender.Term(), req.Name, story.Theme, story.Title})
	if err != nil {
		e.logger.Printf("Warning: failed to build illustration prompt: %v", err)
		return ""
	}
	url, err := e.illustrator.Illustrate(ctx, prompt)
	if err != nil {
		e.logger.Printf("Warning: failed to generate image: %v", err)
		return ""
	}
	return url
}

func (e *Engine) GenerateQuiz(ctx context.Context, story models.Story, age int) (models.Quiz, error) {
	data := struct {
		Age            int
		Title, Content string
	}{age, story.Title, story.Content}

	var quiz models.Quiz
	if err := e.ask(ctx, "quiz", quizPrompt, data, quizSchema, &quiz); err != nil {
		return models.Quiz{}, fmt.Errorf("generate quiz: %w", err)
	}
	if err := quiz.Validate(); err != nil {
		return models.Quiz{}, fmt.Errorf("generate quiz: %w: %w", ErrContract, err)
	}
	return quiz, nil
}

func (e *Engine) GenerateRewardOptions(ctx context.Context, theme string, excluded []string) ([]models.RewardOption, error) {
	data := struct {
		Theme    string
		Excluded string
	}{theme, strings.Join(excluded, ", ")}

	var resp struct {
		Options []models.RewardOption `json:"options"`
	}
	if err := e.ask(ctx, "rewards", rewardsPrompt, data, rewardsSchema, &resp); err != nil {
		return nil, fmt.Errorf("generate rewards: %w", err)
	}
	if err := validateRewards(resp.Options, excluded); err != nil {
		return nil, fmt.Errorf("generate rewards: %w", err)
	}
	return resp.Options, nil
}

func validateRewards(opts []models.RewardOption, excluded []string) error {
	if len(opts) != 3 {
		return fmt.Errorf("%w: got %d options, want 3", ErrContract, len(opts))
	}
	seen := make(map[string]bool, len(opts)+len(excluded))
	for _, name := range excluded {
		seen[strings.ToLower(name)] = true
	}
	for _, o := range opts {
		if o.Name == "" || o.Emoji == "" {
			return fmt.Errorf("%w: option without name or emoji", ErrContract)
		}
		key := strings.ToLower(o.Name)
		if seen[key] {
			return fmt.Errorf("%w: %q is repeated or already owned", ErrContract, o.Name)
		}
		seen[key] = true
	}
	return nil
}
