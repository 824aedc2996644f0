package engine

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/tatianab/hikaye/internal/models"
)

type fakeGemini struct {
	reply   string
	err     error
	prompts []string
	schemas []*genai.Schema
}

func (f *fakeGemini) generate(_ context.Context, schema *genai.Schema, prompt string) (*genai.GenerateContentResponse, error) {
	f.prompts = append(f.prompts, prompt)
	f.schemas = append(f.schemas, schema)
	if f.err != nil {
		return nil, f.err
	}
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
		Content: &genai.Content{Parts: []genai.Part{genai.Text(f.reply)}},
	}}}, nil
}

type fakeIllustrator struct {
	url    string
	err    error
	prompt string
}

func (f *fakeIllustrator) Illustrate(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.url, f.err
}

func newTestEngine(t *testing.T, g *fakeGemini, il illustrator) *Engine {
	t.Helper()
	c, err := models.LoadCatalog()
	if err != nil {
		t.Fatal(err)
	}
	e := &Engine{
		catalog: c,
		pick:    func(n int) int { return 5 },
		logger:  log.New(io.Discard, "", 0),
	}
	e.generate = g.generate
	if il != nil {
		e.illustrator = il
	}
	return e
}

var ayse = StoryRequest{Age: 7, Name: "Ayşe", Gender: models.GenderFemale, Friends: [2]string{"Elif", "Zeynep"}}

func TestGenerateStory(t *testing.T) {
	g := &fakeGemini{reply: `{"title":"Kayıp Anahtar","content":"Bir varmış; bir yokmuş...","theme":"Mystery"}`}
	il := &fakeIllustrator{url: "data:image/png;base64,AAAA"}
	e := newTestEngine(t, g, il)

	story, err := e.GenerateStory(context.Background(), ayse)
	if err != nil {
		t.Fatalf("GenerateStory: %v", err)
	}
	if story.Title != "Kayıp Anahtar" || story.Theme != "Mystery" {
		t.Errorf("story = %+v", story)
	}
	if story.ImageURL != il.url {
		t.Errorf("ImageURL = %q", story.ImageURL)
	}

	prompt := g.prompts[0]
	for _, want := range []string{
		`7-year-old kız`,
		`named "Ayşe"`,
		`Elif and Zeynep`,
		`The theme is Mystery.`,
		e.catalog.OpeningPhrase,
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("story prompt is missing %q:\n%s", want, prompt)
		}
	}
	if g.schemas[0] != storySchema {
		t.Error("story request did not use the story schema")
	}
	if !strings.Contains(il.prompt, "A kız named Ayşe in a Mystery setting") ||
		!strings.Contains(il.prompt, "Action: Kayıp Anahtar.") {
		t.Errorf("illustration prompt = %q", il.prompt)
	}
}

func TestGenerateStoryImageFailureIsNotFatal(t *testing.T) {
	g := &fakeGemini{reply: `{"title":"T","content":"C","theme":"Nature"}`}
	e := newTestEngine(t, g, &fakeIllustrator{err: errors.New("quota")})

	story, err := e.GenerateStory(context.Background(), ayse)
	if err != nil {
		t.Fatalf("GenerateStory: %v", err)
	}
	if story.ImageURL != "" {
		t.Errorf("ImageURL = %q, want empty", story.ImageURL)
	}
}

func TestGenerateStoryFailures(t *testing.T) {
	tests := map[string]*fakeGemini{
		"provider error": {err: errors.New("unavailable")},
		"empty reply":    {reply: "  "},
		"not json":       {reply: "Once upon a time"},
		"missing fields": {reply: `{"title":"T"}`},
		"unknown field":  {reply: `{"title":"T","content":"C","theme":"X","mood":"happy"}`},
	}
	for name, g := range tests {
		t.Run(name, func(t *testing.T) {
			il := &fakeIllustrator{url: "data:x"}
			e := newTestEngine(t, g, il)
			if _, err := e.GenerateStory(context.Background(), ayse); err == nil {
				t.Fatal("expected an error")
			}
			if il.prompt != "" {
				t.Error("illustration requested for a failed story")
			}
		})
	}
}

func TestGenerateQuiz(t *testing.T) {
	g := &fakeGemini{reply: "```json\n" + `{"questions":[
		{"text":"Q1","options":["a","b","c"],"correctIndex":0},
		{"text":"Q2","options":["a","b","c"],"correctIndex":1},
		{"text":"Q3","options":["a","b","c"],"correctIndex":2}]}` + "\n```"}
	e := newTestEngine(t, g, nil)

	quiz, err := e.GenerateQuiz(context.Background(), models.Story{Title: "Kayıp Anahtar", Content: "İçerik"}, 7)
	if err != nil {
		t.Fatalf("GenerateQuiz: %v", err)
	}
	if len(quiz.Questions) != 3 || quiz.Questions[2].CorrectIndex != 2 {
		t.Errorf("quiz = %+v", quiz)
	}
	if !strings.Contains(g.prompts[0], "Story Title: Kayıp Anahtar") || !strings.Contains(g.prompts[0], "7-year-old") {
		t.Errorf("quiz prompt = %s", g.prompts[0])
	}
}

func TestGenerateQuizWrongShape(t *testing.T) {
	g := &fakeGemini{reply: `{"questions":[{"text":"Q1","options":["a","b"],"correctIndex":0}]}`}
	e := newTestEngine(t, g, nil)
	_, err := e.GenerateQuiz(context.Background(), models.Story{}, 7)
	if !errors.Is(err, ErrContract) || !errors.Is(err, models.ErrInvalidQuiz) {
		t.Errorf("GenerateQuiz = %v, want ErrContract and ErrInvalidQuiz", err)
	}
}

func TestGenerateRewardOptions(t *testing.T) {
	g := &fakeGemini{reply: `{"options":[
		{"name":"Roket","emoji":"🚀","description":"Uçar."},
		{"name":"Teleskop","emoji":"🔭","description":"Yıldızları gösterir."},
		{"name":"Uzaylı","emoji":"👽","description":"Dost canlısı."}]}`}
	e := newTestEngine(t, g, nil)

	opts, err := e.GenerateRewardOptions(context.Background(), "Science Fiction", []string{"Yıldız", "Çiçek"})
	if err != nil {
		t.Fatalf("GenerateRewardOptions: %v", err)
	}
	if len(opts) != 3 || opts[1].Emoji != "🔭" {
		t.Errorf("options = %+v", opts)
	}
	if !strings.Contains(g.prompts[0], `theme "Science Fiction"`) ||
		!strings.Contains(g.prompts[0], "Do NOT suggest these items: Yıldız, Çiçek.") {
		t.Errorf("rewards prompt = %s", g.prompts[0])
	}

	g.prompts = nil
	if _, err := e.GenerateRewardOptions(context.Background(), "Nature", nil); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(g.prompts[0], "Do NOT suggest") {
		t.Errorf("prompt lists exclusions with an empty inventory: %s", g.prompts[0])
	}
}

func TestValidateRewards(t *testing.T) {
	opt := func(name string) models.RewardOption {
		return models.RewardOption{Name: name, Emoji: "⭐", Description: "d"}
	}
	tests := []struct {
		name     string
		opts     []models.RewardOption
		excluded []string
		ok       bool
	}{
		{"three distinct", []models.RewardOption{opt("A"), opt("B"), opt("C")}, nil, true},
		{"two", []models.RewardOption{opt("A"), opt("B")}, nil, false},
		{"duplicate", []models.RewardOption{opt("A"), opt("B"), opt("a")}, nil, false},
		{"already owned", []models.RewardOption{opt("A"), opt("B"), opt("C")}, []string{"b"}, false},
		{"no emoji", []models.RewardOption{opt("A"), opt("B"), {Name: "C"}}, nil, false},
	}
	for _, tt := range tests {
		err := validateRewards(tt.opts, tt.excluded)
		if (err == nil) != tt.ok {
			t.Errorf("%s: validateRewards = %v, want ok=%v", tt.name, err, tt.ok)
		}
	}
}

func TestResponseText(t *testing.T) {
	if _, err := responseText(nil); !errors.Is(err, ErrEmptyResponse) {
		t.Errorf("nil response: %v", err)
	}
	if _, err := responseText(&genai.GenerateContentResponse{}); !errors.Is(err, ErrEmptyResponse) {
		t.Errorf("no candidates: %v", err)
	}
	resp := &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
		Content: &genai.Content{Parts: []genai.Part{genai.Text(`{"a":`), genai.Text(`1}`)}},
	}}}
	got, err := responseText(resp)
	if err != nil || got != `{"a":1}` {
		t.Errorf("responseText = %q, %v", got, err)
	}
}

func TestDecodeJSONTrailingData(t *testing.T) {
	var v struct{ A int }
	if err := decodeJSON(`{"A":1} {"A":2}`, &v); !errors.Is(err, ErrContract) {
		t.Errorf("decodeJSON = %v, want ErrContract", err)
	}
}
