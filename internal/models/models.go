package models

import (
	"errors"
	"fmt"
	"slices"
)

// Gender of the child, as shown in the onboarding form.
type Gender string

const (
	GenderMale   Gender = "Erkek"
	GenderFemale Gender = "Kız"
)

// ValidStyles returns the avatar hairstyles available for the gender.
func (g Gender) ValidStyles() []int {
	if g == GenderFemale {
		return []int{2, 3}
	}
	return []int{0, 1}
}

// DefaultStyle is the style an avatar snaps to when its style does not fit the gender.
func (g Gender) DefaultStyle() int {
	return g.ValidStyles()[0]
}

// Term is the lowercase word used for the gender in prompts.
func (g Gender) Term() string {
	if g == GenderFemale {
		return "kız"
	}
	return "erkek"
}

func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// SpaceType is the kind of virtual space the child decorates.
type SpaceType string

const (
	SpaceRoom      SpaceType = "ROOM"
	SpaceIsland    SpaceType = "ISLAND"
	SpaceSpaceship SpaceType = "SPACESHIP"
	SpacePinkHouse SpaceType = "PINK_HOUSE" // rendered, but not offered during onboarding
)

// SelectableSpaces are the spaces a child can choose from, in display order.
var SelectableSpaces = []SpaceType{SpaceRoom, SpaceIsland, SpaceSpaceship}

// Age bounds for the onboarding slider.
const (
	MinAge = 4
	MaxAge = 12
)

// AvatarConfig describes how the child's avatar looks.
type AvatarConfig struct {
	SkinColor  string `json:"skinColor" yaml:"skin_color"`
	HairColor  string `json:"hairColor" yaml:"hair_color"`
	ShirtColor string `json:"shirtColor" yaml:"shirt_color"`
	Style      int    `json:"style" yaml:"style"`
}

// ForGender returns a copy of the config whose style is valid for g.
func (a AvatarConfig) ForGender(g Gender) AvatarConfig {
	if !slices.Contains(g.ValidStyles(), a.Style) {
		a.Style = g.DefaultStyle()
	}
	return a
}

// Item is a reward placed in the child's space. X and Y are percentages of the space.
type Item struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Emoji       string  `json:"emoji"`
	Description string  `json:"description"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
}

// Default position of a freshly claimed item.
const (
	DefaultItemX = 50
	DefaultItemY = 50
)

// RewardOption is a reward suggestion that has not been claimed yet.
type RewardOption struct {
	Name        string `json:"name" yaml:"name"`
	Emoji       string `json:"emoji" yaml:"emoji"`
	Description string `json:"description" yaml:"description"`
}

// NewItem turns a claimed reward into an item at the default position.
func NewItem(opt RewardOption, id string) Item {
	return Item{
		ID:          id,
		Name:        opt.Name,
		Emoji:       opt.Emoji,
		Description: opt.Description,
		X:           DefaultItemX,
		Y:           DefaultItemY,
	}
}

// UserProfile is everything known about the child for the current session.
type UserProfile struct {
	Name      string       `json:"name"`
	Gender    Gender       `json:"gender"`
	Friends   [2]string    `json:"friends"`
	Age       int          `json:"age"`
	Avatar    AvatarConfig `json:"avatar"`
	Space     SpaceType    `json:"space"`
	Inventory []Item       `json:"inventory"`
	Coins     int          `json:"coins"`
}

// ItemNames lists the names of owned items in inventory order.
func (p UserProfile) ItemNames() []string {
	names := make([]string, 0, len(p.Inventory))
	for _, it := range p.Inventory {
		names = append(names, it.Name)
	}
	return names
}

// Story is a generated story. ImageURL is a data URI and may be empty.
type Story struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Theme    string `json:"theme"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// Question is a multiple-choice comprehension question.
type Question struct {
	Text         string   `json:"text"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
}

// Quiz is the ordered list of questions about a story.
type Quiz struct {
	Questions []Question `json:"questions"`
}

const (
	QuizQuestions   = 3
	QuestionOptions = 3
)

var ErrInvalidQuiz = errors.New("invalid quiz")

// Validate checks that the quiz has exactly three questions, each with three
// options and a correct index pointing at one of them.
func (q Quiz) Validate() error {
	if len(q.Questions) != QuizQuestions {
		return fmt.Errorf("%w: got %d questions, want %d", ErrInvalidQuiz, len(q.Questions), QuizQuestions)
	}
	for i, question := range q.Questions {
		if question.Text == "" {
			return fmt.Errorf("%w: question %d has no text", ErrInvalidQuiz, i+1)
		}
		if len(question.Options) != QuestionOptions {
			return fmt.Errorf("%w: question %d has %d options, want %d", ErrInvalidQuiz, i+1, len(question.Options), QuestionOptions)
		}
		if question.CorrectIndex < 0 || question.CorrectIndex >= QuestionOptions {
			return fmt.Errorf("%w: question %d has correct index %d", ErrInvalidQuiz, i+1, question.CorrectIndex)
		}
	}
	return nil
}
