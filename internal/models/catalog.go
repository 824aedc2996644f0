package models

import (
	_ "embed"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Palettes are the color swatches offered for the avatar.
type Palettes struct {
	Skin  []string `yaml:"skin"`
	Hair  []string `yaml:"hair"`
	Shirt []string `yaml:"shirt"`
}

// SpaceInfo is how a space is presented in pickers and headers.
type SpaceInfo struct {
	Label string `yaml:"label"`
	Emoji string `yaml:"emoji"`
}

// Messages are the texts shown on the busy overlay and in notices.
type Messages struct {
	LoadingStory   string `yaml:"loading_story"`
	LoadingQuiz    string `yaml:"loading_quiz"`
	LoadingRewards string `yaml:"loading_rewards"`
	StoryFailed    string `yaml:"story_failed"`
	QuizFailed     string `yaml:"quiz_failed"`
	QuizLost       string `yaml:"quiz_lost"`
}

// Catalog is the static content of the app.
type Catalog struct {
	Themes          []string                `yaml:"themes"`
	OpeningPhrase   string                  `yaml:"opening_phrase"`
	Palettes        Palettes                `yaml:"palettes"`
	InitialAvatar   AvatarConfig            `yaml:"initial_avatar"`
	Spaces          map[SpaceType]SpaceInfo `yaml:"spaces"`
	FallbackRewards []RewardOption          `yaml:"fallback_rewards"`
	Messages        Messages                `yaml:"messages"`
}

// LoadCatalog decodes the embedded catalog.
func LoadCatalog() (*Catalog, error) {
	return ParseCatalog(catalogYAML)
}

// DefaultCatalog is LoadCatalog for callers that treat a broken embedded
// catalog as a programming error.
func DefaultCatalog() *Catalog {
	c, err := LoadCatalog()
	if err != nil {
		panic(err)
	}
	return c
}

func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	if len(c.Themes) == 0 {
		return fmt.Errorf("catalog has no themes")
	}
	if c.OpeningPhrase == "" {
		return fmt.Errorf("catalog has no opening phrase")
	}
	if len(c.Palettes.Skin) == 0 || len(c.Palettes.Hair) == 0 || len(c.Palettes.Shirt) == 0 {
		return fmt.Errorf("catalog palettes are incomplete")
	}
	if len(c.FallbackRewards) != 3 {
		return fmt.Errorf("catalog has %d fallback rewards, want 3", len(c.FallbackRewards))
	}
	for _, s := range SelectableSpaces {
		if _, ok := c.Spaces[s]; !ok {
			return fmt.Errorf("catalog is missing space %s", s)
		}
	}
	a := c.InitialAvatar
	if !slices.Contains(c.Palettes.Skin, a.SkinColor) ||
		!slices.Contains(c.Palettes.Hair, a.HairColor) ||
		!slices.Contains(c.Palettes.Shirt, a.ShirtColor) {
		return fmt.Errorf("catalog initial avatar uses colors outside the palettes")
	}
	return nil
}
