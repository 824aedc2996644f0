// Package onboarding collects the child's profile over three steps: who they
// are, what their avatar looks like and which space they want.
package onboarding

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/tatianab/hikaye/internal/models"
)

type Step int

const (
	StepIdentity Step = iota + 1
	StepAvatar
	StepSpace
)

var (
	ErrIncomplete   = errors.New("name and both friends are required")
	ErrWrongStep    = errors.New("not available on this step")
	ErrInvalidValue = errors.New("invalid value")
)

// Wizard holds the form state. The zero value is not usable; call New.
type Wizard struct {
	catalog *models.Catalog

	step    Step
	name    string
	gender  models.Gender
	friends [2]string
	age     int
	avatar  models.AvatarConfig
	space   models.SpaceType
}

// New starts a wizard on the identity step with the catalog's defaults.
func New(c *models.Catalog) *Wizard {
	return &Wizard{
		catalog: c,
		step:    StepIdentity,
		gender:  models.GenderMale,
		age:     7,
		avatar:  c.InitialAvatar.ForGender(models.GenderMale),
		space:   models.SpaceRoom,
	}
}

func (w *Wizard) Step() Step                  { return w.step }
func (w *Wizard) Name() string                { return w.name }
func (w *Wizard) Gender() models.Gender       { return w.gender }
func (w *Wizard) Friends() [2]string          { return w.friends }
func (w *Wizard) Age() int                    { return w.age }
func (w *Wizard) Avatar() models.AvatarConfig { return w.avatar }
func (w *Wizard) Space() models.SpaceType     { return w.space }

func (w *Wizard) SetName(name string) { w.name = name }

// SetFriend sets the first (0) or second (1) friend's name.
func (w *Wizard) SetFriend(i int, name string) error {
	if i < 0 || i > 1 {
		return fmt.Errorf("%w: friend %d", ErrInvalidValue, i)
	}
	w.friends[i] = name
	return nil
}

// SetGender changes the gender and snaps the avatar style to one that fits it.
func (w *Wizard) SetGender(g models.Gender) error {
	if !g.Valid() {
		return fmt.Errorf("%w: gender %q", ErrInvalidValue, g)
	}
	w.gender = g
	w.avatar = w.avatar.ForGender(g)
	return nil
}

// SetAge clamps age to the slider range.
func (w *Wizard) SetAge(age int) {
	w.age = min(max(age, models.MinAge), models.MaxAge)
}

func (w *Wizard) SetStyle(style int) error {
	if !slices.Contains(w.gender.ValidStyles(), style) {
		return fmt.Errorf("%w: style %d for %s", ErrInvalidValue, style, w.gender)
	}
	w.avatar.Style = style
	return nil
}

func (w *Wizard) SetSkin(color string) error {
	return setColor(&w.avatar.SkinColor, w.catalog.Palettes.Skin, color)
}

func (w *Wizard) SetHair(color string) error {
	return setColor(&w.avatar.HairColor, w.catalog.Palettes.Hair, color)
}

func (w *Wizard) SetShirt(color string) error {
	return setColor(&w.avatar.ShirtColor, w.catalog.Palettes.Shirt, color)
}

func setColor(dst *string, palette []string, color string) error {
	if !slices.Contains(palette, color) {
		return fmt.Errorf("%w: color %s", ErrInvalidValue, color)
	}
	*dst = color
	return nil
}

func (w *Wizard) SetSpace(s models.SpaceType) error {
	if !slices.Contains(models.SelectableSpaces, s) {
		return fmt.Errorf("%w: space %s", ErrInvalidValue, s)
	}
	w.space = s
	return nil
}

// CanAdvance reports whether Next would move forward. Only the identity step
// has requirements; a name made only of spaces counts as empty.
func (w *Wizard) CanAdvance() bool {
	if w.step != StepIdentity {
		return true
	}
	return strings.TrimSpace(w.name) != "" &&
		strings.TrimSpace(w.friends[0]) != "" &&
		strings.TrimSpace(w.friends[1]) != ""
}

// Next moves to the following step. It does nothing on the last step; use
// Complete there.
func (w *Wizard) Next() error {
	if !w.CanAdvance() {
		return ErrIncomplete
	}
	if w.step < StepSpace {
		w.step++
	}
	return nil
}

// Back moves to the previous step, if any.
func (w *Wizard) Back() {
	if w.step > StepIdentity {
		w.step--
	}
}

// Complete packages the collected fields into a profile. Names are only
// trimmed. Coins start at zero; the caller decides on any starting balance.
func (w *Wizard) Complete() (models.UserProfile, error) {
	if w.step != StepSpace {
		return models.UserProfile{}, ErrWrongStep
	}
	return models.UserProfile{
		Name:      strings.TrimSpace(w.name),
		Gender:    w.gender,
		Friends:   [2]string{strings.TrimSpace(w.friends[0]), strings.TrimSpace(w.friends[1])},
		Age:       w.age,
		Avatar:    w.avatar,
		Space:     w.space,
		Inventory: []models.Item{},
		Coins:     0,
	}, nil
}
