package space

import "github.com/tatianab/hikaye/internal/models"

// Decor is a fixed background element of a scene.
type Decor struct {
	Glyph string
	X, Y  float64
}

// Scene is the themed background of a space.
type Scene struct {
	Kind       models.SpaceType
	Background string
	Floor      string
	FloorFrom  float64 // percent from the top where the floor starts; 100 means no floor
	Decor      []Decor
}

var scenes = map[models.SpaceType]Scene{
	models.SpaceRoom: {
		Kind:       models.SpaceRoom,
		Background: "#FEF3C7",
		Floor:      "#D97706",
		FloorFrom:  70,
		Decor: []Decor{
			{Glyph: "🪟", X: 20, Y: 20},
			{Glyph: "🖼️", X: 75, Y: 18},
			{Glyph: "🟥", X: 48, Y: 85},
		},
	},
	models.SpaceIsland: {
		Kind:       models.SpaceIsland,
		Background: "#7DD3FC",
		Floor:      "#FDE68A",
		FloorFrom:  75,
		Decor: []Decor{
			{Glyph: "☀️", X: 85, Y: 10},
			{Glyph: "☁️", X: 20, Y: 15},
			{Glyph: "🌴", X: 12, Y: 70},
			{Glyph: "🌊", X: 90, Y: 80},
		},
	},
	models.SpaceSpaceship: {
		Kind:       models.SpaceSpaceship,
		Background: "#0F172A",
		Floor:      "#334155",
		FloorFrom:  85,
		Decor: []Decor{
			{Glyph: "✦", X: 10, Y: 10},
			{Glyph: "✦", X: 60, Y: 25},
			{Glyph: "🪐", X: 80, Y: 20},
			{Glyph: "✧", X: 35, Y: 40},
			{Glyph: "🛸", X: 15, Y: 55},
		},
	},
	models.SpacePinkHouse: {
		Kind:       models.SpacePinkHouse,
		Background: "#FDF2F8",
		Floor:      "#F9A8D4",
		FloorFrom:  65,
		Decor: []Decor{
			{Glyph: "🪟", X: 50, Y: 18},
			{Glyph: "🚪", X: 10, Y: 50},
			{Glyph: "🛏️", X: 82, Y: 55},
			{Glyph: "🪑", X: 25, Y: 75},
		},
	},
}

// SceneFor returns the scene for a space type, or a plain white one for
// unknown types.
func SceneFor(t models.SpaceType) Scene {
	if s, ok := scenes[t]; ok {
		return s
	}
	return Scene{Kind: t, Background: "#FFFFFF", Floor: "#FFFFFF", FloorFrom: 100}
}
