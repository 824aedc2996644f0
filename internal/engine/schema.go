package engine

import "github.com/google/generative-ai-go/genai"

var storySchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"title":   {Type: genai.TypeString},
		"content": {Type: genai.TypeString},
		"theme":   {Type: genai.TypeString},
	},
	Required: []string{"title", "content", "theme"},
}

var quizSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"questions": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"text": {Type: genai.TypeString},
					"options": {
						Type:        genai.TypeArray,
						Items:       &genai.Schema{Type: genai.TypeString},
						Description: "Array of 3 possible answers in Turkish",
					},
					"correctIndex": {
						Type:        genai.TypeInteger,
						Description: "The index (0-2) of the correct answer in the options array",
					},
				},
				Required: []string{"text", "options", "correctIndex"},
			},
		},
	},
	Required: []string{"questions"},
}

var rewardsSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"options": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"name":        {Type: genai.TypeString, Description: "Short name of the item in Turkish"},
					"emoji":       {Type: genai.TypeString, Description: "A single emoji representing the item"},
					"description": {Type: genai.TypeString, Description: "A one-sentence exciting description in Turkish"},
				},
				Required: []string{"name", "emoji", "description"},
			},
		},
	},
	Required: []string{"options"},
}
