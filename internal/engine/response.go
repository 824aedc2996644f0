package engine

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
)

// responseText joins the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil ||
		len(resp.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyResponse
	}

	var text string
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text += string(t)
		}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// decodeJSON decodes a single JSON value. Code fences are tolerated, anything
// else (unknown fields, trailing data) is a contract violation.
func decodeJSON(text string, out any) error {
	clean := strings.TrimSpace(text)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")

	dec := json.NewDecoder(bytes.NewReader([]byte(clean)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("%w: failed to parse JSON: %v\nOutput was: %s", ErrContract, err, clean)
	}
	if dec.More() {
		return fmt.Errorf("%w: trailing data after JSON\nOutput was: %s", ErrContract, clean)
	}
	return nil
}
