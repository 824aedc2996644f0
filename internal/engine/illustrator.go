package engine

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"google.golang.org/api/option"
	htransport "google.golang.org/api/transport/http"
)

const defaultImageEndpoint = "https://generativelanguage.googleapis.com/v1beta"

// Illustrator calls the Imagen predict endpoint for a single 16:9 picture.
type Illustrator struct {
	client   *http.Client
	endpoint string
	model    string
}

// NewIllustrator builds an Illustrator whose HTTP client authenticates with apiKey.
func NewIllustrator(ctx context.Context, apiKey, model string) (*Illustrator, error) {
	client, _, err := htransport.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("image client: %w", err)
	}
	return newIllustrator(client, defaultImageEndpoint, model), nil
}

func newIllustrator(client *http.Client, endpoint, model string) *Illustrator {
	return &Illustrator{client: client, endpoint: endpoint, model: model}
}

type predictRequest struct {
	Instances  []predictInstance `json:"instances"`
	Parameters predictParameters `json:"parameters"`
}

type predictInstance struct {
	Prompt string `json:"prompt"`
}

type predictParameters struct {
	SampleCount int    `json:"sampleCount"`
	AspectRatio string `json:"aspectRatio"`
}

type predictResponse struct {
	Predictions []struct {
		BytesBase64Encoded string `json:"bytesBase64Encoded"`
		MimeType           string `json:"mimeType"`
	} `json:"predictions"`
}

// Illustrate returns the picture as a data URI.
func (il *Illustrator) Illustrate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(predictRequest{
		Instances:  []predictInstance{{Prompt: prompt}},
		Parameters: predictParameters{SampleCount: 1, AspectRatio: "16:9"},
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:predict", il.endpoint, il.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := il.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("imagen returned %s: %s", resp.Status, bytes.TrimSpace(msg))
	}

	var out predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to parse imagen response: %w", err)
	}
	if len(out.Predictions) == 0 || out.Predictions[0].BytesBase64Encoded == "" {
		return "", fmt.Errorf("imagen returned no image")
	}

	p := out.Predictions[0]
	if _, err := base64.StdEncoding.DecodeString(p.BytesBase64Encoded); err != nil {
		return "", fmt.Errorf("imagen returned invalid image data: %w", err)
	}
	mime := p.MimeType
	if mime == "" {
		mime = "image/png"
	}
	return "data:" + mime + ";base64," + p.BytesBase64Encoded, nil
}
