package extract

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

// ErrMalformedResponse is returned when the model reply is not the expected
// JSON object.
var ErrMalformedResponse = errors.New("extract: failed to extract tasks")

const systemInstruction = `You are Bentoki, a daily execution architect.
Your role is to extract atomic, actionable tasks from unstructured user input.

### TASK EXTRACTION RULES
1. Identify individual activities.
2. Keep tasks atomic (one sitting).
3. DO NOT change, normalize, reword, or "clean up" the user's text. Keep the exact wording provided by the user for each task name.
4. Remove duplicate entries.

### OUTPUT
Return a JSON object containing an array of task names.
Do NOT estimate time. Do NOT assign priorities.`

// GeminiOptions configures NewGemini.
type GeminiOptions struct {
	APIKey string
	Model  string
	// Endpoint overrides the API base URL.
	Endpoint string
	// HTTPClient replaces the default transport.
	HTTPClient *http.Client
}

// Gemini extracts tasks with the Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini extractor.
func NewGemini(ctx context.Context, opts GeminiOptions) (*Gemini, error) {
	if opts.APIKey == "" {
		return nil, errors.New("extract: gemini api key is not configured")
	}
	cfg := &genai.ClientConfig{
		APIKey:     opts.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: opts.HTTPClient,
	}
	if opts.Endpoint != "" {
		cfg.HTTPOptions.BaseURL = opts.Endpoint
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("extract: create gemini client: %w", err)
	}
	model := strings.TrimPrefix(opts.Model, "models/")
	if model == "" {
		model = "gemini-3-flash-preview"
	}
	return &Gemini{client: client, model: model}, nil
}

var responseSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"task_names": {
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		},
	},
	Required: []string{"task_names"},
}

func (g *Gemini) Extract(ctx context.Context, text string) ([]string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text("User Input: "+text), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    responseSchema,
	})
	if err != nil {
		return nil, fmt.Errorf("extract: generate content: %w", err)
	}
	if resp == nil {
		return []string{}, nil
	}
	return parseResponse(resp.Text())
}

type taskNames struct {
	TaskNames []string `json:"task_names"`
}

func parseResponse(reply string) ([]string, error) {
	body := strings.TrimSpace(reply)
	if body == "" {
		return []string{}, nil
	}
	var out taskNames
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return Dedupe(out.TaskNames), nil
}
