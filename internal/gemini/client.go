package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultBaseURL is the Google Generative Language API endpoint.
const DefaultBaseURL = "https://generativelanguage.googleapis.com"

// Part is a single piece of content in a Gemini request or response.
type Part struct {
	Text string `json:"text"`
}

// Content is a sequence of parts with an optional role.
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// Schema is a JSON-schema-style constraint on structured output, passed as
// generationConfig.responseSchema. Only the fields this application needs
// are modeled.
type Schema struct {
	Type        string             `json:"type,omitempty"` // OBJECT, STRING, NUMBER, ...
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Required    []string           `json:"required,omitempty"`
}

// GenerationConfig carries the structured-output settings for a request.
type GenerationConfig struct {
	ResponseMIMEType string  `json:"responseMimeType,omitempty"`
	ResponseSchema   *Schema `json:"responseSchema,omitempty"`
}

type generateContentRequest struct {
	Contents          []Content         `json:"contents"`
	SystemInstruction *Content          `json:"systemInstruction,omitempty"`
	GenerationConfig  *GenerationConfig `json:"generationConfig,omitempty"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content Content `json:"content"`
	} `json:"candidates"`
}

// Request describes one generateContent call.
type Request struct {
	Prompt            string
	SystemInstruction string
	Schema            *Schema // when set, the model is constrained to JSON matching it
}

// TextGenerator is the seam services depend on, so tests can substitute a
// stub for the live API.
type TextGenerator interface {
	GenerateContent(ctx context.Context, req Request) (string, error)
}

// Client calls the Gemini generateContent REST endpoint. The API key is
// passed as a query parameter; a missing or invalid key simply makes the
// call fail, which callers are expected to absorb.
type Client struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
	logger  *zap.Logger
}

// NewClient creates a Gemini client. baseURL falls back to DefaultBaseURL
// when empty so tests can point the client at a local server.
func NewClient(apiKey, baseURL, model string, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		model:   model,
		client:  &http.Client{Timeout: 60 * time.Second},
		logger:  logger,
	}
}

// GenerateContent performs a single generateContent call and returns the
// first candidate's text with any markdown fencing stripped. It makes one
// outbound request: no retries, no backoff.
func (c *Client) GenerateContent(ctx context.Context, req Request) (string, error) {
	body := generateContentRequest{
		Contents: []Content{{Parts: []Part{{Text: req.Prompt}}}},
	}
	if req.SystemInstruction != "" {
		body.SystemInstruction = &Content{Parts: []Part{{Text: req.SystemInstruction}}}
	}
	if req.Schema != nil {
		body.GenerationConfig = &GenerationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   req.Schema,
		}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("error marshaling request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		c.baseURL, c.model, url.QueryEscape(c.apiKey))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(payload))
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("error calling Gemini API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("Gemini API request failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading response: %w", err)
	}

	var parsed generateContentResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("error unmarshaling response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response generated")
	}

	text := cleanModelText(parsed.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return "", fmt.Errorf("no response generated")
	}
	return text, nil
}

// cleanModelText strips markdown code fences and trims to the outermost
// JSON object boundaries. Models occasionally wrap structured output in
// ```json fences even when a response schema is set.
func cleanModelText(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	text = strings.TrimSpace(text)

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end != -1 && end > start {
		text = text[start : end+1]
	}
	return text
}
