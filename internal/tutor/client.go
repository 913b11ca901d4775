// Package tutor asks an LLM to explain electron configurations and rule
// violations in plain language.
package tutor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	anthropicAPIURL = "https://api.anthropic.com/v1/messages"
	defaultModel    = "claude-sonnet-4-20250514"
)

// Client is an Anthropic API client.
type Client struct {
	apiKey     string
	httpClient *http.Client
	model      string
	url        string
}

// Request describes what the player wants explained.
type Request struct {
	Element       string // e.g. "Iron (Fe, Z=26)"
	Configuration string // configuration built so far
	Target        string // the ground-state configuration
	Violation     string // last violation message, if any
	Exception     string // observed configuration when it breaks Madelung
}

// message represents an Anthropic API message.
type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// request represents an Anthropic API request.
type request struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

// response represents an Anthropic API response.
type response struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Option configures a Client.
type Option func(*Client)

// WithModel overrides the model id.
func WithModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithURL points the client at a different endpoint.
func WithURL(url string) Option {
	return func(c *Client) { c.url = url }
}

// NewClient creates a new Anthropic client.
// It reads the API key from the ANTHROPIC_API_KEY environment variable.
func NewClient(opts ...Option) (*Client, error) {
	apiKey := strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY"))
	if apiKey == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
	}
	return NewClientWithKey(apiKey, opts...), nil
}

// NewClientWithKey creates a client with an explicit API key.
func NewClientWithKey(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		model: defaultModel,
		url:   anthropicAPIURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Explain asks for a short explanation of the request.
func (c *Client) Explain(ctx context.Context, r Request) (string, error) {
	req := request{
		Model:     c.model,
		MaxTokens: 400,
		Messages: []message{
			{Role: "user", Content: buildPrompt(r)},
		},
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("anthropic-version", "2023-06-01")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	var apiResp response
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", fmt.Errorf("unmarshaling response: %w", err)
	}

	if apiResp.Error != nil {
		return "", fmt.Errorf("API error: %s", apiResp.Error.Message)
	}

	if len(apiResp.Content) == 0 {
		return "", fmt.Errorf("empty response from API")
	}

	return strings.TrimSpace(apiResp.Content[0].Text), nil
}

// buildPrompt creates the prompt for the LLM.
func buildPrompt(r Request) string {
	var sb strings.Builder

	sb.WriteString("You are a friendly chemistry tutor helping a student build atoms electron by electron.\n\n")

	sb.WriteString("The rules the student is practising:\n")
	sb.WriteString("- Aufbau: fill subshells in Madelung order (lowest n+l first, then lowest n)\n")
	sb.WriteString("- Pauli: an orbital holds at most two electrons, with opposite spins\n")
	sb.WriteString("- Hund: put one electron in every orbital of a subshell before pairing any\n\n")

	sb.WriteString("=== ATOM ===\n")
	sb.WriteString(fmt.Sprintf("Element: %s\n", r.Element))
	if r.Configuration != "" {
		sb.WriteString(fmt.Sprintf("Built so far: %s\n", r.Configuration))
	} else {
		sb.WriteString("Built so far: (empty)\n")
	}
	if r.Target != "" {
		sb.WriteString(fmt.Sprintf("Madelung ground state: %s\n", r.Target))
	}
	if r.Exception != "" {
		sb.WriteString(fmt.Sprintf("Observed ground state (differs from Madelung): %s\n", r.Exception))
	}

	sb.WriteString("\n=== YOUR TASK ===\n")
	if r.Violation != "" {
		sb.WriteString(fmt.Sprintf("The student's last move broke a rule: %s\n", r.Violation))
		sb.WriteString("Explain in plain language why the rule exists and what the correct next move is.\n")
	} else {
		sb.WriteString("Explain why the configuration fills in this order and one interesting fact about the element's chemistry.\n")
	}
	if r.Exception != "" {
		sb.WriteString("Briefly mention why the real atom deviates from the Madelung prediction.\n")
	}
	sb.WriteString("\nAnswer in at most 4 short sentences of markdown. Do not repeat the rules verbatim.")

	return sb.String()
}
