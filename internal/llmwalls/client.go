package llmwalls

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ironsheep/floorplan-detectd/internal/apierr"
	"github.com/ironsheep/floorplan-detectd/internal/geometry"
)

// DefaultTimeout is this extractor's per-call deadline per spec.md §5
// ("180 s for text").
const DefaultTimeout = 180 * time.Second

// DefaultMaxTokens caps the model's completion size.
const DefaultMaxTokens = 4096

// defaultEndpoint is the OpenAI-compatible chat completions endpoint.
// Tests override Client.Endpoint to point at an httptest server.
const defaultEndpoint = "https://api.openai.com/v1/chat/completions"

const systemPrompt = `You are a floor plan analyst. Given the raw text of an SVG document, ` +
	`identify every wall segment it draws, including ones a naive geometric parser would miss ` +
	`(decorative strokes, dashed lines, grouped elements). Return only JSON matching this shape, ` +
	`no commentary: {"walls":[{"start":{"x":number,"y":number},"end":{"x":number,"y":number},"is_load_bearing":boolean}]}`

// Usage mirrors the OpenAI chat-completions response's token-count
// envelope, surfaced to the caller for cost accounting. The teacher's
// client never reads this field; it is added here because spec.md
// requires exposing it.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Client extracts walls from SVG text via an OpenAI-compatible chat
// completions endpoint.
type Client struct {
	APIKey    string
	Model     string
	MaxTokens int
	Endpoint  string
	httpc     *http.Client
}

// New returns a Client using apiKey and model, with DefaultTimeout and
// DefaultMaxTokens.
func New(apiKey, model string) *Client {
	return &Client{
		APIKey:    apiKey,
		Model:     model,
		MaxTokens: DefaultMaxTokens,
		Endpoint:  defaultEndpoint,
		httpc:     &http.Client{Timeout: DefaultTimeout},
	}
}

type wallPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type extractedWall struct {
	Start         wallPoint `json:"start"`
	End           wallPoint `json:"end"`
	IsLoadBearing bool      `json:"is_load_bearing"`
}

type extractionContract struct {
	Walls []extractedWall `json:"walls"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage Usage `json:"usage"`
}

// ExtractWalls asks the model to read svgText and return the wall Lines
// it implies. ctx additionally bounds the call with DefaultTimeout so
// the orchestrator's cooperative cancellation composes with this
// client's own HTTP timeout.
func (c *Client) ExtractWalls(ctx context.Context, svgText string) ([]geometry.Line, Usage, error) {
	if c.APIKey == "" {
		return nil, Usage{}, apierr.New(apierr.ExternalMalformedResponse, "OPENAI_API_KEY is not set")
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()

	body := map[string]any{
		"model": c.Model,
		"messages": []any{
			map[string]any{"role": "system", "content": systemPrompt},
			map[string]any{"role": "user", "content": svgText},
		},
		"temperature":     0,
		"max_tokens":      c.MaxTokens,
		"response_format": map[string]any{"type": "json_object"},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, Usage{}, fmt.Errorf("llmwalls: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, Usage{}, fmt.Errorf("llmwalls: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.httpc.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, Usage{}, apierr.Wrap(apierr.ExternalTimeout, "language model call timed out", err)
		}
		return nil, Usage{}, apierr.Wrap(apierr.ExternalMalformedResponse, "language model call failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, Usage{}, apierr.New(apierr.ExternalMalformedResponse,
			fmt.Sprintf("language model returned %d: %s", resp.StatusCode, strings.TrimSpace(string(raw))))
	}

	var completion chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return nil, Usage{}, apierr.Wrap(apierr.ExternalMalformedResponse, "could not decode language model response", err)
	}
	if len(completion.Choices) == 0 {
		return nil, Usage{}, apierr.New(apierr.ExternalMalformedResponse, "language model returned no choices")
	}

	content := stripCodeFences(completion.Choices[0].Message.Content)

	var contract extractionContract
	if err := json.Unmarshal([]byte(content), &contract); err != nil {
		return nil, completion.Usage, apierr.Wrap(apierr.ExternalMalformedResponse, "language model response failed the wall extraction contract", err)
	}

	lines := make([]geometry.Line, 0, len(contract.Walls))
	for _, w := range contract.Walls {
		lines = append(lines, geometry.Line{
			Start:         geometry.Point{X: w.Start.X, Y: w.Start.Y},
			End:           geometry.Point{X: w.End.X, Y: w.End.Y},
			IsLoadBearing: w.IsLoadBearing,
		})
	}

	return lines, completion.Usage, nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
