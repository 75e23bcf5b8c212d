package visionwalls

import (
	"bytes"
	"context"
	"encoding/base64"
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
// ("300 s for multimodal").
const DefaultTimeout = 300 * time.Second

// DefaultMaxTokens caps the model's completion size.
const DefaultMaxTokens = 4096

// DefaultConfidenceThreshold is the minimum overall confidence the
// orchestrator should require before weighting this engine's output
// against others during merging.
const DefaultConfidenceThreshold = 0.75

const defaultEndpoint = "https://api.openai.com/v1/chat/completions"

const systemPrompt = `You are a floor plan analyst. Given an image of a floor plan, identify every wall ` +
	`segment and, if you can, the enclosed rooms. Coordinates are pixel coordinates in the supplied image. ` +
	`Return only JSON matching this shape, no commentary: {"walls":[{"start":{"x":number,"y":number},` +
	`"end":{"x":number,"y":number},"is_load_bearing":boolean}],"rooms":[{"polygon":[{"x":number,"y":number}],` +
	`"name_hint":string}],"confidence":number}`

// Usage mirrors the OpenAI chat-completions response's token-count
// envelope.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Room is a room polygon read directly from the model's response,
// bypassing graph/cycle detection entirely (spec.md's gpt5_only path).
type Room struct {
	Polygon  []geometry.Point
	NameHint string
}

// Result is the outcome of a successful ExtractWalls call.
type Result struct {
	Walls      []geometry.Line
	Rooms      []Room
	Confidence float64
	Usage      Usage
}

// Client extracts walls and rooms from a raster image via an
// OpenAI-compatible multimodal chat completions endpoint.
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

type point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type extractedWall struct {
	Start         point `json:"start"`
	End           point `json:"end"`
	IsLoadBearing bool  `json:"is_load_bearing"`
}

type extractedRoom struct {
	Polygon  []point `json:"polygon"`
	NameHint string  `json:"name_hint"`
}

type extractionContract struct {
	Walls      []extractedWall `json:"walls"`
	Rooms      []extractedRoom `json:"rooms"`
	Confidence float64         `json:"confidence"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage Usage `json:"usage"`
}

// ExtractWalls asks the model to read imageBytes (of MIME type
// mimeType) and returns the walls, and any directly-identified rooms,
// it reports.
func (c *Client) ExtractWalls(ctx context.Context, imageBytes []byte, mimeType string) (Result, error) {
	if c.APIKey == "" {
		return Result{}, apierr.New(apierr.ExternalMalformedResponse, "OPENAI_API_KEY is not set")
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()

	dataURL := "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(imageBytes)

	body := map[string]any{
		"model": c.Model,
		"messages": []any{
			map[string]any{"role": "system", "content": systemPrompt},
			map[string]any{
				"role": "user",
				"content": []any{
					map[string]any{"type": "text", "text": "Extract the walls and rooms from this floor plan."},
					map[string]any{"type": "image_url", "image_url": map[string]any{"url": dataURL, "detail": "high"}},
				},
			},
		},
		"temperature":     0,
		"max_tokens":      c.MaxTokens,
		"response_format": map[string]any{"type": "json_object"},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return Result{}, fmt.Errorf("visionwalls: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return Result{}, fmt.Errorf("visionwalls: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.httpc.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return Result{}, apierr.Wrap(apierr.ExternalTimeout, "vision model call timed out", err)
		}
		return Result{}, apierr.Wrap(apierr.ExternalMalformedResponse, "vision model call failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return Result{}, apierr.New(apierr.ExternalMalformedResponse,
			fmt.Sprintf("vision model returned %d: %s", resp.StatusCode, strings.TrimSpace(string(raw))))
	}

	var completion chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return Result{}, apierr.Wrap(apierr.ExternalMalformedResponse, "could not decode vision model response", err)
	}
	if len(completion.Choices) == 0 {
		return Result{}, apierr.New(apierr.ExternalMalformedResponse, "vision model returned no choices")
	}

	content := stripCodeFences(completion.Choices[0].Message.Content)

	var contract extractionContract
	if err := json.Unmarshal([]byte(content), &contract); err != nil {
		return Result{}, apierr.Wrap(apierr.ExternalMalformedResponse, "vision model response failed the wall/room extraction contract", err)
	}

	result := Result{
		Confidence: contract.Confidence,
		Usage:      completion.Usage,
	}
	for _, w := range contract.Walls {
		result.Walls = append(result.Walls, geometry.Line{
			Start:         geometry.Point{X: w.Start.X, Y: w.Start.Y},
			End:           geometry.Point{X: w.End.X, Y: w.End.Y},
			IsLoadBearing: w.IsLoadBearing,
		})
	}
	for _, r := range contract.Rooms {
		polygon := make([]geometry.Point, 0, len(r.Polygon))
		for _, p := range r.Polygon {
			polygon = append(polygon, geometry.Point{X: p.X, Y: p.Y})
		}
		result.Rooms = append(result.Rooms, Room{Polygon: polygon, NameHint: r.NameHint})
	}

	return result, nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
