package llmwalls

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestExtractWallsParsesContract(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := chatCompletionResponse{}
		resp.Choices = []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		}{{}}
		resp.Choices[0].Message.Content = "```json\n" +
			`{"walls":[{"start":{"x":0,"y":0},"end":{"x":10,"y":0},"is_load_bearing":true}]}` +
			"\n```"
		resp.Usage = Usage{PromptTokens: 100, CompletionTokens: 20, TotalTokens: 120}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := New("test-key", "gpt-4o-mini")
	client.httpc = server.Client()
	client.Endpoint = server.URL

	lines, usage, err := client.ExtractWalls(context.Background(), "<svg></svg>")
	if err != nil {
		t.Fatalf("ExtractWalls returned error: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if !lines[0].IsLoadBearing {
		t.Errorf("expected IsLoadBearing to round-trip as true")
	}
	if usage.TotalTokens != 120 {
		t.Errorf("TotalTokens = %d, want 120", usage.TotalTokens)
	}
}

func TestExtractWallsRejectsMissingAPIKey(t *testing.T) {
	client := New("", "gpt-4o-mini")
	_, _, err := client.ExtractWalls(context.Background(), "<svg></svg>")
	if err == nil {
		t.Fatal("expected an error when OPENAI_API_KEY is empty")
	}
}

func TestExtractWallsRejectsMalformedContract(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := chatCompletionResponse{}
		resp.Choices = []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		}{{}}
		resp.Choices[0].Message.Content = "not json"
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := New("test-key", "gpt-4o-mini")
	client.httpc = server.Client()
	client.Endpoint = server.URL

	_, _, err := client.ExtractWalls(context.Background(), "<svg></svg>")
	if err == nil {
		t.Fatal("expected an error for a non-JSON model response")
	}
}
