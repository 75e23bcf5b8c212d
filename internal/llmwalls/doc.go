// Package llmwalls extracts wall Lines from an SVG document's raw text
// using a language model, for floor plans where the geometric parser in
// internal/vectorparse cannot resolve ambiguous or decorative markup
// into clean walls.
//
// Grounded directly on the hand-rolled OpenAI-compatible HTTP client in
// knopka87-llm_proxy's internal/ocr/openai (no SDK): a map[string]any
// request body, http.NewRequestWithContext, a non-200 check reading the
// body into the error, decoding choices[0].message.content, stripping
// code fences, and unmarshaling the result against a strict contract.
package llmwalls
