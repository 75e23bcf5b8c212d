// Package visionwalls extracts wall Lines, and optionally whole Rooms,
// directly from a raster floor-plan image using a multimodal language
// model, implementing spec.md §4.8 (gpt5_only and hybrid_vision's
// vision leg).
//
// Grounded on the same knopka87-llm_proxy/internal/ocr/openai client
// idiom as internal/llmwalls, extended with the image_url content-item
// shape that file's own Detect method already builds (a data: URL
// wrapping base64-encoded image bytes), and on vision-classifier's
// OpenAIResponse shape for reading back usage.
package visionwalls
