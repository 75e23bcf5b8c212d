package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ironsheep/floorplan-detectd/internal/apierr"
	"github.com/ironsheep/floorplan-detectd/internal/orchestrator"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, healthResponse{Status: "healthy", Version: Version}, http.StatusOK)
}

func (s *Server) handleDetect(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	var body detectRequest
	if err := decodeJSONBody(w, r, standardBodyLimit, &body); err != nil {
		return
	}

	req := orchestrator.Request{
		Strategy:      orchestrator.GraphOnly,
		Lines:         body.Lines,
		AreaThreshold: floatOr(body.AreaThreshold, defaultAreaThreshold),
		DoorThreshold: floatOr(body.DoorThreshold, 0),
	}
	s.runAndRespond(w, r, req)
}

func (s *Server) handleDetectEnhanced(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	var body enhancedDetectRequest
	if err := decodeJSONBody(w, r, imageBodyLimit, &body); err != nil {
		return
	}

	req := orchestrator.Request{
		Strategy:            orchestrator.Strategy(body.Strategy),
		Lines:               body.Lines,
		AreaThreshold:       floatOr(body.AreaThreshold, defaultAreaThreshold),
		DoorThreshold:       floatOr(body.DoorThreshold, 0),
		ConfidenceThreshold: floatOr(body.ConfidenceThreshold, 0),
		VisionModel:         body.VisionModel,
	}
	if body.ImageBase64 != "" {
		imageBytes, err := decodeImageBase64(body.ImageBase64)
		if err != nil {
			writeErr(w, err)
			return
		}
		req.ImageBytes = imageBytes
	}
	s.runAndRespond(w, r, req)
}

func (s *Server) handleDetectSVG(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	var body svgDetectRequest
	if err := decodeJSONBody(w, r, standardBodyLimit, &body); err != nil {
		return
	}

	switch orchestrator.Strategy(body.Strategy) {
	case orchestrator.SVGAlgorithmic, orchestrator.SVGAIParser, orchestrator.SVGCombined:
	default:
		writeErr(w, apierr.New(apierr.MalformedSVG, "strategy must be one of svg_algorithmic, svg_ai_parser, svg_combined"))
		return
	}

	req := orchestrator.Request{
		Strategy:      orchestrator.Strategy(body.Strategy),
		SVGText:       body.SVGText,
		AreaThreshold: floatOr(body.AreaThreshold, defaultAreaThreshold),
	}
	s.runAndRespond(w, r, req)
}

func (s *Server) handleUploadImage(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	var body uploadImageRequest
	if err := decodeJSONBody(w, r, imageBodyLimit, &body); err != nil {
		return
	}

	imageBytes, err := decodeImageBase64(body.ImageBase64)
	if err != nil {
		writeErr(w, err)
		return
	}

	req := orchestrator.Request{
		Strategy:      orchestrator.VTracerOnly,
		ImageBytes:    imageBytes,
		AreaThreshold: floatOr(body.AreaThreshold, defaultAreaThreshold),
		DoorThreshold: floatOr(body.DoorThreshold, 0),
	}
	s.runAndRespond(w, r, req)
}

func (s *Server) runAndRespond(w http.ResponseWriter, r *http.Request, req orchestrator.Request) {
	result, err := s.orch.Detect(r.Context(), req)
	if err != nil {
		s.log.Warnf("detection failed: %v", err)
		writeErr(w, err)
		return
	}
	respondJSON(w, toDetectionResponse(result), http.StatusOK)
}

func requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// decodeJSONBody caps r.Body at limit bytes and decodes it as JSON into
// dest, writing the standard error envelope and returning a non-nil
// error if decoding fails for any reason.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, limit int64, dest any) error {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeErr(w, apierr.New(apierr.InputTooLarge, "request body exceeds the size limit"))
			return err
		}
		writeErr(w, apierr.Wrap(apierr.DecodeError, "request body is not valid JSON", err))
		return err
	}
	return nil
}

func writeErr(w http.ResponseWriter, err error) {
	var apiErr *apierr.Error
	if errors.As(err, &apiErr) {
		apierr.WriteJSON(w, apiErr)
		return
	}
	apierr.WriteJSON(w, apierr.Wrap(apierr.AllMethodsFailed, "unexpected error", err))
}

func respondJSON(w http.ResponseWriter, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
