package orchestrator

import (
	"context"
	"sync"

	"github.com/ironsheep/floorplan-detectd/internal/apierr"
	"github.com/ironsheep/floorplan-detectd/internal/components"
	"github.com/ironsheep/floorplan-detectd/internal/geometry"
	"github.com/ironsheep/floorplan-detectd/internal/imagenorm"
	"github.com/ironsheep/floorplan-detectd/internal/roomdetect"
	"github.com/ironsheep/floorplan-detectd/internal/vectorparse"
	"github.com/ironsheep/floorplan-detectd/internal/wallgraph"
	"github.com/ironsheep/floorplan-detectd/internal/wallmerge"
)

// llmTextExtractorConfidence is the fixed source confidence assigned to
// internal/llmwalls output for §4.9 merging. Unlike the vision
// extractor (§4.8), spec.md's text extractor contract (§4.7) never
// surfaces a confidence figure of its own, so the orchestrator assigns
// a conservative constant rather than treating it as fully trusted
// geometry the way a parsed SVG line is.
const llmTextExtractorConfidence = 0.85

// svgParseConfidence is the source confidence assigned to lines read
// directly off SVG markup: deterministic parsing, not a model
// inference, so it is fully trusted.
const svgParseConfidence = 1.0

func detectRoomsFromLines(lines []geometry.Line, opts Request, intersectionMode bool) (DetectionResult, error) {
	g, err := wallgraph.Build(lines, wallgraph.BuildOptions{
		DoorThreshold:    opts.DoorThreshold,
		IntersectionMode: intersectionMode,
	})
	if err != nil {
		return DetectionResult{}, err
	}

	result := roomdetect.DetectRooms(g, roomdetect.DetectOptions{
		AreaThreshold:      opts.AreaThreshold,
		VerifyMinimalCycle: intersectionMode,
		DetectionMethod:    string(opts.Strategy),
	})
	return DetectionResult{
		Rooms:    result.Rooms,
		Metadata: Metadata{GraphRooms: len(result.Rooms), Truncated: result.Truncated},
	}, nil
}

func runGraphOnly(req Request) (DetectionResult, error) {
	return detectRoomsFromLines(req.Lines, req, false)
}

func runSVGAlgorithmic(req Request) (DetectionResult, error) {
	lines, meta, err := vectorparse.ParseSVG(req.SVGText)
	if err != nil {
		return DetectionResult{}, err
	}
	result, err := detectRoomsFromLines(lines, req, true)
	if err != nil {
		return DetectionResult{}, err
	}
	result.Metadata.CurveHandling = meta.CurveHandling
	return result, nil
}

func runSVGAIParser(ctx context.Context, o *Orchestrator, req Request) (DetectionResult, error) {
	if o.LLM == nil {
		return DetectionResult{}, apierr.New(apierr.ExternalMalformedResponse, "svg_ai_parser requires a configured language-model client")
	}
	lines, _, err := o.LLM.ExtractWalls(ctx, req.SVGText)
	if err != nil {
		return DetectionResult{}, err
	}
	return detectRoomsFromLines(lines, req, false)
}

func runSVGCombined(ctx context.Context, o *Orchestrator, req Request) (DetectionResult, error) {
	var algoLines, aiLines []geometry.Line
	var algoErr, aiErr error

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		algoLines, _, algoErr = vectorparse.ParseSVG(req.SVGText)
	}()
	go func() {
		defer wg.Done()
		if o.LLM == nil {
			aiErr = apierr.New(apierr.ExternalMalformedResponse, "svg_combined's AI leg requires a configured language-model client")
			return
		}
		aiLines, _, aiErr = o.LLM.ExtractWalls(ctx, req.SVGText)
	}()
	wg.Wait()

	if algoErr != nil && aiErr != nil {
		return DetectionResult{}, apierr.New(apierr.AllMethodsFailed, "svg_algorithmic: "+algoErr.Error()+"; svg_ai_parser: "+aiErr.Error())
	}

	a := wallmerge.Source{Label: "svg_algorithmic", Lines: algoLines, Confidence: svgParseConfidence}
	if algoErr != nil {
		a.Confidence = 0
	}
	b := wallmerge.Source{Label: "svg_ai_parser", Lines: aiLines, Confidence: llmTextExtractorConfidence}
	if aiErr != nil {
		b.Confidence = 0
	}

	merged := wallmerge.Merge(a, b, wallmerge.Options{ConfidenceThreshold: req.ConfidenceThreshold})
	return detectRoomsFromLines(wallmerge.Lines(merged), req, true)
}

func runVTracerOnly(ctx context.Context, o *Orchestrator, req Request) (DetectionResult, error) {
	svgText, err := vectorizeImage(ctx, o, req)
	if err != nil {
		return DetectionResult{}, err
	}
	return runSVGAlgorithmic(withSVG(req, svgText))
}

func runVTracerAIParser(ctx context.Context, o *Orchestrator, req Request) (DetectionResult, error) {
	svgText, err := vectorizeImage(ctx, o, req)
	if err != nil {
		return DetectionResult{}, err
	}
	return runSVGAIParser(ctx, o, withSVG(req, svgText))
}

func vectorizeImage(ctx context.Context, o *Orchestrator, req Request) (string, error) {
	if o.Vectorizer == nil {
		return "", apierr.New(apierr.ExternalMalformedResponse, "this strategy requires a configured Vectorizer")
	}
	if _, err := imagenorm.Decode(req.ImageBytes); err != nil {
		return "", err
	}
	return o.Vectorizer.VectorizeToSVG(ctx, req.ImageBytes, req.ImageMIME)
}

func withSVG(req Request, svgText string) Request {
	req.SVGText = svgText
	return req
}

func runHybridVision(ctx context.Context, o *Orchestrator, req Request) (DetectionResult, error) {
	var vtracerLines []geometry.Line
	var vtracerErr error
	var visionLines []geometry.Line
	var visionConfidence float64
	var visionErr error

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		svgText, err := vectorizeImage(ctx, o, req)
		if err != nil {
			vtracerErr = err
			return
		}
		vtracerLines, _, vtracerErr = vectorparse.ParseSVG(svgText)
	}()
	go func() {
		defer wg.Done()
		if o.Vision == nil {
			visionErr = apierr.New(apierr.ExternalMalformedResponse, "hybrid_vision requires a configured vision-model client")
			return
		}
		result, err := o.Vision.ExtractWalls(ctx, req.ImageBytes, req.ImageMIME)
		if err != nil {
			visionErr = err
			return
		}
		visionLines = result.Walls
		visionConfidence = result.Confidence
	}()
	wg.Wait()

	if vtracerErr != nil && visionErr != nil {
		return DetectionResult{}, apierr.New(apierr.AllMethodsFailed, "vtracer: "+vtracerErr.Error()+"; vision: "+visionErr.Error())
	}

	a := wallmerge.Source{Label: "vtracer", Lines: vtracerLines, Confidence: svgParseConfidence}
	if vtracerErr != nil {
		a.Confidence = 0
	}
	b := wallmerge.Source{Label: "hybrid_vision", Lines: visionLines, Confidence: visionConfidence}
	if visionErr != nil {
		b.Confidence = 0
	}

	merged := wallmerge.Merge(a, b, wallmerge.Options{ConfidenceThreshold: req.ConfidenceThreshold})
	return detectRoomsFromLines(wallmerge.Lines(merged), req, true)
}

func runGPT5Only(ctx context.Context, o *Orchestrator, req Request) (DetectionResult, error) {
	if o.Vision == nil {
		return DetectionResult{}, apierr.New(apierr.ExternalMalformedResponse, "gpt5_only requires a configured vision-model client")
	}
	result, err := o.Vision.ExtractWalls(ctx, req.ImageBytes, req.ImageMIME)
	if err != nil {
		return DetectionResult{}, err
	}

	rooms := make([]roomdetect.Room, 0, len(result.Rooms))
	for id, r := range result.Rooms {
		if len(r.Polygon) < 3 {
			continue
		}
		area := geometry.PolygonArea(r.Polygon)
		if area < req.AreaThreshold {
			continue
		}
		rooms = append(rooms, roomdetect.Room{
			ID:              id,
			BoundingBox:     geometry.PolygonBoundingBox(r.Polygon),
			Area:            area,
			Polygon:         r.Polygon,
			NameHint:        r.NameHint,
			Confidence:      &result.Confidence,
			DetectionMethod: string(GPT5Only),
		})
	}
	return DetectionResult{Rooms: rooms, Metadata: Metadata{VisionRooms: len(rooms)}}, nil
}

func runConnectedComponents(req Request) (DetectionResult, error) {
	normalized, err := imagenorm.Normalize(req.ImageBytes, 0)
	if err != nil {
		return DetectionResult{}, err
	}
	level := imagenorm.OtsuLevel(normalized.Frame)
	rooms := components.DetectBFS(normalized.Frame, level)

	filtered := make([]roomdetect.Room, 0, len(rooms))
	for _, r := range rooms {
		if r.Area < req.AreaThreshold {
			continue
		}
		filtered = append(filtered, r)
	}
	return DetectionResult{Rooms: filtered, Metadata: Metadata{YOLORooms: len(filtered)}}, nil
}
