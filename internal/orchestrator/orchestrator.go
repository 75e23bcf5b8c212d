package orchestrator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ironsheep/floorplan-detectd/internal/apierr"
	"github.com/ironsheep/floorplan-detectd/internal/llmwalls"
	"github.com/ironsheep/floorplan-detectd/internal/visionwalls"
)

// Orchestrator dispatches Detect calls to the strategy named in the
// request, composing whichever sub-engines that strategy names. It is
// stateless per request: every field here is a shared, read-only
// collaborator (an HTTP-backed client or a Vectorizer implementation),
// never request-specific state.
type Orchestrator struct {
	LLM        *llmwalls.Client
	Vision     *visionwalls.Client
	Vectorizer Vectorizer
}

// New returns an Orchestrator wired to the given collaborators. Any of
// them may be nil; strategies that need a nil collaborator fail with a
// local, per-engine error rather than panicking.
func New(llm *llmwalls.Client, vision *visionwalls.Client, vectorizer Vectorizer) *Orchestrator {
	return &Orchestrator{LLM: llm, Vision: vision, Vectorizer: vectorizer}
}

// bestAvailableOrder is the priority list best_available tries in
// order, per spec.md §4.10.
var bestAvailableOrder = []Strategy{HybridVision, VTracerOnly, GraphOnly}

// ensembleCandidates is every strategy ensemble considers, restricted at
// run time to the ones the request's inputs actually satisfy.
var ensembleCandidates = []Strategy{
	GraphOnly, SVGAlgorithmic, SVGAIParser, SVGCombined,
	VTracerOnly, VTracerAIParser, HybridVision, GPT5Only, ConnectedComponents,
}

// Detect runs req.Strategy and returns its DetectionResult, stamping
// ExecutionTimeMs with the total wall-clock cost of the call — including,
// for best_available/ensemble, every sub-strategy attempt it runs.
func (o *Orchestrator) Detect(ctx context.Context, req Request) (DetectionResult, error) {
	start := time.Now()
	result, err := o.doDetect(ctx, req)
	result.ExecutionTimeMs = time.Since(start).Milliseconds()
	return result, err
}

// doDetect dispatches req.Strategy to its engine.
func (o *Orchestrator) doDetect(ctx context.Context, req Request) (DetectionResult, error) {
	switch req.Strategy {
	case GraphOnly:
		return o.runTimed(req.Strategy, func() (DetectionResult, error) { return runGraphOnly(req) })
	case SVGAlgorithmic:
		return o.runTimed(req.Strategy, func() (DetectionResult, error) { return runSVGAlgorithmic(req) })
	case SVGAIParser:
		return o.runTimed(req.Strategy, func() (DetectionResult, error) { return runSVGAIParser(ctx, o, req) })
	case SVGCombined:
		return o.runTimed(req.Strategy, func() (DetectionResult, error) { return runSVGCombined(ctx, o, req) })
	case VTracerOnly:
		return o.runTimed(req.Strategy, func() (DetectionResult, error) { return runVTracerOnly(ctx, o, req) })
	case VTracerAIParser:
		return o.runTimed(req.Strategy, func() (DetectionResult, error) { return runVTracerAIParser(ctx, o, req) })
	case HybridVision:
		return o.runTimed(req.Strategy, func() (DetectionResult, error) { return runHybridVision(ctx, o, req) })
	case GPT5Only:
		return o.runTimed(req.Strategy, func() (DetectionResult, error) { return runGPT5Only(ctx, o, req) })
	case ConnectedComponents:
		return o.runTimed(req.Strategy, func() (DetectionResult, error) { return runConnectedComponents(req) })
	case BestAvailable:
		return o.detectBestAvailable(ctx, req)
	case Ensemble:
		return o.detectEnsemble(ctx, req)
	default:
		return DetectionResult{}, apierr.New(apierr.AllMethodsFailed, fmt.Sprintf("unknown strategy %q", req.Strategy))
	}
}

// runTimed runs fn, recording its outcome as a single-entry timing list
// in the returned result's metadata.
func (o *Orchestrator) runTimed(strategy Strategy, fn func() (DetectionResult, error)) (DetectionResult, error) {
	start := time.Now()
	result, err := fn()
	timing := MethodTiming{Method: string(strategy), Duration: time.Since(start)}
	if err != nil {
		timing.Err = err.Error()
		if ae, ok := err.(*apierr.Error); ok && ae.Kind == apierr.ExternalTimeout {
			timing.TimedOut = true
		}
	}
	result.MethodUsed = strategy
	result.Metadata.PerMethodTimings = append([]MethodTiming{timing}, result.Metadata.PerMethodTimings...)
	return result, err
}

// detectBestAvailable tries bestAvailableOrder in turn, returning the
// first strategy whose result has at least one room.
func (o *Orchestrator) detectBestAvailable(ctx context.Context, req Request) (DetectionResult, error) {
	var timings []MethodTiming
	var failures []string

	for _, strategy := range bestAvailableOrder {
		if !strategyApplies(strategy, req) {
			continue
		}
		attempt := req
		attempt.Strategy = strategy

		start := time.Now()
		result, err := o.Detect(ctx, attempt)
		duration := time.Since(start)

		timing := MethodTiming{Method: string(strategy), Duration: duration}
		if err != nil {
			timing.Err = err.Error()
			failures = append(failures, fmt.Sprintf("%s: %v", strategy, err))
		}
		timings = append(timings, timing)

		if err == nil && len(result.Rooms) > 0 {
			result.Metadata.PerMethodTimings = append(timings, result.Metadata.PerMethodTimings...)
			return result, nil
		}
	}

	if len(failures) == 0 {
		failures = append(failures, "no applicable strategy produced any rooms")
	}
	return DetectionResult{Metadata: Metadata{PerMethodTimings: timings}},
		apierr.New(apierr.AllMethodsFailed, "best_available: "+joinSemicolon(failures))
}

// detectEnsemble runs every applicable strategy concurrently and picks
// the winner by room count, then mean confidence, then latency.
func (o *Orchestrator) detectEnsemble(ctx context.Context, req Request) (DetectionResult, error) {
	type attempt struct {
		strategy Strategy
		result   DetectionResult
		err      error
		duration time.Duration
	}

	var applicable []Strategy
	for _, s := range ensembleCandidates {
		if strategyApplies(s, req) {
			applicable = append(applicable, s)
		}
	}

	attempts := make([]attempt, len(applicable))
	var wg sync.WaitGroup
	for i, strategy := range applicable {
		wg.Add(1)
		go func(i int, strategy Strategy) {
			defer wg.Done()
			sub := req
			sub.Strategy = strategy
			start := time.Now()
			result, err := o.Detect(ctx, sub)
			attempts[i] = attempt{strategy: strategy, result: result, err: err, duration: time.Since(start)}
		}(i, strategy)
	}
	wg.Wait()

	var timings []MethodTiming
	var failures []string
	var best *attempt
	for i := range attempts {
		a := &attempts[i]
		timing := MethodTiming{Method: string(a.strategy), Duration: a.duration}
		if a.err != nil {
			timing.Err = a.err.Error()
			failures = append(failures, fmt.Sprintf("%s: %v", a.strategy, a.err))
			timings = append(timings, timing)
			continue
		}
		timings = append(timings, timing)

		if best == nil || betterEnsembleCandidate(*a, *best) {
			best = a
		}
	}

	if best == nil {
		return DetectionResult{Metadata: Metadata{PerMethodTimings: timings}},
			apierr.New(apierr.AllMethodsFailed, "ensemble: "+joinSemicolon(failures))
	}

	result := best.result
	result.Metadata.PerMethodTimings = timings
	return result, nil
}

// betterEnsembleCandidate reports whether candidate beats current by
// spec.md's ensemble tie-break: room count, then mean confidence, then
// lowest latency.
func betterEnsembleCandidate(candidate, current struct {
	strategy Strategy
	result   DetectionResult
	err      error
	duration time.Duration
}) bool {
	if len(candidate.result.Rooms) != len(current.result.Rooms) {
		return len(candidate.result.Rooms) > len(current.result.Rooms)
	}
	candidateConfidence := meanConfidence(candidate.result)
	currentConfidence := meanConfidence(current.result)
	if candidateConfidence != currentConfidence {
		return candidateConfidence > currentConfidence
	}
	return candidate.duration < current.duration
}

func meanConfidence(result DetectionResult) float64 {
	var sum float64
	var count int
	for _, r := range result.Rooms {
		if r.Confidence != nil {
			sum += *r.Confidence
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// strategyApplies reports whether req carries the inputs strategy
// needs.
func strategyApplies(strategy Strategy, req Request) bool {
	switch strategy {
	case GraphOnly:
		return len(req.Lines) > 0
	case SVGAlgorithmic, SVGAIParser, SVGCombined:
		return req.SVGText != ""
	case VTracerOnly, VTracerAIParser, HybridVision, GPT5Only, ConnectedComponents:
		return len(req.ImageBytes) > 0
	default:
		return false
	}
}

func joinSemicolon(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += "; "
		}
		out += p
	}
	return out
}
