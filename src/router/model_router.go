package router

import (
	"context"
	"log"
	"math/rand/v2"
	"sync"
	"time"

	"www.github.com/Wanderer0074348/ShadowRoute/src/models"
)

// Gate is the readiness check the router consults before letting an intent
// near the student model. Implemented by readiness.Gate.
type Gate interface {
	IsReady(ctx context.Context, intent models.Intent, confidence float64) bool
}

// ModelRouter decides, per message, whether the teacher or the student model
// serves. The rules run in strict order and the teacher is the fallback at
// every step, so a broken readiness signal or an empty split table can only
// ever push traffic back to the safe default. Route never returns an error.
type ModelRouter struct {
	mu     sync.RWMutex
	mode   models.Mode
	gate   Gate
	splits *TrafficSplitTable
	stats  *RoutingStatistics
	rng    models.RandSource
}

func NewModelRouter(mode models.Mode, gate Gate, splits *TrafficSplitTable, stats *RoutingStatistics, rng models.RandSource) *ModelRouter {
	if rng == nil {
		rng = defaultRand{}
	}
	return &ModelRouter{
		mode:   mode,
		gate:   gate,
		splits: splits,
		stats:  stats,
		rng:    rng,
	}
}

// Route evaluates the decision rules for one message:
//
//  1. mode "shadow" or "disabled" -> teacher (observe-only)
//  2. readiness gate says not ready -> teacher
//  3. split is 0% for the intent -> teacher
//  4. uniform draw in [0,100); below the split -> student, else teacher
//
// Every decision is counted before returning.
func (r *ModelRouter) Route(ctx context.Context, intent models.Intent, message string, confidence float64, chatContext string) *models.RoutingDecision {
	confidence = clamp01(confidence)
	split := r.splits.Split(intent)

	decision := &models.RoutingDecision{
		Intent:       intent,
		Target:       models.TargetTeacher,
		Confidence:   confidence,
		SplitPercent: split,
		Timestamp:    time.Now(),
	}

	switch {
	case r.Mode() != models.ModeLive:
		decision.Reason = "shadow mode: teacher serves all traffic"
	case !r.gateReady(ctx, intent, confidence):
		decision.Reason = "intent not ready for student traffic"
	case split == 0:
		decision.Reason = "traffic split is 0%"
	default:
		if r.draw() < float64(split) {
			decision.Target = models.TargetStudent
			decision.Reason = "within student traffic split"
		} else {
			decision.Reason = "outside student traffic split"
		}
	}

	r.stats.Record(intent, decision.Target)
	return decision
}

// gateReady shields the router from a failing gate implementation. A panic in
// the readiness path must never break response generation.
func (r *ModelRouter) gateReady(ctx context.Context, intent models.Intent, confidence float64) bool {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("⚠️  readiness gate panicked for intent %s: %v", intent, rec)
		}
	}()
	if r.gate == nil {
		return false
	}
	return r.gate.IsReady(ctx, intent, confidence)
}

// Mode returns the current shadow-learning mode.
func (r *ModelRouter) Mode() models.Mode {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.mode
}

// SetMode switches the shadow-learning mode at runtime.
func (r *ModelRouter) SetMode(mode models.Mode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mode = mode
}

// Splits exposes the traffic split table for the admin surface.
func (r *ModelRouter) Splits() *TrafficSplitTable {
	return r.splits
}

// Stats exposes the statistics accumulator for the admin surface.
func (r *ModelRouter) Stats() *RoutingStatistics {
	return r.stats
}

func (r *ModelRouter) draw() float64 {
	return r.rng.Float64() * 100
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// defaultRand draws from the shared math/rand/v2 source, which is safe for
// concurrent use.
type defaultRand struct{}

func (defaultRand) Float64() float64 {
	return rand.Float64()
}
