package readiness

import (
	"context"
	"log"

	"www.github.com/Wanderer0074348/ShadowRoute/src/models"
)

// Gate wraps a ReadinessOracle and fails closed: any oracle error reads as
// "not ready" for that one request. No retries; the next request re-queries.
type Gate struct {
	oracle models.ReadinessOracle
}

func NewGate(oracle models.ReadinessOracle) *Gate {
	return &Gate{oracle: oracle}
}

// IsReady reports whether the intent may carry student traffic at the given
// confidence. Never returns an error to the router.
func (g *Gate) IsReady(ctx context.Context, intent models.Intent, confidence float64) bool {
	if g.oracle == nil {
		return false
	}

	ready, err := g.oracle.ShouldUseStudentModel(ctx, intent, confidence)
	if err != nil {
		log.Printf("⚠️  readiness check failed for intent %s, routing to teacher: %v", intent, err)
		return false
	}
	return ready
}
