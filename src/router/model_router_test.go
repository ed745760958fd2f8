package router

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"www.github.com/Wanderer0074348/ShadowRoute/src/models"
)

type stubGate struct {
	ready bool
}

func (g stubGate) IsReady(_ context.Context, _ models.Intent, _ float64) bool {
	return g.ready
}

type panicGate struct{}

func (panicGate) IsReady(_ context.Context, _ models.Intent, _ float64) bool {
	panic("oracle exploded")
}

type fixedRand struct {
	value float64
}

func (r fixedRand) Float64() float64 {
	return r.value
}

type seededRand struct {
	r *rand.Rand
}

func (s *seededRand) Float64() float64 {
	return s.r.Float64()
}

func newTestRouter(mode models.Mode, ready bool, rng models.RandSource) *ModelRouter {
	return NewModelRouter(mode, stubGate{ready: ready}, NewTrafficSplitTable(), NewRoutingStatistics(), rng)
}

func TestModelRouter_ShadowModeAlwaysTeacher(t *testing.T) {
	r := newTestRouter(models.ModeShadow, true, fixedRand{0.0})
	require.NoError(t, r.Splits().SetSplit(models.IntentBooking, 100))

	// Even with split=100, readiness=true, and a draw that would pick the
	// student, shadow mode serves the teacher
	for i := 0; i < 20; i++ {
		decision := r.Route(context.Background(), models.IntentBooking, "book a table", 0.99, "")
		assert.Equal(t, models.TargetTeacher, decision.Target)
	}
}

func TestModelRouter_ZeroSplitGatesBeforeReadiness(t *testing.T) {
	r := newTestRouter(models.ModeLive, true, fixedRand{0.0})

	// intent=faq, split=0, readiness=true, confidence=0.95 -> teacher
	decision := r.Route(context.Background(), models.IntentFAQ, "what are your hours?", 0.95, "")
	assert.Equal(t, models.TargetTeacher, decision.Target)
	assert.Equal(t, 0, decision.SplitPercent)
}

func TestModelRouter_NotReadyRoutesTeacher(t *testing.T) {
	r := newTestRouter(models.ModeLive, false, fixedRand{0.0})
	require.NoError(t, r.Splits().SetSplit(models.IntentFAQ, 100))

	decision := r.Route(context.Background(), models.IntentFAQ, "hours?", 0.95, "")
	assert.Equal(t, models.TargetTeacher, decision.Target)
}

func TestModelRouter_SplitDrawPicksStudent(t *testing.T) {
	r := newTestRouter(models.ModeLive, true, fixedRand{0.30})
	require.NoError(t, r.Splits().SetSplit(models.IntentBooking, 50))

	// draw = 30 < split = 50 -> student
	decision := r.Route(context.Background(), models.IntentBooking, "book a table", 0.9, "")
	assert.Equal(t, models.TargetStudent, decision.Target)

	// draw = 70 >= split = 50 -> teacher
	r = newTestRouter(models.ModeLive, true, fixedRand{0.70})
	require.NoError(t, r.Splits().SetSplit(models.IntentBooking, 50))
	decision = r.Route(context.Background(), models.IntentBooking, "book a table", 0.9, "")
	assert.Equal(t, models.TargetTeacher, decision.Target)
}

func TestModelRouter_UnconfiguredIntentNeverStudent(t *testing.T) {
	r := newTestRouter(models.ModeLive, true, fixedRand{0.0})

	for i := 0; i < 100; i++ {
		decision := r.Route(context.Background(), models.IntentComplaint, "this is unacceptable", 1.0, "")
		assert.Equal(t, models.TargetTeacher, decision.Target)
	}
}

func TestModelRouter_SplitFractionOverManyDraws(t *testing.T) {
	rng := &seededRand{r: rand.New(rand.NewPCG(42, 0))}
	r := newTestRouter(models.ModeLive, true, rng)
	require.NoError(t, r.Splits().SetSplit(models.IntentBooking, 50))

	const draws = 10000
	students := 0
	for i := 0; i < draws; i++ {
		decision := r.Route(context.Background(), models.IntentBooking, "book", 0.9, "")
		if decision.Target == models.TargetStudent {
			students++
		}
	}

	fraction := float64(students) / float64(draws)
	assert.Greater(t, fraction, 0.45, "student fraction over %d draws", draws)
	assert.Less(t, fraction, 0.55, "student fraction over %d draws", draws)
}

func TestModelRouter_GatePanicFailsClosed(t *testing.T) {
	splits := NewTrafficSplitTable()
	require.NoError(t, splits.SetSplit(models.IntentFAQ, 100))
	r := NewModelRouter(models.ModeLive, panicGate{}, splits, NewRoutingStatistics(), fixedRand{0.0})

	assert.NotPanics(t, func() {
		decision := r.Route(context.Background(), models.IntentFAQ, "hours?", 0.9, "")
		assert.Equal(t, models.TargetTeacher, decision.Target)
	})
}

func TestModelRouter_RecordsEveryDecision(t *testing.T) {
	r := newTestRouter(models.ModeLive, true, fixedRand{0.10})
	require.NoError(t, r.Splits().SetSplit(models.IntentMenu, 50))

	const n = 25
	for i := 0; i < n; i++ {
		r.Route(context.Background(), models.IntentMenu, "what's on the menu?", 0.8, "")
	}

	snap := r.Stats().Snapshot()
	assert.Equal(t, uint64(n), snap.TotalRequests)
	assert.Equal(t, snap.TotalRequests, snap.TeacherRequests+snap.StudentRequests)
	assert.Equal(t, uint64(n), snap.ByIntent["menu"].Total)
}

func TestModelRouter_ConfidenceClamped(t *testing.T) {
	r := newTestRouter(models.ModeShadow, true, fixedRand{0.0})

	decision := r.Route(context.Background(), models.IntentFAQ, "hi", 3.5, "")
	assert.Equal(t, 1.0, decision.Confidence)

	decision = r.Route(context.Background(), models.IntentFAQ, "hi", -0.5, "")
	assert.Equal(t, 0.0, decision.Confidence)
}

func TestModelRouter_SetMode(t *testing.T) {
	r := newTestRouter(models.ModeShadow, true, fixedRand{0.0})
	require.NoError(t, r.Splits().SetSplit(models.IntentFAQ, 100))

	decision := r.Route(context.Background(), models.IntentFAQ, "hours?", 0.9, "")
	assert.Equal(t, models.TargetTeacher, decision.Target)

	r.SetMode(models.ModeLive)
	decision = r.Route(context.Background(), models.IntentFAQ, "hours?", 0.9, "")
	assert.Equal(t, models.TargetStudent, decision.Target)
}
