package router

import (
	"sync"

	"www.github.com/Wanderer0074348/ShadowRoute/src/models"
)

type intentCounters struct {
	total   uint64
	teacher uint64
	student uint64
}

// RoutingStatistics accumulates routing decisions across concurrent requests.
// Invariant: teacher + student == total, both globally and per intent; each
// Record applies all three increments under one lock so the invariant holds
// at every observable point.
type RoutingStatistics struct {
	mu       sync.Mutex
	total    uint64
	teacher  uint64
	student  uint64
	savedUSD float64
	byIntent map[models.Intent]*intentCounters
}

func NewRoutingStatistics() *RoutingStatistics {
	return &RoutingStatistics{
		byIntent: make(map[models.Intent]*intentCounters),
	}
}

// Record counts one routing decision.
func (s *RoutingStatistics) Record(intent models.Intent, target models.Target) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ic, ok := s.byIntent[intent]
	if !ok {
		ic = &intentCounters{}
		s.byIntent[intent] = ic
	}

	s.total++
	ic.total++
	if target == models.TargetStudent {
		s.student++
		ic.student++
	} else {
		s.teacher++
		ic.teacher++
	}
}

// AddSavings accumulates the estimated spend avoided by a student-served
// response.
func (s *RoutingStatistics) AddSavings(usd float64) {
	if usd <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.savedUSD += usd
}

// Snapshot returns current counters with percentages. With zero requests the
// percentages report 0 rather than dividing by zero.
func (s *RoutingStatistics) Snapshot() models.RoutingStatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := models.RoutingStatsSnapshot{
		TotalRequests:       s.total,
		TeacherRequests:     s.teacher,
		StudentRequests:     s.student,
		EstimatedSavingsUSD: s.savedUSD,
		ByIntent:            make(map[string]models.IntentStats, len(s.byIntent)),
	}

	if s.total > 0 {
		snap.TeacherPercent = float64(s.teacher) / float64(s.total) * 100
		snap.StudentPercent = float64(s.student) / float64(s.total) * 100
	}

	for intent, ic := range s.byIntent {
		snap.ByIntent[intent.String()] = models.IntentStats{
			Total:   ic.total,
			Teacher: ic.teacher,
			Student: ic.student,
		}
	}

	return snap
}

// Reset zeroes all counters. The traffic split table is unaffected.
func (s *RoutingStatistics) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.total = 0
	s.teacher = 0
	s.student = 0
	s.savedUSD = 0
	s.byIntent = make(map[models.Intent]*intentCounters)
}
