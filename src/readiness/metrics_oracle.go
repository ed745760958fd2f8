package readiness

import (
	"context"
	"sync"

	"www.github.com/Wanderer0074348/ShadowRoute/src/models"
)

// intentWindow holds a rolling window of similarity scores for one intent.
type intentWindow struct {
	scores []float64
	next   int
	filled bool
	count  int64
}

func (w *intentWindow) record(score float64, size int) {
	if len(w.scores) < size && !w.filled {
		w.scores = append(w.scores, score)
		if len(w.scores) == size {
			w.filled = true
		}
	} else {
		w.scores[w.next] = score
		w.next = (w.next + 1) % len(w.scores)
	}
	w.count++
}

func (w *intentWindow) average() float64 {
	if len(w.scores) == 0 {
		return 0
	}
	var sum float64
	for _, s := range w.scores {
		sum += s
	}
	return sum / float64(len(w.scores))
}

// MetricsOracle is the default readiness oracle: an intent is ready once
// enough graded pairs have accumulated and their rolling average similarity
// clears the threshold, and the per-request confidence clears its own floor.
// Unknown intents are never ready.
type MetricsOracle struct {
	mu      sync.RWMutex
	windows map[models.Intent]*intentWindow

	minSamples    int64
	minSimilarity float64
	minConfidence float64
	windowSize    int
}

func NewMetricsOracle(minSamples int, minSimilarity, minConfidence float64, windowSize int) *MetricsOracle {
	if windowSize <= 0 {
		windowSize = 200
	}
	return &MetricsOracle{
		windows:       make(map[models.Intent]*intentWindow),
		minSamples:    int64(minSamples),
		minSimilarity: minSimilarity,
		minConfidence: minConfidence,
		windowSize:    windowSize,
	}
}

// Record feeds one observed teacher/student similarity score into the
// intent's rolling window. Called by the pair worker after grading.
func (o *MetricsOracle) Record(intent models.Intent, similarity float64) {
	o.mu.Lock()
	defer o.mu.Unlock()

	w, ok := o.windows[intent]
	if !ok {
		w = &intentWindow{}
		o.windows[intent] = w
	}
	w.record(similarity, o.windowSize)
}

// ShouldUseStudentModel implements models.ReadinessOracle.
func (o *MetricsOracle) ShouldUseStudentModel(_ context.Context, intent models.Intent, confidence float64) (bool, error) {
	if intent == models.IntentUnknown {
		return false, nil
	}
	if confidence < o.minConfidence {
		return false, nil
	}

	o.mu.RLock()
	defer o.mu.RUnlock()

	w, ok := o.windows[intent]
	if !ok || w.count < o.minSamples {
		return false, nil
	}
	return w.average() >= o.minSimilarity, nil
}
