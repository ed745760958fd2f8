package shadow

import (
	"context"
	"log"
	"strconv"
	"sync"
	"time"

	"www.github.com/Wanderer0074348/ShadowRoute/src/eval"
	"www.github.com/Wanderer0074348/ShadowRoute/src/models"
	"www.github.com/Wanderer0074348/ShadowRoute/src/readiness"
)

const pairWorkTimeout = 30 * time.Second

// PairQueue decouples pair logging from the request path. The orchestrator
// enqueues without blocking; a background worker grades each pair, persists
// it, and feeds the similarity score to the readiness metrics. A full queue
// drops the pair with a warning rather than slowing a customer response.
type PairQueue struct {
	pairs      chan *models.TutorPair
	store      models.PairStore
	similarity *eval.SimilarityEvaluator
	quality    *eval.QualityEvaluator
	metrics    *readiness.MetricsOracle

	wg       sync.WaitGroup
	stopOnce sync.Once
}

func NewPairQueue(size int, store models.PairStore, similarity *eval.SimilarityEvaluator, metrics *readiness.MetricsOracle) *PairQueue {
	if size <= 0 {
		size = 256
	}
	return &PairQueue{
		pairs:      make(chan *models.TutorPair, size),
		store:      store,
		similarity: similarity,
		quality:    eval.NewQualityEvaluator(),
		metrics:    metrics,
	}
}

// Start launches the background worker.
func (q *PairQueue) Start() {
	q.wg.Add(1)
	go q.run()
}

// Enqueue hands a pair to the worker without blocking. Returns false if the
// queue is full and the pair was dropped.
func (q *PairQueue) Enqueue(pair *models.TutorPair) bool {
	select {
	case q.pairs <- pair:
		return true
	default:
		log.Printf("⚠️  pair queue full, dropping tutor pair for intent %s", pair.Intent)
		return false
	}
}

// Close drains the queue and stops the worker.
func (q *PairQueue) Close() {
	q.stopOnce.Do(func() {
		close(q.pairs)
	})
	q.wg.Wait()
}

func (q *PairQueue) run() {
	defer q.wg.Done()
	for pair := range q.pairs {
		q.processPair(pair)
	}
}

func (q *PairQueue) processPair(pair *models.TutorPair) {
	ctx, cancel := context.WithTimeout(context.Background(), pairWorkTimeout)
	defer cancel()

	// Best-effort grading; a failed embedding call leaves the score absent
	if q.similarity != nil {
		score := q.similarity.Score(ctx, pair.TeacherResponse, pair.StudentResponse)
		pair.SimilarityScore = &score
		if q.metrics != nil {
			q.metrics.Record(pair.Intent, score)
		}
	}

	// Heuristic quality grade rides along in the pair metadata, so the
	// offline fine-tuning pipeline can filter weak student responses
	// without re-scoring.
	if q.quality != nil {
		grade := q.quality.Evaluate(pair.StudentResponse, pair.Prompt)
		if pair.Metadata == nil {
			pair.Metadata = make(map[string]string)
		}
		pair.Metadata["student_quality"] = strconv.FormatFloat(grade.OverallQuality, 'f', 3, 64)
		pair.Metadata["student_quality_acceptable"] = strconv.FormatBool(grade.IsAcceptable)
	}

	if q.store != nil {
		if err := q.store.LogPair(ctx, pair); err != nil {
			log.Printf("⚠️  failed to persist tutor pair %s: %v", pair.ID, err)
		}
	}
}
