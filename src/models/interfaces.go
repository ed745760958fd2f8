package models

import (
	"context"
)

// TeacherInferencer is the hosted large-model generation client.
type TeacherInferencer interface {
	Generate(ctx context.Context, req *GenerationRequest) (string, error)
}

// StudentInferencer is the locally-hosted small-model generation client.
type StudentInferencer interface {
	Generate(ctx context.Context, req *GenerationRequest) (string, error)
	Close() error
}

// ConfidencePredictor estimates how confident we are that the student model
// can handle a message. Scores are in [0,1].
type ConfidencePredictor interface {
	PredictConfidence(ctx context.Context, message string, intent Intent, chatContext string) (float64, error)
}

// ReadinessOracle answers whether an intent has accumulated enough evidence
// of student quality to receive live traffic. Failures are treated as
// "not ready" by the caller.
type ReadinessOracle interface {
	ShouldUseStudentModel(ctx context.Context, intent Intent, confidence float64) (bool, error)
}

// EmbeddingProvider turns texts into embedding vectors in a single batched call.
type EmbeddingProvider interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// PairStore persists tutor pairs for the offline training pipeline.
type PairStore interface {
	LogPair(ctx context.Context, pair *TutorPair) error
	CountPairs(ctx context.Context, intent Intent) (int64, error)
	RecentPairs(ctx context.Context, intent Intent, n int64) ([]*TutorPair, error)
	Close() error
}

// RandSource supplies the uniform draws behind percentage traffic splits.
// Injected so tests can pin a seed.
type RandSource interface {
	Float64() float64
}
