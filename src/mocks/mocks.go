package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"www.github.com/Wanderer0074348/ShadowRoute/src/models"
)

// MockTeacher implements models.TeacherInferencer
type MockTeacher struct {
	mock.Mock
}

func (m *MockTeacher) Generate(ctx context.Context, req *models.GenerationRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

// MockStudent implements models.StudentInferencer
type MockStudent struct {
	mock.Mock
}

func (m *MockStudent) Generate(ctx context.Context, req *models.GenerationRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockStudent) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockPredictor implements models.ConfidencePredictor
type MockPredictor struct {
	mock.Mock
}

func (m *MockPredictor) PredictConfidence(ctx context.Context, message string, intent models.Intent, chatContext string) (float64, error) {
	args := m.Called(ctx, message, intent, chatContext)
	return args.Get(0).(float64), args.Error(1)
}

// MockOracle implements models.ReadinessOracle
type MockOracle struct {
	mock.Mock
}

func (m *MockOracle) ShouldUseStudentModel(ctx context.Context, intent models.Intent, confidence float64) (bool, error) {
	args := m.Called(ctx, intent, confidence)
	return args.Bool(0), args.Error(1)
}

// MockEmbedder implements models.EmbeddingProvider
type MockEmbedder struct {
	mock.Mock
}

func (m *MockEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	args := m.Called(ctx, texts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([][]float32), args.Error(1)
}

// MockPairStore implements models.PairStore
type MockPairStore struct {
	mock.Mock
}

func (m *MockPairStore) LogPair(ctx context.Context, pair *models.TutorPair) error {
	args := m.Called(ctx, pair)
	return args.Error(0)
}

func (m *MockPairStore) CountPairs(ctx context.Context, intent models.Intent) (int64, error) {
	args := m.Called(ctx, intent)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPairStore) RecentPairs(ctx context.Context, intent models.Intent, n int64) ([]*models.TutorPair, error) {
	args := m.Called(ctx, intent, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.TutorPair), args.Error(1)
}

func (m *MockPairStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
