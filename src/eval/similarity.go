package eval

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/sashabaranov/go-openai"

	"www.github.com/Wanderer0074348/ShadowRoute/src/models"
)

// SimilarityEvaluator grades a student response against the teacher's by
// embedding both texts in one batched call and taking their cosine
// similarity. The score is an offline quality signal only: any provider
// failure degrades to 0.0, never to an error on the request path.
type SimilarityEvaluator struct {
	embedder models.EmbeddingProvider
}

func NewSimilarityEvaluator(embedder models.EmbeddingProvider) *SimilarityEvaluator {
	return &SimilarityEvaluator{embedder: embedder}
}

// Score returns the cosine similarity of the two texts in [0,1].
func (e *SimilarityEvaluator) Score(ctx context.Context, textA, textB string) float64 {
	if textA == "" || textB == "" {
		return 0.0
	}
	if e.embedder == nil {
		return 0.0
	}

	vectors, err := e.embedder.Embed(ctx, []string{textA, textB})
	if err != nil {
		log.Printf("⚠️  similarity scoring failed, defaulting to 0.0: %v", err)
		return 0.0
	}
	if len(vectors) != 2 {
		log.Printf("⚠️  embedding provider returned %d vectors, expected 2", len(vectors))
		return 0.0
	}

	sim := cosineSimilarity(vectors[0], vectors[1])
	if sim < 0 {
		sim = 0
	}
	if sim > 1 {
		sim = 1
	}
	return sim
}

// cosineSimilarity calculates the cosine similarity between two vectors
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0.0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}

// OpenAIEmbedder implements models.EmbeddingProvider on the OpenAI
// embeddings endpoint.
type OpenAIEmbedder struct {
	client *openai.Client
	model  openai.EmbeddingModel
}

func NewOpenAIEmbedder(apiKey, model string) *OpenAIEmbedder {
	if model == "" {
		model = string(openai.AdaEmbeddingV2)
	}
	return &OpenAIEmbedder{
		client: openai.NewClient(apiKey),
		model:  openai.EmbeddingModel(model),
	}
}

func (e *OpenAIEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, errors.New("no texts to embed")
	}
	for _, t := range texts {
		if t == "" {
			return nil, errors.New("text cannot be empty")
		}
	}

	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: texts,
		Model: e.model,
	})
	if err != nil {
		return nil, fmt.Errorf("openai embedding request failed: %w", err)
	}

	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Data))
	}

	vectors := make([][]float32, len(resp.Data))
	for i, d := range resp.Data {
		vectors[i] = d.Embedding
	}
	return vectors, nil
}
