package eval

import (
	"strings"

	"www.github.com/Wanderer0074348/ShadowRoute/src/models"
)

const acceptableQualityThreshold = 0.6

// QualityEvaluator scores a response against its prompt with no I/O at all.
// Intentionally simplistic: it is the zero-dependency fallback signal next to
// the embedding-based similarity score.
type QualityEvaluator struct{}

func NewQualityEvaluator() *QualityEvaluator {
	return &QualityEvaluator{}
}

// Evaluate is a pure function: identical inputs always yield an identical score.
//
//   - length: responses under 20 words are penalized linearly
//   - coherence: fewer than 3 sentences penalized linearly
//   - relevance: share of prompt words echoed in the response
func (e *QualityEvaluator) Evaluate(response, prompt string) models.QualityScore {
	words := strings.Fields(response)

	score := models.QualityScore{
		WordCount:     len(words),
		CharCount:     len(response),
		SentenceCount: countSentences(response),
	}

	score.LengthScore = float64(score.WordCount) / 20.0
	if score.LengthScore > 1.0 {
		score.LengthScore = 1.0
	}

	score.CoherenceScore = float64(score.SentenceCount) / 3.0
	if score.CoherenceScore > 1.0 {
		score.CoherenceScore = 1.0
	}

	score.RelevanceScore = relevance(response, prompt)

	score.OverallQuality = (score.LengthScore + score.CoherenceScore + score.RelevanceScore) / 3.0
	score.IsAcceptable = score.OverallQuality >= acceptableQualityThreshold

	return score
}

// relevance is the fraction of distinct prompt words that appear in the
// response, case-insensitive. A prompt with no words defaults to 0.5.
func relevance(response, prompt string) float64 {
	promptWords := strings.Fields(strings.ToLower(prompt))
	if len(promptWords) == 0 {
		return 0.5
	}

	responseSet := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(response)) {
		responseSet[w] = true
	}

	promptSet := make(map[string]bool)
	overlap := 0
	for _, w := range promptWords {
		if promptSet[w] {
			continue
		}
		promptSet[w] = true
		if responseSet[w] {
			overlap++
		}
	}

	return float64(overlap) / float64(len(promptSet))
}

func countSentences(text string) int {
	count := 0
	inSentence := false
	for _, r := range text {
		switch r {
		case '.', '!', '?':
			if inSentence {
				count++
				inSentence = false
			}
		case ' ', '\t', '\n', '\r':
			// whitespace does not start a sentence
		default:
			inSentence = true
		}
	}
	if inSentence {
		count++
	}
	return count
}
