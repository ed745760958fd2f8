package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQualityEvaluator_Deterministic(t *testing.T) {
	e := NewQualityEvaluator()

	response := "We open at 5pm on weekdays. Weekend brunch starts at 10am. Walk-ins are welcome."
	prompt := "When do you open on weekdays?"

	first := e.Evaluate(response, prompt)
	second := e.Evaluate(response, prompt)
	assert.Equal(t, first, second)
}

func TestQualityEvaluator_ShortResponsePenalized(t *testing.T) {
	e := NewQualityEvaluator()

	score := e.Evaluate("Yes.", "Do you take reservations for large parties?")
	assert.Equal(t, 1, score.WordCount)
	assert.InDelta(t, 1.0/20.0, score.LengthScore, 0.0001)
	assert.False(t, score.IsAcceptable)
}

func TestQualityEvaluator_LongResponseFullLengthScore(t *testing.T) {
	e := NewQualityEvaluator()

	response := "We take reservations every day of the week. Parties of eight or more should call ahead. " +
		"Our private dining room seats up to thirty guests. A deposit is required for large events."
	score := e.Evaluate(response, "Do you take reservations?")

	assert.GreaterOrEqual(t, score.WordCount, 20)
	assert.Equal(t, 1.0, score.LengthScore)
	assert.Equal(t, 4, score.SentenceCount)
	assert.Equal(t, 1.0, score.CoherenceScore)
}

func TestQualityEvaluator_SentenceCounting(t *testing.T) {
	e := NewQualityEvaluator()

	score := e.Evaluate("One sentence here. Another one! A third?", "prompt")
	assert.Equal(t, 3, score.SentenceCount)

	score = e.Evaluate("No terminal punctuation at all", "prompt")
	assert.Equal(t, 1, score.SentenceCount)

	score = e.Evaluate("", "prompt")
	assert.Equal(t, 0, score.SentenceCount)
}

func TestQualityEvaluator_Relevance(t *testing.T) {
	e := NewQualityEvaluator()

	// Every prompt word echoed in the response
	score := e.Evaluate("the menu has pasta", "the menu")
	assert.Equal(t, 1.0, score.RelevanceScore)

	// No overlap at all
	score = e.Evaluate("completely unrelated words", "vegan options available")
	assert.Equal(t, 0.0, score.RelevanceScore)

	// Case-insensitive matching
	score = e.Evaluate("The MENU has pasta", "the menu")
	assert.Equal(t, 1.0, score.RelevanceScore)
}

func TestQualityEvaluator_EmptyPromptDefaultsRelevance(t *testing.T) {
	e := NewQualityEvaluator()

	score := e.Evaluate("some response text", "")
	assert.Equal(t, 0.5, score.RelevanceScore)

	score = e.Evaluate("some response text", "   ")
	assert.Equal(t, 0.5, score.RelevanceScore)
}

func TestQualityEvaluator_OverallIsMean(t *testing.T) {
	e := NewQualityEvaluator()

	response := "We open at five. Dinner service runs until ten. The bar stays open later."
	prompt := "When do you open?"
	score := e.Evaluate(response, prompt)

	expected := (score.LengthScore + score.CoherenceScore + score.RelevanceScore) / 3.0
	assert.InDelta(t, expected, score.OverallQuality, 0.0001)
	assert.Equal(t, score.OverallQuality >= 0.6, score.IsAcceptable)
}
