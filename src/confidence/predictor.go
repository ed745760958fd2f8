package confidence

import (
	"context"
	"strings"
	"unicode"

	"www.github.com/Wanderer0074348/ShadowRoute/src/models"
)

// HeuristicPredictor estimates student-model confidence from surface features
// of the message. Simple, short, on-topic messages score high; long, diverse,
// reasoning-heavy ones score low. It implements models.ConfidencePredictor so
// a hosted predictor can replace it without touching the orchestrator.
type HeuristicPredictor struct{}

func NewHeuristicPredictor() *HeuristicPredictor {
	return &HeuristicPredictor{}
}

// Per-intent priors: FAQ and menu questions are template-like and easy for a
// small model; complaints need careful wording, unknown intents get nothing.
var intentPriors = map[models.Intent]float64{
	models.IntentFAQ:       0.15,
	models.IntentMenu:      0.15,
	models.IntentPricing:   0.10,
	models.IntentBooking:   0.05,
	models.IntentGeneral:   0.0,
	models.IntentComplaint: -0.20,
	models.IntentUnknown:   -0.50,
}

func (p *HeuristicPredictor) PredictConfidence(_ context.Context, message string, intent models.Intent, chatContext string) (float64, error) {
	complexity := complexityScore(message)

	confidence := 1.0 - complexity
	confidence += intentPriors[intent]

	// Long running conversations carry state a small model handles poorly
	if len(chatContext) > 2000 {
		confidence -= 0.15
	}

	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}
	return confidence, nil
}

func complexityScore(message string) float64 {
	if strings.TrimSpace(message) == "" {
		return 1.0
	}

	// Length factor
	lengthScore := float64(len(message)) / 1000.0
	if lengthScore > 1.0 {
		lengthScore = 1.0
	}

	// Word diversity
	words := strings.Fields(strings.ToLower(message))
	uniqueWords := make(map[string]bool)
	for _, word := range words {
		uniqueWords[word] = true
	}
	diversityScore := 0.0
	if len(words) > 0 {
		diversityScore = float64(len(uniqueWords)) / float64(len(words))
	}

	// Reasoning indicators
	complexityKeywords := []string{
		"explain", "analyze", "compare", "evaluate", "why",
		"how does", "what if", "reasoning", "detailed",
	}
	keywordScore := 0.0
	messageLower := strings.ToLower(message)
	for _, keyword := range complexityKeywords {
		if strings.Contains(messageLower, keyword) {
			keywordScore += 0.15
		}
	}
	if keywordScore > 1.0 {
		keywordScore = 1.0
	}

	// Punctuation complexity
	punctCount := 0
	for _, char := range message {
		if unicode.IsPunct(char) {
			punctCount++
		}
	}
	punctScore := float64(punctCount) / 100.0
	if punctScore > 0.3 {
		punctScore = 0.3
	}

	return (lengthScore * 0.3) + (diversityScore * 0.3) +
		(keywordScore * 0.3) + (punctScore * 0.1)
}
