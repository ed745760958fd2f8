package utils

import "strings"

// Pricing per 1M tokens, used only for rough savings estimates
const (
	GPT4InputPer1M   = 30.00
	GPT4OutputPer1M  = 60.00
	GPT35InputPer1M  = 0.50
	GPT35OutputPer1M = 1.50
	LocalPer1M       = 0.10 // amortized local inference estimate
)

// EstimateTokenCount estimates token count from text (rough approximation)
// More accurate: ~1 token per 4 characters for English
func EstimateTokenCount(text string) int {
	text = strings.TrimSpace(text)

	charCount := len(text)
	tokenCount := charCount / 4

	// Buffer for special tokens
	if tokenCount < 10 {
		tokenCount = 10
	}

	return tokenCount
}

// EstimateSavedCost estimates the money saved by serving one request with
// the student model instead of the teacher model.
func EstimateSavedCost(inputTokens, outputTokens int, teacherModel string) float64 {
	var inputPer1M, outputPer1M float64

	switch {
	case strings.Contains(strings.ToLower(teacherModel), "gpt-4"):
		inputPer1M = GPT4InputPer1M
		outputPer1M = GPT4OutputPer1M
	default:
		inputPer1M = GPT35InputPer1M
		outputPer1M = GPT35OutputPer1M
	}

	teacherCost := float64(inputTokens)*inputPer1M/1000000 + float64(outputTokens)*outputPer1M/1000000
	localCost := float64(inputTokens+outputTokens) * LocalPer1M / 1000000

	saved := teacherCost - localCost
	if saved < 0 {
		return 0
	}
	return saved
}
