package confidence

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"www.github.com/Wanderer0074348/ShadowRoute/src/models"
)

func TestHeuristicPredictor_SimpleFAQScoresHigh(t *testing.T) {
	p := NewHeuristicPredictor()

	confidence, err := p.PredictConfidence(context.Background(), "What time do you open?", models.IntentFAQ, "")
	require.NoError(t, err)
	assert.Greater(t, confidence, 0.6)
	assert.LessOrEqual(t, confidence, 1.0)
}

func TestHeuristicPredictor_ComplexMessageScoresLower(t *testing.T) {
	p := NewHeuristicPredictor()

	simple, err := p.PredictConfidence(context.Background(), "What time do you open?", models.IntentGeneral, "")
	require.NoError(t, err)

	complexMsg := "Explain in detail why your catering packages differ in price, compare the seasonal menus, " +
		"analyze what would happen if we needed to change the guest count a week before the event, " +
		"and evaluate how does your cancellation policy interact with the deposit?"
	complex, err := p.PredictConfidence(context.Background(), complexMsg, models.IntentGeneral, "")
	require.NoError(t, err)

	assert.Greater(t, simple, complex)
}

func TestHeuristicPredictor_ComplaintsPenalized(t *testing.T) {
	p := NewHeuristicPredictor()

	msg := "My order was wrong"
	general, err := p.PredictConfidence(context.Background(), msg, models.IntentGeneral, "")
	require.NoError(t, err)
	complaint, err := p.PredictConfidence(context.Background(), msg, models.IntentComplaint, "")
	require.NoError(t, err)

	assert.Greater(t, general, complaint)
}

func TestHeuristicPredictor_UnknownIntentScoresLow(t *testing.T) {
	p := NewHeuristicPredictor()

	confidence, err := p.PredictConfidence(context.Background(), "hi", models.IntentUnknown, "")
	require.NoError(t, err)
	assert.Less(t, confidence, 0.6)
}

func TestHeuristicPredictor_LongContextPenalized(t *testing.T) {
	p := NewHeuristicPredictor()

	msg := "What time do you open?"
	short, err := p.PredictConfidence(context.Background(), msg, models.IntentFAQ, "")
	require.NoError(t, err)

	longContext := strings.Repeat("user: something\nassistant: something else\n", 100)
	long, err := p.PredictConfidence(context.Background(), msg, models.IntentFAQ, longContext)
	require.NoError(t, err)

	assert.Greater(t, short, long)
}

func TestHeuristicPredictor_AlwaysInRange(t *testing.T) {
	p := NewHeuristicPredictor()

	messages := []string{
		"",
		"hi",
		strings.Repeat("explain analyze compare evaluate why ", 100),
		"?!?!?!?!?!",
	}
	for _, msg := range messages {
		for _, intent := range append(models.KnownIntents(), models.IntentUnknown) {
			confidence, err := p.PredictConfidence(context.Background(), msg, intent, "")
			require.NoError(t, err)
			assert.GreaterOrEqual(t, confidence, 0.0)
			assert.LessOrEqual(t, confidence, 1.0)
		}
	}
}
