package models

import "time"

// Target identifies which model serves (or would serve) a request.
type Target string

const (
	TargetTeacher Target = "teacher"
	TargetStudent Target = "student"
)

// Mode is the global shadow-learning mode.
type Mode string

const (
	ModeDisabled Mode = "disabled" // teacher only, no student calls, no pair logging
	ModeShadow   Mode = "shadow"   // student runs and pairs are logged, teacher always serves
	ModeLive     Mode = "live"     // student may serve traffic per readiness + split
)

// ParseMode maps a raw mode label to the enumeration, defaulting to shadow.
func ParseMode(s string) Mode {
	switch Mode(s) {
	case ModeDisabled, ModeShadow, ModeLive:
		return Mode(s)
	default:
		return ModeShadow
	}
}

// RoutingDecision is the per-request outcome of the model router.
// Transient: produced per request, consumed by the orchestrator and stats.
type RoutingDecision struct {
	Intent       Intent    `json:"intent"`
	Target       Target    `json:"target"`
	Confidence   float64   `json:"confidence"`
	SplitPercent int       `json:"split_percent"`
	Reason       string    `json:"reason"`
	Timestamp    time.Time `json:"timestamp"`
}

// GenerationRequest is the prompt handed to a generation client.
type GenerationRequest struct {
	Prompt       string  `json:"prompt"`
	Context      string  `json:"context,omitempty"`
	SystemPrompt string  `json:"system_prompt,omitempty"`
	MaxTokens    int     `json:"max_tokens,omitempty"`
	Temperature  float32 `json:"temperature,omitempty"`
}

// TutorPair is one logged teacher/student response pair, the unit of
// training data for offline student fine-tuning. Append-only once logged.
type TutorPair struct {
	ID               string            `json:"id"`
	Prompt           string            `json:"prompt"`
	TeacherResponse  string            `json:"teacher_response"`
	StudentResponse  string            `json:"student_response"`
	TeacherModel     string            `json:"teacher_model"`
	StudentModel     string            `json:"student_model"`
	Context          string            `json:"context,omitempty"`
	Metadata         map[string]string `json:"metadata,omitempty"`
	Intent           Intent            `json:"intent"`
	TeacherLatencyMs int64             `json:"teacher_latency_ms"`
	StudentLatencyMs int64             `json:"student_latency_ms"`
	SimilarityScore  *float64          `json:"similarity_score,omitempty"`
	PromptTokens     int               `json:"prompt_tokens,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
}

// QualityScore is the output of the heuristic response evaluator.
type QualityScore struct {
	WordCount      int     `json:"word_count"`
	CharCount      int     `json:"char_count"`
	SentenceCount  int     `json:"sentence_count"`
	LengthScore    float64 `json:"length_score"`
	CoherenceScore float64 `json:"coherence_score"`
	RelevanceScore float64 `json:"relevance_score"`
	OverallQuality float64 `json:"overall_quality"`
	IsAcceptable   bool    `json:"is_acceptable"`
}

// ProcessMetadata describes how a response was produced.
type ProcessMetadata struct {
	Model          Target           `json:"model"`
	ModelName      string           `json:"model_name"`
	Confidence     float64          `json:"confidence"`
	ShadowLearning bool             `json:"shadow_learning"`
	ResponseTimeMs int64            `json:"response_time_ms"`
	Decision       *RoutingDecision `json:"decision,omitempty"`
}

// IntentStats is the per-intent slice of the routing counters.
type IntentStats struct {
	Total   uint64 `json:"total"`
	Teacher uint64 `json:"teacher"`
	Student uint64 `json:"student"`
}

// RoutingStatsSnapshot is a point-in-time view of the routing counters,
// with percentages precomputed for display.
type RoutingStatsSnapshot struct {
	TotalRequests       uint64                 `json:"total_requests"`
	TeacherRequests     uint64                 `json:"teacher_requests"`
	StudentRequests     uint64                 `json:"student_requests"`
	TeacherPercent      float64                `json:"teacher_percent"`
	StudentPercent      float64                `json:"student_percent"`
	EstimatedSavingsUSD float64                `json:"estimated_savings_usd"`
	ByIntent            map[string]IntentStats `json:"by_intent"`
}

// SplitSnapshot is a point-in-time view of the traffic split table.
type SplitSnapshot struct {
	Splits      map[string]int `json:"splits"`
	LastUpdated time.Time      `json:"last_updated"`
}

// Chat-facing request/response types for the HTTP boundary.

type ChatMessage struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type ChatSession struct {
	SessionID       string        `json:"session_id"`
	Messages        []ChatMessage `json:"messages"`
	CreatedAt       time.Time     `json:"created_at"`
	LastInteraction time.Time     `json:"last_interaction"`
	MessageCount    int           `json:"message_count"`
}

type ChatRequest struct {
	SessionID   string  `json:"session_id,omitempty"`
	Message     string  `json:"message" binding:"required"`
	Intent      string  `json:"intent,omitempty"`
	MaxTokens   int     `json:"max_tokens,omitempty"`
	Temperature float32 `json:"temperature,omitempty"`
}

type ChatResponse struct {
	SessionID      string    `json:"session_id"`
	Response       string    `json:"response"`
	ModelUsed      Target    `json:"model_used"`
	Confidence     float64   `json:"confidence"`
	ShadowLearning bool      `json:"shadow_learning"`
	ResponseTimeMs int64     `json:"response_time_ms"`
	MessageCount   int       `json:"message_count"`
	Timestamp      time.Time `json:"timestamp"`
}
