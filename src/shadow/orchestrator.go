package shadow

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"www.github.com/Wanderer0074348/ShadowRoute/src/models"
	"www.github.com/Wanderer0074348/ShadowRoute/src/router"
	"www.github.com/Wanderer0074348/ShadowRoute/src/utils"
)

// GenerateFunc produces the customer-facing teacher response. Supplied by the
// caller so the orchestrator stays agnostic of prompt assembly and provider.
type GenerateFunc func(ctx context.Context) (string, error)

// Orchestrator drives dual generation. The teacher always runs and its
// failure is the caller's problem; the student runs opportunistically
// whenever shadow learning is on, purely to produce tutor pairs, and nothing
// on that path may delay or fail the customer response.
type Orchestrator struct {
	router      *router.ModelRouter
	predictor   models.ConfidencePredictor
	student     models.StudentInferencer
	pairs       *PairQueue
	teacherName string
	studentName string
	studentWait time.Duration
}

func NewOrchestrator(
	modelRouter *router.ModelRouter,
	predictor models.ConfidencePredictor,
	student models.StudentInferencer,
	pairs *PairQueue,
	teacherName, studentName string,
	studentTimeout time.Duration,
) *Orchestrator {
	if studentTimeout <= 0 {
		studentTimeout = 20 * time.Second
	}
	return &Orchestrator{
		router:      modelRouter,
		predictor:   predictor,
		student:     student,
		pairs:       pairs,
		teacherName: teacherName,
		studentName: studentName,
		studentWait: studentTimeout,
	}
}

// Process generates a response for one message.
//
// Shadow learning disabled: teacher only, no pair logging.
// Enabled: confidence -> routing decision -> teacher generation (fatal on
// error) and student generation (never fatal); a produced pair is enqueued
// for grading; the decision picks which text is served.
func (o *Orchestrator) Process(ctx context.Context, message string, intent models.Intent, chatContext string, teacherGen GenerateFunc) (string, *models.ProcessMetadata, error) {
	if o.router.Mode() == models.ModeDisabled {
		start := time.Now()
		text, err := teacherGen(ctx)
		if err != nil {
			return "", nil, err
		}
		return text, &models.ProcessMetadata{
			Model:          models.TargetTeacher,
			ModelName:      o.teacherName,
			ShadowLearning: false,
			ResponseTimeMs: time.Since(start).Milliseconds(),
		}, nil
	}

	confidence := o.predictConfidence(ctx, message, intent, chatContext)

	// The decision only determines which response is served; the student is
	// attempted regardless, so pairs keep accumulating while an intent ramps.
	decision := o.router.Route(ctx, intent, message, confidence, chatContext)

	// Student runs concurrently with the teacher under its own bounded
	// timeout, so waiting on it adds at most that bound past the teacher.
	studentCh := o.startStudent(ctx, message, intent, chatContext)

	teacherStart := time.Now()
	teacherText, err := teacherGen(ctx)
	teacherLatency := time.Since(teacherStart)
	if err != nil {
		return "", nil, err
	}

	studentRes := <-studentCh
	studentText, studentLatency, studentOK := studentRes.text, studentRes.latency, studentRes.ok

	if studentOK {
		o.logPair(message, chatContext, intent, teacherText, studentText, teacherLatency, studentLatency)
	}

	meta := &models.ProcessMetadata{
		Model:          models.TargetTeacher,
		ModelName:      o.teacherName,
		Confidence:     confidence,
		ShadowLearning: studentOK,
		ResponseTimeMs: teacherLatency.Milliseconds(),
		Decision:       decision,
	}

	if decision.Target == models.TargetStudent && studentOK {
		meta.Model = models.TargetStudent
		meta.ModelName = o.studentName
		meta.ResponseTimeMs = studentLatency.Milliseconds()
		o.router.Stats().AddSavings(utils.EstimateSavedCost(
			utils.EstimateTokenCount(message)+utils.EstimateTokenCount(chatContext),
			utils.EstimateTokenCount(studentText),
			o.teacherName,
		))
		return studentText, meta, nil
	}

	return teacherText, meta, nil
}

func (o *Orchestrator) predictConfidence(ctx context.Context, message string, intent models.Intent, chatContext string) float64 {
	if o.predictor == nil {
		return 0.0
	}
	confidence, err := o.predictor.PredictConfidence(ctx, message, intent, chatContext)
	if err != nil {
		log.Printf("⚠️  confidence prediction failed for intent %s, assuming 0.0: %v", intent, err)
		return 0.0
	}
	if confidence < 0 {
		return 0.0
	}
	if confidence > 1 {
		return 1.0
	}
	return confidence
}

type studentResult struct {
	text    string
	latency time.Duration
	ok      bool
}

// startStudent launches student generation with its own bounded timeout,
// detached from the request context so a teacher-side cancellation cannot
// abort a pair already in flight. Any failure is a normal outcome, not an
// error.
func (o *Orchestrator) startStudent(ctx context.Context, message string, intent models.Intent, chatContext string) <-chan studentResult {
	ch := make(chan studentResult, 1)

	if o.student == nil {
		ch <- studentResult{}
		return ch
	}

	go func() {
		studentCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), o.studentWait)
		defer cancel()

		start := time.Now()
		text, err := o.student.Generate(studentCtx, &models.GenerationRequest{
			Prompt:  message,
			Context: chatContext,
		})
		latency := time.Since(start)
		if err != nil {
			log.Printf("⚠️  student generation failed for intent %s (non-fatal): %v", intent, err)
			ch <- studentResult{latency: latency}
			return
		}
		ch <- studentResult{text: text, latency: latency, ok: text != ""}
	}()

	return ch
}

func (o *Orchestrator) logPair(message, chatContext string, intent models.Intent, teacherText, studentText string, teacherLatency, studentLatency time.Duration) {
	if o.pairs == nil {
		return
	}

	pair := &models.TutorPair{
		ID:               uuid.New().String(),
		Prompt:           message,
		TeacherResponse:  teacherText,
		StudentResponse:  studentText,
		TeacherModel:     o.teacherName,
		StudentModel:     o.studentName,
		Context:          chatContext,
		Intent:           intent,
		TeacherLatencyMs: teacherLatency.Milliseconds(),
		StudentLatencyMs: studentLatency.Milliseconds(),
		PromptTokens:     utils.EstimateTokenCount(message),
		CreatedAt:        time.Now(),
	}

	o.pairs.Enqueue(pair)
}
