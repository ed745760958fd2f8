package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"www.github.com/Wanderer0074348/ShadowRoute/src/mocks"
	"www.github.com/Wanderer0074348/ShadowRoute/src/models"
	"www.github.com/Wanderer0074348/ShadowRoute/src/router"
	"www.github.com/Wanderer0074348/ShadowRoute/src/shadow"
)

type openGate struct{}

func (openGate) IsReady(_ context.Context, _ models.Intent, _ float64) bool {
	return true
}

func setupChatHandler(mode models.Mode, student models.StudentInferencer) (*ChatHandler, *mocks.MockTeacher) {
	gin.SetMode(gin.TestMode)

	teacher := new(mocks.MockTeacher)
	predictor := new(mocks.MockPredictor)
	predictor.On("PredictConfidence", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(0.8, nil).Maybe()

	r := router.NewModelRouter(mode, openGate{}, router.NewTrafficSplitTable(), router.NewRoutingStatistics(), nil)
	orchestrator := shadow.NewOrchestrator(r, predictor, student, nil, "gpt-4o", "llama-3.1-8b", time.Second)

	return NewChatHandler(orchestrator, teacher, nil), teacher
}

func postChat(handler *ChatHandler, body models.ChatRequest) *httptest.ResponseRecorder {
	jsonBody, _ := json.Marshal(body)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/api/v1/chat", bytes.NewBuffer(jsonBody))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.HandleChat(c)
	return w
}

func TestChatHandler_TeacherServes(t *testing.T) {
	student := new(mocks.MockStudent)
	student.On("Generate", mock.Anything, mock.Anything).Return("student text", nil).Maybe()

	handler, teacher := setupChatHandler(models.ModeShadow, student)
	teacher.On("Generate", mock.Anything, mock.Anything).Return("We open at 5pm.", nil)

	w := postChat(handler, models.ChatRequest{Message: "When do you open?", Intent: "faq"})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.ChatResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "We open at 5pm.", resp.Response)
	assert.Equal(t, models.TargetTeacher, resp.ModelUsed)
	teacher.AssertExpectations(t)
}

func TestChatHandler_MissingMessageRejected(t *testing.T) {
	handler, _ := setupChatHandler(models.ModeShadow, nil)

	w := postChat(handler, models.ChatRequest{Intent: "faq"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChatHandler_TeacherFailureIs500(t *testing.T) {
	handler, teacher := setupChatHandler(models.ModeDisabled, nil)
	teacher.On("Generate", mock.Anything, mock.Anything).Return("", errors.New("upstream timeout"))

	w := postChat(handler, models.ChatRequest{Message: "hello"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestChatHandler_StudentFailureStillServes(t *testing.T) {
	student := new(mocks.MockStudent)
	student.On("Generate", mock.Anything, mock.Anything).Return("", errors.New("connection refused"))

	handler, teacher := setupChatHandler(models.ModeShadow, student)
	teacher.On("Generate", mock.Anything, mock.Anything).Return("Teacher answer.", nil)

	w := postChat(handler, models.ChatRequest{Message: "Do you cater?", Intent: "pricing"})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.ChatResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Teacher answer.", resp.Response)
	assert.False(t, resp.ShadowLearning)
}

func TestChatHandler_HealthCheck(t *testing.T) {
	handler, _ := setupChatHandler(models.ModeShadow, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/v1/health", nil)

	handler.HealthCheck(c)
	assert.Equal(t, http.StatusOK, w.Code)
}
