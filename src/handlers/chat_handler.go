package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"www.github.com/Wanderer0074348/ShadowRoute/src/chat"
	"www.github.com/Wanderer0074348/ShadowRoute/src/models"
	"www.github.com/Wanderer0074348/ShadowRoute/src/shadow"
)

type ChatHandler struct {
	orchestrator *shadow.Orchestrator
	teacher      models.TeacherInferencer
	sessionStore *chat.SessionStore
}

func NewChatHandler(
	orchestrator *shadow.Orchestrator,
	teacher models.TeacherInferencer,
	sessionStore *chat.SessionStore,
) *ChatHandler {
	return &ChatHandler{
		orchestrator: orchestrator,
		teacher:      teacher,
		sessionStore: sessionStore,
	}
}

func (h *ChatHandler) HandleChat(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	intent := models.ParseIntent(req.Intent)

	// Load or create the session; a broken session store degrades to a
	// stateless exchange rather than failing the request
	var session *models.ChatSession
	if h.sessionStore != nil {
		var err error
		if req.SessionID != "" {
			session, err = h.sessionStore.GetSession(ctx, req.SessionID)
			if err != nil {
				c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
				return
			}
		} else {
			session, err = h.sessionStore.CreateSession(ctx)
			if err != nil {
				log.Printf("⚠️  failed to create session, continuing stateless: %v", err)
			}
		}
	}

	chatContext := chat.BuildContext(session)

	response, meta, err := h.orchestrator.Process(ctx, req.Message, intent, chatContext, h.teacherGenerator(&req, chatContext))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := models.ChatResponse{
		Response:       response,
		ModelUsed:      meta.Model,
		Confidence:     meta.Confidence,
		ShadowLearning: meta.ShadowLearning,
		ResponseTimeMs: meta.ResponseTimeMs,
		Timestamp:      time.Now(),
	}

	if session != nil {
		if err := h.sessionStore.AppendExchange(ctx, session, req.Message, response); err != nil {
			log.Printf("⚠️  failed to save session %s: %v", session.SessionID, err)
		}
		resp.SessionID = session.SessionID
		resp.MessageCount = session.MessageCount
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ChatHandler) teacherGenerator(req *models.ChatRequest, chatContext string) shadow.GenerateFunc {
	return func(ctx context.Context) (string, error) {
		return h.teacher.Generate(ctx, &models.GenerationRequest{
			Prompt:      req.Message,
			Context:     chatContext,
			MaxTokens:   req.MaxTokens,
			Temperature: req.Temperature,
		})
	}
}

func (h *ChatHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now(),
	})
}
