package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"www.github.com/Wanderer0074348/ShadowRoute/src/models"
)

const (
	sessionKeyPrefix = "chat_session:"
	defaultTTL       = 24 * time.Hour
	// Keep the last N messages as generation context
	contextWindow = 10
)

// SessionStore keeps conversation state in Redis so the orchestrator can feed
// recent history to both models as generation context.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &SessionStore{
		client: client,
		ttl:    ttl,
	}
}

// CreateSession creates a new chat session
func (s *SessionStore) CreateSession(ctx context.Context) (*models.ChatSession, error) {
	session := &models.ChatSession{
		SessionID:       "sess_" + uuid.New().String(),
		Messages:        []models.ChatMessage{},
		CreatedAt:       time.Now(),
		LastInteraction: time.Now(),
	}

	if err := s.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

// GetSession retrieves a session by ID
func (s *SessionStore) GetSession(ctx context.Context, sessionID string) (*models.ChatSession, error) {
	data, err := s.client.Get(ctx, sessionKeyPrefix+sessionID).Result()
	if err == redis.Nil {
		return nil, fmt.Errorf("session not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session models.ChatSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &session, nil
}

// SaveSession saves or updates a session
func (s *SessionStore) SaveSession(ctx context.Context, session *models.ChatSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	return s.client.Set(ctx, sessionKeyPrefix+session.SessionID, data, s.ttl).Err()
}

// AppendExchange records one user/assistant turn.
func (s *SessionStore) AppendExchange(ctx context.Context, session *models.ChatSession, userMessage, assistantReply string) error {
	now := time.Now()
	session.Messages = append(session.Messages,
		models.ChatMessage{Role: "user", Content: userMessage, Timestamp: now},
		models.ChatMessage{Role: "assistant", Content: assistantReply, Timestamp: now},
	)
	session.MessageCount = len(session.Messages)
	session.LastInteraction = now

	return s.SaveSession(ctx, session)
}

// DeleteSession removes a session
func (s *SessionStore) DeleteSession(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, sessionKeyPrefix+sessionID).Err()
}

// BuildContext renders the most recent messages as a plain-text transcript
// for the generation prompt.
func BuildContext(session *models.ChatSession) string {
	if session == nil || len(session.Messages) == 0 {
		return ""
	}

	start := 0
	if len(session.Messages) > contextWindow {
		start = len(session.Messages) - contextWindow
	}

	var b strings.Builder
	for _, msg := range session.Messages[start:] {
		b.WriteString(msg.Role)
		b.WriteString(": ")
		b.WriteString(msg.Content)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
