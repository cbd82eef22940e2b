package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/solarsavers/solarsavers-api/internal/assistant"
	"github.com/solarsavers/solarsavers-api/internal/models"
	"github.com/solarsavers/solarsavers-api/internal/repository"
)

type ChatService struct {
	chat         repository.ChatRepository
	responder    assistant.Responder
	historyTurns int
}

type ChatRequest struct {
	Message   string `json:"message" validate:"required,max=4000"`
	SessionID string `json:"session_id,omitempty" validate:"max=64"`
}

type ChatResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
}

func NewChatService(chat repository.ChatRepository, responder assistant.Responder, historyTurns int) *ChatService {
	if responder == nil {
		responder = assistant.KeywordResponder{}
	}
	if historyTurns <= 0 {
		historyTurns = 20
	}
	return &ChatService{
		chat:         chat,
		responder:    responder,
		historyTurns: historyTurns,
	}
}

// Send answers one message within a session, starting a new session when
// none is given, and records the exchange.
func (s *ChatService) Send(ctx context.Context, user *models.User, req *ChatRequest) (*ChatResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	past, err := s.chat.History(ctx, sessionID, s.historyTurns)
	if err != nil {
		return nil, Internal("load chat history", err)
	}
	history := make([]assistant.Turn, 0, len(past))
	for _, m := range past {
		history = append(history, assistant.Turn{User: m.UserMessage, Assistant: m.AssistantResponse})
	}

	reply, err := s.responder.Reply(ctx, req.Message, history)
	if err != nil {
		// The keyword responder never fails; a bare primary might.
		reply, _ = assistant.KeywordResponder{}.Reply(ctx, req.Message, history)
	}

	message := &models.ChatMessage{
		SessionID:         sessionID,
		UserMessage:       req.Message,
		AssistantResponse: reply,
	}
	if user != nil {
		message.UserID = user.ID
	}
	if err := s.chat.Create(ctx, message); err != nil {
		return nil, Internal("store chat message", err)
	}

	return &ChatResponse{Response: reply, SessionID: sessionID}, nil
}
