// Package chat implements the message flows of the active conversation:
// send, regenerate and explain. All state changes go through the sync
// controller; completion failures never propagate, they become visible
// assistant-role messages in the conversation.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/BuggyOpenSouce/Buggy-AI/internal/journal"
	"github.com/BuggyOpenSouce/Buggy-AI/internal/llm"
	"github.com/BuggyOpenSouce/Buggy-AI/internal/model"
	statesync "github.com/BuggyOpenSouce/Buggy-AI/internal/sync"
	"github.com/BuggyOpenSouce/Buggy-AI/pkg/logger"
	"github.com/BuggyOpenSouce/Buggy-AI/pkg/metrics"
)

const (
	errNoValidResponse   = "No valid response was received from the assistant."
	errRegenerateFailed  = "The response could not be regenerated."
	errExplanationFailed = "The explanation could not be retrieved."
)

// ErrNoActiveChat is returned when a flow runs without an active conversation.
var ErrNoActiveChat = errors.New("no active conversation")

// ProfileExtractor derives profile updates from a user message. It is an
// external collaborator; nil disables extraction.
type ProfileExtractor func(content string, profile model.UserProfile) *model.ProfileUpdate

// Service runs the conversation flows.
type Service struct {
	controller *statesync.Controller
	llmClient  llm.Client
	journal    *journal.Aggregator
	extractor  ProfileExtractor
	logger     *logger.Logger
	modelName  string
}

// NewService creates a chat service. llmClient may be nil when no provider
// is configured; flows then degrade to the error-message path.
func NewService(ctrl *statesync.Controller, client llm.Client, agg *journal.Aggregator, extractor ProfileExtractor, modelName string, log *logger.Logger) *Service {
	return &Service{
		controller: ctrl,
		llmClient:  client,
		journal:    agg,
		extractor:  extractor,
		logger:     log,
		modelName:  modelName,
	}
}

// Send appends a user message to the active conversation and requests an
// assistant response. The returned sequence is the conversation after both
// messages; a completion failure yields an assistant-role error message
// instead of a Go error.
func (s *Service) Send(ctx context.Context, req *model.SendMessageRequest) ([]model.Message, error) {
	active, ok := s.controller.ActiveChat()
	if !ok {
		return nil, ErrNoActiveChat
	}

	userMsg := model.Message{
		Role:      model.RoleUser,
		Content:   strings.TrimSpace(req.Content),
		Images:    req.Images,
		Timestamp: time.Now().UnixMilli(),
	}
	if userMsg.Content != "" {
		s.journal.Record(model.RoleUser, userMsg.Content, time.Now())
	}

	messages := append(active.Messages, userMsg)
	s.controller.ReplaceActiveMessages(messages)
	metrics.MessagesTotal.WithLabelValues(string(model.RoleUser)).Inc()

	if s.extractor != nil && userMsg.Content != "" {
		if profile, ok := s.controller.Profile(); ok {
			if update := s.extractor(userMsg.Content, profile); update != nil {
				s.controller.UpdateProfile(ctx, *update)
			}
		}
	}

	reply := s.complete(ctx, messages, errNoValidResponse)
	messages = append(messages, reply)
	s.controller.ReplaceActiveMessages(messages)
	if reply.Content != "" {
		s.journal.Record(model.RoleAssistant, reply.Content, time.Now())
	}
	metrics.MessagesTotal.WithLabelValues(string(model.RoleAssistant)).Inc()

	return messages, nil
}

// Regenerate discards the messages at and after index and requests a fresh
// assistant response for the truncated history.
func (s *Service) Regenerate(ctx context.Context, index int) ([]model.Message, error) {
	active, ok := s.controller.ActiveChat()
	if !ok {
		return nil, ErrNoActiveChat
	}
	if index <= 0 || index > len(active.Messages) {
		return nil, fmt.Errorf("regenerate index %d out of range", index)
	}

	messages := active.Messages[:index]
	s.controller.ReplaceActiveMessages(messages)

	reply := s.complete(ctx, messages, errRegenerateFailed)
	messages = append(messages, reply)
	s.controller.ReplaceActiveMessages(messages)
	if reply.Content != "" {
		s.journal.Record(model.RoleAssistant, "(Regenerated) "+reply.Content, time.Now())
	}

	return messages, nil
}

// Explain asks the assistant to elaborate on one of its own messages. The
// explanation request and the response are appended to the conversation.
func (s *Service) Explain(ctx context.Context, index int) ([]model.Message, error) {
	active, ok := s.controller.ActiveChat()
	if !ok {
		return nil, ErrNoActiveChat
	}
	if index < 0 || index >= len(active.Messages) {
		return nil, fmt.Errorf("explain index %d out of range", index)
	}
	target := active.Messages[index]
	if target.Role != model.RoleAssistant {
		return nil, errors.New("only assistant messages can be explained")
	}

	request := model.Message{
		Role:      model.RoleUser,
		Content:   fmt.Sprintf("Can you explain this message in more detail? %q", target.Content),
		Timestamp: time.Now().UnixMilli(),
	}
	s.journal.Record(model.RoleUser, request.Content, time.Now())

	messages := append(active.Messages, request)
	s.controller.ReplaceActiveMessages(messages)

	// The completion context stops at the explained message; later messages
	// in the conversation are not part of the question.
	contextMessages := append(append([]model.Message{}, active.Messages[:index+1]...), request)
	reply := s.complete(ctx, contextMessages, errExplanationFailed)

	messages = append(messages, reply)
	s.controller.ReplaceActiveMessages(messages)
	if reply.Content != "" {
		s.journal.Record(model.RoleAssistant, "(Explanation) "+reply.Content, time.Now())
	}

	return messages, nil
}

// complete calls the completion collaborator and converts every failure mode
// (no client, transport error, empty response) into an assistant message.
func (s *Service) complete(ctx context.Context, history []model.Message, fallback string) model.Message {
	errorMessage := func(content string) model.Message {
		return model.Message{
			Role:      model.RoleAssistant,
			Content:   content,
			Timestamp: time.Now().UnixMilli(),
		}
	}

	if s.llmClient == nil {
		return errorMessage(fallback)
	}

	settings := s.controller.AISettings()
	var profile *model.UserProfile
	if p, ok := s.controller.Profile(); ok {
		profile = &p
	}

	start := time.Now()
	resp, err := s.llmClient.Complete(ctx, &llm.CompletionRequest{
		Model:       s.modelName,
		System:      llm.BuildSystemPrompt(profile, settings, s.journal.Entries()),
		Messages:    llm.ToChatMessages(history),
		MaxTokens:   settings.MaxTokens,
		Temperature: settings.Temperature,
	})
	if err != nil {
		s.logger.Warn("completion request failed", zap.Error(err))
		metrics.RecordCompletion(s.llmClient.Name(), "error", time.Since(start).Seconds(), 0, 0)
		return errorMessage(err.Error())
	}
	if strings.TrimSpace(resp.Content) == "" {
		metrics.RecordCompletion(s.llmClient.Name(), "empty", time.Since(start).Seconds(), resp.TokensIn, resp.TokensOut)
		return errorMessage(fallback)
	}

	metrics.RecordCompletion(s.llmClient.Name(), "success", time.Since(start).Seconds(), resp.TokensIn, resp.TokensOut)
	return model.Message{
		Role:      model.RoleAssistant,
		Content:   strings.TrimSpace(resp.Content),
		Timestamp: time.Now().UnixMilli(),
	}
}
