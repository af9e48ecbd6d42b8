package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/andrewkandzuba/azure-function-chat-api/internal/domain"
)

const (
	defaultEchoPrefix = "Echo: "
	statusSuccess     = "success"
	statusHealthy     = "healthy"
)

// EventRecorder receives one telemetry record per handled chat request.
// Recording is best-effort: a failing recorder never fails the request.
type EventRecorder interface {
	RecordEvent(ctx context.Context, ev domain.ChatEvent) error
}

// NopRecorder discards events. Used when no telemetry table is configured
// and as the default in tests.
type NopRecorder struct{}

func (NopRecorder) RecordEvent(context.Context, domain.ChatEvent) error { return nil }

// ConfigSource supplies optional runtime configuration overrides.
type ConfigSource interface {
	EchoPrefix(ctx context.Context) (string, error)
}

// ChatService implements the chat and health operations. It holds no
// per-request state and is safe for concurrent use.
type ChatService struct {
	recorder EventRecorder
	config   ConfigSource // nil when no parameter store is configured

	cacheMu     sync.RWMutex
	cacheLoaded bool
	echoPrefix  string
}

type ChatInput struct {
	Message string
	UserID  string
}

// NewChatService creates a ChatService. config may be nil, in which case the
// built-in echo prefix is used without any parameter store lookup.
func NewChatService(recorder EventRecorder, config ConfigSource) (*ChatService, error) {
	if recorder == nil {
		return nil, errors.New("usecase: event recorder must not be nil")
	}
	return &ChatService{
		recorder: recorder,
		config:   config,
	}, nil
}

// Chat validates the input, resolves the user id and returns the echo
// response. The message is echoed verbatim; only the emptiness check trims.
func (s *ChatService) Chat(ctx context.Context, in ChatInput) (domain.ChatResponse, error) {
	if strings.TrimSpace(in.Message) == "" {
		return domain.ChatResponse{}, newError(ErrorInvalidInput, "missing_message", nil)
	}
	userID := in.UserID
	if strings.TrimSpace(userID) == "" {
		userID = domain.DefaultUserID
	}

	ts := domain.FormatTimestamp(now())
	resp := domain.ChatResponse{
		Status:          statusSuccess,
		UserID:          userID,
		MessageReceived: in.Message,
		Response:        s.loadEchoPrefix(ctx) + in.Message,
		Timestamp:       ts,
	}

	slog.Info("chat handled", "user_id", userID, "message", in.Message, "timestamp", ts)

	ev := domain.ChatEvent{
		EventID:   newUUID(),
		UserID:    userID,
		Message:   in.Message,
		Response:  resp.Response,
		Timestamp: ts,
	}
	if err := s.recorder.RecordEvent(ctx, ev); err != nil {
		// Telemetry is non-authoritative; degrade silently.
		slog.Warn("chat event not recorded", "err", err, "event_id", ev.EventID)
	}

	return resp, nil
}

// Health reports liveness. It has no failure modes.
func (s *ChatService) Health() domain.HealthResponse {
	return domain.HealthResponse{
		Status:    statusHealthy,
		Timestamp: domain.FormatTimestamp(now()),
	}
}

// loadEchoPrefix returns the configured echo prefix, loading it from the
// parameter store on first use. A load failure falls back to the default for
// this request and is retried on the next one.
func (s *ChatService) loadEchoPrefix(ctx context.Context) string {
	if s.config == nil {
		return defaultEchoPrefix
	}

	s.cacheMu.RLock()
	if s.cacheLoaded {
		prefix := s.echoPrefix
		s.cacheMu.RUnlock()
		return prefix
	}
	s.cacheMu.RUnlock()

	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	if s.cacheLoaded {
		return s.echoPrefix
	}

	v, err := s.config.EchoPrefix(ctx)
	if err != nil {
		slog.Warn("echo prefix not loaded, using default", "err", err)
		return defaultEchoPrefix
	}
	if v == "" {
		v = defaultEchoPrefix
	}
	s.echoPrefix = v
	s.cacheLoaded = true
	return v
}

var now = time.Now

var newUUID = func() string {
	return uuid.NewString()
}
