package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"

	"github.com/andrewkandzuba/azure-function-chat-api/internal/domain"
	"github.com/andrewkandzuba/azure-function-chat-api/internal/usecase"
)

const (
	pathChat   = "/api/chat"
	pathHealth = "/api/health"

	headerCorrelationID = "X-Correlation-Id"
)

// chatUseCase is the core surface the handler adapts to API Gateway events.
type chatUseCase interface {
	Chat(ctx context.Context, in usecase.ChatInput) (domain.ChatResponse, error)
	Health() domain.HealthResponse
}

// Handler routes API Gateway proxy events to the chat use case.
type Handler struct {
	chat chatUseCase
}

func NewHandler(chat chatUseCase) (*Handler, error) {
	if chat == nil {
		return nil, errors.New("handler: use case must not be nil")
	}
	return &Handler{chat: chat}, nil
}

// Handle dispatches one inbound event. It never returns a non-nil error:
// every failure becomes a JSON ErrorResponse with the matching status code.
func (h *Handler) Handle(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	cid := correlationID(event.Headers)

	switch event.Path {
	case pathChat:
		if event.HTTPMethod != http.MethodPost {
			return respondError(http.StatusMethodNotAllowed, "Method not allowed", cid), nil
		}
		return h.handleChat(ctx, event.Body, cid), nil
	case pathHealth:
		if event.HTTPMethod != http.MethodGet {
			return respondError(http.StatusMethodNotAllowed, "Method not allowed", cid), nil
		}
		return respond(http.StatusOK, h.chat.Health(), cid), nil
	default:
		return respondError(http.StatusNotFound, "Not found", cid), nil
	}
}

func (h *Handler) handleChat(ctx context.Context, body, cid string) events.APIGatewayProxyResponse {
	var req domain.ChatRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		return respondError(http.StatusBadRequest, "Invalid JSON format", cid)
	}

	out, err := h.chat.Chat(ctx, usecase.ChatInput{Message: req.Message, UserID: req.UserID})
	if err != nil {
		status, msg := mapError(err)
		return respondError(status, msg, cid)
	}
	return respond(http.StatusOK, out, cid)
}

// mapError translates use case errors into a status code and a public
// message. Internal details never reach the caller.
func mapError(err error) (int, string) {
	var ucErr *usecase.Error
	if errors.As(err, &ucErr) && ucErr.Code == usecase.ErrorInvalidInput {
		if ucErr.Reason == "missing_message" {
			return http.StatusBadRequest, "Missing required field: message"
		}
		return http.StatusBadRequest, "Invalid request"
	}
	return http.StatusInternalServerError, "Internal server error"
}

func respond(status int, body any, cid string) events.APIGatewayProxyResponse {
	raw, err := json.Marshal(body)
	if err != nil {
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusInternalServerError,
			Headers:    responseHeaders(cid),
			Body:       `{"status":"error","message":"Internal server error"}`,
		}
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    responseHeaders(cid),
		Body:       string(raw),
	}
}

func respondError(status int, message, cid string) events.APIGatewayProxyResponse {
	return respond(status, domain.ErrorResponse{Status: "error", Message: message}, cid)
}

func responseHeaders(cid string) map[string]string {
	return map[string]string{
		"Content-Type":      "application/json",
		headerCorrelationID: cid,
	}
}

// correlationID returns the inbound correlation id, matched
// case-insensitively, or generates a fresh one.
func correlationID(headers map[string]string) string {
	for k, v := range headers {
		if strings.EqualFold(k, headerCorrelationID) && v != "" {
			return v
		}
	}
	return uuid.NewString()
}
