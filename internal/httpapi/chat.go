package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/andrewkandzuba/azure-function-chat-api/internal/domain"
	"github.com/andrewkandzuba/azure-function-chat-api/internal/usecase"
)

// chatUseCase is the core surface served by the local development server.
// It is the same surface the Lambda adapter wraps.
type chatUseCase interface {
	Chat(ctx context.Context, in usecase.ChatInput) (domain.ChatResponse, error)
	Health() domain.HealthResponse
}

// ChatHandler serves the chat API over plain HTTP for local development.
type ChatHandler struct {
	chat chatUseCase
}

func NewChatHandler(chat chatUseCase) (*ChatHandler, error) {
	if chat == nil {
		return nil, errors.New("httpapi: use case must not be nil")
	}
	return &ChatHandler{chat: chat}, nil
}

// RegisterRoutes maps the API paths onto the provided Echo instance and
// installs the error handler so routing failures use the same JSON error
// shape as the handlers.
func RegisterRoutes(e *echo.Echo, h *ChatHandler) {
	e.HTTPErrorHandler = errorHandler
	e.POST("/api/chat", h.Chat)
	e.GET("/api/health", h.Health)
}

// errorHandler renders failures raised outside the handlers (unknown path,
// wrong method) as a domain.ErrorResponse.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := "Internal server error"
	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		switch status {
		case http.StatusNotFound:
			message = "Not found"
		case http.StatusMethodNotAllowed:
			message = "Method not allowed"
		default:
			if s, ok := he.Message.(string); ok {
				message = s
			}
		}
	}

	if err := c.JSON(status, domain.ErrorResponse{Status: "error", Message: message}); err != nil {
		slog.Warn("error response not written", "err", err)
	}
}

func (h *ChatHandler) Chat(c echo.Context) error {
	var req domain.ChatRequest
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
		return c.JSON(http.StatusBadRequest, domain.ErrorResponse{Status: "error", Message: "Invalid JSON format"})
	}

	out, err := h.chat.Chat(c.Request().Context(), usecase.ChatInput{Message: req.Message, UserID: req.UserID})
	if err != nil {
		var ucErr *usecase.Error
		if errors.As(err, &ucErr) && ucErr.Code == usecase.ErrorInvalidInput {
			if ucErr.Reason == "missing_message" {
				return c.JSON(http.StatusBadRequest, domain.ErrorResponse{Status: "error", Message: "Missing required field: message"})
			}
			return c.JSON(http.StatusBadRequest, domain.ErrorResponse{Status: "error", Message: "Invalid request"})
		}
		return c.JSON(http.StatusInternalServerError, domain.ErrorResponse{Status: "error", Message: "Internal server error"})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ChatHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, h.chat.Health())
}
