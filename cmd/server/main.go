package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/andrewkandzuba/azure-function-chat-api/internal/bootstrap"
	"github.com/andrewkandzuba/azure-function-chat-api/internal/httpapi"
	"github.com/andrewkandzuba/azure-function-chat-api/internal/usecase"
)

// Local development server. Serves the same endpoints as the Lambda
// deployment over plain HTTP so the API can be exercised without a function
// host. AWS integrations are optional; without them events are discarded and
// the built-in echo prefix is used.
func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	recorder, configSource, err := bootstrap.Dependencies(ctx, os.Getenv("TELEMETRY_TABLE"), os.Getenv("PARAM_PREFIX"))
	if err != nil {
		slog.Error("failed to build dependencies", "err", err)
		os.Exit(1)
	}

	chatService, err := usecase.NewChatService(recorder, configSource)
	if err != nil {
		slog.Error("failed to create chat service", "err", err)
		os.Exit(1)
	}

	h, err := httpapi.NewChatHandler(chatService)
	if err != nil {
		slog.Error("failed to create chat handler", "err", err)
		os.Exit(1)
	}

	e := echo.New()
	e.HideBanner = true
	httpapi.RegisterRoutes(e, h)

	slog.Info("listening", "port", port)
	if err := e.Start(":" + port); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
