package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/andrewkandzuba/azure-function-chat-api/handler"
	"github.com/andrewkandzuba/azure-function-chat-api/internal/bootstrap"
	"github.com/andrewkandzuba/azure-function-chat-api/internal/usecase"
)

func main() {
	ctx := context.Background()

	// ---- Configuration (read only here; both optional) ----
	telemetryTable := os.Getenv("TELEMETRY_TABLE")
	paramPrefix := os.Getenv("PARAM_PREFIX")

	// ---- Clients ----
	recorder, configSource, err := bootstrap.Dependencies(ctx, telemetryTable, paramPrefix)
	if err != nil {
		slog.Error("failed to build dependencies", "err", err)
		os.Exit(1)
	}

	// ---- Handler ----
	chatService, err := usecase.NewChatService(recorder, configSource)
	if err != nil {
		slog.Error("failed to create chat service", "err", err)
		os.Exit(1)
	}

	h, err := handler.NewHandler(chatService)
	if err != nil {
		slog.Error("failed to create handler", "err", err)
		os.Exit(1)
	}

	lambda.Start(h.Handle)
}
