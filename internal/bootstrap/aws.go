package bootstrap

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awsssm "github.com/aws/aws-sdk-go-v2/service/ssm"

	"github.com/andrewkandzuba/azure-function-chat-api/internal/integrations/paramstore"
	"github.com/andrewkandzuba/azure-function-chat-api/internal/repository"
	"github.com/andrewkandzuba/azure-function-chat-api/internal/usecase"
)

// Dependencies builds the chat service's optional AWS-backed collaborators.
// With an empty telemetryTable events are discarded; with an empty
// paramPrefix the returned config source is nil and the built-in echo prefix
// applies. The AWS SDK is only touched when at least one is set, so local
// runs need no AWS credentials.
func Dependencies(ctx context.Context, telemetryTable, paramPrefix string) (usecase.EventRecorder, usecase.ConfigSource, error) {
	recorder := usecase.EventRecorder(usecase.NopRecorder{})
	var configSource usecase.ConfigSource

	if telemetryTable == "" && paramPrefix == "" {
		return recorder, nil, nil
	}

	awsCfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("bootstrap: load AWS config: %w", err)
	}

	if telemetryTable != "" {
		eventLog, err := repository.New(awsdynamodb.NewFromConfig(awsCfg), telemetryTable)
		if err != nil {
			return nil, nil, fmt.Errorf("bootstrap: create event log: %w", err)
		}
		recorder = eventLog
	}

	if paramPrefix != "" {
		ssmClient, err := paramstore.New(awsssm.NewFromConfig(awsCfg), paramPrefix)
		if err != nil {
			return nil, nil, fmt.Errorf("bootstrap: create SSM client: %w", err)
		}
		configSource = ssmClient
	}

	return recorder, configSource, nil
}
