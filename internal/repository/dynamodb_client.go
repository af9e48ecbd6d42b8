package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/andrewkandzuba/azure-function-chat-api/internal/domain"
)

const (
	pkPrefixUser = "USER#"
	skPrefixEvt  = "EVT#"
	ttlDuration  = 30 * 24 * time.Hour // events expire after 30 days
)

// dynamodbAPI is the minimal DynamoDB interface required by EventLog.
// Defined here for testability.
type dynamodbAPI interface {
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// EventLog wraps a DynamoDB table used as the chat telemetry sink.
type EventLog struct {
	api       dynamodbAPI
	tableName string
}

// New creates a new EventLog.
func New(api dynamodbAPI, tableName string) (*EventLog, error) {
	if api == nil {
		return nil, errors.New("repository: api must not be nil")
	}
	if strings.TrimSpace(tableName) == "" {
		return nil, errors.New("repository: table name must not be empty")
	}
	return &EventLog{api: api, tableName: tableName}, nil
}

// userPK returns the partition key for a user's event stream.
func userPK(userID string) string {
	return pkPrefixUser + userID
}

// evtSK returns the sort key for an event, keyed on the current UTC time so
// a user's events sort chronologically.
func evtSK(ts time.Time) string {
	return skPrefixEvt + ts.UTC().Format(time.RFC3339Nano)
}

// ttlValue returns a Unix timestamp 30 days in the future.
func ttlValue() int64 {
	return time.Now().Add(ttlDuration).Unix()
}

// RecordEvent persists one chat event. The conditional put rejects key
// collisions instead of overwriting an existing record.
func (l *EventLog) RecordEvent(ctx context.Context, ev domain.ChatEvent) error {
	if ev.EventID == "" {
		return errors.New("repository: RecordEvent: event id is required")
	}
	if ev.UserID == "" {
		return errors.New("repository: RecordEvent: user id is required")
	}

	_, err := l.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(l.tableName),
		Item:                eventItem(ev, time.Now()),
		ConditionExpression: aws.String("attribute_not_exists(PK) AND attribute_not_exists(SK)"),
	})
	if err != nil {
		return fmt.Errorf("repository: RecordEvent: %w", err)
	}
	return nil
}

func eventItem(ev domain.ChatEvent, ts time.Time) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK":        &types.AttributeValueMemberS{Value: userPK(ev.UserID)},
		"SK":        &types.AttributeValueMemberS{Value: evtSK(ts)},
		"eventId":   &types.AttributeValueMemberS{Value: ev.EventID},
		"userId":    &types.AttributeValueMemberS{Value: ev.UserID},
		"message":   &types.AttributeValueMemberS{Value: ev.Message},
		"response":  &types.AttributeValueMemberS{Value: ev.Response},
		"timestamp": &types.AttributeValueMemberS{Value: ev.Timestamp},
		"ttl":       &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", ttlValue())},
	}
}
