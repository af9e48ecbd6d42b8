package repository

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/require"

	"github.com/andrewkandzuba/azure-function-chat-api/internal/domain"
)

type fakeDynamo struct {
	putErr       error
	lastPutInput *dynamodb.PutItemInput
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.lastPutInput = in
	return &dynamodb.PutItemOutput{}, f.putErr
}

func mustNewEventLog(t *testing.T, db *fakeDynamo) *EventLog {
	t.Helper()
	l, err := New(db, "test-table")
	require.NoError(t, err)
	return l
}

func sampleEvent() domain.ChatEvent {
	return domain.ChatEvent{
		EventID:   "evt-1",
		UserID:    "u1",
		Message:   "Hello",
		Response:  "Echo: Hello",
		Timestamp: "2026-01-02T03:04:05.123456",
	}
}

func strVal(t *testing.T, item map[string]types.AttributeValue, key string) string {
	t.Helper()
	v, ok := item[key].(*types.AttributeValueMemberS)
	require.True(t, ok, "attribute %q missing or not a string", key)
	return v.Value
}

func TestNew_Validation(t *testing.T) {
	_, err := New(nil, "test-table")
	require.Error(t, err)

	_, err = New(&fakeDynamo{}, "  ")
	require.Error(t, err)
}

func TestRecordEvent_HappyPath(t *testing.T) {
	db := &fakeDynamo{}
	l := mustNewEventLog(t, db)

	require.NoError(t, l.RecordEvent(context.Background(), sampleEvent()))
	require.NotNil(t, db.lastPutInput)
	require.Equal(t, "test-table", *db.lastPutInput.TableName)
	require.NotNil(t, db.lastPutInput.ConditionExpression)

	item := db.lastPutInput.Item
	require.Equal(t, "USER#u1", strVal(t, item, "PK"))
	require.Contains(t, strVal(t, item, "SK"), "EVT#")
	require.Equal(t, "evt-1", strVal(t, item, "eventId"))
	require.Equal(t, "u1", strVal(t, item, "userId"))
	require.Equal(t, "Hello", strVal(t, item, "message"))
	require.Equal(t, "Echo: Hello", strVal(t, item, "response"))
	require.Equal(t, "2026-01-02T03:04:05.123456", strVal(t, item, "timestamp"))

	ttlAttr, ok := item["ttl"].(*types.AttributeValueMemberN)
	require.True(t, ok)
	ttl, err := strconv.ParseInt(ttlAttr.Value, 10, 64)
	require.NoError(t, err)
	require.Greater(t, ttl, time.Now().Unix())
}

func TestRecordEvent_RequiresIdentifiers(t *testing.T) {
	l := mustNewEventLog(t, &fakeDynamo{})

	ev := sampleEvent()
	ev.EventID = ""
	require.Error(t, l.RecordEvent(context.Background(), ev))

	ev = sampleEvent()
	ev.UserID = ""
	require.Error(t, l.RecordEvent(context.Background(), ev))
}

func TestRecordEvent_PutItemError(t *testing.T) {
	l := mustNewEventLog(t, &fakeDynamo{putErr: errors.New("boom")})

	err := l.RecordEvent(context.Background(), sampleEvent())
	require.Error(t, err)
	require.Contains(t, err.Error(), "RecordEvent")
	require.ErrorContains(t, err, "boom")
}
