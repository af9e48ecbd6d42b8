package domain

import "time"

// DefaultUserID is substituted when a request omits user_id or sends it empty.
const DefaultUserID = "anonymous"

// timestampLayout is the wire format for all timestamps: UTC, microsecond
// precision, no zone suffix. Lexicographic order matches chronological order.
const timestampLayout = "2006-01-02T15:04:05.000000"

// FormatTimestamp renders t in the shared wire format.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// ParseTimestamp is the inverse of FormatTimestamp.
func ParseTimestamp(s string) (time.Time, error) {
	return time.ParseInLocation(timestampLayout, s, time.UTC)
}

// ChatRequest is the inbound payload for POST /api/chat.
type ChatRequest struct {
	Message string `json:"message"`
	UserID  string `json:"user_id,omitempty"`
}

// ChatResponse is the success payload for POST /api/chat.
type ChatResponse struct {
	Status          string `json:"status"`
	UserID          string `json:"user_id"`
	MessageReceived string `json:"message_received"`
	Response        string `json:"response"`
	Timestamp       string `json:"timestamp"`
}

// HealthResponse is the payload for GET /api/health.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// ErrorResponse is the payload for any failed request.
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
