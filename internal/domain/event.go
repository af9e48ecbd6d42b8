package domain

// ChatEvent is a single telemetry record describing one handled chat request.
// Events are written fire-and-forget; nothing on the request path reads them.
type ChatEvent struct {
	EventID   string
	UserID    string
	Message   string
	Response  string
	Timestamp string
}
