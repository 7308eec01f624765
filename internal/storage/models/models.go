package models

import "time"

// ChatRecord is one request/response exchange in the transcript store.
type ChatRecord struct {
	ID        string
	SessionID string
	Message   string
	Response  string
	Intent    string
	LatencyMS int
	CreatedAt time.Time
}
