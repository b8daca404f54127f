package kafka

import "time"

// SyncCompletedEvent is published after a synchronization run stored articles
type SyncCompletedEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Processed int       `json:"processed"`
	Saved     int       `json:"saved"`
	Filtered  int       `json:"filtered"`
	Errors    int       `json:"errors"`
	Timestamp time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeSyncCompleted = "sync.completed"
)

// Kafka topics
const (
	TopicSyncCompleted = "news-sync-completed"
)
