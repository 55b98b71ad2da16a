package domain

// EventType places a timeline event relative to now.
type EventType string

const (
	EventPast    EventType = "past"
	EventPresent EventType = "present"
	EventFuture  EventType = "future"
)

// TimelineEvent is one externally curated milestone on the AI timeline.
// Read-only; SortOrder defines ascending display order.
type TimelineEvent struct {
	Year        string    `json:"year"`
	Quarter     string    `json:"quarter,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Type        EventType `json:"type"`
	SortOrder   int       `json:"sortOrder"`
}
