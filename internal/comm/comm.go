package comm

import "time"

// TopicCardEvents is the NATS subject carrying catalog change events.
const TopicCardEvents = "card.events"

const (
	CardCreated = "card.created"
	CardUpdated = "card.updated"
	CardDeleted = "card.deleted"
)

// CardEvent is published after every successful catalog mutation so other
// services (importer, UI relay) can react without polling.
type CardEvent struct {
	Type     string    `json:"type"`
	CardID   string    `json:"card_id"`
	CardName string    `json:"card_name"`
	At       time.Time `json:"at"`
}

type ServiceHeartbeat struct {
	ID        string    `json:"id"` // service id
	Timestamp time.Time `json:"timestamp"`
}
