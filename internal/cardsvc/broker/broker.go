package broker

import (
	"encoding/json"

	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"

	"github.com/twcards/card-services/internal/comm"
)

// Broker fans catalog change events out over NATS and lets consumers
// subscribe to them.
type Broker struct {
	Conn *nats.Conn
}

func NewBroker(nc *nats.Conn) *Broker {
	return &Broker{Conn: nc}
}

func (b *Broker) PublishCardEvent(evt comm.CardEvent) error {
	bytes, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	return b.Conn.Publish(comm.TopicCardEvents, bytes)
}

// SubscribeCardEvents delivers every card event to handler. Malformed
// payloads are logged and dropped.
func (b *Broker) SubscribeCardEvents(handler func(evt comm.CardEvent)) (*nats.Subscription, error) {
	return b.Conn.Subscribe(comm.TopicCardEvents, func(msg *nats.Msg) {
		evt := comm.CardEvent{}
		if err := json.Unmarshal(msg.Data, &evt); err != nil {
			log.Errorf("Error decoding card event: %s", err)
			return
		}
		handler(evt)
	})
}
