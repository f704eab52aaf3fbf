package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/twcards/card-services/internal/comm"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// LiveHandler upgrades the connection and relays catalog change events
// from NATS until the client goes away.
func (h *Handler) LiveHandler(w http.ResponseWriter, r *http.Request) {
	if h.broker == nil {
		h.CreateResponse(w, Response{
			Message: "live feed is not configured",
			Code:    http.StatusServiceUnavailable,
			Error:   "live feed is not configured",
		})
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Errorf("Error upgrading live feed connection: %s", err)
		return
	}
	defer conn.Close()

	socketId := uuid.NewString()

	events := make(chan comm.CardEvent, 16)
	sub, err := h.broker.SubscribeCardEvents(func(evt comm.CardEvent) {
		select {
		case events <- evt:
		default:
			// slow client, drop the event
		}
	})
	if err != nil {
		log.Errorf("Error subscribing live feed %s: %s", socketId, err)
		return
	}
	defer sub.Unsubscribe()

	log.Infof("live feed connected: %s", socketId)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			log.Infof("live feed disconnected: %s", socketId)
			return
		case evt := <-events:
			if err := conn.WriteJSON(evt); err != nil {
				log.Warnf("live feed write failed for %s: %s", socketId, err)
				return
			}
		}
	}
}
