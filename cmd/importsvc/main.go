package main

import (
	"context"
	"flag"
	"time"

	config "github.com/twcards/card-services/configs"
	"github.com/twcards/card-services/internal/cardsvc/broker"
	svcconfig "github.com/twcards/card-services/internal/cardsvc/config"
	"github.com/twcards/card-services/internal/cardsvc/service"
	"github.com/twcards/card-services/internal/cardsvc/store"
	"github.com/twcards/card-services/internal/db"
	"github.com/twcards/card-services/internal/importer"
	nats "github.com/twcards/card-services/internal/nats"
	log "github.com/sirupsen/logrus"
)

const SERVICE_NAME = "import"

func init() {
	config.Logging(SERVICE_NAME + "_service")
	config.LoadEnv(SERVICE_NAME)
}

func main() {
	dir := flag.String("dir", "./cards", "folder with scraped markdown card files")
	flag.Parse()

	cfg := svcconfig.Load()

	mdb, cancelDb, err := db.ConnectToDB(cfg.MongoURL)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer cancelDb()
	log.Printf("mongo connection established successfully")

	db.EnsureCardIndexes(mdb, service.CollectionName)

	cardStore := store.NewCardStore(mdb)

	// events are nice to have for a batch import, not required
	var events service.EventPublisher
	if n, err := nats.Connect(cfg.NatsURL); err == nil {
		defer n.Conn.Close()
		events = broker.NewBroker(n.Conn)
	} else {
		log.Warnf("NATS unavailable, import runs without change events: %v", err)
	}

	cardService := service.NewCardService(cardStore, nil, events)
	imp := importer.New(cardService, cardStore)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	result, err := imp.ImportDir(ctx, *dir)
	if err != nil {
		log.Fatalf("import failed: %v", err)
	}

	log.Infof("import finished: %d files, %d created, %d updated, %d unchanged",
		result.Files, result.Created, result.Updated, result.Skipped)
}
