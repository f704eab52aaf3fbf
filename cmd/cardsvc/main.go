package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/httprate"

	config "github.com/twcards/card-services/configs"
	"github.com/twcards/card-services/internal/cardsvc/broker"
	svcconfig "github.com/twcards/card-services/internal/cardsvc/config"
	pgdb "github.com/twcards/card-services/internal/cardsvc/db"
	handlers "github.com/twcards/card-services/internal/cardsvc/handlers"
	"github.com/twcards/card-services/internal/cardsvc/service"
	"github.com/twcards/card-services/internal/cardsvc/store"
	"github.com/twcards/card-services/internal/db"
	nats "github.com/twcards/card-services/internal/nats"
	log "github.com/sirupsen/logrus"
)

const SERVICE_NAME = "card"

var instanceId string

func init() {
	instanceId = config.CreateUniqueInstance(SERVICE_NAME)
	config.Logging(SERVICE_NAME + "_service_" + instanceId)
	config.LoadEnv(SERVICE_NAME)
}

func main() {
	cfg := svcconfig.Load()

	// mongo connection
	mdb, cancelDb, err := db.ConnectToDB(cfg.MongoURL)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer cancelDb()
	log.Printf("mongo connection established successfully")

	// unique cardName index is what enforces name uniqueness under
	// concurrent creates
	db.EnsureCardIndexes(mdb, service.CollectionName)

	cardStore := store.NewCardStore(mdb)

	// audit trail is optional; skip when postgres is not configured
	var auditLog service.AuditLog
	var auditReader handlers.AuditReader
	if cfg.PostgresURL != "" {
		dbpool, err := pgdb.Connect()
		if err != nil {
			log.Fatalf("Failed to connect to audit DB: %v", err)
		}
		defer pgdb.ClosePool()
		log.Printf("pg connection established successfully")

		auditStore := store.NewAuditStore(dbpool)
		auditLog = auditStore
		auditReader = auditStore
	} else {
		log.Warn("POSTGRES_URL not set, mutation audit trail disabled")
	}

	// Connect to NATS
	n, err := nats.Connect(cfg.NatsURL)
	if err != nil {
		log.Errorf("Error: unable to connect to NATS server %v", err)
		os.Exit(0)
	}
	defer n.Conn.Close()
	log.Printf("NATS connection established successfully %s", n.Url)

	b := broker.NewBroker(n.Conn)

	cardService := service.NewCardService(cardStore, auditLog, b)
	searchService := service.NewSearchService(cardStore)
	resolveService := service.NewResolveService(cardStore)
	statsService := service.NewStatsService(cardStore)

	// Setup router
	r := chi.NewRouter()
	c := config.CORS()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(config.CustomLoggerMiddleware())
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(c.Handler)

	// to protect the service api from any over requests
	r.Use(httprate.LimitByIP(cfg.RateLimit, 1*time.Minute))

	// Init handlers and routes
	h := handlers.NewHandler(cardService, searchService, resolveService, statsService,
		auditReader, b, mdb)
	h.SetRoutes(r)

	// Create server with timeout settings
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()
	log.Infof("%s service running at port %s", SERVICE_NAME, server.Addr)

	// Wait for interrupt signal to gracefully shutdown the server
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("%s service shutdown Failed:%+v", SERVICE_NAME, err)
	}
	log.Infof("%s service gracefully stopped", SERVICE_NAME)
}
