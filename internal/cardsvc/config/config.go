package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port        string
	MongoURL    string // expected to be like: mongodb://localhost:27017/credit-card-db
	PostgresURL string // audit trail, optional
	NatsURL     string
	RateLimit   int
}

func Load() Config {
	rateLimit, err := strconv.Atoi(os.Getenv("RATE_LIMIT"))
	if err != nil || rateLimit <= 0 {
		rateLimit = 120
	}

	return Config{
		Port:        os.Getenv("CARD_SERVICE_PORT"),
		MongoURL:    os.Getenv("MONGODB_URI"),
		PostgresURL: os.Getenv("POSTGRES_URL"),
		NatsURL:     os.Getenv("NATS_URL"),
		RateLimit:   rateLimit,
	}
}
