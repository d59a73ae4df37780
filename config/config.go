package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI      string
	MongoDatabase string
	// CodeAttempts bounds the generate-and-retry loop for reservation
	// codes before admission gives up with an internal fault.
	CodeAttempts int
}

func LoadConfig() *Config {
	// A missing .env file is fine, plain environment variables still apply.
	_ = godotenv.Load()

	attempts := 1000
	if attemptsStr := os.Getenv("RESERVATION_CODE_ATTEMPTS"); attemptsStr != "" {
		if parsed, err := strconv.Atoi(attemptsStr); err == nil && parsed > 0 {
			attempts = parsed
		}
	}

	uri := os.Getenv("MONGO_DB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	database := os.Getenv("MONGO_DB_NAME")
	if database == "" {
		database = "rental_bookings"
	}

	return &Config{
		MongoURI:      uri,
		MongoDatabase: database,
		CodeAttempts:  attempts,
	}
}
