package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

func Config(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("Warning: .env file not found, reading from system environment variables")
	}

	return os.Getenv(key)
}

// Location loads the single process-wide timezone (TIME_ZONE, an IANA name).
// It is resolved once in main and passed into the scheduling service rather
// than looked up ambiently by the core.
func Location() *time.Location {
	name := Config("TIME_ZONE")
	if name == "" {
		name = "Europe/Berlin"
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Fatalf("🔥 Invalid TIME_ZONE %q: %v", name, err)
	}
	return loc
}
