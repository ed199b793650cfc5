package initializers

import (
	"log"

	"github.com/joho/godotenv"
)

// LoadEnv pulls in a local .env file when present. Deployed environments
// set real environment variables instead, so a missing file is fine.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}
}
