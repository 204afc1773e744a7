package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	"github.com/dsandstrom/linkedin"
)

func main() {
	// Load LINKEDIN_ACCESS_TOKEN from a local .env file if present.
	_ = godotenv.Load()

	token := os.Getenv("LINKEDIN_ACCESS_TOKEN")
	if token == "" {
		log.Fatal("LINKEDIN_ACCESS_TOKEN environment variable is required")
	}

	// Route structured logs to stderr; adjust the level as needed.
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: slog.LevelDebug}))

	client, err := linkedin.NewClient(&linkedin.Config{
		AccessToken: token,
		UserAgent:   "linkedin-example/1.0",
		Logger:      logger,
	})
	if err != nil {
		log.Fatalf("Failed to create client: %v", err)
	}

	ctx := context.Background()

	profile, err := client.Profile(ctx)
	if err != nil {
		log.Fatalf("Failed to fetch profile: %v", err)
	}
	fmt.Printf("Authenticated as %s %s (id %s)\n", profile.FirstName, profile.LastName, profile.ID)
	if profile.PictureURL != "" {
		fmt.Printf("Picture: %s\n", profile.PictureURL)
	}

	email, err := client.EmailAddress(ctx)
	if err != nil {
		log.Printf("Failed to fetch email: %v", err)
	} else {
		fmt.Printf("Email: %s\n", email)
	}
}
