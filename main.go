package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"dropship-invoicer/app"
)

func main() {
	// Load .env file in development (ignores error if file doesn't exist)
	// In production, variables should be set directly
	if os.Getenv("ENV") != "production" {
		if err := godotenv.Overload(".env"); err != nil {
			log.Printf("Warning: .env file not found, using system environment variables")
		}
	}

	if err := app.Run(context.Background()); err != nil {
		os.Exit(1)
	}
}
