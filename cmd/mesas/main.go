package main

import (
	"log"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found; using environment variables")
	}
	if err := newRootCmd(newApp()).Execute(); err != nil {
		log.Fatalf("❌ %v", err)
	}
}
