package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/abhisek/finzo/cmd"
)

func main() {
	// Optional .env for API keys and the rewards service URL.
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
