package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/nfetools/conciliador/internal/cli"
)

func main() {
	// Optional .env for DATABASE_URL / OPENAI_API_KEY; absence is fine.
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
