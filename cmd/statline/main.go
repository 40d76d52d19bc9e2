package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/statlinehq/statline/internal/cli"
)

func main() {
	// A missing .env file is fine; the environment still applies.
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
