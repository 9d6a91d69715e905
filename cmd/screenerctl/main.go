// Command screenerctl is the operator CLI for the screener gateway: schema
// migrations, routing-table inspection and screen statistics.
package main

import (
	"os"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
