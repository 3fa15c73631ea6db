// ABOUTME: Entry point for planctl CLI
// ABOUTME: Command-line tool for migration plan validation in pipelines

package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/clusterops/migration-planner/logger"
)

func main() {
	// .env is optional; environment variables win when both are set
	_ = godotenv.Load()
	logger.Init()

	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
