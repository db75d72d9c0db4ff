package main

import (
	"os"

	"github.com/medscribe/medscribe/internal/cli"
	"github.com/medscribe/medscribe/pkg/utils"
)

func main() {
	// Find env file
	envFile := ".env"
	if os.Getenv("ENV_FILE") != "" {
		envFile = os.Getenv("ENV_FILE")
	}

	// Load global config
	cfg := utils.NewConfigFromEnv(envFile)

	rootCmd := cli.NewRootCmd(&cli.Dependencies{Config: cfg})
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
