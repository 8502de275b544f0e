// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GhostKey Labs

package main

import (
	"flag"
	"fmt"

	"github.com/ghostkey-labs/go-ghostkey/internal/client"
	"github.com/ghostkey-labs/go-ghostkey/internal/config"
	"github.com/ghostkey-labs/go-ghostkey/internal/logger"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewClientLogger("client")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	// Transaction signing lives with the wallet integration; the CLI runs
	// read-only until one is plugged in here.
	app, err := client.NewApp(cfg, nil, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(flag.Args()); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
