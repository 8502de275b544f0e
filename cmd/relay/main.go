// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GhostKey Labs

package main

import (
	"fmt"

	"github.com/ghostkey-labs/go-ghostkey/internal/config"
	handlerhttp "github.com/ghostkey-labs/go-ghostkey/internal/handler/http"
	"github.com/ghostkey-labs/go-ghostkey/internal/logger"
	"github.com/ghostkey-labs/go-ghostkey/internal/server"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("relay")
	cfg, err := config.GetRelayConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	handlers := handlerhttp.NewHandler(
		cfg.Blob.PublisherURL,
		cfg.Blob.Epochs,
		cfg.Server.RequestTimeout,
		log,
	)

	srv, err := server.NewServer(cfg.Server.HTTPAddress, handlers.Init(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
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
