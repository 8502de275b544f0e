// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GhostKey Labs

package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseClientFlags parses the ghostkey CLI configuration flags.
//
// Flags:
//
//	-rpc-url chain JSON-RPC endpoint
//	-package-id marketplace package id
//	-module-name marketplace module name
//	-approve-function access approval entry point
//	-publisher-url blob store write endpoint
//	-aggregator-url blob store read endpoint
//	-relay-url same-origin upload relay
//	-epochs blob storage duration in epochs
//	-blob-timeout blob store request timeout (e.g., "30s")
//	-identity-db local identity SQLite path
//	-faucet-url devnet faucet endpoint
//	-c/-config json file path with configs
func ParseClientFlags() *ClientConfig {
	var rpcURL, packageID, moduleName, approveFunction string
	var publisherURL, aggregatorURL, relayURL string
	var epochs int
	var blobTimeout time.Duration
	var identityDB string
	var faucetURL string
	var jsonConfigPath string

	flag.StringVar(&rpcURL, "rpc-url", "", "Chain JSON-RPC endpoint")
	flag.StringVar(&packageID, "package-id", "", "Marketplace package id")
	flag.StringVar(&moduleName, "module-name", "", "Marketplace module name")
	flag.StringVar(&approveFunction, "approve-function", "", "Access approval entry point")
	flag.StringVar(&publisherURL, "publisher-url", "", "Blob store write endpoint")
	flag.StringVar(&aggregatorURL, "aggregator-url", "", "Blob store read endpoint")
	flag.StringVar(&relayURL, "relay-url", "", "Same-origin upload relay")
	flag.IntVar(&epochs, "epochs", 0, "Blob storage duration in epochs")
	flag.DurationVar(&blobTimeout, "blob-timeout", 0, "Blob store request timeout (e.g., 30s)")
	flag.StringVar(&identityDB, "identity-db", "", "Local identity SQLite path")
	flag.StringVar(&faucetURL, "faucet-url", "", "Devnet faucet endpoint")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	flag.Parse()

	return &ClientConfig{
		Chain: Chain{
			RPCURL:          rpcURL,
			PackageID:       packageID,
			ModuleName:      moduleName,
			ApproveFunction: approveFunction,
		},
		Blob: Blob{
			PublisherURL:   publisherURL,
			AggregatorURL:  aggregatorURL,
			RelayURL:       relayURL,
			Epochs:         epochs,
			RequestTimeout: blobTimeout,
		},
		Identity: Identity{
			DBPath: identityDB,
		},
		Faucet: Faucet{
			URL: faucetURL,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// ParseRelayFlags parses the relay server configuration flags.
//
// Flags:
//
//	-a relay listen address in format [host]:[port]
//	-publisher-url upstream blob store write endpoint
//	-epochs blob storage duration in epochs
//	-request-timeout inbound request timeout (e.g., "30s")
//	-c/-config json file path with configs
func ParseRelayFlags() *RelayConfig {
	var listenAddress NetAddress
	var publisherURL string
	var epochs int
	var requestTimeout time.Duration
	var jsonConfigPath string

	flag.Var(&listenAddress, "a", "Net address host:port")
	flag.StringVar(&publisherURL, "publisher-url", "", "Upstream blob store write endpoint")
	flag.IntVar(&epochs, "epochs", 0, "Blob storage duration in epochs")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	flag.Parse()

	return &RelayConfig{
		Server: Server{
			HTTPAddress:    listenAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Blob: Blob{
			PublisherURL: publisherURL,
			Epochs:       epochs,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
