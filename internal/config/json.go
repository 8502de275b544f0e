// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GhostKey Labs

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type clientJSONConfig struct {
	Chain struct {
		RPCURL          string `json:"rpc_url"`
		PackageID       string `json:"package_id"`
		ModuleName      string `json:"module_name"`
		ApproveFunction string `json:"approve_function"`
	} `json:"chain,omitempty"`

	Blob struct {
		PublisherURL   string   `json:"publisher_url"`
		AggregatorURL  string   `json:"aggregator_url"`
		RelayURL       string   `json:"relay_url"`
		Epochs         int      `json:"epochs"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"blob,omitempty"`

	Identity struct {
		DBPath string `json:"db_path"`
	} `json:"identity,omitempty"`

	Faucet struct {
		URL string `json:"url"`
	} `json:"faucet,omitempty"`
}

type relayJSONConfig struct {
	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Blob struct {
		PublisherURL string `json:"publisher_url"`
		Epochs       int    `json:"epochs"`
	} `json:"blob,omitempty"`
}

func parseClientJSON(jsonFilePath string) (*ClientConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg clientJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &ClientConfig{
		Chain: Chain{
			RPCURL:          jsonCfg.Chain.RPCURL,
			PackageID:       jsonCfg.Chain.PackageID,
			ModuleName:      jsonCfg.Chain.ModuleName,
			ApproveFunction: jsonCfg.Chain.ApproveFunction,
		},
		Blob: Blob{
			PublisherURL:   jsonCfg.Blob.PublisherURL,
			AggregatorURL:  jsonCfg.Blob.AggregatorURL,
			RelayURL:       jsonCfg.Blob.RelayURL,
			Epochs:         jsonCfg.Blob.Epochs,
			RequestTimeout: time.Duration(jsonCfg.Blob.RequestTimeout),
		},
		Identity: Identity{
			DBPath: jsonCfg.Identity.DBPath,
		},
		Faucet: Faucet{
			URL: jsonCfg.Faucet.URL,
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

func parseRelayJSON(jsonFilePath string) (*RelayConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg relayJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &RelayConfig{
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Blob: Blob{
			PublisherURL: jsonCfg.Blob.PublisherURL,
			Epochs:       jsonCfg.Blob.Epochs,
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
