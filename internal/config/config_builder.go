// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GhostKey Labs

package config

import (
	"errors"
	"fmt"

	"dario.cat/mergo"
)

type clientBuilder struct {
	configs []*ClientConfig
	err     error
}

func newClientBuilder() *clientBuilder {
	return &clientBuilder{
		configs: make([]*ClientConfig, 0, 4),
	}
}

func (b *clientBuilder) build() (*ClientConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", b.err)
	}

	config := new(ClientConfig)
	for _, cfg := range b.configs {
		if err := mergo.Merge(config, cfg); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	return config, config.validate()
}

func (b *clientBuilder) withEnv() *clientBuilder {
	envCfg := &ClientConfig{}
	if err := parseEnv(envCfg); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, envCfg)
	return b
}

func (b *clientBuilder) withFlags() *clientBuilder {
	b.configs = append(b.configs, ParseClientFlags())
	return b
}

func (b *clientBuilder) withJSON() *clientBuilder {
	var jsonPath string

	for _, cfg := range b.configs {
		if cfg.JSONFilePath != "" {
			jsonPath = cfg.JSONFilePath
		}
	}

	if jsonPath != "" {
		jsonCfg, err := parseClientJSON(jsonPath)
		if err != nil {
			b.err = errors.Join(b.err, err)
			return b
		}
		b.configs = append(b.configs, jsonCfg)
	}

	return b
}

type relayBuilder struct {
	configs []*RelayConfig
	err     error
}

func newRelayBuilder() *relayBuilder {
	return &relayBuilder{
		configs: make([]*RelayConfig, 0, 4),
	}
}

func (b *relayBuilder) build() (*RelayConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", b.err)
	}

	config := new(RelayConfig)
	for _, cfg := range b.configs {
		if err := mergo.Merge(config, cfg); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	return config, config.validate()
}

func (b *relayBuilder) withEnv() *relayBuilder {
	envCfg := &RelayConfig{}
	if err := parseEnv(envCfg); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, envCfg)
	return b
}

func (b *relayBuilder) withFlags() *relayBuilder {
	b.configs = append(b.configs, ParseRelayFlags())
	return b
}

func (b *relayBuilder) withJSON() *relayBuilder {
	var jsonPath string

	for _, cfg := range b.configs {
		if cfg.JSONFilePath != "" {
			jsonPath = cfg.JSONFilePath
		}
	}

	if jsonPath != "" {
		jsonCfg, err := parseRelayJSON(jsonPath)
		if err != nil {
			b.err = errors.Join(b.err, err)
			return b
		}
		b.configs = append(b.configs, jsonCfg)
	}

	return b
}
