// Copyright 2025 The SEC Bot Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config resolves the process configuration from the environment.
// Credentials are validated once at startup: a missing or effectively empty
// secret is a configuration error that prevents the agent from being
// constructed at all, not a per-turn failure.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/plexfin/secbot/octagon"
)

// Default endpoint and model for the reasoning capability. The decision
// model is reached through Gemini's OpenAI-compatible surface.
const (
	DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"
	DefaultModel         = "gemini-1.5-pro-latest"
)

// Config carries everything needed to build the agent.
type Config struct {
	// GoogleAPIKey authenticates the reasoning capability.
	GoogleAPIKey string

	// OctagonAPIKey authenticates the research-tool gateway.
	OctagonAPIKey string

	// Base URLs and reasoning model name, all overridable by environment.
	GeminiBaseURL  string
	OctagonBaseURL string
	Model          string
}

// Load reads and validates the configuration from the environment.
//
// Secrets are sometimes pasted into .env files with surrounding quote
// characters; those are stripped before validation, and a value that is
// empty after stripping counts as absent.
func Load() (*Config, error) {
	googleKey, err := requireSecret("GOOGLE_API_KEY")
	if err != nil {
		return nil, err
	}
	octagonKey, err := requireSecret("OCTAGON_API_KEY")
	if err != nil {
		return nil, err
	}

	return &Config{
		GoogleAPIKey:   googleKey,
		OctagonAPIKey:  octagonKey,
		GeminiBaseURL:  envOr("GEMINI_API_BASE_URL", DefaultGeminiBaseURL),
		OctagonBaseURL: envOr("OCTAGON_API_BASE_URL", octagon.DefaultBaseURL),
		Model:          envOr("SECBOT_MODEL", DefaultModel),
	}, nil
}

// StripQuotes removes accidental wrapping quote characters from a secret.
// A value wrapped in matching quotes is treated identically to the
// unwrapped value.
func StripQuotes(value string) string {
	return strings.Trim(value, `"'`)
}

func requireSecret(name string) (string, error) {
	raw, ok := os.LookupEnv(name)
	if !ok || raw == "" {
		return "", fmt.Errorf("%s is not configured", name)
	}
	value := StripQuotes(raw)
	if value == "" {
		return "", fmt.Errorf("%s is empty after stripping quotes", name)
	}
	return value, nil
}

func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
