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

// Command secbot-server exposes the research agent over HTTP and hosts the
// web UI. Configuration errors do not crash the process: the server keeps
// running and answers 503 so the condition is observable.
package main

import (
	"flag"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/plexfin/secbot/agents"
	"github.com/plexfin/secbot/config"
	"github.com/plexfin/secbot/httpapi"
	"github.com/plexfin/secbot/octagon"
)

func main() {
	addr := flag.String("addr", ":8000", "listen address")
	staticDir := flag.String("static", "static", "directory with the built web UI")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	if *verbose {
		agents.EnableVerboseLogging()
	}
	logger := agents.Logger()

	_ = godotenv.Load()

	runner := buildRunner(logger)
	server := httpapi.NewServer(runner, *staticDir)

	logger.Info("listening", slog.String("addr", *addr))
	if err := http.ListenAndServe(*addr, server); err != nil {
		logger.Error("server stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// buildRunner constructs the agent, or returns nil when the configuration
// is unusable. The nil runner turns into 503 responses in httpapi.
func buildRunner(logger *slog.Logger) *agents.Runner {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("agent could not be initialized", slog.String("error", err.Error()))
		return nil
	}

	gateway := octagon.NewClient(cfg.OctagonAPIKey, cfg.OctagonBaseURL)
	registry, err := agents.NewRegistry(octagon.DefaultTools(gateway))
	if err != nil {
		logger.Error("agent could not be initialized", slog.String("error", err.Error()))
		return nil
	}

	model := agents.NewOpenAIDecisionModel(cfg.Model, cfg.GoogleAPIKey, cfg.GeminiBaseURL)
	logger.Info("agent initialized", slog.String("model", cfg.Model))
	return agents.NewRunner(model, registry)
}
