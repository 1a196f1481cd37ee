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

// Package httpapi is the stateless web frontend around the agent runner.
// Conversation history travels with every request; the server holds no
// per-conversation state, so each request's turn runs independently on its
// own connection goroutine.
package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/plexfin/secbot/agents"
)

// ChatMessage is a single entry of the caller-supplied history.
// Type is "user" or "bot"; the timestamp is carried for the UI only and is
// never parsed here.
type ChatMessage struct {
	Type      string `json:"type"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// AskRequest is the request body for POST /ask.
type AskRequest struct {
	Input       string        `json:"input"`
	ChatHistory []ChatMessage `json:"chat_history"`
	UseMock     bool          `json:"use_mock"`
}

// AskResponse is the response body for POST /ask.
type AskResponse struct {
	Output string `json:"output"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

// mockOutput is returned verbatim when the caller sets use_mock: a canned
// answer for UI and integration smoke tests that must not require
// credentials or touch any backend.
const mockOutput = "This is a **mock** response for testing UI rendering. " +
	"It includes a fake source link: https://example.com/mock-source"

const agentUnavailableDetail = "Agent not initialized. Check server logs for configuration errors (e.g., API keys)."

// Server handles /ask and hosts the static single-page UI.
//
// A nil runner means the agent could not be constructed at startup; the
// server then answers 503 on every route instead of crashing, so the
// condition is visible to operators and callers alike.
type Server struct {
	runner    *agents.Runner
	staticDir string
	mux       *http.ServeMux
}

func NewServer(runner *agents.Runner, staticDir string) *Server {
	s := &Server{
		runner:    runner,
		staticDir: staticDir,
		mux:       http.NewServeMux(),
	}
	s.mux.HandleFunc("POST /ask", s.handleAsk)
	s.mux.HandleFunc("/", s.handleStatic)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	logger := agents.Logger().With(slog.String("request_id", requestID))

	var request AskRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	// The mock bypass works even when the agent is unavailable: it exists
	// precisely to exercise the UI without credentials.
	if request.UseMock {
		logger.Info("mock flag set, returning canned response")
		writeJSON(w, http.StatusOK, AskResponse{Output: mockOutput})
		return
	}

	if s.runner == nil {
		logger.Error("/ask called but the agent is not initialized")
		writeError(w, http.StatusServiceUnavailable, agentUnavailableDetail)
		return
	}

	conversation, err := historyToConversation(request.ChatHistory)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	logger.Info("processing question",
		slog.Int("question_length", len(request.Input)),
		slog.Int("history_turns", len(conversation)),
	)

	answer, err := s.runner.Run(r.Context(), request.Input, conversation)
	if err != nil {
		s.writeRunError(w, logger, err)
		return
	}

	logger.Info("turn completed", slog.Int("answer_length", len(answer)))
	writeJSON(w, http.StatusOK, AskResponse{Output: answer})
}

// writeRunError maps the runner's error taxonomy onto HTTP statuses. Every
// category yields a response; nothing is left dangling.
func (s *Server) writeRunError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var (
		modelErr    *agents.ModelBehaviorError
		upstreamErr *agents.UpstreamAPIError
		userErr     *agents.UserError
	)
	switch {
	case errors.As(err, &modelErr):
		logger.Error("decision output parsing failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "Agent Output Parsing Error: "+err.Error())
	case errors.As(err, &upstreamErr):
		logger.Error("upstream reasoning failure", slog.String("error", err.Error()))
		writeError(w, http.StatusBadGateway, "Upstream API Error (LLM/Agent): "+err.Error())
	case errors.As(err, &userErr):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		logger.Error("unexpected error during agent execution", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "Internal server error during agent execution: "+err.Error())
	}
}

// historyToConversation validates and converts wire history into turns.
// Unknown type values are rejected before they can reach the core.
func historyToConversation(history []ChatMessage) ([]agents.Turn, error) {
	conversation := make([]agents.Turn, 0, len(history))
	for i, message := range history {
		var role agents.Role
		switch message.Type {
		case "user":
			role = agents.RoleUser
		case "bot":
			role = agents.RoleAssistant
		default:
			return nil, agents.UserErrorf("chat_history[%d] has invalid type %q (want \"user\" or \"bot\")", i, message.Type)
		}
		conversation = append(conversation, agents.Turn{Role: role, Content: message.Content})
	}
	return conversation, nil
}

// handleStatic serves the built single-page UI: real files as-is, any other
// path falls back to index.html for client-side routing. Like /ask, the
// whole surface reports 503 while the agent is unavailable.
func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	if s.runner == nil {
		writeError(w, http.StatusServiceUnavailable, agentUnavailableDetail)
		return
	}
	if s.staticDir == "" {
		http.NotFound(w, r)
		return
	}

	name := strings.TrimPrefix(filepath.Clean("/"+r.URL.Path), "/")
	if name != "" {
		candidate := filepath.Join(s.staticDir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			http.ServeFile(w, r, candidate)
			return
		}
	}
	http.ServeFile(w, r, filepath.Join(s.staticDir, "index.html"))
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		agents.Logger().Error("failed to encode response", slog.String("error", err.Error()))
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}
