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

package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plexfin/secbot/agents"
	"github.com/plexfin/secbot/agentstesting"
)

func newTestServer(t *testing.T, model agents.DecisionModel, tools ...agents.ResearchTool) *Server {
	t.Helper()
	registry, err := agents.NewRegistry(tools)
	require.NoError(t, err)
	return NewServer(agents.NewRunner(model, registry), "")
}

func postAsk(t *testing.T, server *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	request := httptest.NewRequest(http.MethodPost, "/ask", strings.NewReader(body))
	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, request)
	return recorder
}

func decodeOutput(t *testing.T, recorder *httptest.ResponseRecorder) string {
	t.Helper()
	var response AskResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	return response.Output
}

func decodeDetail(t *testing.T, recorder *httptest.ResponseRecorder) string {
	t.Helper()
	var response errorResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	return response.Detail
}

func TestAskPassesToolOutputThrough(t *testing.T) {
	const toolOutput = "Answer text.\n\nSOURCES:\n1. EDGAR: https://sec.gov"
	tool, _ := agentstesting.GetFunctionTool("octagon_sec_agent", toolOutput)
	model := agentstesting.NewFakeDecisionModel(
		agentstesting.ToolCallOutput("octagon_sec_agent", "question"),
		agentstesting.FinalTextOutput(toolOutput),
	)
	server := newTestServer(t, model, tool)

	recorder := postAsk(t, server, `{"input": "What is the CIK for Apple Inc?"}`)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, toolOutput, decodeOutput(t, recorder))
}

func TestAskForwardsHistoryToRunner(t *testing.T) {
	tool, _ := agentstesting.GetFunctionTool("octagon_sec_agent", "unused")
	model := agentstesting.NewFakeDecisionModel(
		agentstesting.FinalTextOutput("follow-up answer"),
	)
	server := newTestServer(t, model, tool)

	recorder := postAsk(t, server, `{
		"input": "and for Microsoft?",
		"chat_history": [
			{"type": "user", "content": "What is the CIK for Apple Inc?", "timestamp": "2025-01-01T00:00:00Z"},
			{"type": "bot", "content": "The CIK is 0000320193."}
		]
	}`)
	assert.Equal(t, http.StatusOK, recorder.Code)

	require.Equal(t, 1, model.Calls())
	conversation := model.CallParams[0].Conversation
	require.Len(t, conversation, 2)
	assert.Equal(t, agents.RoleUser, conversation[0].Role)
	assert.Equal(t, "What is the CIK for Apple Inc?", conversation[0].Content)
	assert.Equal(t, agents.RoleAssistant, conversation[1].Role)
	assert.Equal(t, "and for Microsoft?", model.CallParams[0].Question)
}

func TestAskMockBypassesAgent(t *testing.T) {
	// No runner at all: the mock path must not need one.
	server := NewServer(nil, "")

	recorder := postAsk(t, server, `{"input": "anything", "use_mock": true}`)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, mockOutput, decodeOutput(t, recorder))
}

func TestAskAgentUnavailable(t *testing.T) {
	server := NewServer(nil, "")

	recorder := postAsk(t, server, `{"input": "anything"}`)
	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	assert.Equal(t, agentUnavailableDetail, decodeDetail(t, recorder))
}

func TestAskInvalidBody(t *testing.T) {
	tool, _ := agentstesting.GetFunctionTool("octagon_sec_agent", "unused")
	server := newTestServer(t, agentstesting.NewFakeDecisionModel(), tool)

	recorder := postAsk(t, server, `{"input": `)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, decodeDetail(t, recorder), "invalid request body")
}

func TestAskInvalidHistoryRole(t *testing.T) {
	tool, _ := agentstesting.GetFunctionTool("octagon_sec_agent", "unused")
	model := agentstesting.NewFakeDecisionModel()
	server := newTestServer(t, model, tool)

	recorder := postAsk(t, server, `{
		"input": "question",
		"chat_history": [{"type": "system", "content": "nope"}]
	}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, decodeDetail(t, recorder), "invalid type")
	assert.Equal(t, 0, model.Calls())
}

func TestAskErrorStatusMapping(t *testing.T) {
	testCases := []struct {
		name       string
		err        error
		wantStatus int
		wantDetail string
	}{
		{
			name:       "model behavior",
			err:        agents.NewModelBehaviorError("unparseable decision"),
			wantStatus: http.StatusInternalServerError,
			wantDetail: "Agent Output Parsing Error: unparseable decision",
		},
		{
			name:       "upstream API",
			err:        agents.NewUpstreamAPIError("quota exceeded"),
			wantStatus: http.StatusBadGateway,
			wantDetail: "Upstream API Error (LLM/Agent): quota exceeded",
		},
		{
			name:       "unexpected",
			err:        os.ErrDeadlineExceeded,
			wantStatus: http.StatusInternalServerError,
			wantDetail: "Internal server error during agent execution: " + os.ErrDeadlineExceeded.Error(),
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tool, _ := agentstesting.GetFunctionTool("octagon_sec_agent", "unused")
			model := agentstesting.NewFakeDecisionModel(agentstesting.ErrorOutput(tc.err))
			server := newTestServer(t, model, tool)

			recorder := postAsk(t, server, `{"input": "question"}`)
			assert.Equal(t, tc.wantStatus, recorder.Code)
			assert.Equal(t, tc.wantDetail, decodeDetail(t, recorder))
		})
	}
}

func TestAskSalvageReturnsOK(t *testing.T) {
	// A salvageable parsing failure is an answer, not an error.
	tool, _ := agentstesting.GetFunctionTool("octagon_sec_agent", "unused")
	model := agentstesting.NewFakeDecisionModel(
		agentstesting.ErrorOutput(agents.NewModelBehaviorError("bad decision. Got output 'raw text'")),
	)
	server := newTestServer(t, model, tool)

	recorder := postAsk(t, server, `{"input": "question"}`)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, agents.SalvageNotice+"raw text", decodeOutput(t, recorder))
}

func TestStaticServesFilesWithIndexFallback(t *testing.T) {
	staticDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "index.html"), []byte("<html>app</html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "app.js"), []byte("console.log(1)"), 0o644))

	tool, _ := agentstesting.GetFunctionTool("octagon_sec_agent", "unused")
	registry, err := agents.NewRegistry([]agents.ResearchTool{tool})
	require.NoError(t, err)
	server := NewServer(agents.NewRunner(agentstesting.NewFakeDecisionModel(), registry), staticDir)

	for path, want := range map[string]string{
		"/":               "<html>app</html>",
		"/app.js":         "console.log(1)",
		"/some/spa/route": "<html>app</html>",
	} {
		recorder := httptest.NewRecorder()
		server.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, recorder.Code, "path %s", path)
		assert.Equal(t, want, recorder.Body.String(), "path %s", path)
	}
}

func TestStaticAgentUnavailable(t *testing.T) {
	server := NewServer(nil, t.TempDir())

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	assert.Equal(t, agentUnavailableDetail, decodeDetail(t, recorder))
}
