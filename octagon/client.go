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

// Package octagon talks to the Octagon research gateway. Each research agent
// behind the gateway is addressed like a model through an OpenAI-compatible
// Responses API and answers with analysis text plus source annotations.
package octagon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/openai/openai-go/v2/packages/param"
	"github.com/openai/openai-go/v2/responses"
	"github.com/openai/openai-go/v2/shared"

	"github.com/plexfin/secbot/agents"
)

// DefaultBaseURL is the public Octagon API gateway.
const DefaultBaseURL = "https://api-gateway.octagonagents.com/v1"

// noAnalysisText substitutes for a response without any content block, so an
// empty answer is never propagated silently.
const noAnalysisText = "No analysis text found in the response."

// Client invokes Octagon research agents. Invoke is a total function: every
// failure is converted to a textual result, so errors never escape to the
// agent runner.
type Client struct {
	apiKey string
	client openai.Client
}

// NewClient creates a gateway client. The apiKey is expected to be already
// validated and quote-stripped by the configuration layer; an empty key is
// tolerated here and reported per invocation.
func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		apiKey: apiKey,
		client: openai.NewClient(
			option.WithAPIKey(apiKey),
			option.WithBaseURL(baseURL),
		),
	}
}

// Invoke runs one research agent with the given free-text prompt and returns
// the formatted answer: analysis text followed by the SOURCES block.
func (c *Client) Invoke(ctx context.Context, model, prompt string) string {
	errorMessage := fmt.Sprintf("Error executing Octagon tool %s", model)

	if c.apiKey == "" {
		agents.Logger().Error("octagon API key missing", slog.String("model", model))
		return errorMessage + ": The OCTAGON_API_KEY is not configured on the server."
	}

	agents.Logger().Debug("calling octagon agent",
		slog.String("model", model),
		slog.String("prompt", prompt),
	)

	response, err := c.client.Responses.New(ctx, responses.ResponseNewParams{
		Model:        shared.ResponsesModel(model),
		Instructions: param.NewOpt(instructionsFor(model)),
		Input:        responses.ResponseNewParamsInputUnion{OfString: param.NewOpt(prompt)},
	})
	if err != nil {
		return formatInvocationError(errorMessage, model, err)
	}

	analysisText := noAnalysisText
	var sourcesText string

	content, ok := firstContent(response)
	if ok {
		if content.Text != "" {
			analysisText = content.Text
		}
		sourcesText = formatSources(parseAnnotations(content.RawJSON()))
	} else {
		sourcesText = formatSources(nil)
	}

	agents.Logger().Debug("octagon agent result",
		slog.String("model", model),
		slog.Int("analysis_length", len(analysisText)),
		slog.Int("sources_length", len(sourcesText)),
	)

	return analysisText + sourcesText
}

// firstContent returns the first content block of the response, if any.
func firstContent(response *responses.Response) (responses.ResponseOutputMessageContentUnion, bool) {
	for _, item := range response.Output {
		if len(item.Content) > 0 {
			return item.Content[0], true
		}
	}
	return responses.ResponseOutputMessageContentUnion{}, false
}

// formatInvocationError converts a transport or API failure into the textual
// result the caller receives, keeping status code and body for triage.
func formatInvocationError(errorMessage, model string, err error) string {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		agents.Logger().Error("octagon API error",
			slog.String("model", model),
			slog.Int("status", apiErr.StatusCode),
			slog.String("error", err.Error()),
		)
		return fmt.Sprintf("%s: API Error - Status Code: %d, Response Body: %s. Please check server logs.",
			errorMessage, apiErr.StatusCode, apiErr.RawJSON())
	}
	agents.Logger().Error("octagon call failed",
		slog.String("model", model),
		slog.String("error", err.Error()),
	)
	return fmt.Sprintf("%s: Unexpected error occurred - %v. Please check server logs.", errorMessage, err)
}

// instructionsFor builds the per-agent instruction string by keyword-matching
// the agent name against known categories. A static table, not a classifier.
func instructionsFor(model string) string {
	switch {
	case strings.Contains(model, "sec"):
		return "Analyze SEC filings based on the input and extract requested data with source citations."
	case strings.Contains(model, "transcript"):
		return "Analyze earnings call transcripts based on the input and extract requested information with source citations."
	default:
		return "Analyze the provided input and return the relevant information with source citations."
	}
}
