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

package agents

import "context"

// Decision is what the decision model produces for a turn: either a request
// to invoke a single tool, or a direct final answer for out-of-scope queries.
type Decision struct {
	// ToolName is the selected tool. Empty for the direct-answer branch.
	ToolName string

	// CallID is the model's identifier for the tool call, when it has one.
	// The runner synthesizes an identifier if it is empty.
	CallID string

	// Prompt is the free-text input to forward to the selected tool.
	Prompt string

	// FinalText is the direct answer when no tool applies, or the model's
	// rendering of the scratchpad on the second pass of a turn.
	FinalText string
}

// IsToolCall reports whether this is the invoke branch of the decision.
func (d *Decision) IsToolCall() bool {
	return d.ToolName != ""
}

// ToolResult is the scratchpad: the output of the turn's single tool call,
// re-presented to the model so it can emit the turn's final text.
type ToolResult struct {
	// CallID ties the result back to the model's tool call.
	CallID string

	// ToolName and Prompt echo the decision that produced the result.
	ToolName string
	Prompt   string

	// Output is the tool's formatted answer, verbatim.
	Output string
}

// DecisionParams is the full input for one decision-model call.
type DecisionParams struct {
	// The system directive to use.
	Instructions string

	// The tool catalog, in specificity order.
	Tools []ResearchTool

	// The conversation so far. The model only reads it.
	Conversation []Turn

	// The new user question.
	Question string

	// Scratchpad is nil on the first pass of a turn. On the second pass it
	// carries the tool result the model must emit verbatim.
	Scratchpad *ToolResult
}

// DecisionModel is the narrow boundary around the reasoning capability.
//
// Implementations must satisfy the routing contract: pick exactly one tool
// whose description best matches the question, or answer directly when no
// tool applies. The agent core never depends on anything beyond this
// interface, so the control flow stays testable with a deterministic stub.
type DecisionModel interface {
	GetDecision(ctx context.Context, params DecisionParams) (*Decision, error)
}
