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

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
)

// DefaultInstructions is the system directive given to the decision model.
// It binds the model to the routing contract: one tool per turn, the tool's
// output verbatim as the final answer, direct answers only for out-of-scope
// queries.
const DefaultInstructions = "You are a specialized financial research assistant using Octagon tools. " +
	"Your ONLY task is to determine the single best Octagon tool for the user's query and execute it. " +
	"**The exact, complete, and unmodified string returned by that tool IS THE FINAL ANSWER.** " +
	"**DO NOT summarize, rephrase, interpret, or add any text to the tool's output.** " +
	"Return ONLY what the tool provides, including the full 'SOURCES:' section if present. " +
	"Do not use your own knowledge. If a query is outside the scope of the tools (e.g., 'hello'), " +
	"state that you can only answer financial/company questions. " +
	"Prefer the most specific applicable tool; use the deep research tool only when no specific tool fits."

// ToolUseBehavior configures how the runner turns a tool result into the
// turn's final answer.
type ToolUseBehavior interface {
	// FinalizeWithModel reports whether the tool result must be re-presented
	// to the decision model before the turn completes.
	FinalizeWithModel() bool
}

// RunModelAgain returns the default ToolUseBehavior: the tool result is fed
// back to the decision model, which emits it as the final text. The runner
// still enforces the pass-through contract on whatever the model returns.
func RunModelAgain() ToolUseBehavior { return runModelAgain{} }

type runModelAgain struct{}

func (runModelAgain) FinalizeWithModel() bool { return true }

// StopOnFirstTool returns a ToolUseBehavior which uses the output of the
// tool call directly as the final answer. The model does not process the
// result, which makes the pass-through contract structural.
func StopOnFirstTool() ToolUseBehavior { return stopOnFirstTool{} }

type stopOnFirstTool struct{}

func (stopOnFirstTool) FinalizeWithModel() bool { return false }

// Runner routes one question to at most one research tool and returns the
// turn's final answer.
//
// A turn moves through: deciding, then either invoking-and-answering or a
// direct answer. There is no loop or re-planning; this is a one-shot router.
// Runners hold no per-turn state, so a single Runner may serve concurrent
// turns as long as each call owns its conversation slice.
type Runner struct {
	Model    DecisionModel
	Registry *Registry

	// Instructions overrides DefaultInstructions when non-empty.
	Instructions string

	// ToolUseBehavior defaults to RunModelAgain when nil.
	ToolUseBehavior ToolUseBehavior
}

func NewRunner(model DecisionModel, registry *Registry) *Runner {
	return &Runner{Model: model, Registry: registry}
}

func (r *Runner) instructions() string {
	if r.Instructions != "" {
		return r.Instructions
	}
	return DefaultInstructions
}

// Run processes one turn. Tool execution failures come back as ordinary
// answers (the invoker is total); a malformed model output is salvaged when
// its raw text is recoverable; everything else is reported as an error of
// the corresponding category, never swallowed.
func (r *Runner) Run(ctx context.Context, question string, conversation []Turn) (string, error) {
	if err := ValidateConversation(conversation); err != nil {
		return "", err
	}

	decision, err := r.Model.GetDecision(ctx, DecisionParams{
		Instructions: r.instructions(),
		Tools:        r.Registry.List(),
		Conversation: conversation,
		Question:     question,
	})
	if err != nil {
		return r.salvageOrFail(err)
	}

	if !decision.IsToolCall() {
		Logger().Debug("direct answer", slog.Int("length", len(decision.FinalText)))
		return decision.FinalText, nil
	}

	tool, err := r.Registry.Lookup(decision.ToolName)
	if err != nil {
		return r.salvageOrFail(ModelBehaviorErrorf("decision names an unregistered tool: %v", err))
	}

	Logger().Info("invoking tool",
		slog.String("tool", tool.Name),
		slog.String("prompt", decision.Prompt),
	)

	// The single tool invocation of the turn. Invoke is total: transport and
	// auth failures arrive here as textual results.
	answer := tool.Invoke(ctx, decision.Prompt)

	behavior := r.ToolUseBehavior
	if behavior == nil {
		behavior = RunModelAgain()
	}
	if !behavior.FinalizeWithModel() {
		return answer, nil
	}

	callID := decision.CallID
	if callID == "" {
		callID = "call_" + uuid.NewString()
	}

	final, err := r.Model.GetDecision(ctx, DecisionParams{
		Instructions: r.instructions(),
		Tools:        r.Registry.List(),
		Conversation: conversation,
		Question:     question,
		Scratchpad: &ToolResult{
			CallID:   callID,
			ToolName: tool.Name,
			Prompt:   decision.Prompt,
			Output:   answer,
		},
	})
	switch {
	case err != nil:
		// The scratchpad already holds the turn's real answer, so a failure
		// while finalizing is recoverable: return the tool output itself.
		Logger().Warn("finalizing call failed, returning tool output",
			slog.String("tool", tool.Name),
			slog.String("error", err.Error()),
		)
		return answer, nil
	case final.IsToolCall():
		// At most one invocation per turn. A second requested call is not
		// executed; the first tool's output stands as the answer.
		Logger().Warn("model requested a second tool call, ignoring",
			slog.String("tool", final.ToolName))
		return answer, nil
	case final.FinalText != answer:
		// Pass-through contract: the final text must be byte-identical to
		// the tool output. Divergence is a model contract violation; the
		// runner recovers by returning the tool output.
		Logger().Warn("model altered the tool output, restoring it",
			slog.Int("model_length", len(final.FinalText)),
			slog.Int("tool_length", len(answer)),
		)
		return answer, nil
	default:
		return final.FinalText, nil
	}
}

// salvageOrFail applies the output-parsing recovery: model-behavior failures
// whose diagnostics embed the raw output are converted into answers; all
// other errors propagate.
func (r *Runner) salvageOrFail(err error) (string, error) {
	var modelErr *ModelBehaviorError
	if !errors.As(err, &modelErr) {
		return "", err
	}
	if salvaged, ok := SalvageRawOutput(err); ok {
		Logger().Warn("salvaged raw output from malformed decision",
			slog.Int("length", len(salvaged)))
		return salvaged, nil
	}
	return "", err
}
