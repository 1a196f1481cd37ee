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

// Package agentstesting provides deterministic test doubles for the agent
// core.
package agentstesting

import (
	"context"

	"github.com/plexfin/secbot/agents"
)

// FakeModelTurnOutput is one scripted reply of the fake model: either a
// decision or an error.
type FakeModelTurnOutput struct {
	Value *agents.Decision
	Error error
}

// FakeDecisionModel is a scripted agents.DecisionModel. Each GetDecision
// call consumes the next queued output and records the parameters it was
// called with, so tests can assert on routing inputs and call counts.
type FakeDecisionModel struct {
	TurnOutputs []FakeModelTurnOutput
	CallParams  []agents.DecisionParams
}

func NewFakeDecisionModel(outputs ...FakeModelTurnOutput) *FakeDecisionModel {
	return &FakeDecisionModel{TurnOutputs: outputs}
}

// SetNextOutput queues one more scripted reply.
func (m *FakeDecisionModel) SetNextOutput(output FakeModelTurnOutput) {
	m.TurnOutputs = append(m.TurnOutputs, output)
}

// Calls reports how many times GetDecision has been invoked.
func (m *FakeDecisionModel) Calls() int {
	return len(m.CallParams)
}

func (m *FakeDecisionModel) GetDecision(_ context.Context, params agents.DecisionParams) (*agents.Decision, error) {
	m.CallParams = append(m.CallParams, params)

	if len(m.TurnOutputs) == 0 {
		return &agents.Decision{FinalText: ""}, nil
	}
	output := m.TurnOutputs[0]
	m.TurnOutputs = m.TurnOutputs[1:]

	if output.Error != nil {
		return nil, output.Error
	}
	return output.Value, nil
}

// ToolCallOutput scripts an invoke-branch decision.
func ToolCallOutput(toolName, prompt string) FakeModelTurnOutput {
	return FakeModelTurnOutput{Value: &agents.Decision{ToolName: toolName, Prompt: prompt}}
}

// FinalTextOutput scripts a direct-answer decision.
func FinalTextOutput(text string) FakeModelTurnOutput {
	return FakeModelTurnOutput{Value: &agents.Decision{FinalText: text}}
}

// ErrorOutput scripts a model failure.
func ErrorOutput(err error) FakeModelTurnOutput {
	return FakeModelTurnOutput{Error: err}
}

// GetFunctionTool returns a stub research tool that records its prompts and
// always answers with the given value.
func GetFunctionTool(name, returnValue string) (agents.ResearchTool, *[]string) {
	prompts := new([]string)
	return agents.ResearchTool{
		Name:        name,
		Description: "stub tool " + name,
		Invoke: func(_ context.Context, prompt string) string {
			*prompts = append(*prompts, prompt)
			return returnValue
		},
	}, prompts
}
