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
	"encoding/json"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/packages/param"
)

// ResearchTool is a descriptor for one external research capability.
//
// The Description is the only signal the decision model uses for tool
// selection, so it must unambiguously state the entity scope the tool covers,
// the question types it answers, and a worked example.
type ResearchTool struct {
	// The name of the tool, as shown to the model.
	Name string

	// A description of the tool, as shown to the model.
	Description string

	// Invoke executes the tool with a free-text prompt and returns the
	// formatted answer. It is a total function: all failures are reported
	// as textual results, never as errors.
	Invoke func(ctx context.Context, prompt string) string
}

// ToolCallArgs is the argument payload the model supplies when it selects a
// tool: the fully-qualified research prompt to forward.
type ToolCallArgs struct {
	Prompt string `json:"prompt"`
}

var toolParamsJSONSchema = reflectToolParamsSchema()

// reflectToolParamsSchema builds the JSON schema for ToolCallArgs.
// Every research tool shares the same single-string argument shape.
func reflectToolParamsSchema() map[string]any {
	reflector := &jsonschema.Reflector{
		ExpandedStruct:            true,
		AllowAdditionalProperties: false,
	}
	schema := reflector.Reflect(&ToolCallArgs{})

	schemaBytes, _ := json.Marshal(schema)
	var schemaMap map[string]any
	json.Unmarshal(schemaBytes, &schemaMap)
	return schemaMap
}

// ToChatCompletionsTool converts the descriptor to a function-tool
// declaration for the Chat Completions API.
func (t ResearchTool) ToChatCompletionsTool() openai.ChatCompletionToolUnionParam {
	var description param.Opt[string]
	if t.Description != "" {
		description = param.NewOpt(t.Description)
	}
	return openai.ChatCompletionFunctionTool(
		openai.FunctionDefinitionParam{
			Name:        t.Name,
			Description: description,
			Parameters:  toolParamsJSONSchema,
		},
	)
}
