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
	"errors"
	"log/slog"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/openai/openai-go/v2/packages/param"
	"github.com/openai/openai-go/v2/shared/constant"
)

// OpenAIDecisionModel implements DecisionModel on top of any
// OpenAI-compatible Chat Completions endpoint. The original deployment
// points it at Gemini's OpenAI-compatible surface.
type OpenAIDecisionModel struct {
	model  openai.ChatModel
	client openai.Client
}

// NewOpenAIDecisionModel creates a decision model for the given model name.
// An empty baseURL uses the default OpenAI endpoint.
func NewOpenAIDecisionModel(model, apiKey, baseURL string) OpenAIDecisionModel {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return OpenAIDecisionModel{
		model:  openai.ChatModel(model),
		client: openai.NewClient(opts...),
	}
}

func (m OpenAIDecisionModel) GetDecision(ctx context.Context, params DecisionParams) (*Decision, error) {
	messages, err := m.buildMessages(params)
	if err != nil {
		return nil, err
	}

	tools := make([]openai.ChatCompletionToolUnionParam, len(params.Tools))
	for i, tool := range params.Tools {
		tools[i] = tool.ToChatCompletionsTool()
	}

	Logger().Debug("calling decision model",
		slog.String("model", string(m.model)),
		slog.Int("messages", len(messages)),
		slog.Int("tools", len(tools)),
	)

	response, err := m.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    m.model,
		Messages: messages,
		Tools:    tools,
		// One tool per turn: the runner never fans out.
		ParallelToolCalls: param.NewOpt(false),
	})
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return nil, UpstreamAPIErrorf("decision model call failed with status %d: %v", apiErr.StatusCode, err)
		}
		return nil, UpstreamAPIErrorf("decision model call failed: %v", err)
	}

	if len(response.Choices) == 0 {
		return nil, NewModelBehaviorError("decision model returned no choices")
	}
	message := response.Choices[0].Message

	if len(message.ToolCalls) > 1 {
		Logger().Warn("decision model requested multiple tool calls, keeping the first",
			slog.Int("count", len(message.ToolCalls)))
	}
	if len(message.ToolCalls) > 0 {
		toolCall := message.ToolCalls[0]
		var args ToolCallArgs
		if err := json.Unmarshal([]byte(toolCall.Function.Arguments), &args); err != nil {
			return nil, ModelBehaviorErrorf(
				"malformed arguments for tool %s: %v. Got output '%s'",
				toolCall.Function.Name, err, toolCall.Function.Arguments,
			)
		}
		if args.Prompt == "" {
			// Some models put the whole question in place of structured args.
			args.Prompt = params.Question
		}
		return &Decision{
			ToolName: toolCall.Function.Name,
			CallID:   toolCall.ID,
			Prompt:   args.Prompt,
		}, nil
	}

	if message.Content != "" {
		return &Decision{FinalText: message.Content}, nil
	}

	return nil, ModelBehaviorErrorf(
		"decision model produced neither a tool call nor text. Got output '%s'",
		message.RawJSON(),
	)
}

// buildMessages maps the conversation and scratchpad into Chat Completions
// wire messages. The scratchpad, when present, is replayed as the assistant's
// own tool call followed by the tool result, so the model sees the full
// invocation it must relay.
func (m OpenAIDecisionModel) buildMessages(params DecisionParams) ([]openai.ChatCompletionMessageParamUnion, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(params.Conversation)+4)
	messages = append(messages, openai.SystemMessage(params.Instructions))

	for i, turn := range params.Conversation {
		switch turn.Role {
		case RoleUser:
			messages = append(messages, openai.UserMessage(turn.Content))
		case RoleAssistant:
			messages = append(messages, openai.AssistantMessage(turn.Content))
		default:
			return nil, UserErrorf("conversation turn %d has unknown role %q", i, turn.Role)
		}
	}

	messages = append(messages, openai.UserMessage(params.Question))

	if scratchpad := params.Scratchpad; scratchpad != nil {
		arguments, err := json.Marshal(ToolCallArgs{Prompt: scratchpad.Prompt})
		if err != nil {
			return nil, err
		}
		messages = append(messages,
			openai.ChatCompletionMessageParamUnion{
				OfAssistant: &openai.ChatCompletionAssistantMessageParam{
					ToolCalls: []openai.ChatCompletionMessageToolCallUnionParam{{
						OfFunction: &openai.ChatCompletionMessageFunctionToolCallParam{
							ID: scratchpad.CallID,
							Function: openai.ChatCompletionMessageFunctionToolCallFunctionParam{
								Name:      scratchpad.ToolName,
								Arguments: string(arguments),
							},
							Type: constant.ValueOf[constant.Function](),
						},
					}},
				},
			},
			openai.ChatCompletionMessageParamUnion{
				OfTool: &openai.ChatCompletionToolMessageParam{
					Content: openai.ChatCompletionToolMessageParamContentUnion{
						OfString: param.NewOpt(scratchpad.Output),
					},
					ToolCallID: scratchpad.CallID,
					Role:       constant.ValueOf[constant.Tool](),
				},
			},
		)
	}

	return messages, nil
}
