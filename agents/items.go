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

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is a single question/answer exchange entry. Turns are immutable once
// created; the caller owns the conversation slice and the agent only reads it.
type Turn struct {
	Role    Role
	Content string
}

// ValidateConversation checks that every turn carries a known role.
// Frontends call this before a conversation reaches the runner.
func ValidateConversation(conversation []Turn) error {
	for i, turn := range conversation {
		switch turn.Role {
		case RoleUser, RoleAssistant:
		default:
			return UserErrorf("conversation turn %d has unknown role %q", i, turn.Role)
		}
	}
	return nil
}
