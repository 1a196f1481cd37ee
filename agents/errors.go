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

import "fmt"

// ModelBehaviorError is returned when the model does something unexpected,
// e.g. calling a tool that doesn't exist, or providing malformed output.
type ModelBehaviorError struct {
	Message string
}

func (err *ModelBehaviorError) Error() string { return err.Message }

func NewModelBehaviorError(message string) *ModelBehaviorError {
	return &ModelBehaviorError{Message: message}
}

func ModelBehaviorErrorf(format string, a ...any) *ModelBehaviorError {
	return &ModelBehaviorError{Message: fmt.Sprintf(format, a...)}
}

// UpstreamAPIError is returned when the reasoning backend itself fails,
// e.g. quota or auth problems. It is never used for research-tool failures,
// which are converted to textual results by the octagon client.
type UpstreamAPIError struct {
	Message string
}

func (err *UpstreamAPIError) Error() string { return err.Message }

func NewUpstreamAPIError(message string) *UpstreamAPIError {
	return &UpstreamAPIError{Message: message}
}

func UpstreamAPIErrorf(format string, a ...any) *UpstreamAPIError {
	return &UpstreamAPIError{Message: fmt.Sprintf(format, a...)}
}

// UserError is returned when the caller makes an error using the agent,
// e.g. supplying a conversation turn with an unknown role.
type UserError struct {
	Message string
}

func (err *UserError) Error() string { return err.Message }

func NewUserError(message string) *UserError {
	return &UserError{Message: message}
}

func UserErrorf(format string, a ...any) *UserError {
	return &UserError{Message: fmt.Sprintf(format, a...)}
}
