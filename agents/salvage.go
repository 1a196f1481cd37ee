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

import "regexp"

// SalvageNotice prefixes an answer recovered from a malformed model output.
const SalvageNotice = "Agent action failed parsing, but here's the raw response: "

// Malformed decision output embeds the raw model text after this marker.
var rawOutputPattern = regexp.MustCompile(`(?s)Got output '(.*)'`)

// SalvageRawOutput scans a decision-parsing failure for an embedded raw
// output fragment and, if one is found, returns it prefixed with
// SalvageNotice. The second return value reports whether anything was
// recoverable.
func SalvageRawOutput(err error) (string, bool) {
	if err == nil {
		return "", false
	}
	match := rawOutputPattern.FindStringSubmatch(err.Error())
	if match == nil {
		return "", false
	}
	return SalvageNotice + match[1], true
}
