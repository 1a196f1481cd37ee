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

package octagon

import (
	"strings"

	"github.com/tidwall/gjson"
)

// sourcesHeader opens the deterministic SOURCES block appended to every
// answer. Golden-output tests depend on this exact formatting.
const sourcesHeader = "\n\nSOURCES:"

// noSourcesLine is appended when an answer carries no annotations.
const noSourcesLine = "\nNo sources provided by the agent."

// annotation is one source citation attached to an answer. The gateway uses
// its own annotation fields (order, name, url) on top of the standard
// response shape, so values are kept as extracted strings with the
// original's fallbacks.
type annotation struct {
	Order string
	Name  string
	URL   string
}

// parseAnnotations extracts the gateway's annotations from the raw JSON of a
// response content block. The extra fields are not part of the standard
// Responses schema, which is why this reads the raw payload instead of the
// typed union.
func parseAnnotations(rawContent string) []annotation {
	var result []annotation
	gjson.Get(rawContent, "annotations").ForEach(func(_, value gjson.Result) bool {
		a := annotation{
			Order: "?",
			Name:  "Unknown Source",
			URL:   "No URL Provided",
		}
		if v := value.Get("order"); v.Exists() {
			a.Order = v.String()
		}
		if v := value.Get("name"); v.Exists() {
			a.Name = v.String()
		} else if v := value.Get("title"); v.Exists() && v.String() != "" {
			// Standard url_citation annotations label the source as "title".
			a.Name = v.String()
		}
		if v := value.Get("url"); v.Exists() {
			a.URL = v.String()
		}
		result = append(result, a)
		return true
	})
	return result
}

// formatSources renders the SOURCES block: one numbered line per annotation
// in input order, or the literal no-sources line.
func formatSources(annotations []annotation) string {
	var b strings.Builder
	b.WriteString(sourcesHeader)
	if len(annotations) == 0 {
		b.WriteString(noSourcesLine)
		return b.String()
	}
	for _, a := range annotations {
		b.WriteString("\n")
		b.WriteString(a.Order)
		b.WriteString(". ")
		b.WriteString(a.Name)
		b.WriteString(": ")
		b.WriteString(a.URL)
	}
	return b.String()
}
