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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAnnotations(t *testing.T) {
	raw := `{
		"type": "output_text",
		"text": "analysis",
		"annotations": [
			{"order": "1", "name": "10-K 2023", "url": "https://sec.gov/a"},
			{"order": 2, "title": "EDGAR", "url": "https://sec.gov/b"},
			{}
		]
	}`

	annotations := parseAnnotations(raw)
	assert.Equal(t, []annotation{
		{Order: "1", Name: "10-K 2023", URL: "https://sec.gov/a"},
		{Order: "2", Name: "EDGAR", URL: "https://sec.gov/b"},
		{Order: "?", Name: "Unknown Source", URL: "No URL Provided"},
	}, annotations)
}

func TestParseAnnotationsMissingOrMalformed(t *testing.T) {
	assert.Empty(t, parseAnnotations(`{"type": "output_text", "text": "analysis"}`))
	assert.Empty(t, parseAnnotations(`{"annotations": []}`))
	assert.Empty(t, parseAnnotations(`not json at all`))
}

func TestFormatSources(t *testing.T) {
	got := formatSources([]annotation{
		{Order: "1", Name: "10-K 2023", URL: "https://sec.gov/a"},
		{Order: "2", Name: "Transcript Q4", URL: "https://sec.gov/b"},
	})
	assert.Equal(t, "\n\nSOURCES:\n1. 10-K 2023: https://sec.gov/a\n2. Transcript Q4: https://sec.gov/b", got)
}

func TestFormatSourcesEmpty(t *testing.T) {
	want := "\n\nSOURCES:\nNo sources provided by the agent."
	assert.Equal(t, want, formatSources(nil))
	assert.Equal(t, want, formatSources([]annotation{}))
}
