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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubTool(name string) ResearchTool {
	return ResearchTool{
		Name:        name,
		Description: "stub " + name,
		Invoke:      func(context.Context, string) string { return name + " output" },
	}
}

func TestRegistryPreservesOrder(t *testing.T) {
	// The catalog order is the specificity order shown to the model.
	registry, err := NewRegistry([]ResearchTool{
		stubTool("filings"), stubTool("transcripts"), stubTool("deep_research"),
	})
	require.NoError(t, err)

	var names []string
	for _, tool := range registry.List() {
		names = append(names, tool.Name)
	}
	assert.Equal(t, []string{"filings", "transcripts", "deep_research"}, names)
}

func TestRegistryLookup(t *testing.T) {
	registry, err := NewRegistry([]ResearchTool{stubTool("filings")})
	require.NoError(t, err)

	tool, err := registry.Lookup("filings")
	require.NoError(t, err)
	assert.Equal(t, "filings", tool.Name)

	_, err = registry.Lookup("nope")
	require.Error(t, err)
	var userErr *UserError
	assert.ErrorAs(t, err, &userErr)
}

func TestRegistryRejectsDuplicateNames(t *testing.T) {
	_, err := NewRegistry([]ResearchTool{stubTool("filings"), stubTool("filings")})
	require.ErrorContains(t, err, `duplicate tool name "filings"`)
}

func TestRegistryRejectsInvalidDescriptors(t *testing.T) {
	_, err := NewRegistry([]ResearchTool{stubTool("")})
	require.ErrorContains(t, err, "empty name")

	_, err = NewRegistry([]ResearchTool{{Name: "broken", Description: "no invoke"}})
	require.ErrorContains(t, err, "no invoke function")
}

func TestRegistryListReturnsACopy(t *testing.T) {
	registry, err := NewRegistry([]ResearchTool{stubTool("filings")})
	require.NoError(t, err)

	list := registry.List()
	list[0].Name = "mutated"

	tool, err := registry.Lookup("filings")
	require.NoError(t, err)
	assert.Equal(t, "filings", tool.Name)
}
