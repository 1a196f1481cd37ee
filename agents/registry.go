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

import "slices"

// Registry is the fixed, ordered catalog of research tools.
//
// The order is meaningful: the most specific tools come first and broad
// fallback tools last, which is how the decision model is told to break
// ties between overlapping descriptions. The set is built once at startup
// and never mutated afterwards.
type Registry struct {
	tools  []ResearchTool
	byName map[string]int
}

// NewRegistry builds a registry from a fixed source list.
// It returns an error if a tool has an empty name, a missing Invoke
// function, or a name that is already taken.
func NewRegistry(tools []ResearchTool) (*Registry, error) {
	r := &Registry{
		tools:  slices.Clone(tools),
		byName: make(map[string]int, len(tools)),
	}
	for i, tool := range r.tools {
		if tool.Name == "" {
			return nil, UserErrorf("tool at index %d has an empty name", i)
		}
		if tool.Invoke == nil {
			return nil, UserErrorf("tool %q has no invoke function", tool.Name)
		}
		if _, ok := r.byName[tool.Name]; ok {
			return nil, UserErrorf("duplicate tool name %q", tool.Name)
		}
		r.byName[tool.Name] = i
	}
	return r, nil
}

// List returns the descriptors in registration order.
func (r *Registry) List() []ResearchTool {
	return slices.Clone(r.tools)
}

// Lookup returns the descriptor with the given name.
func (r *Registry) Lookup(name string) (ResearchTool, error) {
	i, ok := r.byName[name]
	if !ok {
		return ResearchTool{}, UserErrorf("unknown tool %q", name)
	}
	return r.tools[i], nil
}
