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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSalvageRecoversEmbeddedOutput(t *testing.T) {
	err := NewModelBehaviorError("could not parse decision. Got output 'the raw answer'")

	salvaged, ok := SalvageRawOutput(err)
	require.True(t, ok)
	assert.Equal(t, SalvageNotice+"the raw answer", salvaged)
}

func TestSalvageHandlesMultilinePayloads(t *testing.T) {
	// The embedded fragment may span lines, like a full SOURCES block.
	payload := "CIK: 0000320193\n\nSOURCES:\n1. EDGAR: https://sec.gov"
	err := errors.New("parsing failed. Got output '" + payload + "'")

	salvaged, ok := SalvageRawOutput(err)
	require.True(t, ok)
	assert.Equal(t, SalvageNotice+payload, salvaged)
}

func TestSalvageFailsWithoutMarker(t *testing.T) {
	_, ok := SalvageRawOutput(errors.New("something unrelated went wrong"))
	assert.False(t, ok)

	_, ok = SalvageRawOutput(nil)
	assert.False(t, ok)
}
