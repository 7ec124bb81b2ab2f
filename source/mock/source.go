// Copyright 2025 Poiesic Systems
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


package mock

import (
	"context"
	"strings"

	"github.com/poiesic/nps/source"
)

// MockSource is a test double for source.Source.
// It allows custom behavior injection via function fields.
type MockSource struct {
	// ProduceListingFunc is called by ProduceListing if set.
	// If nil, the canned Lines are returned.
	ProduceListingFunc func(ctx context.Context) (string, error)

	// Lines is the canned listing returned by default.
	Lines []string

	// ModeValue is the backend mode to report.
	// Defaults to source.ModeLegacy when unset.
	ModeValue source.Mode

	callCount int
}

var _ source.Source = (*MockSource)(nil)

// NewMockSource creates a mock source returning the given cache lines.
// Note: Returns concrete type to allow test assertions and behavior
// injection via the function fields.
func NewMockSource(lines ...string) *MockSource {
	return &MockSource{Lines: lines}
}

// Mode reports the configured backend mode.
func (m *MockSource) Mode() source.Mode {
	if m.ModeValue == 0 {
		return source.ModeLegacy
	}
	return m.ModeValue
}

// ProduceListing returns the canned listing or delegates to
// ProduceListingFunc when set.
func (m *MockSource) ProduceListing(ctx context.Context) (string, error) {
	m.callCount++

	if m.ProduceListingFunc != nil {
		return m.ProduceListingFunc(ctx)
	}
	return strings.Join(m.Lines, "\n"), nil
}

// CallCount returns the number of ProduceListing invocations.
func (m *MockSource) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockSource) Reset() {
	m.callCount = 0
	m.ProduceListingFunc = nil
}
