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


package render

import "errors"

var (
	// ErrNilOutput is returned when an output writer is not provided.
	ErrNilOutput = errors.New("output writer required")

	// ErrUnknownColumns is returned when a columns selection is not one of
	// all, none, version, or description.
	ErrUnknownColumns = errors.New("unknown columns selection")

	// ErrUnknownColorMode is returned when a color mode is not one of
	// auto, always, or never.
	ErrUnknownColorMode = errors.New("unknown color mode")

	// ErrUnknownColor is returned when a color name is not one of the
	// eight supported ANSI colors.
	ErrUnknownColor = errors.New("unknown color")
)
