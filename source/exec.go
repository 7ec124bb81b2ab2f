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


package source

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// Mode selects which listing backend a Source queries.
type Mode int

const (
	// ModeLegacy lists packages through the channel-based nix-env.
	ModeLegacy Mode = iota + 1
	// ModeExperimental lists packages through the flake-registry nix search.
	ModeExperimental
)

// String returns the mode name used in logs and messages.
func (m Mode) String() string {
	switch m {
	case ModeLegacy:
		return "legacy"
	case ModeExperimental:
		return "experimental"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// runFunc executes a command and returns its stdout. Tests replace it
// to avoid spawning nix.
type runFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

// CommandSource is the exec-backed Source. It shells out to the nix
// listing command for its mode and normalizes the output to cache
// lines.
type CommandSource struct {
	mode   Mode
	logger *slog.Logger
	run    runFunc
}

var _ Source = (*CommandSource)(nil)

// Option configures a CommandSource.
type Option func(*CommandSource) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *CommandSource) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// New creates a Source for the given mode.
//
// Returns the Source interface (not *CommandSource) to keep callers
// decoupled from the exec-based implementation.
func New(mode Mode, opts ...Option) (Source, error) {
	if mode != ModeLegacy && mode != ModeExperimental {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, int(mode))
	}

	s := &CommandSource{
		mode:   mode,
		logger: slog.Default().With("component", "listing-source"),
		run:    runCommand,
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Mode reports which listing backend this source queries.
func (s *CommandSource) Mode() Mode {
	return s.mode
}

// ProduceListing runs the listing command for the configured mode and
// returns the normalized cache lines joined by newlines.
func (s *CommandSource) ProduceListing(ctx context.Context) (string, error) {
	name, args := s.commandLine()
	s.logger.Debug("running listing command", "mode", s.mode.String(), "command", name, "args", args)

	out, err := s.run(ctx, name, args...)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrListingCommand, name, err)
	}

	var lines []string
	switch s.mode {
	case ModeLegacy:
		lines = ParseLegacyListing(string(out))
	case ModeExperimental:
		lines, err = ParseRegistryListing(out)
		if err != nil {
			return "", err
		}
	}

	s.logger.Debug("listing produced", "mode", s.mode.String(), "records", len(lines))
	return strings.Join(lines, "\n"), nil
}

func (s *CommandSource) commandLine() (string, []string) {
	if s.mode == ModeExperimental {
		return "nix", []string{"search", "nixpkgs", "^", "--json"}
	}
	return "nix-env", []string{"-qaP", "--description"}
}

// runCommand executes the listing command, keeping stderr out of the
// listing text. The registry backend writes progress noise to stderr
// on success, so stderr only surfaces through the error path.
func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		if msg := firstLine(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%w: %s", err, msg)
		}
		return nil, err
	}
	return out, nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[:idx]
	}
	return s
}
