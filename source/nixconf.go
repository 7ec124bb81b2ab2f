package source

import (
	"os"
	"path/filepath"
	"strings"
)

// Backend advice messages. Tests and the CLI match on the leading
// sentence, so it stays stable.
const (
	adviceFlakes = "Your system seems to be based on flakes. " +
		"Consider refreshing with the experimental backend (-e)."
	adviceChannels = "Your system seems to be based on channels. " +
		"Consider refreshing without the experimental backend."
)

// DetectMismatch compares the selected listing mode against the
// system's nix configuration and returns advice when they disagree.
// The empty string means the setup matches or no configuration was
// readable.
func DetectMismatch(mode Mode) string {
	return detectMismatch(mode, confPaths())
}

func detectMismatch(mode Mode, paths []string) string {
	enabled, known := flakesEnabled(paths)
	if !known {
		return ""
	}
	switch {
	case mode == ModeLegacy && enabled:
		return adviceFlakes
	case mode == ModeExperimental && !enabled:
		return adviceChannels
	}
	return ""
}

// confPaths lists the nix.conf locations probed for the
// experimental-features setting, most specific first.
func confPaths() []string {
	var paths []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "nix", "nix.conf"))
	} else if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "nix", "nix.conf"))
	}
	return append(paths, "/etc/nix/nix.conf")
}

// flakesEnabled reports whether the first readable nix.conf that sets
// experimental-features enables flakes. known is false when no probed
// file declares the setting.
func flakesEnabled(paths []string) (enabled, known bool) {
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		for _, line := range strings.Split(string(content), "\n") {
			line = strings.TrimSpace(line)
			if strings.HasPrefix(line, "#") {
				continue
			}
			key, value, ok := strings.Cut(line, "=")
			if !ok || strings.TrimSpace(key) != "experimental-features" {
				continue
			}
			for _, feature := range strings.Fields(value) {
				if feature == "flakes" {
					return true, true
				}
			}
			return false, true
		}
	}
	return false, false
}
