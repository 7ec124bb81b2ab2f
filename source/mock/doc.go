// Package mock provides a test double for the source.Source interface.
//
// The mock allows tests to exercise refresh and orchestration paths
// without spawning the nix listing commands, with controlled listings
// and injectable failures.
//
// # Usage in Tests
//
//	// Canned listing
//	src := mock.NewMockSource(
//	    "nixos.neovim\t0.9.0\tVim text editor fork",
//	    "nixos.neovim-gtk\t0.9.0\tGUI for neovim",
//	)
//
//	// Failure injection
//	src.ProduceListingFunc = func(ctx context.Context) (string, error) {
//	    return "", errors.New("command exploded")
//	}
//
//	// Check call counts
//	count := src.CallCount()
package mock
