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


package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"

	"github.com/poiesic/nps"
	"github.com/poiesic/nps/cache"
	"github.com/poiesic/nps/render"
	"github.com/poiesic/nps/source"
)

const version = "0.3.0"

// levelTrace is the fourth -d step. It sits below slog.LevelDebug so
// every record passes the handler.
const levelTrace = slog.LevelDebug - 4

const (
	defaultCacheFolderName       = ".nix-package-search"
	defaultCacheFileName         = "nps.cache"
	defaultExperimentalCacheFile = "nps.experimental.cache"
)

const appDescription = `List up to three columns, the latter two being optional:
PACKAGE_NAME  [PACKAGE_VERSION]  [PACKAGE_DESCRIPTION]

Matches are sorted by type. Show 'exact' matches first, then 'direct'
matches, and finally 'indirect' matches.

   exact     SEARCH_TERM (in PACKAGE_NAME column)
   direct    SEARCH_TERMbar (in PACKAGE_NAME column)
   indirect  fooSEARCH_TERMbar (in any column)`

const configOptionsText = `CONFIGURATION

nps can be configured with environment variables. You can set these in
the configuration file of your shell, e.g. .bashrc/.zshrc

NIX_PACKAGE_SEARCH_EXPERIMENTAL
  Use the experimental 'nix search' command.
  It pulls information from the nix flake registries instead of nix
  channels. This is useful if no channels are in use, or channels are
  not updated regularly.
    [default: {DEFAULT_EXPERIMENTAL}]
    [possible values: true, false]

NIX_PACKAGE_SEARCH_FLIP
  Flip the order of matches? By default the most relevant matches appear
  on top. Flipping moves them to the bottom, which can be easier to read
  with long output.
    [default: {DEFAULT_FLIP}]
    [possible values: true, false]

NIX_PACKAGE_SEARCH_CACHE_FOLDER
  In which folder is the cache located?
    [default: {DEFAULT_CACHE_FOLDER}]
    [possible values: path]

NIX_PACKAGE_SEARCH_CACHE_FILE
  Name of the cache file
    [default: {DEFAULT_CACHE_FILE}]
    [possible values: filename]

NIX_PACKAGE_SEARCH_EXPERIMENTAL_CACHE_FILE
  Name of the experimental cache file
    [default: {DEFAULT_EXPERIMENTAL_CACHE_FILE}]
    [possible values: filename]

NIX_PACKAGE_SEARCH_COLUMNS
  Choose columns to show: PACKAGE_NAME plus any of PACKAGE_VERSION or
  PACKAGE_DESCRIPTION
    [default: {DEFAULT_COLUMNS}]
    [possible values: all, none, version, description]

NIX_PACKAGE_SEARCH_EXACT_COLOR
  Color of EXACT matches, match SEARCH_TERM in PACKAGE_NAME
    [default: {DEFAULT_EXACT_COLOR}]
    [possible values: black, blue, green, red, cyan, magenta, yellow, white]

NIX_PACKAGE_SEARCH_DIRECT_COLOR
  Color of DIRECT matches, match SEARCH_TERMbar in PACKAGE_NAME
    [default: {DEFAULT_DIRECT_COLOR}]
    [possible values: black, blue, green, red, cyan, magenta, yellow, white]

NIX_PACKAGE_SEARCH_INDIRECT_COLOR
  Color of INDIRECT matches, match fooSEARCH_TERMbar in any column
    [default: {DEFAULT_INDIRECT_COLOR}]
    [possible values: black, blue, green, red, cyan, magenta, yellow, white]

NIX_PACKAGE_SEARCH_COLOR_MODE
  Show search matches in color
  auto: Only show color if stdout is in terminal, suppress if e.g. piped
    [default: {DEFAULT_COLOR_MODE}]
    [possible values: always, never, auto]

NIX_PACKAGE_SEARCH_PRINT_SEPARATOR
  Separate match types with a newline?
    [default: {DEFAULT_PRINT_SEPARATOR}]
    [possible values: true, false]

NIX_PACKAGE_SEARCH_IGNORE_CASE
  Ignore capitalization for the search?
    [default: {DEFAULT_IGNORE_CASE}]
    [possible values: true, false]
`

func main() {
	if err := newApp().Run(os.Args); err != nil {
		// Errors carrying an exit code terminate inside Run; what
		// reaches this point are flag parsing failures.
		os.Exit(2)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:                   "nps",
		Usage:                  "Find SEARCH_TERM in available nix packages and sort results by relevance",
		ArgsUsage:              "[SEARCH_TERM]",
		Description:            appDescription,
		Version:                version,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "color",
				Aliases: []string{"c", "colour"},
				Usage:   "Highlight search matches in color (always, never, auto)",
				Value:   render.ColorAuto.String(),
				EnvVars: []string{"NIX_PACKAGE_SEARCH_COLOR_MODE"},
			},
			&cli.StringFlag{
				Name:    "columns",
				Aliases: []string{"C"},
				Usage:   "Choose columns to show (all, none, version, description)",
				Value:   render.ColumnsAll.String(),
				EnvVars: []string{"NIX_PACKAGE_SEARCH_COLUMNS"},
			},
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"d"},
				Usage:   "Turn debugging information on. Use up to four times for increased verbosity",
			},
			&cli.BoolFlag{
				Name:    "experimental",
				Aliases: []string{"e"},
				Usage:   "Use the experimental 'nix search' backend",
				EnvVars: []string{"NIX_PACKAGE_SEARCH_EXPERIMENTAL"},
			},
			&cli.BoolFlag{
				Name:    "flip",
				Aliases: []string{"f"},
				Usage:   "Flip the order of matches, moving the most relevant ones to the bottom",
				EnvVars: []string{"NIX_PACKAGE_SEARCH_FLIP"},
			},
			&cli.BoolFlag{
				Name:    "ignore-case",
				Aliases: []string{"i"},
				Usage:   "Ignore case",
				Value:   true,
				EnvVars: []string{"NIX_PACKAGE_SEARCH_IGNORE_CASE"},
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Suppress progress messages on stdout",
			},
			&cli.BoolFlag{
				Name:    "refresh",
				Aliases: []string{"r"},
				Usage:   "Refresh package cache (exits afterwards unless a search term is given)",
			},
			&cli.BoolFlag{
				Name:    "separate",
				Aliases: []string{"s"},
				Usage:   "Separate match types with a newline",
				Value:   true,
				EnvVars: []string{"NIX_PACKAGE_SEARCH_PRINT_SEPARATOR"},
			},
			&cli.BoolFlag{
				Name:  "show-config-options",
				Usage: "Show environment variable configuration options and exit",
			},
			&cli.StringFlag{
				Name:    "cache-folder",
				Hidden:  true,
				Value:   defaultCacheDir(),
				EnvVars: []string{"NIX_PACKAGE_SEARCH_CACHE_FOLDER"},
			},
			&cli.StringFlag{
				Name:    "cache-file",
				Hidden:  true,
				Value:   defaultCacheFileName,
				EnvVars: []string{"NIX_PACKAGE_SEARCH_CACHE_FILE"},
			},
			&cli.StringFlag{
				Name:    "experimental-cache-file",
				Hidden:  true,
				Value:   defaultExperimentalCacheFile,
				EnvVars: []string{"NIX_PACKAGE_SEARCH_EXPERIMENTAL_CACHE_FILE"},
			},
			&cli.StringFlag{
				Name:    "exact-color",
				Hidden:  true,
				Value:   string(render.ColorMagenta),
				EnvVars: []string{"NIX_PACKAGE_SEARCH_EXACT_COLOR"},
			},
			&cli.StringFlag{
				Name:    "direct-color",
				Hidden:  true,
				Value:   string(render.ColorBlue),
				EnvVars: []string{"NIX_PACKAGE_SEARCH_DIRECT_COLOR"},
			},
			&cli.StringFlag{
				Name:    "indirect-color",
				Hidden:  true,
				Value:   string(render.ColorGreen),
				EnvVars: []string{"NIX_PACKAGE_SEARCH_INDIRECT_COLOR"},
			},
		},
		Before: setupLogger,
		Action: searchAction,
	}
}

func searchAction(c *cli.Context) error {
	if c.Bool("show-config-options") {
		fmt.Fprint(c.App.Writer, configOptionsHelp())
		return nil
	}

	if c.NArg() > 1 {
		return cli.Exit(fmt.Sprintf("Unexpected argument %q, only one search term is allowed", c.Args().Get(1)), 2)
	}

	columns, err := render.ParseColumns(c.String("columns"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	colorMode, err := render.ParseColorMode(c.String("color"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	exactColor, err := render.ParseColor(c.String("exact-color"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	directColor, err := render.ParseColor(c.String("direct-color"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	indirectColor, err := render.ParseColor(c.String("indirect-color"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	cfg := render.NewConfig(
		render.WithColumns(columns),
		render.WithColorMode(colorMode),
		render.WithSeparate(c.Bool("separate")),
		render.WithFlip(c.Bool("flip")),
		render.WithIgnoreCase(c.Bool("ignore-case")),
		render.WithTierColors(exactColor, directColor, indirectColor),
	)
	renderer, err := render.NewRenderer(c.App.Writer, cfg)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	mode := source.ModeLegacy
	cacheFile := c.String("cache-file")
	if c.Bool("experimental") {
		mode = source.ModeExperimental
		cacheFile = c.String("experimental-cache-file")
	}

	store, err := cache.NewStore(c.String("cache-folder"), cacheFile)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	src, err := source.New(mode)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	notifier := &consoleNotifier{out: c.App.Writer, quiet: c.Bool("quiet")}
	searcher, err := nps.New(store, src, renderer, nps.WithNotifier(notifier))
	if err != nil {
		return cli.Exit(err.Error(), 4)
	}

	query := nps.Query{
		Term:       c.Args().First(),
		Refresh:    c.Bool("refresh"),
		IgnoreCase: c.Bool("ignore-case"),
	}

	switch err := searcher.Run(c.Context, query); {
	case err == nil:
		return nil
	case errors.Is(err, nps.ErrNoSearchTerm):
		return cli.Exit("No search term supplied. Provide SEARCH_TERM or use --refresh.", 3)
	default:
		slog.Error("run failed", "err", err)
		return cli.Exit("", 4)
	}
}

// setupLogger maps the -d count onto a slog level and installs the
// default logger: 0 error, 1 warn, 2 info, 3 debug, 4 trace.
func setupLogger(c *cli.Context) error {
	verbosity := c.Count("debug")
	if verbosity > 4 {
		return cli.Exit("Max log level is 4, e.g. -dddd", 1)
	}

	var level slog.Level
	switch verbosity {
	case 0:
		level = slog.LevelError
	case 1:
		level = slog.LevelWarn
	case 2:
		level = slog.LevelInfo
	case 3:
		level = slog.LevelDebug
	default:
		level = levelTrace
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}

func defaultCacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return defaultCacheFolderName
	}
	return filepath.Join(home, defaultCacheFolderName)
}

func configOptionsHelp() string {
	cfg := render.DefaultConfig()
	return strings.NewReplacer(
		"{DEFAULT_EXPERIMENTAL}", "false",
		"{DEFAULT_FLIP}", strconv.FormatBool(cfg.Flip),
		"{DEFAULT_CACHE_FOLDER}", defaultCacheDir(),
		"{DEFAULT_CACHE_FILE}", defaultCacheFileName,
		"{DEFAULT_EXPERIMENTAL_CACHE_FILE}", defaultExperimentalCacheFile,
		"{DEFAULT_COLUMNS}", cfg.Columns.String(),
		"{DEFAULT_EXACT_COLOR}", string(cfg.ExactColor),
		"{DEFAULT_DIRECT_COLOR}", string(cfg.DirectColor),
		"{DEFAULT_INDIRECT_COLOR}", string(cfg.IndirectColor),
		"{DEFAULT_COLOR_MODE}", cfg.Mode.String(),
		"{DEFAULT_PRINT_SEPARATOR}", strconv.FormatBool(cfg.Separate),
		"{DEFAULT_IGNORE_CASE}", strconv.FormatBool(cfg.IgnoreCase),
	).Replace(configOptionsText)
}

// consoleNotifier prints progress messages for a human reader. The
// quiet flag silences it; structured logging on stderr is unaffected.
type consoleNotifier struct {
	out   io.Writer
	quiet bool
}

var _ nps.Notifier = (*consoleNotifier)(nil)

func (n *consoleNotifier) RefreshStarted(mode source.Mode) {
	if n.quiet {
		return
	}
	fmt.Fprintf(n.out, "Refreshing the package cache with the %s backend. This may take a while.\n", mode)
}

func (n *consoleNotifier) RefreshDone(count int, path string) {
	if n.quiet {
		return
	}
	fmt.Fprintf(n.out, "Done. Cached info of %d packages in %s\n", count, path)
}

func (n *consoleNotifier) CacheStale(age time.Duration) {
	if n.quiet {
		return
	}
	fmt.Fprintf(n.out, "The package cache was last refreshed %s. Consider refreshing with -r.\n",
		humanize.Time(time.Now().Add(-age)))
}

func (n *consoleNotifier) Advice(message string) {
	if n.quiet {
		return
	}
	fmt.Fprintln(n.out, message)
}
