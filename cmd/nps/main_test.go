package main

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/poiesic/nps/cache"
)

// testListing mirrors the shape of a small refreshed cache. Order
// matters: bucket contents keep the cache order.
var testListing = []string{
	"MyTestPackageName\t1.0.0\tTest package description",
	"MyTestPackageName1\t1.1.0\tAnother test package description",
	"MyTestPackageName2\t1.0.1\t",
	"MyTestPackageName3\t1.2.1\tMore test package description",
	"mytestpackageName3\t3.2.1\tMore test package description, now with MyTestPackageName",
	"MatchMyDescription\ta.b.c\tMyTestPackageName appears in my description",
	"MatchMyDescription1\t9.8.7\tAlso here MyTestPackageName appears in my description",
	"MatchMyDescription2\t9.8.7\tmytestpackageName appears in my description with different capitalization",
}

type appResult struct {
	stdout string
	stderr string
	code   int
	err    error
}

// runApp executes the full CLI against a buffer, capturing the exit
// code instead of terminating the test process.
func runApp(t *testing.T, args ...string) appResult {
	t.Helper()

	var result appResult
	var out, errOut bytes.Buffer

	prevExiter := cli.OsExiter
	prevErrWriter := cli.ErrWriter
	cli.OsExiter = func(code int) { result.code = code }
	cli.ErrWriter = &errOut
	defer func() {
		cli.OsExiter = prevExiter
		cli.ErrWriter = prevErrWriter
	}()

	app := newApp()
	app.Writer = &out

	result.err = app.Run(append([]string{"nps"}, args...))
	result.stdout = out.String()
	result.stderr = errOut.String()
	return result
}

func seedCacheDir(t *testing.T, file string, lines ...string) string {
	t.Helper()
	dir := t.TempDir()
	_, err := cache.Seed(dir, file, lines...)
	require.NoError(t, err)
	return dir
}

func stringFlag(t *testing.T, app *cli.App, name string) *cli.StringFlag {
	t.Helper()
	for _, flag := range app.Flags {
		if f, ok := flag.(*cli.StringFlag); ok && f.Name == name {
			return f
		}
	}
	t.Fatalf("string flag %q not found", name)
	return nil
}

func boolFlag(t *testing.T, app *cli.App, name string) *cli.BoolFlag {
	t.Helper()
	for _, flag := range app.Flags {
		if f, ok := flag.(*cli.BoolFlag); ok && f.Name == name {
			return f
		}
	}
	t.Fatalf("bool flag %q not found", name)
	return nil
}

func TestAppFlags(t *testing.T) {
	app := newApp()

	t.Run("color defaults to auto and has colour alias", func(t *testing.T) {
		flag := stringFlag(t, app, "color")
		assert.Equal(t, "auto", flag.Value)
		assert.Equal(t, []string{"c", "colour"}, flag.Aliases)
		assert.Equal(t, []string{"NIX_PACKAGE_SEARCH_COLOR_MODE"}, flag.EnvVars)
	})

	t.Run("columns defaults to all", func(t *testing.T) {
		flag := stringFlag(t, app, "columns")
		assert.Equal(t, "all", flag.Value)
		assert.Equal(t, []string{"C"}, flag.Aliases)
		assert.Equal(t, []string{"NIX_PACKAGE_SEARCH_COLUMNS"}, flag.EnvVars)
	})

	t.Run("ignore-case defaults to true", func(t *testing.T) {
		flag := boolFlag(t, app, "ignore-case")
		assert.True(t, flag.Value)
		assert.Equal(t, []string{"NIX_PACKAGE_SEARCH_IGNORE_CASE"}, flag.EnvVars)
	})

	t.Run("separate defaults to true", func(t *testing.T) {
		flag := boolFlag(t, app, "separate")
		assert.True(t, flag.Value)
		assert.Equal(t, []string{"NIX_PACKAGE_SEARCH_PRINT_SEPARATOR"}, flag.EnvVars)
	})

	t.Run("experimental defaults to false", func(t *testing.T) {
		flag := boolFlag(t, app, "experimental")
		assert.False(t, flag.Value)
		assert.Equal(t, []string{"NIX_PACKAGE_SEARCH_EXPERIMENTAL"}, flag.EnvVars)
	})

	t.Run("cache location flags are hidden", func(t *testing.T) {
		assert.True(t, stringFlag(t, app, "cache-folder").Hidden)
		assert.True(t, stringFlag(t, app, "cache-file").Hidden)
		assert.True(t, stringFlag(t, app, "experimental-cache-file").Hidden)
	})

	t.Run("cache file names have defaults", func(t *testing.T) {
		assert.Equal(t, "nps.cache", stringFlag(t, app, "cache-file").Value)
		assert.Equal(t, "nps.experimental.cache", stringFlag(t, app, "experimental-cache-file").Value)
	})

	t.Run("tier colors are hidden with defaults", func(t *testing.T) {
		exact := stringFlag(t, app, "exact-color")
		direct := stringFlag(t, app, "direct-color")
		indirect := stringFlag(t, app, "indirect-color")

		assert.True(t, exact.Hidden)
		assert.True(t, direct.Hidden)
		assert.True(t, indirect.Hidden)
		assert.Equal(t, "magenta", exact.Value)
		assert.Equal(t, "blue", direct.Value)
		assert.Equal(t, "green", indirect.Value)
	})

	t.Run("short options can be combined", func(t *testing.T) {
		assert.True(t, app.UseShortOptionHandling)
	})
}

func TestSearchOutput(t *testing.T) {
	t.Run("default order lists exact matches first", func(t *testing.T) {
		dir := seedCacheDir(t, "nps.cache", testListing...)

		expected := "MyTestPackageName    1.0.0  Test package description\n" +
			"\n" +
			"MyTestPackageName1   1.1.0  Another test package description\n" +
			"MyTestPackageName2   1.0.1  \n" +
			"MyTestPackageName3   1.2.1  More test package description\n" +
			"mytestpackageName3   3.2.1  More test package description, now with MyTestPackageName\n" +
			"\n" +
			"MatchMyDescription   a.b.c  MyTestPackageName appears in my description\n" +
			"MatchMyDescription1  9.8.7  Also here MyTestPackageName appears in my description\n" +
			"MatchMyDescription2  9.8.7  mytestpackageName appears in my description with different capitalization\n"

		result := runApp(t, "--cache-folder="+dir, "MyTestPackageName")
		require.NoError(t, result.err)
		assert.Zero(t, result.code)
		assert.Equal(t, expected, result.stdout)
	})

	t.Run("case sensitive search drops folded matches", func(t *testing.T) {
		dir := seedCacheDir(t, "nps.cache", testListing...)

		expected := "MyTestPackageName    1.0.0  Test package description\n" +
			"\n" +
			"MyTestPackageName1   1.1.0  Another test package description\n" +
			"MyTestPackageName2   1.0.1  \n" +
			"MyTestPackageName3   1.2.1  More test package description\n" +
			"\n" +
			"mytestpackageName3   3.2.1  More test package description, now with MyTestPackageName\n" +
			"MatchMyDescription   a.b.c  MyTestPackageName appears in my description\n" +
			"MatchMyDescription1  9.8.7  Also here MyTestPackageName appears in my description\n"

		result := runApp(t, "-i=false", "--cache-folder="+dir, "MyTestPackageName")
		require.NoError(t, result.err)
		assert.Equal(t, expected, result.stdout)
	})

	t.Run("flip moves exact matches to the bottom", func(t *testing.T) {
		dir := seedCacheDir(t, "nps.cache", testListing...)

		expected := "MatchMyDescription   a.b.c  MyTestPackageName appears in my description\n" +
			"MatchMyDescription1  9.8.7  Also here MyTestPackageName appears in my description\n" +
			"MatchMyDescription2  9.8.7  mytestpackageName appears in my description with different capitalization\n" +
			"\n" +
			"MyTestPackageName1   1.1.0  Another test package description\n" +
			"MyTestPackageName2   1.0.1  \n" +
			"MyTestPackageName3   1.2.1  More test package description\n" +
			"mytestpackageName3   3.2.1  More test package description, now with MyTestPackageName\n" +
			"\n" +
			"MyTestPackageName    1.0.0  Test package description\n"

		result := runApp(t, "-f", "--cache-folder="+dir, "MyTestPackageName")
		require.NoError(t, result.err)
		assert.Equal(t, expected, result.stdout)
	})

	t.Run("flip by environment variable", func(t *testing.T) {
		dir := seedCacheDir(t, "nps.cache", testListing...)
		t.Setenv("NIX_PACKAGE_SEARCH_FLIP", "true")

		result := runApp(t, "--cache-folder="+dir, "MyTestPackageName")
		require.NoError(t, result.err)
		assert.True(t, strings.HasPrefix(result.stdout, "MatchMyDescription   "))
		assert.True(t, strings.HasSuffix(result.stdout, "MyTestPackageName    1.0.0  Test package description\n"))
	})

	t.Run("experimental flag selects the experimental cache file", func(t *testing.T) {
		dir := seedCacheDir(t, "nps.experimental.cache", testListing...)

		result := runApp(t, "-e", "--cache-folder="+dir, "MyTestPackageName")
		require.NoError(t, result.err)
		assert.Contains(t, result.stdout, "MyTestPackageName    1.0.0  Test package description\n")
	})

	t.Run("columns none prints bare names", func(t *testing.T) {
		dir := seedCacheDir(t, "nps.cache", testListing...)

		expected := "MyTestPackageName\n" +
			"\n" +
			"MyTestPackageName1\n" +
			"MyTestPackageName2\n" +
			"MyTestPackageName3\n" +
			"mytestpackageName3\n" +
			"\n" +
			"MatchMyDescription\n" +
			"MatchMyDescription1\n" +
			"MatchMyDescription2\n"

		result := runApp(t, "--columns=none", "--cache-folder="+dir, "MyTestPackageName")
		require.NoError(t, result.err)
		assert.Equal(t, expected, result.stdout)
	})

	t.Run("columns version keeps the version column only", func(t *testing.T) {
		dir := seedCacheDir(t, "nps.cache", testListing...)

		result := runApp(t, "-C=version", "--cache-folder="+dir, "MyTestPackageName")
		require.NoError(t, result.err)
		assert.Contains(t, result.stdout, "MyTestPackageName    1.0.0\n")
		assert.NotContains(t, result.stdout, "Test package description")
	})

	t.Run("separator can be disabled", func(t *testing.T) {
		dir := seedCacheDir(t, "nps.cache", testListing...)

		result := runApp(t, "-s=false", "--cache-folder="+dir, "MyTestPackageName")
		require.NoError(t, result.err)
		assert.NotContains(t, result.stdout, "\n\n")
	})

	t.Run("separator disabled by environment variable", func(t *testing.T) {
		dir := seedCacheDir(t, "nps.cache", testListing...)
		t.Setenv("NIX_PACKAGE_SEARCH_PRINT_SEPARATOR", "false")

		result := runApp(t, "--cache-folder="+dir, "MyTestPackageName")
		require.NoError(t, result.err)
		assert.NotContains(t, result.stdout, "\n\n")
	})

	t.Run("forced color mode emits escape sequences", func(t *testing.T) {
		dir := seedCacheDir(t, "nps.cache", testListing...)

		result := runApp(t, "--color=always", "--cache-folder="+dir, "MyTestPackageName")
		require.NoError(t, result.err)
		assert.Contains(t, result.stdout, "\x1b[")
	})

	t.Run("piped output stays plain in auto mode", func(t *testing.T) {
		dir := seedCacheDir(t, "nps.cache", testListing...)

		result := runApp(t, "--cache-folder="+dir, "MyTestPackageName")
		require.NoError(t, result.err)
		assert.NotContains(t, result.stdout, "\x1b[")
	})

	t.Run("no matches prints nothing", func(t *testing.T) {
		dir := seedCacheDir(t, "nps.cache", testListing...)

		result := runApp(t, "--cache-folder="+dir, "nosuchpackage")
		require.NoError(t, result.err)
		assert.Empty(t, result.stdout)
	})
}

func TestStaleCacheNotice(t *testing.T) {
	backdate := func(t *testing.T, dir string) {
		t.Helper()
		old := time.Now().Add(-40 * 24 * time.Hour)
		require.NoError(t, os.Chtimes(filepath.Join(dir, "nps.cache"), old, old))
	}

	t.Run("old cache prints a refresh hint", func(t *testing.T) {
		dir := seedCacheDir(t, "nps.cache", testListing...)
		backdate(t, dir)

		result := runApp(t, "--cache-folder="+dir, "MyTestPackageName")
		require.NoError(t, result.err)
		assert.Contains(t, result.stdout, "Consider refreshing with -r.")
		assert.Contains(t, result.stdout, "MyTestPackageName    1.0.0")
	})

	t.Run("quiet suppresses the hint", func(t *testing.T) {
		dir := seedCacheDir(t, "nps.cache", testListing...)
		backdate(t, dir)

		result := runApp(t, "-q", "--cache-folder="+dir, "MyTestPackageName")
		require.NoError(t, result.err)
		assert.NotContains(t, result.stdout, "Consider refreshing")
		assert.Contains(t, result.stdout, "MyTestPackageName    1.0.0")
	})
}

func TestExitCodes(t *testing.T) {
	t.Run("missing search term", func(t *testing.T) {
		result := runApp(t)
		assert.Equal(t, 3, result.code)
		assert.Contains(t, result.stderr, "No search term supplied")
	})

	t.Run("too many debug flags", func(t *testing.T) {
		result := runApp(t, "-ddddd", "vim")
		assert.Equal(t, 1, result.code)
		assert.Contains(t, result.stderr, "Max log level is 4, e.g. -dddd")
	})

	t.Run("surplus arguments", func(t *testing.T) {
		result := runApp(t, "vim", "emacs")
		assert.Equal(t, 2, result.code)
		assert.Contains(t, result.stderr, "Unexpected argument")
	})

	t.Run("invalid color mode", func(t *testing.T) {
		result := runApp(t, "--color=sometimes", "vim")
		assert.Equal(t, 1, result.code)
	})

	t.Run("invalid columns selection", func(t *testing.T) {
		result := runApp(t, "--columns=wide", "vim")
		assert.Equal(t, 1, result.code)
	})

	t.Run("invalid tier color", func(t *testing.T) {
		result := runApp(t, "--exact-color=chartreuse", "vim")
		assert.Equal(t, 1, result.code)
	})

	t.Run("unknown flag is a usage error", func(t *testing.T) {
		result := runApp(t, "--bogus", "vim")
		require.Error(t, result.err)
		assert.Zero(t, result.code)
	})
}

func TestShowConfigOptions(t *testing.T) {
	result := runApp(t, "--show-config-options")
	require.NoError(t, result.err)
	assert.Zero(t, result.code)

	assert.Contains(t, result.stdout, "CONFIGURATION")
	assert.Contains(t, result.stdout, "NIX_PACKAGE_SEARCH_EXPERIMENTAL")
	assert.Contains(t, result.stdout, "NIX_PACKAGE_SEARCH_IGNORE_CASE")
	assert.Contains(t, result.stdout, "[default: magenta]")
	assert.Contains(t, result.stdout, "[default: all]")
	assert.Contains(t, result.stdout, "[default: auto]")
	assert.Contains(t, result.stdout, defaultCacheDir())
	assert.NotContains(t, result.stdout, "{DEFAULT_")
}

func TestHelpAndVersion(t *testing.T) {
	t.Run("help lists usage and verbosity hint", func(t *testing.T) {
		result := runApp(t, "--help")
		require.NoError(t, result.err)
		assert.Contains(t, result.stdout, "Find SEARCH_TERM in available nix packages and sort results by relevance")
		assert.Contains(t, result.stdout, "Use up to four times for increased verbosity")
		assert.Contains(t, result.stdout, "--experimental")
	})

	t.Run("version prints the release", func(t *testing.T) {
		result := runApp(t, "--version")
		require.NoError(t, result.err)
		assert.Contains(t, result.stdout, version)
	})
}

func TestSetupLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	t.Run("verbosity ladder", func(t *testing.T) {
		testCases := []struct {
			args    []string
			enabled slog.Level
			muted   slog.Level
		}{
			{[]string{"--show-config-options"}, slog.LevelError, slog.LevelWarn},
			{[]string{"-d", "--show-config-options"}, slog.LevelWarn, slog.LevelInfo},
			{[]string{"-dd", "--show-config-options"}, slog.LevelInfo, slog.LevelDebug},
			{[]string{"-ddd", "--show-config-options"}, slog.LevelDebug, levelTrace},
			{[]string{"-dddd", "--show-config-options"}, levelTrace, levelTrace - 1},
		}

		for _, tc := range testCases {
			t.Run(strings.Join(tc.args, " "), func(t *testing.T) {
				result := runApp(t, tc.args...)
				require.NoError(t, result.err)

				ctx := context.Background()
				assert.True(t, slog.Default().Enabled(ctx, tc.enabled))
				assert.False(t, slog.Default().Enabled(ctx, tc.muted))
			})
		}
	})

	t.Run("five or more is rejected", func(t *testing.T) {
		result := runApp(t, "-ddddd", "--show-config-options")
		assert.Equal(t, 1, result.code)
		assert.Contains(t, result.stderr, "Max log level is 4")
	})
}

func TestDefaultCacheDir(t *testing.T) {
	dir := defaultCacheDir()
	assert.True(t, strings.HasSuffix(dir, ".nix-package-search"))
}

func TestConsoleNotifierQuiet(t *testing.T) {
	var out bytes.Buffer
	notifier := &consoleNotifier{out: &out, quiet: true}

	notifier.RefreshStarted(1)
	notifier.RefreshDone(10, "/tmp/nps.cache")
	notifier.CacheStale(time.Hour)
	notifier.Advice("advice")

	assert.Empty(t, out.String())
}

func TestConsoleNotifierMessages(t *testing.T) {
	var out bytes.Buffer
	notifier := &consoleNotifier{out: &out}

	notifier.RefreshDone(43712, "/home/user/.nix-package-search/nps.cache")
	assert.Equal(t, "Done. Cached info of 43712 packages in /home/user/.nix-package-search/nps.cache\n", out.String())
}

func TestMain(m *testing.M) {
	// Run tests
	code := m.Run()
	os.Exit(code)
}
