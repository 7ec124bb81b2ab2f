package render

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/poiesic/nps/core"
	"github.com/poiesic/nps/search"
)

// Two spaces between columns.
const gutter = "  "

// Renderer writes classified matches as aligned, optionally colorized
// columns.
type Renderer struct {
	cfg    *Config
	out    io.Writer
	logger *slog.Logger

	exact    lipgloss.Style
	direct   lipgloss.Style
	indirect lipgloss.Style
}

// Option configures a Renderer.
type Option func(*Renderer) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRenderer creates a renderer that writes to out. A nil cfg means
// DefaultConfig().
func NewRenderer(out io.Writer, cfg *Config, opts ...Option) (*Renderer, error) {
	if out == nil {
		return nil, ErrNilOutput
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	r := &Renderer{
		cfg:    cfg,
		out:    out,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	lg := lipgloss.NewRenderer(out)
	lg.SetColorProfile(r.profile())
	r.exact = lg.NewStyle().Foreground(cfg.ExactColor.terminal()).Bold(true)
	r.direct = lg.NewStyle().Foreground(cfg.DirectColor.terminal()).Bold(true)
	r.indirect = lg.NewStyle().Foreground(cfg.IndirectColor.terminal()).Bold(true)

	return r, nil
}

// profile resolves the color mode to a termenv profile. Auto mode
// colorizes only when the output is a terminal.
func (r *Renderer) profile() termenv.Profile {
	switch r.cfg.Mode {
	case ColorAlways:
		return termenv.ANSI
	case ColorNever:
		return termenv.Ascii
	}

	if f, ok := r.out.(*os.File); ok {
		if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
			return termenv.ANSI
		}
	}
	return termenv.Ascii
}

// Render writes the matches tier by tier. Column widths are computed
// across every tier so lines align over the whole report, and a blank
// line separates consecutive printed tiers when Separate is set.
func (r *Renderer) Render(matches *search.MatchSet, term string) error {
	if matches == nil || matches.Empty() {
		return nil
	}

	tiers := []struct {
		records []core.PackageRecord
		style   lipgloss.Style
	}{
		{matches.Exact, r.exact},
		{matches.Direct, r.direct},
		{matches.Indirect, r.indirect},
	}
	if r.cfg.Flip {
		tiers[0], tiers[2] = tiers[2], tiers[0]
	}

	nameWidth, versionWidth := widths(matches)

	lines := 0
	wrote := false
	for _, tier := range tiers {
		if len(tier.records) == 0 {
			continue
		}
		if wrote && r.cfg.Separate {
			if _, err := fmt.Fprintln(r.out); err != nil {
				return err
			}
		}
		for i := range tier.records {
			line := r.compose(&tier.records[i], nameWidth, versionWidth)
			if _, err := fmt.Fprintln(r.out, r.highlight(line, term, tier.style)); err != nil {
				return err
			}
			lines++
		}
		wrote = true
	}

	r.logger.Debug("rendered matches", "lines", lines, "columns", r.cfg.Columns.String())
	return nil
}

// compose lays out one record according to the columns selection. The
// version column is only padded when the description follows it, and
// the none selection prints the bare identifier.
func (r *Renderer) compose(record *core.PackageRecord, nameWidth, versionWidth int) string {
	switch r.cfg.Columns {
	case ColumnsNone:
		return record.Identifier
	case ColumnsVersion:
		return pad(record.Identifier, nameWidth) + gutter + record.Version
	case ColumnsDescription:
		return pad(record.Identifier, nameWidth) + gutter + record.Description
	}
	return pad(record.Identifier, nameWidth) + gutter +
		pad(record.Version, versionWidth) + gutter + record.Description
}

// highlight styles every occurrence of term within line. The rest of
// the line stays untouched, so padding computed on the plain text
// keeps its width.
func (r *Renderer) highlight(line, term string, style lipgloss.Style) string {
	if term == "" {
		return line
	}

	hay, needle := line, term
	if r.cfg.IgnoreCase {
		hay, needle = strings.ToLower(line), strings.ToLower(term)
		// Folding must keep byte offsets aligned with the original text.
		if len(hay) != len(line) {
			hay, needle = line, term
		}
	}

	var b strings.Builder
	idx := 0
	for {
		rel := strings.Index(hay[idx:], needle)
		if rel < 0 {
			b.WriteString(line[idx:])
			return b.String()
		}
		at := idx + rel
		b.WriteString(line[idx:at])
		b.WriteString(style.Render(line[at : at+len(needle)]))
		idx = at + len(needle)
	}
}

// widths returns the widest identifier and version across all tiers.
func widths(matches *search.MatchSet) (name, version int) {
	for _, records := range [][]core.PackageRecord{matches.Exact, matches.Direct, matches.Indirect} {
		for i := range records {
			if w := lipgloss.Width(records[i].Identifier); w > name {
				name = w
			}
			if w := lipgloss.Width(records[i].Version); w > version {
				version = w
			}
		}
	}
	return name, version
}

// pad right-pads s with spaces to the requested display width.
func pad(s string, width int) string {
	if n := width - lipgloss.Width(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}
