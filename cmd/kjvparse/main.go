// Command kjvparse segments the Project Gutenberg King James Bible into
// books and verses, verifies the result against a fixture file and answers
// exact chapter:verse lookups.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/alecthomas/kong"

	"github.com/FocuswithJustin/kjvparse/core/corpus"
	"github.com/FocuswithJustin/kjvparse/core/errors"
	"github.com/FocuswithJustin/kjvparse/core/fixture"
	"github.com/FocuswithJustin/kjvparse/core/marker"
	"github.com/FocuswithJustin/kjvparse/core/ref"
	"github.com/FocuswithJustin/kjvparse/core/verse"
	"github.com/FocuswithJustin/kjvparse/internal/config"
	"github.com/FocuswithJustin/kjvparse/internal/linesource"
	"github.com/FocuswithJustin/kjvparse/internal/logging"
	"github.com/FocuswithJustin/kjvparse/internal/report"
	"github.com/FocuswithJustin/kjvparse/internal/validation"
)

const version = "0.1.0"

// CLI defines the command-line interface for kjvparse.
type CLI struct {
	// Global flags
	Config    string `name:"config" short:"c" help:"Configuration file (default: ./kjvparse.toml)" type:"path"`
	LogLevel  string `name:"log-level" help:"Log level: debug, info, warn, error (overrides config)"`
	LogFormat string `name:"log-format" help:"Log format: text, json (overrides config)"`

	Parse      ParseCmd      `cmd:"" help:"Segment a corpus and print its books"`
	Verify     VerifyCmd     `cmd:"" help:"Check a corpus against a fixture file"`
	Lookup     LookupCmd     `cmd:"" help:"Print a chapter, verse or verse range"`
	Digest     DigestCmd     `cmd:"" help:"Print the BLAKE3 digest of a segmented corpus"`
	Find       FindCmd       `cmd:"" help:"Locate a marker line (diagnostic)"`
	InitConfig InitConfigCmd `cmd:"" name:"init-config" help:"Write a sample configuration file"`
	Version    VersionCmd    `cmd:"" help:"Print version information"`
}

// app carries the state shared by every command.
type app struct {
	ctx context.Context
	cfg *config.Config
	out io.Writer
}

// newApp loads configuration, initializes logging and starts a run.
func newApp(ctx context.Context, cli *CLI, out io.Writer) (*app, error) {
	cfg, found, err := config.Load(cli.Config)
	if err != nil {
		return nil, err
	}

	levelName := cfg.Logging.Level
	if cli.LogLevel != "" {
		levelName = cli.LogLevel
	}
	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return nil, errors.NewValidation("log-level", err.Error())
	}
	formatName := cfg.Logging.Format
	if cli.LogFormat != "" {
		formatName = cli.LogFormat
	}
	format, err := logging.ParseFormat(formatName)
	if err != nil {
		return nil, errors.NewValidation("log-format", err.Error())
	}
	logging.InitLogger(level, format)

	ctx = logging.StartRun(ctx)
	logging.DebugContext(ctx, "configuration loaded", "path", cli.Config, "found", found)
	return &app{ctx: ctx, cfg: cfg, out: out}, nil
}

// checkInput runs check on value and reports failures as a
// ValidationError for field.
func checkInput(field, value string, check func(string) error) error {
	if err := check(value); err != nil {
		verr := errors.NewValidation(field, err.Error())
		verr.Value = value
		return verr
	}
	return nil
}

// readLines loads a corpus or fixture file and logs the read stage.
func (a *app) readLines(path string) ([]string, error) {
	if err := checkInput("path", path, validation.ValidatePath); err != nil {
		return nil, err
	}
	done := logging.TimeStage(a.ctx, "read")
	lines, err := linesource.ReadFile(path)
	if err != nil {
		return nil, err
	}
	done("path", path, "lines", len(lines))
	return lines, nil
}

// loadCorpus reads and segments the corpus at path.
func (a *app) loadCorpus(path string) (*corpus.Corpus, error) {
	lines, err := a.readLines(path)
	if err != nil {
		return nil, err
	}

	done := logging.TimeStage(a.ctx, "segment")
	c, err := corpus.Build(lines, a.cfg.CorpusOptions())
	if err != nil {
		a.logLookupFailures(err)
		return nil, err
	}
	done("books", len(c.Books()), "ranges", len(c.Ranges))
	return c, nil
}

// logLookupFailures logs every marker lookup failure joined into err.
func (a *app) logLookupFailures(err error) {
	errs := []error{err}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs = joined.Unwrap()
	}
	var lookup *errors.LookupError
	for _, e := range errs {
		if errors.As(e, &lookup) {
			logging.LookupFailure(a.ctx, lookup.Marker, lookup.Start)
		}
	}
}

// ParseCmd segments a corpus and prints it.
type ParseCmd struct {
	Corpus string `arg:"" help:"Path to the corpus text (plain, .gz or .xz)" type:"path"`
	Show   string `help:"What to print: table, ot, nt, boundaries" enum:"table,ot,nt,boundaries" default:"table"`
	Verses bool   `help:"Print every verse as \"chapter:verse text\" under its book title"`
	JSON   bool   `name:"json" help:"Print the segmented corpus as JSON"`
}

func (c *ParseCmd) Run(a *app) error {
	corp, err := a.loadCorpus(c.Corpus)
	if err != nil {
		return err
	}

	switch {
	case c.JSON:
		return report.WriteJSON(a.out, corp)
	case c.Verses:
		return report.WriteVerses(a.out, corp)
	}

	switch c.Show {
	case "ot":
		return report.WriteTestament(a.out, corp, corpus.OldTestament)
	case "nt":
		return report.WriteTestament(a.out, corp, corpus.NewTestament)
	case "boundaries":
		_, err = fmt.Fprintln(a.out, report.BoundaryTable(corp))
	default:
		_, err = fmt.Fprintln(a.out, report.BookTable(corp))
	}
	return err
}

// VerifyCmd checks a corpus against a fixture file.
type VerifyCmd struct {
	Corpus   string `arg:"" help:"Path to the corpus text" type:"path"`
	Fixtures string `arg:"" help:"Path to the fixture file" type:"path"`
}

func (c *VerifyCmd) Run(a *app) error {
	corp, err := a.loadCorpus(c.Corpus)
	if err != nil {
		return err
	}

	if err := checkInput("fixtures", c.Fixtures, validation.ValidatePath); err != nil {
		return err
	}
	fixtures, err := fixture.Load(c.Fixtures, a.cfg.Fixtures.Sentinel)
	if err != nil {
		return err
	}

	done := logging.TimeStage(a.ctx, "verify")
	res, err := fixture.Verify(corp, fixtures, a.cfg.Fixtures.ExpectedBooks)
	if err != nil {
		args := []any{}
		var inv *errors.InvariantError
		if errors.As(err, &inv) && inv.Detail != "" {
			args = append(args, "diff", inv.Detail)
		}
		logging.VerificationFailure(a.ctx, err, args...)
		return err
	}
	done("books", res.Books, "verses", res.Verses)

	_, err = fmt.Fprintf(a.out, "ok: %d books, %d verses match %s\n", res.Books, res.Verses, c.Fixtures)
	return err
}

// LookupCmd prints verses by exact book title and reference.
type LookupCmd struct {
	Corpus string `arg:"" help:"Path to the corpus text" type:"path"`
	Book   string `arg:"" help:"Exact book title, e.g. \"The Gospel According to Saint John\""`
	Ref    string `arg:"" help:"Reference: chapter, chapter:verse or chapter:verse-verse"`
	JSON   bool   `name:"json" help:"Print records as JSON"`
}

func (c *LookupCmd) Run(a *app) error {
	if err := checkInput("book", c.Book, validation.ValidateTitle); err != nil {
		return err
	}
	r, err := ref.Parse(c.Ref)
	if err != nil {
		return err
	}

	corp, err := a.loadCorpus(c.Corpus)
	if err != nil {
		return err
	}

	var recs []verse.Record
	if r.IsChapter() {
		recs, err = corp.LookupChapter(c.Book, r.Chapter)
	} else {
		recs, err = corp.LookupRange(c.Book, r.Chapter, r.Verse, r.Last())
	}
	if err != nil {
		return err
	}

	if c.JSON {
		return report.WriteJSON(a.out, recs)
	}
	return report.WriteRecords(a.out, recs)
}

// DigestCmd prints content digests.
type DigestCmd struct {
	Corpus string `arg:"" help:"Path to the corpus text" type:"path"`
	Books  bool   `help:"Also print one digest per book"`
}

func (c *DigestCmd) Run(a *app) error {
	corp, err := a.loadCorpus(c.Corpus)
	if err != nil {
		return err
	}

	sum, err := corp.Digest()
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s  corpus\n", sum)

	if !c.Books {
		return nil
	}
	for _, e := range corp.Books() {
		r, err := corp.RangeOf(e)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "%s  %s\n", r.BookDigest(), e.Title)
	}
	return nil
}

// FindCmd locates the first line matching a marker.
type FindCmd struct {
	Corpus string `arg:"" help:"Path to the corpus text" type:"path"`
	Marker string `arg:"" help:"Marker text; whitespace is normalized before matching"`
	From   int    `help:"First line index to search" default:"0"`
	Policy string `help:"Match policy: contains, equal, prefix (overrides config)"`
}

func (c *FindCmd) Run(a *app) error {
	if err := checkInput("marker", c.Marker, validation.ValidateMarker); err != nil {
		return err
	}
	policyName := a.cfg.Matching.Policy
	if c.Policy != "" {
		policyName = c.Policy
	}
	policy, err := marker.ParsePolicy(policyName)
	if err != nil {
		return err
	}

	lines, err := a.readLines(c.Corpus)
	if err != nil {
		return err
	}

	idx, err := marker.New(policy).Locate(c.Marker, lines, c.From)
	if err != nil {
		logging.LookupFailure(a.ctx, c.Marker, c.From, "policy", policy.String())
		return err
	}
	_, err = fmt.Fprintln(a.out, strconv.Itoa(idx)+"\t"+lines[idx])
	return err
}

// InitConfigCmd writes the sample configuration.
type InitConfigCmd struct {
	Path  string `arg:"" optional:"" help:"Destination (default: ./kjvparse.toml)" type:"path"`
	Force bool   `help:"Overwrite an existing file"`
}

func (c *InitConfigCmd) Run(a *app) error {
	path := c.Path
	if path == "" {
		path = config.ProjectFile
	}
	if _, err := os.Stat(path); err == nil && !c.Force {
		return errors.NewValidation("path", fmt.Sprintf("%s already exists (use --force)", path))
	}
	if err := config.CreateSample(path); err != nil {
		return err
	}
	_, err := fmt.Fprintf(a.out, "wrote %s\n", path)
	return err
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run(a *app) error {
	_, err := fmt.Fprintf(a.out, "kjvparse version %s\n", version)
	return err
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("kjvparse"),
		kong.Description("Segment the Project Gutenberg King James Bible into books and verses"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	a, err := newApp(context.Background(), &cli, os.Stdout)
	ctx.FatalIfErrorf(err)
	err = ctx.Run(a)
	ctx.FatalIfErrorf(err)
}
