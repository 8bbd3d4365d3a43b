// Command rsb prints passages of the Russian Synodal Bible.
//
//	rsb Gen 1:1-5
//	rsb ref "Ps 23"
//	rsb browse
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"

	"github.com/FocuswithJustin/rsb-cli/core/bible"
	"github.com/FocuswithJustin/rsb-cli/core/cache"
	"github.com/FocuswithJustin/rsb-cli/core/corpus"
	apperrors "github.com/FocuswithJustin/rsb-cli/core/errors"
	"github.com/FocuswithJustin/rsb-cli/core/osis"
	"github.com/FocuswithJustin/rsb-cli/core/render"
	"github.com/FocuswithJustin/rsb-cli/internal/config"
	"github.com/FocuswithJustin/rsb-cli/internal/logging"
	"github.com/FocuswithJustin/rsb-cli/internal/theme"
	"github.com/FocuswithJustin/rsb-cli/internal/validation"
)

const version = "0.4.0"

// CLI defines the command-line interface for rsb.
type CLI struct {
	// Global flags. Unset flags defer to config.Load.
	Config    string `name:"config" short:"c" help:"Config file (default: $XDG_CONFIG_HOME/rsb/config.yaml)" type:"path"`
	Corpus    string `name:"corpus" short:"d" help:"Corpus directory" type:"path"`
	OSIS      string `name:"osis" help:"Read the corpus from an OSIS file instead of a directory" type:"path"`
	CachePath string `name:"cache" help:"Parsed-corpus cache file" type:"path"`
	NoCache   bool   `name:"no-cache" help:"Parse the corpus without consulting the cache"`
	Width     int    `name:"width" short:"w" help:"Wrap width in columns"`
	Color     string `name:"color" help:"Colour output: auto, always or never"`
	LogLevel  string `name:"log-level" help:"Log level: debug, info, warn or error"`
	LogFormat string `name:"log-format" help:"Log format: text or json"`

	Read    ReadCmd    `cmd:"" default:"withargs" help:"Print a book, chapter or verse range (default command)"`
	Ref     RefCmd     `cmd:"" help:"Print a full reference such as \"Gen 1:1-5\""`
	Books   BooksCmd   `cmd:"" help:"List the books of the corpus"`
	Browse  BrowseCmd  `cmd:"" help:"Pick a book, chapter and verse interactively"`
	Export  ExportCmd  `cmd:"" help:"Export the corpus to JSON, OSIS, Markdown, HTML or SQLite"`
	Stats   StatsCmd   `cmd:"" help:"Show corpus statistics"`
	Cache   CacheGroup `cmd:"" help:"Parsed-corpus cache operations"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

func (c *CLI) overrides() config.Overrides {
	return config.Overrides{
		CorpusDir: c.Corpus,
		OSISFile:  c.OSIS,
		CachePath: c.CachePath,
		NoCache:   c.NoCache,
		Width:     c.Width,
		Color:     c.Color,
		LogLevel:  c.LogLevel,
		LogFormat: c.LogFormat,
	}
}

// app is the state shared by every command of one invocation.
type app struct {
	ctx      context.Context
	cfg      config.Config
	bible    *bible.Bible
	renderer render.Renderer
	out      theme.Theme
	errOut   theme.Theme

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	storeOnce sync.Once
	store     *cache.Store
	storeErr  error
}

func newApp(ctx context.Context, cfg config.Config, stdin io.Reader, stdout, stderr io.Writer) *app {
	a := &app{
		ctx:    logging.WithQueryID(ctx, uuid.NewString()),
		cfg:    cfg,
		out:    theme.New(cfg.Color, fileOf(stdout)),
		errOut: theme.New(cfg.Color, fileOf(stderr)),
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
	}
	a.renderer = render.Renderer{Width: cfg.Width, Tag: a.out.Tag}
	a.bible = bible.New(corpus.NewLoader(a.load), bible.Options{Renderer: a.renderer})
	return a
}

func fileOf(w any) *os.File {
	f, _ := w.(*os.File)
	return f
}

// load reads the corpus from the configured source. A cache that cannot be
// opened is skipped with a warning.
func (a *app) load() (*corpus.Document, error) {
	if a.cfg.OSISFile != "" {
		start := time.Now()
		doc, err := osis.ReadFile(a.cfg.OSISFile)
		if err != nil {
			return nil, err
		}
		logging.CorpusLoaded(a.cfg.OSISFile, doc.Len(), time.Since(start), "format", "osis")
		return doc, nil
	}

	if err := validation.ValidateCorpusDir("corpus_dir", a.cfg.CorpusDir); err != nil {
		return nil, err
	}
	store, err := a.cacheStore()
	if err != nil {
		logging.Warn("cache unavailable, parsing corpus", "path", a.cfg.CachePath, "error", err)
		store = nil
	}
	return cache.LoadFunc(store, os.DirFS(a.cfg.CorpusDir), a.cfg.CorpusDir)()
}

// cacheStore opens the cache on first use. It returns nil without error when
// caching is disabled.
func (a *app) cacheStore() (*cache.Store, error) {
	if a.cfg.NoCache {
		return nil, nil
	}
	a.storeOnce.Do(func() {
		a.store, a.storeErr = cache.Open(a.cfg.CachePath)
	})
	return a.store, a.storeErr
}

func (a *app) Close() error {
	if a.store != nil {
		return a.store.Close()
	}
	return nil
}

// loadConfig merges defaults, config file, environment and flags.
func loadConfig(c *CLI) (config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return config.Config{}, err
	}
	cfg.Apply(c.overrides())
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func initLogging(cfg config.Config, w io.Writer) {
	level, _ := logging.ParseLevel(cfg.LogLevel)
	format, _ := logging.ParseFormat(cfg.LogFormat)
	logging.InitLoggerWithWriter(w, level, format)
}

type exitCode int

// run executes one invocation and returns the process exit status:
// 0 on success, 1 when a command fails, 2 on a usage error.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) (code int) {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("rsb"),
		kong.Description("Russian Synodal Bible - print and browse scripture from the terminal"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Writers(stdout, stderr),
		kong.Exit(func(code int) { panic(exitCode(code)) }),
	)
	if err != nil {
		fmt.Fprintf(stderr, "rsb: %v\n", err)
		return 2
	}

	defer func() {
		if r := recover(); r != nil {
			c, ok := r.(exitCode)
			if !ok {
				panic(r)
			}
			code = int(c)
		}
	}()

	kctx, err := parser.Parse(args)
	if err != nil {
		parser.Errorf("%s", err)
		return 2
	}

	cfg, err := loadConfig(&cli)
	if err != nil {
		fmt.Fprintf(stderr, "rsb: %v\n", err)
		return 2
	}
	initLogging(cfg, stderr)

	a := newApp(ctx, cfg, stdin, stdout, stderr)
	defer a.Close()

	if err := kctx.Run(a); err != nil {
		logging.DebugContext(a.ctx, "command failed", "command", kctx.Command(), "error", err)
		// Query errors print without the program prefix.
		if apperrors.IsQueryError(err) {
			fmt.Fprintln(stderr, a.errOut.Error(err.Error()))
		} else {
			fmt.Fprintf(stderr, "rsb: %s\n", a.errOut.Error(err.Error()))
		}
		return 1
	}
	return 0
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
