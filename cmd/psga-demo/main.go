// Package main runs the "Breathtaking places" demo: a terminal UI with two
// tabs backed by a mock REST service, wired together by the dispatcher.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/mikmak/psga/internal/config"
	"github.com/mikmak/psga/internal/dispatcher"
	"github.com/mikmak/psga/internal/logging"
	"github.com/mikmak/psga/internal/places"
	"github.com/mikmak/psga/internal/rest"
	"github.com/mikmak/psga/internal/terminal"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	ConfigPath string
	LogLevel   string
	LogFile    string
	Addr       string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	applyFlags(&cfg, opts)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	logger, closeLog, err := newLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()
	logging.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runDemo(ctx, cfg, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("demo failed: %v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func runDemo(ctx context.Context, cfg config.Config, logger *logging.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	srv := rest.NewServer(rest.SeedStore(), cfg.REST.Addr, logger)
	ln, err := srv.Listen(ctx)
	if err != nil {
		return err
	}
	served := make(chan error, 1)
	go func() { served <- srv.Serve(ctx, ln) }()
	defer func() {
		cancel()
		if err := <-served; err != nil {
			logger.Warn("rest server: %v", err)
		}
	}()

	screen, err := terminal.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	win, err := terminal.NewWindow(screen, "Breathtaking places",
		terminal.WithBindings(cfg.UI.Keys),
		terminal.WithExitEvent(cfg.Dispatcher.ExitEvent),
		terminal.WithMenuDelimiter(cfg.Dispatcher.MenuDelimiter),
		terminal.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	defer win.Close()

	d := dispatcher.New(cfg.DispatcherOptions(logger))

	timeout, _ := cfg.RequestTimeout()
	model := places.NewModel(d, win, cfg.REST.BaseURL,
		places.WithRetryMax(cfg.REST.RetryMax),
		places.WithTimeout(timeout),
		places.WithModelLogger(logger),
	)

	root := places.NewRootController(d, win)
	win.SetTabGroup(root.OnTabGroup.Name())

	var tabs []*places.TabController
	for _, spec := range []places.TabSpec{places.Trails, places.Cities} {
		tab := places.NewTabController(d, win, model, spec)
		win.AddTab(layout(tab))
		tabs = append(tabs, tab)
	}

	// make the first tab load its table
	first := tabs[0].OnTab.Name()
	win.SelectTab(first)
	win.WriteEventValue(root.OnTabGroup.Name(), first)

	err = d.Loop(ctx, win)
	if m := d.Metrics(); m != nil {
		s := m.Snapshot()
		logger.Info("dispatched %d events (%d unmatched, %d panics), average %s",
			s.TotalDispatches, s.TotalUnmatched, s.TotalPanics, s.AverageDuration)
		for _, am := range m.TopActions(5) {
			logger.Info("  %-28s %4d calls, average %s, max %s",
				am.Name, am.DispatchCount, am.AverageActionDuration(), am.MaxDuration)
		}
	}
	return err
}

// layout builds the terminal tab for a tab controller.
func layout(tab *places.TabController) *terminal.Tab {
	spec := tab.Spec()
	t := &terminal.Tab{
		Key:   tab.OnTab.Name(),
		Title: spec.Title,
		Table: terminal.NewTable(tab.Table(), places.Headings, []int{4, 20, 22, 60}),
	}
	if len(spec.CreateKeys) > 0 {
		t.Buttons = append(t.Buttons, terminal.Button{Label: "Add a " + spec.Noun, Key: spec.CreateKeys[0]})
	}
	if len(spec.DeleteKeys) > 0 {
		t.Buttons = append(t.Buttons, terminal.Button{Label: "Delete a " + spec.Noun, Key: spec.DeleteKeys[0]})
	}
	return t
}

// newLogger logs to the configured file; the terminal owns stderr, so an
// unset file means a log in the temp directory.
func newLogger(cfg config.LoggingConfig) (*logging.Logger, func(), error) {
	path := cfg.File
	if path == "" {
		path = filepath.Join(os.TempDir(), "psga-demo.log")
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	logger := logging.New(logging.Config{
		Level:  logging.ParseLevel(cfg.Level),
		Output: f,
		Prefix: "psga-demo",
	})
	return logger, func() { _ = f.Close() }, nil
}

func applyFlags(cfg *config.Config, opts options) {
	if opts.LogLevel != "" {
		cfg.Logging.Level = opts.LogLevel
	}
	if opts.LogFile != "" {
		cfg.Logging.File = opts.LogFile
	}
	if opts.Addr != "" {
		cfg.REST.Addr = opts.Addr
		cfg.REST.BaseURL = "http://" + opts.Addr + "/"
	}
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&opts.LogFile, "log-file", "", "Log file (default: psga-demo.log in the temp directory)")
	flag.StringVar(&opts.Addr, "addr", "", "Address of the mock REST server, e.g. 127.0.0.1:8000")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "psga-demo - breathtaking places, a dispatcher demo\n\n")
		fmt.Fprintf(os.Stderr, "Usage: psga-demo [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment variables prefixed with %s override the configuration,\n", config.EnvPrefix)
		fmt.Fprintf(os.Stderr, "e.g. %sLOG_LEVEL=debug.\n", config.EnvPrefix)
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("psga-demo %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	return opts
}
