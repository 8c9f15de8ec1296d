// Package main is the entry point for the toolframe demo shell: it loads
// the configured tool set, wires the terminal input pump to the dispatch
// manager, and runs until interrupted.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dshills/toolframe/internal/config"
	"github.com/dshills/toolframe/internal/env"
	"github.com/dshills/toolframe/internal/event"
	"github.com/dshills/toolframe/internal/log"
	"github.com/dshills/toolframe/internal/manager"
	"github.com/dshills/toolframe/internal/menu"
	"github.com/dshills/toolframe/internal/script"
	"github.com/dshills/toolframe/internal/term"
	"github.com/dshills/toolframe/internal/tool"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configPath  = flag.String("config", "toolframe.toml", "path to the configuration file")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("toolframe %s (%s)\n", version, commit)
		return 0
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	logger, closeLog, err := buildLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()

	mgr := manager.New(manager.Config{Logger: logger})
	defer mgr.Close()

	var scripted []*script.Tool
	for _, tc := range cfg.Tools {
		st, err := script.NewToolFile(tc.Name, tc.Script, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		scripted = append(scripted, st)
		mgr.RegisterTool(st)
	}
	defer func() {
		for _, st := range scripted {
			st.Close()
		}
	}()

	pump, err := term.NewTerminal(mgr, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	defer pump.Fini()

	mgr.SetEnvironment(env.Handles{Window: pump.Screen()})
	mgr.SetPresenter(menu.PresenterFunc(func(req menu.Request) {
		logger.Info("context menu %q from tool %q (%d items)",
			req.Menu.Title, req.Tool, len(req.Menu.Items))
	}))

	mgr.RegisterTool(&quitTool{
		Interactive: tool.NewInteractive("quit"),
		stop:        pump.Stop,
	})
	mgr.InvokeTool("quit")

	for _, tc := range cfg.Tools {
		if tc.Invoke {
			mgr.InvokeTool(tc.Name)
		}
	}

	// Live log-level reload; tool set changes need a restart.
	if w, err := config.Watch(*configPath, 500*time.Millisecond, func() {
		reloaded, err := config.Load(*configPath)
		if err != nil {
			logger.Warn("config reload: %v", err)
			return
		}
		logger.SetLevel(log.ParseLevel(reloaded.LogLevel))
		logger.Info("config reloaded")
	}); err == nil {
		defer func() { _ = w.Close() }()
	} else {
		logger.Warn("config watcher disabled: %v", err)
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		pump.Stop()
	}()

	logger.Info("toolframe %s started with %d scripted tools", version, len(cfg.Tools))
	pump.Run()
	logger.Info("toolframe stopped")
	return 0
}

func buildLogger(cfg config.Config) (*log.Logger, func(), error) {
	lcfg := log.DefaultConfig()
	lcfg.Level = log.ParseLevel(cfg.LogLevel)

	if cfg.LogFile == "" {
		return log.New(lcfg), func() {}, nil
	}

	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	lcfg.Output = f
	return log.New(lcfg), func() { _ = f.Close() }, nil
}

// quitTool stops the input pump on a cancel event (Escape or a signal). It
// sits at the bottom of the active stack, so the cancel only reaches it after
// every tool above has had its chance to consume the event.
type quitTool struct {
	tool.Interactive
	stop func()
}

func (q *quitTool) Init(m tool.Manager) {
	q.Interactive.Init(m)
	q.Go(func(event.Event) error {
		q.arm()
		return nil
	}, event.OnActivate("quit"))
}

func (q *quitTool) arm() {
	q.Go(func(event.Event) error {
		q.stop()
		return nil
	}, event.OnCancel())
}
