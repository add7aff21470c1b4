package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/polo-ai/polo/internal/agent"
	"github.com/polo-ai/polo/internal/config"
	"github.com/polo-ai/polo/internal/executor"
	"github.com/polo-ai/polo/internal/logging"
	"github.com/polo-ai/polo/internal/repl"
	"github.com/polo-ai/polo/internal/safety"
	"github.com/polo-ai/polo/internal/telemetry"
	"github.com/polo-ai/polo/memory"
	"github.com/polo-ai/polo/tools"
)

const version = "0.2.0"

// app holds the wired components shared by all subcommands.
type app struct {
	cfg        *config.Config
	log        zerolog.Logger
	store      *memory.Store
	exec       *executor.Executor
	defs       []tools.ToolDefinition
	dispatcher *agent.Dispatcher
}

// newApp loads config and constructs the component graph. The only fatal
// startup condition is an unusable storage path.
func newApp(configPath string, debug bool) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	level := cfg.LogLevel
	if debug {
		level = "debug"
	}
	log := logging.New(level)

	root, err := safety.InitWorkspaceRoot(cfg.WorkspaceRoot)
	if err != nil {
		return nil, err
	}

	rec := telemetry.NewRecorder(log, ".polo", cfg.Observe)
	exec := executor.New(executor.Options{
		Timeout:       cfg.Timeout,
		MaxFileSize:   cfg.MaxFileSize,
		WorkspaceRoot: root,
		FindLimit:     cfg.FindLimit,
	}, log, rec)
	defs := tools.Registry(exec)

	store, err := memory.Open(cfg.StoragePath, log)
	if err != nil {
		return nil, fmt.Errorf("conversation log at %s is unusable: %w", cfg.StoragePath, err)
	}

	return &app{
		cfg:        cfg,
		log:        log,
		store:      store,
		exec:       exec,
		defs:       defs,
		dispatcher: agent.New(store, defs, cfg.ToolPrefix, cfg.ContextWindow, log, rec),
	}, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		configPath string
		debug      bool
	)

	rootCmd := &cobra.Command{
		Use:           "polo",
		Short:         "polo is a single-user command-line assistant",
		Long:          "polo chats, runs shell commands, and works with files, keeping a persisted conversation memory.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand: start the interactive session.
			return runChat(cmd.Context(), configPath, debug)
		},
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default polo.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	chatCmd := &cobra.Command{
		Use:   "chat",
		Short: "Start the interactive session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd.Context(), configPath, debug)
		},
	}

	rootCmd.AddCommand(
		chatCmd,
		newAskCmd(&configPath, &debug),
		newShellCmd(&configPath, &debug),
		newFileCmd(&configPath, &debug),
		newMemoryCmd(&configPath, &debug),
	)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "polo: %v\n", err)
		os.Exit(1)
	}
}

func runChat(ctx context.Context, configPath string, debug bool) error {
	a, err := newApp(configPath, debug)
	if err != nil {
		return err
	}
	r := repl.New(a.dispatcher, a.store, a.exec, a.cfg.ToolPrefix, a.cfg.HistoryFile, version, a.log)
	return r.Run(ctx)
}
