package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/divijg19/todo/internal/action"
	"github.com/divijg19/todo/internal/config"
	"github.com/divijg19/todo/internal/core"
	"github.com/divijg19/todo/internal/gateway"
	"github.com/divijg19/todo/internal/storage"
)

// Version is the current CLI version string.
const Version = "v0.2"

const (
	exitOK    = 0
	exitStore = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, os.LookupEnv))
}

// run executes one invocation and returns the process exit code.
func run(args []string, stdout, stderr io.Writer, lookupEnv func(string) (string, bool)) int {
	cfg := config.Load(lookupEnv)

	root := newRootCmd(&cfg, stdout, stderr)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := dispatch(root, args)
	if err == nil {
		return exitOK
	}

	fmt.Fprintln(stderr, err)
	var kindErr *core.Error
	if !errors.As(err, &kindErr) || core.IsParseError(err) {
		// Flag errors from cobra land here too.
		return exitUsage
	}
	return exitStore
}

func newRootCmd(cfg *config.Config, stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "todo <action> [argument]",
		Short:         "A personal task tracker",
		Long:          "Record short text tasks and move them between todo, done and dropped.\n\n" + gateway.Usage,
		Version:       Version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return execute(*cfg, args, stdout, stderr)
		},
	}

	cmd.CompletionOptions.DisableDefaultCmd = true

	// Everything after the verb is positional, so "add -x" keeps "-x" as text.
	cmd.Flags().SetInterspersed(false)
	cmd.Flags().StringVar(&cfg.DBPath, "db", cfg.DBPath, "path to the tasks database (env "+config.EnvDBPath+")")
	cmd.Flags().BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "log store operations to stderr (env "+config.EnvVerbose+")")
	return cmd
}

// dispatch parses the root flags and hands every positional argument to RunE.
// It skips cobra's command lookup, which would otherwise claim verbs such as
// "__complete" before they reach the action parser.
func dispatch(cmd *cobra.Command, args []string) error {
	cmd.InitDefaultHelpFlag()
	cmd.InitDefaultVersionFlag()

	if err := cmd.ParseFlags(args); err != nil {
		return err
	}
	if help, _ := cmd.Flags().GetBool("help"); help {
		return cmd.Help()
	}
	if version, _ := cmd.Flags().GetBool("version"); version {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", cmd.Name(), cmd.Version)
		return nil
	}
	return cmd.RunE(cmd, cmd.Flags().Args())
}

// execute parses args, opens the store when the action needs it, and renders the result.
func execute(cfg config.Config, args []string, stdout, stderr io.Writer) error {
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.LogLevel()}))

	act, err := action.Parse(args)
	if err != nil {
		return err
	}

	if _, ok := act.(action.Help); ok {
		fmt.Fprint(stdout, gateway.Usage)
		return nil
	}

	st, closeDB, err := openStore(cfg.DBPath)
	if err != nil {
		logger.Debug("open store failed", "path", cfg.DBPath, "error", err)
		return core.Fail(core.ErrStoreUnavailable, "", err)
	}
	defer closeDB()

	gw, err := gateway.New(st, logger)
	if err != nil {
		return core.Fail(core.ErrStoreUnavailable, "", err)
	}

	result, err := gw.Execute(act)
	if err != nil {
		return err
	}

	if list, ok := act.(action.List); ok {
		render(stdout, list.Filter, result.Tasks)
	}
	return nil
}

// openStore opens the SQLite-backed store and returns a close function.
func openStore(dbPath string) (*storage.Store, func(), error) {
	sqlDB, err := storage.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open db: %w", err)
	}

	st, err := storage.New(sqlDB)
	if err != nil {
		_ = sqlDB.Close()
		return nil, nil, fmt.Errorf("new store: %w", err)
	}

	closeFn := func() {
		_ = sqlDB.Close()
	}
	return st, closeFn, nil
}

// render prints one line per task. Mixed views carry the state.
func render(w io.Writer, filter core.State, tasks []core.Task) {
	for _, task := range tasks {
		if filter == core.StateAll {
			fmt.Fprintf(w, "%d [%s] %s\n", task.ID, task.State, task.Description)
			continue
		}
		fmt.Fprintln(w, task.Line())
	}
}
