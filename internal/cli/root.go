// Package cli implements the portal command-line interface.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/portal/internal/logging"
	"github.com/mesh-intelligence/portal/internal/paths"
	"github.com/mesh-intelligence/portal/pkg/types"

	// Registers the entity types the commands look up by name.
	_ "github.com/mesh-intelligence/portal/pkg/entities"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	logLevel  string
	jsonMode  bool
}

// app is the state shared by one invocation of the root command.
type app struct {
	flags     rootFlags
	configDir string
	cfg       types.Config
	log       zerolog.Logger
}

// NewRootCmd creates the top-level "portal" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{log: zerolog.Nop()}
	root := &cobra.Command{
		Use:   "portal",
		Short: "Query and update service portal objects",
		Long: "Portal reads and writes objects of a service-management portal through\n" +
			"typed projections, against a live server or the local simulator.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (env "+paths.EnvConfigDir+")")
	root.PersistentFlags().StringVar(&a.flags.dataDir, "data-dir", "", "simulator data directory (env "+paths.EnvDataDir+")")
	root.PersistentFlags().StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newTypesCmd(a))
	root.AddCommand(newQueryCmd(a))
	root.AddCommand(newEnumsCmd(a))
	root.AddCommand(newCreateCmd(a))
	root.AddCommand(newDeleteCmd(a))
	root.AddCommand(newMCPCmd(a))

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "portal:", err)
		os.Exit(ExitCode(err))
	}
}

// setup resolves the config directory, loads config.yaml and builds the
// logger. Logs go to stderr so stdout carries only command output.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	dir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return exitError(exitSysError, fmt.Errorf("resolve config dir: %w", err))
	}
	a.configDir = dir

	cfg, err := loadConfig(dir)
	if err != nil {
		return exitError(exitUserError, err)
	}
	if a.flags.logLevel != "" {
		cfg.LogLevel = a.flags.logLevel
	}
	a.cfg = cfg

	log, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel, !a.flags.jsonMode)
	if err != nil {
		return exitError(exitUserError, err)
	}
	a.log = log
	return nil
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return exitError(exitSysError, fmt.Errorf("marshal output: %w", err))
	}
	fmt.Fprintln(w, string(data))
	return nil
}

// cliError carries the process exit code for a failed command.
type cliError struct {
	code int
	err  error
}

func (e *cliError) Error() string { return e.err.Error() }
func (e *cliError) Unwrap() error { return e.err }

// exitError tags err with an exit code.
func exitError(code int, err error) error {
	return &cliError{code: code, err: err}
}

// userErrors are failures caused by the invocation rather than the system.
var userErrors = []error{
	types.ErrInvalidCriteria,
	types.ErrUnknownType,
	types.ErrNotFound,
	types.ErrReadOnly,
	types.ErrNotDirty,
	types.ErrTypeMismatch,
	types.ErrAPI,
}

// classify tags err with exit code 1 when it matches a user error and 2
// otherwise. Errors that already carry a code pass through.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var ce *cliError
	if errors.As(err, &ce) {
		return err
	}
	for _, target := range userErrors {
		if errors.Is(err, target) {
			return exitError(exitUserError, err)
		}
	}
	return exitError(exitSysError, err)
}

// ExitCode returns the process exit code for an error returned by the root
// command. Flag and argument errors from cobra count as user errors.
func ExitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ce *cliError
	if errors.As(err, &ce) {
		return ce.code
	}
	return exitUserError
}
