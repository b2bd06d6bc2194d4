package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/portal/internal/paths"
	"github.com/mesh-intelligence/portal/internal/sim"
	"github.com/mesh-intelligence/portal/pkg/types"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize portal configuration",
		Long: "Create the configuration directory and config.yaml. With the sim\n" +
			"backend, also create the data directory and seed the simulator.",
		Args: cobra.NoArgs,
		RunE: a.runInit,
	}
}

func (a *app) runInit(cmd *cobra.Command, _ []string) error {
	if err := os.MkdirAll(a.configDir, 0o755); err != nil {
		return exitError(exitSysError, fmt.Errorf("create config directory: %w", err))
	}

	cfgPath := configPath(a.configDir)
	written, err := writeConfigIfMissing(cfgPath, configFile{
		Backend:  a.cfg.Backend,
		BaseURL:  a.cfg.BaseURL,
		DataDir:  a.flags.dataDir,
		LogLevel: a.cfg.LogLevel,
		Timeout:  a.cfg.EffectiveTimeout().String(),
	})
	if err != nil {
		return exitError(exitSysError, fmt.Errorf("write config: %w", err))
	}
	if written {
		a.log.Info().Str("path", cfgPath).Msg("config written")
	}

	out := cmd.OutOrStdout()
	if a.cfg.Backend != types.BackendSim {
		fmt.Fprintf(out, "Portal initialized (config: %s)\n", cfgPath)
		return nil
	}

	dataDir, err := paths.ResolveDataDir(a.flags.dataDir, a.cfg.DataDir)
	if err != nil {
		return exitError(exitSysError, fmt.Errorf("resolve data dir: %w", err))
	}
	b, err := sim.Open(dataDir, sim.WithLogger(a.log))
	if err != nil {
		return exitError(exitSysError, fmt.Errorf("initialize simulator: %w", err))
	}
	if err := b.Close(); err != nil {
		return exitError(exitSysError, fmt.Errorf("finalize simulator: %w", err))
	}

	fmt.Fprintf(out, "Portal initialized (config: %s, data: %s)\n", cfgPath, dataDir)
	return nil
}
