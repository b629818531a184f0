package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/runtara/runtop/internal/client"
	"github.com/runtara/runtop/internal/config"
	"github.com/runtara/runtop/internal/dashboard"
	"github.com/runtara/runtop/internal/logger"
)

// flagConfig is the --config path, shared by all commands.
var flagConfig string

// rootCmd starts the dashboard; subcommands hang off it.
var rootCmd = &cobra.Command{
	Use:   "runtop",
	Short: "Terminal dashboard for a Runtara orchestration server",
	Long: `runtop is a read-only terminal dashboard that polls a Runtara
compute-orchestration server and shows instances, images, tenant metrics,
and service health, with drill-down into instance checkpoints.

Configuration is merged from ~/.config/runtop/config.yaml, RUNTARA_*
environment variables, and flags, in that order of precedence.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDashboard(cmd.Flags())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "",
		"config file (default ~/.config/runtop/config.yaml)")
	addDashboardFlags(rootCmd.Flags())
}

// addDashboardFlags registers the connection flags on a flag set.
func addDashboardFlags(flags *pflag.FlagSet) {
	flags.StringP("server", "s", config.DefaultServer,
		"server address (host:port)")
	flags.StringP("tenant", "t", "",
		"tenant id to scope lists and enable the metrics tab")
	flags.IntP("refresh", "r", int(config.DefaultRefreshInterval.Seconds()),
		"auto-refresh interval in seconds")
	flags.Bool("insecure", true,
		"skip TLS certificate verification")
}

// Execute runs the CLI and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// buildConfig loads the layered config and applies flag overrides on top.
// Only flags the user actually set override file and environment values.
func buildConfig(flags *pflag.FlagSet) (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}

	if flags.Changed("server") {
		cfg.Server, _ = flags.GetString("server")
	}
	if flags.Changed("tenant") {
		cfg.Tenant, _ = flags.GetString("tenant")
	}
	if flags.Changed("refresh") {
		seconds, _ := flags.GetInt("refresh")
		cfg.RefreshInterval = time.Duration(seconds) * time.Second
	}
	if flags.Changed("insecure") {
		cfg.Insecure, _ = flags.GetBool("insecure")
	}

	server, err := config.NormalizeServer(cfg.Server)
	if err != nil {
		// A bad address falls back to the default instead of failing
		// startup; the detail goes to the debug log.
		logger.Default().Warn("using default server address: %v", err)
	}
	cfg.Server = server

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// runDashboard builds the session and hands the terminal to Bubble Tea.
// Logging goes to a file for the duration since the TUI owns the terminal.
func runDashboard(flags *pflag.FlagSet) error {
	cfg, err := buildConfig(flags)
	if err != nil {
		return err
	}

	restore, err := logger.RedirectToFile(filepath.Join(os.TempDir(), "runtop.log"))
	if err == nil {
		defer restore()
	}

	logger.Default().Debug("starting dashboard against %s (tenant=%q refresh=%s)",
		cfg.Server, cfg.Tenant, cfg.RefreshInterval)

	return dashboard.Run(client.New(cfg), cfg)
}
