package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/runtara/runtop/internal/config"
	"github.com/runtara/runtop/internal/errors"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the runtop config file interactively",
	Long: `Walk through the connection settings and write them to
~/.config/runtop/config.yaml.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInit(initForce)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")
}

func runInit(force bool) error {
	path := config.DefaultPath()

	if _, err := os.Stat(path); err == nil && !force {
		var overwrite bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", path)).
					Value(&overwrite),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}
		if !overwrite {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	server := config.DefaultServer
	tenant := ""
	refresh := strconv.Itoa(int(config.DefaultRefreshInterval.Seconds()))
	insecure := true

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Server address").
				Description("host:port of the orchestration server").
				Placeholder(config.DefaultServer).
				Value(&server).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					_, err := config.NormalizeServer(s)
					return err
				}),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Tenant (optional)").
				Description("Scopes instance and image lists, enables the metrics tab").
				Placeholder("leave empty to show all tenants").
				Value(&tenant),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Refresh interval (seconds)").
				Value(&refresh).
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n < 1 {
						return fmt.Errorf("must be a whole number of seconds, at least 1")
					}
					return nil
				}),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Skip TLS certificate verification?").
				Description("Needed for servers with self-signed certificates").
				Value(&insecure),
		),
	)

	if err := form.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get user input",
			"Check terminal compatibility")
	}

	cfg := config.Default()
	if s := strings.TrimSpace(server); s != "" {
		cfg.Server = s
	}
	cfg.Tenant = strings.TrimSpace(tenant)
	seconds, _ := strconv.Atoi(strings.TrimSpace(refresh))
	cfg.RefreshInterval = time.Duration(seconds) * time.Second
	cfg.Insecure = insecure

	data, err := renderConfig(cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to create config directory",
			"Check permissions on "+filepath.Dir(path))
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to write config file",
			"Check permissions on "+path)
	}

	fmt.Printf("Wrote %s\n", path)
	return nil
}

// configDoc is the on-disk shape of the config file. Durations are written
// in their human form ("5s") rather than nanoseconds.
type configDoc struct {
	Server          string `yaml:"server"`
	Tenant          string `yaml:"tenant,omitempty"`
	RefreshInterval string `yaml:"refresh_interval"`
	Insecure        bool   `yaml:"insecure"`
	PageLimit       int    `yaml:"page_limit"`
}

// renderConfig serializes a config with a short usage header.
func renderConfig(cfg *config.Config) ([]byte, error) {
	doc := configDoc{
		Server:          cfg.Server,
		Tenant:          cfg.Tenant,
		RefreshInterval: cfg.RefreshInterval.String(),
		Insecure:        cfg.Insecure,
		PageLimit:       cfg.PageLimit,
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to serialize config", "")
	}

	header := "# runtop configuration\n" +
		"# Values here are overridden by RUNTARA_* environment variables and flags.\n"
	return append([]byte(header), data...), nil
}
