package terminal

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/de-tools/agency-atlas/pkg/clock"
	"github.com/de-tools/agency-atlas/pkg/runtime/app"
	"github.com/de-tools/agency-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/agency-atlas/pkg/services/config"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const defaultProfilesFile = ".agency-atlas.ini"

// CLI represents the command-line interface
type CLI struct {
	env     *commands.Env
	rootCmd *cobra.Command

	profile      string
	profilesFile string
	settingsFile string
	format       string
	verbose      bool
}

// Options contain configuration for the CLI
type Options struct {
	Output io.Writer
	Clock  clock.Clock
	// Connector overrides opening the profile's stores.
	Connector commands.Connector
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Clock == nil {
		opts.Clock = clock.System{}
	}

	cli := &CLI{}
	cli.env = &commands.Env{
		Connect: opts.Connector,
		Clock:   opts.Clock,
		Output:  opts.Output,
		Format:  &cli.format,
	}
	if cli.env.Connect == nil {
		cli.env.Connect = cli.connect
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "atlas",
		Short:         "Agency analytics and relationship graphs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := zerolog.WarnLevel
			if cli.verbose {
				level = zerolog.DebugLevel
			}
			logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
				Level(level).
				With().Timestamp().Logger()
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(logger.WithContext(ctx))
		},
	}

	home, _ := os.UserHomeDir()
	cmd.PersistentFlags().StringVar(&cli.profile, "profile", "default", "Connection profile name")
	cmd.PersistentFlags().StringVar(&cli.profilesFile, "profiles-file", filepath.Join(home, defaultProfilesFile),
		"Path to the connection profiles file")
	cmd.PersistentFlags().StringVar(&cli.settingsFile, "settings", "", "Path to the report settings file")
	cmd.PersistentFlags().StringVarP(&cli.format, "output", "o", "table", "Output format: table or json")
	cmd.PersistentFlags().BoolVarP(&cli.verbose, "verbose", "v", false, "Log debug output to stderr")

	cmd.AddCommand(commands.NewReportCmd(cli.env))
	cmd.AddCommand(commands.NewGraphCmd(cli.env))

	return cmd
}

func (cli *CLI) connect(ctx context.Context) (commands.Service, func(context.Context) error, error) {
	registry, err := config.NewRegistry(cli.profilesFile)
	if err != nil {
		return nil, nil, err
	}
	profile, err := registry.GetProfile(ctx, cli.profile)
	if err != nil {
		return nil, nil, err
	}
	settings, err := config.LoadSettings(cli.settingsFile)
	if err != nil {
		return nil, nil, err
	}

	a, err := app.Open(ctx, profile, settings, cli.env.Clock)
	if err != nil {
		return nil, nil, err
	}
	return a.Service, a.Close, nil
}
