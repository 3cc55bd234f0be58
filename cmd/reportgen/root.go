package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/BelalFares97/MultiTool/pkg/config"
	rerrors "github.com/BelalFares97/MultiTool/pkg/errors"
	"github.com/BelalFares97/MultiTool/pkg/logging"
	"github.com/BelalFares97/MultiTool/pkg/report"
)

// NewRootCmd creates the root command for reportgen.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reportgen",
		Short: "Render meeting and credit risk reports as PDF",
		Long: `reportgen renders paginated PDF reports from analysis results.

Meeting reports carry the meeting details, attendees, the diarized transcript,
key notes and action items. Risk reports carry the applicant profile, the
model decision, bureau metrics and an optional markdown narrative.

Configuration is read from ./config.yaml or the per-user config directory.
Run 'reportgen init' to write one with the defaults.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("config", "", "Config file (default ./config.yaml or the user config dir)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().String("log-format", "", "Log format: text or json (overrides config)")

	cmd.AddCommand(NewMeetingCmd())
	cmd.AddCommand(NewRiskCmd())
	cmd.AddCommand(NewBatchCmd())
	cmd.AddCommand(NewInspectCmd())
	cmd.AddCommand(NewColorsCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		rerrors.Display(err)
		os.Exit(1)
	}
}

// env is what every rendering command needs: configuration, a logger and a renderer.
type env struct {
	cfg      *config.Config
	log      *slog.Logger
	renderer *report.Renderer
}

// setup loads the configuration named by --config and builds the logger from
// the global flags. An explicit --config must exist; the default path may not.
func setup(cmd *cobra.Command) (*env, error) {
	path, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")
	format, _ := cmd.Flags().GetString("log-format")

	var cfg *config.Config
	var err error
	if path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.LoadOrDefault(config.DefaultConfigPath())
	}
	if err != nil {
		return nil, err
	}

	if format == "" {
		format = cfg.Log.Format
	}
	log := logging.New(cmd.ErrOrStderr(), logging.Options{
		Verbose: verbose,
		Level:   cfg.Log.Level,
		Format:  format,
	})

	return &env{
		cfg:      cfg,
		log:      log,
		renderer: report.NewRenderer(cfg, report.WithLogger(log)),
	}, nil
}

// outputDir resolves the -o flag against the configured output directory.
func (e *env) outputDir(cmd *cobra.Command) string {
	if dir, _ := cmd.Flags().GetString("output"); dir != "" {
		return dir
	}
	return e.cfg.Output.Dir
}
