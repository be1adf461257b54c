// Package cli implements the atscli command: analyze résumé files locally
// and keep a SQLite history of past reports.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"resume-ats/internal/shared/telemetry"
)

const (
	app       = "atscli"
	envPrefix = "ATSCLI"
)

// Version can be set at build time with -ldflags "-X resume-ats/internal/cli.Version=...".
var Version = "dev"

// Config is the merged view of flags and ATSCLI_* environment variables.
type Config struct {
	HistoryDB      string `mapstructure:"history-db"`
	Debug          bool   `mapstructure:"debug"`
	JSONLogs       bool   `mapstructure:"json-logs"`
	MinResumeChars int    `mapstructure:"min-resume-chars"`
}

// NewRootCmd builds the command tree. Output goes to out; a nil out means stdout.
func NewRootCmd(out io.Writer) *cobra.Command {
	if out == nil {
		out = os.Stdout
	}
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:           app,
		Short:         "atscli scores résumés for applicant tracking system friendliness",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			// Logs go to stderr so --json output stays parseable.
			telemetry.SetOutput(cmd.ErrOrStderr())
			telemetry.Init(cfg.JSONLogs, cfg.Debug)
			return nil
		},
	}
	root.SetOut(out)

	flags := root.PersistentFlags()
	flags.String("history-db", defaultHistoryPath(), "SQLite file holding saved reports")
	flags.BoolP("debug", "d", false, "verbose/debug logging")
	flags.Bool("json-logs", false, "json format for logging")
	flags.Int("min-resume-chars", 50, "minimum extracted characters for a résumé to be scored")
	for _, name := range []string{"history-db", "debug", "json-logs", "min-resume-chars"} {
		_ = v.BindPFlag(name, flags.Lookup(name))
	}

	root.AddCommand(newAnalyzeCmd(v), newHistoryCmd(v), newVersionCmd())
	return root
}

// Execute runs the CLI against os.Args.
func Execute() error {
	return NewRootCmd(nil).Execute()
}

func loadConfig(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	cfg.HistoryDB = expandHome(cfg.HistoryDB)
	return cfg, nil
}

func defaultHistoryPath() string {
	return filepath.Join("~", "."+app, "history.db")
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
