package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/phanxgames/cursorfx"
	"github.com/phanxgames/cursorfx/internal/config"
	"github.com/phanxgames/cursorfx/internal/logging"
)

var (
	configPath string
	v          = config.New()
)

var rootCmd = &cobra.Command{
	Use:   "cursorfx-replay <script.yaml>",
	Short: "Replay a cursorfx script and print its snapshots",
	Long: `cursorfx-replay builds the layout described by a YAML script, feeds it the
scripted pointer moves frame by frame and prints every snapshot the script
takes as a YAML document on standard output.

Settings come from an optional config file (--config), CURSORFX_*
environment variables and the flags below, in increasing priority.`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(v, configPath)
		if err != nil {
			return err
		}
		log := logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat, false)

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		snaps, err := Replay(data, cfg, log)
		if err != nil {
			return err
		}
		return writeSnapshots(cmd.OutOrStdout(), snaps)
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&configPath, "config", "c", "", "config file (YAML or JSON)")
	flags.String("log-level", "info", "log level: trace, debug, info, warn, error")
	flags.String("log-format", "console", "log format: console or json")
	flags.StringSlice("track", nil, "additional classes to track")
	flags.Float64("frame", 0, "frame duration in milliseconds, overriding the script")
	flags.Int("max-frames", 100000, "abort after this many frames")
	flags.String("out", "", "also write each snapshot to this directory")
	flags.Bool("debug", false, "enable scene debug checks and frame stats")

	// config key -> flag
	for key, name := range map[string]string{
		"logLevel":    "log-level",
		"logFormat":   "log-format",
		"track":       "track",
		"frame":       "frame",
		"maxFrames":   "max-frames",
		"snapshotDir": "out",
		"debug":       "debug",
	} {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}
}

// writeSnapshots prints snaps as a YAML stream, one document per snapshot.
func writeSnapshots(w io.Writer, snaps []cursorfx.Snapshot) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	for _, s := range snaps {
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("encode snapshot %q: %w", s.Label, err)
		}
	}
	return enc.Close()
}
