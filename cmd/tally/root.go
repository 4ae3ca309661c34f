package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// envPrefix namespaces environment overrides, e.g. TALLY_FORMAT=table.
const envPrefix = "TALLY"

// cli carries state shared by all subcommands.
type cli struct {
	v      *viper.Viper
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{v: newViper()}
	return c.rootCmd()
}

// rootCmd assembles the command tree. A logger already set on c is kept.
func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tally",
		Short: "Sales analytics: seller ranking, bonuses and top products",
		Long: `tally replays purchase records against a product catalog, ranks sellers by
profit, assigns rank-based bonuses and lists each seller's best-selling
products.

Every flag can also be set through the environment with the TALLY_ prefix,
for example TALLY_FORMAT=table.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.v.BindPFlags(cmd.Flags()); err != nil {
				return fmt.Errorf("failed to bind flags: %w", err)
			}
			if c.logger != nil {
				return nil
			}
			logger, err := newLogger(c.v.GetBool("verbose"))
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			c.logger = logger
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
	}

	root.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		c.newAnalyzeCmd(),
		c.newValidateCmd(),
		c.newStrategiesCmd(),
	)
	return root
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// newLogger builds a production zap logger writing to stderr, at debug
// level when verbose is set.
func newLogger(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return config.Build()
}
