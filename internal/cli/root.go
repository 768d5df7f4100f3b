// Package cli implements the fairsplit command line.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/fkhayef/fairsplit/internal/config"
	"github.com/fkhayef/fairsplit/pkg/logging"
)

// Version is set at build time with -ldflags "-X ...cli.Version=...".
var Version = "dev"

var configPath string

var rootCmd = &cobra.Command{
	Use:   "fairsplit",
	Short: "Split group expenses and settle up with the fewest payments",
	Long: `FairSplit records shared expenses, derives who owes whom and proposes a
minimal list of payments, each with a payment deep link for the receiver.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a TOML config file (default $FAIRSPLIT_CONFIG)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig reads configuration and sets up logging from it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	logging.Setup(cfg.Log.Level)
	return cfg, nil
}
