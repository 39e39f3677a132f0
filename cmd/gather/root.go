package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/viant/gather/config"
)

// Version is set at build time
var Version = "dev"

var (
	configPath string
	cfg        = config.DefaultConfig()
	logger     = logrus.StandardLogger()
)

var rootCmd = &cobra.Command{
	Use:   "gather",
	Short: "Gather the code behind notebook cell executions",
	Long: `gather replays a history of executed cells and slices out the code needed
to reproduce the results of a chosen cell.

Every FILE argument holds the text of one executed cell; files are executed in
the order given and the execution count of a cell is its position.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if logger, err = loaded.NewLogger(cmd.ErrOrStderr()); err != nil {
			return err
		}
		cfg = loaded
		logger.WithField("command", cmd.Name()).Debug("starting")
		return nil
	},
}

func init() {
	rootCmd.SetVersionTemplate("gather version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Configuration file (default: ./gather.yaml)")
}
