package main

import (
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	flagConfig   string
	flagVerbose  bool
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:   "sequoiadiff",
	Short: "Compute a GumTree-style edit script between two node trees",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if flagConfig != "" {
			viper.SetConfigFile(flagConfig)
			if err := viper.ReadInConfig(); err != nil {
				return err
			}
		}

		level := strings.ToLower(viper.GetString("log-level"))
		if flagVerbose {
			level = "debug"
		}
		parsed, err := zerolog.ParseLevel(level)
		if err != nil {
			return err
		}
		zerolog.SetGlobalLevel(parsed)

		return nil
	},
}

func init() {
	viper.SetEnvPrefix("sequoiadiff")
	viper.AutomaticEnv()

	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to a config file")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "shorthand for --log-level=debug")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "log level: debug, info, warn, error")

	_ = viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(treeCmd)
}
