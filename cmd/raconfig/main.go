package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/raconfig/config"
)

var (
	projectDir string
	configPath string
	verbosity  int
	logFile    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "raconfig",
		Short: "Resolve @ConfigProperty annotations of a resource adapter",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			var path *string
			if logFile != "" {
				path = &logFile
			}
			commonlog.Configure(verbosity, path)
		},
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&projectDir, "dir", "C", ".", "project directory")
	flags.StringVarP(&configPath, "config", "c", "", "configuration file (default <dir>/"+config.FileName+")")
	flags.CountVarP(&verbosity, "verbose", "v", "increase log verbosity")
	flags.StringVar(&logFile, "log-file", "", "write logs to this file instead of stderr")

	rootCmd.AddCommand(newResolveCmd())
	rootCmd.AddCommand(newClassifyCmd())
	rootCmd.AddCommand(newTypesCmd())
	rootCmd.AddCommand(newInitCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setProjectDir lets a positional directory argument override --dir.
func setProjectDir(args []string) {
	if len(args) > 0 {
		projectDir = args[0]
	}
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.Load(configPath)
	}
	return config.LoadDir(projectDir)
}
