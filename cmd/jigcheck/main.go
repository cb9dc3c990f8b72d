package main

import (
	"fmt"
	"os"

	"github.com/sigreer/jigcheck/internal/collector"
	"github.com/sigreer/jigcheck/internal/config"
	"github.com/sigreer/jigcheck/internal/db"
	"github.com/sigreer/jigcheck/internal/logger"
	"github.com/sigreer/jigcheck/internal/version"
	"github.com/spf13/cobra"
)

var (
	appConfigFile string
	uiConfigFile  string
	dbPath        string
	logLevel      string
	logOutput     string
	sysfsRoot     string
	devRoot       string
)

var rootCmd = &cobra.Command{
	Use:   "jigcheck",
	Short: "ODROID factory jig I2C and Ethernet tester",
	Long: `jigcheck probes the devices a factory test jig expects: two I2C buses
found by adapter name and two Ethernet ports, with an optional check that
each port's MAC address falls in the allocated range.

The jig is described by an app config file that starts with the
ODROID-APP-CONFIG signature line.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logger.Init(logger.Config{
			Level:  logLevel,
			Output: logOutput,
			Pretty: logOutput == "" || logOutput == "stderr",
		})
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the jigcheck version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("jigcheck", version.Version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&appConfigFile, "app-config", "f", config.DefaultAppConfig, "jig app config file")
	rootCmd.PersistentFlags().StringVarP(&uiConfigFile, "ui-config", "u", "", "UI config file (default searches /etc/jigcheck/ui.yaml, ~/.config/jigcheck/ui.yaml, ./default_ui.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", db.DefaultPath, "results database, empty to disable")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logOutput, "log-output", "stderr", "log destination: stderr, stdout or a file path")
	rootCmd.PersistentFlags().StringVar(&sysfsRoot, "sysfs-root", collector.DefaultI2CRoot, "I2C adapter directory in sysfs")
	rootCmd.PersistentFlags().StringVar(&devRoot, "dev-root", collector.DefaultDevRoot, "directory holding i2c-N device nodes")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(adaptersCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

// newResolver builds an adapter resolver from the root flags
func newResolver() *config.Resolver {
	res := config.NewResolver()
	res.SysfsRoot = sysfsRoot
	res.DevRoot = devRoot
	return res
}

// loadJig reads both config files
func loadJig() (*config.Descriptor, *config.Layout, error) {
	desc, err := config.Load(appConfigFile, newResolver())
	if err != nil {
		return nil, nil, err
	}

	layout, err := config.LoadLayout(uiConfigFile)
	if err != nil {
		return nil, nil, err
	}

	return desc, layout, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
