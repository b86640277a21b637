// Package cli provides the command-line interface for wallswap
package cli

import (
	"fmt"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/wallswap/wallswap/pkg/config"
)

var (
	cfgFile   string
	outputArg string
	verbosity string
	logFile   string
	noNotify  bool
	once      bool
	version   string
)

// rootCmd represents the base command; running it starts the daemon
var rootCmd = &cobra.Command{
	Use:   "wallswap",
	Short: "Wallpaper supervisor with zero-downtime swaps",
	Long: `wallswap keeps one wallpaper renderer alive on the active display
output and hot-swaps it when the configuration changes: the new
renderer is started and verified before the old one is torn down, so
the desktop is never left bare.

Reload by editing the config file, or explicitly:
  wallswap reload`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runDaemon(once)
	},
}

// Execute runs the CLI
func Execute(v string) error {
	version = v

	initializeRootCommand()

	return rootCmd.Execute()
}

var initOnce sync.Once

// initializeRootCommand sets up the root command and its flags.
// Explicit initialization instead of init() keeps this testable;
// guarded so repeated Execute calls do not redefine flags.
func initializeRootCommand() {
	initOnce.Do(setupRootCommand)
}

func setupRootCommand() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $XDG_CONFIG_HOME/wallswap/wallpaper.json)")
	rootCmd.PersistentFlags().StringVar(&outputArg, "output", "", "display output to draw to (default: auto-discovered)")
	rootCmd.PersistentFlags().StringVarP(&verbosity, "verbosity", "v", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "also append logs to this file")

	rootCmd.Flags().BoolVar(&once, "once", false, "set the wallpaper once and exit")
	rootCmd.Flags().BoolVar(&noNotify, "no-notify", false, "disable desktop notifications")

	rootCmd.AddCommand(newReloadCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newVersionCmd())
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}

	viper.SetEnvPrefix("WALLSWAP")
	viper.AutomaticEnv()

	if v := viper.GetString("config"); cfgFile == "" && v != "" {
		cfgFile = v
	}
	if v := viper.GetString("output"); outputArg == "" && v != "" {
		outputArg = v
	}
}

// Helper functions

func printSuccess(message string) {
	fmt.Printf("%s %s\n", color.GreenString("[wallswap]"), message)
}

func printError(message string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", color.RedString("[wallswap]"), message)
}

func printInfo(message string) {
	fmt.Printf("%s %s\n", color.CyanString("[wallswap]"), message)
}

func getConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.DefaultPath()
}
