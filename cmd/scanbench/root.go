package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	jww "github.com/spf13/jwalterweatherman"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool

	// configErr is set by initConfig and reported by commands that need the
	// configuration.
	configErr error
)

// rootCmd represents the base command when called without any sub-commands
var rootCmd = &cobra.Command{
	Use:   "scanbench",
	Short: "Benchmarks the adaptive parallel scan engine",
	Long: `scanbench runs prefix-sum and compaction benchmarks on the adaptive
parallel scan engine and prints the mean run time in microseconds, or the
speculation ratio for the scan-measure-ratio case.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the command line. It is called by main.main.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		jww.ERROR.Printf("scanbench: %v", err)
		return err
	}
	return nil
}

func init() {
	cobra.OnInitialize(initConfig, initLog)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is $HOME/.forgoscan/scanbench.hujson)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Verbose mode for debugging")
	rootCmd.PersistentFlags().String("log", "",
		"Also write the log to this file")

	handleBindingError(viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose")), "verbose")
	handleBindingError(viper.BindPFlag("log", rootCmd.PersistentFlags().Lookup("log")), "log")
}

func handleBindingError(err error, flag string) {
	if err != nil {
		jww.FATAL.Panicf("Error on binding flag \"%s\":%+v", flag, err)
	}
}

// initConfig reads the config file, if any, and environment variables.
func initConfig() {
	viper.SetEnvPrefix("SCANBENCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	path, explicit := cfgFile, cfgFile != ""
	if !explicit {
		path = defaultConfigPath()
		if path == "" {
			return
		}
		if _, err := os.Stat(path); err != nil {
			return
		}
	}
	configErr = loadConfigFile(viper.GetViper(), path)
}

// initLog sets the log thresholds and the optional log file.
func initLog() {
	jww.SetStdoutOutput(os.Stderr)
	threshold := jww.LevelInfo
	if viper.GetBool("verbose") {
		threshold = jww.LevelDebug
	}
	jww.SetStdoutThreshold(threshold)

	if logPath := viper.GetString("log"); logPath != "" {
		logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid log path %s, logging to stderr only.\n", logPath)
			return
		}
		jww.SetLogOutput(logFile)
		jww.SetLogThreshold(threshold)
	}
}
