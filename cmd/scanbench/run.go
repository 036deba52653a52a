package main

import (
	"bytes"
	"fmt"
	"runtime"

	"github.com/natefinch/atomic"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	jww "github.com/spf13/jwalterweatherman"
	"github.com/spf13/viper"

	"github.com/intel/forGoScan/bench"
	"github.com/intel/forGoScan/scan"
)

var runCmd = &cobra.Command{
	Use:   "run CASE...",
	Short: "Runs benchmark cases",
	Long: `Runs each named case once to warm up and --runs more times, then prints
one line per case. See "scanbench cases" for the case names.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if configErr != nil {
			return configErr
		}
		options := bench.Options{
			Size: viper.GetInt("size"),
			Runs: viper.GetInt("runs"),
			Scan: scan.Config{
				Grain:   viper.GetInt("grain"),
				Workers: viper.GetInt("threads"),
				Pin:     viper.GetBool("pin"),
			},
		}
		if err := options.Validate(); err != nil {
			return err
		}

		results := make([]bench.Result, 0, len(args))
		for _, name := range args {
			result, err := bench.Run(name, options)
			if err != nil {
				return errors.Wrapf(err, "case %s", name)
			}
			jww.INFO.Printf("%s: %s", name, result)
			fmt.Fprintln(cmd.OutOrStdout(), result)
			results = append(results, result)
		}

		if out := viper.GetString("out"); out != "" {
			return writeResults(out, results)
		}
		return nil
	},
}

var casesCmd = &cobra.Command{
	Use:   "cases",
	Short: "Lists the benchmark cases",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range bench.Names() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
	},
}

func init() {
	runCmd.Flags().IntP("size", "n", 0,
		"Number of input elements (required, positive)")
	runCmd.Flags().IntP("threads", "t", runtime.NumCPU(),
		"Number of worker threads")
	runCmd.Flags().Int("grain", scan.DefaultGrain,
		"Maximum number of elements per leaf")
	runCmd.Flags().Int("runs", bench.DefaultRuns,
		"Number of measured runs after the warm-up run")
	runCmd.Flags().Bool("pin", false,
		"Pin worker threads to CPUs")
	runCmd.Flags().String("out", "",
		"Write the results as JSON to this file")

	for _, flag := range []string{"size", "threads", "grain", "runs", "pin", "out"} {
		handleBindingError(viper.BindPFlag(flag, runCmd.Flags().Lookup(flag)), flag)
	}

	rootCmd.AddCommand(runCmd, casesCmd)
}

// writeResults replaces the file at path with the JSON encoding of results.
func writeResults(path string, results []bench.Result) error {
	var buf bytes.Buffer
	if err := bench.WriteJSON(&buf, results); err != nil {
		return err
	}
	if err := atomic.WriteFile(path, &buf); err != nil {
		return errors.Wrapf(err, "cannot write results to %s", path)
	}
	jww.INFO.Printf("wrote %d results to %s", len(results), path)
	return nil
}
