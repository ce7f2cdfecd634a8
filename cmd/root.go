// Package cmd provides the root command and CLI setup for rowmut.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/rowmut/rowmut/internal/adapter"
	"github.com/rowmut/rowmut/internal/controller"
	"github.com/rowmut/rowmut/internal/engine"
)

// isTTY reports whether f is an interactive terminal, used to pick between
// the plain-text and Bubble Tea reporters.
func isTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

var sourceAdapter adapter.SourceAdapter
var mutateEngine engine.Engine
var reporter controller.Reporter

// verboseFlag is a root-level flag shared by commands that emit selector
// diagnostics.
var verboseFlag bool

func init() {
	configureRootFlags(rootCmd)

	sourceAdapter = adapter.NewLocalSourceAdapter()
	mutateEngine = engine.New()
	reporter = newReporter(rootCmd)
}

func newReporter(cmd *cobra.Command) controller.Reporter {
	if isTTY(os.Stdout) {
		return controller.NewTUIReporter(cmd.OutOrStdout())
	}

	return controller.NewSimpleReporter(cmd)
}

const rootLongDescription = `rowmut is a deterministic, text-level source mutator: it parses a
tab-separated mutation spec, selects a reproducibly-random subset of rows
via a seeded PRNG, and applies literal/multi-line/regex text replacements
to a source file.`

const mutateLongDescription = `Apply a mutation spec to a source file, selecting a random (but seed-
reproducible) subset of its rows and writing the mutated source.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rowmut",
		Short: "Deterministic text-level source mutator",
		Long:  rootLongDescription,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", viper.GetBool(logVerboseKey), "log selector diagnostics at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup("verbose"), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		var exitErr exitCoder
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}

		os.Exit(1)
	}
}

// exitCoder is implemented by *mutagenerr.Error.
type exitCoder interface {
	error
	ExitCode() int
}
