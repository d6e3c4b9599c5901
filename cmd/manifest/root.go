package main

import (
	"fmt"
	"os"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "manifest",
	Short: "manifest composes UI node trees from blueprints",
	Long: `manifest builds trees of UI nodes from declarative YAML blueprints,
with inherited traits, named style-sets and stylesheets, and renders them as HTML.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, _ := cmd.Flags().GetString("trace")
		setupTracing(level)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("trace", "Error", "Trace level: Error, Info or Debug")
}

// setupTracing directs all tracers to the Go logger.
func setupTracing(level string) {
	tracing.SetTraceSelector(tracing.SelectorForAdapter(gologadapter.GetAdapter()))
	tracing.Select("manifest").SetTraceLevel(tracing.TraceLevelFromString(level))
}
