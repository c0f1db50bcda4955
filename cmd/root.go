// Package cmd provides command-line interface functionality for FMTools.
// FMTools is a collection of utilities for extracting and modifying the
// duelist data of Yu-Gi-Oh! Forbidden Memories for PlayStation.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hansbonini/fmtools/pkg"
	"github.com/hansbonini/fmtools/pkg/common"
)

// rootCmd represents the base command when called without any subcommands.
// It provides the main entry point for the FMTools application.
var rootCmd = &cobra.Command{
	Use:   "fmtools",
	Short: "Tools for modding Yu-Gi-Oh! Forbidden Memories PSX disc images",
	Long: `FMTools - A collection of utilities for extracting and modifying
duelist data from Yu-Gi-Oh! Forbidden Memories (SLUS-01411) for PlayStation.

Currently supports:
  - Duelist decks and drop tables (dump to/patch from CSV)
  - CD image sectors (EDC passthrough, ISO9660 region check)
  - Card names and raw game text

Examples:
  fmtools duelist dump fm.bin ./duelists/
  fmtools duelist patch fm.bin ./duelists/ fm_modified.bin
  fmtools cd passthrough fm.bin fm_copy.bin
  fmtools cd info fm.bin
  fmtools cards fm.bin --output cards.csv
  fmtools text SLUS_014.11

Use 'fmtools [command] --help' for more information about a command.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main() and serves as the entry point for command execution.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// addCommonFlags registers the verbose flag and, when withLayout is set,
// the layout override flag.
func addCommonFlags(cmd *cobra.Command, withLayout bool) {
	cmd.Flags().BoolP("verbose", "v", false, "Enable verbose output with per-sector and per-record details")
	if withLayout {
		cmd.Flags().String("layout", "", "YAML file overriding the SLUS-01411 offsets and regions")
	}
}

// applyVerbose enables verbose mode if requested
func applyVerbose(cmd *cobra.Command) error {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return fmt.Errorf("error getting verbose flag: %w", err)
	}
	common.SetVerboseMode(verbose)
	return nil
}

// layoutFromFlags returns the layout named by --layout, or the default one
func layoutFromFlags(cmd *cobra.Command) (pkg.Layout, error) {
	path, err := cmd.Flags().GetString("layout")
	if err != nil {
		return pkg.Layout{}, fmt.Errorf("error getting layout flag: %w", err)
	}
	return pkg.ResolveLayout(path)
}

// setup applies the common flags of cmd and returns the layout to use
func setup(cmd *cobra.Command) (pkg.Layout, error) {
	if err := applyVerbose(cmd); err != nil {
		return pkg.Layout{}, err
	}
	return layoutFromFlags(cmd)
}
