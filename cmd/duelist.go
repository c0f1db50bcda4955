// Package cmd provides command-line interface for duelist data processing.
// This file contains commands for dumping and patching the decks and drop
// tables of every duelist.
package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hansbonini/fmtools/pkg"
	"github.com/hansbonini/fmtools/pkg/common"
)

// duelistCmd represents the parent command for all duelist operations.
var duelistCmd = &cobra.Command{
	Use:   "duelist",
	Short: "Dump and patch duelist decks and drop tables",
	Long: `Dump and patch the decks and drop tables of every duelist.

Commands:
  dump      Write every card list to CSV files
  patch     Apply CSV files to a disc image

Examples:
  fmtools duelist dump fm.bin ./duelists/
  fmtools duelist patch fm.bin ./duelists/ fm_modified.bin`,
}

// duelistDumpCmd writes every duelist's card lists as CSV tables.
var duelistDumpCmd = &cobra.Command{
	Use:   "dump [input_image] [output_directory]",
	Short: "Dump duelist card lists to CSV files",
	Long: `Dump the deck and drop tables of every duelist to CSV files.

One directory is created per duelist, named "<id>.<name>" (for example
"1.Simon Muran"), holding:
  - deck.csv
  - drops-bcd.csv
  - drops-sa-pow.csv
  - drops-sa-tec.csv

Each row is "card_id,weight,card_name" with no header. Cards with a zero
weight are left out. A duelists.yaml manifest is written next to the
directories.

Example:
  fmtools duelist dump fm.bin ./duelists/
  fmtools duelist dump -v --layout layout.yaml fm.bin ./duelists/`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputFile := args[0]
		outputDir := args[1]

		layout, err := setup(cmd)
		if err != nil {
			return err
		}

		processor := pkg.NewDuelistProcessor(layout)

		fmt.Printf("Processing disc image: %s\n", inputFile)
		fmt.Printf("Output directory: %s\n", outputDir)

		if err := processor.Dump(inputFile, outputDir); err != nil {
			return common.FormatError(common.ErrFailedToReadDuelists, err)
		}

		fmt.Println("Duelists dumped successfully!")
		fmt.Printf("- Manifest saved to: %s\n", filepath.Join(outputDir, pkg.ManifestFileName))

		return nil
	},
}

// duelistPatchCmd applies a sparse CSV overlay to a disc image.
var duelistPatchCmd = &cobra.Command{
	Use:   "patch [input_image] [csv_directory] [output_image]",
	Short: "Patch duelist card lists from CSV files",
	Long: `Apply CSV card lists to a disc image and save the result.

The CSV directory follows the layout produced by "duelist dump". Every file
and directory is optional: only the tables present replace the ones on the
disc. A directory may be renamed as long as it keeps its "<id>." prefix.

Every table must list weights that add up to exactly 2048. Nothing is
written if any table fails to load.

Example:
  fmtools duelist patch fm.bin ./duelists/ fm_modified.bin`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputFile := args[0]
		csvDir := args[1]
		outputFile := args[2]

		layout, err := setup(cmd)
		if err != nil {
			return err
		}

		processor := pkg.NewDuelistProcessor(layout)

		fmt.Printf("Processing disc image: %s\n", inputFile)
		fmt.Printf("CSV directory: %s\n", csvDir)

		if err := processor.Patch(inputFile, csvDir, outputFile); err != nil {
			return common.FormatError(common.ErrFailedToWriteDuelists, err)
		}

		fmt.Println("Disc image patched successfully!")
		fmt.Printf("Output saved to: %s\n", outputFile)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(duelistCmd)
	duelistCmd.AddCommand(duelistDumpCmd)
	duelistCmd.AddCommand(duelistPatchCmd)

	addCommonFlags(duelistDumpCmd, true)
	addCommonFlags(duelistPatchCmd, true)
}
