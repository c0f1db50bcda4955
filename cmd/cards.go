package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/hansbonini/fmtools/pkg"
	"github.com/hansbonini/fmtools/pkg/common"
)

// cardsCmd lists every card name stored in the executable.
var cardsCmd = &cobra.Command{
	Use:   "cards [input_image]",
	Short: "List the names of every card",
	Long: `List the official number and name of every card as "card_id,card_name"
CSV rows. Rows are printed to standard output unless --output is given.

Example:
  fmtools cards fm.bin
  fmtools cards fm.bin --output cards.csv`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputFile := args[0]

		layout, err := setup(cmd)
		if err != nil {
			return err
		}
		outputFile, err := cmd.Flags().GetString("output")
		if err != nil {
			return fmt.Errorf("error getting output flag: %w", err)
		}

		processor := pkg.NewDuelistProcessor(layout)
		export := func(w io.Writer) error {
			return processor.ExportCardNames(inputFile, w)
		}

		if outputFile == "" {
			if err := export(cmd.OutOrStdout()); err != nil {
				return common.FormatError(common.ErrFailedToReadCardNames, err)
			}
			return nil
		}

		file, err := os.Create(outputFile)
		if err != nil {
			return common.FormatError(common.ErrFailedToCreateOutputFile, err)
		}
		return writeAndClose(file, export)
	},
}

// writeAndClose runs write against w and closes it, returning the Close error
// when the write succeeded.
func writeAndClose(w io.WriteCloser, write func(io.Writer) error) error {
	if err := write(w); err != nil {
		_ = w.Close()
		return common.FormatError(common.ErrFailedToReadCardNames, err)
	}
	if err := w.Close(); err != nil {
		return common.FormatError(common.ErrFailedToCreateOutputFile, err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(cardsCmd)
	addCommonFlags(cardsCmd, true)
	cardsCmd.Flags().StringP("output", "o", "", "Write the card list to this file instead of standard output")
}
