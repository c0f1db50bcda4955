package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/transform"

	"github.com/hansbonini/fmtools/pkg"
	"github.com/hansbonini/fmtools/pkg/common"
)

// textCmd decodes a whole file with the game's character table.
var textCmd = &cobra.Command{
	Use:   "text [input_file]",
	Short: "Decode a file with the game's text encoding",
	Long: `Decode every byte of a file with the character table used by the game
and print the result. Bytes without a known character, string terminators
included, are printed as "_". Useful to locate strings inside an
extracted executable or a whole disc image.

Example:
  fmtools text SLUS_014.11 | grep "Simon"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := applyVerbose(cmd); err != nil {
			return err
		}

		file, err := os.Open(args[0])
		if err != nil {
			return common.FormatError(common.ErrFailedToReadImage, err)
		}
		defer file.Close()

		out := bufio.NewWriter(cmd.OutOrStdout())
		reader := transform.NewReader(bufio.NewReader(file), pkg.NewTextTransformer())
		if _, err := io.Copy(out, reader); err != nil {
			return fmt.Errorf("failed to decode %s: %w", args[0], err)
		}
		return out.Flush()
	},
}

func init() {
	rootCmd.AddCommand(textCmd)
	addCommonFlags(textCmd, false)
}
