// Package cmd provides command-line interface for CD image processing.
// This file contains commands working on the raw sectors and the ISO9660
// file table of PlayStation disc images.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hansbonini/fmtools/pkg"
	"github.com/hansbonini/fmtools/pkg/common"
)

// cdCmd represents the parent command for all CD image operations.
var cdCmd = &cobra.Command{
	Use:   "cd",
	Short: "Process CD image files from PlayStation games",
	Long: `Process CD image files (.bin, Mode 2 Form 1 sectors).

Commands:
  passthrough  Decode and re-encode the game regions of an image
  info         Check the configured regions against the ISO9660 file table

Examples:
  fmtools cd passthrough fm.bin fm_copy.bin
  fmtools cd info fm.bin`,
}

// cdPassthroughCmd round-trips the game regions through the sector codec.
var cdPassthroughCmd = &cobra.Command{
	Use:   "passthrough [input_image] [output_image]",
	Short: "Decode and re-encode the game regions without changes",
	Long: `Decode the code segment and merged data regions of an image and encode
them back unmodified, recomputing every EDC.

On an intact image the output is identical to the input. Any difference
is reported as the number of sectors changed, which points at sectors
whose EDC was wrong.

Example:
  fmtools cd passthrough fm.bin fm_copy.bin`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputFile := args[0]
		outputFile := args[1]

		layout, err := setup(cmd)
		if err != nil {
			return err
		}

		processor := pkg.NewCDProcessor(layout)

		fmt.Printf("Processing CD image file: %s\n", inputFile)

		mismatched, err := processor.Passthrough(inputFile, outputFile)
		if err != nil {
			return common.FormatError(common.ErrFailedToEncodeRegion, err)
		}

		if mismatched == 0 {
			fmt.Println("Output is identical to the input.")
		} else {
			fmt.Printf("Output differs from the input in %d sectors.\n", mismatched)
		}
		fmt.Printf("Output saved to: %s\n", outputFile)

		return nil
	},
}

// cdInfoCmd reports where the game regions live on the disc.
var cdInfoCmd = &cobra.Command{
	Use:   "info [input_image]",
	Short: "Check the configured regions against the ISO9660 file table",
	Long: `Read the ISO9660 file table of an image and compare the location of
every configured region with the file of the same name. For each region
it displays:
  - Path within the CD structure
  - LBA (Logical Block Address) and MSF (Minutes:Seconds:Frames)
  - Size in sectors
  - Sector mode and the number of sectors with a wrong EDC

Example:
  fmtools cd info fm.bin
  fmtools cd info --layout layout.yaml fm.bin`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputFile := args[0]

		layout, err := setup(cmd)
		if err != nil {
			return err
		}

		processor := pkg.NewCDProcessor(layout)

		descriptor, reports, err := processor.Inspect(inputFile)
		if err != nil {
			return common.FormatError(common.ErrFailedToReadImage, err)
		}

		fmt.Printf("Volume: %s (%s), %d sectors\n", descriptor.VolumeID, descriptor.SystemID, descriptor.VolumeSpaceSize)
		fmt.Printf("Layout: %s\n", layout.Version)

		failures := 0
		for _, report := range reports {
			msf, err := pkg.RegionMSF(report.Region)
			if err != nil {
				return err
			}
			fmt.Printf("%-16s LBA %6d  MSF %s  %6d sectors  mode %d  bad EDC %d", report.Region.Name, report.Region.StartSector, msf, report.Region.Sectors, report.Mode, report.BadEDC)
			if report.Err != nil {
				failures++
				fmt.Printf("  MISMATCH: %v\n", report.Err)
				continue
			}
			fmt.Println("  OK")
		}

		if failures > 0 {
			return common.FormatErrorString(common.ErrFailedToLocateISOFile, "%d of %d regions do not match the disc", failures, len(reports))
		}
		return nil
	},
}

// init initializes the CD command with its subcommands and flags.
func init() {
	rootCmd.AddCommand(cdCmd)
	cdCmd.AddCommand(cdPassthroughCmd)
	cdCmd.AddCommand(cdInfoCmd)

	addCommonFlags(cdPassthroughCmd, true)
	addCommonFlags(cdInfoCmd, true)
}
