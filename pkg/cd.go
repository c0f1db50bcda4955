package pkg

import (
	"bytes"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"

	"github.com/hansbonini/fmtools/pkg/common"
	"github.com/hansbonini/fmtools/pkg/psx"
)

// CDProcessor handles sector level operations on disc images
type CDProcessor struct {
	layout   Layout
	duelists *DuelistProcessor
}

// NewCDProcessor creates a new CD processor for layout
func NewCDProcessor(layout Layout) *CDProcessor {
	return &CDProcessor{
		layout:   layout,
		duelists: NewDuelistProcessor(layout),
	}
}

// RegionReport pairs a configured region with the ISO9660 entry of the same
// name. Err is set when the entry is missing or does not match.
type RegionReport struct {
	Region psx.Region
	Entry  psx.CDFileEntry
	Mode   byte // Mode byte of the first sector
	Form2  bool // Submode form bit of the first sector
	BadEDC int  // Sectors whose stored EDC does not match
	Err    error
}

func (p *CDProcessor) regions() []psx.Region {
	return []psx.Region{p.layout.CodeSegment, p.layout.MergedData}
}

// Passthrough decodes every duelist of inputFile, writes the records back
// unmodified and re-encodes both regions into a copy saved to outputFile.
// It returns the number of sectors that differ from the input, which is
// zero for an image with correct EDCs.
func (p *CDProcessor) Passthrough(inputFile, outputFile string) (int, error) {
	image, err := psx.LoadImage(inputFile)
	if err != nil {
		return 0, err
	}

	output := make([]byte, len(image))
	copy(output, image)

	data, err := p.duelists.Decode(output)
	if err != nil {
		return 0, err
	}
	if err := p.duelists.Encode(output, data); err != nil {
		return 0, err
	}
	if err := psx.WriteRegion(output, p.layout.CodeSegment, data.Slus); err != nil {
		return 0, errors.Wrap(err, common.ErrFailedToEncodeRegion)
	}

	mismatched := CountMismatchedSectors(image, output)
	if mismatched == 0 {
		common.LogInfo(common.InfoPassthroughParity)
	} else {
		common.LogWarn(common.WarnPassthroughMismatch, mismatched)
	}

	if err := psx.SaveImage(outputFile, output); err != nil {
		return 0, err
	}
	return mismatched, nil
}

// CountMismatchedSectors compares two images sector by sector. Images of
// different sizes count every sector of the longer one past the shorter.
func CountMismatchedSectors(a, b []byte) int {
	if len(a) < len(b) {
		a, b = b, a
	}

	mismatched := 0
	for offset := 0; offset < len(a); offset += psx.CD_SECTOR_SIZE {
		end := offset + psx.CD_SECTOR_SIZE
		if end > len(a) {
			end = len(a)
		}
		if end > len(b) {
			mismatched++
			continue
		}
		if !bytes.Equal(a[offset:end], b[offset:end]) {
			mismatched++
		}
	}
	return mismatched
}

// Inspect reads the ISO9660 file table of inputFile and checks that every
// configured region matches the file of the same name.
func (p *CDProcessor) Inspect(inputFile string) (*psx.ISODescriptor, []RegionReport, error) {
	image, err := psx.LoadImage(inputFile)
	if err != nil {
		return nil, nil, err
	}
	return p.InspectImage(image)
}

// InspectImage is Inspect over an image already in memory
func (p *CDProcessor) InspectImage(image []byte) (*psx.ISODescriptor, []RegionReport, error) {
	reader, err := psx.NewISOReader(image)
	if err != nil {
		return nil, nil, err
	}
	descriptor, err := reader.ReadDescriptor()
	if err != nil {
		return nil, nil, errors.Wrap(err, common.ErrFailedToReadImage)
	}

	var reports []RegionReport
	for _, region := range p.regions() {
		report := RegionReport{Region: region}
		if err := inspectFirstSector(image, &report); err != nil {
			report.Err = err
			common.LogWarn("%v", err)
			reports = append(reports, report)
			continue
		}

		entry, err := reader.Lookup(region.Name)
		if err != nil {
			report.Err = errors.Wrapf(err, "%s: %s", common.ErrFailedToLocateISOFile, region.Name)
			common.LogWarn("%v", report.Err)
			reports = append(reports, report)
			continue
		}
		report.Entry = entry
		common.LogInfo(common.InfoISOFileLocated, entry.Path, entry.LBA, entry.MSF, humanize.Bytes(uint64(entry.Size)))

		if err := psx.VerifyRegion(entry, region); err != nil {
			report.Err = err
			common.LogWarn(common.WarnRegionMismatch, entry.Path, region.Name, err)
		}
		reports = append(reports, report)
	}

	return descriptor, reports, nil
}

func inspectFirstSector(image []byte, report *RegionReport) error {
	raw, err := report.Region.Slice(image)
	if err != nil {
		return err
	}
	sector, err := psx.ParseSectorM2F1(raw[:psx.CD_SECTOR_SIZE])
	if err != nil {
		return err
	}
	report.BadEDC = psx.CountBadEDC(raw)
	report.Mode = sector.Mode
	report.Form2 = sector.SubHeader[2]&psx.CD_SUBMODE_FORM2 != 0
	if report.Mode != 2 || report.Form2 {
		return errors.Wrapf(psx.ErrNotMode2Form1, "%s: mode %d, submode 0x%02X", report.Region.Name, sector.Mode, sector.SubHeader[2])
	}
	return nil
}

// RegionMSF returns the MSF address of the first sector of region
func RegionMSF(region psx.Region) (string, error) {
	lba, err := common.SafeIntToUint32(region.StartSector)
	if err != nil {
		return "", errors.Wrap(err, region.Name)
	}
	return common.LBAToMSF(lba), nil
}
