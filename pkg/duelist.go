// Package pkg provides functionality for editing duelist data of Yu-Gi-Oh!
// Forbidden Memories.
// This file contains the processor driving the dump and patch operations.
package pkg

import (
	"io"

	"github.com/pkg/errors"

	"github.com/hansbonini/fmtools/pkg/common"
	"github.com/hansbonini/fmtools/pkg/psx"
)

// DuelistProcessor handles duelist operations (dump/patch) on disc images
type DuelistProcessor struct {
	layout   Layout
	decoder  *DuelistFileDecoder
	encoder  *DuelistFileEncoder
	exporter *CSVExporter
	importer *CSVImporter
}

// NewDuelistProcessor creates a new duelist processor for layout
func NewDuelistProcessor(layout Layout) *DuelistProcessor {
	return &DuelistProcessor{
		layout:   layout,
		decoder:  NewDuelistDecoder(layout),
		encoder:  NewDuelistEncoder(layout),
		exporter: NewCSVExporter(layout.Version),
		importer: NewCSVImporter(),
	}
}

// Decode extracts both regions from image and maps the card names and
// duelists on top of them.
func (p *DuelistProcessor) Decode(image []byte) (*GameData, error) {
	slus, err := psx.ReadRegion(image, p.layout.CodeSegment)
	if err != nil {
		return nil, errors.Wrap(err, common.ErrFailedToDecodeRegion)
	}
	waMrg, err := psx.ReadRegion(image, p.layout.MergedData)
	if err != nil {
		return nil, errors.Wrap(err, common.ErrFailedToDecodeRegion)
	}

	names, err := p.decoder.ReadCardNames(slus)
	if err != nil {
		return nil, err
	}
	duelists, err := p.decoder.ReadAllDuelists(slus, waMrg)
	if err != nil {
		return nil, err
	}

	return &GameData{
		Slus:      slus,
		WaMrg:     waMrg,
		CardNames: names,
		Duelists:  duelists,
	}, nil
}

// Encode writes the duelists of data into the merged data region of image.
// The code segment is left untouched since names are never written.
func (p *DuelistProcessor) Encode(image []byte, data *GameData) error {
	if err := p.encoder.WriteAllDuelists(data.WaMrg, data.Duelists); err != nil {
		return err
	}
	if err := psx.WriteRegion(image, p.layout.MergedData, data.WaMrg); err != nil {
		return errors.Wrap(err, common.ErrFailedToEncodeRegion)
	}
	return nil
}

// Dump writes the card lists of every duelist in inputFile to outputDir
func (p *DuelistProcessor) Dump(inputFile, outputDir string) error {
	image, err := psx.LoadImage(inputFile)
	if err != nil {
		return err
	}

	data, err := p.Decode(image)
	if err != nil {
		return err
	}

	return p.exporter.ExportDuelists(outputDir, data.Duelists, data.CardNames)
}

// Patch applies the sparse CSV overlay in csvDir to the duelists of
// inputFile and saves the result to outputFile. Nothing is written unless
// every table loads and validates.
func (p *DuelistProcessor) Patch(inputFile, csvDir, outputFile string) error {
	image, err := psx.LoadImage(inputFile)
	if err != nil {
		return err
	}

	data, err := p.Decode(image)
	if err != nil {
		return err
	}

	if _, err := p.importer.ImportDuelists(csvDir, data.Duelists); err != nil {
		return err
	}
	if err := p.Encode(image, data); err != nil {
		return err
	}

	return psx.SaveImage(outputFile, image)
}

// CardNames returns the names of every card in inputFile
func (p *DuelistProcessor) CardNames(inputFile string) ([]string, error) {
	image, err := psx.LoadImage(inputFile)
	if err != nil {
		return nil, err
	}

	slus, err := psx.ReadRegion(image, p.layout.CodeSegment)
	if err != nil {
		return nil, errors.Wrap(err, common.ErrFailedToDecodeRegion)
	}

	names, err := p.decoder.ReadCardNames(slus)
	if err != nil {
		return nil, err
	}
	common.LogInfo(common.InfoCardNamesRead, len(names))
	return names, nil
}

// ExportCardNames writes the id,name table of every card in inputFile to w
func (p *DuelistProcessor) ExportCardNames(inputFile string, w io.Writer) error {
	names, err := p.CardNames(inputFile)
	if err != nil {
		return err
	}
	return p.exporter.ExportCardNames(w, names)
}
