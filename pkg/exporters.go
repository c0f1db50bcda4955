// Package pkg provides functionality for editing duelist data of Yu-Gi-Oh!
// Forbidden Memories (SLUS-01411).
// This file contains exporters for converting card lists to CSV tables and
// the duelist manifest.
package pkg

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/hansbonini/fmtools/pkg/common"
)

// ManifestFileName is written next to the duelist directories of a dump
const ManifestFileName = "duelists.yaml"

// CardListRow is one line of a card list table
type CardListRow struct {
	CardID int // Official number, starting at 1
	Weight uint16
	Name   string
}

// Record returns the row as CSV fields
func (r CardListRow) Record() []string {
	return []string{strconv.Itoa(r.CardID), strconv.Itoa(int(r.Weight)), r.Name}
}

// DuelistManifest describes the layout of a dump directory
type DuelistManifest struct {
	Version  string                 `yaml:"version"`
	Duelists []DuelistManifestEntry `yaml:"duelists"`
}

// DuelistManifestEntry lists where a duelist was dumped and how many rows
// each of its tables holds.
type DuelistManifestEntry struct {
	ID        int            `yaml:"id"`
	Name      string         `yaml:"name"`
	Directory string         `yaml:"directory"`
	Tables    map[string]int `yaml:"tables"`
}

// DumpCardList converts list to table rows. Cards with a zero weight are
// omitted.
func DumpCardList(list *CardList, names []string) ([]CardListRow, error) {
	if len(names) < NumberOfCards {
		return nil, errors.Wrapf(ErrCardNamesCount, "got %d, want %d", len(names), NumberOfCards)
	}

	var rows []CardListRow
	for _, entry := range list.Entries() {
		rows = append(rows, CardListRow{
			CardID: entry.CardID,
			Weight: entry.Weight,
			Name:   names[entry.CardID-1],
		})
	}
	return rows, nil
}

// DuelistDirectoryName returns the dump directory name of a duelist:
// "<id>.<name>" with the 1-based id.
func DuelistDirectoryName(duelist *Duelist) string {
	return fmt.Sprintf("%d.%s", duelist.ID+1, common.SanitizePathComponent(duelist.Name))
}

// CSVExporter implements the CardListExporter interface
type CSVExporter struct {
	version string
}

// NewCSVExporter creates a new exporter. version is recorded in the manifest.
func NewCSVExporter(version string) *CSVExporter {
	return &CSVExporter{version: version}
}

// ExportCardList writes list as a headerless id,weight,name table
func (e *CSVExporter) ExportCardList(w io.Writer, list *CardList, names []string) error {
	rows, err := DumpCardList(list, names)
	if err != nil {
		return err
	}

	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.Record())
	}
	return csv.NewWriter(w).WriteAll(records)
}

// ExportCardNames writes every card name as an id,name table
func (e *CSVExporter) ExportCardNames(w io.Writer, names []string) error {
	records := make([][]string, 0, len(names))
	for i, name := range names {
		records = append(records, []string{strconv.Itoa(i + 1), name})
	}
	return csv.NewWriter(w).WriteAll(records)
}

type renderedFile struct {
	path string
	data []byte
}

// ExportDuelists dumps every duelist into its own directory under outputDir,
// one CSV per card list, plus the manifest. Every table is rendered before
// the first file is created.
func (e *CSVExporter) ExportDuelists(outputDir string, duelists []Duelist, names []string) error {
	manifest := DuelistManifest{Version: e.version}
	var files []renderedFile

	for i := range duelists {
		duelist := &duelists[i]
		dirName := DuelistDirectoryName(duelist)
		entry := DuelistManifestEntry{
			ID:        duelist.ID + 1,
			Name:      duelist.Name,
			Directory: dirName,
			Tables:    make(map[string]int, len(AllCardListKinds)),
		}

		for _, kind := range AllCardListKinds {
			var buf bytes.Buffer
			if err := e.ExportCardList(&buf, duelist.CardList(kind), names); err != nil {
				return errors.Wrapf(err, "duelist %d %s", duelist.ID+1, kind)
			}
			files = append(files, renderedFile{
				path: filepath.Join(outputDir, dirName, kind.FileName()),
				data: buf.Bytes(),
			})
			entry.Tables[kind.FileName()] = len(duelist.CardList(kind).Entries())
		}
		manifest.Duelists = append(manifest.Duelists, entry)
	}

	manifestData, err := yaml.Marshal(&manifest)
	if err != nil {
		return errors.Wrap(err, common.ErrFailedToWriteManifest)
	}

	if err := os.MkdirAll(outputDir, 0o750); err != nil {
		return errors.Wrap(err, common.ErrFailedToCreateOutputDir)
	}
	for _, f := range files {
		if err := os.MkdirAll(filepath.Dir(f.path), 0o750); err != nil {
			return errors.Wrap(err, common.ErrFailedToCreateOutputDir)
		}
		if err := os.WriteFile(f.path, f.data, 0o600); err != nil {
			return errors.Wrap(err, common.ErrFailedToCreateOutputFile)
		}
	}
	for i := range duelists {
		common.LogDebug(common.InfoDuelistDumped, duelists[i].ID+1, duelists[i].Name, manifest.Duelists[i].Directory)
	}

	manifestPath := filepath.Join(outputDir, ManifestFileName)
	if err := os.WriteFile(manifestPath, manifestData, 0o600); err != nil {
		return errors.Wrap(err, common.ErrFailedToWriteManifest)
	}

	common.LogInfo(common.InfoTablesDumped, len(files), outputDir)
	common.LogInfo(common.InfoManifestWritten, manifestPath)
	return nil
}
