package pkg

import (
	"encoding/csv"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/hansbonini/fmtools/pkg/common"
)

// CSVImporter implements the CardListImporter interface
type CSVImporter struct{}

// NewCSVImporter creates a new importer instance
func NewCSVImporter() *CSVImporter {
	return &CSVImporter{}
}

// LoadCardList builds a CardList from id,weight[,name] records. The name
// column is ignored. A card listed twice keeps the weight of its last row.
// source names the table in error messages.
func LoadCardList(records [][]string, source string) (CardList, error) {
	var list CardList

	for i, record := range records {
		line := i + 1
		if len(record) < 2 {
			return CardList{}, errors.Wrapf(ErrMalformedRow, "%s:%d: want at least 2 fields, got %d", source, line, len(record))
		}

		id, err := strconv.Atoi(strings.TrimSpace(record[0]))
		if err != nil {
			return CardList{}, errors.Wrapf(ErrMalformedRow, "%s:%d: card id %q", source, line, record[0])
		}
		if id < 1 || id > NumberOfCards {
			return CardList{}, errors.Wrapf(ErrCardIDOutOfRange, "%s:%d: %d not in 1..%d", source, line, id, NumberOfCards)
		}

		weight, err := parseWeight(record[1])
		if err != nil {
			return CardList{}, errors.Wrapf(err, "%s:%d", source, line)
		}

		list.Weights[id-1] = weight
	}

	if !list.IsValid() {
		sumErr := newWeightSumError(source, &list)
		common.LogError("%s: %s (sum %d)", common.ErrInvalidCardListDetected, source, sumErr.Sum)
		for _, entry := range sumErr.Entries {
			common.LogError(common.DebugCardListRow, entry.CardID, entry.Weight)
		}
		return CardList{}, sumErr
	}
	return list, nil
}

func parseWeight(field string) (uint16, error) {
	value, err := strconv.ParseInt(strings.TrimSpace(field), 10, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrMalformedRow, "weight %q", field)
	}
	weight, err := common.SafeInt64ToInt(value)
	if err != nil || weight < 0 || weight > WeightTotal {
		return 0, errors.Wrapf(ErrWeightOutOfRange, "%d not in 0..%d", value, WeightTotal)
	}
	return common.SafeIntToUint16(weight)
}

// ImportCardList reads a headerless CSV card list table from r
func (i *CSVImporter) ImportCardList(r io.Reader, source string) (CardList, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return CardList{}, errors.Wrapf(err, "%s: %s", common.ErrFailedToParseCardList, source)
	}
	return LoadCardList(records, source)
}

func (i *CSVImporter) importCardListFile(path string) (CardList, bool, error) {
	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return CardList{}, false, nil
	}
	if err != nil {
		return CardList{}, false, errors.Wrap(err, common.ErrFailedToParseCardList)
	}
	defer file.Close()

	list, err := i.ImportCardList(file, path)
	if err != nil {
		return CardList{}, false, err
	}
	return list, true, nil
}

// ApplyOverlay replaces the card lists of duelist with the tables found in
// dir. Missing tables keep their current value. The duelist is only modified
// when every present table loads. It returns the number of tables replaced.
func (i *CSVImporter) ApplyOverlay(dir string, duelist *Duelist) (int, error) {
	loaded := make(map[CardListKind]CardList, len(AllCardListKinds))

	for _, kind := range AllCardListKinds {
		list, found, err := i.importCardListFile(filepath.Join(dir, kind.FileName()))
		if err != nil {
			return 0, errors.Wrapf(err, "%s: duelist %d", common.ErrFailedToApplyOverlay, duelist.ID+1)
		}
		if !found {
			common.LogDebug(common.DebugOverlayMissing, kind.FileName(), duelist.ID+1)
			continue
		}
		loaded[kind] = list
	}

	for _, kind := range AllCardListKinds {
		if list, ok := loaded[kind]; ok {
			*duelist.CardList(kind) = list
			common.LogInfo(common.InfoOverlayApplied, kind.FileName(), duelist.ID+1, duelist.Name)
		}
	}
	return len(loaded), nil
}

// ImportDuelists applies the overlay directory of every duelist found under
// topLevelDir. A duelist directory is "<id>.<name>"; when that exact name is
// missing, the single entry whose part before the first '.' is the id is
// used instead. Duelists without a directory are left untouched.
func (i *CSVImporter) ImportDuelists(topLevelDir string, duelists []Duelist) (int, error) {
	entries, err := os.ReadDir(topLevelDir)
	if err != nil {
		return 0, errors.Wrap(err, common.ErrFailedToApplyOverlay)
	}

	byID := make(map[int][]string)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		prefix, _, _ := strings.Cut(entry.Name(), ".")
		id, err := strconv.Atoi(prefix)
		if err != nil || id < 1 || id > len(duelists) {
			common.LogWarn(common.WarnUnknownDirectory, entry.Name())
			continue
		}
		byID[id] = append(byID[id], entry.Name())
	}

	applied := 0
	for index := range duelists {
		duelist := &duelists[index]
		dirName, err := resolveDuelistDirectory(byID[index+1], duelist)
		if err != nil {
			return 0, err
		}
		if dirName == "" {
			common.LogDebug(common.DebugDirectoryMissing, index+1, topLevelDir)
			continue
		}
		common.LogDebug(common.DebugDirectoryResolved, index+1, dirName)

		n, err := i.ApplyOverlay(filepath.Join(topLevelDir, dirName), duelist)
		if err != nil {
			return 0, err
		}
		applied += n
	}

	common.LogInfo(common.InfoOverlaySummary, applied, topLevelDir)
	return applied, nil
}

func resolveDuelistDirectory(candidates []string, duelist *Duelist) (string, error) {
	switch len(candidates) {
	case 0:
		return "", nil
	case 1:
		return candidates[0], nil
	}

	exact := DuelistDirectoryName(duelist)
	for _, name := range candidates {
		if name == exact {
			return name, nil
		}
	}
	return "", errors.Wrapf(ErrAmbiguousDirectory, "%s %d: %s", common.ErrAmbiguousDuelistDirectory, duelist.ID+1, strings.Join(candidates, ", "))
}
