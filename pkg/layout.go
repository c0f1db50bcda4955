package pkg

import (
	"os"
	"sort"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/hansbonini/fmtools/pkg/common"
	"github.com/hansbonini/fmtools/pkg/psx"
)

// Layout locates the game data inside a disc image. Region offsets are in
// sectors, every other offset is in bytes relative to the decoded payload
// of its region.
type Layout struct {
	Version     string     `yaml:"version"`
	CodeSegment psx.Region `yaml:"code_segment"`
	MergedData  psx.Region `yaml:"merged_data"`

	// Names are stored as 16-bit offsets relative to NameOffset
	NameOffset               int `yaml:"name_offset"`
	CardNameIndicesOffset    int `yaml:"card_name_indices_offset"`
	DuelistNameIndicesOffset int `yaml:"duelist_name_indices_offset"`

	DuelistDataOffset int `yaml:"duelist_data_offset"`
	DuelistDataSize   int `yaml:"duelist_data_size"`
	DeckOffset        int `yaml:"deck_offset"`
	SaPowOffset       int `yaml:"sa_pow_offset"`
	BcdOffset         int `yaml:"bcd_offset"`
	SaTecOffset       int `yaml:"sa_tec_offset"`
}

// DefaultLayout returns the layout of the US release, SLUS-01411
func DefaultLayout() Layout {
	return Layout{
		Version: "SLUS-01411",
		CodeSegment: psx.Region{
			Name:        "SLUS_014.11",
			StartSector: 24,
			Sectors:     929,
		},
		MergedData: psx.Region{
			Name:        "DATA/WA_MRG.MRG",
			StartSector: 10102,
			Sectors:     18432,
		},
		NameOffset:               0x1C0800,
		CardNameIndicesOffset:    0x1C6002,
		DuelistNameIndicesOffset: 0x1C6652,
		DuelistDataOffset:        0xE9B000,
		DuelistDataSize:          0x1800,
		DeckOffset:               0x000,
		SaPowOffset:              0x5B4,
		BcdOffset:                0xB68,
		SaTecOffset:              0x111C,
	}
}

// LoadLayout reads a YAML layout from path. Keys missing from the file keep
// their DefaultLayout value.
func LoadLayout(path string) (Layout, error) {
	layout := DefaultLayout()

	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, errors.Wrap(err, common.ErrFailedToLoadLayout)
	}
	if err := yaml.Unmarshal(data, &layout); err != nil {
		return Layout{}, errors.Wrapf(err, "%s: %s", common.ErrFailedToLoadLayout, path)
	}
	if err := layout.Validate(); err != nil {
		return Layout{}, errors.Wrapf(err, "%s: %s", common.ErrFailedToLoadLayout, path)
	}

	common.LogInfo(common.InfoLayoutLoaded, path)
	return layout, nil
}

// ResolveLayout returns the layout stored at path, or DefaultLayout when
// path is empty.
func ResolveLayout(path string) (Layout, error) {
	if path == "" {
		return DefaultLayout(), nil
	}
	return LoadLayout(path)
}

// CardListOffset returns the offset of a card list inside a duelist record
func (l Layout) CardListOffset(kind CardListKind) int {
	switch kind {
	case DropsSaPow:
		return l.SaPowOffset
	case DropsBcd:
		return l.BcdOffset
	case DropsSaTec:
		return l.SaTecOffset
	}
	return l.DeckOffset
}

// DuelistOffset returns the offset of a duelist record in the merged data
func (l Layout) DuelistOffset(id int) int {
	return l.DuelistDataOffset + id*l.DuelistDataSize
}

// Validate checks that every table fits inside its region and that the card
// lists of a duelist record do not overlap.
func (l Layout) Validate() error {
	if l.CodeSegment.Sectors <= 0 || l.MergedData.Sectors <= 0 {
		return errors.Wrap(ErrLayoutInvalid, "regions must have at least one sector")
	}
	if l.CodeSegment.StartSector < 0 || l.MergedData.StartSector < 0 {
		return errors.Wrap(ErrLayoutInvalid, "regions must start at a non-negative sector")
	}

	codeSize := l.CodeSegment.PayloadSize()
	checks := []struct {
		name   string
		offset int
		length int
		limit  int
	}{
		{"name_offset", l.NameOffset, 1, codeSize},
		{"card_name_indices_offset", l.CardNameIndicesOffset, 2 * NumberOfCards, codeSize},
		{"duelist_name_indices_offset", l.DuelistNameIndicesOffset, 2 * NumberOfDuelists, codeSize},
		{"duelist_data_offset", l.DuelistDataOffset, NumberOfDuelists * l.DuelistDataSize, l.MergedData.PayloadSize()},
	}
	for _, c := range checks {
		if c.offset < 0 || c.offset+c.length > c.limit {
			return errors.Wrapf(ErrLayoutInvalid, "%s 0x%X (+%d bytes) exceeds region size 0x%X", c.name, c.offset, c.length, c.limit)
		}
	}

	offsets := make([]int, 0, len(AllCardListKinds))
	for _, kind := range AllCardListKinds {
		offset := l.CardListOffset(kind)
		if offset < 0 || offset+CardListSize > l.DuelistDataSize {
			return errors.Wrapf(ErrLayoutInvalid, "%s offset 0x%X exceeds duelist record size 0x%X", kind, offset, l.DuelistDataSize)
		}
		offsets = append(offsets, offset)
	}
	sort.Ints(offsets)
	for i := 1; i < len(offsets); i++ {
		if offsets[i]-offsets[i-1] < CardListSize {
			return errors.Wrapf(ErrLayoutInvalid, "card lists at 0x%X and 0x%X overlap", offsets[i-1], offsets[i])
		}
	}

	return nil
}
