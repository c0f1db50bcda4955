package pkg

import (
	"github.com/pkg/errors"

	"github.com/hansbonini/fmtools/pkg/common"
)

// DuelistFileDecoder implements the DuelistDecoder interface
type DuelistFileDecoder struct {
	layout Layout
}

// NewDuelistDecoder creates a new decoder reading records at the offsets of
// layout
func NewDuelistDecoder(layout Layout) *DuelistFileDecoder {
	return &DuelistFileDecoder{layout: layout}
}

// ReadCardList reads a CardList stored as 722 little-endian 16-bit weights
func ReadCardList(data []byte) (CardList, error) {
	var list CardList
	if len(data) != CardListSize {
		return list, errors.Wrapf(ErrInvalidCardListSize, "got %d bytes", len(data))
	}

	for i := range list.Weights {
		list.Weights[i] = uint16(data[2*i]) | uint16(data[2*i+1])<<8
	}
	return list, nil
}

// readName resolves the index-th entry of a name index table. The table
// holds offsets relative to the layout's name base.
func (d *DuelistFileDecoder) readName(slus []byte, indicesOffset, index int) (string, error) {
	relative, err := common.Uint16LEAt(slus, indicesOffset+2*index)
	if err != nil {
		return "", errors.Wrapf(err, "name index %d", index)
	}

	absolute := d.layout.NameOffset + int(relative)
	if absolute >= len(slus) {
		return "", errors.Errorf("name %d at 0x%X is outside the code segment (0x%X bytes)", index, absolute, len(slus))
	}

	name, err := DecodeTerminated(slus[absolute:])
	if err != nil {
		return "", errors.Wrapf(err, "name %d at 0x%X", index, absolute)
	}

	common.LogDebug(common.DebugNameResolved, index, relative, absolute, name)
	return name, nil
}

// ReadCardNames reads the names of all cards from the code segment
func (d *DuelistFileDecoder) ReadCardNames(slus []byte) ([]string, error) {
	names := make([]string, 0, NumberOfCards)
	for i := 0; i < NumberOfCards; i++ {
		name, err := d.readName(slus, d.layout.CardNameIndicesOffset, i)
		if err != nil {
			return nil, errors.Wrap(err, common.ErrFailedToReadCardNames)
		}
		names = append(names, name)
	}

	common.LogDebug(common.DebugCardNamesDecoded, len(names))
	return names, nil
}

// ReadDuelist reads the name and the four card lists of a single duelist
func (d *DuelistFileDecoder) ReadDuelist(slus, waMrg []byte, id int) (Duelist, error) {
	if id < 0 || id >= NumberOfDuelists {
		return Duelist{}, errors.Wrapf(ErrDuelistID, "%d", id)
	}

	name, err := d.readName(slus, d.layout.DuelistNameIndicesOffset, id)
	if err != nil {
		return Duelist{}, errors.Wrapf(err, "duelist %d", id)
	}
	duelist := Duelist{ID: id, Name: name}

	base := d.layout.DuelistOffset(id)
	common.LogDebug(common.DebugDuelistOffsets, id, base,
		base+d.layout.DeckOffset, base+d.layout.SaPowOffset, base+d.layout.BcdOffset, base+d.layout.SaTecOffset)

	for _, kind := range AllCardListKinds {
		data, err := common.SliceAt(waMrg, base+d.layout.CardListOffset(kind), CardListSize)
		if err != nil {
			return Duelist{}, errors.Wrapf(err, "duelist %d %s", id, kind)
		}
		list, err := ReadCardList(data)
		if err != nil {
			return Duelist{}, errors.Wrapf(err, "duelist %d %s", id, kind)
		}
		*duelist.CardList(kind) = list
	}

	return duelist, nil
}

// ReadAllDuelists reads every duelist in id order
func (d *DuelistFileDecoder) ReadAllDuelists(slus, waMrg []byte) ([]Duelist, error) {
	duelists := make([]Duelist, 0, NumberOfDuelists)
	for id := 0; id < NumberOfDuelists; id++ {
		duelist, err := d.ReadDuelist(slus, waMrg, id)
		if err != nil {
			return nil, errors.Wrap(err, common.ErrFailedToReadDuelists)
		}
		duelists = append(duelists, duelist)
	}

	common.LogInfo(common.InfoDuelistsRead, len(duelists))
	return duelists, nil
}
