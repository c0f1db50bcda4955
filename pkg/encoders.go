package pkg

import (
	"github.com/pkg/errors"

	"github.com/hansbonini/fmtools/pkg/common"
)

// DuelistFileEncoder implements the DuelistEncoder interface
type DuelistFileEncoder struct {
	layout Layout
}

// NewDuelistEncoder creates a new encoder writing records at the offsets of
// layout
func NewDuelistEncoder(layout Layout) *DuelistFileEncoder {
	return &DuelistFileEncoder{layout: layout}
}

// WriteCardList stores list into target as little-endian 16-bit weights.
// Lists that do not add up to WeightTotal are rejected before any byte of
// target changes.
func WriteCardList(list *CardList, target []byte) error {
	if len(target) != CardListSize {
		return errors.Wrapf(ErrInvalidCardListSize, "got %d bytes", len(target))
	}
	if !list.IsValid() {
		return errors.Wrapf(ErrInvalidWeightSum, "sum is %d", list.Sum())
	}

	for i, w := range list.Weights {
		if err := common.PutUint16LEAt(target, 2*i, w); err != nil {
			return err
		}
	}
	return nil
}

// WriteDuelist stores the four card lists of duelist into the record of id.
// The name is never written.
func (e *DuelistFileEncoder) WriteDuelist(waMrg []byte, id int, duelist *Duelist) error {
	if id < 0 || id >= NumberOfDuelists {
		return errors.Wrapf(ErrDuelistID, "%d", id)
	}
	if err := validateDuelist(duelist); err != nil {
		return errors.Wrapf(err, "duelist %d (%s)", id, duelist.Name)
	}

	base := e.layout.DuelistOffset(id)
	for _, kind := range AllCardListKinds {
		target, err := common.SliceAt(waMrg, base+e.layout.CardListOffset(kind), CardListSize)
		if err != nil {
			return errors.Wrapf(err, "duelist %d %s", id, kind)
		}
		if err := WriteCardList(duelist.CardList(kind), target); err != nil {
			return errors.Wrapf(err, "duelist %d %s", id, kind)
		}
	}
	return nil
}

// WriteAllDuelists stores every duelist, by position, into waMrg. All card
// lists are validated before the first write.
func (e *DuelistFileEncoder) WriteAllDuelists(waMrg []byte, duelists []Duelist) error {
	if len(duelists) != NumberOfDuelists {
		return errors.Wrapf(ErrDuelistCount, "got %d, want %d", len(duelists), NumberOfDuelists)
	}
	for id := range duelists {
		if err := validateDuelist(&duelists[id]); err != nil {
			return errors.Wrapf(err, "%s: duelist %d (%s)", common.ErrFailedToWriteDuelists, id, duelists[id].Name)
		}
	}

	for id := range duelists {
		if err := e.WriteDuelist(waMrg, id, &duelists[id]); err != nil {
			return errors.Wrap(err, common.ErrFailedToWriteDuelists)
		}
	}

	common.LogInfo(common.InfoDuelistsWritten, len(duelists))
	return nil
}

func validateDuelist(duelist *Duelist) error {
	for _, kind := range AllCardListKinds {
		list := duelist.CardList(kind)
		if !list.IsValid() {
			return errors.Wrapf(ErrInvalidWeightSum, "%s sum is %d", kind, list.Sum())
		}
	}
	return nil
}
