package pkg

import (
	"io"
)

// The game data has no way to tell where these arrays end, so their sizes
// are fixed for every supported layout.
const (
	NumberOfCards    = 722
	NumberOfDuelists = 39
	CardListSize     = 2 * NumberOfCards // 2 bytes per card weight
	WeightTotal      = 2048              // Every card list must add up to this
	StringTerminator = 0xFF
)

// CardList is a list of weights corresponding to each card. Weights are used
// to generate a duelist's deck and to pick the card dropped after a victory.
// Index i holds the weight of the card with official number i+1.
type CardList struct {
	Weights [NumberOfCards]uint16
}

// CardWeight is a single nonzero entry of a CardList, with the official
// (1-based) card number.
type CardWeight struct {
	CardID int
	Weight uint16
}

// Sum returns the total of all weights.
func (c *CardList) Sum() int {
	total := 0
	for _, w := range c.Weights {
		total += int(w)
	}
	return total
}

// IsValid reports whether the weights add up to WeightTotal. A zero CardList
// is a valid starting point in memory but never valid to persist.
func (c *CardList) IsValid() bool {
	return c.Sum() == WeightTotal
}

// Entries returns the nonzero weights in ascending card order.
func (c *CardList) Entries() []CardWeight {
	var entries []CardWeight
	for i, w := range c.Weights {
		if w != 0 {
			entries = append(entries, CardWeight{CardID: i + 1, Weight: w})
		}
	}
	return entries
}

// CardListKind identifies one of the four card lists stored per duelist
type CardListKind int

const (
	Deck CardListKind = iota
	DropsSaPow
	DropsBcd
	DropsSaTec
)

// AllCardListKinds lists every card list kind in file dump order
var AllCardListKinds = []CardListKind{Deck, DropsBcd, DropsSaPow, DropsSaTec}

// FileName returns the name of the CSV file holding this card list
func (k CardListKind) FileName() string {
	switch k {
	case Deck:
		return "deck.csv"
	case DropsSaPow:
		return "drops-sa-pow.csv"
	case DropsBcd:
		return "drops-bcd.csv"
	case DropsSaTec:
		return "drops-sa-tec.csv"
	}
	return "unknown.csv"
}

func (k CardListKind) String() string {
	switch k {
	case Deck:
		return "deck"
	case DropsSaPow:
		return "SA-POW drops"
	case DropsBcd:
		return "BCD drops"
	case DropsSaTec:
		return "SA-TEC drops"
	}
	return "unknown"
}

// Duelist holds the deck and drop tables of one of the game's opponents.
// Name is read-only: it is decoded from the executable and never written back.
type Duelist struct {
	ID         int // 0-based
	Name       string
	Deck       CardList
	DropsSaPow CardList
	DropsBcd   CardList
	DropsSaTec CardList
}

// CardList returns the card list of the given kind.
func (d *Duelist) CardList(kind CardListKind) *CardList {
	switch kind {
	case DropsSaPow:
		return &d.DropsSaPow
	case DropsBcd:
		return &d.DropsBcd
	case DropsSaTec:
		return &d.DropsSaTec
	}
	return &d.Deck
}

// GameData is everything decoded from one disc image: the raw payload of
// both regions and the records mapped on top of them.
type GameData struct {
	Slus      []byte // Code segment payload (SLUS_014.11)
	WaMrg     []byte // Merged data payload (DATA/WA_MRG.MRG)
	CardNames []string
	Duelists  []Duelist
}

// DuelistDecoder defines methods for reading records from decoded payloads
type DuelistDecoder interface {
	ReadCardNames(slus []byte) ([]string, error)
	ReadDuelist(slus, waMrg []byte, id int) (Duelist, error)
	ReadAllDuelists(slus, waMrg []byte) ([]Duelist, error)
}

// DuelistEncoder defines methods for writing records back to a payload
type DuelistEncoder interface {
	WriteDuelist(waMrg []byte, id int, duelist *Duelist) error
	WriteAllDuelists(waMrg []byte, duelists []Duelist) error
}

// CardListExporter defines methods for exporting card lists as tables
type CardListExporter interface {
	ExportCardList(w io.Writer, list *CardList, names []string) error
	ExportDuelists(outputDir string, duelists []Duelist, names []string) error
}

// CardListImporter defines methods for importing card lists from tables
type CardListImporter interface {
	ImportCardList(r io.Reader, source string) (CardList, error)
	ApplyOverlay(dir string, duelist *Duelist) (int, error)
	ImportDuelists(topLevelDir string, duelists []Duelist) (int, error)
}

var (
	_ DuelistDecoder   = (*DuelistFileDecoder)(nil)
	_ DuelistEncoder   = (*DuelistFileEncoder)(nil)
	_ CardListExporter = (*CSVExporter)(nil)
	_ CardListImporter = (*CSVImporter)(nil)
)
