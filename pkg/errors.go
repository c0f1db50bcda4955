package pkg

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrMissingTerminator   = errors.New("string terminator not found")
	ErrInvalidCardListSize = errors.New("card lists must be exactly 1444 bytes (2 per card)")
	ErrInvalidWeightSum    = errors.New("card list weights do not add up to 2048")
	ErrDuelistCount        = errors.New("wrong number of duelists")
	ErrDuelistID           = errors.New("duelist id out of range")
	ErrCardIDOutOfRange    = errors.New("card id out of range")
	ErrWeightOutOfRange    = errors.New("card weight out of range")
	ErrMalformedRow        = errors.New("malformed card list row")
	ErrCardNamesCount      = errors.New("wrong number of card names")
	ErrLayoutInvalid       = errors.New("invalid layout")
	ErrAmbiguousDirectory  = errors.New("more than one directory matches duelist")
)

// WeightSumError reports a card list whose weights do not add up to
// WeightTotal, with every nonzero entry for diagnosis.
type WeightSumError struct {
	Source  string
	Sum     int
	Entries []CardWeight
}

func (e *WeightSumError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "invalid card list at %s: weights add up to %d, want %d", e.Source, e.Sum, WeightTotal)
	for _, entry := range e.Entries {
		fmt.Fprintf(&sb, "\n  %d: %d", entry.CardID, entry.Weight)
	}
	return sb.String()
}

func (e *WeightSumError) Unwrap() error {
	return ErrInvalidWeightSum
}

func newWeightSumError(source string, list *CardList) *WeightSumError {
	return &WeightSumError{
		Source:  source,
		Sum:     list.Sum(),
		Entries: list.Entries(),
	}
}
