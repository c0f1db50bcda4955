package psx

import (
	"github.com/pkg/errors"

	"github.com/hansbonini/fmtools/pkg/common"
)

// DecodeSectors extracts and concatenates the user data of every Mode 2
// Form 1 sector in region. The sync, header, subheader, EDC and ECC bytes
// are dropped. region must be made of whole sectors.
func DecodeSectors(region []byte) ([]byte, error) {
	if len(region)%CD_SECTOR_SIZE != 0 {
		return nil, errors.Wrapf(ErrNotSectorAligned, "region size %d is not a multiple of %d", len(region), CD_SECTOR_SIZE)
	}

	sectors := len(region) / CD_SECTOR_SIZE
	payload := make([]byte, sectors*CD_DATA_SIZE)

	for i := 0; i < sectors; i++ {
		sector := region[i*CD_SECTOR_SIZE : (i+1)*CD_SECTOR_SIZE]
		copy(payload[i*CD_DATA_SIZE:], sector[CD_DATA_OFFSET:CD_EDC_OFFSET])
		common.LogDebug(common.DebugSectorDecoded, i, i*CD_DATA_SIZE)
	}

	return payload, nil
}

// EncodeSectors writes payload into the user data of consecutive sectors of
// region, zero-padding the last chunk, and recomputes each written sector's
// EDC. Sync, header and subheader bytes are preserved; sectors past the end
// of payload are not modified.
func EncodeSectors(payload []byte, region []byte) error {
	if len(region)%CD_SECTOR_SIZE != 0 {
		return errors.Wrapf(ErrNotSectorAligned, "region size %d is not a multiple of %d", len(region), CD_SECTOR_SIZE)
	}

	available := len(region) / CD_SECTOR_SIZE
	needed := SectorsForPayload(len(payload))
	if needed > available {
		return errors.Wrapf(ErrPayloadTooLarge, "%d bytes need %d sectors, region has %d", len(payload), needed, available)
	}

	for i := 0; i < needed; i++ {
		sector := region[i*CD_SECTOR_SIZE : (i+1)*CD_SECTOR_SIZE]
		data := sector[CD_DATA_OFFSET:CD_EDC_OFFSET]

		end := (i + 1) * CD_DATA_SIZE
		if end > len(payload) {
			end = len(payload)
		}
		n := copy(data, payload[i*CD_DATA_SIZE:end])
		for j := n; j < CD_DATA_SIZE; j++ {
			data[j] = 0
		}

		edc := UpdateSectorEDC(sector)
		common.LogDebug(common.DebugSectorEncoded, i, edc)
	}

	return nil
}

// SectorsForPayload returns how many sectors are needed to hold size bytes
// of user data.
func SectorsForPayload(size int) int {
	return (size + CD_DATA_SIZE - 1) / CD_DATA_SIZE
}
