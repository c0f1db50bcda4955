package psx

import (
	"encoding/binary"
	"hash/crc32"

	"github.com/hansbonini/fmtools/pkg/common"
)

// EDC_POLYNOMIAL is the CD-ROM EDC polynomial 0x8001801B in reflected form.
const EDC_POLYNOMIAL = 0xD8018001

var edcTable = crc32.MakeTable(EDC_POLYNOMIAL)

// ComputeEDC returns the CD-ROM error detection code of data: a reflected
// CRC-32 over EDC_POLYNOMIAL with zero initial value and no final XOR.
func ComputeEDC(data []byte) uint32 {
	var edc uint32
	for _, b := range data {
		edc = (edc >> 8) ^ edcTable[byte(edc)^b]
	}
	return edc
}

// UpdateSectorEDC recomputes the EDC of a Mode 2 Form 1 sector over the
// subheader and user data and stores it little-endian after the data.
// The ECC bytes are left untouched.
func UpdateSectorEDC(sector []byte) uint32 {
	edc := ComputeEDC(sector[CD_SUBHEADER_OFFSET:CD_EDC_OFFSET])
	binary.LittleEndian.PutUint32(sector[CD_EDC_OFFSET:CD_ECC_OFFSET], edc)
	return edc
}

// SectorEDCValid reports whether the stored EDC of sector matches its
// contents.
func SectorEDCValid(sector []byte) bool {
	stored, err := common.Uint32LEAt(sector, CD_EDC_OFFSET)
	if err != nil {
		return false
	}
	return stored == ComputeEDC(sector[CD_SUBHEADER_OFFSET:CD_EDC_OFFSET])
}

// CountBadEDC returns how many whole sectors of region carry a wrong EDC
func CountBadEDC(region []byte) int {
	bad := 0
	for offset := 0; offset+CD_SECTOR_SIZE <= len(region); offset += CD_SECTOR_SIZE {
		if !SectorEDCValid(region[offset : offset+CD_SECTOR_SIZE]) {
			bad++
		}
	}
	return bad
}
