package pkg

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hansbonini/fmtools/pkg/psx"
)

const fixtureSectors = 148

// testLayout is a scaled down layout: the code segment starts at sector 20,
// the merged data right after it, and the first duelist record 0x800 bytes
// into the merged data.
func testLayout() Layout {
	return Layout{
		Version:                  "TEST",
		CodeSegment:              psx.Region{Name: "SLUS_014.11", StartSector: 20, Sectors: 8},
		MergedData:               psx.Region{Name: "DATA/WA_MRG.MRG", StartSector: 28, Sectors: 120},
		NameOffset:               0x800,
		CardNameIndicesOffset:    0x000,
		DuelistNameIndicesOffset: 0x600,
		DuelistDataOffset:        0x800,
		DuelistDataSize:          0x1800,
		DeckOffset:               0x000,
		SaPowOffset:              0x5B4,
		BcdOffset:                0xB68,
		SaTecOffset:              0x111C,
	}
}

func fixtureCardName(i int) string {
	switch i {
	case 0:
		return "Blue-eyes White Dragon"
	case 1:
		return "Mystical Elf"
	}
	return fmt.Sprintf("Card %d", i+1)
}

func fixtureDuelistName(i int) string {
	switch i {
	case 0:
		return "Simon Muran"
	case 1:
		return "Teana"
	}
	return fmt.Sprintf("Duelist %d", i+1)
}

// fixtureDuelist returns the card lists stored for duelist id
func fixtureDuelist(id int) Duelist {
	d := Duelist{ID: id, Name: fixtureDuelistName(id)}
	d.Deck.Weights[id] = 1024
	d.Deck.Weights[id+99] = 1024
	d.DropsSaPow.Weights[id+199] = 2048
	d.DropsBcd.Weights[id+299] = 1000
	d.DropsBcd.Weights[id+300] = 1048
	d.DropsSaTec.Weights[NumberOfCards-1] = 2048
	return d
}

var encodeTable = func() map[rune]byte {
	table := make(map[rune]byte)
	for b := 255; b >= 0; b-- {
		if r := ByteToChar(byte(b)); r != UnknownChar {
			table[r] = byte(b)
		}
	}
	return table
}()

func encodeText(t *testing.T, s string) []byte {
	t.Helper()
	out := make([]byte, 0, len(s)+1)
	for _, r := range s {
		b, ok := encodeTable[r]
		require.True(t, ok, "no encoding for %q", r)
		out = append(out, b)
	}
	return append(out, StringTerminator)
}

// buildPayloads renders the code segment and merged data payloads of the
// fixture without going through the encoder.
func buildPayloads(t *testing.T, layout Layout) (slus, waMrg []byte) {
	t.Helper()
	slus = make([]byte, layout.CodeSegment.PayloadSize())
	waMrg = make([]byte, layout.MergedData.PayloadSize())

	cursor := layout.NameOffset
	putName := func(indexOffset int, name string) {
		binary.LittleEndian.PutUint16(slus[indexOffset:], uint16(cursor-layout.NameOffset))
		cursor += copy(slus[cursor:], encodeText(t, name))
	}
	for i := 0; i < NumberOfCards; i++ {
		putName(layout.CardNameIndicesOffset+2*i, fixtureCardName(i))
	}
	for i := 0; i < NumberOfDuelists; i++ {
		putName(layout.DuelistNameIndicesOffset+2*i, fixtureDuelistName(i))
	}
	require.Less(t, cursor, len(slus))

	for id := 0; id < NumberOfDuelists; id++ {
		d := fixtureDuelist(id)
		for _, kind := range AllCardListKinds {
			offset := layout.DuelistOffset(id) + layout.CardListOffset(kind)
			for i, w := range d.CardList(kind).Weights {
				binary.LittleEndian.PutUint16(waMrg[offset+2*i:], w)
			}
		}
	}
	return slus, waMrg
}

func appendDirRecord(buf []byte, name string, lba, size uint32, dir bool) []byte {
	length := 33 + len(name)
	if length%2 != 0 {
		length++
	}
	record := make([]byte, length)
	record[0] = byte(length)
	binary.LittleEndian.PutUint32(record[2:6], lba)
	binary.LittleEndian.PutUint32(record[10:14], size)
	if dir {
		record[25] = 0x02
	}
	record[32] = byte(len(name))
	copy(record[33:], name)
	return append(buf, record...)
}

func sectorData(image []byte, lba int) []byte {
	start := lba*psx.CD_SECTOR_SIZE + psx.CD_DATA_OFFSET
	return image[start : start+psx.CD_DATA_SIZE]
}

// buildImage returns a disc image holding the fixture at testLayout, with
// an ISO9660 file table pointing at both regions.
func buildImage(t *testing.T) []byte {
	t.Helper()
	layout := testLayout()
	image := make([]byte, fixtureSectors*psx.CD_SECTOR_SIZE)
	for lba := 0; lba < fixtureSectors; lba++ {
		sector := image[lba*psx.CD_SECTOR_SIZE:]
		sector[0] = 0x00
		for i := 1; i < 11; i++ {
			sector[i] = 0xFF
		}
		sector[15] = 0x02
		sector[18] = 0x08 // data submode, also in the copy below
		sector[22] = 0x08
	}

	pvd := sectorData(image, psx.ISO_DESCRIPTOR_LBA)
	pvd[0] = 0x01
	copy(pvd[1:6], "CD001")
	pvd[6] = 0x01
	copy(pvd[8:40], fmt.Sprintf("%-32s", "PLAYSTATION"))
	copy(pvd[40:72], fmt.Sprintf("%-32s", "SLUS_01411"))
	binary.LittleEndian.PutUint32(pvd[80:84], fixtureSectors)
	binary.LittleEndian.PutUint16(pvd[128:130], psx.CD_DATA_SIZE)
	copy(pvd[psx.ISO_ROOT_RECORD_OFFS:], appendDirRecord(nil, "\x00", 17, psx.CD_DATA_SIZE, true))

	var records []byte
	records = appendDirRecord(records, "\x00", 17, psx.CD_DATA_SIZE, true)
	records = appendDirRecord(records, "\x01", 17, psx.CD_DATA_SIZE, true)
	records = appendDirRecord(records, "DATA", 18, psx.CD_DATA_SIZE, true)
	records = appendDirRecord(records, "SLUS_014.11;1", 20, uint32(layout.CodeSegment.PayloadSize()), false)
	copy(sectorData(image, 17), records)

	records = nil
	records = appendDirRecord(records, "\x00", 18, psx.CD_DATA_SIZE, true)
	records = appendDirRecord(records, "\x01", 17, psx.CD_DATA_SIZE, true)
	records = appendDirRecord(records, "WA_MRG.MRG;1", 28, uint32(layout.MergedData.PayloadSize()), false)
	copy(sectorData(image, 18), records)

	slus, waMrg := buildPayloads(t, layout)
	require.NoError(t, psx.WriteRegion(image, layout.CodeSegment, slus))
	require.NoError(t, psx.WriteRegion(image, layout.MergedData, waMrg))
	return image
}

// writeImage stores the fixture image in a temporary directory
func writeImage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fm.bin")
	require.NoError(t, os.WriteFile(path, buildImage(t), 0o600))
	return path
}

func fixtureNames() []string {
	names := make([]string, NumberOfCards)
	for i := range names {
		names[i] = fixtureCardName(i)
	}
	return names
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}
