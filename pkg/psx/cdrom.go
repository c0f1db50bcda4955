// Package psx provides PlayStation-specific structures and functionality.
// This file contains CD-ROM related structures for PlayStation disc images.
package psx

// Sector size constants for PlayStation CD-ROM
const (
	CD_SECTOR_SIZE       = 2352                                    // Full CD sector size
	CD_DATA_SIZE         = 2048                                    // Data portion of Mode 2 Form 1 sector
	CD_SYNC_SIZE         = 12                                      // Sync pattern size
	CD_HEADER_SIZE       = 4                                       // Header size (3 address bytes + 1 mode byte)
	CD_SUBHEADER_SIZE    = 8                                       // XA subheader size
	CD_EDC_SIZE          = 4                                       // Error Detection Code size
	CD_ECC_SIZE          = 276                                     // Error Correction Code size
	CD_SUBHEADER_OFFSET  = CD_SYNC_SIZE + CD_HEADER_SIZE           // 16
	CD_DATA_OFFSET       = CD_SUBHEADER_OFFSET + CD_SUBHEADER_SIZE // 24
	CD_EDC_OFFSET        = CD_DATA_OFFSET + CD_DATA_SIZE           // 2072
	CD_ECC_OFFSET        = CD_EDC_OFFSET + CD_EDC_SIZE             // 2076
	ISO_DESCRIPTOR_LBA   = 16                                      // Primary Volume Descriptor
	ISO_ROOT_RECORD_OFFS = 156                                     // Root directory record inside the PVD
	CD_SUBMODE_FORM2     = 0x20                                    // XA submode bit set on Form 2 sectors
)

// SectorM2F1 represents a Mode 2 Form 1 sector (used in regular files)
type SectorM2F1 struct {
	Sync      [12]byte   // Sync pattern
	Address   [3]byte    // Sector address (MSF format)
	Mode      byte       // Mode (usually 2)
	SubHeader [8]byte    // XA subheader (file, channel, submode, coding; twice)
	Data      [2048]byte // User data
	EDC       [4]byte    // Error Detection Code
	ECC       [276]byte  // Error Correction Code
}

// ParseSectorM2F1 copies a raw 2352-byte sector into its structured form.
func ParseSectorM2F1(raw []byte) (*SectorM2F1, error) {
	if len(raw) != CD_SECTOR_SIZE {
		return nil, ErrNotSectorAligned
	}

	sector := &SectorM2F1{}
	copy(sector.Sync[:], raw[0:12])
	copy(sector.Address[:], raw[12:15])
	sector.Mode = raw[15]
	copy(sector.SubHeader[:], raw[CD_SUBHEADER_OFFSET:CD_DATA_OFFSET])
	copy(sector.Data[:], raw[CD_DATA_OFFSET:CD_EDC_OFFSET])
	copy(sector.EDC[:], raw[CD_EDC_OFFSET:CD_ECC_OFFSET])
	copy(sector.ECC[:], raw[CD_ECC_OFFSET:CD_SECTOR_SIZE])

	return sector, nil
}

// ISODescriptor holds the fields of the ISO9660 primary volume descriptor
// that are needed to walk the directory tree.
type ISODescriptor struct {
	Type             byte        // Volume descriptor type
	ID               string      // Standard identifier "CD001"
	Version          byte        // Volume descriptor version
	SystemID         string      // System identifier
	VolumeID         string      // Volume identifier
	VolumeSpaceSize  uint32      // Volume space size in logical blocks
	LogicalBlockSize uint16      // Logical block size (2048 on PSX discs)
	Root             CDFileEntry // Root directory record
}

// CDFileEntry represents a file or directory found in the CD image
type CDFileEntry struct {
	Name       string // File name
	Path       string // Full path within CD
	LBA        uint32 // Logical Block Address
	MSF        string // Minutes:Seconds:Frames format
	Size       uint32 // File size in bytes
	IsDir      bool   // Whether this is a directory
	ExtentSize uint32 // Size in sectors
}
