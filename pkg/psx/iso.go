// Package psx provides PlayStation-specific CD-ROM reading functionality.
// This file walks the ISO9660 tree of an in-memory disc image so the fixed
// regions used by the tools can be checked against the real file table.
package psx

import (
	"encoding/binary"
	"strings"

	"github.com/pkg/errors"

	"github.com/hansbonini/fmtools/pkg/common"
)

// ISOReader reads ISO9660 structures from a raw Mode 2 disc image
type ISOReader struct {
	image        []byte
	totalSectors int
}

// NewISOReader creates a new reader over image, which must be made of whole
// sectors.
func NewISOReader(image []byte) (*ISOReader, error) {
	if len(image)%CD_SECTOR_SIZE != 0 {
		return nil, errors.Wrapf(ErrNotSectorAligned, "image size %d", len(image))
	}
	return &ISOReader{
		image:        image,
		totalSectors: len(image) / CD_SECTOR_SIZE,
	}, nil
}

// SectorData returns the user data of the sector at lba without copying it.
func (r *ISOReader) SectorData(lba int) ([]byte, error) {
	if lba < 0 || lba >= r.totalSectors {
		return nil, errors.Wrapf(ErrRegionOutOfBounds, "LBA %d out of bounds (total: %d)", lba, r.totalSectors)
	}
	start := lba*CD_SECTOR_SIZE + CD_DATA_OFFSET
	return r.image[start : start+CD_DATA_SIZE], nil
}

// ReadDescriptor reads the primary volume descriptor from sector 16
func (r *ISOReader) ReadDescriptor() (*ISODescriptor, error) {
	data, err := r.SectorData(ISO_DESCRIPTOR_LBA)
	if err != nil {
		return nil, err
	}

	// Check for ISO9660 signature: 0x01 + "CD001"
	if data[0] != 0x01 || string(data[1:6]) != "CD001" {
		return nil, errors.Wrap(ErrInvalidISO9660, "missing CD001 primary volume descriptor")
	}

	root, _, err := parseDirectoryRecord(data[ISO_ROOT_RECORD_OFFS : ISO_ROOT_RECORD_OFFS+34])
	if err != nil {
		return nil, errors.Wrap(err, "root directory record")
	}
	root.Name = ""
	root.IsDir = true

	return &ISODescriptor{
		Type:             data[0],
		ID:               string(data[1:6]),
		Version:          data[6],
		SystemID:         strings.TrimRight(string(data[8:40]), " "),
		VolumeID:         strings.TrimRight(string(data[40:72]), " "),
		VolumeSpaceSize:  binary.LittleEndian.Uint32(data[80:84]),
		LogicalBlockSize: binary.LittleEndian.Uint16(data[128:130]),
		Root:             root,
	}, nil
}

// ReadDirectory lists the entries of a directory extent, skipping "." and "..".
// Records never cross a sector boundary; a zero length byte ends the records
// of the current sector.
func (r *ISOReader) ReadDirectory(dir CDFileEntry) ([]CDFileEntry, error) {
	var entries []CDFileEntry

	for sector := 0; sector < int(dir.ExtentSize); sector++ {
		data, err := r.SectorData(int(dir.LBA) + sector)
		if err != nil {
			return nil, errors.Wrapf(err, "directory %q", dir.Path)
		}

		offset := 0
		for offset < CD_DATA_SIZE {
			length := int(data[offset])
			if length == 0 {
				break
			}
			if offset+length > CD_DATA_SIZE {
				return nil, errors.Wrapf(ErrInvalidISO9660, "record at 0x%X exceeds sector bounds", offset)
			}

			entry, special, err := parseDirectoryRecord(data[offset : offset+length])
			if err != nil {
				return nil, errors.Wrapf(err, "directory %q", dir.Path)
			}
			offset += length

			if special {
				continue
			}
			if dir.Path == "" {
				entry.Path = entry.Name
			} else {
				entry.Path = dir.Path + "/" + entry.Name
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}

// Lookup resolves a slash separated path (case-insensitive) from the root
// directory.
func (r *ISOReader) Lookup(path string) (CDFileEntry, error) {
	descriptor, err := r.ReadDescriptor()
	if err != nil {
		return CDFileEntry{}, err
	}

	current := descriptor.Root
	for _, component := range strings.Split(strings.Trim(path, "/"), "/") {
		if !current.IsDir {
			return CDFileEntry{}, errors.Wrapf(ErrFileNotFound, "%s: %s is not a directory", path, current.Path)
		}
		entries, err := r.ReadDirectory(current)
		if err != nil {
			return CDFileEntry{}, err
		}

		found := false
		for _, entry := range entries {
			if strings.EqualFold(entry.Name, component) {
				current = entry
				found = true
				break
			}
		}
		if !found {
			return CDFileEntry{}, errors.Wrap(ErrFileNotFound, path)
		}
	}

	return current, nil
}

// VerifyRegion checks that entry starts at the first sector of region and
// occupies exactly its sectors.
func VerifyRegion(entry CDFileEntry, region Region) error {
	if int(entry.LBA) != region.StartSector || int(entry.ExtentSize) != region.Sectors {
		return errors.Wrapf(ErrRegionMismatch, "%s is LBA %d with %d sectors, %s expects LBA %d with %d sectors",
			entry.Path, entry.LBA, entry.ExtentSize, region.Name, region.StartSector, region.Sectors)
	}
	return nil
}

// parseDirectoryRecord decodes one ISO9660 directory record. special reports
// the "." and ".." entries.
func parseDirectoryRecord(data []byte) (entry CDFileEntry, special bool, err error) {
	if len(data) < 33 {
		return CDFileEntry{}, false, errors.Wrap(ErrInvalidISO9660, "directory record too short")
	}

	length := int(data[0])
	nameLength := int(data[32])
	if length > len(data) || 33+nameLength > length {
		return CDFileEntry{}, false, errors.Wrap(ErrInvalidISO9660, "filename exceeds record bounds")
	}

	rawName := string(data[33 : 33+nameLength])
	entry = CDFileEntry{
		Name:  common.CleanFileName(rawName),
		LBA:   binary.LittleEndian.Uint32(data[2:6]),
		Size:  binary.LittleEndian.Uint32(data[10:14]),
		IsDir: data[25]&0x02 != 0,
	}
	entry.ExtentSize = common.GetSizeInSectors(entry.Size)
	entry.MSF = common.LBAToMSF(entry.LBA)

	return entry, common.IsSpecialDirEntry(rawName), nil
}
