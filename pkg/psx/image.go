package psx

import (
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"

	"github.com/hansbonini/fmtools/pkg/common"
)

// Region is a run of consecutive sectors inside a disc image.
type Region struct {
	Name        string `yaml:"name"`
	StartSector int    `yaml:"start_sector"`
	Sectors     int    `yaml:"sectors"`
}

// Offset returns the absolute byte offset of the region in the image.
func (r Region) Offset() int {
	return r.StartSector * CD_SECTOR_SIZE
}

// Size returns the raw size of the region in bytes, sector metadata included.
func (r Region) Size() int {
	return r.Sectors * CD_SECTOR_SIZE
}

// PayloadSize returns the amount of user data the region can hold.
func (r Region) PayloadSize() int {
	return r.Sectors * CD_DATA_SIZE
}

// Slice returns the raw bytes of the region inside image.
func (r Region) Slice(image []byte) ([]byte, error) {
	if r.StartSector < 0 || r.Sectors < 0 {
		return nil, errors.Wrapf(ErrRegionOutOfBounds, "%s: negative start or length", r.Name)
	}
	raw, err := common.SliceAt(image, r.Offset(), r.Size())
	if err != nil {
		return nil, errors.Wrapf(ErrRegionOutOfBounds, "%s: %v", r.Name, err)
	}
	return raw, nil
}

// ReadRegion decodes the user data of region from image.
func ReadRegion(image []byte, region Region) ([]byte, error) {
	raw, err := region.Slice(image)
	if err != nil {
		return nil, err
	}

	payload, err := DecodeSectors(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", region.Name)
	}

	common.LogDebug(common.DebugRegionDecoded, region.Name, region.Sectors, humanize.Bytes(uint64(len(payload))))
	return payload, nil
}

// WriteRegion encodes payload back into region of image, in place.
func WriteRegion(image []byte, region Region, payload []byte) error {
	raw, err := region.Slice(image)
	if err != nil {
		return err
	}

	if err := EncodeSectors(payload, raw); err != nil {
		return errors.Wrapf(err, "encode %s", region.Name)
	}

	common.LogDebug(common.DebugRegionEncoded, region.Name, SectorsForPayload(len(payload)))
	return nil
}

// LoadImage reads a whole .bin disc image into memory.
func LoadImage(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, common.ErrFailedToReadImage)
	}
	if len(data)%CD_SECTOR_SIZE != 0 {
		return nil, errors.Wrapf(ErrNotSectorAligned, "%s has %d bytes", path, len(data))
	}

	common.LogInfo(common.InfoImageLoaded, path, humanize.Bytes(uint64(len(data))))
	return data, nil
}

// SaveImage writes data to path through a temporary file in the same
// directory, so an interrupted run never leaves a truncated image behind.
func SaveImage(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, common.ErrFailedToWriteImage)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, common.ErrFailedToWriteImage)
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return errors.Wrap(err, common.ErrFailedToWriteImage)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, common.ErrFailedToWriteImage)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrap(err, common.ErrFailedToWriteImage)
	}

	common.LogInfo(common.InfoImageSaved, path, humanize.Bytes(uint64(len(data))))
	return nil
}
