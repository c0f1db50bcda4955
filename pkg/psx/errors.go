package psx

import "github.com/pkg/errors"

var (
	ErrNotSectorAligned  = errors.New("region is not made of whole sectors")
	ErrPayloadTooLarge   = errors.New("payload does not fit in the destination sectors")
	ErrRegionOutOfBounds = errors.New("region lies outside the disc image")
	ErrInvalidISO9660    = errors.New("invalid ISO9660 volume")
	ErrFileNotFound      = errors.New("file not found in ISO9660 tree")
	ErrRegionMismatch    = errors.New("ISO9660 entry does not match region")
	ErrNotMode2Form1     = errors.New("sector is not Mode 2 Form 1")
)
