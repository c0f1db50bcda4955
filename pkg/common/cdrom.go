// Package common provides common utilities for CD-ROM operations.
// This file contains functions for MSF conversion and file name handling.
package common

import (
	"fmt"
	"strings"
)

// LBAToMSF converts LBA (Logical Block Address) to MSF (Minutes:Seconds:Frames) format
// LBA to MSF conversion: LBA + 150 (pregap)
func LBAToMSF(lba uint32) string {
	totalFrames := lba + 150

	minutes := totalFrames / (60 * 75)
	seconds := (totalFrames % (60 * 75)) / 75
	frames := totalFrames % 75

	return fmt.Sprintf("%02d:%02d:%02d", minutes, seconds, frames)
}

// GetSizeInSectors calculates the number of sectors needed for a given size in bytes
func GetSizeInSectors(sizeBytes uint32) uint32 {
	const sectorSize = 2048
	return (sizeBytes + sectorSize - 1) / sectorSize
}

// CleanFileName removes version numbers from ISO9660 file names
func CleanFileName(fileName string) string {
	// Remove version numbers (e.g., "FILE.EXT;1" -> "FILE.EXT")
	if idx := strings.IndexByte(fileName, ';'); idx != -1 {
		return fileName[:idx]
	}
	return fileName
}

// IsSpecialDirEntry checks if a directory entry is "." or ".."
func IsSpecialDirEntry(fileName string) bool {
	return fileName == "\x00" || fileName == "\x01"
}

// SanitizePathComponent replaces characters that cannot appear in a single
// path element so a decoded game string can be used as a directory name.
func SanitizePathComponent(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', 0:
			return '_'
		}
		return r
	}, name)
}
