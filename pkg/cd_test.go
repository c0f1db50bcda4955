package pkg

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hansbonini/fmtools/pkg/psx"
)

func TestCDProcessor_Passthrough(t *testing.T) {
	input := writeImage(t)
	output := filepath.Join(t.TempDir(), "out.bin")

	mismatched, err := NewCDProcessor(testLayout()).Passthrough(input, output)
	require.NoError(t, err)
	assert.Equal(t, 0, mismatched)

	original, err := os.ReadFile(input)
	require.NoError(t, err)
	copied, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(original, copied))
}

func TestCDProcessor_Passthrough_RepairsEDC(t *testing.T) {
	image := buildImage(t)
	layout := testLayout()
	edc := (layout.MergedData.StartSector+3)*psx.CD_SECTOR_SIZE + psx.CD_EDC_OFFSET
	image[edc] ^= 0xFF

	input := filepath.Join(t.TempDir(), "broken.bin")
	require.NoError(t, os.WriteFile(input, image, 0o600))
	output := filepath.Join(t.TempDir(), "out.bin")

	mismatched, err := NewCDProcessor(layout).Passthrough(input, output)
	require.NoError(t, err)
	assert.Equal(t, 1, mismatched)

	repaired, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(buildImage(t), repaired))
}

func TestCountMismatchedSectors(t *testing.T) {
	a := make([]byte, 3*psx.CD_SECTOR_SIZE)
	b := make([]byte, 3*psx.CD_SECTOR_SIZE)
	assert.Equal(t, 0, CountMismatchedSectors(a, b))

	b[psx.CD_SECTOR_SIZE+5] = 1
	b[psx.CD_SECTOR_SIZE+6] = 1
	assert.Equal(t, 1, CountMismatchedSectors(a, b))

	assert.Equal(t, 2, CountMismatchedSectors(a[:psx.CD_SECTOR_SIZE], b))
}

func TestCDProcessor_InspectImage(t *testing.T) {
	descriptor, reports, err := NewCDProcessor(testLayout()).InspectImage(buildImage(t))
	require.NoError(t, err)

	assert.Equal(t, "SLUS_01411", descriptor.VolumeID)
	require.Len(t, reports, 2)
	for _, report := range reports {
		assert.NoError(t, report.Err, report.Region.Name)
	}
	assert.Equal(t, "DATA/WA_MRG.MRG", reports[1].Entry.Path)
	assert.Equal(t, uint32(28), reports[1].Entry.LBA)
	assert.Equal(t, byte(2), reports[1].Mode)
	assert.False(t, reports[1].Form2)
	assert.Equal(t, 0, reports[1].BadEDC)
}

func TestCDProcessor_InspectImage_Mismatch(t *testing.T) {
	layout := testLayout()
	layout.MergedData.Sectors--
	layout.CodeSegment.Name = "SLUS_999.99"

	_, reports, err := NewCDProcessor(layout).InspectImage(buildImage(t))
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.True(t, errors.Is(reports[0].Err, psx.ErrFileNotFound))
	assert.True(t, errors.Is(reports[1].Err, psx.ErrRegionMismatch))
	assert.False(t, errors.Is(reports[1].Err, psx.ErrRegionOutOfBounds))
	assert.Equal(t, uint32(28), reports[1].Entry.LBA)
}

func TestCDProcessor_InspectImage_RegionPastEnd(t *testing.T) {
	layout := testLayout()
	layout.MergedData.Sectors++

	_, reports, err := NewCDProcessor(layout).InspectImage(buildImage(t))
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.NoError(t, reports[0].Err)
	assert.True(t, errors.Is(reports[1].Err, psx.ErrRegionOutOfBounds))
	assert.False(t, errors.Is(reports[1].Err, psx.ErrRegionMismatch))
}

func TestCDProcessor_InspectImage_Form2(t *testing.T) {
	image := buildImage(t)
	layout := testLayout()
	image[layout.CodeSegment.Offset()+psx.CD_SUBHEADER_OFFSET+2] |= psx.CD_SUBMODE_FORM2
	image[(layout.MergedData.StartSector+7)*psx.CD_SECTOR_SIZE+psx.CD_DATA_OFFSET] ^= 0x01

	_, reports, err := NewCDProcessor(layout).InspectImage(image)
	require.NoError(t, err)
	assert.True(t, reports[0].Form2)
	assert.Equal(t, byte(2), reports[0].Mode)
	assert.True(t, errors.Is(reports[0].Err, psx.ErrNotMode2Form1))
	assert.Equal(t, 1, reports[0].BadEDC)
	assert.NoError(t, reports[1].Err)
	assert.Equal(t, 1, reports[1].BadEDC)
}

func TestCDProcessor_Inspect_NotISO(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blank.bin")
	require.NoError(t, os.WriteFile(path, make([]byte, 20*psx.CD_SECTOR_SIZE), 0o600))

	_, _, err := NewCDProcessor(testLayout()).Inspect(path)
	assert.True(t, errors.Is(err, psx.ErrInvalidISO9660))
}

func TestRegionMSF(t *testing.T) {
	msf, err := RegionMSF(DefaultLayout().CodeSegment)
	require.NoError(t, err)
	assert.Equal(t, "00:02:24", msf)

	_, err = RegionMSF(psx.Region{Name: "bad", StartSector: -1})
	assert.Error(t, err)
}
