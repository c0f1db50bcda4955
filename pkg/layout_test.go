package pkg

import (
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLayout(t *testing.T) {
	layout := DefaultLayout()
	require.NoError(t, layout.Validate())

	assert.Equal(t, 24, layout.CodeSegment.StartSector)
	assert.Equal(t, 929, layout.CodeSegment.Sectors)
	assert.Equal(t, 10102, layout.MergedData.StartSector)
	assert.Equal(t, 18432, layout.MergedData.Sectors)
	assert.Equal(t, 0xE9B000, layout.DuelistOffset(0))
	assert.Equal(t, 0xE9B000+2*0x1800, layout.DuelistOffset(2))
	assert.Equal(t, 0x5B4, layout.CardListOffset(DropsSaPow))
	assert.Equal(t, 0xB68, layout.CardListOffset(DropsBcd))
	assert.Equal(t, 0x111C, layout.CardListOffset(DropsSaTec))
	assert.Equal(t, 0, layout.CardListOffset(Deck))
}

func TestLayout_Validate(t *testing.T) {
	require.NoError(t, testLayout().Validate())
	require.NoError(t, DefaultLayout().Validate())
	assert.Equal(t, testLayout().DuelistDataOffset, testLayout().DuelistOffset(0))

	tests := []struct {
		name   string
		modify func(*Layout)
	}{
		{"empty region", func(l *Layout) { l.CodeSegment.Sectors = 0 }},
		{"negative start", func(l *Layout) { l.MergedData.StartSector = -1 }},
		{"card names outside code", func(l *Layout) { l.CardNameIndicesOffset = l.CodeSegment.PayloadSize() - 10 }},
		{"duelists outside data", func(l *Layout) { l.DuelistDataOffset = l.MergedData.PayloadSize() }},
		{"table outside record", func(l *Layout) { l.SaTecOffset = 0x1700 }},
		{"overlapping tables", func(l *Layout) { l.BcdOffset = 0x5B5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layout := DefaultLayout()
			tt.modify(&layout)
			err := layout.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrLayoutInvalid))
		})
	}
}

func TestLoadLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.yaml")
	writeFile(t, path, `version: SLUS-01411-mod
merged_data:
  name: DATA/WA_MRG.MRG
  start_sector: 10200
  sectors: 18432
duelist_data_offset: 15316992
`)

	layout, err := LoadLayout(path)
	require.NoError(t, err)
	assert.Equal(t, "SLUS-01411-mod", layout.Version)
	assert.Equal(t, 10200, layout.MergedData.StartSector)
	assert.Equal(t, 0xE9B800, layout.DuelistDataOffset)
	// Untouched keys keep their defaults
	assert.Equal(t, DefaultLayout().CodeSegment, layout.CodeSegment)
	assert.Equal(t, 0x1C6002, layout.CardNameIndicesOffset)
}

func TestLoadLayout_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadLayout(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	invalid := filepath.Join(dir, "invalid.yaml")
	writeFile(t, invalid, "bcd_offset: 1461\n")
	_, err = LoadLayout(invalid)
	assert.True(t, errors.Is(err, ErrLayoutInvalid))

	malformed := filepath.Join(dir, "malformed.yaml")
	writeFile(t, malformed, "code_segment: [1, 2\n")
	_, err = LoadLayout(malformed)
	assert.Error(t, err)
}

func TestResolveLayout(t *testing.T) {
	layout, err := ResolveLayout("")
	require.NoError(t, err)
	assert.Equal(t, DefaultLayout(), layout)
}
