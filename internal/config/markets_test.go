package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMarketsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "markets.yaml")
	body := `markets:
  - address: 9wFFyRfZBsuAha4YcuxcXLKwMxJR43S7fPfQLusDBzvT
    triggerOnly: true
  - address: 8BnEgHoWFysVcuFFX7QztDmzuH8r5ZFvyP3sYwn1XTh6
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	entries, err := LoadMarketsFile(path)
	require.NoError(t, err)

	require.Len(t, entries, 2)
	assert.Equal(t, "9wFFyRfZBsuAha4YcuxcXLKwMxJR43S7fPfQLusDBzvT", entries[0].Address)
	assert.True(t, entries[0].TriggerOnly)
	assert.Equal(t, "8BnEgHoWFysVcuFFX7QztDmzuH8r5ZFvyP3sYwn1XTh6", entries[1].Address)
	assert.False(t, entries[1].TriggerOnly)
}

func TestLoadMarketsFileEmptyPath(t *testing.T) {
	entries, err := LoadMarketsFile("")
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestLoadMarketsFileMissing(t *testing.T) {
	_, err := LoadMarketsFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadMarketsFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "markets.yaml")
	require.NoError(t, os.WriteFile(path, []byte("markets: {not a list"), 0o644))

	_, err := LoadMarketsFile(path)
	assert.Error(t, err)
}
