package epg

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFile(t *testing.T) {
	tv := Generate(testChannels, testOptions())
	fPath := filepath.Join(t.TempDir(), "epg.xml")

	require.NoError(t, WriteFile(tv, fPath))

	data, err := os.ReadFile(fPath)
	require.NoError(t, err)
	assert.True(t, len(data) > 0)

	var decoded TV
	require.NoError(t, xml.Unmarshal(data, &decoded))
	assert.Len(t, decoded.Channels, len(tv.Channels))
	assert.Len(t, decoded.Programmes, len(tv.Programmes))

	// the temporary file is gone after the rename
	_, err = os.Stat(fPath + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestWriteFileOverwrites(t *testing.T) {
	fPath := filepath.Join(t.TempDir(), "epg.xml")

	opts := testOptions()
	require.NoError(t, WriteFile(Generate(testChannels, opts), fPath))

	opts.Now = opts.Now.Add(24 * time.Hour)
	second := Generate(testChannels[:1], opts)
	require.NoError(t, WriteFile(second, fPath))

	data, err := os.ReadFile(fPath)
	require.NoError(t, err)

	var decoded TV
	require.NoError(t, xml.Unmarshal(data, &decoded))
	require.Len(t, decoded.Channels, 1)
	assert.Equal(t, second.Programmes[0].Start, decoded.Programmes[0].Start)
}
