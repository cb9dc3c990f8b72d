package collector

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeAdapter(t *testing.T, root string, index int, name string) {
	t.Helper()
	dir := filepath.Join(root, "i2c-"+strconv.Itoa(index))
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "name"), []byte(name), 0644))
}

func TestCollectI2CAdapters(t *testing.T) {
	root := t.TempDir()
	writeAdapter(t, root, 7, "Synopsys DesignWare I2C adapter\n")
	writeAdapter(t, root, 0, "SMBus I801 adapter at efa0\n")
	writeAdapter(t, root, 3, "Synopsys DesignWare I2C adapter\n")
	// client devices share the directory but never match i2c-<n>/name
	require.NoError(t, os.MkdirAll(filepath.Join(root, "0-0050"), 0755))

	adapters := CollectI2CAdapters(root, MaxI2CAdapters)
	require.Len(t, adapters, 3)

	assert.Equal(t, 0, adapters[0].Index)
	assert.Equal(t, "SMBus I801 adapter at efa0", adapters[0].Name)
	assert.Equal(t, 3, adapters[1].Index)
	assert.Equal(t, 7, adapters[2].Index)
	assert.Equal(t, "Synopsys DesignWare I2C adapter", adapters[2].Name)
	assert.Equal(t, filepath.Join(root, "i2c-7"), adapters[2].SysfsPath)
}

func TestCollectI2CAdaptersRespectsMax(t *testing.T) {
	root := t.TempDir()
	writeAdapter(t, root, 1, "a\n")
	writeAdapter(t, root, 25, "b\n")

	adapters := CollectI2CAdapters(root, MaxI2CAdapters)
	require.Len(t, adapters, 1)
	assert.Equal(t, 1, adapters[0].Index)
}

func TestCollectI2CAdaptersMissingRoot(t *testing.T) {
	adapters := CollectI2CAdapters(filepath.Join(t.TempDir(), "nope"), 0)
	assert.Empty(t, adapters)
}

func TestReadFirstLine(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		content string
		want    string
	}{
		{"adapter\n", "adapter"},
		{"adapter\r\nsecond\n", "adapter"},
		{"no newline", "no newline"},
		{"", ""},
	}

	for i, tt := range tests {
		path := filepath.Join(dir, strconv.Itoa(i))
		require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

		got, ok := readFirstLine(path)
		assert.True(t, ok, "content %q", tt.content)
		assert.Equal(t, tt.want, got)
	}

	_, ok := readFirstLine(filepath.Join(dir, "missing"))
	assert.False(t, ok)
}

func TestDevNodePath(t *testing.T) {
	assert.Equal(t, "/dev/i2c-3", DevNodePath("", 3))
	assert.Equal(t, "/tmp/dev/i2c-7", I2CAdapter{Index: 7}.DevNode("/tmp/dev"))
}
