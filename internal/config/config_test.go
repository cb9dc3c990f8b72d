package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/sigreer/jigcheck/internal/logger"
	"github.com/sigreer/jigcheck/internal/macrange"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSystem builds a sysfs tree with the given adapter names by index
func fakeSystem(t *testing.T, adapters map[int]string) *Resolver {
	t.Helper()
	root := t.TempDir()
	for idx, name := range adapters {
		dir := filepath.Join(root, "sys", "i2c-"+strconv.Itoa(idx))
		require.NoError(t, os.MkdirAll(dir, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "name"), []byte(name+"\n"), 0644))
	}
	return &Resolver{
		SysfsRoot:   filepath.Join(root, "sys"),
		DevRoot:     filepath.Join(root, "dev"),
		MaxAdapters: 20,
		Log:         logger.Nop(),
	}
}

func TestParseWellFormed(t *testing.T) {
	res := fakeSystem(t, map[int]string{3: "testbus", 5: "other", 7: "testbus"})

	cfg := `ODROID-APP-CONFIG
MODEL, ODROID-H3
FB, /dev/fb0
I2C, testbus, 0x50, 0x51
`
	desc, err := Parse(strings.NewReader(cfg), res)
	require.NoError(t, err)

	assert.Equal(t, "ODROID-H3", desc.Model)
	assert.Equal(t, "/dev/fb0", desc.FramebufferDevice)
	assert.Equal(t, "testbus", desc.I2CAdapter)
	assert.Equal(t, [2]uint8{0x50, 0x51}, desc.I2CAddresses)
	assert.Equal(t, filepath.Join(res.DevRoot, "i2c-3"), desc.I2CNodes[0])
	assert.Equal(t, filepath.Join(res.DevRoot, "i2c-7"), desc.I2CNodes[1])
	assert.Equal(t, 2, desc.ResolvedNodes())

	// untouched defaults
	assert.Equal(t, [2]string{"eth0", "eth1"}, desc.EthInterfaces)
	assert.False(t, desc.MacCheck.Enabled)
}

func TestParseSignature(t *testing.T) {
	tests := []struct {
		name string
		cfg  string
		ok   bool
	}{
		{"signature first", "ODROID-APP-CONFIG\nMODEL,x\n", true},
		{"blank lines and comments before signature", "\n# jig config\n\n  ODROID-APP-CONFIG  \nMODEL,x\n", true},
		{"CRLF line endings", "ODROID-APP-CONFIG\r\nMODEL,x\r\n", true},
		{"missing signature", "MODEL,x\nFB,/dev/fb0\n", false},
		{"signature after a field", "MODEL,x\nODROID-APP-CONFIG\n", false},
		{"wrong signature", "ODROID-UI-CONFIG\nMODEL,x\n", false},
		{"empty file", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc, err := Parse(strings.NewReader(tt.cfg), fakeSystem(t, nil))
			if tt.ok {
				require.NoError(t, err)
				assert.Equal(t, "x", desc.Model)
				return
			}
			require.ErrorIs(t, err, ErrInvalidConfigFormat)
			assert.Nil(t, desc)
		})
	}
}

func TestParseIgnoresUnknownKeywords(t *testing.T) {
	cfg := "ODROID-APP-CONFIG\nHDMI,1920x1080\nMODEL,H3\n\nLED,on,off\n"

	desc, err := Parse(strings.NewReader(cfg), fakeSystem(t, nil))
	require.NoError(t, err)
	assert.Equal(t, "H3", desc.Model)
}

func TestParseEthAndMac(t *testing.T) {
	cfg := `ODROID-APP-CONFIG
ETH, enp2s0, enp3s0
MAC, enable, 00:1e:06:00:10:00, 00:1e:06:00:30:00
`
	desc, err := Parse(strings.NewReader(cfg), fakeSystem(t, nil))
	require.NoError(t, err)

	assert.Equal(t, [2]string{"enp2s0", "enp3s0"}, desc.EthInterfaces)
	assert.Equal(t, macrange.Policy{Enabled: true, Start: 1000, End: 3000, Base: macrange.Decimal}, desc.MacCheck)
}

func TestParseMacHexBase(t *testing.T) {
	cfg := "ODROID-APP-CONFIG\nMAC,enable,00:1e:06:1e:00:00,00:1e:06:1f:00:00,hex\n"

	desc, err := Parse(strings.NewReader(cfg), fakeSystem(t, nil))
	require.NoError(t, err)
	assert.Equal(t, macrange.Hex, desc.MacCheck.Base)
	assert.Equal(t, uint32(0x1e0000), desc.MacCheck.Start)
	assert.Equal(t, uint32(0x1f0000), desc.MacCheck.End)
}

func TestParseMacDisable(t *testing.T) {
	desc, err := Parse(strings.NewReader("ODROID-APP-CONFIG\nMAC,disable\n"), fakeSystem(t, nil))
	require.NoError(t, err)
	assert.False(t, desc.MacCheck.Enabled)
}

func TestParseRejectsMalformedValues(t *testing.T) {
	lines := []string{
		"MODEL",
		"FB,",
		"I2C,testbus,0x50",
		"I2C,testbus,0x50,zz",
		"I2C,testbus,0x50,0x1ff",
		"I2C,,0x50,0x51",
		"ETH,eth0",
		"MAC",
		"MAC,maybe",
		"MAC,enable,00:1e:06:00:10:00",
		"MAC,enable,00:1e:06,00:1e:06:00:30:00",
		"MAC,enable,00:1e:06:00:10:00,00:1e:06:00:30:00,octal",
	}

	for _, line := range lines {
		t.Run(line, func(t *testing.T) {
			_, err := Parse(strings.NewReader("ODROID-APP-CONFIG\n"+line+"\n"), fakeSystem(t, nil))
			require.ErrorIs(t, err, ErrInvalidConfigFormat)
			assert.Contains(t, err.Error(), "line 2")
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.cfg")
	require.NoError(t, os.WriteFile(path, []byte("ODROID-APP-CONFIG\nMODEL,H3\n"), 0644))

	desc, err := Load(path, fakeSystem(t, nil))
	require.NoError(t, err)
	assert.Equal(t, "H3", desc.Model)

	_, err = Load(filepath.Join(dir, "missing.cfg"), fakeSystem(t, nil))
	assert.ErrorIs(t, err, ErrConfigNotFound)

	bad := filepath.Join(dir, "bad.cfg")
	require.NoError(t, os.WriteFile(bad, []byte("MODEL,H3\n"), 0644))
	_, err = Load(bad, fakeSystem(t, nil))
	assert.ErrorIs(t, err, ErrInvalidConfigFormat)
	assert.NotErrorIs(t, err, ErrConfigNotFound)
}
