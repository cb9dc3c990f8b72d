package collector

import (
	"bufio"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	// DefaultI2CRoot is where the kernel lists i2c adapters and clients
	DefaultI2CRoot = "/sys/bus/i2c/devices"

	// DefaultDevRoot holds the i2c-dev character nodes
	DefaultDevRoot = "/dev"

	// MaxI2CAdapters bounds the i2c-<n> scan
	MaxI2CAdapters = 20
)

// CollectI2CAdapters reads <root>/i2c-<n>/name for n in [0, max) and returns
// the adapters that exist, in ascending index order. Missing or unreadable
// entries are skipped. Reads sysfs only; no device node is opened.
func CollectI2CAdapters(root string, max int) []I2CAdapter {
	if root == "" {
		root = DefaultI2CRoot
	}
	if max <= 0 {
		max = MaxI2CAdapters
	}

	var adapters []I2CAdapter
	for n := 0; n < max; n++ {
		dir := filepath.Join(root, "i2c-"+strconv.Itoa(n))
		name, ok := readFirstLine(filepath.Join(dir, "name"))
		if !ok {
			continue
		}
		adapters = append(adapters, I2CAdapter{
			Index:     n,
			Name:      name,
			SysfsPath: dir,
		})
	}

	return adapters
}

// DevNodePath returns <devRoot>/i2c-<index>
func DevNodePath(devRoot string, index int) string {
	if devRoot == "" {
		devRoot = DefaultDevRoot
	}
	return filepath.Join(devRoot, "i2c-"+strconv.Itoa(index))
}

// readFirstLine returns the first line of a sysfs attribute without its
// line terminator
func readFirstLine(path string) (string, bool) {
	f, err := os.Open(path)
	if err != nil {
		return "", false
	}
	defer f.Close()

	line, err := bufio.NewReader(f).ReadString('\n')
	if err != nil && line == "" {
		// an empty attribute still counts as an adapter with no name
		return "", errors.Is(err, io.EOF)
	}

	return strings.TrimRight(line, "\r\n"), true
}
