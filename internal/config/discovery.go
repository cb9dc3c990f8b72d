package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/sigreer/jigcheck/internal/collector"
	"github.com/sigreer/jigcheck/internal/logger"
)

// Resolver maps the human-readable adapter name from an I2C config line to
// device nodes. The jig carries two identical controllers that share one
// name, so the first two matches in index order become bus 0 and bus 1.
type Resolver struct {
	SysfsRoot   string
	DevRoot     string
	MaxAdapters int
	Log         zerolog.Logger
}

// NewResolver returns a resolver over the live system
func NewResolver() *Resolver {
	return &Resolver{
		SysfsRoot:   collector.DefaultI2CRoot,
		DevRoot:     collector.DefaultDevRoot,
		MaxAdapters: collector.MaxI2CAdapters,
		Log:         logger.WithComponent("resolver"),
	}
}

// Resolve scans the adapters and returns the node paths of the first two
// whose name starts with the configured name, along with the total number
// of matches seen. Unfilled slots are left empty.
func (r *Resolver) Resolve(name string) ([2]string, int) {
	var nodes [2]string

	name = strings.TrimSpace(name)
	if name == "" {
		return nodes, 0
	}

	found := 0
	for _, a := range collector.CollectI2CAdapters(r.SysfsRoot, r.MaxAdapters) {
		if !strings.HasPrefix(a.Name, name) {
			continue
		}
		if found < len(nodes) {
			nodes[found] = a.DevNode(r.DevRoot)
			r.Log.Info().Str("node", nodes[found]).Int("index", a.Index).Msg("I2C adapter matched")
		}
		found++
	}

	return nodes, found
}

// ParseAddress reads a device address: 0x/0X prefix means hex, anything
// else is decimal
func ParseAddress(tok string) (uint8, error) {
	tok = strings.TrimSpace(tok)

	base := 10
	digits := tok
	if len(tok) > 1 && tok[0] == '0' && (tok[1] == 'x' || tok[1] == 'X') {
		base = 16
		digits = tok[2:]
	}

	v, err := strconv.ParseUint(digits, base, 8)
	if err != nil {
		return 0, fmt.Errorf("bad I2C address %q: %w", tok, err)
	}
	return uint8(v), nil
}

// parseI2C handles I2C,<adapter>,<addr0>,<addr1>
func (d *Descriptor) parseI2C(args []string, res *Resolver) error {
	if len(args) < 3 || args[0] == "" {
		return fmt.Errorf("I2C: want I2C,<adapter>,<addr0>,<addr1>, got %d values", len(args))
	}

	for i := range d.I2CAddresses {
		addr, err := ParseAddress(args[i+1])
		if err != nil {
			return fmt.Errorf("I2C: %w", err)
		}
		d.I2CAddresses[i] = addr
	}

	d.I2CAdapter = args[0]
	nodes, found := res.Resolve(args[0])
	d.I2CNodes = nodes

	if found < len(nodes) {
		res.Log.Warn().
			Str("adapter", args[0]).
			Int("matches", found).
			Msg("fewer I2C adapters than test buses; unresolved buses will fail at probe time")
	}

	return nil
}
