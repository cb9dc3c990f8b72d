package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sigreer/jigcheck/internal/macrange"
)

// Signature must be the first non-blank line of an app config file
const Signature = "ODROID-APP-CONFIG"

// DefaultAppConfig is used when no -f flag is given
const DefaultAppConfig = "default_app.cfg"

var (
	ErrConfigNotFound      = errors.New("config file not found")
	ErrInvalidConfigFormat = errors.New("invalid config format")
)

// Descriptor is everything a test cycle needs to know about the jig. It is
// built once by Parse and only read afterwards.
type Descriptor struct {
	Model             string `json:"model"`
	FramebufferDevice string `json:"fb_device"`

	I2CAdapter   string    `json:"i2c_adapter"`
	I2CNodes     [2]string `json:"i2c_nodes"` // empty when the adapter was not found
	I2CAddresses [2]uint8  `json:"i2c_addresses"`

	EthInterfaces [2]string `json:"eth_interfaces"`

	MacCheck macrange.Policy `json:"mac_check"`
}

// NewDescriptor returns a descriptor with the defaults the jig image uses
func NewDescriptor() *Descriptor {
	return &Descriptor{
		EthInterfaces: [2]string{"eth0", "eth1"},
		MacCheck:      macrange.Policy{Base: macrange.Decimal},
	}
}

// ResolvedNodes counts the I2C node slots that were filled in
func (d *Descriptor) ResolvedNodes() int {
	n := 0
	for _, node := range d.I2CNodes {
		if node != "" {
			n++
		}
	}
	return n
}

// Load opens path and parses it. An unreadable file is ErrConfigNotFound.
func Load(path string, res *Resolver) (*Descriptor, error) {
	if path == "" {
		path = DefaultAppConfig
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConfigNotFound, path, err)
	}
	defer f.Close()

	desc, err := Parse(f, res)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return desc, nil
}

// Parse reads an app config. The signature line must come first (blank and
// # lines before it are skipped); every later line is KEYWORD,value,...
// Unknown keywords are ignored. A missing signature or a malformed value
// for a known keyword rejects the whole file.
func Parse(r io.Reader, res *Resolver) (*Descriptor, error) {
	if res == nil {
		res = NewResolver()
	}

	desc := NewDescriptor()
	signed := false
	lineNo := 0

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())

		if !signed {
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			if line != Signature {
				return nil, fmt.Errorf("%w: line %d: expected %s signature", ErrInvalidConfigFormat, lineNo, Signature)
			}
			signed = true
			continue
		}

		if line == "" {
			continue
		}

		if err := desc.apply(splitFields(line), res); err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrInvalidConfigFormat, lineNo, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if !signed {
		return nil, fmt.Errorf("%w: %s signature not found", ErrInvalidConfigFormat, Signature)
	}

	return desc, nil
}

// apply dispatches one line on its leading keyword
func (d *Descriptor) apply(fields []string, res *Resolver) error {
	key, args := fields[0], fields[1:]

	switch key {
	case "MODEL":
		v, err := firstArg(key, args)
		if err != nil {
			return err
		}
		d.Model = v

	case "FB":
		v, err := firstArg(key, args)
		if err != nil {
			return err
		}
		d.FramebufferDevice = v

	case "I2C":
		return d.parseI2C(args, res)

	case "ETH":
		return d.parseEth(args)

	case "MAC":
		return d.parseMac(args)
	}

	return nil
}

func (d *Descriptor) parseEth(args []string) error {
	if len(args) < 2 || args[0] == "" || args[1] == "" {
		return fmt.Errorf("ETH: want ETH,<if0>,<if1>, got %d values", len(args))
	}
	d.EthInterfaces = [2]string{args[0], args[1]}
	return nil
}

// parseMac handles MAC,<enable|disable>,<start>,<end>[,dec|hex]
func (d *Descriptor) parseMac(args []string) error {
	if len(args) == 0 {
		return errors.New("MAC: missing enable/disable")
	}

	switch strings.ToLower(args[0]) {
	case "disable":
		d.MacCheck.Enabled = false
		return nil
	case "enable":
	default:
		return fmt.Errorf("MAC: unknown mode %q", args[0])
	}

	if len(args) < 3 {
		return errors.New("MAC: enable needs start and end addresses")
	}

	base := macrange.Decimal
	if len(args) > 3 {
		var err error
		if base, err = macrange.ParseBase(args[3]); err != nil {
			return fmt.Errorf("MAC: %w", err)
		}
	}

	start, err := macrange.ParseBoundary(args[1], base)
	if err != nil {
		return fmt.Errorf("MAC start: %w", err)
	}
	end, err := macrange.ParseBoundary(args[2], base)
	if err != nil {
		return fmt.Errorf("MAC end: %w", err)
	}

	d.MacCheck = macrange.Policy{Enabled: true, Start: start, End: end, Base: base}
	return nil
}

func firstArg(key string, args []string) (string, error) {
	if len(args) == 0 || args[0] == "" {
		return "", fmt.Errorf("%s: missing value", key)
	}
	return args[0], nil
}

// splitFields splits on commas and trims each token
func splitFields(line string) []string {
	fields := strings.Split(line, ",")
	for i, f := range fields {
		fields[i] = strings.TrimSpace(f)
	}
	return fields
}
