// Package macrange checks learned Ethernet addresses against the authorized
// manufacturing range of a jig.
//
// A range is expressed as two boundary MAC addresses. Only the last three
// octets take part in the comparison; they are rendered as six lowercase hex
// digits and converted to a numeral in the policy base. Base 10 is the
// historical behaviour of the factory tooling: the longest leading run of
// decimal digits is used and anything after the first hex letter is dropped,
// so "1e06ab" reads as 1. Base 16 reads the same digits as hexadecimal.
package macrange

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
)

// OUI is the organizationally unique identifier every authorized address
// must start with
var OUI = [3]byte{0x00, 0x1e, 0x06}

var (
	ErrBadBoundary = errors.New("invalid MAC range boundary")
	ErrBadBase     = errors.New("invalid MAC range base")
)

// Base selects how the six suffix digits are read
type Base int

const (
	Decimal Base = 10
	Hex     Base = 16
)

func (b Base) String() string {
	if b == Hex {
		return "hex"
	}
	return "dec"
}

// ParseBase accepts dec, 10, hex or 16
func ParseBase(s string) (Base, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "dec", "10":
		return Decimal, nil
	case "hex", "16":
		return Hex, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadBase, s)
}

// Policy is an authorized address range. Start and End are exclusive
// bounds. Authorized reports true when an address is within policy.
type Policy struct {
	Enabled bool
	Start   uint32
	End     uint32
	Base    Base
}

// Authorized reports whether mac is acceptable. A disabled policy accepts
// everything. An address outside the OUI, or whose suffix numeral is not
// strictly between Start and End, is rejected.
func (p Policy) Authorized(mac net.HardwareAddr) bool {
	if !p.Enabled {
		return true
	}
	if len(mac) != 6 || mac[0] != OUI[0] || mac[1] != OUI[1] || mac[2] != OUI[2] {
		return false
	}

	cur := Numeral(mac[3:], p.Base)
	return p.Start < cur && cur < p.End
}

// Numeral converts three suffix octets to the comparison value
func Numeral(suffix []byte, base Base) uint32 {
	if len(suffix) != 3 {
		return 0
	}
	digits := fmt.Sprintf("%02x%02x%02x", suffix[0], suffix[1], suffix[2])

	if base == Hex {
		v, _ := strconv.ParseUint(digits, 16, 32)
		return uint32(v)
	}

	end := 0
	for end < len(digits) && digits[end] >= '0' && digits[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	v, _ := strconv.ParseUint(digits[:end], 10, 32)
	return uint32(v)
}

// ParseBoundary converts a boundary address such as 00:1e:06:10:00:00 to
// its numeral
func ParseBoundary(s string, base Base) (uint32, error) {
	mac, err := net.ParseMAC(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrBadBoundary, s, err)
	}
	if len(mac) != 6 {
		return 0, fmt.Errorf("%w: %q is not a 48-bit address", ErrBadBoundary, s)
	}
	return Numeral(mac[3:], base), nil
}
