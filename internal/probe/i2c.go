// Package probe runs the jig's hardware checks: an SMBus byte-read on each
// I2C test bus and an address/link query on each Ethernet port.
package probe

import (
	"fmt"
	"os"
)

// I2CStatus is the outcome of one bus probe
type I2CStatus int

const (
	NodeMissing I2CStatus = iota
	OpenFailed
	AddressBindFailed
	DeviceNotResponding
	DevicePresent
)

var i2cStatusNames = [...]string{
	NodeMissing:         "node_missing",
	OpenFailed:          "open_failed",
	AddressBindFailed:   "address_bind_failed",
	DeviceNotResponding: "device_not_responding",
	DevicePresent:       "device_present",
}

func (s I2CStatus) String() string {
	if int(s) < len(i2cStatusNames) {
		return i2cStatusNames[s]
	}
	return fmt.Sprintf("I2CStatus(%d)", int(s))
}

// MarshalText renders the status name in JSON output
func (s I2CStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Pass is true only when the device acknowledged
func (s I2CStatus) Pass() bool {
	return s == DevicePresent
}

// NodeFound is true once the node exists, whatever happened after
func (s I2CStatus) NodeFound() bool {
	return s != NodeMissing
}

// I2CDevice is an open i2c-dev handle
type I2CDevice interface {
	SetAddress(addr uint8) error
	ReadByte() (byte, error)
	Close() error
}

// I2CBus opens device nodes
type I2CBus interface {
	Open(node string) (I2CDevice, error)
}

// I2CResult is the outcome of probing one bus
type I2CResult struct {
	Node    string    `json:"node"`
	Address uint8     `json:"address"`
	Status  I2CStatus `json:"status"`
	Err     error     `json:"-"`
}

// ProbeI2C checks that node exists, binds addr and reads one byte. The
// handle is closed on every path once it has been opened.
func ProbeI2C(bus I2CBus, node string, addr uint8) I2CResult {
	res := I2CResult{Node: node, Address: addr}

	if node == "" {
		res.Status, res.Err = NodeMissing, ErrNodeUnresolved
		return res
	}
	if _, err := os.Stat(node); err != nil {
		res.Status, res.Err = NodeMissing, err
		return res
	}

	dev, err := bus.Open(node)
	if err != nil {
		res.Status, res.Err = OpenFailed, err
		return res
	}
	defer dev.Close()

	if err := dev.SetAddress(addr); err != nil {
		res.Status, res.Err = AddressBindFailed, fmt.Errorf("set address 0x%02x: %w", addr, err)
		return res
	}

	if _, err := dev.ReadByte(); err != nil {
		res.Status, res.Err = DeviceNotResponding, err
		return res
	}

	res.Status = DevicePresent
	return res
}
