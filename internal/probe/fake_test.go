package probe

import (
	"errors"
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

var errFake = errors.New("fake failure")

// fakeBus tracks opens and closes per node
type fakeBus struct {
	openErr map[string]error
	bindErr map[string]error
	readErr map[string]error
	opened  map[string]int
	closed  map[string]int
	boundTo map[string]uint8
}

func newFakeBus() *fakeBus {
	return &fakeBus{
		openErr: map[string]error{},
		bindErr: map[string]error{},
		readErr: map[string]error{},
		opened:  map[string]int{},
		closed:  map[string]int{},
		boundTo: map[string]uint8{},
	}
}

func (b *fakeBus) Open(node string) (I2CDevice, error) {
	if err := b.openErr[node]; err != nil {
		return nil, err
	}
	b.opened[node]++
	return &fakeDevice{bus: b, node: node}, nil
}

type fakeDevice struct {
	bus  *fakeBus
	node string
}

func (d *fakeDevice) SetAddress(addr uint8) error {
	if err := d.bus.bindErr[d.node]; err != nil {
		return err
	}
	d.bus.boundTo[d.node] = addr
	return nil
}

func (d *fakeDevice) ReadByte() (byte, error) {
	if err := d.bus.readErr[d.node]; err != nil {
		return 0, err
	}
	return 0xa5, nil
}

func (d *fakeDevice) Close() error {
	d.bus.closed[d.node]++
	return nil
}

// fakeNode creates an empty file standing in for /dev/i2c-<n>
func fakeNode(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, nil, 0600))
	return path
}

type fakeIface struct {
	ip    net.IP
	mac   net.HardwareAddr
	speed uint32

	addrErr, hwErr, speedErr error
}

type fakeNet struct {
	ifaces  map[string]fakeIface
	openErr error
	opens   int
	closes  int
}

func (n *fakeNet) open() (NetControl, error) {
	if n.openErr != nil {
		return nil, n.openErr
	}
	n.opens++
	return &fakeControl{net: n}, nil
}

type fakeControl struct {
	net *fakeNet
}

func (c *fakeControl) lookup(name string) (fakeIface, error) {
	iface, ok := c.net.ifaces[name]
	if !ok {
		return iface, errors.New("no such device")
	}
	return iface, nil
}

func (c *fakeControl) Addr(name string) (net.IP, error) {
	iface, err := c.lookup(name)
	if err != nil {
		return nil, err
	}
	return iface.ip, iface.addrErr
}

func (c *fakeControl) HardwareAddr(name string) (net.HardwareAddr, error) {
	iface, err := c.lookup(name)
	if err != nil {
		return nil, err
	}
	return iface.mac, iface.hwErr
}

func (c *fakeControl) LinkSpeed(name string) (uint32, error) {
	iface, err := c.lookup(name)
	if err != nil {
		return 0, err
	}
	return iface.speed, iface.speedErr
}

func (c *fakeControl) Close() error {
	c.net.closes++
	return nil
}
