//go:build linux

package probe

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// from <linux/i2c-dev.h> and <linux/i2c.h>
const (
	i2cSlave     = 0x0703
	i2cSmbus     = 0x0720
	i2cSmbusRead = 1
	i2cSmbusByte = 1
)

// i2c_smbus_data: block max (32) + length byte + PEC
type smbusData [34]byte

// i2c_smbus_ioctl_data
type smbusIoctlData struct {
	readWrite uint8
	command   uint8
	size      uint32
	data      *smbusData
}

// DevBus opens /dev/i2c-<n> nodes through the kernel i2c-dev interface
type DevBus struct{}

// DefaultI2CBus returns the i2c-dev backend
func DefaultI2CBus() I2CBus {
	return DevBus{}
}

func (DevBus) Open(node string) (I2CDevice, error) {
	fd, err := unix.Open(node, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, err
	}
	return &devHandle{fd: fd}, nil
}

type devHandle struct {
	fd int
}

func (d *devHandle) SetAddress(addr uint8) error {
	return unix.IoctlSetInt(d.fd, i2cSlave, int(addr))
}

// ReadByte issues an SMBus "receive byte" transaction
func (d *devHandle) ReadByte() (byte, error) {
	data := new(smbusData)
	args := &smbusIoctlData{
		readWrite: i2cSmbusRead,
		command:   0,
		size:      i2cSmbusByte,
		data:      data,
	}

	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(d.fd), i2cSmbus, uintptr(unsafe.Pointer(args)))
	if errno != 0 {
		return 0, errno
	}
	return data[0], nil
}

func (d *devHandle) Close() error {
	return unix.Close(d.fd)
}
