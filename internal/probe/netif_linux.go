//go:build linux

package probe

import (
	"net"
	"unsafe"

	"github.com/safchain/ethtool"
	"golang.org/x/sys/unix"
)

// ifreq with the ifr_hwaddr member of the union. The tail pads the union
// out to the size of the largest member on 64-bit targets.
type ifreqHwaddr struct {
	Name   [unix.IFNAMSIZ]byte
	Family uint16
	Data   [14]byte
	_      [8]byte
}

// socketControl is one probe's control channel: an AF_INET socket for the
// interface ioctls and an ethtool handle, opened on first use, for settings.
// Close releases both.
type socketControl struct {
	fd  int
	eth *ethtool.Ethtool
}

// OpenNetControl opens an AF_INET datagram socket for interface ioctls
func OpenNetControl() (NetControl, error) {
	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_DGRAM|unix.SOCK_CLOEXEC, 0)
	if err != nil {
		return nil, err
	}
	return &socketControl{fd: fd}, nil
}

func (c *socketControl) Addr(name string) (net.IP, error) {
	ifr, err := unix.NewIfreq(name)
	if err != nil {
		return nil, err
	}
	if err := unix.IoctlIfreq(c.fd, unix.SIOCGIFADDR, ifr); err != nil {
		return nil, err
	}
	ip, err := ifr.Inet4Addr()
	if err != nil {
		return nil, err
	}
	return net.IP(ip), nil
}

func (c *socketControl) HardwareAddr(name string) (net.HardwareAddr, error) {
	var req ifreqHwaddr
	if len(name) >= len(req.Name) {
		return nil, unix.EINVAL
	}
	copy(req.Name[:], name)

	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(c.fd), unix.SIOCGIFHWADDR, uintptr(unsafe.Pointer(&req)))
	if errno != 0 {
		return nil, errno
	}

	mac := make(net.HardwareAddr, 6)
	copy(mac, req.Data[:6])
	return mac, nil
}

// LinkSpeed asks the driver for its settings (ETHTOOL_GSET)
func (c *socketControl) LinkSpeed(name string) (uint32, error) {
	if c.eth == nil {
		e, err := ethtool.NewEthtool()
		if err != nil {
			return 0, err
		}
		c.eth = e
	}

	return c.eth.CmdGet(&ethtool.EthtoolCmd{}, name)
}

func (c *socketControl) Close() error {
	if c.eth != nil {
		c.eth.Close()
		c.eth = nil
	}
	return unix.Close(c.fd)
}
