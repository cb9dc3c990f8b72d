package probe

import (
	"fmt"
	"math"
	"net"
)

// SpeedUnknown is what drivers report with no link
const SpeedUnknown = math.MaxUint32

// NetControl is a transient control channel for interface queries
type NetControl interface {
	Addr(name string) (net.IP, error)
	HardwareAddr(name string) (net.HardwareAddr, error)
	LinkSpeed(name string) (uint32, error) // Mb/s
	Close() error
}

// NetOpener opens a control channel
type NetOpener func() (NetControl, error)

// NetResult is the outcome of querying one interface. Fields after the
// first failed query stay zero.
type NetResult struct {
	Interface     string           `json:"interface"`
	IP            net.IP           `json:"ip,omitempty"`
	MAC           net.HardwareAddr `json:"-"`
	SpeedMbps     uint32           `json:"speed_mbps"`
	MacAuthorized bool             `json:"mac_authorized"`
	Err           error            `json:"-"`
}

// OK reports whether every query succeeded
func (r NetResult) OK() bool {
	return r.Err == nil
}

// LinkUp is true when the driver reported a real speed
func (r NetResult) LinkUp() bool {
	return r.SpeedMbps != 0 && r.SpeedMbps != SpeedUnknown
}

// ProbeNet reads the IPv4 address, MAC and link speed of one interface.
// The control channel is closed before returning.
func ProbeNet(open NetOpener, name string) NetResult {
	res := NetResult{Interface: name}
	if name == "" {
		res.Err = ErrNoInterface
		return res
	}

	ctl, err := open()
	if err != nil {
		res.Err = fmt.Errorf("control socket: %w", err)
		return res
	}
	defer ctl.Close()

	ip, err := ctl.Addr(name)
	if err != nil {
		res.Err = fmt.Errorf("%s: interface address: %w", name, err)
		return res
	}
	res.IP = ip

	mac, err := ctl.HardwareAddr(name)
	if err != nil {
		res.Err = fmt.Errorf("%s: hardware address: %w", name, err)
		return res
	}
	res.MAC = mac

	speed, err := ctl.LinkSpeed(name)
	if err != nil {
		res.Err = fmt.Errorf("%s: device settings: %w", name, err)
		return res
	}
	res.SpeedMbps = speed

	return res
}
