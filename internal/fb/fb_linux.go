//go:build linux

package fb

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

const fbioGetVScreenInfo = 0x4600

type fbBitfield struct {
	Offset   uint32
	Length   uint32
	MsbRight uint32
}

// fb_var_screeninfo from <linux/fb.h>
type varScreenInfo struct {
	XRes, YRes               uint32
	XResVirtual, YResVirtual uint32
	XOffset, YOffset         uint32
	BitsPerPixel             uint32
	Grayscale                uint32
	Red, Green, Blue, Transp fbBitfield
	NonStd                   uint32
	Activate                 uint32
	Height, Width            uint32
	AccelFlags               uint32
	PixClock                 uint32
	LeftMargin, RightMargin  uint32
	UpperMargin, LowerMargin uint32
	HSyncLen, VSyncLen       uint32
	Sync                     uint32
	VMode                    uint32
	Rotate                   uint32
	Colorspace               uint32
	Reserved                 [4]uint32
}

// Open opens path and queries its variable screen info
func Open(path string) (*Device, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrOpen, path, err)
	}

	var v varScreenInfo
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), fbioGetVScreenInfo, uintptr(unsafe.Pointer(&v)))
	if errno != 0 {
		unix.Close(fd)
		return nil, fmt.Errorf("%w: %s: FBIOGET_VSCREENINFO: %w", ErrOpen, path, errno)
	}

	return &Device{
		Path: path,
		fd:   fd,
		Info: Info{
			Width:         int(v.XRes),
			Height:        int(v.YRes),
			VirtualWidth:  int(v.XResVirtual),
			VirtualHeight: int(v.YResVirtual),
			BitsPerPixel:  int(v.BitsPerPixel),
			BGR:           v.Red.Offset < v.Blue.Offset,
		},
	}, nil
}

// Close releases the device
func (d *Device) Close() error {
	if d == nil || d.fd < 0 {
		return nil
	}
	err := unix.Close(d.fd)
	d.fd = -1
	return err
}
