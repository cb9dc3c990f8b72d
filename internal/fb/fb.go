// Package fb opens a Linux framebuffer device and reads its geometry.
// Drawing is left to the UI layer; jigcheck only checks that the device the
// config names is usable and reports what it found.
package fb

import (
	"errors"
	"fmt"
)

var ErrOpen = errors.New("framebuffer open failed")

// Info is the subset of fb_var_screeninfo the jig reports
type Info struct {
	Width         int  `json:"xres"`
	Height        int  `json:"yres"`
	VirtualWidth  int  `json:"xres_virtual"`
	VirtualHeight int  `json:"yres_virtual"`
	BitsPerPixel  int  `json:"bpp"`
	BGR           bool `json:"bgr"`
}

// Stride is the length of one line in bytes
func (i Info) Stride() int {
	return i.VirtualWidth * i.BitsPerPixel / 8
}

func (i Info) String() string {
	return fmt.Sprintf("%dx%d %dbpp stride %d bgr %t", i.Width, i.Height, i.BitsPerPixel, i.Stride(), i.BGR)
}

// Device is an open framebuffer
type Device struct {
	Path string
	Info Info
	fd   int
}
