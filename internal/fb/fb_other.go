//go:build !linux

package fb

import "fmt"

// Open always fails off linux
func Open(path string) (*Device, error) {
	return nil, fmt.Errorf("%w: %s: framebuffer devices need linux", ErrOpen, path)
}

func (d *Device) Close() error {
	return nil
}
