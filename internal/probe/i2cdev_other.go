//go:build !linux

package probe

type unsupportedBus struct{}

// DefaultI2CBus returns a backend that fails every open
func DefaultI2CBus() I2CBus {
	return unsupportedBus{}
}

func (unsupportedBus) Open(string) (I2CDevice, error) {
	return nil, ErrUnsupported
}
