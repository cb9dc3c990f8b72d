package probe

import "errors"

var (
	ErrNodeUnresolved = errors.New("no I2C node resolved for this bus")
	ErrNoInterface    = errors.New("no network interface configured")
	ErrUnsupported    = errors.New("device probing is only supported on linux")
)
