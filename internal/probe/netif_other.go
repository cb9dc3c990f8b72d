//go:build !linux

package probe

// OpenNetControl is not available off linux
func OpenNetControl() (NetControl, error) {
	return nil, ErrUnsupported
}
