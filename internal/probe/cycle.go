package probe

import (
	"time"

	"github.com/sigreer/jigcheck/internal/config"
)

// Backends are the device interfaces a cycle talks to
type Backends struct {
	I2C I2CBus
	Net NetOpener
	Now func() time.Time
}

// DefaultBackends returns the kernel-backed implementations
func DefaultBackends() Backends {
	return Backends{
		I2C: DefaultI2CBus(),
		Net: OpenNetControl,
		Now: time.Now,
	}
}

// Report is the result of one poll cycle
type Report struct {
	Time time.Time    `json:"time"`
	I2C  [2]I2CResult `json:"i2c"`
	Net  [2]NetResult `json:"net"`
}

// Passed is true when every bus answered, every interface was readable and
// every MAC is within policy
func (r Report) Passed() bool {
	for _, res := range r.I2C {
		if !res.Status.Pass() {
			return false
		}
	}
	for _, res := range r.Net {
		if !res.OK() || !res.MacAuthorized {
			return false
		}
	}
	return true
}

// Run probes both I2C buses then both network interfaces
func Run(desc *config.Descriptor, b Backends) Report {
	now := time.Now
	if b.Now != nil {
		now = b.Now
	}

	rep := Report{Time: now()}

	for i := range rep.I2C {
		rep.I2C[i] = ProbeI2C(b.I2C, desc.I2CNodes[i], desc.I2CAddresses[i])
	}

	for i := range rep.Net {
		res := ProbeNet(b.Net, desc.EthInterfaces[i])
		res.MacAuthorized = desc.MacCheck.Authorized(res.MAC)
		rep.Net[i] = res
	}

	return rep
}
