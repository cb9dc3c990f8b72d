package display

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/sigreer/jigcheck/internal/config"
	"github.com/sigreer/jigcheck/internal/probe"
)

// Screen rows
const (
	RowTitle    = 0
	RowClock    = 1
	RowI2CNode  = 2 // +bus
	RowI2CDev   = 4 // +bus
	RowNetLink  = 6 // +port
	RowNetMAC   = 8 // +port
	NumRows     = 10
	clockLayout = "2006/01/02, 15:04:05"
)

// Paint writes a cycle report onto d. It does not flush.
func Paint(d Display, layout *config.Layout, desc *config.Descriptor, rep probe.Report) {
	title := layout.Title
	if desc.Model != "" {
		title += " - " + desc.Model
	}
	d.SetText(RowTitle, title)
	if layout.Clock() {
		d.SetText(RowClock, rep.Time.Format(clockLayout))
	}

	for i, res := range rep.I2C {
		d.SetText(RowI2CNode+i, fmt.Sprintf("Found I2C Node(%s)", nodeLabel(res.Node)))
		d.SetStatus(RowI2CNode+i, pass(res.Status.NodeFound()))

		if !res.Status.NodeFound() {
			d.SetText(RowI2CDev+i, fmt.Sprintf("Check I2C-%d Device (Addr = 0x%02x) skipped", i, res.Address))
			d.SetStatus(RowI2CDev+i, StatusNone)
			continue
		}
		d.SetText(RowI2CDev+i, fmt.Sprintf("Check %s Device (Addr = 0x%02x)", res.Node, res.Address))
		d.SetStatus(RowI2CDev+i, pass(res.Status.Pass()))
	}

	for i, res := range rep.Net {
		ip := "0.0.0.0"
		if res.IP != nil {
			ip = res.IP.String()
		}
		d.SetText(RowNetLink+i, fmt.Sprintf("%s(%s), %s", res.Interface, ip, FormatLink(res)))
		d.SetStatus(RowNetLink+i, pass(res.OK() && res.LinkUp()))

		d.SetText(RowNetMAC+i, fmt.Sprintf("MAC(%s) : %s", res.Interface, FormatMAC(res)))
		d.SetStatus(RowNetMAC+i, pass(res.MacAuthorized))
	}
}

// FormatSpeed renders a link speed given in Mb/s
func FormatSpeed(mbps uint32) string {
	if mbps == 0 || mbps == probe.SpeedUnknown {
		return "link down"
	}
	return humanize.SI(float64(mbps)*1e6, "b/s")
}

// FormatLink renders the speed of a probed interface. A failed query means
// the speed is unknown, not that the link is down.
func FormatLink(res probe.NetResult) string {
	if res.Err != nil {
		return "unknown"
	}
	return FormatSpeed(res.SpeedMbps)
}

// FormatMAC renders the learned address, zeroes when unknown
func FormatMAC(res probe.NetResult) string {
	if len(res.MAC) == 0 {
		return "00:00:00:00:00:00"
	}
	return res.MAC.String()
}

func nodeLabel(node string) string {
	if node == "" {
		return "not found"
	}
	return node
}

func pass(ok bool) Status {
	if ok {
		return StatusPass
	}
	return StatusFail
}
