// Package monitor drives the poll/render/record loop of the jig.
package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/sigreer/jigcheck/internal/config"
	"github.com/sigreer/jigcheck/internal/display"
	"github.com/sigreer/jigcheck/internal/logger"
	"github.com/sigreer/jigcheck/internal/probe"
)

// DefaultInterval matches the one second refresh of the jig screen
const DefaultInterval = time.Second

// Recorder stores check transitions
type Recorder interface {
	RecordTransition(sessionID, check, oldStatus, newStatus, detail string) error
}

// Monitor owns the loop state. Only Run's goroutine touches it.
type Monitor struct {
	desc     *config.Descriptor
	layout   *config.Layout
	display  display.Display
	backends probe.Backends
	recorder Recorder
	session  string
	interval time.Duration
	log      zerolog.Logger

	last   map[string]string
	cycles int
}

// Option configures a Monitor
type Option func(*Monitor)

// WithBackends replaces the kernel-backed probes
func WithBackends(b probe.Backends) Option {
	return func(m *Monitor) { m.backends = b }
}

// WithRecorder stores transitions under sessionID
func WithRecorder(r Recorder, sessionID string) Option {
	return func(m *Monitor) {
		m.recorder = r
		m.session = sessionID
	}
}

func WithInterval(d time.Duration) Option {
	return func(m *Monitor) {
		if d > 0 {
			m.interval = d
		}
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(m *Monitor) { m.log = l }
}

// New builds a monitor painting onto d
func New(desc *config.Descriptor, layout *config.Layout, d display.Display, opts ...Option) *Monitor {
	m := &Monitor{
		desc:     desc,
		layout:   layout,
		display:  d,
		interval: DefaultInterval,
		log:      logger.WithComponent("monitor"),
		last:     make(map[string]string),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.backends.I2C == nil || m.backends.Net == nil {
		def := probe.DefaultBackends()
		if m.backends.I2C == nil {
			m.backends.I2C = def.I2C
		}
		if m.backends.Net == nil {
			m.backends.Net = def.Net
		}
	}
	return m
}

// Run polls until ctx is cancelled. The first cycle runs immediately;
// cancellation is a clean stop and returns nil.
func (m *Monitor) Run(ctx context.Context) error {
	m.log.Info().Dur("interval", m.interval).Msg("monitor started")

	m.Cycle()

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.log.Info().Int("cycles", m.cycles).Msg("monitor stopped")
			return nil
		case <-ticker.C:
			m.Cycle()
		}
	}
}

// Cycle probes once, repaints the screen and records changed checks
func (m *Monitor) Cycle() probe.Report {
	rep := probe.Run(m.desc, m.backends)
	m.cycles++

	display.Paint(m.display, m.layout, m.desc, rep)
	if err := m.display.Flush(); err != nil {
		m.log.Warn().Err(err).Msg("display flush failed")
	}

	for _, c := range Checks(rep) {
		m.observe(c)
	}

	return rep
}

// Cycles is the number of cycles run so far
func (m *Monitor) Cycles() int {
	return m.cycles
}

func (m *Monitor) observe(c Check) {
	old, seen := m.last[c.Name]
	if seen && old == c.Status {
		return
	}
	m.last[c.Name] = c.Status

	ev := m.log.Info()
	if c.Status == display.StatusFail.String() {
		ev = m.log.Warn()
	}
	ev.Str("check", c.Name).Str("from", old).Str("to", c.Status).Str("detail", c.Detail).Msg("check changed")

	if m.recorder == nil {
		return
	}
	if err := m.recorder.RecordTransition(m.session, c.Name, old, c.Status, c.Detail); err != nil {
		m.log.Error().Err(err).Str("check", c.Name).Msg("failed to record transition")
	}
}

// Check is the verdict of one screen row
type Check struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// Checks flattens a report into named verdicts in screen order
func Checks(rep probe.Report) []Check {
	var out []Check

	for i, res := range rep.I2C {
		out = append(out, Check{
			Name:   fmt.Sprintf("i2c%d.node", i),
			Status: verdict(res.Status.NodeFound()),
			Detail: res.Node,
		})

		dev := Check{Name: fmt.Sprintf("i2c%d.dev", i), Detail: res.Status.String()}
		switch {
		case !res.Status.NodeFound():
			dev.Status = "SKIP"
		default:
			dev.Status = verdict(res.Status.Pass())
		}
		out = append(out, dev)
	}

	for i, res := range rep.Net {
		link := Check{
			Name:   fmt.Sprintf("net%d.link", i),
			Status: verdict(res.OK() && res.LinkUp()),
			Detail: display.FormatLink(res),
		}
		if res.Err != nil {
			link.Detail = res.Err.Error()
		}
		out = append(out, link)

		out = append(out, Check{
			Name:   fmt.Sprintf("net%d.mac", i),
			Status: verdict(res.MacAuthorized),
			Detail: display.FormatMAC(res),
		})
	}

	return out
}

func verdict(ok bool) string {
	if ok {
		return display.StatusPass.String()
	}
	return display.StatusFail.String()
}
