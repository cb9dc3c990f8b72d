package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sigreer/jigcheck/internal/db"
	"github.com/sigreer/jigcheck/internal/display"
	"github.com/sigreer/jigcheck/internal/fb"
	"github.com/sigreer/jigcheck/internal/logger"
	"github.com/sigreer/jigcheck/internal/monitor"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the jig test screen until interrupted",
	Long: `Probe the jig once per interval and redraw the status screen.

Each check shows PASS or FAIL. State changes are logged and, unless --db
is empty, stored in the results database under a new session.
The framebuffer named on the FB line must open; --no-fb skips it.
Stop with Ctrl-C.`,
	RunE: runMonitor,
}

func init() {
	runCmd.Flags().DurationP("interval", "i", monitor.DefaultInterval, "probe interval")
	runCmd.Flags().Bool("no-clear", false, "append frames instead of redrawing the screen")
	runCmd.Flags().Bool("no-fb", false, "do not open the framebuffer, terminal display only")
}

func runMonitor(cmd *cobra.Command, args []string) error {
	interval, _ := cmd.Flags().GetDuration("interval")
	noClear, _ := cmd.Flags().GetBool("no-clear")
	noFB, _ := cmd.Flags().GetBool("no-fb")
	log := logger.WithComponent("run")

	desc, layout, err := loadJig()
	if err != nil {
		return err
	}

	if noFB {
		log.Info().Msg("framebuffer disabled")
	} else {
		dev, err := openFramebuffer(desc.FramebufferDevice)
		if err != nil {
			return err
		}
		if dev != nil {
			log.Info().Str("device", dev.Path).Stringer("mode", dev.Info).Msg("framebuffer opened")
			defer dev.Close()
		}
	}

	opts := []monitor.Option{monitor.WithInterval(interval)}

	if dbPath != "" {
		store, err := db.New(dbPath)
		if err != nil {
			log.Warn().Err(err).Msg("results database unavailable, history disabled")
		} else {
			defer store.Close()
			session, err := store.CreateSession(desc.Model, appConfigFile)
			if err != nil {
				log.Warn().Err(err).Msg("could not start session, history disabled")
			} else {
				log.Info().Str("session", session.ID).Str("db", store.Path()).Msg("recording results")
				opts = append(opts, monitor.WithRecorder(store, session.ID))
			}
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	term := display.NewTerminal(os.Stdout, layout, display.NumRows, !noClear)
	mon := monitor.New(desc, layout, term, opts...)

	start := time.Now()
	if err := mon.Run(ctx); err != nil {
		return err
	}
	fmt.Printf("\nstopped after %d cycles (%s)\n", mon.Cycles(), time.Since(start).Round(time.Second))
	return nil
}

// openFramebuffer opens the configured device. No FB line means no device;
// a device that fails to open stops startup.
func openFramebuffer(path string) (*fb.Device, error) {
	if path == "" {
		return nil, nil
	}
	dev, err := fb.Open(path)
	if err != nil {
		return nil, fmt.Errorf("framebuffer init: %w", err)
	}
	return dev, nil
}
