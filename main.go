package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"roomtiny/app"
	"roomtiny/hal"
	"roomtiny/internal/buildinfo"
	"roomtiny/internal/log"
	"roomtiny/roomgl"
	"roomtiny/stereo"
	"roomtiny/telemetry"
	"roomtiny/tracker"
)

func main() {
	var (
		headless    hal.HeadlessConfig
		runHeadless = flag.Bool("headless", false, "Run without a window.")
		trackerMode = flag.String("tracker", "auto", "Orientation source: auto, external, fusion or none.")
		serialPort  = flag.String("serial-port", os.Getenv("TRACKER_PORT"), "Serial port of the external tracker.")
		telemetryOn = flag.String("telemetry", "", "Telemetry listen address (empty = off), e.g. :8123.")
		logLevel    = flag.String("log-level", "info", "Log level: debug, info, warn or error.")
	)
	flag.IntVar(&headless.Hz, "hz", 60, "Tick rate in headless mode.")
	flag.Uint64Var(&headless.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.Parse()

	log.Init(*logLevel)

	hmd := stereo.SevenInchPanel()
	width, height := hmd.HResolution, hmd.VResolution

	scene := roomgl.BuildRoomScene()
	backend, err := roomgl.NewBackend(width, height, scene)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	stereoCfg := stereo.NewConfig(hmd, roomgl.Viewport{W: width, H: height})
	stereoCfg.SetMode(stereo.ModeLeftRightMultipass)

	source := selectTracker(*trackerMode, *serialPort)
	if source != nil {
		source.SetPredictionEnabled(true)
		defer source.Close()
	}

	var tele *telemetry.Server
	if *telemetryOn != "" {
		tele = telemetry.NewServer(*telemetryOn)
		tele.Start()
		defer tele.Shutdown()
	}

	newApp := func(h hal.HAL) func() error {
		backend.AttachPresenter(h.Display())
		return app.New(h, app.Config{
			Source:    source,
			Stereo:    stereoCfg,
			Backend:   backend,
			Telemetry: tele,
		})
	}

	if *runHeadless {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := hal.RunHeadless(ctx, newApp, headless); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := hal.RunWindow(newApp, hal.WindowConfig{
		Width:  width,
		Height: height,
		Title:  "RoomTiny (" + buildinfo.Short() + ")",
	}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// selectTracker builds the candidate list for the requested mode and lets
// the connect precedence pick the winner.
func selectTracker(mode, port string) tracker.Source {
	switch mode {
	case "none":
		return nil
	case "external":
		return tracker.SelectSource(tracker.NewExternalTracker(port))
	case "fusion":
		return tracker.SelectSource(tracker.NewInternalFusion(tracker.NewSimulatedIMU(), nil))
	case "auto":
		return tracker.SelectSource(
			tracker.NewExternalTracker(port),
			tracker.NewInternalFusion(tracker.NewSimulatedIMU(), nil),
		)
	default:
		log.Warn("unknown tracker mode, running without tracker", "mode", mode)
		return nil
	}
}
