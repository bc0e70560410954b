// Command trackprobe is a diagnostic for the external serial tracker: it
// runs the connect handshake, streams samples and prints the decomposed
// angles, so a flaky head tracker can be checked without starting the demo.
package main

import (
	"errors"
	"flag"
	"fmt"
	"math"
	"os"
	"os/signal"
	"time"

	"roomtiny/pose"
	"roomtiny/tracker"
)

func main() {
	var (
		port     = flag.String("port", os.Getenv("TRACKER_PORT"), "Serial port of the tracker.")
		duration = flag.Duration("duration", 0, "Stop after this long (0 = run until interrupted).")
		rate     = flag.Duration("rate", 100*time.Millisecond, "Print interval.")
	)
	flag.Parse()

	if *port == "" {
		fatalf("usage: trackprobe -port /dev/ttyUSB0 [-duration 10s] [-rate 100ms]")
	}

	src := tracker.NewExternalTracker(*port)
	if err := src.Connect(); err != nil {
		fatalf("connect: %v", err)
	}
	defer src.Close()
	fmt.Printf("connected to %s\n", *port)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)

	var deadline <-chan time.Time
	if *duration > 0 {
		deadline = time.After(*duration)
	}
	tick := time.NewTicker(*rate)
	defer tick.Stop()

	var ok, missed int
	for {
		select {
		case <-sig:
			fmt.Printf("\n%d samples, %d misses\n", ok, missed)
			return
		case <-deadline:
			fmt.Printf("\n%d samples, %d misses\n", ok, missed)
			return
		case <-tick.C:
			s, err := src.Sample()
			if err != nil {
				missed++
				if errors.Is(err, tracker.ErrTimeout) {
					fmt.Println("  (no data)")
					continue
				}
				fatalf("sample: %v", err)
			}
			ok++
			yaw, pitch, roll := pose.Decompose(s.Orientation)
			fmt.Printf("t=%8s  yaw=%7.2f  pitch=%7.2f  roll=%7.2f deg\n",
				s.At, deg(yaw), deg(pitch), deg(roll))
		}
	}
}

func deg(rad float64) float64 { return rad * 180 / math.Pi }

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}
