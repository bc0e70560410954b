package hal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"roomtiny/input"
)

// RunHeadless drives the app from a ticker without opening a window. Input
// is empty every tick; frames presented by the app are dropped. Used for
// soak runs and CI.
func RunHeadless(ctx context.Context, newApp func(HAL) func() error, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}

	h := &headlessHAL{start: time.Now()}
	step := newApp(h)

	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if step != nil {
				if err := step(); err != nil {
					if errors.Is(err, ErrQuit) {
						return nil
					}
					return err
				}
			}
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}

type headlessHAL struct {
	start time.Time
}

func (h *headlessHAL) PollInput() input.Frame { return input.Frame{} }
func (h *headlessHAL) Display() Display       { return headlessDisplay{} }
func (h *headlessHAL) Now() time.Duration     { return time.Since(h.start) }

type headlessDisplay struct{}

func (headlessDisplay) PresentFrame(pix []byte, w, h int) error { return nil }
func (headlessDisplay) Size() (int, int)                        { return 1280, 800 }
