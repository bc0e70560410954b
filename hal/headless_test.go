package hal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunHeadlessStopsAfterTicks(t *testing.T) {
	var steps int
	err := RunHeadless(context.Background(), func(h HAL) func() error {
		return func() error {
			steps++
			return nil
		}
	}, HeadlessConfig{Hz: 1000, Ticks: 5})
	require.NoError(t, err)
	assert.Equal(t, 5, steps)
}

func TestRunHeadlessQuitIsClean(t *testing.T) {
	err := RunHeadless(context.Background(), func(h HAL) func() error {
		return func() error { return ErrQuit }
	}, HeadlessConfig{Hz: 1000})
	assert.NoError(t, err)
}

func TestRunHeadlessPropagatesStepError(t *testing.T) {
	boom := errors.New("boom")
	err := RunHeadless(context.Background(), func(h HAL) func() error {
		return func() error { return boom }
	}, HeadlessConfig{Hz: 1000})
	assert.ErrorIs(t, err, boom)
}

func TestRunHeadlessContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	err := RunHeadless(ctx, func(h HAL) func() error {
		return func() error { return nil }
	}, HeadlessConfig{Hz: 1000})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHeadlessHALContract(t *testing.T) {
	err := RunHeadless(context.Background(), func(h HAL) func() error {
		var last time.Duration
		return func() error {
			f := h.PollInput()
			assert.Empty(t, f.Keys)

			now := h.Now()
			assert.GreaterOrEqual(t, now, last)
			last = now

			w, hh := h.Display().Size()
			assert.Positive(t, w)
			assert.Positive(t, hh)
			return h.Display().PresentFrame(make([]byte, w*hh*4), w, hh)
		}
	}, HeadlessConfig{Hz: 1000, Ticks: 3})
	assert.NoError(t, err)
}
