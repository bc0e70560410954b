package telemetry

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusReportsLastPose(t *testing.T) {
	s := NewServer(":0")
	s.Publish(PoseSnapshot{
		Frame:   42,
		Yaw:     3.14,
		IPD:     0.064,
		Stereo:  "left-right",
		Tracker: "external-tracker",
	})

	req := httptest.NewRequest("GET", "/api/status", nil)
	resp, err := s.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, 200, resp.StatusCode)

	var body struct {
		Clients int          `json:"clients"`
		Pose    PoseSnapshot `json:"pose"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, uint64(42), body.Pose.Frame)
	assert.Equal(t, "left-right", body.Pose.Stereo)
	assert.Zero(t, body.Clients)
}

func TestWebsocketRouteRequiresUpgrade(t *testing.T) {
	s := NewServer(":0")
	req := httptest.NewRequest("GET", "/ws/pose", nil)
	resp, err := s.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, 426, resp.StatusCode)
}

func TestPublishNeverBlocks(t *testing.T) {
	s := NewServer(":0")

	// A stalled client with a full buffer must not stall the frame loop.
	ch := make(chan []byte, 1)
	ch <- []byte("stale")
	s.mu.Lock()
	s.clients["stuck"] = ch
	s.mu.Unlock()

	for i := 0; i < 100; i++ {
		s.Publish(PoseSnapshot{Frame: uint64(i)})
	}
	assert.Equal(t, uint64(99), s.last.Frame)
}
