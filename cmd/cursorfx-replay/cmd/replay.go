package cmd

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/phanxgames/cursorfx"
	"github.com/phanxgames/cursorfx/internal/config"
)

// ErrFrameLimit is returned when a script is still running after
// Config.MaxFrames frames.
var ErrFrameLimit = errors.New("frame limit reached")

// Replay runs the script in data on a headless scene and returns the
// snapshots it took.
func Replay(data []byte, cfg *config.Config, log zerolog.Logger) ([]cursorfx.Snapshot, error) {
	runner, err := cursorfx.LoadScript(data)
	if err != nil {
		return nil, err
	}

	w, h := runner.Viewport()
	if w <= 0 || h <= 0 {
		w, h = cfg.Viewport.Width, cfg.Viewport.Height
	}
	frame := runner.FrameTime()
	if cfg.Frame > 0 {
		frame = cfg.Frame
	}

	s := cursorfx.NewScene(w, h)
	s.SetLogger(log)
	if cfg.Debug {
		s.SetDebugMode(true)
		defer s.SetDebugMode(false)
	}
	if cfg.SnapshotDir != "" {
		s.SetSnapshotDir(cfg.SnapshotDir)
	}
	if len(cfg.Track) > 0 {
		s.AddTrackedClass(cfg.Track...)
	}
	if err := runner.Setup(s); err != nil {
		return nil, err
	}

	log.Info().Float64("width", w).Float64("height", h).Float64("frame", frame).Msg("replay started")
	frames := 0
	for !runner.Done() {
		if frames >= cfg.MaxFrames {
			return s.Snapshots(), fmt.Errorf("%w after %d frames", ErrFrameLimit, frames)
		}
		s.Advance(frame)
		frames++
	}
	s.Teardown()
	log.Info().Int("frames", frames).Int("snapshots", len(s.Snapshots())).
		Float64("elapsed_ms", s.Now()).Msg("replay finished")
	return s.Snapshots(), nil
}
