package cursorfx

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Snapshot is a labeled capture of every variable written so far, keyed by
// element name.
type Snapshot struct {
	Label    string                       `yaml:"label"`
	Time     float64                      `yaml:"time"`
	Pointer  *Vec2                        `yaml:"pointer,omitempty"`
	Elements map[string]map[string]string `yaml:"elements"`
}

// Snapshot queues a labeled capture taken at the end of the current frame,
// after fades have been stepped. Safe to call from Update or from callbacks.
func (s *Scene) Snapshot(label string) {
	s.snapshotQueue = append(s.snapshotQueue, label)
}

// Snapshots returns every capture taken so far, oldest first.
func (s *Scene) Snapshots() []Snapshot {
	return s.snapshots
}

// SetSnapshotDir makes every capture also be written to dir as a YAML file
// named after its label. An empty dir disables writing.
func (s *Scene) SetSnapshotDir(dir string) {
	s.snapshotDir = dir
}

// Capture returns the current variables without queueing.
func (s *Scene) Capture(label string) Snapshot {
	snap := Snapshot{
		Label:    label,
		Time:     s.clock,
		Elements: make(map[string]map[string]string),
	}
	if s.pointer.inside {
		snap.Pointer = &Vec2{X: s.pointer.x, Y: s.pointer.y}
	}
	s.root.Walk(func(e *Element) bool {
		if len(e.vars) > 0 {
			snap.Elements[snapshotKey(e)] = e.Vars()
		}
		return true
	})
	return snap
}

// flushSnapshots captures every queued label. Called at the end of each frame.
func (s *Scene) flushSnapshots() {
	if len(s.snapshotQueue) == 0 {
		return
	}
	for _, label := range s.snapshotQueue {
		snap := s.Capture(label)
		s.snapshots = append(s.snapshots, snap)
		if s.snapshotDir == "" {
			continue
		}
		if s.drawn {
			s.Screenshot(label)
		}
		if err := writeSnapshot(s.snapshotDir, snap); err != nil {
			s.logger.Error().Err(err).Str("label", label).Msg("snapshot")
		}
	}
	s.snapshotQueue = s.snapshotQueue[:0]
}

func snapshotKey(e *Element) string {
	if e.Name == "" {
		return fmt.Sprintf("#%d", e.ID)
	}
	return e.Name
}

// writeSnapshot encodes snap as YAML into dir.
func writeSnapshot(dir string, snap Snapshot) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	data, err := yaml.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot %q: %w", snap.Label, err)
	}
	path := filepath.Join(dir, sanitizeLabel(snap.Label)+".yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
