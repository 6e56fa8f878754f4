package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/voxelsplace/voxedit/config"
	"github.com/voxelsplace/voxedit/editor"
	"github.com/voxelsplace/voxedit/journal"
	"github.com/voxelsplace/voxedit/pick"
	"github.com/voxelsplace/voxedit/voxel"
)

// Script is a recorded pointer session:
//
//	steps:
//	  - mode: place
//	  - color: "#FF8800"
//	  - move: [600, 450]
//	  - click: [600, 450]
//	  - wait_ms: 10
//	  - clear: true
type Script struct {
	Steps []Step `yaml:"steps"`
}

// Step holds exactly one action.
type Step struct {
	Mode    string       `yaml:"mode,omitempty"`
	Color   string       `yaml:"color,omitempty"`
	Move    *[2]float64  `yaml:"move,omitempty,flow"`
	Down    *[2]float64  `yaml:"down,omitempty,flow"`
	Up      *[2]float64  `yaml:"up,omitempty,flow"`
	Click   *[2]float64  `yaml:"click,omitempty,flow"`
	Recolor *RecolorStep `yaml:"recolor,omitempty"`
	WaitMs  int          `yaml:"wait_ms,omitempty"`
	Clear   bool         `yaml:"clear,omitempty"`
}

type RecolorStep struct {
	At    [3]int `yaml:"at,flow"`
	Color string `yaml:"color"`
}

func LoadScript(path string) (Script, error) {
	var s Script
	raw, err := os.ReadFile(path)
	if err != nil {
		return s, err
	}
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return s, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Session drives a controller with the headless picker and scene. Its
// clock only moves when the script says so, plus one throttle interval
// before every pointer move.
type Session struct {
	Grid       *voxel.Grid
	Scene      *pick.Scene
	Controller *editor.Controller

	clock    time.Time
	throttle time.Duration
}

func NewSession(cfg config.Config, logger *log.Logger, sink editor.ChangeSink) *Session {
	paint, base, sel, del := cfg.Colors()
	s := &Session{
		Grid:     voxel.NewGrid(base),
		Scene:    pick.NewScene(logger),
		clock:    time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
		throttle: cfg.ThrottleInterval(),
	}
	opts := []editor.Option{
		editor.WithThrottle(s.throttle),
		editor.WithClock(func() time.Time { return s.clock }),
		editor.WithLogger(logger),
		editor.WithColor(paint),
		editor.WithHighlightColors(sel, del),
	}
	if sink != nil {
		opts = append(opts, editor.WithChangeSink(sink))
	}
	s.Controller = editor.New(s.Grid, &pick.Picker{Camera: cfg.PickCamera(), Grid: s.Grid}, s.Scene, opts...)
	s.Controller.Sync()
	return s
}

func (s *Session) Play(script Script) error {
	for i, st := range script.Steps {
		if err := s.do(st); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return nil
}

func (s *Session) do(st Step) error {
	s.clock = s.clock.Add(time.Duration(st.WaitMs) * time.Millisecond)
	switch {
	case st.Mode != "":
		m, err := editor.ParseToolMode(st.Mode)
		if err != nil {
			return err
		}
		s.Controller.SetMode(m)
	case st.Color != "":
		return s.Controller.SetColor(st.Color)
	case st.Move != nil:
		s.clock = s.clock.Add(s.throttle)
		s.pointer(editor.PointerMove, *st.Move)
	case st.Down != nil:
		s.pointer(editor.PointerDown, *st.Down)
	case st.Up != nil:
		s.pointer(editor.PointerUp, *st.Up)
	case st.Click != nil:
		s.pointer(editor.PointerDown, *st.Click)
		s.pointer(editor.PointerUp, *st.Click)
	case st.Recolor != nil:
		at := voxel.Coord{X: st.Recolor.At[0], Y: st.Recolor.At[1], Z: st.Recolor.At[2]}
		return s.Controller.Recolor(at, st.Recolor.Color)
	case st.Clear:
		s.Controller.Clear()
	case st.WaitMs == 0:
		return fmt.Errorf("empty step")
	}
	return nil
}

func (s *Session) pointer(kind editor.PointerKind, at [2]float64) {
	s.Controller.HandlePointer(editor.PointerEvent{Kind: kind, X: at[0], Y: at[1], Button: editor.PrimaryButton, At: s.clock})
}

// RunSession plays scriptPath against a fresh scene and writes the result
// as clipboard JSON. configPath may be empty.
func RunSession(scriptPath, outPath, configPath string, logger *log.Logger) error {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	cfg := config.Defaults()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
	}
	script, err := LoadScript(scriptPath)
	if err != nil {
		return err
	}

	var sink editor.ChangeSink
	if cfg.JournalDir != "" {
		w := journal.NewWriter(cfg.JournalDir, "edits")
		defer func() {
			if err := w.Close(); err != nil {
				logger.Printf("journal close: %v", err)
			}
		}()
		sink = w
	}

	s := NewSession(cfg, logger, sink)
	if err := s.Play(script); err != nil {
		return err
	}
	data, err := s.Controller.ExportJSON()
	if err != nil {
		return err
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	logger.Printf("session: %d steps, %d voxels saved to %s", len(script.Steps), s.Grid.Len(), outPath)
	return nil
}
