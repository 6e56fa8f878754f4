package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/voxelsplace/voxedit/voxel"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "voxedit.yaml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestDefaultsValid(t *testing.T) {
	c := Defaults()
	if err := c.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
	if c.ThrottleInterval() != 30*time.Millisecond {
		t.Fatalf("throttle = %v", c.ThrottleInterval())
	}
	paint, base, _, _ := c.Colors()
	if paint != voxel.DefaultColor || base != voxel.BaseColor {
		t.Fatalf("colors %v %v", paint, base)
	}
}

func TestLoadMergesDefaults(t *testing.T) {
	p := writeFile(t, `
default_color: "#112233"
move_throttle_ms: 50
camera:
  eye: [0, 10, 0]
  width: 640
journal_dir: /tmp/j
`)
	c, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.DefaultColor != "#112233" || c.BaseColor != Defaults().BaseColor {
		t.Fatalf("colors not merged: %+v", c)
	}
	if c.ThrottleInterval() != 50*time.Millisecond {
		t.Fatalf("throttle = %v", c.ThrottleInterval())
	}
	cam := c.PickCamera()
	if cam.Eye[1] != 10 || cam.Width != 640 || cam.Height != Defaults().Camera.Height {
		t.Fatalf("camera = %+v", cam)
	}
	if c.JournalDir != "/tmp/j" {
		t.Fatalf("journal dir = %q", c.JournalDir)
	}
}

func TestLoadRejects(t *testing.T) {
	cases := map[string]string{
		"bad colour":   `base_color: "white"`,
		"bad throttle": `move_throttle_ms: -5`,
		"bad fov":      "camera:\n  fov_y: 200\n",
		"bad yaml":     "camera: [",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeFile(t, body)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v", err)
	}
}
