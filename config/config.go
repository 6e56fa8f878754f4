package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/voxelsplace/voxedit/pick"
	"github.com/voxelsplace/voxedit/voxel"
)

type Config struct {
	DefaultColor    string `yaml:"default_color"`
	BaseColor       string `yaml:"base_color"`
	SelectHighlight string `yaml:"select_highlight"`
	DeleteHighlight string `yaml:"delete_highlight"`
	MoveThrottleMs  int    `yaml:"move_throttle_ms"`

	Camera     Camera `yaml:"camera"`
	JournalDir string `yaml:"journal_dir"`
}

type Camera struct {
	Eye    [3]float32 `yaml:"eye,flow"`
	Target [3]float32 `yaml:"target,flow"`
	FovY   float32    `yaml:"fov_y"`
	Width  int        `yaml:"width"`
	Height int        `yaml:"height"`
}

func Defaults() Config {
	cam := pick.DefaultCamera()
	return Config{
		DefaultColor:    voxel.DefaultColor.Hex(),
		BaseColor:       voxel.BaseColor.Hex(),
		SelectHighlight: "#00FF00",
		DeleteHighlight: "#FF0000",
		MoveThrottleMs:  30,
		Camera: Camera{
			Eye:    cam.Eye,
			Target: cam.Target,
			FovY:   cam.FovY,
			Width:  cam.Width,
			Height: cam.Height,
		},
	}
}

// Load reads a YAML config. Missing fields take their default values.
func Load(path string) (Config, error) {
	c := Defaults()
	raw, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	var file Config
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}
	c.merge(file)
	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func (c *Config) merge(f Config) {
	for dst, src := range map[*string]string{
		&c.DefaultColor:    f.DefaultColor,
		&c.BaseColor:       f.BaseColor,
		&c.SelectHighlight: f.SelectHighlight,
		&c.DeleteHighlight: f.DeleteHighlight,
		&c.JournalDir:      f.JournalDir,
	} {
		if src != "" {
			*dst = src
		}
	}
	if f.MoveThrottleMs != 0 {
		c.MoveThrottleMs = f.MoveThrottleMs
	}
	if f.Camera.Eye != [3]float32{} {
		c.Camera.Eye = f.Camera.Eye
	}
	if f.Camera.Target != [3]float32{} {
		c.Camera.Target = f.Camera.Target
	}
	if f.Camera.FovY != 0 {
		c.Camera.FovY = f.Camera.FovY
	}
	if f.Camera.Width != 0 {
		c.Camera.Width = f.Camera.Width
	}
	if f.Camera.Height != 0 {
		c.Camera.Height = f.Camera.Height
	}
}

func (c Config) Validate() error {
	for name, v := range map[string]string{
		"default_color":    c.DefaultColor,
		"base_color":       c.BaseColor,
		"select_highlight": c.SelectHighlight,
		"delete_highlight": c.DeleteHighlight,
	} {
		if _, err := voxel.ParseColor(v); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	if c.MoveThrottleMs < 0 {
		return fmt.Errorf("move_throttle_ms: negative value %d", c.MoveThrottleMs)
	}
	if c.Camera.Width <= 0 || c.Camera.Height <= 0 {
		return fmt.Errorf("camera: bad viewport %dx%d", c.Camera.Width, c.Camera.Height)
	}
	if c.Camera.FovY <= 0 || c.Camera.FovY >= 180 {
		return fmt.Errorf("camera: fov_y %v out of range", c.Camera.FovY)
	}
	return nil
}

func (c Config) ThrottleInterval() time.Duration {
	return time.Duration(c.MoveThrottleMs) * time.Millisecond
}

// Colors returns the parsed colours. Call Validate first.
func (c Config) Colors() (paint, base, sel, del voxel.Color) {
	return voxel.MustParseColor(c.DefaultColor), voxel.MustParseColor(c.BaseColor),
		voxel.MustParseColor(c.SelectHighlight), voxel.MustParseColor(c.DeleteHighlight)
}

func (c Config) PickCamera() pick.Camera {
	cam := pick.DefaultCamera()
	cam.Eye = mgl32.Vec3(c.Camera.Eye)
	cam.Target = mgl32.Vec3(c.Camera.Target)
	cam.FovY = c.Camera.FovY
	cam.Width = c.Camera.Width
	cam.Height = c.Camera.Height
	return cam
}
