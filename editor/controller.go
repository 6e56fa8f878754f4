package editor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/voxelsplace/voxedit/api"
	"github.com/voxelsplace/voxedit/voxel"
)

// DefaultThrottle bounds how often pointer moves recompute the highlight.
const DefaultThrottle = 30 * time.Millisecond

var (
	DefaultSelectHighlight = voxel.Color{G: 0xFF}
	DefaultDeleteHighlight = voxel.Color{R: 0xFF}
)

// Controller owns the editor state and applies the effects of each pointer
// event in order. All methods must be called from one goroutine.
type Controller struct {
	grid     *voxel.Grid
	picker   Picker
	renderer Renderer
	state    State

	throttle time.Duration
	lastMove time.Time
	now      func() time.Time

	logger   *log.Logger
	observer SelectionObserver
	sink     ChangeSink
	encode   func(*voxel.Grid) ([]byte, error)
}

type Option func(*Controller)

func WithThrottle(d time.Duration) Option {
	return func(c *Controller) { c.throttle = d }
}

func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

func WithObserver(fn SelectionObserver) Option {
	return func(c *Controller) { c.observer = fn }
}

func WithChangeSink(s ChangeSink) Option {
	return func(c *Controller) { c.sink = s }
}

func WithColor(col voxel.Color) Option {
	return func(c *Controller) { c.state.Color = col }
}

func WithHighlightColors(sel, del voxel.Color) Option {
	return func(c *Controller) {
		c.state.SelectHighlight = sel
		c.state.DeleteHighlight = del
	}
}

// WithEncoder replaces the GLB encoder used by ExportGLB.
func WithEncoder(fn func(*voxel.Grid) ([]byte, error)) Option {
	return func(c *Controller) { c.encode = fn }
}

// New returns a controller in select mode painting with voxel.DefaultColor.
func New(grid *voxel.Grid, picker Picker, renderer Renderer, opts ...Option) *Controller {
	c := &Controller{
		grid:     grid,
		picker:   picker,
		renderer: renderer,
		state: State{
			Mode:            ModeSelect,
			Color:           voxel.DefaultColor,
			SelectHighlight: DefaultSelectHighlight,
			DeleteHighlight: DefaultDeleteHighlight,
		},
		throttle: DefaultThrottle,
		now:      time.Now,
		logger:   log.New(io.Discard, "", 0),
		encode:   api.GridToGLB,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Controller) Grid() *voxel.Grid { return c.grid }
func (c *Controller) State() State      { return c.state }
func (c *Controller) Mode() ToolMode    { return c.state.Mode }
func (c *Controller) Color() voxel.Color {
	return c.state.Color
}

// Selection returns the selected cell, if any.
func (c *Controller) Selection() (voxel.Coord, bool) {
	return c.state.Selection, c.state.Selected
}

func (c *Controller) SetMode(m ToolMode) {
	var out []effect
	c.state, out = switchMode(c.state, m)
	c.apply(out)
}

// SetColor sets the paint colour from a "#RRGGBB" string.
func (c *Controller) SetColor(hex string) error {
	col, err := voxel.ParseColor(hex)
	if err != nil {
		return err
	}
	c.state.Color = col
	return nil
}

// Sync adds a mesh for every voxel in the grid. Call once after the
// renderer is ready.
func (c *Controller) Sync() {
	for _, v := range c.grid.Export() {
		c.addMesh(v.Coord, v.Color)
	}
}

// HandlePointer dispatches one pointer event. Moves arriving within the
// throttle interval of the last accepted move are dropped.
func (c *Controller) HandlePointer(ev PointerEvent) {
	if ev.At.IsZero() {
		ev.At = c.now()
	}
	var pick voxel.PickResult
	switch ev.Kind {
	case PointerMove:
		if !c.lastMove.IsZero() && ev.At.Sub(c.lastMove) < c.throttle {
			return
		}
		c.lastMove = ev.At
		pick = c.picker.Pick(ev.X, ev.Y)
	case PointerDown:
		if ev.Button != PrimaryButton {
			return
		}
		pick = c.picker.Pick(ev.X, ev.Y)
	}
	var out []effect
	c.state, out = step(c.state, ev, pick, c.grid.Has)
	c.apply(out)
}

// Info describes the voxel at p for the property panel.
func (c *Controller) Info(p voxel.Coord) (*VoxelInfo, bool) {
	col, ok := c.grid.Get(p)
	if !ok {
		return nil, false
	}
	return &VoxelInfo{ID: p.MeshName(), Position: p, Color: col, Scale: [3]float32{1, 1, 1}}, true
}

// Recolor repaints an existing voxel.
func (c *Controller) Recolor(p voxel.Coord, hex string) error {
	col, err := voxel.ParseColor(hex)
	if err != nil {
		return err
	}
	if err := c.grid.SetColor(p, col); err != nil {
		return err
	}
	c.renderer.RemoveShadowCaster(p)
	c.renderer.RemoveMesh(p)
	c.addMesh(p, col)
	c.record(voxel.Change{Op: voxel.OpRecolor, Coord: p, Color: col})
	if c.state.Selected && c.state.Selection == p {
		c.notify(p)
	}
	return nil
}

// Clear removes every voxel except the base voxel.
func (c *Controller) Clear() {
	removed := c.grid.Clear()
	for _, p := range removed {
		c.removeMesh(p)
	}
	var out []effect
	if c.state.Selected && !c.grid.Has(c.state.Selection) {
		c.state, out = c.state.clearSelection(out)
	}
	c.apply(append(out, effect{kind: effectHideHighlight}))
	c.record(voxel.Change{Op: voxel.OpClear, Count: len(removed)})
}

// ExportJSON is the clipboard export.
func (c *Controller) ExportJSON() ([]byte, error) {
	return voxel.MarshalRecords(c.grid)
}

// ImportJSON replaces the scene with clipboard records and resyncs the
// renderer. Malformed records are skipped and reported.
func (c *Controller) ImportJSON(data []byte) (voxel.ImportReport, error) {
	old := c.grid.Export()
	rep, err := voxel.ImportJSON(c.grid, data)
	if err != nil {
		return rep, err
	}
	for _, v := range old {
		c.removeMesh(v.Coord)
	}
	c.Sync()

	var out []effect
	c.state, out = c.state.clearSelection(out)
	c.apply(append(out, effect{kind: effectHideHighlight}))
	c.record(voxel.Change{Op: voxel.OpImport, Count: rep.Applied})
	if rep.Rejected > 0 {
		c.logger.Printf("import: %s", rep)
	}
	return rep, nil
}

// ExportGLB encodes a snapshot of the grid off the event goroutine. The
// live grid is never touched by the encoder, so a failure leaves it intact.
func (c *Controller) ExportGLB(ctx context.Context) ([]byte, error) {
	return c.PrepareGLBExport()(ctx)
}

// PrepareGLBExport snapshots the grid on the calling goroutine and returns
// a job that encodes the snapshot. The job may run on any goroutine; it
// never touches the controller's state.
func (c *Controller) PrepareGLBExport() func(context.Context) ([]byte, error) {
	snap := voxel.NewGrid(voxel.BaseColor)
	snap.Import(c.grid.Export())
	encode, logger := c.encode, c.logger

	return func(ctx context.Context) ([]byte, error) {
		type result struct {
			b   []byte
			err error
		}
		ch := make(chan result, 1)
		go func() {
			defer func() {
				if r := recover(); r != nil {
					ch <- result{err: fmt.Errorf("%w: encoder panic: %v", voxel.ErrExportFailure, r)}
				}
			}()
			b, err := encode(snap)
			ch <- result{b, err}
		}()

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %w", voxel.ErrExportFailure, ctx.Err())
		case r := <-ch:
			if r.err != nil {
				logger.Printf("export glb: %v", r.err)
				if !errors.Is(r.err, voxel.ErrExportFailure) {
					return nil, fmt.Errorf("%w: %w", voxel.ErrExportFailure, r.err)
				}
				return nil, r.err
			}
			return r.b, nil
		}
	}
}

func (c *Controller) apply(effects []effect) {
	for _, e := range effects {
		switch e.kind {
		case effectPlace:
			if !c.grid.Place(e.coord, e.color) {
				c.logger.Printf("place %s: %v", e.coord, voxel.ErrOccupiedCell)
				continue
			}
			c.addMesh(e.coord, e.color)
			c.record(voxel.Change{Op: voxel.OpPlace, Coord: e.coord, Color: e.color})
		case effectRemove:
			col, _ := c.grid.Get(e.coord)
			if err := c.grid.Remove(e.coord); err != nil {
				c.logger.Printf("delete %s: %v", e.coord, err)
				continue
			}
			c.logger.Printf("deleting voxel %s at %s", e.coord.MeshName(), e.coord)
			c.removeMesh(e.coord)
			c.record(voxel.Change{Op: voxel.OpRemove, Coord: e.coord, Color: col})
		case effectHighlight:
			c.renderer.ShowHighlight(e.coord, e.color)
		case effectHideHighlight:
			c.renderer.HideHighlight()
		case effectSelect:
			c.notify(e.coord)
		case effectDeselect:
			if c.observer != nil {
				c.observer(nil)
			}
		case effectDetachCamera:
			c.renderer.DetachCamera()
		case effectAttachCamera:
			c.renderer.AttachCamera()
		}
	}
}

func (c *Controller) notify(p voxel.Coord) {
	if c.observer == nil {
		return
	}
	info, _ := c.Info(p)
	c.observer(info)
}

func (c *Controller) addMesh(p voxel.Coord, col voxel.Color) {
	c.renderer.AddMesh(p, col)
	c.renderer.AddShadowCaster(p)
}

func (c *Controller) removeMesh(p voxel.Coord) {
	c.renderer.RemoveShadowCaster(p)
	c.renderer.RemoveMesh(p)
}

func (c *Controller) record(ch voxel.Change) {
	if c.sink == nil {
		return
	}
	if err := c.sink.Record(ch); err != nil {
		c.logger.Printf("journal: %v", err)
	}
}
