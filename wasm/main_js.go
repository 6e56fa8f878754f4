//go:build js && wasm

package main

import (
	"context"
	"syscall/js"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/voxelsplace/voxedit/editor"
	"github.com/voxelsplace/voxedit/voxel"
)

// jsRenderer forwards scene calls to the callbacks object handed to
// initEditor by the page.
type jsRenderer struct{ cb js.Value }

func (r jsRenderer) call(name string, args ...any) {
	if fn := r.cb.Get(name); fn.Type() == js.TypeFunction {
		fn.Invoke(args...)
	}
}

func coordJS(c voxel.Coord) map[string]any {
	return map[string]any{"x": c.X, "y": c.Y, "z": c.Z, "id": c.MeshName()}
}

func (r jsRenderer) AddMesh(c voxel.Coord, col voxel.Color) { r.call("addMesh", coordJS(c), col.Hex()) }
func (r jsRenderer) RemoveMesh(c voxel.Coord)               { r.call("removeMesh", coordJS(c)) }
func (r jsRenderer) AddShadowCaster(c voxel.Coord)          { r.call("addShadowCaster", coordJS(c)) }
func (r jsRenderer) RemoveShadowCaster(c voxel.Coord)       { r.call("removeShadowCaster", coordJS(c)) }
func (r jsRenderer) ShowHighlight(c voxel.Coord, col voxel.Color) {
	r.call("showHighlight", coordJS(c), col.Hex())
}
func (r jsRenderer) HideHighlight() { r.call("hideHighlight") }
func (r jsRenderer) DetachCamera()  { r.call("detachCamera") }
func (r jsRenderer) AttachCamera()  { r.call("attachCamera") }

// lastPick is filled by pointerEvent before the controller asks for it;
// the page's engine does the ray cast.
type lastPick struct{ res voxel.PickResult }

func (p *lastPick) Pick(x, y float64) voxel.PickResult { return p.res }

var (
	ctl    *editor.Controller
	picker = &lastPick{}
)

func errJS(err error) any { return map[string]any{"error": err.Error()} }

func bytesJS(b []byte) js.Value {
	arr := js.Global().Get("Uint8Array").New(len(b))
	js.CopyBytesToJS(arr, b)
	return arr
}

func initEditor(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf("missing callbacks object")
	}
	cb := args[0]
	opts := []editor.Option{}
	if obs := cb.Get("onSelect"); obs.Type() == js.TypeFunction {
		opts = append(opts, editor.WithObserver(func(info *editor.VoxelInfo) {
			if info == nil {
				obs.Invoke(js.Null())
				return
			}
			obs.Invoke(map[string]any{
				"id":       info.ID,
				"position": coordJS(info.Position),
				"color":    info.Color.Hex(),
				"scale":    []any{info.Scale[0], info.Scale[1], info.Scale[2]},
			})
		}))
	}
	ctl = editor.New(voxel.NewGrid(voxel.BaseColor), picker, jsRenderer{cb}, opts...)
	ctl.Sync()
	return nil
}

func setMode(this js.Value, args []js.Value) any {
	if ctl == nil || len(args) < 1 {
		return js.ValueOf("editor not ready")
	}
	m, err := editor.ParseToolMode(args[0].String())
	if err != nil {
		return errJS(err)
	}
	ctl.SetMode(m)
	return nil
}

func setVoxelColor(this js.Value, args []js.Value) any {
	if ctl == nil || len(args) < 1 {
		return js.ValueOf("editor not ready")
	}
	if err := ctl.SetColor(args[0].String()); err != nil {
		return errJS(err)
	}
	return nil
}

func clearScene(this js.Value, args []js.Value) any {
	if ctl != nil {
		ctl.Clear()
	}
	return nil
}

func exportVoxels(this js.Value, args []js.Value) any {
	if ctl == nil {
		return js.ValueOf("editor not ready")
	}
	b, err := ctl.ExportJSON()
	if err != nil {
		return errJS(err)
	}
	return js.ValueOf(string(b))
}

func importVoxels(this js.Value, args []js.Value) any {
	if ctl == nil || len(args) < 1 {
		return js.ValueOf("editor not ready")
	}
	rep, err := ctl.ImportJSON([]byte(args[0].String()))
	if err != nil {
		return errJS(err)
	}
	return map[string]any{"applied": rep.Applied, "rejected": rep.Rejected}
}

// recolorVoxel(x, y, z, "#RRGGBB") repaints an existing voxel from the
// property panel.
func recolorVoxel(this js.Value, args []js.Value) any {
	if ctl == nil || len(args) < 4 {
		return js.ValueOf("editor not ready")
	}
	at := voxel.Coord{X: args[0].Int(), Y: args[1].Int(), Z: args[2].Int()}
	if err := ctl.Recolor(at, args[3].String()); err != nil {
		return errJS(err)
	}
	return nil
}

// exportGLB(timeoutMs, done) encodes off the event loop and calls
// done(bytes, error).
func exportGLB(this js.Value, args []js.Value) any {
	if ctl == nil || len(args) < 2 {
		return js.ValueOf("editor not ready")
	}
	timeout := time.Duration(args[0].Int()) * time.Millisecond
	done := args[1]
	job := ctl.PrepareGLBExport()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	go func() {
		defer cancel()
		b, err := job(ctx)
		if err != nil {
			done.Invoke(js.Null(), err.Error())
			return
		}
		done.Invoke(bytesJS(b), js.Null())
	}()
	return nil
}

// pointerEvent(kind, x, y, button, pick) where pick is null or
// {hit, onVoxel, x, y, z, px, py, pz}.
func pointerEvent(this js.Value, args []js.Value) any {
	if ctl == nil || len(args) < 5 {
		return js.ValueOf("editor not ready")
	}
	var kind editor.PointerKind
	switch args[0].String() {
	case "move":
		kind = editor.PointerMove
	case "down":
		kind = editor.PointerDown
	case "up":
		kind = editor.PointerUp
	default:
		return js.ValueOf("unknown pointer kind")
	}
	picker.res = voxel.PickResult{}
	if p := args[4]; p.Truthy() {
		picker.res = voxel.PickResult{
			Hit:     p.Get("hit").Truthy(),
			OnVoxel: p.Get("onVoxel").Truthy(),
			Coord:   voxel.Coord{X: p.Get("x").Int(), Y: p.Get("y").Int(), Z: p.Get("z").Int()},
			Point:   mgl32.Vec3{float32(p.Get("px").Float()), float32(p.Get("py").Float()), float32(p.Get("pz").Float())},
		}
	}
	ctl.HandlePointer(editor.PointerEvent{
		Kind:   kind,
		X:      args[1].Float(),
		Y:      args[2].Float(),
		Button: args[3].Int(),
	})
	return nil
}

func main() {
	js.Global().Set("initEditor", js.FuncOf(initEditor))
	js.Global().Set("setMode", js.FuncOf(setMode))
	js.Global().Set("setVoxelColor", js.FuncOf(setVoxelColor))
	js.Global().Set("clearScene", js.FuncOf(clearScene))
	js.Global().Set("exportVoxels", js.FuncOf(exportVoxels))
	js.Global().Set("importVoxels", js.FuncOf(importVoxels))
	js.Global().Set("recolorVoxel", js.FuncOf(recolorVoxel))
	js.Global().Set("exportGLB", js.FuncOf(exportGLB))
	js.Global().Set("pointerEvent", js.FuncOf(pointerEvent))
	select {}
}
