package journal_test

import (
	"testing"
	"time"

	"github.com/voxelsplace/voxedit/editor"
	"github.com/voxelsplace/voxedit/journal"
	"github.com/voxelsplace/voxedit/voxel"
)

var _ editor.ChangeSink = (*journal.Writer)(nil)

func TestWriteRead(t *testing.T) {
	dir := t.TempDir()
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	w := journal.NewWriter(dir, "edits")
	w.SetClock(func() time.Time { return at })

	changes := []voxel.Change{
		{Op: voxel.OpPlace, Coord: voxel.Coord{Y: 1}, Color: voxel.DefaultColor},
		{Op: voxel.OpRemove, Coord: voxel.Coord{X: -2, Z: 3}, Color: voxel.BaseColor},
		{Op: voxel.OpClear, Count: 4},
	}
	for _, ch := range changes {
		if err := w.Record(ch); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	entries, err := journal.Read(w.Path(at))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(entries) != len(changes) {
		t.Fatalf("got %d entries, want %d", len(entries), len(changes))
	}
	for i, e := range entries {
		got, err := e.Change()
		if err != nil {
			t.Fatalf("entry %d: %v", i, err)
		}
		if got != changes[i] {
			t.Fatalf("entry %d = %+v, want %+v", i, got, changes[i])
		}
		if !e.Time.Equal(at) {
			t.Fatalf("entry %d time %v", i, e.Time)
		}
	}
	if entries[2].Color != "" {
		t.Fatalf("clear entry carries a colour: %q", entries[2].Color)
	}
}

func TestAppendAcrossWriters(t *testing.T) {
	dir := t.TempDir()
	at := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 2; i++ {
		w := journal.NewWriter(dir, "edits")
		w.SetClock(func() time.Time { return at })
		if err := w.Record(voxel.Change{Op: voxel.OpPlace, Coord: voxel.Coord{X: i}, Color: voxel.DefaultColor}); err != nil {
			t.Fatalf("record: %v", err)
		}
		if err := w.Close(); err != nil {
			t.Fatalf("close: %v", err)
		}
	}
	entries, err := journal.Read(journal.NewWriter(dir, "edits").Path(at))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(entries) != 2 || entries[1].X != 1 {
		t.Fatalf("entries = %+v", entries)
	}
}

func TestRotatesByDay(t *testing.T) {
	dir := t.TempDir()
	day1 := time.Date(2026, 3, 1, 23, 59, 0, 0, time.UTC)
	day2 := day1.Add(2 * time.Minute)
	now := day1
	w := journal.NewWriter(dir, "edits")
	w.SetClock(func() time.Time { return now })

	if err := w.Record(voxel.Change{Op: voxel.OpClear}); err != nil {
		t.Fatal(err)
	}
	now = day2
	if err := w.Record(voxel.Change{Op: voxel.OpImport, Count: 3}); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if w.Path(day1) == w.Path(day2) {
		t.Fatalf("same path for both days")
	}
	for _, at := range []time.Time{day1, day2} {
		entries, err := journal.Read(w.Path(at))
		if err != nil || len(entries) != 1 {
			t.Fatalf("%s: %v %+v", w.Path(at), err, entries)
		}
	}
}

func TestControllerJournal(t *testing.T) {
	dir := t.TempDir()
	w := journal.NewWriter(dir, "edits")
	at := time.Now()
	w.SetClock(func() time.Time { return at })

	g := voxel.NewGrid(voxel.BaseColor)
	ctl := editor.New(g, nil, nopRenderer{}, editor.WithChangeSink(w))
	if _, err := ctl.ImportJSON([]byte(`[{"position":{"x":1,"y":0,"z":0},"color":"#112233"}]`)); err != nil {
		t.Fatal(err)
	}
	ctl.Clear()
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	entries, err := journal.Read(w.Path(at))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 || entries[0].Op != voxel.OpImport || entries[1].Op != voxel.OpClear || entries[1].Count != 1 {
		t.Fatalf("entries = %+v", entries)
	}
}

type nopRenderer struct{}

func (nopRenderer) AddMesh(voxel.Coord, voxel.Color)       {}
func (nopRenderer) RemoveMesh(voxel.Coord)                 {}
func (nopRenderer) AddShadowCaster(voxel.Coord)            {}
func (nopRenderer) RemoveShadowCaster(voxel.Coord)         {}
func (nopRenderer) ShowHighlight(voxel.Coord, voxel.Color) {}
func (nopRenderer) HideHighlight()                         {}
func (nopRenderer) DetachCamera()                          {}
func (nopRenderer) AttachCamera()                          {}
