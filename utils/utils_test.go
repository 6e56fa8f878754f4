package utils

import (
	"bytes"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/voxelsplace/voxedit/voxel"
)

// Default camera looks at (0, 1, 0) from (-10, 4, 0); the base voxel's
// -X face sits a little below the centre of the 1200x900 viewport.
const sessionScript = `
steps:
  - mode: place
  - color: "#FF0000"
  - move: [600, 567]
  - click: [600, 567]
  - mode: select
  - click: [5, 5]
`

func writeTemp(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestRunSession(t *testing.T) {
	script := writeTemp(t, "script.yaml", sessionScript)
	jdir := t.TempDir()
	cfg := writeTemp(t, "cfg.yaml", "journal_dir: "+jdir+"\n")
	out := filepath.Join(t.TempDir(), "out.json")

	if err := RunSession(script, out, cfg, nil); err != nil {
		t.Fatalf("RunSession failed: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	g := voxel.NewGrid(voxel.BaseColor)
	rep, err := voxel.ImportJSON(g, data)
	if err != nil || rep.Rejected != 0 {
		t.Fatalf("import: %v %s", err, rep)
	}
	if g.Len() != 2 {
		t.Fatalf("got %d voxels: %v", g.Len(), g.Export())
	}
	if col, ok := g.Get(voxel.Coord{X: -1}); !ok || col != voxel.MustParseColor("#FF0000") {
		t.Fatalf("placed voxel missing: %v", g.Export())
	}

	logs, _ := filepath.Glob(filepath.Join(jdir, "edits-*.jsonl.zst"))
	if len(logs) != 1 {
		t.Fatalf("journal files: %v", logs)
	}
	var buf bytes.Buffer
	if err := RunJournalDump(logs[0], &buf); err != nil {
		t.Fatalf("dump: %v", err)
	}
	if !strings.Contains(buf.String(), "place") || !strings.Contains(buf.String(), "(-1,0,0)") {
		t.Fatalf("dump = %q", buf.String())
	}
}

func TestRunSessionBadStep(t *testing.T) {
	script := writeTemp(t, "script.yaml", "steps:\n  - mode: paint\n")
	if err := RunSession(script, filepath.Join(t.TempDir(), "out.json"), "", nil); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
	script = writeTemp(t, "empty.yaml", "steps:\n  - {}\n")
	if err := RunSession(script, filepath.Join(t.TempDir(), "out.json"), "", nil); err == nil {
		t.Fatalf("expected error for empty step")
	}
}

func TestGenerateScene(t *testing.T) {
	a := GenerateScene(50, rand.New(rand.NewSource(7)))
	b := GenerateScene(50, rand.New(rand.NewSource(7)))
	if a.Len() != 50 {
		t.Fatalf("len = %d", a.Len())
	}
	if a.Digest() != b.Digest() {
		t.Fatalf("same seed, different scenes")
	}
	// every voxel touches another one
	a.Each(func(v voxel.Voxel) bool {
		if v.Coord == voxel.Origin {
			return true
		}
		for _, n := range faces {
			if a.Has(v.Coord.Add(voxel.Quantize(n))) {
				return true
			}
		}
		t.Fatalf("%s is disconnected", v.Coord)
		return false
	})
}

func TestRecords2GLBAndDigest(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "scene.json")
	if err := RunGenerateScene(20, 3, in); err != nil {
		t.Fatalf("genscene: %v", err)
	}
	out := filepath.Join(dir, "scene.glb")
	if err := RunRecords2GLB(in, out); err != nil {
		t.Fatalf("records2glb: %v", err)
	}
	glb, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(glb, []byte("glTF")) {
		t.Fatalf("not a GLB file")
	}

	var buf bytes.Buffer
	sum, err := RunDigest(in, &buf)
	if err != nil {
		t.Fatalf("digest: %v", err)
	}
	want := GenerateScene(20, rand.New(rand.NewSource(3))).Digest()
	if sum != want {
		t.Fatalf("digest %x, want %x", sum, want)
	}
}

func TestRecords2GLBInvalid(t *testing.T) {
	in := writeTemp(t, "bad.json", `{"not":"an array"}`)
	if err := RunRecords2GLB(in, filepath.Join(t.TempDir(), "x.glb")); err == nil {
		t.Fatalf("expected error for non-array input")
	}
}
