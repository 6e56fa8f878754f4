// Package journal writes applied grid changes as zstd-compressed JSON lines.
package journal

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/voxelsplace/voxedit/voxel"
)

// Entry is one journal line.
type Entry struct {
	Time  time.Time `json:"time"`
	Op    voxel.Op  `json:"op"`
	X     int       `json:"x"`
	Y     int       `json:"y"`
	Z     int       `json:"z"`
	Color string    `json:"color,omitempty"`
	Count int       `json:"count,omitempty"`
}

func entryFor(at time.Time, ch voxel.Change) Entry {
	e := Entry{Time: at.UTC(), Op: ch.Op, X: ch.Coord.X, Y: ch.Coord.Y, Z: ch.Coord.Z, Count: ch.Count}
	switch ch.Op {
	case voxel.OpPlace, voxel.OpRemove, voxel.OpRecolor:
		e.Color = ch.Color.Hex()
	}
	return e
}

// Change converts the entry back into the change it records.
func (e Entry) Change() (voxel.Change, error) {
	ch := voxel.Change{Op: e.Op, Coord: voxel.Coord{X: e.X, Y: e.Y, Z: e.Z}, Count: e.Count}
	if e.Color != "" {
		col, err := voxel.ParseColor(e.Color)
		if err != nil {
			return ch, err
		}
		ch.Color = col
	}
	return ch, nil
}

// Writer appends entries to one file per UTC day under dir, named
// "<prefix>-YYYY-MM-DD.jsonl.zst".
type Writer struct {
	dir    string
	prefix string
	now    func() time.Time

	mu     sync.Mutex
	curDay string
	f      *os.File
	enc    *zstd.Encoder
	w      *bufio.Writer
}

func NewWriter(dir, prefix string) *Writer {
	return &Writer{dir: dir, prefix: prefix, now: time.Now}
}

// SetClock replaces the time source used for timestamps and rotation.
func (w *Writer) SetClock(now func() time.Time) {
	w.mu.Lock()
	w.now = now
	w.mu.Unlock()
}

// Record implements editor.ChangeSink.
func (w *Writer) Record(ch voxel.Change) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	at := w.now()
	day := at.UTC().Format("2006-01-02")
	if day != w.curDay || w.w == nil {
		if err := w.rotateLocked(day); err != nil {
			return err
		}
	}
	b, err := json.Marshal(entryFor(at, ch))
	if err != nil {
		return err
	}
	if _, err := w.w.Write(b); err != nil {
		return err
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return err
	}
	return w.w.Flush()
}

// Path returns the file entries for the given time are written to.
func (w *Writer) Path(at time.Time) string {
	return w.pathForDay(at.UTC().Format("2006-01-02"))
}

func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closeLocked()
}

func (w *Writer) rotateLocked(day string) error {
	if err := w.closeLocked(); err != nil {
		return err
	}
	p := w.pathForDay(day)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return err
	}
	w.f = f
	w.enc = enc
	w.w = bufio.NewWriterSize(enc, 64*1024)
	w.curDay = day
	return nil
}

func (w *Writer) closeLocked() error {
	var err error
	if w.w != nil {
		_ = w.w.Flush()
	}
	if w.enc != nil {
		err = w.enc.Close()
		w.enc = nil
	}
	if w.f != nil {
		_ = w.f.Close()
		w.f = nil
	}
	w.w = nil
	w.curDay = ""
	return err
}

func (w *Writer) pathForDay(day string) string {
	return filepath.Join(w.dir, fmt.Sprintf("%s-%s.jsonl.zst", w.prefix, day))
}

// Read decodes every entry of a journal file. Files appended to by several
// writers hold several zstd frames; all are read.
func Read(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads zstd-compressed JSON lines from r.
func Decode(r io.Reader) ([]Entry, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	var out []Entry
	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for line := 1; sc.Scan(); line++ {
		if len(sc.Bytes()) == 0 {
			continue
		}
		var e Entry
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			return out, fmt.Errorf("journal line %d: %w", line, err)
		}
		out = append(out, e)
	}
	return out, sc.Err()
}
