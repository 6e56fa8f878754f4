package voxel

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Record is the clipboard form of a voxel.
type Record struct {
	Position Position `json:"position"`
	Color    string   `json:"color"`
}

type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

const recordSchemaURL = "voxedit://record.schema.json"

const recordSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["position", "color"],
  "properties": {
    "position": {
      "type": "object",
      "required": ["x", "y", "z"],
      "properties": {
        "x": {"type": "number"},
        "y": {"type": "number"},
        "z": {"type": "number"}
      }
    },
    "color": {"type": "string", "pattern": "^#[0-9A-Fa-f]{6}$"}
  }
}`

var recordValidator = jsonschema.MustCompileString(recordSchemaURL, recordSchema)

// ToRecords converts the grid to clipboard records in Export order.
func ToRecords(g *Grid) []Record {
	vs := g.Export()
	out := make([]Record, len(vs))
	for i, v := range vs {
		out[i] = Record{
			Position: Position{X: float64(v.Coord.X), Y: float64(v.Coord.Y), Z: float64(v.Coord.Z)},
			Color:    v.Color.Hex(),
		}
	}
	return out
}

// MarshalRecords is the clipboard export.
func MarshalRecords(g *Grid) ([]byte, error) {
	return json.Marshal(ToRecords(g))
}

// Voxel validates r and snaps its position to the grid.
func (r Record) Voxel() (Voxel, error) {
	for _, f := range []float64{r.Position.X, r.Position.Y, r.Position.Z} {
		if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > math.MaxInt32 {
			return Voxel{}, fmt.Errorf("position %v out of range", r.Position)
		}
	}
	col, err := ParseColor(r.Color)
	if err != nil {
		return Voxel{}, err
	}
	c := Coord{
		X: int(math.Round(r.Position.X)),
		Y: int(math.Round(r.Position.Y)),
		Z: int(math.Round(r.Position.Z)),
	}
	return Voxel{Coord: c, Color: col}, nil
}

// ImportRecords replaces the grid's non-base voxels with recs. Each record
// is checked on its own; bad ones are counted and skipped.
func ImportRecords(g *Grid, recs []Record) ImportReport {
	var rep ImportReport
	entries := make([]Voxel, 0, len(recs))
	for i, r := range recs {
		v, err := r.Voxel()
		if err != nil {
			rep.reject(fmt.Errorf("record %d: %w: %w", i, ErrMalformedRecord, err))
			continue
		}
		entries = append(entries, v)
	}
	rep.Merge(g.Import(entries))
	return rep
}

// ImportJSON is the clipboard import. It fails without touching the grid only
// when data is not a JSON array; individual records fail independently.
func ImportJSON(g *Grid, data []byte) (ImportReport, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return ImportReport{}, fmt.Errorf("%w: expected a JSON array: %w", ErrMalformedRecord, err)
	}
	var rep ImportReport
	recs := make([]Record, 0, len(raws))
	for i, raw := range raws {
		r, err := decodeRecord(raw)
		if err != nil {
			rep.reject(fmt.Errorf("record %d: %w: %w", i, ErrMalformedRecord, err))
			continue
		}
		recs = append(recs, r)
	}
	rep.Merge(ImportRecords(g, recs))
	return rep, nil
}

func decodeRecord(raw json.RawMessage) (Record, error) {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Record{}, err
	}
	if err := recordValidator.Validate(doc); err != nil {
		return Record{}, schemaError(err)
	}
	var r Record
	if err := json.Unmarshal(raw, &r); err != nil {
		return Record{}, err
	}
	return r, nil
}

// schemaError flattens the validator's multi-line report into one line.
func schemaError(err error) error {
	return fmt.Errorf("%s", strings.Join(strings.Fields(err.Error()), " "))
}
