package voxel

import "errors"

// None of these are fatal: callers treat them as a no-op plus a diagnostic.
var (
	ErrInvalidPick     = errors.New("pick missed or hit non-grid geometry")
	ErrOccupiedCell    = errors.New("cell already occupied")
	ErrProtectedVoxel  = errors.New("base voxel is protected")
	ErrNotFound        = errors.New("no voxel at coordinate")
	ErrMalformedRecord = errors.New("malformed voxel record")
	ErrDuplicateCoord  = errors.New("duplicate coordinate")
	ErrExportFailure   = errors.New("export failed")
)
