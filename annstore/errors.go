package annstore

import "github.com/xDarkicex/annstore/internal/engine"

// Sentinel errors surfaced by the store. Kept as a flat var block
// rather than the teacher's VectorDBError/ErrorRecoveryManager
// machinery in libravdb/errors.go: this store's error taxonomy is the
// simple four-kind shape of spec.md §7, with no automatic recovery
// orchestration to drive.
var (
	ErrDBFull           = engine.ErrDBFull
	ErrFormatMismatch   = engine.ErrFormatMismatch
	ErrCorruptIndex     = engine.ErrCorruptIndex
	ErrDimMismatch      = engine.ErrDimMismatch
	ErrClosed           = engine.ErrClosed
	ErrInvalidConfig    = engine.ErrInvalidConfig
	ErrMetadataTooLarge = engine.ErrMetadataTooLarge
)
