package engine

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// DocID is the 128-bit opaque external identifier of a document.
type DocID [16]byte

// NilDocID is the zero-value DocID, never assigned to a real document.
var NilDocID DocID

// NewDocID generates a random 128-bit DocID.
func NewDocID() DocID {
	var id DocID
	if _, err := rand.Read(id[:]); err != nil {
		// crypto/rand.Read only fails if the OS entropy source is broken;
		// there is no sane fallback inside the core.
		panic(fmt.Sprintf("annstore: failed to generate DocID: %v", err))
	}
	return id
}

// String renders the DocID as lowercase hex.
func (id DocID) String() string {
	return hex.EncodeToString(id[:])
}

// IsNil reports whether id is the zero DocID.
func (id DocID) IsNil() bool {
	return id == NilDocID
}

// ParseDocID parses a hex-encoded 128-bit DocID, as produced by String.
func ParseDocID(s string) (DocID, error) {
	var id DocID
	b, err := hex.DecodeString(s)
	if err != nil {
		return id, fmt.Errorf("annstore: invalid DocID %q: %w", s, err)
	}
	if len(b) != len(id) {
		return id, fmt.Errorf("annstore: invalid DocID %q: expected %d bytes, got %d", s, len(id), len(b))
	}
	copy(id[:], b)
	return id, nil
}
