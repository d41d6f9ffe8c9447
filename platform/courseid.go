package platform

import (
	"encoding/binary"
	"strconv"

	"github.com/google/uuid"
)

// ChainIDFromUUID derives the on-chain course id from a course UUID: the first 16 hex digits
// (the first 8 bytes) read as a big-endian uint64, rendered in base 10.
func ChainIDFromUUID(id uuid.UUID) string {
	return strconv.FormatUint(binary.BigEndian.Uint64(id[:8]), 10)
}

// NewCourseIdentifiers returns a fresh v4 UUID and the chain id derived from it.
func NewCourseIdentifiers() (string, string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", "", err
	}
	return id.String(), ChainIDFromUUID(id), nil
}
