package service

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"
)

// StoredFile describes a payload already written by the storage provider.
type StoredFile struct {
	Key          string
	OriginalName string
	MimeType     string
	Size         int64
}

func parseID(s string) *uint {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return nil
	}
	id := uint(v)
	return &id
}

// shareToken returns 128 bits of hex encoded randomness. Tokens are
// unguessable by construction; collisions are not handled.
func shareToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
