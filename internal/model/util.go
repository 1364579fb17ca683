package model

import (
	"github.com/btcsuite/btcutil/base58"
	"github.com/google/uuid"
)

// CreateID returns a new opaque identifier: a random UUID, base58 encoded.
func CreateID() string {
	uuid, _ := uuid.NewRandom()
	return base58.Encode(uuid[:])
}

// Optional turns a possibly-empty form field into a nullable column value.
func Optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
