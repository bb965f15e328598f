package utils

import "github.com/google/uuid"

// IDGenerator hands out local record identities.
type IDGenerator interface {
	Generate() string
}

// UUIDGenerator generates time-ordered UUIDv7 strings, falling back to a
// random v4 if the v7 source fails.
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
