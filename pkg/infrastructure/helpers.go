package infrastructure

import (
	"github.com/google/uuid"

	"github.com/mateusmacedo/go-busstation/pkg/domain"
)

func GenerateUUID() string {
	return uuid.New().String()
}

// UUIDGenerator adapta GenerateUUID ao contrato de IDGenerator.
func UUIDGenerator() domain.IDGenerator[string] {
	return GenerateUUID
}
