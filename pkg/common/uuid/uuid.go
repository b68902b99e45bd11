package uuid

import (
	"github.com/gofrs/uuid/v5"
)

// UUID is the id type used across models and API payloads.
type UUID = uuid.UUID

var Nil = uuid.Nil

func New() UUID {
	return uuid.Must(uuid.NewV4())
}

func FromString(s string) (UUID, error) {
	return uuid.FromString(s)
}
