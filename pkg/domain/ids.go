package domain

import (
	"github.com/google/uuid"

	dErrors "homevest/pkg/domain-errors"
)

// RegistryID is the locally synthesized, stable identifier of a registry
// entry. It is distinct from the server-assigned property id, which originates
// exclusively from the remote create call and lives on the draft.
type RegistryID uuid.UUID

// NewRegistryID synthesizes a fresh registry id.
func NewRegistryID() RegistryID {
	return RegistryID(uuid.New())
}

// ParseRegistryID constructs a RegistryID from external input.
func ParseRegistryID(raw string) (RegistryID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return RegistryID{}, dErrors.New(dErrors.CodeBadRequest, "invalid registry id")
	}
	return RegistryID(id), nil
}

func (id RegistryID) String() string { return uuid.UUID(id).String() }

// MarshalText renders the id in its canonical string form for JSON payloads.
func (id RegistryID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *RegistryID) UnmarshalText(text []byte) error {
	parsed, err := ParseRegistryID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// IsNil reports whether the id is the zero value.
func (id RegistryID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
