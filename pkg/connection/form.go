package connection

import (
	"errors"

	"github.com/dimitrije/flowdesk-api/pkg/dto"
	"github.com/google/uuid"
)

var (
	ErrSecretRequired = errors.New("secret value is required")
	ErrNameLocked     = errors.New("name cannot be changed on an existing connection")
)

// SecretTextForm is the state of the secret-text connection dialog.
type SecretTextForm struct {
	AppName string
	Name    string
	Secret  string
	editing bool
}

// NewSecretTextForm opens a form for a new connection. The name defaults to
// the normalized piece name and is computed once, here.
func NewSecretTextForm(pieceName string) *SecretTextForm {
	return &SecretTextForm{
		AppName: pieceName,
		Name:    NormalizeName(pieceName),
	}
}

// EditSecretTextForm opens a form for an existing connection. Its name is locked.
func EditSecretTextForm(conn dto.AppConnectionResponse) *SecretTextForm {
	return &SecretTextForm{
		AppName: conn.AppName,
		Name:    conn.Name,
		editing: true,
	}
}

func (f *SecretTextForm) NameEditable() bool {
	return !f.editing
}

func (f *SecretTextForm) SetName(name string) error {
	if f.editing {
		return ErrNameLocked
	}
	f.Name = name
	return nil
}

// Validate checks the form against a snapshot of existing names. A locked name
// is not re-validated.
func (f *SecretTextForm) Validate(snapshot *NameSnapshot) error {
	if !f.editing {
		if err := snapshot.Validate(f.Name); err != nil {
			return err
		}
	}
	if f.Secret == "" {
		return ErrSecretRequired
	}
	return nil
}

func (f *SecretTextForm) Request(projectID uuid.UUID) dto.UpsertAppConnectionRequest {
	return dto.UpsertAppConnectionRequest{
		ProjectID: &projectID,
		AppName:   f.AppName,
		Name:      f.Name,
		Value: dto.AppConnectionValue{
			Type:       dto.AppConnectionTypeSecretText,
			SecretText: f.Secret,
		},
	}
}
