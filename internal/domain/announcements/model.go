package announcements

import (
	"encoding/base64"
	"strings"
	"time"

	"pet-lost-found/internal/platform/apperr"
)

// Status es el ciclo de vida del anuncio. Se guarda siempre en minúsculas.
// @Enum active, found, inactive
type Status string

const (
	StatusActive   Status = "active"
	StatusFound    Status = "found"
	StatusInactive Status = "inactive"
)

// Type no cambia después de creado el anuncio.
// @Enum lost, found
type Type string

const (
	TypeLost  Type = "lost"
	TypeFound Type = "found"
)

func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusActive, StatusFound, StatusInactive:
		return st, nil
	default:
		return "", apperr.Validation("invalid status: must be one of active, found, inactive")
	}
}

func ParseType(s string) (Type, error) {
	switch t := Type(strings.ToLower(strings.TrimSpace(s))); t {
	case TypeLost, TypeFound:
		return t, nil
	default:
		return "", apperr.Validation("invalid type: must be lost or found")
	}
}

// Image se guarda como bytes + mime; en lectura se expone como data URI.
type Image struct {
	Data     []byte
	MimeType string
}

func (i *Image) DataURI() string {
	return "data:" + i.MimeType + ";base64," + base64.StdEncoding.EncodeToString(i.Data)
}

// Owner es la proyección del dueño que acompaña cada anuncio en lectura.
type Owner struct {
	Name  string
	Phone string
	Email string
}

type Announcement struct {
	ID          string
	OwnerUserID string

	PetName      string
	Description  string
	Type         Type
	Image        *Image
	Neighborhood string

	// Ambas nil o ambas seteadas.
	Latitude  *float64
	Longitude *float64

	Status    Status
	FoundDate *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// Solo lectura (join con users); nil si el dueño no existe.
	Owner *Owner
}
