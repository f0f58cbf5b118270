package candidate

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Profile — анкета соискателя. У аккаунта ровно один профиль;
// менять его может только владелец.
type Profile struct {
	OwnerID         uuid.UUID `json:"ownerId"`
	FullName        string    `json:"fullName"`
	Skills          []string  `json:"skills"`
	ExperienceLevel string    `json:"experienceLevel"`
	Location        string    `json:"location"`
	PreferredRole   string    `json:"preferredRole"`
	ResumeFilename  string    `json:"resumeFilename,omitempty"`
	ResumeText      string    `json:"-"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

var ErrNotFound = errors.New("candidate profile not found")

// ErrValidation простая ошибка валидации.
type ErrValidation string

func (e ErrValidation) Error() string { return string(e) }

// Repository — порт доступа к профилям соискателей.
type Repository interface {
	Upsert(ctx context.Context, p Profile) error
	GetByOwner(ctx context.Context, ownerID uuid.UUID) (Profile, error)
	SaveResume(ctx context.Context, ownerID uuid.UUID, filename, text string) error
}
