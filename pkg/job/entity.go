package job

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Status — жизненный цикл вакансии.
type Status string

const (
	StatusActive Status = "active"
	StatusClosed Status = "closed"
)

// Job описывает вакансию работодателя и требования к кандидату.
type Job struct {
	ID              uuid.UUID `json:"id"`
	OwnerID         uuid.UUID `json:"ownerId"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	RequiredSkills  []string  `json:"requiredSkills"`
	ExperienceLevel string    `json:"experienceLevel"`
	Location        string    `json:"location"`
	Status          Status    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
}

var (
	ErrNotFound = errors.New("job not found")
	// ErrReferenced: вакансию с откликами нельзя удалить, только закрыть.
	ErrReferenced = errors.New("job has applications and cannot be deleted")
)

// ErrValidation простая ошибка валидации.
type ErrValidation string

func (e ErrValidation) Error() string { return string(e) }

// Repository — порт для работы с вакансиями.
type Repository interface {
	Create(ctx context.Context, j Job) error
	GetByID(ctx context.Context, id uuid.UUID) (Job, error)
	GetByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (Job, error)
	ListActive(ctx context.Context, limit, offset int) ([]Job, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Job, error)
	UpdateForOwner(ctx context.Context, ownerID uuid.UUID, j Job) error
	SetStatusForOwner(ctx context.Context, ownerID, id uuid.UUID, st Status) error
	// DeleteForOwner удаляет вакансию, только если на неё нет откликов;
	// иначе возвращает ErrReferenced.
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error
}
