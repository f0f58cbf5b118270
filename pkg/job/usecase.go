package job

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// UseCase инкапсулирует сценарии работы с вакансиями.
type UseCase interface {
	Create(ctx context.Context, j Job) (Job, error)
	Get(ctx context.Context, id uuid.UUID) (Job, error)
	ListActive(ctx context.Context, limit, offset int) ([]Job, error)
	ListOwn(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Job, error)
	Update(ctx context.Context, ownerID uuid.UUID, j Job) error
	SetStatus(ctx context.Context, ownerID, id uuid.UUID, st Status) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) UseCase { return &service{repo: repo} }

func normalize(j Job) (Job, error) {
	j.Title = strings.TrimSpace(j.Title)
	j.Location = strings.TrimSpace(j.Location)
	j.ExperienceLevel = strings.TrimSpace(j.ExperienceLevel)
	if j.Title == "" {
		return Job{}, ErrValidation("title is required")
	}
	var skills []string
	for _, s := range j.RequiredSkills {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}
	j.RequiredSkills = skills
	return j, nil
}

func (s *service) Create(ctx context.Context, j Job) (Job, error) {
	j, err := normalize(j)
	if err != nil {
		return Job{}, err
	}
	if j.Status == "" {
		j.Status = StatusActive
	}
	if j.Status != StatusActive && j.Status != StatusClosed {
		return Job{}, ErrValidation("unknown status")
	}
	if err := s.repo.Create(ctx, j); err != nil {
		return Job{}, err
	}
	return j, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (Job, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListActive(ctx context.Context, limit, offset int) ([]Job, error) {
	return s.repo.ListActive(ctx, limit, offset)
}

func (s *service) ListOwn(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Job, error) {
	return s.repo.ListByOwner(ctx, ownerID, limit, offset)
}

func (s *service) Update(ctx context.Context, ownerID uuid.UUID, j Job) error {
	j, err := normalize(j)
	if err != nil {
		return err
	}
	return s.repo.UpdateForOwner(ctx, ownerID, j)
}

func (s *service) SetStatus(ctx context.Context, ownerID, id uuid.UUID, st Status) error {
	if st != StatusActive && st != StatusClosed {
		return ErrValidation("unknown status")
	}
	return s.repo.SetStatusForOwner(ctx, ownerID, id, st)
}

func (s *service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.repo.DeleteForOwner(ctx, ownerID, id)
}
