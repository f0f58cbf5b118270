package candidate

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/artem13815/jobportal/pkg/nlp"
)

// UseCase — сценарии работы с профилем соискателя.
type UseCase interface {
	Save(ctx context.Context, p Profile) (Profile, error)
	Get(ctx context.Context, ownerID uuid.UUID) (Profile, error)
	AttachResume(ctx context.Context, ownerID uuid.UUID, filename string, data []byte) (string, error)
}

type service struct {
	repo         Repository
	maxResumeLen int
}

func NewService(repo Repository) UseCase {
	return &service{repo: repo, maxResumeLen: 12_000}
}

func (s *service) Save(ctx context.Context, p Profile) (Profile, error) {
	p.FullName = strings.TrimSpace(p.FullName)
	p.Location = strings.TrimSpace(p.Location)
	p.PreferredRole = strings.TrimSpace(p.PreferredRole)
	p.ExperienceLevel = strings.TrimSpace(p.ExperienceLevel)
	var skills []string
	for _, sk := range p.Skills {
		if sk = strings.TrimSpace(sk); sk != "" {
			skills = append(skills, sk)
		}
	}
	p.Skills = skills
	if err := s.repo.Upsert(ctx, p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

func (s *service) Get(ctx context.Context, ownerID uuid.UUID) (Profile, error) {
	return s.repo.GetByOwner(ctx, ownerID)
}

// AttachResume извлекает текст из файла резюме и сохраняет его в профиле.
// Возвращает извлечённый текст (обрезанный до лимита промпта).
func (s *service) AttachResume(ctx context.Context, ownerID uuid.UUID, filename string, data []byte) (string, error) {
	text, err := ExtractResumeText(filename, data)
	if err != nil {
		return "", ErrValidation(err.Error())
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrValidation("resume contains no extractable text")
	}
	text = nlp.Truncate(text, s.maxResumeLen)
	if err := s.repo.SaveResume(ctx, ownerID, filename, text); err != nil {
		return "", err
	}
	return text, nil
}
