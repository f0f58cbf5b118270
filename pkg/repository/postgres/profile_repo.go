package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/jobportal/pkg/candidate"
)

// ProfileRepository хранит профили соискателей и извлечённые тексты резюме.
type ProfileRepository struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(pool *pgxpool.Pool) (*ProfileRepository, error) {
	r := &ProfileRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *ProfileRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS candidate_profiles (
	owner_id UUID PRIMARY KEY,
	full_name TEXT NOT NULL DEFAULT '',
	skills TEXT[] NOT NULL DEFAULT '{}',
	experience_level TEXT NOT NULL DEFAULT '',
	location TEXT NOT NULL DEFAULT '',
	preferred_role TEXT NOT NULL DEFAULT '',
	resume_filename TEXT NOT NULL DEFAULT '',
	resume_text TEXT NOT NULL DEFAULT '',
	updated_at TIMESTAMPTZ NOT NULL
);
`)
	return err
}

func (r *ProfileRepository) Upsert(ctx context.Context, p candidate.Profile) error {
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = time.Now().UTC()
	}
	_, err := r.pool.Exec(ctx, `
INSERT INTO candidate_profiles (owner_id, full_name, skills, experience_level, location, preferred_role, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (owner_id) DO UPDATE SET
	full_name = EXCLUDED.full_name,
	skills = EXCLUDED.skills,
	experience_level = EXCLUDED.experience_level,
	location = EXCLUDED.location,
	preferred_role = EXCLUDED.preferred_role,
	updated_at = EXCLUDED.updated_at
`, p.OwnerID, p.FullName, p.Skills, p.ExperienceLevel, p.Location, p.PreferredRole, p.UpdatedAt)
	return err
}

func (r *ProfileRepository) GetByOwner(ctx context.Context, ownerID uuid.UUID) (candidate.Profile, error) {
	row := r.pool.QueryRow(ctx, `
SELECT owner_id, full_name, skills, experience_level, location, preferred_role, resume_filename, resume_text, updated_at
FROM candidate_profiles WHERE owner_id = $1
`, ownerID)
	var p candidate.Profile
	var updated time.Time
	if err := row.Scan(&p.OwnerID, &p.FullName, &p.Skills, &p.ExperienceLevel, &p.Location, &p.PreferredRole, &p.ResumeFilename, &p.ResumeText, &updated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return candidate.Profile{}, candidate.ErrNotFound
		}
		return candidate.Profile{}, err
	}
	p.UpdatedAt = updated.UTC()
	return p, nil
}

// SaveResume сохраняет извлечённый текст резюме; профиль создаётся,
// если загрузка случилась раньше заполнения анкеты.
func (r *ProfileRepository) SaveResume(ctx context.Context, ownerID uuid.UUID, filename, text string) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO candidate_profiles (owner_id, resume_filename, resume_text, updated_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (owner_id) DO UPDATE SET
	resume_filename = EXCLUDED.resume_filename,
	resume_text = EXCLUDED.resume_text,
	updated_at = EXCLUDED.updated_at
`, ownerID, filename, text, time.Now().UTC())
	return err
}
