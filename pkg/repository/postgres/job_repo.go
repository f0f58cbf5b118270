package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/jobportal/pkg/job"
)

// JobRepository хранит вакансии и их требования.
type JobRepository struct {
	pool *pgxpool.Pool
}

func NewJobRepository(pool *pgxpool.Pool) (*JobRepository, error) {
	r := &JobRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *JobRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS jobs (
	id UUID PRIMARY KEY,
	owner_id UUID NOT NULL,
	title TEXT NOT NULL,
	description TEXT NOT NULL,
	required_skills TEXT[] NOT NULL DEFAULT '{}',
	experience_level TEXT NOT NULL DEFAULT '',
	location TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'active',
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_jobs_owner ON jobs(owner_id);
CREATE INDEX IF NOT EXISTS idx_jobs_status ON jobs(status);
`)
	return err
}

func (r *JobRepository) Create(ctx context.Context, j job.Job) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	if j.CreatedAt.IsZero() {
		j.CreatedAt = time.Now().UTC()
	}
	_, err := r.pool.Exec(ctx, `
INSERT INTO jobs (id, owner_id, title, description, required_skills, experience_level, location, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`, j.ID, j.OwnerID, strings.TrimSpace(j.Title), j.Description, j.RequiredSkills, j.ExperienceLevel, j.Location, string(j.Status), j.CreatedAt)
	return err
}

const jobColumns = `id, owner_id, title, description, required_skills, experience_level, location, status, created_at`

func scanJob(row pgx.Row) (job.Job, error) {
	var j job.Job
	var status string
	var created time.Time
	if err := row.Scan(&j.ID, &j.OwnerID, &j.Title, &j.Description, &j.RequiredSkills, &j.ExperienceLevel, &j.Location, &status, &created); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return job.Job{}, job.ErrNotFound
		}
		return job.Job{}, err
	}
	j.Status = job.Status(status)
	j.CreatedAt = created.UTC()
	return j, nil
}

func (r *JobRepository) GetByID(ctx context.Context, id uuid.UUID) (job.Job, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	return scanJob(row)
}

func (r *JobRepository) GetByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (job.Job, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1 AND owner_id = $2`, id, ownerID)
	return scanJob(row)
}

func (r *JobRepository) list(ctx context.Context, query string, args ...any) ([]job.Job, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []job.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, j)
	}
	return res, rows.Err()
}

func (r *JobRepository) ListActive(ctx context.Context, limit, offset int) ([]job.Job, error) {
	if limit <= 0 {
		limit = 50
	}
	return r.list(ctx, `
SELECT `+jobColumns+` FROM jobs WHERE status = 'active'
ORDER BY created_at DESC LIMIT $1 OFFSET $2
`, limit, offset)
}

func (r *JobRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]job.Job, error) {
	if limit <= 0 {
		limit = 50
	}
	return r.list(ctx, `
SELECT `+jobColumns+` FROM jobs WHERE owner_id = $3
ORDER BY created_at DESC LIMIT $1 OFFSET $2
`, limit, offset, ownerID)
}

func (r *JobRepository) UpdateForOwner(ctx context.Context, ownerID uuid.UUID, j job.Job) error {
	cmd, err := r.pool.Exec(ctx, `
UPDATE jobs SET title = $3, description = $4, required_skills = $5, experience_level = $6, location = $7
WHERE id = $1 AND owner_id = $2
`, j.ID, ownerID, j.Title, j.Description, j.RequiredSkills, j.ExperienceLevel, j.Location)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return job.ErrNotFound
	}
	return nil
}

func (r *JobRepository) SetStatusForOwner(ctx context.Context, ownerID, id uuid.UUID, st job.Status) error {
	cmd, err := r.pool.Exec(ctx, `
UPDATE jobs SET status = $3 WHERE id = $1 AND owner_id = $2
`, id, ownerID, string(st))
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return job.ErrNotFound
	}
	return nil
}

// DeleteForOwner удаляет вакансию, только пока на неё нет откликов;
// вакансия с историей откликов закрывается, а не удаляется.
func (r *JobRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	var refs int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(1) FROM applications WHERE job_id = $1`, id).Scan(&refs); err != nil {
		return err
	}
	if refs > 0 {
		return job.ErrReferenced
	}
	cmd, err := r.pool.Exec(ctx, `DELETE FROM jobs WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return job.ErrNotFound
	}
	return nil
}
