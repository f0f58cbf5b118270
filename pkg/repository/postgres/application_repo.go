package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/jobportal/pkg/application"
	"github.com/artem13815/jobportal/pkg/schedule"
)

// ApplicationRepository хранит отклики; уникальность пары
// (вакансия, кандидат) обеспечивается ограничением БД.
type ApplicationRepository struct {
	pool *pgxpool.Pool
}

func NewApplicationRepository(pool *pgxpool.Pool) (*ApplicationRepository, error) {
	r := &ApplicationRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *ApplicationRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS applications (
	id UUID PRIMARY KEY,
	job_id UUID NOT NULL REFERENCES jobs(id),
	candidate_id UUID NOT NULL,
	status TEXT NOT NULL DEFAULT 'applied',
	match_score INT CHECK (match_score >= 0 AND match_score <= 100),
	analysis JSONB,
	interview_date TEXT,
	interview_time TEXT,
	meeting_link TEXT NOT NULL DEFAULT '',
	interview_notes TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL,
	UNIQUE (job_id, candidate_id)
);
CREATE INDEX IF NOT EXISTS idx_applications_job ON applications(job_id);
CREATE INDEX IF NOT EXISTS idx_applications_candidate ON applications(candidate_id);
`)
	return err
}

func (r *ApplicationRepository) Create(ctx context.Context, a application.Application) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO applications (id, job_id, candidate_id, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
`, a.ID, a.JobID, a.CandidateID, string(a.Status), a.CreatedAt, a.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return application.ErrDuplicate
		}
		return err
	}
	return nil
}

const appColumns = `id, job_id, candidate_id, status, match_score, analysis,
	interview_date, interview_time, meeting_link, interview_notes, created_at, updated_at`

func scanApplication(row pgx.Row) (application.Application, error) {
	var a application.Application
	var status string
	var analysisJSON []byte
	var ivDate, ivTime *string
	var meetingLink, notes string
	var created, updated time.Time
	err := row.Scan(&a.ID, &a.JobID, &a.CandidateID, &status, &a.MatchScore, &analysisJSON,
		&ivDate, &ivTime, &meetingLink, &notes, &created, &updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return application.Application{}, application.ErrNotFound
		}
		return application.Application{}, err
	}
	a.Status = application.Status(status)
	if len(analysisJSON) > 0 {
		var an application.Analysis
		if json.Unmarshal(analysisJSON, &an) == nil {
			a.Analysis = &an
		}
	}
	if ivDate != nil && ivTime != nil {
		a.Interview = &application.InterviewDetails{
			Date:        *ivDate,
			Time:        *ivTime,
			MeetingLink: meetingLink,
			Notes:       notes,
		}
	}
	a.CreatedAt = created.UTC()
	a.UpdatedAt = updated.UTC()
	return a, nil
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (application.Application, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+appColumns+` FROM applications WHERE id = $1`, id)
	return scanApplication(row)
}

func (r *ApplicationRepository) list(ctx context.Context, query string, args ...any) ([]application.Application, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []application.Application
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, a)
	}
	return res, rows.Err()
}

func (r *ApplicationRepository) ListByJob(ctx context.Context, jobID uuid.UUID, limit, offset int) ([]application.Application, error) {
	if limit <= 0 {
		limit = 50
	}
	return r.list(ctx, `
SELECT `+appColumns+` FROM applications WHERE job_id = $3
ORDER BY created_at DESC LIMIT $1 OFFSET $2
`, limit, offset, jobID)
}

func (r *ApplicationRepository) ListByCandidate(ctx context.Context, candidateID uuid.UUID, limit, offset int) ([]application.Application, error) {
	if limit <= 0 {
		limit = 50
	}
	return r.list(ctx, `
SELECT `+appColumns+` FROM applications WHERE candidate_id = $3
ORDER BY created_at DESC LIMIT $1 OFFSET $2
`, limit, offset, candidateID)
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, st application.Status) error {
	cmd, err := r.pool.Exec(ctx, `
UPDATE applications SET status = $2, updated_at = $3 WHERE id = $1
`, id, string(st), time.Now().UTC())
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return application.ErrNotFound
	}
	return nil
}

// UpdateStatusIf — условный переход: выполняется, только если текущий
// статус входит в from. Возвращает false, если условие не сработало.
func (r *ApplicationRepository) UpdateStatusIf(ctx context.Context, id uuid.UUID, to application.Status, from []application.Status) (bool, error) {
	states := make([]string, len(from))
	for i, s := range from {
		states[i] = string(s)
	}
	cmd, err := r.pool.Exec(ctx, `
UPDATE applications SET status = $2, updated_at = $3
WHERE id = $1 AND status = ANY($4)
`, id, string(to), time.Now().UTC(), states)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *ApplicationRepository) SetInterview(ctx context.Context, id uuid.UUID, st application.Status, iv application.InterviewDetails) error {
	cmd, err := r.pool.Exec(ctx, `
UPDATE applications
SET status = $2, interview_date = $3, interview_time = $4, meeting_link = $5, interview_notes = $6, updated_at = $7
WHERE id = $1
`, id, string(st), iv.Date, iv.Time, iv.MeetingLink, iv.Notes, time.Now().UTC())
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return application.ErrNotFound
	}
	return nil
}

// SaveScan перезаписывает скор и отчёт (last-write-wins).
func (r *ApplicationRepository) SaveScan(ctx context.Context, id uuid.UUID, score int, an application.Analysis) error {
	analysisJSON, err := json.Marshal(an)
	if err != nil {
		return err
	}
	cmd, err := r.pool.Exec(ctx, `
UPDATE applications SET match_score = $2, analysis = $3, updated_at = $4 WHERE id = $1
`, id, score, analysisJSON, time.Now().UTC())
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return application.ErrNotFound
	}
	return nil
}

func (r *ApplicationRepository) MarkViewed(ctx context.Context, jobID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `
UPDATE applications SET status = 'viewed', updated_at = $2
WHERE job_id = $1 AND status = 'applied'
`, jobID, time.Now().UTC())
	return err
}

func (r *ApplicationRepository) ListUnscoredByEmployer(ctx context.Context, employerID uuid.UUID, limit int) ([]application.Application, error) {
	if limit <= 0 {
		limit = 100
	}
	return r.list(ctx, `
SELECT a.id, a.job_id, a.candidate_id, a.status, a.match_score, a.analysis,
	a.interview_date, a.interview_time, a.meeting_link, a.interview_notes, a.created_at, a.updated_at
FROM applications a
JOIN jobs j ON j.id = a.job_id
WHERE j.owner_id = $2 AND a.match_score IS NULL
ORDER BY a.created_at
LIMIT $1
`, limit, employerID)
}

// ScheduledIntervals отдаёт занятые интервалы собеседований по всем
// вакансиям работодателя; длительность слота фиксированная.
func (r *ApplicationRepository) ScheduledIntervals(ctx context.Context, employerID uuid.UUID) ([]schedule.Interval, error) {
	rows, err := r.pool.Query(ctx, `
SELECT a.interview_date, a.interview_time
FROM applications a
JOIN jobs j ON j.id = a.job_id
WHERE j.owner_id = $1 AND a.interview_date IS NOT NULL AND a.interview_time IS NOT NULL
`, employerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	d := schedule.DefaultOptions().SlotDuration
	var res []schedule.Interval
	for rows.Next() {
		var date, tm string
		if err := rows.Scan(&date, &tm); err != nil {
			return nil, err
		}
		// Зона должна совпадать с зоной поиска слотов (time.Now у аллокатора),
		// иначе занятое настенное время не перекроет кандидата.
		iv, err := schedule.IntervalFor(date, tm, d, time.Local)
		if err != nil {
			continue // повреждённые записи пропускаем
		}
		res = append(res, iv)
	}
	return res, rows.Err()
}
