package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/jobportal/pkg/schedule"
)

// Analysis — структурированный разбор соответствия кандидата вакансии.
type Analysis struct {
	MatchedSkills  []string `json:"matchedSkills"`
	MissingSkills  []string `json:"missingSkills"`
	Strengths      []string `json:"strengths"`
	Weaknesses     []string `json:"weaknesses"`
	Improvements   []string `json:"improvements"`
	Recommendation string   `json:"recommendation"`
	Summary        string   `json:"summary"`
}

// InterviewDetails — назначенный слот собеседования.
type InterviewDetails struct {
	Date        string `json:"date"` // YYYY-MM-DD
	Time        string `json:"time"` // HH:MM
	MeetingLink string `json:"meetingLink,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

// Application связывает кандидата и вакансию и несёт изменяемое
// состояние отклика: статус, скор и назначенное собеседование.
// Записи не удаляются — жизненный цикл завершается терминальным статусом.
type Application struct {
	ID          uuid.UUID         `json:"id"`
	JobID       uuid.UUID         `json:"jobId"`
	CandidateID uuid.UUID         `json:"candidateId"`
	Status      Status            `json:"status"`
	MatchScore  *int              `json:"matchScore"` // nil — скан ещё не выполнялся
	Analysis    *Analysis         `json:"analysis,omitempty"`
	Interview   *InterviewDetails `json:"interview,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// Scored сообщает, выполнялся ли для отклика скан.
func (a Application) Scored() bool { return a.MatchScore != nil }

var (
	ErrNotFound = errors.New("application not found")
	// ErrDuplicate: на пару (вакансия, кандидат) допускается один отклик.
	ErrDuplicate = errors.New("application already exists for this job")
)

// ErrValidation простая ошибка валидации.
type ErrValidation string

func (e ErrValidation) Error() string { return string(e) }

// Repository — порт хранения откликов.
type Repository interface {
	Create(ctx context.Context, a Application) error
	GetByID(ctx context.Context, id uuid.UUID) (Application, error)
	ListByJob(ctx context.Context, jobID uuid.UUID, limit, offset int) ([]Application, error)
	ListByCandidate(ctx context.Context, candidateID uuid.UUID, limit, offset int) ([]Application, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, st Status) error
	SetInterview(ctx context.Context, id uuid.UUID, st Status, iv InterviewDetails) error
	SaveScan(ctx context.Context, id uuid.UUID, score int, an Analysis) error
	// UpdateStatusIf переводит отклик в статус to, только если текущий
	// статус входит в from; возвращает true при фактическом переходе.
	UpdateStatusIf(ctx context.Context, id uuid.UUID, to Status, from []Status) (bool, error)
	// MarkViewed переводит все отклики вакансии applied → viewed.
	MarkViewed(ctx context.Context, jobID uuid.UUID) error
	// ListUnscoredByEmployer возвращает нескориванные отклики на вакансии работодателя.
	ListUnscoredByEmployer(ctx context.Context, employerID uuid.UUID, limit int) ([]Application, error)
	// ScheduledIntervals отдаёт занятые интервалы собеседований работодателя.
	ScheduledIntervals(ctx context.Context, employerID uuid.UUID) ([]schedule.Interval, error)
}
