package application

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/jobportal/pkg/auth"
	"github.com/artem13815/jobportal/pkg/candidate"
	"github.com/artem13815/jobportal/pkg/chat"
	"github.com/artem13815/jobportal/pkg/job"
	"github.com/artem13815/jobportal/pkg/notify"
	"github.com/artem13815/jobportal/pkg/schedule"
)

// Outcome — результат действия рекрутёра; для message несёт id комнаты чата.
type Outcome struct {
	Application Application `json:"application"`
	ChatRoomID  string      `json:"chatRoomId,omitempty"`
}

// UseCase — сценарии жизненного цикла отклика: подача, просмотр
// рекрутёром и диспетчеризация действий по таблице переходов.
type UseCase interface {
	Apply(ctx context.Context, candidateID, jobID uuid.UUID) (Application, error)
	ListForJob(ctx context.Context, recruiterID, jobID uuid.UUID, limit, offset int) ([]Application, error)
	ListOwn(ctx context.Context, candidateID uuid.UUID, limit, offset int) ([]Application, error)
	Act(ctx context.Context, recruiterID, id uuid.UUID, act Action) (Outcome, error)
}

type service struct {
	repo     Repository
	jobs     job.Repository
	profiles candidate.Repository
	users    auth.UserRepository
	slots    schedule.UseCase
	notifier notify.Notifier
}

func NewService(repo Repository, jobs job.Repository, profiles candidate.Repository, users auth.UserRepository, slots schedule.UseCase, notifier notify.Notifier) UseCase {
	return &service{
		repo:     repo,
		jobs:     jobs,
		profiles: profiles,
		users:    users,
		slots:    slots,
		notifier: notifier,
	}
}

// Apply создаёт отклик кандидата на вакансию. Повторный отклик на ту же
// вакансию отклоняется (уникальность пары вакансия+кандидат).
func (s *service) Apply(ctx context.Context, candidateID, jobID uuid.UUID) (Application, error) {
	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return Application{}, err
	}
	if j.Status != job.StatusActive {
		return Application{}, ErrValidation("job is closed for applications")
	}
	if _, err := s.profiles.GetByOwner(ctx, candidateID); err != nil {
		if errors.Is(err, candidate.ErrNotFound) {
			return Application{}, ErrValidation("fill in your candidate profile before applying")
		}
		return Application{}, err
	}
	now := time.Now().UTC()
	a := Application{
		ID:          uuid.New(),
		JobID:       jobID,
		CandidateID: candidateID,
		Status:      StatusApplied,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return Application{}, err
	}
	return a, nil
}

// ListForJob отдаёт отклики на вакансию её владельцу и помечает
// свежие отклики просмотренными (applied → viewed).
func (s *service) ListForJob(ctx context.Context, recruiterID, jobID uuid.UUID, limit, offset int) ([]Application, error) {
	if _, err := s.jobs.GetByIDForOwner(ctx, recruiterID, jobID); err != nil {
		return nil, err
	}
	if err := s.repo.MarkViewed(ctx, jobID); err != nil {
		return nil, err
	}
	return s.repo.ListByJob(ctx, jobID, limit, offset)
}

func (s *service) ListOwn(ctx context.Context, candidateID uuid.UUID, limit, offset int) ([]Application, error) {
	return s.repo.ListByCandidate(ctx, candidateID, limit, offset)
}

// Act применяет действие рекрутёра к отклику, проверяя владение вакансией
// и допустимость перехода.
func (s *service) Act(ctx context.Context, recruiterID, id uuid.UUID, act Action) (Outcome, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Outcome{}, err
	}
	j, err := s.jobs.GetByIDForOwner(ctx, recruiterID, a.JobID)
	if err != nil {
		return Outcome{}, err
	}
	if err := checkTransition(act.Kind(), a.Status); err != nil {
		return Outcome{}, err
	}

	switch v := act.(type) {
	case Shortlist:
		err = s.setStatus(ctx, &a, StatusShortlisted)
	case Reject:
		// Поля собеседования сохраняются для аудита; повторное назначение
		// блокирует таблица переходов.
		err = s.setStatus(ctx, &a, StatusRejected)
	case ScheduleInterview:
		err = s.scheduleInterview(ctx, &a, j, v)
	case Message:
		return s.openChat(ctx, recruiterID, a)
	case MarkInterviewed:
		err = s.setStatus(ctx, &a, StatusInterviewed)
	case Select:
		err = s.setStatus(ctx, &a, StatusSelected)
	case RejectAfterInterview:
		err = s.setStatus(ctx, &a, StatusRejectedAfterInterview)
	case Hire:
		err = s.setStatus(ctx, &a, StatusHired)
	default:
		err = ErrValidation("unknown action")
	}
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Application: a}, nil
}

func (s *service) setStatus(ctx context.Context, a *Application, st Status) error {
	if err := s.repo.UpdateStatus(ctx, a.ID, st); err != nil {
		return err
	}
	a.Status = st
	a.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *service) scheduleInterview(ctx context.Context, a *Application, j job.Job, v ScheduleInterview) error {
	iv := InterviewDetails{Date: v.Date, Time: v.Time, MeetingLink: v.MeetingLink, Notes: v.Notes}
	if v.Auto {
		slot, err := s.slots.NextForEmployer(ctx, j.OwnerID)
		if err != nil {
			return err
		}
		if slot == nil {
			return ErrValidation("no free interview slot within the horizon, pick a time manually")
		}
		iv.Date = slot.Date
		iv.Time = slot.Time
	} else {
		if _, err := time.Parse("2006-01-02", iv.Date); err != nil {
			return ErrValidation("date must be YYYY-MM-DD")
		}
		if _, err := time.Parse("15:04", iv.Time); err != nil {
			return ErrValidation("time must be HH:MM")
		}
	}
	if err := s.repo.SetInterview(ctx, a.ID, StatusInterviewScheduled, iv); err != nil {
		return err
	}
	a.Status = StatusInterviewScheduled
	a.Interview = &iv
	a.UpdatedAt = time.Now().UTC()

	// Уведомление — побочный канал: сбой логируем, основной поток не валим.
	if s.notifier != nil {
		if u, err := s.users.GetByID(ctx, a.CandidateID); err == nil {
			subject, body := notify.InterviewInvite(j.Title, iv.Date, iv.Time, iv.MeetingLink)
			go func(email string) {
				nctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := s.notifier.Send(nctx, email, subject, body); err != nil {
					log.Printf("interview notification failed: %v", err)
				}
			}(u.Email)
		}
	}
	return nil
}

func (s *service) openChat(ctx context.Context, recruiterID uuid.UUID, a Application) (Outcome, error) {
	recruiter, err := s.users.GetByID(ctx, recruiterID)
	if err != nil {
		return Outcome{}, err
	}
	cand, err := s.users.GetByID(ctx, a.CandidateID)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{
		Application: a,
		ChatRoomID:  chat.RoomID(recruiter.Email, cand.Email),
	}, nil
}
