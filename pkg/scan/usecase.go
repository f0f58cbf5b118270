package scan

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/artem13815/jobportal/pkg/application"
	"github.com/artem13815/jobportal/pkg/candidate"
	"github.com/artem13815/jobportal/pkg/job"
)

// ErrUnavailable: внешний скоринг недоступен; отклик остаётся
// нескорированным, ошибка восстановимая.
var ErrUnavailable = errors.New("scan unavailable")

// QualifyThreshold — порог авто-классификации отклика как qualified.
const QualifyThreshold = 80

// Options управляют одиночным сканом.
type Options struct {
	ForceRescan  bool
	AutoClassify bool
}

// Result — итог скана; FromCache означает, что внешний вызов не выполнялся.
type Result struct {
	Application application.Application `json:"application"`
	FromCache   bool                    `json:"fromCache"`
}

// BatchItem — результат одного элемента пакетного скана.
type BatchItem struct {
	ApplicationID uuid.UUID `json:"applicationId"`
	MatchScore    *int      `json:"matchScore"`
	Error         string    `json:"error,omitempty"`
}

// BatchResult — агрегат пакетного скана; сбои отдельных элементов
// не прерывают остальные.
type BatchResult struct {
	Scanned int         `json:"scanned"`
	Failed  int         `json:"failed"`
	Items   []BatchItem `json:"items"`
}

// Scorer — порт внешнего скоринга (резидентная эвристика и/или LLM).
type Scorer interface {
	Score(ctx context.Context, j job.Job, p candidate.Profile) (int, application.Analysis, error)
}

// UseCase — координатор сканирования откликов.
type UseCase interface {
	Scan(ctx context.Context, recruiterID, id uuid.UUID, opts Options) (Result, error)
	ScanPending(ctx context.Context, recruiterID uuid.UUID, autoClassify bool) (BatchResult, error)
}

type service struct {
	apps        application.Repository
	jobs        job.Repository
	profiles    candidate.Repository
	scorer      Scorer
	threshold   int
	concurrency int
	flight      singleflight.Group
}

func NewService(apps application.Repository, jobs job.Repository, profiles candidate.Repository, scorer Scorer) UseCase {
	return &service{
		apps:        apps,
		jobs:        jobs,
		profiles:    profiles,
		scorer:      scorer,
		threshold:   QualifyThreshold,
		concurrency: 4,
	}
}

// Scan скорирует отклик. Уже посчитанный скор возвращается из кеша, пока не
// запрошен ForceRescan. Для ForceRescan=false одновременные сканы одного
// отклика схлопываются в один вызов (singleflight).
func (s *service) Scan(ctx context.Context, recruiterID, id uuid.UUID, opts Options) (Result, error) {
	a, err := s.apps.GetByID(ctx, id)
	if err != nil {
		return Result{}, err
	}
	j, err := s.jobs.GetByIDForOwner(ctx, recruiterID, a.JobID)
	if err != nil {
		return Result{}, err
	}

	if a.Scored() && !opts.ForceRescan {
		return Result{Application: a, FromCache: true}, nil
	}

	if opts.ForceRescan {
		a, err = s.compute(ctx, a, j)
	} else {
		var v any
		v, err, _ = s.flight.Do(id.String(), func() (any, error) {
			// повторная проверка: параллельный победитель мог уже записать скор
			fresh, err := s.apps.GetByID(ctx, id)
			if err != nil {
				return application.Application{}, err
			}
			if fresh.Scored() {
				return fresh, nil
			}
			return s.compute(ctx, fresh, j)
		})
		if err == nil {
			a = v.(application.Application)
		}
	}
	if err != nil {
		return Result{}, err
	}

	// Авто-классификация никогда не перетирает статус, выставленный
	// рекрутёром: условный переход только из applied/viewed.
	if opts.AutoClassify && a.MatchScore != nil && *a.MatchScore >= s.threshold {
		moved, err := s.apps.UpdateStatusIf(ctx, a.ID, application.StatusQualified,
			[]application.Status{application.StatusApplied, application.StatusViewed})
		if err != nil {
			return Result{}, err
		}
		if moved {
			a.Status = application.StatusQualified
		}
	}
	return Result{Application: a}, nil
}

// compute выполняет внешний скоринг и сохраняет результат. Сбой скоринга
// оставляет отклик нескорированным и возвращается как восстановимая ошибка.
func (s *service) compute(ctx context.Context, a application.Application, j job.Job) (application.Application, error) {
	prof, err := s.profiles.GetByOwner(ctx, a.CandidateID)
	if err != nil {
		return application.Application{}, err
	}
	score, an, err := s.scorer.Score(ctx, j, prof)
	if err != nil {
		return application.Application{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if err := s.apps.SaveScan(ctx, a.ID, score, an); err != nil {
		return application.Application{}, err
	}
	a.MatchScore = &score
	a.Analysis = &an
	return a, nil
}

// ScanPending сканирует все нескорированные отклики на вакансии работодателя.
// Элементы обрабатываются конкурентно; сбой элемента изолирован и попадает
// в агрегат, не прерывая соседей.
func (s *service) ScanPending(ctx context.Context, recruiterID uuid.UUID, autoClassify bool) (BatchResult, error) {
	pending, err := s.apps.ListUnscoredByEmployer(ctx, recruiterID, 100)
	if err != nil {
		return BatchResult{}, err
	}
	items := make([]BatchItem, len(pending))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, a := range pending {
		g.Go(func() error {
			items[i] = s.scanOne(gctx, recruiterID, a, autoClassify)
			return nil // ошибки изолируются per-item
		})
	}
	_ = g.Wait()

	var res BatchResult
	res.Items = items
	for _, it := range items {
		if it.Error != "" {
			res.Failed++
		} else {
			res.Scanned++
		}
	}
	return res, nil
}

func (s *service) scanOne(ctx context.Context, recruiterID uuid.UUID, a application.Application, autoClassify bool) BatchItem {
	item := BatchItem{ApplicationID: a.ID}
	out, err := s.Scan(ctx, recruiterID, a.ID, Options{AutoClassify: autoClassify})
	if err != nil {
		item.Error = err.Error()
		return item
	}
	item.MatchScore = out.Application.MatchScore
	return item
}
