package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Calendar отдаёт снимок занятых интервалов собеседований работодателя.
type Calendar interface {
	ScheduledIntervals(ctx context.Context, employerID uuid.UUID) ([]Interval, error)
}

// UseCase подбирает ближайший свободный слот в календаре работодателя.
type UseCase interface {
	NextForEmployer(ctx context.Context, employerID uuid.UUID) (*Slot, error)
}

type service struct {
	calendar Calendar
	opts     Options
	now      func() time.Time
}

func NewService(calendar Calendar) UseCase {
	return &service{calendar: calendar, opts: DefaultOptions(), now: time.Now}
}

// NextForEmployer ищет слот начиная с завтрашнего рабочего дня.
// nil без ошибки означает «в горизонте всё занято» — вызывающая сторона
// откатывается на ручной выбор времени.
func (s *service) NextForEmployer(ctx context.Context, employerID uuid.UUID) (*Slot, error) {
	busy, err := s.calendar.ScheduledIntervals(ctx, employerID)
	if err != nil {
		return nil, err
	}
	tomorrow := s.now().AddDate(0, 0, 1)
	from := time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), s.opts.DayStartHour, 0, 0, 0, tomorrow.Location())
	return NextAvailableSlot(busy, from, s.opts), nil
}
