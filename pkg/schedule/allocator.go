package schedule

import "time"

// Slot — свободное окно для собеседования.
type Slot struct {
	Date string `json:"date"` // YYYY-MM-DD
	Time string `json:"time"` // HH:MM
}

// Interval — занятый полуинтервал [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Options задают рабочее окно и горизонт поиска.
type Options struct {
	SlotDuration time.Duration
	DayStartHour int
	DayEndHour   int
	HorizonDays  int
}

// DefaultOptions: 45-минутные слоты, рабочий день 09:00–18:00,
// горизонт 30 дней.
func DefaultOptions() Options {
	return Options{
		SlotDuration: 45 * time.Minute,
		DayStartHour: 9,
		DayEndHour:   18,
		HorizonDays:  30,
	}
}

// IntervalFor собирает занятый интервал из хранимой пары «дата, время».
// Зона loc обязана совпадать с зоной точки старта поиска: интервалы и
// кандидаты слотов сравниваются как абсолютные моменты, и разные зоны
// сдвинули бы одно и то же настенное время друг относительно друга.
func IntervalFor(date, tm string, d time.Duration, loc *time.Location) (Interval, error) {
	start, err := time.ParseInLocation("2006-01-02 15:04", date+" "+tm, loc)
	if err != nil {
		return Interval{}, err
	}
	return Interval{Start: start, End: start.Add(d)}, nil
}

// Overlaps: полуинтервалы пересекаются, если делят хотя бы один момент;
// касание границами пересечением не считается.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// NextAvailableSlot ищет первое свободное окно, двигаясь по дням от from
// с шагом SlotDuration внутри рабочего окна. Функция чистая: одинаковый
// снимок занятости и точка старта дают одинаковый результат.
// Возвращает nil, если в пределах горизонта свободных окон нет.
func NextAvailableSlot(busy []Interval, from time.Time, opts Options) *Slot {
	if opts.SlotDuration <= 0 {
		opts = DefaultOptions()
	}
	loc := from.Location()
	for day := 0; day <= opts.HorizonDays; day++ {
		d := from.AddDate(0, 0, day)
		dayStart := time.Date(d.Year(), d.Month(), d.Day(), opts.DayStartHour, 0, 0, 0, loc)
		dayEnd := time.Date(d.Year(), d.Month(), d.Day(), opts.DayEndHour, 0, 0, 0, loc)

		cursor := dayStart
		if day == 0 && from.After(dayStart) {
			cursor = from
		}
		for !cursor.Add(opts.SlotDuration).After(dayEnd) {
			end := cursor.Add(opts.SlotDuration)
			if !conflicts(busy, cursor, end) {
				return &Slot{
					Date: cursor.Format("2006-01-02"),
					Time: cursor.Format("15:04"),
				}
			}
			cursor = cursor.Add(opts.SlotDuration)
		}
	}
	return nil
}

func conflicts(busy []Interval, start, end time.Time) bool {
	for _, b := range busy {
		if Overlaps(start, end, b.Start, b.End) {
			return true
		}
	}
	return false
}
