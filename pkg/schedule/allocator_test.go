package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(day string, hh, mm int) time.Time {
	d, err := time.Parse("2006-01-02", day)
	if err != nil {
		panic(err)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), hh, mm, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	a1, a2 := at("2024-01-02", 10, 0), at("2024-01-02", 10, 45)
	assert.True(t, Overlaps(a1, a2, at("2024-01-02", 10, 30), at("2024-01-02", 11, 0)))
	// Касание границами — не пересечение.
	assert.False(t, Overlaps(a1, a2, a2, at("2024-01-02", 11, 30)))
	assert.False(t, Overlaps(a1, a2, at("2024-01-02", 9, 15), a1))
}

func TestNextAvailableSlotSkipsBusy(t *testing.T) {
	busy := []Interval{
		{Start: at("2024-01-02", 10, 0), End: at("2024-01-02", 10, 45)},
		{Start: at("2024-01-02", 10, 45), End: at("2024-01-02", 11, 30)},
	}
	slot := NextAvailableSlot(busy, at("2024-01-02", 10, 0), DefaultOptions())
	require.NotNil(t, slot)
	assert.Equal(t, "2024-01-02", slot.Date)
	assert.Equal(t, "11:30", slot.Time)
}

func TestNextAvailableSlotFreeDay(t *testing.T) {
	slot := NextAvailableSlot(nil, at("2024-01-02", 9, 0), DefaultOptions())
	require.NotNil(t, slot)
	assert.Equal(t, "2024-01-02", slot.Date)
	assert.Equal(t, "09:00", slot.Time)
}

func TestNextAvailableSlotRollsToNextDay(t *testing.T) {
	// Весь рабочий день занят одним интервалом — первый свободный слот завтра.
	busy := []Interval{
		{Start: at("2024-01-02", 9, 0), End: at("2024-01-02", 18, 0)},
	}
	slot := NextAvailableSlot(busy, at("2024-01-02", 9, 0), DefaultOptions())
	require.NotNil(t, slot)
	assert.Equal(t, "2024-01-03", slot.Date)
	assert.Equal(t, "09:00", slot.Time)
}

func TestNextAvailableSlotRespectsDayEnd(t *testing.T) {
	// Старт в 17:30: слот 17:30+45 вышел бы за 18:00, поэтому — завтра.
	slot := NextAvailableSlot(nil, at("2024-01-02", 17, 30), DefaultOptions())
	require.NotNil(t, slot)
	assert.Equal(t, "2024-01-03", slot.Date)
	assert.Equal(t, "09:00", slot.Time)
}

func TestNextAvailableSlotHorizonFull(t *testing.T) {
	opts := Options{
		SlotDuration: 45 * time.Minute,
		DayStartHour: 9,
		DayEndHour:   10,
		HorizonDays:  2,
	}
	var busy []Interval
	for d := 0; d <= opts.HorizonDays; d++ {
		day := at("2024-01-02", 9, 0).AddDate(0, 0, d)
		busy = append(busy, Interval{Start: day, End: day.Add(time.Hour)})
	}
	assert.Nil(t, NextAvailableSlot(busy, at("2024-01-02", 9, 0), opts))
}

func TestIntervalFor(t *testing.T) {
	msk := time.FixedZone("MSK", 3*3600)
	iv, err := IntervalFor("2024-06-03", "09:00", 45*time.Minute, msk)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 3, 9, 0, 0, 0, msk), iv.Start)
	assert.Equal(t, 45*time.Minute, iv.End.Sub(iv.Start))

	_, err = IntervalFor("03.06.2024", "09:00", 45*time.Minute, msk)
	assert.Error(t, err)
}

func TestNextAvailableSlotNonUTCZone(t *testing.T) {
	// Занятость и точка старта в одной (не-UTC) зоне: уже назначенный
	// слот 09:00 не предлагается повторно.
	msk := time.FixedZone("MSK", 3*3600)
	busy1, err := IntervalFor("2024-06-03", "09:00", 45*time.Minute, msk)
	require.NoError(t, err)
	busy2, err := IntervalFor("2024-06-03", "09:45", 45*time.Minute, msk)
	require.NoError(t, err)

	from := time.Date(2024, 6, 3, 9, 0, 0, 0, msk)
	slot := NextAvailableSlot([]Interval{busy1, busy2}, from, DefaultOptions())
	require.NotNil(t, slot)
	assert.Equal(t, "2024-06-03", slot.Date)
	assert.Equal(t, "10:30", slot.Time)
}

func TestNextAvailableSlotDeterministic(t *testing.T) {
	busy := []Interval{
		{Start: at("2024-01-02", 9, 45), End: at("2024-01-02", 10, 30)},
	}
	first := NextAvailableSlot(busy, at("2024-01-02", 9, 0), DefaultOptions())
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, NextAvailableSlot(busy, at("2024-01-02", 9, 0), DefaultOptions()))
	}
	require.NotNil(t, first)
	assert.Equal(t, "09:00", first.Time)
}
