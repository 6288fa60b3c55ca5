package availability

import (
	"fmt"
	"time"

	"github.com/Freeeeeet/tutor_scheduler/internal/model"
)

// AnchorLead минимальный отступ при сохранении шаблона: интервалы привязываются
// к датам не раньше чем через неделю, чтобы не открыть слоты текущей недели.
const AnchorLead = 7 * 24 * time.Hour

const week = 7 * 24 * time.Hour

// FromRecords разбирает записи хранилища в наборы available и booked.
// День недели и диапазон берутся из startTime в локации loc; дубликаты
// (день, диапазон) схлопываются, дни сортируются. Некорректная запись
// отклоняет весь набор.
func FromRecords(records []model.AvailabilityRecord, loc *time.Location) (available, booked WeekSchedule, err error) {
	available = NewWeekSchedule()
	booked = NewWeekSchedule()

	for i := range records {
		rec := &records[i]

		day, r, err := RecordRange(rec.StartTime, rec.EndTime, loc)
		if err != nil {
			return nil, nil, fmt.Errorf("record %d: %w", rec.ID, err)
		}

		switch rec.Status {
		case model.RecordStatusAvailable:
			available.Add(day, r)
		case model.RecordStatusBooked:
			booked.Add(day, r)
		default:
			return nil, nil, fmt.Errorf("record %d: %w: unknown status %q", rec.ID, ErrMalformedRange, rec.Status)
		}
	}

	return available, booked, nil
}

// ActiveRecords отбрасывает BOOKED записи, занятие которых закончилось к now.
// Прошедшее занятие больше не занимает ячейку недельного шаблона.
func ActiveRecords(records []model.AvailabilityRecord, now time.Time) []model.AvailabilityRecord {
	active := make([]model.AvailabilityRecord, 0, len(records))
	for _, rec := range records {
		if rec.Status == model.RecordStatusBooked && !rec.EndTime.After(now) {
			continue
		}
		active = append(active, rec)
	}
	return active
}

// RecordRange переводит абсолютный интервал в (день недели, "HH:MM-HH:MM").
// Конец ровно в следующую полночь допускается и даёт 24:00.
func RecordRange(start, end time.Time, loc *time.Location) (Weekday, TimeRange, error) {
	if loc == nil {
		loc = time.UTC
	}
	start = start.In(loc)
	end = end.In(loc)

	if !start.Before(end) {
		return 0, TimeRange{}, fmt.Errorf("%w: start %s is not before end %s",
			ErrMalformedRange, start.Format(time.RFC3339), end.Format(time.RFC3339))
	}

	startMin := start.Hour()*minutesPerHour + start.Minute()
	endMin := end.Hour()*minutesPerHour + end.Minute()

	sy, sm, sd := start.Date()
	ey, em, ed := end.Date()
	if sy != ey || sm != em || sd != ed {
		nextMidnight := time.Date(sy, sm, sd+1, 0, 0, 0, 0, loc)
		if !end.Equal(nextMidnight) {
			return 0, TimeRange{}, fmt.Errorf("%w: %s crosses midnight",
				ErrMalformedRange, start.Format(time.RFC3339))
		}
		endMin = minutesPerDay
	}

	r, err := NewTimeRange(startMin, endMin)
	if err != nil {
		return 0, TimeRange{}, err
	}
	return FromTime(start.Weekday()), r, nil
}

// Serialize переводит шаблон в датированные интервалы для сохранения.
// Каждый диапазон привязывается к первому вхождению своего дня недели,
// которое начинается строго позже now + AnchorLead. Порядок: по дням, затем по началу.
func Serialize(s WeekSchedule, now time.Time) ([]model.AvailabilityWindow, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	windows := make([]model.AvailabilityWindow, 0, TotalSlots(s))
	for _, day := range Weekdays {
		for _, r := range s[day] {
			start, end := NextOccurrence(day, r, now.Add(AnchorLead))
			windows = append(windows, model.AvailabilityWindow{StartTime: start, EndTime: end})
		}
	}
	return windows, nil
}

// NextOccurrence первое вхождение (day, r), начинающееся строго после after,
// в локации after. Даты, где время на часах не существует (переход на летнее
// время), пропускаются.
func NextOccurrence(day Weekday, r TimeRange, after time.Time) (time.Time, time.Time) {
	loc := after.Location()
	y, m, d := after.Date()
	base := time.Date(y, m, d, 0, 0, 0, 0, loc)

	offset := (int(day.Time()) - int(base.Weekday()) + 7) % 7
	for {
		date := base.AddDate(0, 0, offset)
		dy, dm, dd := date.Date()
		start := time.Date(dy, dm, dd, 0, r.Start, 0, 0, loc)
		end := time.Date(dy, dm, dd, 0, r.End, 0, 0, loc)
		if start.After(after) && sameWallClock(day, r, start, end) {
			return start, end
		}
		offset += 7
	}
}

// RollForward переносит прошедший интервал на ближайшую неделю, где он ещё не закончился.
// Сдвиг считается в локации now, поэтому день недели и время на часах не меняются
// при переходе на летнее время.
func RollForward(start, end, now time.Time) (time.Time, time.Time) {
	day, r, err := RecordRange(start, end, now.Location())
	if err != nil {
		// интервал не укладывается в сутки локации: целые недели абсолютного времени
		shift := (now.Sub(end)/week + 1) * week
		return start.Add(shift), end.Add(shift)
	}

	after := now.Add(-time.Duration(r.Duration()) * time.Minute)
	for {
		s, e := NextOccurrence(day, r, after)
		if e.After(now) {
			return s, e
		}
		after = s
	}
}

func sameWallClock(day Weekday, r TimeRange, start, end time.Time) bool {
	gotDay, got, err := RecordRange(start, end, start.Location())
	return err == nil && gotDay == day && got == r
}
