package utils

import "time"

func ParseDate(dateStr string) (*time.Time, error) {
	var date time.Time

	if dateStr != "" {
		incomingDate, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return nil, err
		}

		date = incomingDate
	}

	return &date, nil
}

// TruncateToDay descarta a hora do dia, mantendo apenas a data
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysBetween conta os dias de calendário entre start e end, inclusivo nas
// duas pontas. Retorna 0 se start > end.
func DaysBetween(start, end time.Time) int {
	start = TruncateToDay(start)
	end = TruncateToDay(end)

	if start.After(end) {
		return 0
	}

	return int(end.Sub(start).Hours()/24) + 1
}
