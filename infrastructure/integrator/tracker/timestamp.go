package tracker

import (
	"time"

	trackerdomain "github.com/agromarket/analytics-api/infrastructure/integrator/tracker/domain"
)

// Formatos aceitos para timestamps vindos do serviço de tracking
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// resolveEventTime resolve o horário de um evento seguindo a ordem de
// prioridade: campo timestamp, campo created_at, propriedade "timestamp" e,
// por último, o fallback informado. Um valor não parseável equivale a
// ausente: o evento nunca é descartado por falta de horário.
func resolveEventTime(raw trackerdomain.RawEvent, fallback time.Time) time.Time {
	if t, ok := parseTimestamp(raw.Timestamp); ok {
		return t
	}

	if t, ok := parseTimestamp(raw.CreatedAt); ok {
		return t
	}

	if raw.Properties != nil {
		if value, isString := raw.Properties["timestamp"].(string); isString {
			if t, ok := parseTimestamp(value); ok {
				return t
			}
		}
	}

	return fallback
}

func parseTimestamp(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// withinWindow compara apenas as datas de calendário, descartando a hora do
// dia: a janela é inclusiva nas duas pontas.
func withinWindow(t, startDate, endDate time.Time) bool {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	start := time.Date(startDate.Year(), startDate.Month(), startDate.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(endDate.Year(), endDate.Month(), endDate.Day(), 0, 0, 0, 0, time.UTC)

	return !day.Before(start) && !day.After(end)
}
