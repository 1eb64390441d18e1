package tracker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	trackerdomain "github.com/agromarket/analytics-api/infrastructure/integrator/tracker/domain"
)

func TestResolveEventTime(t *testing.T) {
	fallback := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		raw      trackerdomain.RawEvent
		expected time.Time
	}{
		{
			name: "campo timestamp tem prioridade sobre os demais",
			raw: trackerdomain.RawEvent{
				Timestamp: "2024-01-15T10:30:00Z",
				CreatedAt: "2024-02-20T08:00:00Z",
				Properties: map[string]any{
					"timestamp": "2024-03-25T09:00:00Z",
				},
			},
			expected: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
		},
		{
			name: "created_at usado quando timestamp ausente",
			raw: trackerdomain.RawEvent{
				CreatedAt: "2024-02-20T08:00:00Z",
			},
			expected: time.Date(2024, 2, 20, 8, 0, 0, 0, time.UTC),
		},
		{
			name: "propriedade timestamp usada quando os campos principais faltam",
			raw: trackerdomain.RawEvent{
				Properties: map[string]any{
					"timestamp": "2024-03-25T09:00:00Z",
				},
			},
			expected: time.Date(2024, 3, 25, 9, 0, 0, 0, time.UTC),
		},
		{
			name:     "fallback quando nenhum campo existe",
			raw:      trackerdomain.RawEvent{},
			expected: fallback,
		},
		{
			name: "timestamp não parseável equivale a ausente",
			raw: trackerdomain.RawEvent{
				Timestamp: "ontem de manhã",
				CreatedAt: "2024-02-20T08:00:00Z",
			},
			expected: time.Date(2024, 2, 20, 8, 0, 0, 0, time.UTC),
		},
		{
			name: "todos os campos não parseáveis caem no fallback",
			raw: trackerdomain.RawEvent{
				Timestamp: "???",
				CreatedAt: "not-a-date",
				Properties: map[string]any{
					"timestamp": 12345, // não é string
				},
			},
			expected: fallback,
		},
		{
			name: "data sem hora é aceita",
			raw: trackerdomain.RawEvent{
				Timestamp: "2024-04-10",
			},
			expected: time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := resolveEventTime(tt.raw, fallback)
			assert.True(t, tt.expected.Equal(result), "esperado %s, obtido %s", tt.expected, result)
		})
	}
}

func TestWithinWindow(t *testing.T) {
	start := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		ts       time.Time
		expected bool
	}{
		{"primeiro dia da janela no fim do dia", time.Date(2024, 1, 10, 23, 59, 59, 0, time.UTC), true},
		{"último dia da janela no início do dia", time.Date(2024, 1, 12, 0, 0, 1, 0, time.UTC), true},
		{"dia do meio", time.Date(2024, 1, 11, 12, 0, 0, 0, time.UTC), true},
		{"um dia antes", time.Date(2024, 1, 9, 23, 59, 59, 0, time.UTC), false},
		{"um dia depois", time.Date(2024, 1, 13, 0, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, withinWindow(tt.ts, start, end))
		})
	}
}
