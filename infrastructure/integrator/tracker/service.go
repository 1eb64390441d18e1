package tracker

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	trackerdomain "github.com/agromarket/analytics-api/infrastructure/integrator/tracker/domain"
	"github.com/agromarket/analytics-api/infrastructure/integrator/tracker/trackerclient"
	"github.com/agromarket/analytics-api/internal/config"
	"github.com/agromarket/analytics-api/internal/domain"
)

// TrackerIntegrator é o adaptador do serviço externo de tracking de eventos.
// É uma dependência "soft": qualquer falha upstream vira available=false,
// nunca um erro propagado.
type TrackerIntegrator interface {
	// FetchEvents busca os eventos normalizados da janela de datas
	// (inclusiva nas duas pontas). Retorna available=false quando as
	// credenciais estão ausentes ou o serviço não respondeu com sucesso.
	FetchEvents(ctx context.Context, startDate, endDate time.Time) ([]domain.Event, bool)
}

type TrackerService struct {
	cfg    *config.Config
	Client trackerclient.Client
}

func New(cfg *config.Config, client trackerclient.Client) TrackerIntegrator {
	return &TrackerService{
		cfg:    cfg,
		Client: client,
	}
}

func (s *TrackerService) FetchEvents(ctx context.Context, startDate, endDate time.Time) ([]domain.Event, bool) {
	if s.cfg.Tracker.APIKey == "" || s.cfg.Tracker.ProjectID == "" {
		logrus.Info("Serviço de tracking sem credenciais configuradas, métricas de eventos ficarão zeradas")
		return nil, false
	}

	// Busca com um dia de folga para cada lado: os filtros de data da API
	// upstream são pouco confiáveis nas bordas do período
	params := trackerclient.EventListParams{
		After:  startDate.AddDate(0, 0, -1).Format(time.DateOnly),
		Before: endDate.AddDate(0, 0, 1).Format(time.DateOnly),
		Limit:  s.cfg.Tracker.FetchLimit,
	}

	resp, err := s.Client.ListEvents(ctx, params)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"start_date": startDate.Format(time.DateOnly),
			"end_date":   endDate.Format(time.DateOnly),
		}).Warn("Falha ao buscar eventos do serviço de tracking, degradando para métricas zeradas")
		return nil, false
	}

	events := s.normalizeAndFilter(resp.Results, startDate, endDate)

	logrus.WithFields(logrus.Fields{
		"fetched":    len(resp.Results),
		"in_window":  len(events),
		"start_date": startDate.Format(time.DateOnly),
		"end_date":   endDate.Format(time.DateOnly),
	}).Info("Eventos do serviço de tracking carregados")

	return events, true
}

// normalizeAndFilter converte os eventos brutos para o formato do domínio e
// descarta os que caem fora da janela, comparando na granularidade de dia.
func (s *TrackerService) normalizeAndFilter(
	raws []trackerdomain.RawEvent,
	startDate, endDate time.Time,
) []domain.Event {
	now := time.Now()
	events := make([]domain.Event, 0, len(raws))

	for _, raw := range raws {
		eventTime := resolveEventTime(raw, now)

		if !withinWindow(eventTime, startDate, endDate) {
			continue
		}

		events = append(events, domain.Event{
			Name:       raw.Name,
			VisitorID:  raw.DistinctID,
			Timestamp:  eventTime,
			Properties: raw.Properties,
		})
	}

	return events
}
