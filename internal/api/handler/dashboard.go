package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/agromarket/analytics-api/infrastructure/repository"
	"github.com/agromarket/analytics-api/internal/domain"
	"github.com/agromarket/analytics-api/internal/usecases/reporting"
	"github.com/agromarket/analytics-api/pkg/apiErrors"
	"github.com/agromarket/analytics-api/pkg/log"
	"github.com/agromarket/analytics-api/pkg/utils"
)

// defaultReportWindowDays é a janela usada quando a requisição não informa datas
const defaultReportWindowDays = 30

func GetDashboardReport(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		startDate, endDate, err := resolveReportWindow(r)
		if err != nil {
			logger.WithFields(log.Fields{
				"start_date": r.URL.Query().Get("start_date"),
				"end_date":   r.URL.Query().Get("end_date"),
				"error":      err.Error(),
			}).Warn("dashboard: invalid date parameters")

			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Datas inválidas. Use o formato YYYY-MM-DD", nil)
			return
		}

		if startDate.After(*endDate) {
			logger.WithFields(log.Fields{
				"start_date": startDate.Format(time.DateOnly),
				"end_date":   endDate.Format(time.DateOnly),
			}).Warn("dashboard: inverted date range")

			apiErrors.WriteError(w, apiErrors.ErrInvalidDateRange, "A data de início não pode ser posterior à data de fim", nil)
			return
		}

		logger.WithFields(log.Fields{
			"start_date": startDate.Format(time.DateOnly),
			"end_date":   endDate.Format(time.DateOnly),
		}).Debug("dashboard: building report for window")

		report, err := service.GetDashboardReport(r.Context(), &domain.ReportFilters{
			StartDate: startDate,
			EndDate:   endDate,
		})
		if err != nil {
			logger.WithFields(log.Fields{
				"start_date": startDate.Format(time.DateOnly),
				"end_date":   endDate.Format(time.DateOnly),
				"error":      err.Error(),
			}).Error("dashboard: failed to build report")

			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao montar o relatório do dashboard", nil)
			return
		}

		logger.WithFields(log.Fields{
			"orders":           report.TotalOrders,
			"page_views":       report.TotalPageViews,
			"events_available": report.EventDataAvailable,
		}).Info("dashboard: report built successfully")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(report); err != nil {
			logger.WithError(err).Error("dashboard: failed to encode response")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

func GetLatestSnapshot(snapshotRepo repository.ReportSnapshotRepository) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		snapshot, err := snapshotRepo.GetLatest(r.Context())
		if err != nil {
			logger.WithError(err).Error("dashboard: failed to fetch latest snapshot")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar o último snapshot", nil)
			return
		}

		if snapshot == nil {
			logger.Info("dashboard: no snapshot stored yet")
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Nenhum snapshot de relatório disponível", nil)
			return
		}

		logger.WithField("date", snapshot.Date.Format(time.DateOnly)).
			Info("dashboard: latest snapshot retrieved")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(snapshot); err != nil {
			logger.WithError(err).Error("dashboard: failed to encode snapshot response")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// resolveReportWindow extrai as datas da query string, caindo para a janela
// padrão dos últimos 30 dias quando nenhuma data é informada
func resolveReportWindow(r *http.Request) (*time.Time, *time.Time, error) {
	startParam := r.URL.Query().Get("start_date")
	endParam := r.URL.Query().Get("end_date")

	if startParam == "" && endParam == "" {
		end := utils.TruncateToDay(time.Now().UTC())
		start := end.AddDate(0, 0, -(defaultReportWindowDays - 1))
		return &start, &end, nil
	}

	startDate, err := utils.ParseDate(startParam)
	if err != nil {
		return nil, nil, err
	}

	endDate, err := utils.ParseDate(endParam)
	if err != nil {
		return nil, nil, err
	}

	// Informar só uma das pontas completa a outra com a janela padrão
	if startParam == "" {
		start := endDate.AddDate(0, 0, -(defaultReportWindowDays - 1))
		startDate = &start
	}
	if endParam == "" {
		end := startDate.AddDate(0, 0, defaultReportWindowDays-1)
		endDate = &end
	}

	return startDate, endDate, nil
}
