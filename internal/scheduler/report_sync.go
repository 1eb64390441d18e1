package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/agromarket/analytics-api/infrastructure/repository"
	"github.com/agromarket/analytics-api/internal/config"
	"github.com/agromarket/analytics-api/internal/domain"
	"github.com/agromarket/analytics-api/internal/usecases/reporting"
	"github.com/agromarket/analytics-api/pkg/utils"
)

// ReportSyncService gerencia o agendamento e execução do snapshot diário do
// relatório. O snapshot é um digest persistido do dia anterior; requisições
// ao vivo do dashboard continuam recomputando o relatório do zero.
type ReportSyncService struct {
	scheduler           *gocron.Scheduler
	config              config.ReportSync
	reporter            reporting.Reporter
	snapshotRepo        repository.ReportSnapshotRepository
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSyncError       string
}

// NewReportSyncService cria uma nova instância do serviço de snapshot diário
func NewReportSyncService(
	reporter reporting.Reporter,
	snapshotRepo repository.ReportSnapshotRepository,
	appConfig *config.Config,
) *ReportSyncService {
	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": appConfig.ReportSync.CronSchedule,
		"sync_enabled":  appConfig.ReportSync.Enabled,
	}).Info("Configuração do agendador de snapshot do relatório carregada")

	return &ReportSyncService{
		scheduler:    scheduler,
		config:       appConfig.ReportSync,
		reporter:     reporter,
		snapshotRepo: snapshotRepo,
		syncRunning:  false,
	}
}

// Start inicia o agendador
func (s *ReportSyncService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Snapshot diário do relatório desabilitado por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de snapshot do relatório")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncDailyReport(context.Background())
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar snapshot do relatório: %w", err)
	}

	s.scheduler.StartAsync()

	// Parar o agendador quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de snapshot do relatório")
		s.scheduler.Stop()
	}()

	return nil
}

// syncDailyReport gera o relatório de ontem e persiste como snapshot
func (s *ReportSyncService) syncDailyReport(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Snapshot do relatório já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.syncMutex.Unlock()

	startTime := time.Now()
	s.lastSyncStartedAt = startTime

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	yesterday := utils.TruncateToDay(time.Now().AddDate(0, 0, -1))

	logrus.WithField("date", yesterday.Format(time.DateOnly)).
		Info("Iniciando geração do snapshot diário do relatório")

	report, err := s.reporter.GetDashboardReport(ctx, &domain.ReportFilters{
		StartDate: &yesterday,
		EndDate:   &yesterday,
	})
	if err != nil {
		s.lastSyncError = err.Error()
		logrus.WithError(err).WithField("date", yesterday.Format(time.DateOnly)).
			Error("Erro ao gerar relatório para o snapshot diário")
		return
	}

	err = s.snapshotRepo.SaveOrUpdate(ctx, &repository.ReportSnapshot{
		Date:   yesterday,
		Report: report,
	})
	if err != nil {
		s.lastSyncError = err.Error()
		logrus.WithError(err).WithField("date", yesterday.Format(time.DateOnly)).
			Error("Erro ao salvar snapshot diário do relatório")
		return
	}

	s.lastSyncError = ""
	s.lastSyncCompletedAt = time.Now()

	logrus.WithFields(logrus.Fields{
		"date":     yesterday.Format(time.DateOnly),
		"duration": time.Since(startTime).String(),
	}).Info("Snapshot diário do relatório salvo com sucesso")
}

// TriggerManualSync inicia manualmente a geração do snapshot
func (s *ReportSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Snapshot do relatório já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando geração manual do snapshot do relatório")
	go s.syncDailyReport(context.Background())
}

// GetStatus retorna o status atual do agendador
func (s *ReportSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.Enabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_sync_error":        s.lastSyncError,
	}
}
