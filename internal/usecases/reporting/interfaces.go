package reporting

import (
	"context"

	"github.com/agromarket/analytics-api/internal/domain"
)

// Reporter define a interface do pipeline de relatórios do dashboard
type Reporter interface {
	// GetDashboardReport monta o relatório completo do dashboard para a
	// janela de datas informada. Indisponibilidade do serviço de tracking
	// zera as métricas de eventos sem falhar o relatório; erro do banco
	// transacional é erro de verdade.
	GetDashboardReport(ctx context.Context, filters *domain.ReportFilters) (*domain.DashboardReport, error)
}
