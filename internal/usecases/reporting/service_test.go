package reporting

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	trackermocks "github.com/agromarket/analytics-api/infrastructure/integrator/tracker/mocks"
	repomocks "github.com/agromarket/analytics-api/infrastructure/repository/mocks"
	"github.com/agromarket/analytics-api/internal/config"
	"github.com/agromarket/analytics-api/internal/domain"
)

type serviceMocks struct {
	tracker   *trackermocks.MockTrackerIntegrator
	orderRepo *repomocks.MockOrderRepository
	statsRepo *repomocks.MockStatsRepository
}

func newServiceWithMocks(t *testing.T) (Reporter, serviceMocks) {
	ctrl := gomock.NewController(t)

	m := serviceMocks{
		tracker:   trackermocks.NewMockTrackerIntegrator(ctrl),
		orderRepo: repomocks.NewMockOrderRepository(ctrl),
		statsRepo: repomocks.NewMockStatsRepository(ctrl),
	}

	svc := NewService(&config.Config{}, m.tracker, m.orderRepo, m.statsRepo)

	return svc, m
}

func dateFilters(start, end time.Time) *domain.ReportFilters {
	return &domain.ReportFilters{StartDate: &start, EndDate: &end}
}

func simpleOrder(id int64, createdAt time.Time, price float64) *domain.Order {
	return &domain.Order{
		ID:        id,
		UserID:    id,
		CreatedAt: createdAt,
		Items: []*domain.OrderItem{
			{ID: id, ProductID: id, ProductName: "Produto", Category: "Sementes", Quantity: 1, Price: price},
		},
	}
}

func expectStats(m serviceMocks, totalUsers, newUsers, totalProducts int) {
	m.statsRepo.EXPECT().CountUsers(gomock.Any()).Return(totalUsers, nil)
	m.statsRepo.EXPECT().CountNewUsers(gomock.Any(), gomock.Any(), gomock.Any()).Return(newUsers, nil)
	m.statsRepo.EXPECT().CountProducts(gomock.Any()).Return(totalProducts, nil)
}

func TestGetDashboardReport_TrackerIndisponivelNaoDerrubaRelatorio(t *testing.T) {
	svc, m := newServiceWithMocks(t)

	startDate := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	endDate := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)

	// Janela anterior de mesmo tamanho: 2023-12-29 a 2023-12-31
	previousStart := time.Date(2023, 12, 29, 0, 0, 0, 0, time.UTC)
	previousEnd := time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)

	orders := []*domain.Order{
		simpleOrder(1, time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), 50),
		simpleOrder(2, time.Date(2024, 1, 2, 14, 0, 0, 0, time.UTC), 30),
	}

	m.tracker.EXPECT().FetchEvents(gomock.Any(), startDate, endDate).Return(nil, false)
	m.orderRepo.EXPECT().GetByDateRange(gomock.Any(), startDate, endDate).Return(orders, nil)
	m.orderRepo.EXPECT().GetByDateRange(gomock.Any(), previousStart, previousEnd).Return(nil, nil)
	expectStats(m, 120, 8, 45)

	report, err := svc.GetDashboardReport(context.Background(), dateFilters(startDate, endDate))
	assert.NoError(t, err)
	assert.NotNil(t, report)

	// As métricas de pedidos ficam intactas, as de eventos zeradas
	assert.Equal(t, 80.0, report.TotalRevenue)
	assert.Equal(t, 2, report.TotalOrders)
	assert.Equal(t, 40.0, report.AverageOrderValue)
	assert.Equal(t, 0, report.TotalPageViews)
	assert.Equal(t, 0, report.UniqueVisitors)
	assert.Equal(t, 0.0, report.ConversionRate)
	assert.False(t, report.EventDataAvailable)

	assert.Equal(t, 120, report.TotalUsers)
	assert.Equal(t, 8, report.NewUsers)
	assert.Equal(t, 45, report.TotalProducts)

	// Janela anterior sem receita: crescimento guardado em zero
	assert.Equal(t, 0.0, report.RevenueGrowth)
	assert.Equal(t, 0.0, report.OrdersGrowth)

	// Série diária cobre todos os dias da janela, mesmo sem eventos
	assert.Len(t, report.DailyMetrics, 3)
	assert.Equal(t, "2024-01-01", report.DailyMetrics[0].Date)
	assert.Equal(t, 0, report.DailyMetrics[0].Views)
	assert.Equal(t, 1, report.DailyMetrics[0].Orders)
	assert.Equal(t, 50.0, report.DailyMetrics[0].Revenue)
	assert.Equal(t, "2024-01-03", report.DailyMetrics[2].Date)
	assert.Equal(t, 0, report.DailyMetrics[2].Orders)
}

func TestGetDashboardReport_ComEventosMontaFunilEstimado(t *testing.T) {
	svc, m := newServiceWithMocks(t)

	startDate := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	endDate := time.Date(2024, 2, 7, 0, 0, 0, 0, time.UTC)

	// 10 page views de 2 visitantes, nenhum evento de estágio
	events := make([]domain.Event, 0, 10)
	for i := 0; i < 5; i++ {
		events = append(events,
			domain.Event{
				Name:      domain.EventPageView,
				VisitorID: "v1",
				Timestamp: time.Date(2024, 2, 2, 10, i, 0, 0, time.UTC),
			},
			domain.Event{
				Name:      domain.EventPageView,
				VisitorID: "v2",
				Timestamp: time.Date(2024, 2, 3, 10, i, 0, 0, time.UTC),
			},
		)
	}

	orders := []*domain.Order{
		simpleOrder(1, time.Date(2024, 2, 2, 9, 0, 0, 0, time.UTC), 100),
		simpleOrder(2, time.Date(2024, 2, 5, 9, 0, 0, 0, time.UTC), 100),
	}

	m.tracker.EXPECT().FetchEvents(gomock.Any(), startDate, endDate).Return(events, true)
	m.orderRepo.EXPECT().GetByDateRange(gomock.Any(), startDate, endDate).Return(orders, nil)
	m.orderRepo.EXPECT().GetByDateRange(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]*domain.Order{simpleOrder(3, time.Date(2024, 1, 28, 9, 0, 0, 0, time.UTC), 100)}, nil)
	expectStats(m, 200, 12, 60)

	report, err := svc.GetDashboardReport(context.Background(), dateFilters(startDate, endDate))
	assert.NoError(t, err)

	assert.True(t, report.EventDataAvailable)
	assert.Equal(t, 10, report.TotalPageViews)
	assert.Equal(t, 2, report.UniqueVisitors)
	assert.Equal(t, 20.0, report.ConversionRate) // 2 pedidos / 10 page views

	// Receita dobrou em relação à janela anterior (100 -> 200)
	assert.Equal(t, 100.0, report.RevenueGrowth)

	// Sem eventos de estágio o funil cai no modo estimativa, com o estágio
	// de compra ancorado na contagem real de pedidos
	assert.NotNil(t, report.Funnel)
	assert.True(t, report.Funnel.Estimated)
	assert.Equal(t, 2, report.Funnel.Stages[0].Users)
	assert.Equal(t, 2, report.Funnel.Stages[5].Users)
}

func TestGetDashboardReport_FiltrosInvalidos(t *testing.T) {
	svc, _ := newServiceWithMocks(t)

	startDate := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	endDate := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		filters *domain.ReportFilters
	}{
		{"filtros nulos", nil},
		{"datas ausentes", &domain.ReportFilters{}},
		{"início depois do fim", dateFilters(startDate, endDate)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := svc.GetDashboardReport(context.Background(), tt.filters)
			assert.Error(t, err)
			assert.Nil(t, report)
		})
	}
}

func TestGetDashboardReport_ErroDoBancoEErroDeVerdade(t *testing.T) {
	svc, m := newServiceWithMocks(t)

	startDate := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	endDate := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)

	m.tracker.EXPECT().FetchEvents(gomock.Any(), startDate, endDate).Return(nil, false)
	m.orderRepo.EXPECT().GetByDateRange(gomock.Any(), startDate, endDate).
		Return(nil, errors.New("conexão recusada"))

	report, err := svc.GetDashboardReport(context.Background(), dateFilters(startDate, endDate))
	assert.Error(t, err)
	assert.Nil(t, report)
}
