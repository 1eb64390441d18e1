package reporting

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/agromarket/analytics-api/infrastructure/integrator/tracker"
	"github.com/agromarket/analytics-api/infrastructure/repository"
	"github.com/agromarket/analytics-api/internal/config"
	"github.com/agromarket/analytics-api/internal/domain"
	"github.com/agromarket/analytics-api/pkg/utils"
)

// Service implementa o pipeline de agregação do dashboard
type Service struct {
	cfg             *config.Config
	trackerService  tracker.TrackerIntegrator
	orderRepository repository.OrderRepository
	statsRepository repository.StatsRepository
}

func NewService(
	cfg *config.Config,
	trackerService tracker.TrackerIntegrator,
	orderRepo repository.OrderRepository,
	statsRepo repository.StatsRepository,
) Reporter {
	return &Service{
		cfg:             cfg,
		trackerService:  trackerService,
		orderRepository: orderRepo,
		statsRepository: statsRepo,
	}
}

// transactionalData agrupa tudo que vem do banco transacional
type transactionalData struct {
	orders         []*domain.Order
	previousOrders []*domain.Order
	totalUsers     int
	newUsers       int
	totalProducts  int
}

func (s *Service) GetDashboardReport(ctx context.Context, filters *domain.ReportFilters) (*domain.DashboardReport, error) {
	if filters == nil || filters.StartDate == nil || filters.EndDate == nil {
		return nil, fmt.Errorf("é necessário informar as datas de início e fim")
	}

	if filters.StartDate.After(*filters.EndDate) {
		return nil, fmt.Errorf("a data de início não pode ser posterior à data de fim")
	}

	startDate := *filters.StartDate
	endDate := *filters.EndDate

	var (
		events          []domain.Event
		eventsAvailable bool
		txData          *transactionalData
		txErr           error
	)

	// A busca de eventos e as queries do banco não dependem uma da outra:
	// rodam em paralelo e os agregadores esperam as duas terminarem
	wg := sync.WaitGroup{}
	wg.Add(2)

	go func() {
		defer wg.Done()
		events, eventsAvailable = s.trackerService.FetchEvents(ctx, startDate, endDate)
	}()

	go func() {
		defer wg.Done()
		txData, txErr = s.fetchTransactionalData(ctx, startDate, endDate)
	}()

	wg.Wait()

	// O banco transacional é dependência dura: sem pedidos não há relatório
	if txErr != nil {
		logrus.WithError(txErr).WithFields(logrus.Fields{
			"start_date": startDate.Format(time.DateOnly),
			"end_date":   endDate.Format(time.DateOnly),
		}).Error("Erro ao buscar dados transacionais para o relatório")
		return nil, txErr
	}

	return s.assemble(filters, events, eventsAvailable, txData), nil
}

// fetchTransactionalData busca pedidos da janela atual, da janela anterior
// de mesmo tamanho e os contadores da base
func (s *Service) fetchTransactionalData(ctx context.Context, startDate, endDate time.Time) (*transactionalData, error) {
	orders, err := s.orderRepository.GetByDateRange(ctx, startDate, endDate)
	if err != nil {
		return nil, err
	}

	// Janela de comparação: mesmo tamanho, imediatamente anterior
	windowDays := utils.DaysBetween(startDate, endDate)
	previousEnd := startDate.AddDate(0, 0, -1)
	previousStart := startDate.AddDate(0, 0, -windowDays)

	previousOrders, err := s.orderRepository.GetByDateRange(ctx, previousStart, previousEnd)
	if err != nil {
		return nil, err
	}

	totalUsers, err := s.statsRepository.CountUsers(ctx)
	if err != nil {
		return nil, err
	}

	newUsers, err := s.statsRepository.CountNewUsers(ctx, startDate, endDate)
	if err != nil {
		return nil, err
	}

	totalProducts, err := s.statsRepository.CountProducts(ctx)
	if err != nil {
		return nil, err
	}

	return &transactionalData{
		orders:         orders,
		previousOrders: previousOrders,
		totalUsers:     totalUsers,
		newUsers:       newUsers,
		totalProducts:  totalProducts,
	}, nil
}

// assemble combina as saídas de todos os agregadores em um único payload.
// Nenhum I/O acontece aqui: apenas folds sobre as listas já em memória.
func (s *Service) assemble(
	filters *domain.ReportFilters,
	events []domain.Event,
	eventsAvailable bool,
	txData *transactionalData,
) *domain.DashboardReport {
	startDate := *filters.StartDate
	endDate := *filters.EndDate

	pageViews := countPageViews(events)
	visitors := uniqueVisitors(events)

	revenue := totalRevenue(txData.orders)
	previousRevenue := totalRevenue(txData.previousOrders)
	orderCount := len(txData.orders)

	report := &domain.DashboardReport{
		TotalPageViews:    pageViews,
		UniqueVisitors:    visitors,
		TotalOrders:       orderCount,
		TotalRevenue:      revenue,
		AverageOrderValue: averageOrderValue(revenue, orderCount),
		ConversionRate:    conversionRate(orderCount, pageViews),

		TotalUsers:    txData.totalUsers,
		NewUsers:      txData.newUsers,
		TotalProducts: txData.totalProducts,

		RevenueGrowth: growthRate(revenue, previousRevenue),
		OrdersGrowth:  growthRate(float64(orderCount), float64(len(txData.previousOrders))),

		DailyMetrics:    dailySeries(startDate, endDate, events, txData.orders),
		TopPages:        topPages(events),
		TopProducts:     topProducts(txData.orders),
		CategoryRevenue: categoryRevenue(txData.orders),
		Devices:         breakdownByProperty(events, domain.PropDevice),
		Browsers:        breakdownByProperty(events, domain.PropBrowser),
		Countries:       breakdownByProperty(events, domain.PropCountry),
		Referrers:       referrerStats(events),
		Funnel:          buildFunnel(events, orderCount, s.cfg.Funnel),

		EventDataAvailable: eventsAvailable,
		Filters:            filters,
	}

	logrus.WithFields(logrus.Fields{
		"start_date":       startDate.Format(time.DateOnly),
		"end_date":         endDate.Format(time.DateOnly),
		"events_available": eventsAvailable,
		"page_views":       pageViews,
		"orders":           orderCount,
	}).Info("Relatório do dashboard montado")

	return report
}
