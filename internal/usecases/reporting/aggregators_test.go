package reporting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/agromarket/analytics-api/internal/domain"
)

func pageView(visitorID, url string) domain.Event {
	return domain.Event{
		Name:      domain.EventPageView,
		VisitorID: visitorID,
		Timestamp: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		Properties: map[string]any{
			domain.PropURL: url,
		},
	}
}

func orderWithItems(createdAt time.Time, items ...*domain.OrderItem) *domain.Order {
	return &domain.Order{
		ID:        1,
		UserID:    10,
		CreatedAt: createdAt,
		Items:     items,
	}
}

func TestUniqueVisitors_ContaTodosOsTiposDeEvento(t *testing.T) {
	events := []domain.Event{
		{Name: domain.EventPageView, VisitorID: "v1"},
		{Name: domain.EventAddToCart, VisitorID: "v2"},
		{Name: domain.EventPurchaseCompleted, VisitorID: "v1"},
	}

	assert.Equal(t, 2, uniqueVisitors(events))
}

func TestUniqueVisitors_ListaVazia(t *testing.T) {
	assert.Equal(t, 0, uniqueVisitors(nil))
	assert.Equal(t, 0, uniqueVisitors([]domain.Event{}))
}

func TestCountPageViews_IgnoraOutrosEventos(t *testing.T) {
	events := []domain.Event{
		pageView("v1", "/"),
		pageView("v1", "/produtos"),
		{Name: domain.EventAddToCart, VisitorID: "v1"},
	}

	assert.Equal(t, 2, countPageViews(events))
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		raw      string
		expected string
	}{
		{"https://agromarket.app/produtos/sementes?page=2", "/produtos/sementes"},
		{"/produtos/", "/produtos"},
		{"/", "/"},
		{"", "/"},
		{"caminho sem estrutura de URL", "caminho sem estrutura de URL"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.expected, normalizePath(tt.raw))
		})
	}
}

func TestTopPages_AgrupaNormalizaEOrdena(t *testing.T) {
	events := []domain.Event{
		pageView("v1", "https://agromarket.app/produtos?ref=home"),
		pageView("v2", "/produtos/"),
		pageView("v1", "/produtos"),
		pageView("v1", "/carrinho"),
		{Name: domain.EventAddToCart, VisitorID: "v1"}, // não é page view
	}

	pages := topPages(events)

	assert.Len(t, pages, 2)
	assert.Equal(t, "/produtos", pages[0].Path)
	assert.Equal(t, 3, pages[0].Views)
	assert.Equal(t, 2, pages[0].UniqueVisitors)
	assert.Equal(t, "/carrinho", pages[1].Path)
}

func TestTopPages_LimiteDeDez(t *testing.T) {
	events := make([]domain.Event, 0, 15)
	paths := []string{"/a", "/b", "/c", "/d", "/e", "/f", "/g", "/h", "/i", "/j", "/k", "/l"}
	for _, path := range paths {
		events = append(events, pageView("v1", path))
	}

	assert.Len(t, topPages(events), 10)
}

func TestBreakdownByProperty_BucketUnknownEVisitantesDistintos(t *testing.T) {
	events := []domain.Event{
		{Name: domain.EventPageView, VisitorID: "v1", Properties: map[string]any{domain.PropDevice: "mobile"}},
		{Name: domain.EventPageView, VisitorID: "v1", Properties: map[string]any{domain.PropDevice: "mobile"}},
		{Name: domain.EventPageView, VisitorID: "v2", Properties: map[string]any{domain.PropDevice: "desktop"}},
		{Name: domain.EventAddToCart, VisitorID: "v3"}, // sem propriedade: vai para Unknown
	}

	entries := breakdownByProperty(events, domain.PropDevice)

	assert.Len(t, entries, 3)
	for _, entry := range entries {
		switch entry.Label {
		case "mobile", "desktop", "Unknown":
			assert.Equal(t, 1, entry.Visitors)
		default:
			t.Fatalf("bucket inesperado: %s", entry.Label)
		}
	}
}

func TestBreakdownByProperty_ListaVazia(t *testing.T) {
	entries := breakdownByProperty(nil, domain.PropBrowser)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestDailySeries_SemBuracosEOrdenada(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	events := []domain.Event{
		{Name: domain.EventPageView, VisitorID: "v1", Timestamp: time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)},
		{Name: domain.EventPageView, VisitorID: "v2", Timestamp: time.Date(2024, 1, 2, 11, 0, 0, 0, time.UTC)},
		{Name: domain.EventAddToCart, VisitorID: "v1", Timestamp: time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC)},
	}

	orders := []*domain.Order{
		orderWithItems(
			time.Date(2024, 1, 4, 15, 0, 0, 0, time.UTC),
			&domain.OrderItem{ProductID: 1, Quantity: 2, Price: 25.50},
		),
	}

	series := dailySeries(start, end, events, orders)

	assert.Len(t, series, 5)
	for i, daily := range series {
		assert.Equal(t, start.AddDate(0, 0, i).Format(time.DateOnly), daily.Date)
	}

	// Dia 2: dois page views, dois visitantes (add_to_cart não conta view,
	// mas conta visitante)
	assert.Equal(t, 2, series[1].Views)
	assert.Equal(t, 2, series[1].UniqueVisitors)

	// Dia 4: um pedido de 2 * 25.50
	assert.Equal(t, 1, series[3].Orders)
	assert.Equal(t, 51.0, series[3].Revenue)

	// Dias sem atividade permanecem zerados
	assert.Equal(t, domain.DailyMetric{Date: "2024-01-01"}, series[0])
	assert.Equal(t, domain.DailyMetric{Date: "2024-01-05"}, series[4])
}

func TestDailySeries_JanelaDeUmDia(t *testing.T) {
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	series := dailySeries(day, day, nil, nil)

	assert.Len(t, series, 1)
	assert.Equal(t, "2024-03-10", series[0].Date)
}

func TestTopProducts_AgrupaPorProdutoEOrdenaPorReceita(t *testing.T) {
	orders := []*domain.Order{
		orderWithItems(time.Now(),
			&domain.OrderItem{ProductID: 1, ProductName: "Semente de Milho", Category: "Sementes", Quantity: 2, Price: 30},
			&domain.OrderItem{ProductID: 2, ProductName: "Adubo Orgânico", Category: "Insumos", Quantity: 1, Price: 100},
		),
		orderWithItems(time.Now(),
			&domain.OrderItem{ProductID: 1, ProductName: "Semente de Milho", Category: "Sementes", Quantity: 1, Price: 30},
		),
	}

	products := topProducts(orders)

	assert.Len(t, products, 2)
	assert.Equal(t, "Adubo Orgânico", products[0].ProductName)
	assert.Equal(t, 100.0, products[0].Revenue)
	assert.Equal(t, "Semente de Milho", products[1].ProductName)
	assert.Equal(t, 3, products[1].Quantity)
	assert.Equal(t, 90.0, products[1].Revenue)
}

func TestCategoryRevenue_SomaPorCategoria(t *testing.T) {
	orders := []*domain.Order{
		orderWithItems(time.Now(),
			&domain.OrderItem{ProductID: 1, Category: "Sementes", Quantity: 2, Price: 30},
			&domain.OrderItem{ProductID: 2, Category: "Sementes", Quantity: 1, Price: 40},
			&domain.OrderItem{ProductID: 3, Category: "", Quantity: 1, Price: 10},
		),
	}

	categories := categoryRevenue(orders)

	assert.Len(t, categories, 2)
	assert.Equal(t, "Sementes", categories[0].Category)
	assert.Equal(t, 100.0, categories[0].Revenue)
	assert.Equal(t, "Unknown", categories[1].Category)
}

func TestTotalRevenue_PedidoSemItensValeZero(t *testing.T) {
	orders := []*domain.Order{
		orderWithItems(time.Now()),
		orderWithItems(time.Now(), &domain.OrderItem{ProductID: 1, Quantity: 1, Price: 50}),
	}

	assert.Equal(t, 50.0, totalRevenue(orders))
	assert.Equal(t, 0.0, totalRevenue(nil))
}

func TestGrowthRate_GuardaContraBaseZero(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		previous float64
		expected float64
	}{
		{"base zerada retorna 0 e não infinito", 100, 0, 0},
		{"crescimento de 100%", 100, 50, 100},
		{"queda de 50%", 50, 100, -50},
		{"tudo zerado", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, growthRate(tt.current, tt.previous))
		})
	}
}

func TestConversionRate_GuardaContraZeroPageViews(t *testing.T) {
	assert.Equal(t, 0.0, conversionRate(5, 0))
	assert.Equal(t, 2.0, conversionRate(2, 100))
}

func TestAverageOrderValue_GuardaContraZeroPedidos(t *testing.T) {
	assert.Equal(t, 0.0, averageOrderValue(100, 0))
	assert.Equal(t, 40.0, averageOrderValue(80, 2))
}
