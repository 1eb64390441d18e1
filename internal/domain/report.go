package domain

import "time"

// ReportFilters define a janela de datas do relatório (inclusiva nas duas pontas)
type ReportFilters struct {
	StartDate *time.Time
	EndDate   *time.Time
}

// DailyMetric é uma entrada da série diária. Derivada, nunca armazenada:
// a série sempre tem uma entrada por dia do período, com zeros nos dias sem atividade.
type DailyMetric struct {
	Date           string  `json:"date"`
	Views          int     `json:"views"`
	UniqueVisitors int     `json:"unique_visitors"`
	Orders         int     `json:"orders"`
	Revenue        float64 `json:"revenue"`
}

// PageStat agrega visualizações de uma página normalizada
type PageStat struct {
	Path           string `json:"path"`
	Views          int    `json:"views"`
	UniqueVisitors int    `json:"unique_visitors"`
}

// BreakdownEntry é um agrupamento genérico (dispositivo, navegador, país)
// contando visitantes distintos por valor
type BreakdownEntry struct {
	Label    string `json:"label"`
	Visitors int    `json:"visitors"`
}

// ReferrerStat agrega visitantes por origem de tráfego classificada
type ReferrerStat struct {
	Source   string `json:"source"`
	Visitors int    `json:"visitors"`
}

// ProductStat agrega vendas por produto
type ProductStat struct {
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	Category    string  `json:"category"`
	Quantity    int     `json:"quantity"`
	Revenue     float64 `json:"revenue"`
}

// CategoryRevenue agrega a receita por categoria de produto
type CategoryRevenue struct {
	Category string  `json:"category"`
	Revenue  float64 `json:"revenue"`
}

// DashboardReport é o payload completo consumido pelo dashboard.
// Reconstruído a cada requisição; todos os campos estão sempre presentes,
// mesmo zerados quando o serviço de tracking está indisponível.
type DashboardReport struct {
	// Totais principais
	TotalPageViews    int     `json:"total_page_views"`
	UniqueVisitors    int     `json:"unique_visitors"`
	TotalOrders       int     `json:"total_orders"`
	TotalRevenue      float64 `json:"total_revenue"`
	AverageOrderValue float64 `json:"average_order_value"`
	ConversionRate    float64 `json:"conversion_rate"`

	// Contadores da base (não limitados à janela, exceto NewUsers)
	TotalUsers    int `json:"total_users"`
	NewUsers      int `json:"new_users"`
	TotalProducts int `json:"total_products"`

	// Crescimento sobre a janela imediatamente anterior de mesmo tamanho
	RevenueGrowth float64 `json:"revenue_growth"`
	OrdersGrowth  float64 `json:"orders_growth"`

	// Séries e listas
	DailyMetrics    []DailyMetric     `json:"daily_metrics"`
	TopPages        []PageStat        `json:"top_pages"`
	TopProducts     []ProductStat     `json:"top_products"`
	CategoryRevenue []CategoryRevenue `json:"category_revenue"`
	Devices         []BreakdownEntry  `json:"devices"`
	Browsers        []BreakdownEntry  `json:"browsers"`
	Countries       []BreakdownEntry  `json:"countries"`
	Referrers       []ReferrerStat    `json:"referrers"`
	Funnel          *Funnel           `json:"funnel"`

	// Indica se o serviço de tracking respondeu. Quando falso, todas as
	// métricas derivadas de eventos ficam zeradas e apenas os dados
	// transacionais são confiáveis.
	EventDataAvailable bool `json:"event_data_available"`

	Filters *ReportFilters `json:"filters"`
}
