package reporting

import (
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/agromarket/analytics-api/internal/domain"
	"github.com/agromarket/analytics-api/pkg/utils"
)

const topListLimit = 10

// unknownBucket agrupa eventos sem o valor da propriedade, em vez de descartá-los
const unknownBucket = "Unknown"

func countPageViews(events []domain.Event) int {
	total := 0
	for _, event := range events {
		if event.Name == domain.EventPageView {
			total++
		}
	}
	return total
}

// uniqueVisitors conta os visitantes distintos em todos os eventos, não
// apenas page views
func uniqueVisitors(events []domain.Event) int {
	visitors := make(map[string]struct{})
	for _, event := range events {
		if event.VisitorID != "" {
			visitors[event.VisitorID] = struct{}{}
		}
	}
	return len(visitors)
}

// normalizePath reduz a URL de um page view ao caminho, sem query string e
// sem barra final. URL não parseável é usada como veio.
func normalizePath(raw string) string {
	if raw == "" {
		return "/"
	}

	path := raw
	if parsed, err := url.Parse(raw); err == nil && parsed.Path != "" {
		path = parsed.Path
	}

	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}

	return path
}

func topPages(events []domain.Event) []domain.PageStat {
	views := make(map[string]int)
	visitorsByPath := make(map[string]map[string]struct{})

	for _, event := range events {
		if event.Name != domain.EventPageView {
			continue
		}

		path := normalizePath(event.Prop(domain.PropURL))
		views[path]++

		if visitorsByPath[path] == nil {
			visitorsByPath[path] = make(map[string]struct{})
		}
		visitorsByPath[path][event.VisitorID] = struct{}{}
	}

	pages := make([]domain.PageStat, 0, len(views))
	for path, count := range views {
		pages = append(pages, domain.PageStat{
			Path:           path,
			Views:          count,
			UniqueVisitors: len(visitorsByPath[path]),
		})
	}

	sort.Slice(pages, func(i, j int) bool {
		if pages[i].Views != pages[j].Views {
			return pages[i].Views > pages[j].Views
		}
		return pages[i].Path < pages[j].Path
	})

	if len(pages) > topListLimit {
		pages = pages[:topListLimit]
	}

	return pages
}

// breakdownByProperty agrupa todos os eventos pelo valor de uma propriedade,
// contando visitantes distintos por grupo
func breakdownByProperty(events []domain.Event, key string) []domain.BreakdownEntry {
	visitorsByValue := make(map[string]map[string]struct{})

	for _, event := range events {
		value := event.Prop(key)
		if value == "" {
			value = unknownBucket
		}

		if visitorsByValue[value] == nil {
			visitorsByValue[value] = make(map[string]struct{})
		}
		visitorsByValue[value][event.VisitorID] = struct{}{}
	}

	entries := make([]domain.BreakdownEntry, 0, len(visitorsByValue))
	for value, visitors := range visitorsByValue {
		entries = append(entries, domain.BreakdownEntry{
			Label:    value,
			Visitors: len(visitors),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Visitors != entries[j].Visitors {
			return entries[i].Visitors > entries[j].Visitors
		}
		return entries[i].Label < entries[j].Label
	})

	return entries
}

// dailySeries monta a série diária pré-semeando cada dia do período com
// zeros: a saída sempre tem exatamente um registro por dia de calendário,
// em ordem crescente, sem buracos.
func dailySeries(startDate, endDate time.Time, events []domain.Event, orders []*domain.Order) []domain.DailyMetric {
	days := utils.DaysBetween(startDate, endDate)
	if days == 0 {
		return []domain.DailyMetric{}
	}

	series := make([]domain.DailyMetric, 0, days)
	indexByDay := make(map[string]int, days)
	visitorsByDay := make(map[string]map[string]struct{}, days)

	day := utils.TruncateToDay(startDate)
	for i := 0; i < days; i++ {
		key := day.Format(time.DateOnly)
		series = append(series, domain.DailyMetric{Date: key})
		indexByDay[key] = i
		visitorsByDay[key] = make(map[string]struct{})
		day = day.AddDate(0, 0, 1)
	}

	for _, event := range events {
		key := event.Timestamp.Format(time.DateOnly)
		index, ok := indexByDay[key]
		if !ok {
			continue
		}

		if event.Name == domain.EventPageView {
			series[index].Views++
		}
		visitorsByDay[key][event.VisitorID] = struct{}{}
	}

	for key, index := range indexByDay {
		series[index].UniqueVisitors = len(visitorsByDay[key])
	}

	for _, order := range orders {
		key := order.CreatedAt.Format(time.DateOnly)
		index, ok := indexByDay[key]
		if !ok {
			continue
		}

		series[index].Orders++
		series[index].Revenue = utils.RoundWithTwoDecimalPlace(series[index].Revenue + order.Total())
	}

	return series
}

func topProducts(orders []*domain.Order) []domain.ProductStat {
	statsByProduct := make(map[int64]*domain.ProductStat)

	for _, order := range orders {
		for _, item := range order.Items {
			stat, exists := statsByProduct[item.ProductID]
			if !exists {
				stat = &domain.ProductStat{
					ProductID:   item.ProductID,
					ProductName: item.ProductName,
					Category:    item.Category,
				}
				statsByProduct[item.ProductID] = stat
			}

			stat.Quantity += item.Quantity
			stat.Revenue = utils.RoundWithTwoDecimalPlace(stat.Revenue + item.Price*float64(item.Quantity))
		}
	}

	products := make([]domain.ProductStat, 0, len(statsByProduct))
	for _, stat := range statsByProduct {
		products = append(products, *stat)
	}

	sort.Slice(products, func(i, j int) bool {
		if products[i].Revenue != products[j].Revenue {
			return products[i].Revenue > products[j].Revenue
		}
		return products[i].ProductName < products[j].ProductName
	})

	if len(products) > topListLimit {
		products = products[:topListLimit]
	}

	return products
}

// categoryRevenue deriva a receita por categoria somando a receita por
// produto de cada categoria
func categoryRevenue(orders []*domain.Order) []domain.CategoryRevenue {
	revenueByCategory := make(map[string]float64)

	for _, order := range orders {
		for _, item := range order.Items {
			category := item.Category
			if category == "" {
				category = unknownBucket
			}
			revenueByCategory[category] += item.Price * float64(item.Quantity)
		}
	}

	categories := make([]domain.CategoryRevenue, 0, len(revenueByCategory))
	for category, revenue := range revenueByCategory {
		categories = append(categories, domain.CategoryRevenue{
			Category: category,
			Revenue:  utils.RoundWithTwoDecimalPlace(revenue),
		})
	}

	sort.Slice(categories, func(i, j int) bool {
		if categories[i].Revenue != categories[j].Revenue {
			return categories[i].Revenue > categories[j].Revenue
		}
		return categories[i].Category < categories[j].Category
	})

	return categories
}

func totalRevenue(orders []*domain.Order) float64 {
	total := 0.0
	for _, order := range orders {
		total += order.Total()
	}
	return utils.RoundWithTwoDecimalPlace(total)
}

// growthRate calcula a variação percentual sobre a janela anterior. Base
// zerada retorna 0, nunca NaN ou Inf.
func growthRate(current, previous float64) float64 {
	if previous <= 0 {
		return 0
	}
	return utils.RoundWithTwoDecimalPlace((current - previous) / previous * 100)
}

// conversionRate é pedidos / page views * 100, guardado contra divisão por zero
func conversionRate(orders, pageViews int) float64 {
	if pageViews == 0 {
		return 0
	}
	return utils.RoundWithTwoDecimalPlace(float64(orders) / float64(pageViews) * 100)
}

func averageOrderValue(revenue float64, orders int) float64 {
	if orders == 0 {
		return 0
	}
	return utils.RoundWithTwoDecimalPlace(revenue / float64(orders))
}
