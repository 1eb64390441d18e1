package reporting

import (
	"math"

	"github.com/agromarket/analytics-api/internal/config"
	"github.com/agromarket/analytics-api/internal/domain"
	"github.com/agromarket/analytics-api/pkg/utils"
)

// Proporções padrão do modo de estimativa. São heurísticas de produto sem
// derivação medida; o estágio Purchase sempre usa a contagem real de pedidos.
var defaultFunnelRates = config.Funnel{
	BrowseRate:      0.75,
	ViewProductRate: 0.60,
	AddToCartRate:   0.18,
	CheckoutRate:    0.12,
}

// eventos que marcam estágios reais do funil
var stageEvents = map[string]string{
	domain.EventProductViewed:     domain.StageViewProduct,
	domain.EventAddToCart:         domain.StageAddToCart,
	domain.EventCheckoutStarted:   domain.StageStartCheckout,
	domain.EventPurchaseCompleted: domain.StagePurchase,
}

// buildFunnel monta o funil de conversão. Modo com dados reais quando há
// eventos de estágio no período; senão cai no modelo proporcional, marcado
// como estimado para o consumidor saber que não é valor medido.
func buildFunnel(events []domain.Event, orderCount int, rates config.Funnel) *domain.Funnel {
	visitors := uniqueVisitors(events)
	rates = normalizeRates(rates)

	counts, hasStageEvents := stageVisitorCounts(events)

	var stageCounts []int
	estimated := !hasStageEvents

	if hasStageEvents {
		// O sistema de pedidos é a fonte da verdade para compras concluídas:
		// o estágio Purchase nunca fica abaixo da contagem de pedidos
		purchase := counts[domain.StagePurchase]
		if orderCount > purchase {
			purchase = orderCount
		}

		stageCounts = []int{
			visitors,
			browsingVisitors(events),
			counts[domain.StageViewProduct],
			counts[domain.StageAddToCart],
			counts[domain.StageStartCheckout],
			purchase,
		}
	} else {
		stageCounts = []int{
			visitors,
			proportionOf(visitors, rates.BrowseRate),
			proportionOf(visitors, rates.ViewProductRate),
			proportionOf(visitors, rates.AddToCartRate),
			proportionOf(visitors, rates.CheckoutRate),
			orderCount,
		}
	}

	stageNames := []string{
		domain.StageVisit,
		domain.StageBrowse,
		domain.StageViewProduct,
		domain.StageAddToCart,
		domain.StageStartCheckout,
		domain.StagePurchase,
	}

	stages := make([]domain.FunnelStage, 0, len(stageNames))
	entryCount := stageCounts[0]

	for i, name := range stageNames {
		count := stageCounts[i]

		stage := domain.FunnelStage{
			Name:  name,
			Users: count,
		}

		if i == 0 {
			// O primeiro estágio é sempre a referência: exatamente 100
			stage.PercentOfEntry = 100
		} else {
			if entryCount > 0 {
				stage.PercentOfEntry = utils.RoundWithTwoDecimalPlace(float64(count) / float64(entryCount) * 100)
			}

			previous := stageCounts[i-1]
			if previous > 0 {
				// Contagens anômalas (estágio posterior maior que o anterior)
				// são toleradas: o drop-off sai negativo, mas nada quebra
				stage.DropOffRate = utils.RoundWithTwoDecimalPlace(float64(previous-count) / float64(previous) * 100)
				stage.ConversionRate = utils.RoundWithTwoDecimalPlace(float64(count) / float64(previous) * 100)
			}
		}

		stages = append(stages, stage)
	}

	return &domain.Funnel{
		Stages:    stages,
		Estimated: estimated,
	}
}

// stageVisitorCounts conta visitantes distintos por estágio real e informa
// se algum evento de estágio existe no período
func stageVisitorCounts(events []domain.Event) (map[string]int, bool) {
	visitorsByStage := make(map[string]map[string]struct{})
	hasStageEvents := false

	for _, event := range events {
		stage, isStageEvent := stageEvents[event.Name]
		if !isStageEvent {
			continue
		}

		hasStageEvents = true
		if visitorsByStage[stage] == nil {
			visitorsByStage[stage] = make(map[string]struct{})
		}
		visitorsByStage[stage][event.VisitorID] = struct{}{}
	}

	counts := make(map[string]int, len(visitorsByStage))
	for stage, visitors := range visitorsByStage {
		counts[stage] = len(visitors)
	}

	return counts, hasStageEvents
}

// browsingVisitors conta os visitantes que seguiram navegando: dois ou mais
// page views no período
func browsingVisitors(events []domain.Event) int {
	pageViewsByVisitor := make(map[string]int)
	for _, event := range events {
		if event.Name == domain.EventPageView {
			pageViewsByVisitor[event.VisitorID]++
		}
	}

	browsing := 0
	for _, views := range pageViewsByVisitor {
		if views >= 2 {
			browsing++
		}
	}
	return browsing
}

func proportionOf(visitors int, rate float64) int {
	return int(math.Round(float64(visitors) * rate))
}

func normalizeRates(rates config.Funnel) config.Funnel {
	if rates.BrowseRate <= 0 {
		rates.BrowseRate = defaultFunnelRates.BrowseRate
	}
	if rates.ViewProductRate <= 0 {
		rates.ViewProductRate = defaultFunnelRates.ViewProductRate
	}
	if rates.AddToCartRate <= 0 {
		rates.AddToCartRate = defaultFunnelRates.AddToCartRate
	}
	if rates.CheckoutRate <= 0 {
		rates.CheckoutRate = defaultFunnelRates.CheckoutRate
	}
	return rates
}
