package reporting

import (
	"net/url"
	"sort"
	"strings"

	"github.com/agromarket/analytics-api/internal/domain"
)

const (
	referrerDirect = "Direct"
	referrerOther  = "Other"
)

type referrerRule struct {
	pattern string
	source  string
}

// referrerRules é a tabela ordenada de classificação de origem de tráfego.
// Classificador heurístico de melhor esforço: novos domínios aparecem com o
// tempo, por isso uma tabela e não um enum.
var referrerRules = []referrerRule{
	{"google.", "Google"},
	{"bing.", "Bing"},
	{"yahoo.", "Yahoo"},
	{"duckduckgo.", "DuckDuckGo"},
	{"facebook.", "Facebook"},
	{"fb.com", "Facebook"},
	{"instagram.", "Instagram"},
	{"twitter.", "Twitter/X"},
	{"t.co", "Twitter/X"},
	{"x.com", "Twitter/X"},
	{"linkedin.", "LinkedIn"},
	{"youtube.", "YouTube"},
	{"whatsapp.", "WhatsApp"},
	{"wa.me", "WhatsApp"},
	{"tiktok.", "TikTok"},
	{"pinterest.", "Pinterest"},
	{"telegram.", "Telegram"},
}

// classifyReferrer mapeia um referrer bruto para um nome de origem amigável.
// Ausente vira "Direct"; não reconhecido ou não parseável vira "Other".
func classifyReferrer(referrer string) string {
	if referrer == "" {
		return referrerDirect
	}

	host := referrer
	if parsed, err := url.Parse(referrer); err == nil && parsed.Hostname() != "" {
		host = parsed.Hostname()
	}
	host = strings.ToLower(host)

	for _, rule := range referrerRules {
		if strings.Contains(host, rule.pattern) {
			return rule.source
		}
	}

	return referrerOther
}

// referrerStats agrupa os visitantes distintos de page views por origem
// classificada
func referrerStats(events []domain.Event) []domain.ReferrerStat {
	visitorsBySource := make(map[string]map[string]struct{})

	for _, event := range events {
		if event.Name != domain.EventPageView {
			continue
		}

		source := classifyReferrer(event.Prop(domain.PropReferrer))

		if visitorsBySource[source] == nil {
			visitorsBySource[source] = make(map[string]struct{})
		}
		visitorsBySource[source][event.VisitorID] = struct{}{}
	}

	stats := make([]domain.ReferrerStat, 0, len(visitorsBySource))
	for source, visitors := range visitorsBySource {
		stats = append(stats, domain.ReferrerStat{
			Source:   source,
			Visitors: len(visitors),
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Visitors != stats[j].Visitors {
			return stats[i].Visitors > stats[j].Visitors
		}
		return stats[i].Source < stats[j].Source
	})

	return stats
}
