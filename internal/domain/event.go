package domain

import "time"

// Nomes de eventos reconhecidos pelo serviço de tracking
const (
	EventPageView          = "page_view"
	EventProductViewed     = "product_viewed"
	EventAddToCart         = "add_to_cart"
	EventCheckoutStarted   = "checkout_started"
	EventPurchaseCompleted = "purchase_completed"
)

// Chaves de propriedades dos eventos
const (
	PropURL      = "url"
	PropReferrer = "referrer"
	PropDevice   = "device_type"
	PropBrowser  = "browser"
	PropCountry  = "country"
)

// Event representa uma interação normalizada vinda do serviço de tracking.
// Os eventos são somente leitura: nunca são persistidos localmente.
type Event struct {
	Name       string         `json:"name"`
	VisitorID  string         `json:"visitor_id"`
	Timestamp  time.Time      `json:"timestamp"`
	Properties map[string]any `json:"properties"`
}

// Prop retorna o valor string de uma propriedade do evento, ou vazio se ausente
func (e *Event) Prop(key string) string {
	if e.Properties == nil {
		return ""
	}
	if value, ok := e.Properties[key].(string); ok {
		return value
	}
	return ""
}
