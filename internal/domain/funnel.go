package domain

// Estágios do funil de conversão, na ordem fixa da jornada de compra.
// A ordem nunca muda, mesmo que as contagens brutas sejam anômalas.
const (
	StageVisit         = "Visit"
	StageBrowse        = "Browse"
	StageViewProduct   = "View Product"
	StageAddToCart     = "Add to Cart"
	StageStartCheckout = "Start Checkout"
	StagePurchase      = "Purchase"
)

// FunnelStage é um estágio derivado do funil
type FunnelStage struct {
	Name           string  `json:"name"`
	Users          int     `json:"users"`
	PercentOfEntry float64 `json:"percent_of_entry"`
	DropOffRate    float64 `json:"drop_off_rate"`
	ConversionRate float64 `json:"conversion_rate"`
}

// Funnel é o funil completo. Estimated indica que os estágios intermediários
// foram derivados do modelo proporcional por falta de eventos de estágio,
// e não de dados medidos.
type Funnel struct {
	Stages    []FunnelStage `json:"stages"`
	Estimated bool          `json:"estimated"`
}
