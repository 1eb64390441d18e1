package trackerdomain

// RawEvent é o formato bruto devolvido pela API do serviço de tracking.
// O timestamp pode vir em campos diferentes dependendo do SDK que gerou o
// evento; a resolução de prioridade fica no integrador.
type RawEvent struct {
	Name       string         `json:"event"`
	DistinctID string         `json:"distinct_id"`
	Timestamp  string         `json:"timestamp"`
	CreatedAt  string         `json:"created_at"`
	Properties map[string]any `json:"properties"`
}
