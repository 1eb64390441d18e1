package domain

import "time"

// OrderItem representa um item de um pedido com o preço praticado na venda
type OrderItem struct {
	ID          int64   `json:"id"`
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	Category    string  `json:"category"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

// Order representa um pedido fechado no marketplace. Imutável para este
// serviço: o checkout é responsabilidade da aplicação principal.
type Order struct {
	ID        int64        `json:"id"`
	UserID    int64        `json:"user_id"`
	CreatedAt time.Time    `json:"created_at"`
	Items     []*OrderItem `json:"items"`
}

// Total calcula a receita do pedido somando price * quantity de cada item.
// O total nunca deve ser lido de uma coluna desnormalizada possivelmente
// desatualizada. Pedido sem itens vale zero.
func (o *Order) Total() float64 {
	total := 0.0
	for _, item := range o.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}
