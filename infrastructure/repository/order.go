package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"

	"github.com/agromarket/analytics-api/infrastructure/database/postgres"
	"github.com/agromarket/analytics-api/internal/domain"
)

const (
	ordersTable = "orders o"
)

type OrderRepository interface {
	// GetByDateRange retorna os pedidos criados na janela (inclusiva nas duas
	// pontas, granularidade de dia), com itens e projeção de produto já
	// carregados
	GetByDateRange(ctx context.Context, startDate, endDate time.Time) ([]*domain.Order, error)
}

type orderRepository struct {
	conn postgres.Queryer
}

func NewOrderRepository(conn postgres.Queryer) OrderRepository {
	return &orderRepository{
		conn: conn,
	}
}

func (r *orderRepository) GetByDateRange(ctx context.Context, startDate, endDate time.Time) ([]*domain.Order, error) {
	// Janela inclusiva: created_at >= início do primeiro dia e < início do
	// dia seguinte ao último
	startOfWindow := time.Date(startDate.Year(), startDate.Month(), startDate.Day(), 0, 0, 0, 0, time.UTC)
	endOfWindow := time.Date(endDate.Year(), endDate.Month(), endDate.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)

	query, args, err := squirrel.
		Select(
			"o.id", "o.user_id", "o.created_at",
			"oi.id", "oi.product_id", "p.name", "p.category", "oi.quantity", "oi.price",
		).
		From(ordersTable).
		LeftJoin("order_items oi ON oi.order_id = o.id").
		LeftJoin("products p ON p.id = oi.product_id").
		Where(squirrel.GtOrEq{"o.created_at": startOfWindow}).
		Where(squirrel.Lt{"o.created_at": endOfWindow}).
		OrderBy("o.created_at ASC", "o.id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query de pedidos")
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao executar a query de pedidos")
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0)
	ordersByID := make(map[int64]*domain.Order)

	for rows.Next() {
		var (
			orderID     int64
			userID      int64
			createdAt   time.Time
			itemID      sql.NullInt64
			productID   sql.NullInt64
			productName sql.NullString
			category    sql.NullString
			quantity    sql.NullInt64
			price       sql.NullFloat64
		)

		err := rows.Scan(
			&orderID, &userID, &createdAt,
			&itemID, &productID, &productName, &category, &quantity, &price,
		)
		if err != nil {
			return nil, errors.Wrap(err, "erro ao escanear pedido")
		}

		order, exists := ordersByID[orderID]
		if !exists {
			order = &domain.Order{
				ID:        orderID,
				UserID:    userID,
				CreatedAt: createdAt,
				Items:     make([]*domain.OrderItem, 0),
			}
			ordersByID[orderID] = order
			orders = append(orders, order)
		}

		// LEFT JOIN: pedido sem itens produz colunas de item nulas
		if itemID.Valid {
			order.Items = append(order.Items, &domain.OrderItem{
				ID:          itemID.Int64,
				ProductID:   productID.Int64,
				ProductName: productName.String,
				Category:    category.String,
				Quantity:    int(quantity.Int64),
				Price:       price.Float64,
			})
		}
	}

	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante a iteração de linhas")
	}

	return orders, nil
}
