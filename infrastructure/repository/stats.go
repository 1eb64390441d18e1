package repository

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"

	"github.com/agromarket/analytics-api/infrastructure/database/postgres"
)

// StatsRepository expõe contadores da base transacional. Os totais são
// "point-in-time" (a base inteira), apenas NewUsers respeita a janela.
type StatsRepository interface {
	CountUsers(ctx context.Context) (int, error)
	CountNewUsers(ctx context.Context, startDate, endDate time.Time) (int, error)
	CountProducts(ctx context.Context) (int, error)
}

type statsRepository struct {
	conn postgres.Queryer
}

func NewStatsRepository(conn postgres.Queryer) StatsRepository {
	return &statsRepository{
		conn: conn,
	}
}

func (r *statsRepository) CountUsers(ctx context.Context) (int, error) {
	return r.count(ctx, squirrel.Select("COUNT(*)").From("users"))
}

func (r *statsRepository) CountNewUsers(ctx context.Context, startDate, endDate time.Time) (int, error) {
	startOfWindow := time.Date(startDate.Year(), startDate.Month(), startDate.Day(), 0, 0, 0, 0, time.UTC)
	endOfWindow := time.Date(endDate.Year(), endDate.Month(), endDate.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)

	return r.count(ctx, squirrel.
		Select("COUNT(*)").
		From("users").
		Where(squirrel.GtOrEq{"created_at": startOfWindow}).
		Where(squirrel.Lt{"created_at": endOfWindow}),
	)
}

func (r *statsRepository) CountProducts(ctx context.Context) (int, error) {
	return r.count(ctx, squirrel.Select("COUNT(*)").From("products"))
}

func (r *statsRepository) count(ctx context.Context, builder squirrel.SelectBuilder) (int, error) {
	query, args, err := builder.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "erro ao construir a query de contagem")
	}

	var total int
	if err := r.conn.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, errors.Wrap(err, "erro ao executar a query de contagem")
	}

	return total, nil
}
