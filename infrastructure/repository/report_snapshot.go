package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/agromarket/analytics-api/infrastructure/database/postgres"
	"github.com/agromarket/analytics-api/internal/domain"
	"github.com/agromarket/analytics-api/pkg/utils"
)

// ReportSnapshot é um relatório diário persistido pelo job de sincronização.
// Não é cache do caminho de requisição: relatórios ao vivo sempre recomputam.
type ReportSnapshot struct {
	ID        string                  `json:"id"`
	Date      time.Time               `json:"date"`
	Report    *domain.DashboardReport `json:"report"`
	CreatedAt time.Time               `json:"created_at"`
	UpdatedAt time.Time               `json:"updated_at"`
}

type ReportSnapshotRepository interface {
	SaveOrUpdate(ctx context.Context, snapshot *ReportSnapshot) error
	GetLatest(ctx context.Context) (*ReportSnapshot, error)
}

type reportSnapshotRepository struct {
	conn postgres.Queryer
}

func NewReportSnapshotRepository(conn postgres.Queryer) ReportSnapshotRepository {
	return &reportSnapshotRepository{
		conn: conn,
	}
}

func (r *reportSnapshotRepository) SaveOrUpdate(ctx context.Context, snapshot *ReportSnapshot) error {
	if snapshot.ID == "" {
		id, err := utils.GenerateID()
		if err != nil {
			return errors.Wrap(err, "erro ao gerar ID do snapshot")
		}
		snapshot.ID = id
	}

	reportJSON, err := json.Marshal(snapshot.Report)
	if err != nil {
		return errors.Wrap(err, "erro ao serializar relatório para JSON")
	}

	query, args, err := squirrel.StatementBuilder.
		Insert("report_snapshots").
		Columns("id", "date", "report").
		Values(
			snapshot.ID,
			snapshot.Date.Format(time.DateOnly),
			reportJSON,
		).
		Suffix(`
			ON CONFLICT (date) DO UPDATE SET
				report = EXCLUDED.report,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir a query")
	}

	_, err = r.conn.Exec(ctx, query, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return errors.Wrapf(pqErr, "erro no banco de dados (código: %s)", pqErr.Code)
		}
		return errors.Wrap(err, "erro ao executar a query")
	}

	return nil
}

func (r *reportSnapshotRepository) GetLatest(ctx context.Context) (*ReportSnapshot, error) {
	query, args, err := squirrel.
		Select("rs.id, rs.date, rs.report, rs.created_at, rs.updated_at").
		From("report_snapshots rs").
		OrderBy("rs.date DESC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	snapshot := &ReportSnapshot{}
	var reportJSON []byte

	row := r.conn.QueryRow(ctx, query, args...)
	err = row.Scan(
		&snapshot.ID,
		&snapshot.Date,
		&reportJSON,
		&snapshot.CreatedAt,
		&snapshot.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors.Wrap(err, "erro ao escanear snapshot")
	}

	if reportJSON != nil {
		report := &domain.DashboardReport{}
		if err := json.Unmarshal(reportJSON, report); err != nil {
			return nil, errors.Wrap(err, "erro ao deserializar JSON do relatório")
		}
		snapshot.Report = report
	}

	return snapshot, nil
}
