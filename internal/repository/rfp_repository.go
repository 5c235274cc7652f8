package repository

import (
	"context"
	"time"

	"rfp-desk/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var rfpColumns = []string{"id", "title", "description", "structured_data", "status", "created_at", "updated_at"}

type RFPRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewRFPRepository(db *pgxpool.Pool, logger *zap.Logger) *RFPRepository {
	return &RFPRepository{
		db:     db,
		logger: logger,
	}
}

func insertRFPQuery(rfp *models.RFP) (squirrel.InsertBuilder, error) {
	structured, err := jsonArg(&rfp.StructuredData)
	if err != nil {
		return squirrel.InsertBuilder{}, err
	}
	return squirrel.Insert("rfps").
		Columns(rfpColumns...).
		Values(rfp.ID, rfp.Title, rfp.Description, structured, rfp.Status, rfp.CreatedAt, rfp.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar), nil
}

func selectRFPsQuery() squirrel.SelectBuilder {
	return squirrel.Select(rfpColumns...).
		From("rfps").
		PlaceholderFormat(squirrel.Dollar)
}

func (r *RFPRepository) Create(ctx context.Context, rfp *models.RFP) error {
	query, err := insertRFPQuery(rfp)
	if err != nil {
		return err
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *RFPRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.RFP, error) {
	sql, args, err := selectRFPsQuery().Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}

	rfp, err := scanRFP(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, notFound(err)
	}
	return rfp, nil
}

// List returns the newest RFPs first.
func (r *RFPRepository) List(ctx context.Context, limit uint64) ([]*models.RFP, error) {
	sql, args, err := selectRFPsQuery().OrderBy("created_at DESC").Limit(limit).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rfps []*models.RFP
	for rows.Next() {
		rfp, err := scanRFP(rows)
		if err != nil {
			return nil, err
		}
		rfps = append(rfps, rfp)
	}
	return rfps, rows.Err()
}

func (r *RFPRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.RFPStatus) error {
	sql, args, err := squirrel.Update("rfps").
		Set("status", status).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanRFP(row pgx.Row) (*models.RFP, error) {
	var (
		rfp        models.RFP
		structured []byte
	)
	if err := row.Scan(
		&rfp.ID, &rfp.Title, &rfp.Description, &structured, &rfp.Status, &rfp.CreatedAt, &rfp.UpdatedAt,
	); err != nil {
		return nil, err
	}

	data, err := decodeJSON[models.StructuredRFP](structured)
	if err != nil {
		return nil, err
	}
	if data != nil {
		rfp.StructuredData = *data
	}
	return &rfp, nil
}
