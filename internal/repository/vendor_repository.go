package repository

import (
	"context"

	"rfp-desk/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var vendorColumns = []string{"id", "name", "email", "contact_person", "created_at"}

type VendorRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewVendorRepository(db *pgxpool.Pool, logger *zap.Logger) *VendorRepository {
	return &VendorRepository{
		db:     db,
		logger: logger,
	}
}

func (r *VendorRepository) Create(ctx context.Context, vendor *models.Vendor) error {
	query := squirrel.Insert("vendors").
		Columns(vendorColumns...).
		Values(vendor.ID, vendor.Name, vendor.Email, vendor.ContactPerson, vendor.CreatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *VendorRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Vendor, error) {
	query := squirrel.Select(vendorColumns...).
		From("vendors").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var vendor models.Vendor
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&vendor.ID, &vendor.Name, &vendor.Email, &vendor.ContactPerson, &vendor.CreatedAt,
	)
	if err != nil {
		return nil, notFound(err)
	}

	return &vendor, nil
}

func (r *VendorRepository) List(ctx context.Context) ([]*models.Vendor, error) {
	query := squirrel.Select(vendorColumns...).
		From("vendors").
		OrderBy("name ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vendors []*models.Vendor
	for rows.Next() {
		var vendor models.Vendor
		if err := rows.Scan(
			&vendor.ID, &vendor.Name, &vendor.Email, &vendor.ContactPerson, &vendor.CreatedAt,
		); err != nil {
			return nil, err
		}
		vendors = append(vendors, &vendor)
	}

	return vendors, rows.Err()
}
