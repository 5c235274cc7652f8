package repository

import (
	"context"

	"rfp-desk/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var proposalColumns = []string{
	"id", "rfp_id", "vendor_id", "email_subject", "email_body",
	"structured_data", "ai_analysis", "extraction_source", "status", "created_at",
}

type ProposalRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewProposalRepository(db *pgxpool.Pool, logger *zap.Logger) *ProposalRepository {
	return &ProposalRepository{
		db:     db,
		logger: logger,
	}
}

func insertProposalQuery(p *models.Proposal) (squirrel.InsertBuilder, error) {
	structured, err := jsonArg(p.StructuredData)
	if err != nil {
		return squirrel.InsertBuilder{}, err
	}
	analysis, err := jsonArg(p.AIAnalysis)
	if err != nil {
		return squirrel.InsertBuilder{}, err
	}
	return squirrel.Insert("proposals").
		Columns(proposalColumns...).
		Values(p.ID, p.RFPID, p.VendorID, p.EmailSubject, p.EmailBody,
			structured, analysis, p.ExtractionSource, p.Status, p.CreatedAt).
		PlaceholderFormat(squirrel.Dollar), nil
}

// listByRFPQuery joins vendors so each row carries the vendor name.
func listByRFPQuery(rfpID uuid.UUID) squirrel.SelectBuilder {
	return squirrel.Select(
		"p.id", "p.rfp_id", "p.vendor_id", "v.name", "p.email_subject", "p.email_body",
		"p.structured_data", "p.ai_analysis", "p.extraction_source", "p.status", "p.created_at",
	).
		From("proposals p").
		Join("vendors v ON v.id = p.vendor_id").
		Where(squirrel.Eq{"p.rfp_id": rfpID}).
		OrderBy("p.created_at ASC").
		PlaceholderFormat(squirrel.Dollar)
}

func (r *ProposalRepository) Create(ctx context.Context, p *models.Proposal) error {
	query, err := insertProposalQuery(p)
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

func (r *ProposalRepository) ListByRFPID(ctx context.Context, rfpID uuid.UUID) ([]*models.Proposal, error) {
	sql, args, err := listByRFPQuery(rfpID).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var proposals []*models.Proposal
	for rows.Next() {
		p, err := scanProposal(rows)
		if err != nil {
			return nil, err
		}
		proposals = append(proposals, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	r.logger.Debug("Proposals loaded", zap.String("rfp_id", rfpID.String()), zap.Int("count", len(proposals)))
	return proposals, nil
}

func scanProposal(row pgx.Row) (*models.Proposal, error) {
	var (
		p                    models.Proposal
		structured, analysis []byte
	)
	if err := row.Scan(
		&p.ID, &p.RFPID, &p.VendorID, &p.VendorName, &p.EmailSubject, &p.EmailBody,
		&structured, &analysis, &p.ExtractionSource, &p.Status, &p.CreatedAt,
	); err != nil {
		return nil, err
	}

	var err error
	if p.StructuredData, err = decodeJSON[models.StructuredProposal](structured); err != nil {
		return nil, err
	}
	if p.AIAnalysis, err = decodeJSON[models.ProposalAnalysis](analysis); err != nil {
		return nil, err
	}
	return &p, nil
}
