package repository

import (
	"context"
	"encoding/json"

	"templatehub/internal/domain/sale"
	"templatehub/internal/infra"
	"templatehub/internal/infra/db"
	"templatehub/internal/pkg/pgconv"
	"templatehub/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const saleColumns = `id, session_id, email, package, status, customer_name, company_name,
	github_username, fulfillment_state, fulfilling_started_at, fulfilled_at,
	fulfillment_error, fulfillment_failed_at, created_at`

type SaleRepository struct{}

func NewSaleRepository() *SaleRepository {
	return &SaleRepository{}
}

func (r *SaleRepository) FindBySessionIDForUpdate(ctx context.Context, tx db.DBTX, sessionID string) (*shared.SaleSnapshot, error) {
	row := tx.QueryRow(ctx,
		`SELECT `+saleColumns+` FROM sales WHERE session_id = $1 FOR UPDATE`,
		sessionID,
	)
	return scanSale(row, "sale not found for session")
}

func (r *SaleRepository) FindByIDForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*shared.SaleSnapshot, error) {
	row := tx.QueryRow(ctx,
		`SELECT `+saleColumns+` FROM sales WHERE id = $1 FOR UPDATE`,
		id,
	)
	return scanSale(row, "sale not found")
}

func (r *SaleRepository) FindLatestByEmailForUpdate(ctx context.Context, tx db.DBTX, email string) (*shared.SaleSnapshot, error) {
	// Matches the sale's own email or the linked customer record's email;
	// most recent sale wins.
	row := tx.QueryRow(ctx,
		`SELECT `+qualifySaleColumns("s")+`
		 FROM sales s
		 LEFT JOIN customers c ON c.sale_id = s.id
		 WHERE s.email = $1 OR c.email = $1
		 ORDER BY s.created_at DESC
		 LIMIT 1
		 FOR UPDATE OF s`,
		email,
	)
	return scanSale(row, "sale not found for email")
}

func (r *SaleRepository) UpdateFulfillment(ctx context.Context, tx db.DBTX, saleID uuid.UUID, f sale.Fulfillment, extraMetadata map[string]any) error {
	merged := f.MetadataFlags()
	for k, v := range extraMetadata {
		merged[k] = v
	}
	metadataPatch, err := json.Marshal(merged)
	if err != nil {
		return infra.WrapRepoErr("failed to encode fulfillment metadata", err)
	}

	tag, err := tx.Exec(ctx,
		`UPDATE sales
		 SET fulfillment_state = $2,
		     fulfilling_started_at = $3,
		     fulfilled_at = $4,
		     fulfillment_error = $5,
		     fulfillment_failed_at = $6,
		     metadata = metadata || $7::jsonb
		 WHERE id = $1`,
		saleID,
		string(f.State),
		pgconv.TimePtrToPgtype(f.StartedAt),
		pgconv.TimePtrToPgtype(f.FulfilledAt),
		pgconv.StringPtrToPgtype(f.LastError),
		pgconv.TimePtrToPgtype(f.FailedAt),
		metadataPatch,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update sale fulfillment", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("sale disappeared during fulfillment update", nil, infra.KindNotFound)
	}
	return nil
}

func (r *SaleRepository) SetGithubUsername(ctx context.Context, tx db.DBTX, saleID uuid.UUID, username string, audit map[string]any) error {
	if audit == nil {
		audit = map[string]any{}
	}
	metadataPatch, err := json.Marshal(audit)
	if err != nil {
		return infra.WrapRepoErr("failed to encode override metadata", err)
	}

	tag, err := tx.Exec(ctx,
		`UPDATE sales
		 SET github_username = $2,
		     metadata = metadata || $3::jsonb
		 WHERE id = $1`,
		saleID, username, metadataPatch,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to set sale github username", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("sale not found", nil, infra.KindNotFound)
	}
	return nil
}

func qualifySaleColumns(alias string) string {
	return alias + `.id, ` + alias + `.session_id, ` + alias + `.email, ` + alias + `.package, ` +
		alias + `.status, ` + alias + `.customer_name, ` + alias + `.company_name, ` +
		alias + `.github_username, ` + alias + `.fulfillment_state, ` + alias + `.fulfilling_started_at, ` +
		alias + `.fulfilled_at, ` + alias + `.fulfillment_error, ` + alias + `.fulfillment_failed_at, ` +
		alias + `.created_at`
}

func scanSale(row pgx.Row, notFoundMsg string) (*shared.SaleSnapshot, error) {
	var (
		snap                shared.SaleSnapshot
		pkg, status, state  string
		customerName        pgtype.Text
		companyName         pgtype.Text
		githubUsername      pgtype.Text
		fulfillingStartedAt pgtype.Timestamptz
		fulfilledAt         pgtype.Timestamptz
		fulfillmentError    pgtype.Text
		fulfillmentFailedAt pgtype.Timestamptz
		createdAt           pgtype.Timestamptz
	)

	err := row.Scan(
		&snap.ID, &snap.SessionID, &snap.Email, &pkg, &status,
		&customerName, &companyName, &githubUsername,
		&state, &fulfillingStartedAt, &fulfilledAt,
		&fulfillmentError, &fulfillmentFailedAt, &createdAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(notFoundMsg, err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find sale", err)
	}

	snap.Package = sale.PackageTier(pkg)
	snap.Status = sale.Status(status)
	snap.CustomerName = pgconv.StringPtrFromPgtype(customerName)
	snap.CompanyName = pgconv.StringPtrFromPgtype(companyName)
	snap.GithubUsername = pgconv.StringPtrFromPgtype(githubUsername)
	snap.Fulfillment = sale.Fulfillment{
		State:       sale.FulfillmentState(state),
		StartedAt:   pgconv.TimePtrFromPgtype(fulfillingStartedAt),
		FulfilledAt: pgconv.TimePtrFromPgtype(fulfilledAt),
		LastError:   pgconv.StringPtrFromPgtype(fulfillmentError),
		FailedAt:    pgconv.TimePtrFromPgtype(fulfillmentFailedAt),
	}
	snap.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	return &snap, nil
}
