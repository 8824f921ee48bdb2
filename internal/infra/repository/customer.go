package repository

import (
	"context"
	"encoding/json"

	"templatehub/internal/domain/customer"
	"templatehub/internal/domain/sale"
	"templatehub/internal/infra"
	"templatehub/internal/infra/db"
	"templatehub/internal/pkg/pgconv"
	"templatehub/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type CustomerRepository struct{}

func NewCustomerRepository() *CustomerRepository {
	return &CustomerRepository{}
}

func (r *CustomerRepository) Upsert(ctx context.Context, tx db.DBTX, c *customer.Customer) (uuid.UUID, error) {
	metadata, err := json.Marshal(c.Metadata)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to encode customer metadata", err)
	}

	var id uuid.UUID
	err = tx.QueryRow(ctx,
		`INSERT INTO customers (
			id, sale_id, email, package, license_key, download_token,
			github_team_id, github_username, support_tier, access_expires_at, metadata
		 ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 ON CONFLICT (sale_id) DO UPDATE SET
			email = EXCLUDED.email,
			package = EXCLUDED.package,
			license_key = EXCLUDED.license_key,
			download_token = EXCLUDED.download_token,
			github_team_id = EXCLUDED.github_team_id,
			github_username = EXCLUDED.github_username,
			support_tier = EXCLUDED.support_tier,
			access_expires_at = EXCLUDED.access_expires_at,
			metadata = customers.metadata || EXCLUDED.metadata,
			updated_at = now()
		 RETURNING id`,
		uuid.New(), c.SaleID, c.Email, string(c.Package), c.LicenseKey, c.DownloadToken,
		pgconv.StringPtrToPgtype(c.GithubTeamID), pgconv.StringPtrToPgtype(c.GithubUsername),
		string(c.SupportTier), pgconv.TimePtrToPgtype(c.AccessExpiresAt), metadata,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to upsert customer", err)
	}
	return id, nil
}

func (r *CustomerRepository) FindBySaleID(ctx context.Context, tx db.DBTX, saleID uuid.UUID) (*shared.CustomerSnapshot, error) {
	var (
		snap            shared.CustomerSnapshot
		pkg, support    string
		githubTeamID    pgtype.Text
		githubUsername  pgtype.Text
		accessExpiresAt pgtype.Timestamptz
	)

	err := tx.QueryRow(ctx,
		`SELECT id, sale_id, email, package, license_key, github_team_id,
		        github_username, support_tier, access_expires_at
		 FROM customers WHERE sale_id = $1`,
		saleID,
	).Scan(
		&snap.ID, &snap.SaleID, &snap.Email, &pkg, &snap.LicenseKey,
		&githubTeamID, &githubUsername, &support, &accessExpiresAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("customer not found for sale", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find customer by sale", err)
	}

	snap.Package = sale.PackageTier(pkg)
	snap.SupportTier = sale.SupportTier(support)
	snap.GithubTeamID = pgconv.StringPtrFromPgtype(githubTeamID)
	snap.GithubUsername = pgconv.StringPtrFromPgtype(githubUsername)
	snap.AccessExpiresAt = pgconv.TimePtrFromPgtype(accessExpiresAt)
	return &snap, nil
}

func (r *CustomerRepository) SetGithubUsername(ctx context.Context, tx db.DBTX, saleID uuid.UUID, username string, audit map[string]any) error {
	if audit == nil {
		audit = map[string]any{}
	}
	metadataPatch, err := json.Marshal(audit)
	if err != nil {
		return infra.WrapRepoErr("failed to encode override metadata", err)
	}

	tag, err := tx.Exec(ctx,
		`UPDATE customers
		 SET github_username = $2,
		     metadata = metadata || $3::jsonb,
		     updated_at = now()
		 WHERE sale_id = $1`,
		saleID, username, metadataPatch,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to set customer github username", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("customer not found for sale", nil, infra.KindNotFound)
	}
	return nil
}
