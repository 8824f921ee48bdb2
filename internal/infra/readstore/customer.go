package readstore

import (
	"context"
	"encoding/json"

	"templatehub/internal/infra"
	"templatehub/internal/infra/db"
	"templatehub/internal/pkg/pgconv"
	"templatehub/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type CustomerReadStore struct {
	db db.DBTX
}

func NewCustomerReadStore(dbtx db.DBTX) *CustomerReadStore {
	return &CustomerReadStore{db: dbtx}
}

func (r *CustomerReadStore) FindBySaleID(ctx context.Context, saleID uuid.UUID) (*queries.CustomerView, error) {
	var (
		view            queries.CustomerView
		githubTeamID    pgtype.Text
		githubUsername  pgtype.Text
		accessExpiresAt pgtype.Timestamptz
		metadata        []byte
		createdAt       pgtype.Timestamptz
		updatedAt       pgtype.Timestamptz
	)

	err := r.db.QueryRow(ctx,
		`SELECT id, sale_id, email, package, license_key, github_team_id,
		        github_username, support_tier, access_expires_at, metadata,
		        created_at, updated_at
		 FROM customers WHERE sale_id = $1`,
		saleID,
	).Scan(
		&view.ID, &view.SaleID, &view.Email, &view.Package, &view.LicenseKey,
		&githubTeamID, &githubUsername, &view.SupportTier, &accessExpiresAt,
		&metadata, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("customer not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find customer", err)
	}

	view.GithubTeamID = pgconv.StringPtrFromPgtype(githubTeamID)
	view.GithubUsername = pgconv.StringPtrFromPgtype(githubUsername)
	view.AccessExpiresAt = pgconv.TimePtrFromPgtype(accessExpiresAt)
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	view.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)

	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &view.Metadata); err != nil {
			return nil, infra.WrapRepoErr("failed to decode customer metadata", err)
		}
	}

	return &view, nil
}
