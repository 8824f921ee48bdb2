package shared

import (
	"context"
	"time"

	"templatehub/internal/domain/customer"
	"templatehub/internal/domain/sale"
	"templatehub/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
}

type Tx interface {
	Sales() SaleRepository
	Customers() CustomerRepository
	DB() db.DBTX
}

type SaleRepository interface {
	// ForUpdate lookups take the row lock that serializes concurrent claims.
	FindBySessionIDForUpdate(ctx context.Context, tx db.DBTX, sessionID string) (*SaleSnapshot, error)
	FindByIDForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*SaleSnapshot, error)
	// Most recent sale whose own email or linked customer email matches.
	FindLatestByEmailForUpdate(ctx context.Context, tx db.DBTX, email string) (*SaleSnapshot, error)
	// UpdateFulfillment writes the dedicated state columns and merges the
	// legacy flag mirror plus extraMetadata into the metadata map without
	// touching unrelated keys.
	UpdateFulfillment(ctx context.Context, tx db.DBTX, saleID uuid.UUID, f sale.Fulfillment, extraMetadata map[string]any) error
	SetGithubUsername(ctx context.Context, tx db.DBTX, saleID uuid.UUID, username string, audit map[string]any) error
}

type CustomerRepository interface {
	// Upsert is keyed by sale id; fulfilling the same sale twice updates the
	// existing row.
	Upsert(ctx context.Context, tx db.DBTX, c *customer.Customer) (uuid.UUID, error)
	FindBySaleID(ctx context.Context, tx db.DBTX, saleID uuid.UUID) (*CustomerSnapshot, error)
	SetGithubUsername(ctx context.Context, tx db.DBTX, saleID uuid.UUID, username string, audit map[string]any) error
}

// Minimal snapshots for command-side reads
type SaleSnapshot struct {
	ID             uuid.UUID
	SessionID      string
	Email          string
	Package        sale.PackageTier
	Status         sale.Status
	CustomerName   *string
	CompanyName    *string
	GithubUsername *string
	Fulfillment    sale.Fulfillment
	CreatedAt      time.Time
}

type CustomerSnapshot struct {
	ID              uuid.UUID
	SaleID          uuid.UUID
	Email           string
	Package         sale.PackageTier
	LicenseKey      string
	GithubTeamID    *string
	GithubUsername  *string
	SupportTier     sale.SupportTier
	AccessExpiresAt *time.Time
}
