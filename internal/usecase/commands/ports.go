package commands

import (
	"context"

	"templatehub/internal/domain/sale"

	"github.com/google/uuid"
)

// CredentialDelivery is everything the delivery email needs.
type CredentialDelivery struct {
	Email         string
	Package       sale.PackageTier
	LicenseKey    string
	DownloadToken string
	DownloadURL   string
	CustomerName  *string
	CompanyName   *string
}

type DeliveryOutcome struct {
	Success bool
}

// DeliveryNotifier sends the credential email. Ordinary delivery failures
// come back as Success=false; an error means the provider itself was
// unreachable. Both are soft for fulfillment.
type DeliveryNotifier interface {
	Send(ctx context.Context, delivery CredentialDelivery) (*DeliveryOutcome, error)
}

type AccessGrant struct {
	Email          string
	Package        sale.PackageTier
	SaleID         uuid.UUID
	GithubUsername *string
}

type GrantOutcome struct {
	Success bool
	TeamID  *string
}

// AccessGrantor grants GitHub team access for paid tiers. May error on
// infrastructure failure; the orchestrator catches and continues, since
// access can be granted manually afterwards via the override path.
type AccessGrantor interface {
	Grant(ctx context.Context, grant AccessGrant) (*GrantOutcome, error)
}
