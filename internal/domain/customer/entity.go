package customer

import (
	"time"

	"templatehub/internal/domain/sale"

	"github.com/google/uuid"
)

// Customer is the durable record of granted access, one per sale. Upserts
// are keyed by SaleID so re-fulfillment updates rather than duplicates.
type Customer struct {
	SaleID          uuid.UUID
	Email           string
	Package         sale.PackageTier
	LicenseKey      string
	DownloadToken   string
	GithubTeamID    *string
	GithubUsername  *string
	SupportTier     sale.SupportTier
	AccessExpiresAt *time.Time
	Metadata        map[string]any
}

// NewFromFulfillment builds the record written when fulfillment commits.
// AccessExpiresAt is stored as an explicit nullable timestamp computed from
// the tier at fulfillment time.
func NewFromFulfillment(
	saleID uuid.UUID,
	email string,
	tier sale.PackageTier,
	licenseKey, downloadToken string,
	githubTeamID, githubUsername *string,
	emailSent, githubAccessGranted bool,
	now time.Time,
) *Customer {
	return &Customer{
		SaleID:          saleID,
		Email:           email,
		Package:         tier,
		LicenseKey:      licenseKey,
		DownloadToken:   downloadToken,
		GithubTeamID:    githubTeamID,
		GithubUsername:  githubUsername,
		SupportTier:     tier.SupportTier(),
		AccessExpiresAt: tier.AccessExpiresAt(now),
		Metadata: map[string]any{
			"emailSent":           emailSent,
			"githubAccessGranted": githubAccessGranted,
			"onboardingCompleted": false,
		},
	}
}
