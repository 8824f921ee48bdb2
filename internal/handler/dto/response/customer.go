package response

import (
	"time"

	"templatehub/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type CustomerResponse struct {
	ID              uuid.UUID      `json:"id"`
	SaleID          uuid.UUID      `json:"saleId"`
	Email           string         `json:"email"`
	Package         string         `json:"package"`
	LicenseKey      string         `json:"licenseKey"`
	GithubTeamID    *string        `json:"githubTeamId,omitempty"`
	GithubUsername  *string        `json:"githubUsername,omitempty"`
	SupportTier     string         `json:"supportTier"`
	AccessExpiresAt *time.Time     `json:"accessExpiresAt,omitempty"`
	Metadata        map[string]any `json:"metadata"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

func FromCustomerView(view *queries.CustomerView) *CustomerResponse {
	res := &CustomerResponse{}
	_ = copier.Copy(res, view)
	return res
}
