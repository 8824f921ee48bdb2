package response

import (
	"time"

	"templatehub/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type FulfillmentResponse struct {
	LicenseKey          string     `json:"licenseKey"`
	DownloadToken       string     `json:"downloadToken"`
	DownloadURL         string     `json:"downloadUrl"`
	SupportTier         string     `json:"supportTier"`
	AccessExpiresAt     *time.Time `json:"accessExpiresAt,omitempty"`
	EmailSent           bool       `json:"emailSent"`
	GithubAccessGranted bool       `json:"githubAccessGranted"`
	GithubTeamID        *string    `json:"githubTeamId,omitempty"`
	GithubUsername      *string    `json:"githubUsername,omitempty"`
}

type OverrideGithubUsernameResponse struct {
	SaleID              uuid.UUID `json:"saleId"`
	GithubUsername      string    `json:"githubUsername"`
	CustomerUpdated     bool      `json:"customerUpdated"`
	Retried             bool      `json:"retried"`
	GithubAccessGranted bool      `json:"githubAccessGranted"`
	GithubTeamID        *string   `json:"githubTeamId,omitempty"`
}

func FromFulfillmentResult(result *commands.FulfillmentResult) *FulfillmentResponse {
	res := &FulfillmentResponse{}
	_ = copier.Copy(res, result)
	res.SupportTier = string(result.SupportTier)
	return res
}

func FromOverrideResult(result *commands.OverrideResult) *OverrideGithubUsernameResponse {
	res := &OverrideGithubUsernameResponse{}
	_ = copier.Copy(res, result)
	return res
}
