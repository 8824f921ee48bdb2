package request

import (
	"strings"

	"templatehub/internal/pkg/patch"
	"templatehub/internal/usecase/commands"

	"github.com/google/uuid"
)

type FulfillTemplateSaleRequest struct {
	SessionID      string  `json:"session_id" binding:"required"`
	CustomerEmail  string  `json:"customer_email" binding:"required,email"`
	CustomerName   *string `json:"customer_name,omitempty"`
	CompanyName    *string `json:"company_name,omitempty"`
	GithubUsername *string `json:"github_username,omitempty"`
}

func (r FulfillTemplateSaleRequest) ToCommand() commands.FulfillTemplateSaleRequest {
	return commands.FulfillTemplateSaleRequest{
		SessionID:      strings.TrimSpace(r.SessionID),
		CustomerEmail:  strings.TrimSpace(r.CustomerEmail),
		CustomerName:   trimPtr(r.CustomerName),
		CompanyName:    trimPtr(r.CompanyName),
		GithubUsername: trimPtr(r.GithubUsername),
	}
}

type OverrideGithubUsernameRequest struct {
	SaleID         *uuid.UUID `json:"sale_id,omitempty"`
	CustomerEmail  *string    `json:"customer_email,omitempty"`
	GithubUsername string     `json:"github_username" binding:"required"`
	Retry          *bool      `json:"retry,omitempty"`
}

func (r OverrideGithubUsernameRequest) ToCommand(overriddenBy string) commands.OverrideGithubUsernameRequest {
	return commands.OverrideGithubUsernameRequest{
		SaleID:         r.SaleID,
		CustomerEmail:  trimPtr(r.CustomerEmail),
		GithubUsername: strings.TrimSpace(r.GithubUsername),
		Retry:          patch.Coalesce(r.Retry, true),
		OverriddenBy:   overriddenBy,
	}
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
