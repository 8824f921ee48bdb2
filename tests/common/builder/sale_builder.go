//go:build unit || e2e

package builder

import (
	"time"

	"templatehub/internal/domain/sale"
	reqdto "templatehub/internal/handler/dto/request"
	"templatehub/internal/usecase/commands"
	"templatehub/internal/usecase/shared"

	"github.com/google/uuid"
)

type SaleBuilder struct {
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

func NewSaleBuilder() *SaleBuilder {
	name := "Taro Yamada"
	return &SaleBuilder{
		ID:           uuid.New(),
		SessionID:    "cs_test_" + uuid.NewString(),
		Email:        "buyer@example.com",
		Package:      sale.TierPro,
		Status:       sale.StatusCompleted,
		CustomerName: &name,
		Fulfillment:  sale.NewFulfillment(),
		CreatedAt:    time.Now(),
	}
}

func (b *SaleBuilder) With(mutate func(*SaleBuilder)) *SaleBuilder {
	mutate(b)
	return b
}

func (b *SaleBuilder) WithPackage(tier sale.PackageTier) *SaleBuilder {
	b.Package = tier
	return b
}

func (b *SaleBuilder) WithStatus(status sale.Status) *SaleBuilder {
	b.Status = status
	return b
}

func (b *SaleBuilder) WithGithubUsername(username string) *SaleBuilder {
	b.GithubUsername = &username
	return b
}

func (b *SaleBuilder) WithFulfillmentState(state sale.FulfillmentState) *SaleBuilder {
	b.Fulfillment.State = state
	return b
}

func (b *SaleBuilder) BuildSnapshot() *shared.SaleSnapshot {
	return &shared.SaleSnapshot{
		ID:             b.ID,
		SessionID:      b.SessionID,
		Email:          b.Email,
		Package:        b.Package,
		Status:         b.Status,
		CustomerName:   b.CustomerName,
		CompanyName:    b.CompanyName,
		GithubUsername: b.GithubUsername,
		Fulfillment:    b.Fulfillment,
		CreatedAt:      b.CreatedAt,
	}
}

func (b *SaleBuilder) BuildFulfillCommand() commands.FulfillTemplateSaleRequest {
	return commands.FulfillTemplateSaleRequest{
		SessionID:      b.SessionID,
		CustomerEmail:  b.Email,
		CustomerName:   b.CustomerName,
		CompanyName:    b.CompanyName,
		GithubUsername: b.GithubUsername,
	}
}

func (b *SaleBuilder) BuildFulfillRequestDTO() reqdto.FulfillTemplateSaleRequest {
	return reqdto.FulfillTemplateSaleRequest{
		SessionID:      b.SessionID,
		CustomerEmail:  b.Email,
		CustomerName:   b.CustomerName,
		CompanyName:    b.CompanyName,
		GithubUsername: b.GithubUsername,
	}
}
