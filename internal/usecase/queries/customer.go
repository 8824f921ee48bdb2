package queries

import (
	"context"
	"time"

	"templatehub/internal/infra"
	"templatehub/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrCustomerNotFound = errs.New("customer not found")

type CustomerView struct {
	ID              uuid.UUID
	SaleID          uuid.UUID
	Email           string
	Package         string
	LicenseKey      string
	GithubTeamID    *string
	GithubUsername  *string
	SupportTier     string
	AccessExpiresAt *time.Time
	Metadata        map[string]any
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type CustomerReadStore interface {
	FindBySaleID(ctx context.Context, saleID uuid.UUID) (*CustomerView, error)
}

type CustomerQueries interface {
	GetBySaleID(ctx context.Context, saleID uuid.UUID) (*CustomerView, error)
}

type customerQueriesImpl struct {
	store CustomerReadStore
}

func NewCustomerQueries(store CustomerReadStore) CustomerQueries {
	return &customerQueriesImpl{store: store}
}

func (q *customerQueriesImpl) GetBySaleID(ctx context.Context, saleID uuid.UUID) (*CustomerView, error) {
	view, err := q.store.FindBySaleID(ctx, saleID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return view, nil
}
