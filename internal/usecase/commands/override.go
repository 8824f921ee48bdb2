package commands

import (
	"context"
	"log/slog"
	"time"

	"templatehub/internal/domain/sale"
	"templatehub/internal/infra"
	"templatehub/internal/pkg/clock"
	"templatehub/internal/pkg/errs"
	"templatehub/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrOverrideTargetRequired = errs.New("sale id or customer email required")
	ErrInvalidGithubUsername  = errs.New("invalid github username")
)

type OverrideGithubUsernameRequest struct {
	SaleID         *uuid.UUID
	CustomerEmail  *string
	GithubUsername string
	Retry          bool
	OverriddenBy   string
}

type OverrideResult struct {
	SaleID              uuid.UUID
	GithubUsername      string
	CustomerUpdated     bool
	Retried             bool
	GithubAccessGranted bool
	GithubTeamID        *string
}

type OverrideCommands interface {
	OverrideGithubUsername(ctx context.Context, req OverrideGithubUsernameRequest) (*OverrideResult, error)
}

type overrideUseCaseImpl struct {
	uow     shared.UnitOfWork
	grantor AccessGrantor
	clock   clock.Clock
}

func NewOverrideCommands(uow shared.UnitOfWork, grantor AccessGrantor, clk clock.Clock) OverrideCommands {
	return &overrideUseCaseImpl{uow: uow, grantor: grantor, clock: clk}
}

// OverrideGithubUsername corrects a wrong or missing GitHub username after
// fulfillment, and unless disabled re-attempts the access grant. Basic never
// retries: that tier carries no repository access.
func (uc *overrideUseCaseImpl) OverrideGithubUsername(ctx context.Context, req OverrideGithubUsernameRequest) (*OverrideResult, error) {
	if req.SaleID == nil && req.CustomerEmail == nil {
		return nil, ErrOverrideTargetRequired
	}

	username, err := sale.NewGithubUsername(req.GithubUsername)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidGithubUsername)
	}
	normalized := username.Value()

	var (
		snap            *shared.SaleSnapshot
		customerUpdated bool
	)

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		s, err := uc.findSale(ctx, tx, req)
		if err != nil {
			return err
		}

		audit := map[string]any{
			"githubUsernameOverriddenBy": req.OverriddenBy,
			"githubUsernameOverriddenAt": uc.clock.Now().UTC().Format(time.RFC3339),
		}

		if err := tx.Sales().SetGithubUsername(ctx, tx.DB(), s.ID, normalized, audit); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		// A customer record only exists once fulfillment succeeded; its
		// absence is not an error here.
		if _, err := tx.Customers().FindBySaleID(ctx, tx.DB(), s.ID); err != nil {
			if !infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
		} else {
			if err := tx.Customers().SetGithubUsername(ctx, tx.DB(), s.ID, normalized, audit); err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
			customerUpdated = true
		}

		snap = s
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := &OverrideResult{
		SaleID:          snap.ID,
		GithubUsername:  normalized,
		CustomerUpdated: customerUpdated,
	}

	if !req.Retry || !snap.Package.RequiresRepoAccess() {
		return result, nil
	}

	result.Retried = true
	grantOutcome, grantErr := uc.grantor.Grant(ctx, AccessGrant{
		Email:          snap.Email,
		Package:        snap.Package,
		SaleID:         snap.ID,
		GithubUsername: &normalized,
	})
	if grantErr != nil {
		slog.Warn("github access retry failed",
			"sale_id", snap.ID, "error", grantErr.Error())
		return result, nil
	}
	result.GithubAccessGranted = grantOutcome.Success
	result.GithubTeamID = grantOutcome.TeamID
	return result, nil
}

// Lookup policy: exact sale id wins; otherwise the most recent sale matching
// the email on the sale itself or its customer record.
func (uc *overrideUseCaseImpl) findSale(ctx context.Context, tx shared.Tx, req OverrideGithubUsernameRequest) (*shared.SaleSnapshot, error) {
	var (
		s   *shared.SaleSnapshot
		err error
	)
	if req.SaleID != nil {
		s, err = tx.Sales().FindByIDForUpdate(ctx, tx.DB(), *req.SaleID)
	} else {
		s, err = tx.Sales().FindLatestByEmailForUpdate(ctx, tx.DB(), *req.CustomerEmail)
	}
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrSaleNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return s, nil
}
