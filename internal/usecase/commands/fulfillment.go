package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"templatehub/internal/domain/customer"
	"templatehub/internal/domain/license"
	"templatehub/internal/domain/sale"
	"templatehub/internal/infra"
	"templatehub/internal/pkg/clock"
	"templatehub/internal/pkg/config"
	"templatehub/internal/pkg/errs"
	"templatehub/internal/usecase/shared"
)

var (
	ErrSaleNotFound            = errs.New("sale not found")
	ErrSaleNotCompleted        = errs.New("sale is not completed")
	ErrAlreadyFulfilled        = errs.New("sale already fulfilled")
	ErrFulfillmentInProgress   = errs.New("fulfillment already in progress")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type FulfillTemplateSaleRequest struct {
	SessionID      string
	CustomerEmail  string
	CustomerName   *string
	CompanyName    *string
	GithubUsername *string
}

type FulfillmentResult struct {
	LicenseKey          string
	DownloadToken       string
	DownloadURL         string
	SupportTier         sale.SupportTier
	AccessExpiresAt     *time.Time
	EmailSent           bool
	GithubAccessGranted bool
	GithubTeamID        *string
	GithubUsername      *string
}

type FulfillmentCommands interface {
	FulfillTemplateSale(ctx context.Context, req FulfillTemplateSaleRequest) (*FulfillmentResult, error)
}

type fulfillmentUseCaseImpl struct {
	uow      shared.UnitOfWork
	licenses *license.Generator
	notifier DeliveryNotifier
	grantor  AccessGrantor
	cfg      config.FulfillmentConfig
	clock    clock.Clock
}

func NewFulfillmentCommands(
	uow shared.UnitOfWork,
	licenses *license.Generator,
	notifier DeliveryNotifier,
	grantor AccessGrantor,
	cfg config.FulfillmentConfig,
	clk clock.Clock,
) FulfillmentCommands {
	return &fulfillmentUseCaseImpl{
		uow:      uow,
		licenses: licenses,
		notifier: notifier,
		grantor:  grantor,
		cfg:      cfg,
		clock:    clk,
	}
}

// FulfillTemplateSale runs the sale through the claim / side-effect / commit
// state machine. The claim transaction is the linearization point: exactly
// one concurrent caller per sale proceeds past it; everyone else gets a
// terminal error with no side effects.
func (uc *fulfillmentUseCaseImpl) FulfillTemplateSale(ctx context.Context, req FulfillTemplateSaleRequest) (*FulfillmentResult, error) {
	snap, claim, err := uc.claimSale(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}

	result, err := uc.deliverAndCommit(ctx, snap, claim, req)
	if err != nil {
		uc.releaseClaim(ctx, snap, err)
		return nil, err
	}
	return result, nil
}

func (uc *fulfillmentUseCaseImpl) claimSale(ctx context.Context, sessionID string) (*shared.SaleSnapshot, sale.Fulfillment, error) {
	var (
		snap  *shared.SaleSnapshot
		claim sale.Fulfillment
	)

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		s, err := tx.Sales().FindBySessionIDForUpdate(ctx, tx.DB(), sessionID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrSaleNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		claimed, err := s.Fulfillment.Claim(s.Status, uc.clock.Now())
		if err != nil {
			return mapClaimError(err)
		}

		if err := tx.Sales().UpdateFulfillment(ctx, tx.DB(), s.ID, claimed, nil); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		snap = s
		claim = claimed
		return nil
	})
	if err != nil {
		return nil, sale.Fulfillment{}, err
	}
	return snap, claim, nil
}

func mapClaimError(err error) error {
	switch {
	case errors.Is(err, sale.ErrNotCompleted):
		return ErrSaleNotCompleted
	case errors.Is(err, sale.ErrAlreadyFulfilled):
		return ErrAlreadyFulfilled
	case errors.Is(err, sale.ErrClaimHeld):
		return ErrFulfillmentInProgress
	default:
		return err
	}
}

// deliverAndCommit is the side-effecting phase. It runs outside the claim
// lock and may take as long as the gateways need; email and github failures
// are soft and never abort fulfillment.
func (uc *fulfillmentUseCaseImpl) deliverAndCommit(ctx context.Context, snap *shared.SaleSnapshot, claim sale.Fulfillment, req FulfillTemplateSaleRequest) (*FulfillmentResult, error) {
	username := sale.NormalizeGithubUsername(coalescePtr(req.GithubUsername, snap.GithubUsername))
	creds := uc.licenses.Generate(snap.Package)
	downloadURL := uc.downloadURL(creds.DownloadToken)

	deliveryEmail := req.CustomerEmail
	if deliveryEmail == "" {
		deliveryEmail = snap.Email
	}

	emailSent := false
	outcome, err := uc.notifier.Send(ctx, CredentialDelivery{
		Email:         deliveryEmail,
		Package:       snap.Package,
		LicenseKey:    creds.LicenseKey,
		DownloadToken: creds.DownloadToken,
		DownloadURL:   downloadURL,
		CustomerName:  req.CustomerName,
		CompanyName:   req.CompanyName,
	})
	if err != nil {
		slog.Warn("credential email delivery failed",
			"sale_id", snap.ID, "error", err.Error())
	} else {
		emailSent = outcome.Success
		if !outcome.Success {
			slog.Warn("credential email was not delivered", "sale_id", snap.ID)
		}
	}

	accessGranted := false
	var teamID *string
	if snap.Package.RequiresRepoAccess() {
		grantOutcome, grantErr := uc.grantor.Grant(ctx, AccessGrant{
			Email:          deliveryEmail,
			Package:        snap.Package,
			SaleID:         snap.ID,
			GithubUsername: username,
		})
		if grantErr != nil {
			// Fulfillment continues; access can be granted manually through
			// the override path.
			slog.Warn("github access grant failed",
				"sale_id", snap.ID, "error", grantErr.Error())
		} else if grantOutcome.Success {
			accessGranted = true
			teamID = grantOutcome.TeamID
		}
	}

	now := uc.clock.Now()
	fulfilled := claim.Complete(now)
	record := customer.NewFromFulfillment(
		snap.ID, deliveryEmail, snap.Package,
		creds.LicenseKey, creds.DownloadToken,
		teamID, username,
		emailSent, accessGranted,
		now,
	)

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		extra := map[string]any{
			"emailSent":           emailSent,
			"githubAccessGranted": accessGranted,
			"licenseKeyIssued":    true,
		}
		if record.AccessExpiresAt != nil {
			extra["accessExpiresAt"] = record.AccessExpiresAt.UTC().Format(time.RFC3339)
		} else {
			extra["accessExpiresAt"] = nil
		}

		if err := tx.Sales().UpdateFulfillment(ctx, tx.DB(), snap.ID, fulfilled, extra); err != nil {
			return err
		}
		if username != nil {
			if err := tx.Sales().SetGithubUsername(ctx, tx.DB(), snap.ID, *username, nil); err != nil {
				return err
			}
		}
		_, err := tx.Customers().Upsert(ctx, tx.DB(), record)
		return err
	})
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return &FulfillmentResult{
		LicenseKey:          creds.LicenseKey,
		DownloadToken:       creds.DownloadToken,
		DownloadURL:         downloadURL,
		SupportTier:         record.SupportTier,
		AccessExpiresAt:     record.AccessExpiresAt,
		EmailSent:           emailSent,
		GithubAccessGranted: accessGranted,
		GithubTeamID:        teamID,
		GithubUsername:      username,
	}, nil
}

// releaseClaim restores the claim-time state with the failure recorded so a
// retry can claim again. Its own failure is logged, never allowed to mask
// the triggering error.
func (uc *fulfillmentUseCaseImpl) releaseClaim(ctx context.Context, snap *shared.SaleSnapshot, cause error) {
	released := snap.Fulfillment.Release(cause.Error(), uc.clock.Now())

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Sales().UpdateFulfillment(ctx, tx.DB(), snap.ID, released, nil)
	})
	if err != nil {
		slog.Error("failed to release fulfillment claim",
			"sale_id", snap.ID,
			"error", err.Error(),
			"fulfillment_error", cause.Error())
	}
}

func (uc *fulfillmentUseCaseImpl) downloadURL(token string) string {
	return fmt.Sprintf("%s/download?token=%s", strings.TrimSuffix(uc.cfg.AppBaseURL, "/"), token)
}

func coalescePtr(values ...*string) *string {
	for _, v := range values {
		if v != nil && *v != "" {
			return v
		}
	}
	return nil
}
