//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"templatehub/internal/domain/customer"
	"templatehub/internal/domain/sale"
	"templatehub/internal/pkg/clock"
	"templatehub/internal/usecase/commands"
	"templatehub/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOverrideUC(store *memStore, grantor *fakeGrantor) commands.OverrideCommands {
	return commands.NewOverrideCommands(&memUoW{store: store}, grantor, clock.NewMockClock(fixedNow))
}

func fulfilledCustomer(saleID uuid.UUID, email string) *customer.Customer {
	return customer.NewFromFulfillment(
		saleID, email, sale.TierPro,
		"PRO-AAAAAAAA-BBBBBBBB-CCCCCCCC", "token",
		nil, nil, true, false, fixedNow,
	)
}

func TestOverrideGithubUsername(t *testing.T) {
	ctx := context.Background()

	t.Run("sale_id 指定で売上と顧客の両方を更新", func(t *testing.T) {
		b := builder.NewSaleBuilder().WithPackage(sale.TierPro)
		snap := b.BuildSnapshot()
		store := newMemStore(snap)
		store.customers[snap.ID] = fulfilledCustomer(snap.ID, snap.Email)
		grantor := &fakeGrantor{}
		uc := newOverrideUC(store, grantor)

		result, err := uc.OverrideGithubUsername(ctx, commands.OverrideGithubUsernameRequest{
			SaleID:         &snap.ID,
			GithubUsername: "@NewName",
			Retry:          true,
			OverriddenBy:   "admin-1",
		})
		require.NoError(t, err)

		assert.Equal(t, snap.ID, result.SaleID)
		assert.Equal(t, "newname", result.GithubUsername)
		assert.True(t, result.CustomerUpdated)
		assert.True(t, result.Retried)
		assert.True(t, result.GithubAccessGranted)

		row := store.sales[snap.ID]
		require.NotNil(t, row.snap.GithubUsername)
		assert.Equal(t, "newname", *row.snap.GithubUsername)
		assert.Equal(t, "admin-1", row.metadata["githubUsernameOverriddenBy"])
		assert.Equal(t, fixedNow.Format(time.RFC3339), row.metadata["githubUsernameOverriddenAt"])

		rec := store.customers[snap.ID]
		require.NotNil(t, rec.GithubUsername)
		assert.Equal(t, "newname", *rec.GithubUsername)

		require.Equal(t, 1, grantor.callCount())
		require.NotNil(t, grantor.calls[0].GithubUsername)
		assert.Equal(t, "newname", *grantor.calls[0].GithubUsername)
	})

	t.Run("email 指定は最新の売上を選ぶ", func(t *testing.T) {
		email := "repeat@example.com"
		older := builder.NewSaleBuilder().WithPackage(sale.TierPro)
		older.Email = email
		older.CreatedAt = fixedNow.Add(-48 * time.Hour)
		newer := builder.NewSaleBuilder().WithPackage(sale.TierPro)
		newer.Email = email
		newer.CreatedAt = fixedNow.Add(-time.Hour)

		store := newMemStore(older.BuildSnapshot(), newer.BuildSnapshot())
		uc := newOverrideUC(store, &fakeGrantor{})

		result, err := uc.OverrideGithubUsername(ctx, commands.OverrideGithubUsernameRequest{
			CustomerEmail:  &email,
			GithubUsername: "octocat",
			OverriddenBy:   "admin-1",
		})
		require.NoError(t, err)
		assert.Equal(t, newer.ID, result.SaleID)
		assert.False(t, result.CustomerUpdated)
	})

	t.Run("顧客レコードのメールでも売上を見つけられる", func(t *testing.T) {
		b := builder.NewSaleBuilder().WithPackage(sale.TierPro)
		snap := b.BuildSnapshot()
		store := newMemStore(snap)
		// 売上のメールと違うメールで顧客が作られているケース
		customerEmail := "delivery@example.com"
		store.customers[snap.ID] = fulfilledCustomer(snap.ID, customerEmail)
		uc := newOverrideUC(store, &fakeGrantor{})

		result, err := uc.OverrideGithubUsername(ctx, commands.OverrideGithubUsernameRequest{
			CustomerEmail:  &customerEmail,
			GithubUsername: "octocat",
			OverriddenBy:   "admin-1",
		})
		require.NoError(t, err)
		assert.Equal(t, snap.ID, result.SaleID)
		assert.True(t, result.CustomerUpdated)
	})

	t.Run("retry=false は付与を再試行しない", func(t *testing.T) {
		b := builder.NewSaleBuilder().WithPackage(sale.TierPro)
		snap := b.BuildSnapshot()
		store := newMemStore(snap)
		grantor := &fakeGrantor{}
		uc := newOverrideUC(store, grantor)

		result, err := uc.OverrideGithubUsername(ctx, commands.OverrideGithubUsernameRequest{
			SaleID:         &snap.ID,
			GithubUsername: "octocat",
			Retry:          false,
			OverriddenBy:   "admin-1",
		})
		require.NoError(t, err)
		assert.False(t, result.Retried)
		assert.Equal(t, 0, grantor.callCount())
	})

	t.Run("basic は retry=true でも再試行しない", func(t *testing.T) {
		b := builder.NewSaleBuilder().WithPackage(sale.TierBasic)
		snap := b.BuildSnapshot()
		store := newMemStore(snap)
		grantor := &fakeGrantor{}
		uc := newOverrideUC(store, grantor)

		result, err := uc.OverrideGithubUsername(ctx, commands.OverrideGithubUsernameRequest{
			SaleID:         &snap.ID,
			GithubUsername: "octocat",
			Retry:          true,
			OverriddenBy:   "admin-1",
		})
		require.NoError(t, err)
		assert.False(t, result.Retried)
		assert.Equal(t, 0, grantor.callCount())
	})

	t.Run("再試行の付与失敗でも上書き自体は成功", func(t *testing.T) {
		b := builder.NewSaleBuilder().WithPackage(sale.TierPro)
		snap := b.BuildSnapshot()
		store := newMemStore(snap)
		grantor := &fakeGrantor{err: errors.New("github api down")}
		uc := newOverrideUC(store, grantor)

		result, err := uc.OverrideGithubUsername(ctx, commands.OverrideGithubUsernameRequest{
			SaleID:         &snap.ID,
			GithubUsername: "octocat",
			Retry:          true,
			OverriddenBy:   "admin-1",
		})
		require.NoError(t, err)
		assert.True(t, result.Retried)
		assert.False(t, result.GithubAccessGranted)

		row := store.sales[snap.ID]
		require.NotNil(t, row.snap.GithubUsername)
		assert.Equal(t, "octocat", *row.snap.GithubUsername)
	})

	t.Run("入力検証", func(t *testing.T) {
		store := newMemStore()
		uc := newOverrideUC(store, &fakeGrantor{})

		_, err := uc.OverrideGithubUsername(ctx, commands.OverrideGithubUsernameRequest{
			GithubUsername: "octocat",
		})
		require.ErrorIs(t, err, commands.ErrOverrideTargetRequired)

		saleID := uuid.New()
		_, err = uc.OverrideGithubUsername(ctx, commands.OverrideGithubUsernameRequest{
			SaleID:         &saleID,
			GithubUsername: "-bad-",
		})
		require.ErrorIs(t, err, commands.ErrInvalidGithubUsername)

		_, err = uc.OverrideGithubUsername(ctx, commands.OverrideGithubUsernameRequest{
			SaleID:         &saleID,
			GithubUsername: "octocat",
		})
		require.ErrorIs(t, err, commands.ErrSaleNotFound)
	})
}
