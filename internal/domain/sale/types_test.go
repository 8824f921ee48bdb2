//go:build unit

package sale_test

import (
	"testing"
	"time"

	"templatehub/internal/domain/sale"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackageTier(t *testing.T) {
	now := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	t.Run("key prefix", func(t *testing.T) {
		assert.Equal(t, "BAS", sale.TierBasic.KeyPrefix())
		assert.Equal(t, "PRO", sale.TierPro.KeyPrefix())
		assert.Equal(t, "ENT", sale.TierEnterprise.KeyPrefix())
		assert.Equal(t, "TPL", sale.PackageTier("x").KeyPrefix())
	})

	t.Run("repo access gating", func(t *testing.T) {
		assert.False(t, sale.TierBasic.RequiresRepoAccess())
		assert.True(t, sale.TierPro.RequiresRepoAccess())
		assert.True(t, sale.TierEnterprise.RequiresRepoAccess())
	})

	t.Run("support tier mapping", func(t *testing.T) {
		assert.Equal(t, sale.SupportEmail, sale.TierBasic.SupportTier())
		assert.Equal(t, sale.SupportPriorityEmail, sale.TierPro.SupportTier())
		assert.Equal(t, sale.SupportDedicated, sale.TierEnterprise.SupportTier())
	})

	t.Run("access expiration", func(t *testing.T) {
		basic := sale.TierBasic.AccessExpiresAt(now)
		require.NotNil(t, basic)
		assert.Equal(t, now.Add(30*24*time.Hour), *basic)

		pro := sale.TierPro.AccessExpiresAt(now)
		require.NotNil(t, pro)
		assert.Equal(t, now.Add(90*24*time.Hour), *pro)

		assert.Nil(t, sale.TierEnterprise.AccessExpiresAt(now))
	})
}
