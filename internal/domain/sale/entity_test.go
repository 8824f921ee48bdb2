//go:build unit

package sale_test

import (
	"testing"
	"time"

	"templatehub/internal/domain/sale"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type claimCase struct {
	name   string
	status sale.Status
	state  sale.FulfillmentState
	errIs  error
}

func TestFulfillment(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("クレーム検証", func(t *testing.T) {
		cases := []claimCase{
			{
				name:   "completed かつ unfulfilled はクレーム成功",
				status: sale.StatusCompleted,
				state:  sale.StateUnfulfilled,
			},
			{
				name:   "pending はクレーム不可",
				status: sale.StatusPending,
				state:  sale.StateUnfulfilled,
				errIs:  sale.ErrNotCompleted,
			},
			{
				name:   "refunded はクレーム不可",
				status: sale.StatusRefunded,
				state:  sale.StateUnfulfilled,
				errIs:  sale.ErrNotCompleted,
			},
			{
				name:   "fulfilled 済みは再クレーム不可",
				status: sale.StatusCompleted,
				state:  sale.StateFulfilled,
				errIs:  sale.ErrAlreadyFulfilled,
			},
			{
				name:   "fulfilling 中はクレーム不可",
				status: sale.StatusCompleted,
				state:  sale.StateFulfilling,
				errIs:  sale.ErrClaimHeld,
			},
		}

		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				f := sale.Fulfillment{State: c.state}
				claimed, err := f.Claim(c.status, now)

				if c.errIs != nil {
					require.ErrorIs(t, err, c.errIs)
					return
				}
				require.NoError(t, err)
				assert.Equal(t, sale.StateFulfilling, claimed.State)
				require.NotNil(t, claimed.StartedAt)
				assert.Equal(t, now, *claimed.StartedAt)
			})
		}
	})

	t.Run("完了遷移", func(t *testing.T) {
		f := sale.NewFulfillment()
		claimed, err := f.Claim(sale.StatusCompleted, now)
		require.NoError(t, err)

		later := now.Add(2 * time.Second)
		done := claimed.Complete(later)

		assert.Equal(t, sale.StateFulfilled, done.State)
		assert.Equal(t, claimed.StartedAt, done.StartedAt)
		require.NotNil(t, done.FulfilledAt)
		assert.Equal(t, later, *done.FulfilledAt)
		assert.Nil(t, done.LastError)
	})

	t.Run("ロールバック遷移", func(t *testing.T) {
		f := sale.NewFulfillment()
		claimed, err := f.Claim(sale.StatusCompleted, now)
		require.NoError(t, err)

		later := now.Add(time.Second)
		released := claimed.Release("db write failed", later)

		assert.Equal(t, sale.StateUnfulfilled, released.State)
		require.NotNil(t, released.LastError)
		assert.Equal(t, "db write failed", *released.LastError)
		require.NotNil(t, released.FailedAt)
		assert.Equal(t, later, *released.FailedAt)

		// 解放後は再クレームできる
		reclaimed, err := released.Claim(sale.StatusCompleted, later.Add(time.Minute))
		require.NoError(t, err)
		assert.Equal(t, sale.StateFulfilling, reclaimed.State)
	})

	t.Run("メタデータミラー", func(t *testing.T) {
		f := sale.NewFulfillment()
		claimed, err := f.Claim(sale.StatusCompleted, now)
		require.NoError(t, err)

		expected := map[string]any{
			"fulfilling":          true,
			"fulfilled":           false,
			"fulfillingStartedAt": "2026-03-01T12:00:00Z",
		}
		if diff := cmp.Diff(expected, claimed.MetadataFlags()); diff != "" {
			t.Errorf("MetadataFlags mismatch (-want +got):\n%s", diff)
		}

		later := now.Add(time.Second)
		released := claimed.Release("boom", later)
		expectedReleased := map[string]any{
			"fulfilling": false,
			"fulfilled":  false,
			"fulfillingError": map[string]any{
				"message":  "boom",
				"failedAt": "2026-03-01T12:00:01Z",
			},
		}
		if diff := cmp.Diff(expectedReleased, released.MetadataFlags()); diff != "" {
			t.Errorf("MetadataFlags mismatch (-want +got):\n%s", diff)
		}
	})
}
