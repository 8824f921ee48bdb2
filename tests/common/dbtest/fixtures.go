//go:build unit || e2e

package dbtest

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// CreateTestSale inserts a completed-checkout sale row and returns its id.
func CreateTestSale(t *testing.T, db DBLike, sessionID, email, pkg, status string) uuid.UUID {
	t.Helper()

	saleID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx,
		`INSERT INTO sales (id, session_id, email, package, status, customer_name)
		 VALUES ($1, $2, $3, $4, $5, 'Test Buyer')`,
		saleID, sessionID, email, pkg, status)
	require.NoError(t, err)

	return saleID
}

func SetSaleGithubUsername(t *testing.T, db DBLike, saleID uuid.UUID, username string) {
	t.Helper()

	_, err := db.Exec(context.Background(),
		"UPDATE sales SET github_username = $1 WHERE id = $2", username, saleID)
	require.NoError(t, err)
}

func GetSaleFulfillmentState(t *testing.T, db DBLike, saleID uuid.UUID) string {
	t.Helper()

	var state string
	err := db.QueryRow(context.Background(),
		"SELECT fulfillment_state FROM sales WHERE id = $1", saleID).Scan(&state)
	require.NoError(t, err)
	return state
}

func CountCustomersForSale(t *testing.T, db DBLike, saleID uuid.UUID) int {
	t.Helper()

	var count int
	err := db.QueryRow(context.Background(),
		"SELECT COUNT(*) FROM customers WHERE sale_id = $1", saleID).Scan(&count)
	require.NoError(t, err)
	return count
}

// truncates all mutable tables between subtests
func ResetDB(pool *pgxpool.Pool) error {
	_, err := pool.Exec(context.Background(), "TRUNCATE customers, sales CASCADE")
	return err
}
