package testhelpers

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var uniqueCounter int64

func nextSuffix() int64 {
	return atomic.AddInt64(&uniqueCounter, 1)
}

// CreateTestDepartment inserts an active department and returns its id
// and code.
func CreateTestDepartment(t *testing.T, db *pgxpool.Pool) (uuid.UUID, string) {
	t.Helper()

	ctx := context.Background()
	suffix := nextSuffix()
	id := uuid.New()
	code := fmt.Sprintf("DEPT%05d", suffix)
	name := fmt.Sprintf("Test Department %d", suffix)

	_, err := db.Exec(ctx,
		"INSERT INTO department (department_id, department_code, department_name) VALUES ($1, $2, $3)",
		id, code, name)
	require.NoError(t, err)
	return id, code
}

// CreateTestCategory inserts an active category with the given useful
// life; the rate is derived from it so the policy invariant holds.
func CreateTestCategory(t *testing.T, db *pgxpool.Pool, lifeTime int) (uuid.UUID, string) {
	t.Helper()

	ctx := context.Background()
	suffix := nextSuffix()
	id := uuid.New()
	code := fmt.Sprintf("CAT%05d", suffix)
	name := fmt.Sprintf("Test Category %d", suffix)
	rate := decimal.NewFromInt(1).Div(decimal.NewFromInt(int64(lifeTime))).Round(5).Mul(decimal.NewFromInt(100))

	_, err := db.Exec(ctx,
		"INSERT INTO asset_category (category_id, category_code, category_name, life_time, depreciation_rate) VALUES ($1, $2, $3, $4, $5)",
		id, code, name, lifeTime, rate)
	require.NoError(t, err)
	return id, code
}

// CreateTestAsset inserts an active asset snapshotting the given
// department and category, and returns its id and code.
func CreateTestAsset(t *testing.T, db *pgxpool.Pool, deptID uuid.UUID, deptCode string, catID uuid.UUID, catCode string) (uuid.UUID, string) {
	t.Helper()

	ctx := context.Background()
	suffix := nextSuffix()
	id := uuid.New()
	code := fmt.Sprintf("TS%05d", suffix)
	name := fmt.Sprintf("Test Asset %d", suffix)

	_, err := db.Exec(ctx,
		`INSERT INTO asset (asset_id, asset_code, asset_name,
			department_id, department_code, department_name,
			category_id, category_code, category_name,
			purchase_date, production_year, tracked_year,
			life_time, depreciation_rate, quantity, cost, depreciation_value)
		 VALUES ($1, $2, $3, $4, $5, 'Test Department', $6, $7, 'Test Category', $8, $9, $9, 5, 20, 1, 1000, 200)`,
		id, code, name, deptID, deptCode, catID, catCode, time.Now(), time.Now().Year())
	require.NoError(t, err)
	return id, code
}
