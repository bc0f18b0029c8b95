package assets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrAssetNotFound = errors.New("asset not found")

type AssetRepository interface {
	Insert(ctx context.Context, input Asset) (int64, error)
	Update(ctx context.Context, input Asset) (int64, error)
	GetAssetByID(ctx context.Context, id uuid.UUID) (Asset, error)
	CodeExists(ctx context.Context, code string) (bool, error)
	LastCode(ctx context.Context) (string, error)
	ListAssets(ctx context.Context, filter AssetFilter, limit, offset int) ([]AssetListItem, int64, error)
}

type postgresAssetRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresAssetRepository(pool *pgxpool.Pool) AssetRepository {
	return &postgresAssetRepository{pool: pool}
}

func (r *postgresAssetRepository) Insert(ctx context.Context, input Asset) (int64, error) {
	query := `INSERT INTO asset (asset_id, asset_code, asset_name,
				department_id, department_code, department_name,
				category_id, category_code, category_name,
				purchase_date, production_year, tracked_year,
				life_time, depreciation_rate, quantity, cost, depreciation_value,
				description, is_active, created_date, created_by, modified_date, modified_by)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, NULLIF($18, ''), true, $19, NULLIF($20, ''), $21, NULLIF($22, ''))`

	cmd, err := r.pool.Exec(ctx, query,
		input.ID, input.Code, input.Name,
		input.DepartmentID, input.DepartmentCode, input.DepartmentName,
		input.CategoryID, input.CategoryCode, input.CategoryName,
		input.PurchaseDate, input.ProductionYear, input.TrackedYear,
		input.LifeTime, input.DepreciationRate, input.Quantity, input.Cost, input.DepreciationValue,
		input.Description, input.CreatedDate, input.CreatedBy, input.ModifiedDate, input.ModifiedBy)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func (r *postgresAssetRepository) Update(ctx context.Context, input Asset) (int64, error) {
	query := `UPDATE asset SET
				asset_name = $1,
				department_id = $2, department_code = $3, department_name = $4,
				category_id = $5, category_code = $6, category_name = $7,
				purchase_date = $8, production_year = $9, tracked_year = $10,
				life_time = $11, depreciation_rate = $12, quantity = $13, cost = $14, depreciation_value = $15,
				description = NULLIF($16, ''), modified_date = $17, modified_by = NULLIF($18, '')
			  WHERE asset_id = $19 AND is_active`

	cmd, err := r.pool.Exec(ctx, query,
		input.Name,
		input.DepartmentID, input.DepartmentCode, input.DepartmentName,
		input.CategoryID, input.CategoryCode, input.CategoryName,
		input.PurchaseDate, input.ProductionYear, input.TrackedYear,
		input.LifeTime, input.DepreciationRate, input.Quantity, input.Cost, input.DepreciationValue,
		input.Description, input.ModifiedDate, input.ModifiedBy,
		input.ID)
	if err != nil {
		return 0, err
	}
	if cmd.RowsAffected() == 0 {
		return 0, ErrAssetNotFound
	}
	return cmd.RowsAffected(), nil
}

func (r *postgresAssetRepository) GetAssetByID(ctx context.Context, id uuid.UUID) (Asset, error) {
	query := `SELECT asset_id, asset_code, asset_name,
				department_id, department_code, department_name,
				category_id, category_code, category_name,
				purchase_date, production_year, tracked_year,
				life_time, depreciation_rate, quantity, cost, depreciation_value,
				COALESCE(description, ''), is_active,
				created_date, COALESCE(created_by, ''), modified_date, COALESCE(modified_by, '')
			  FROM asset
			  WHERE asset_id = $1 AND is_active`

	var a Asset
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.Code, &a.Name,
		&a.DepartmentID, &a.DepartmentCode, &a.DepartmentName,
		&a.CategoryID, &a.CategoryCode, &a.CategoryName,
		&a.PurchaseDate, &a.ProductionYear, &a.TrackedYear,
		&a.LifeTime, &a.DepreciationRate, &a.Quantity, &a.Cost, &a.DepreciationValue,
		&a.Description, &a.IsActive,
		&a.CreatedDate, &a.CreatedBy, &a.ModifiedDate, &a.ModifiedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Asset{}, ErrAssetNotFound
		}
		return Asset{}, err
	}
	return a, nil
}

func (r *postgresAssetRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM asset WHERE asset_code = $1 AND is_active)", code).Scan(&exists)
	return exists, err
}

// LastCode returns the code of the most recently created asset, or ""
// when the table is empty. Inactive rows are included so the sequence
// never steps back after a delete.
func (r *postgresAssetRepository) LastCode(ctx context.Context) (string, error) {
	var code string
	err := r.pool.QueryRow(ctx, "SELECT asset_code FROM asset ORDER BY created_date DESC LIMIT 1").Scan(&code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", err
	}
	return code, nil
}

// ListAssets computes the total count and fetches one page using the
// same predicate, so totals always agree with the rows returned.
func (r *postgresAssetRepository) ListAssets(ctx context.Context, filter AssetFilter, limit, offset int) ([]AssetListItem, int64, error) {
	whereClauses := []string{"is_active"}
	args := []any{}
	argPos := 1

	if filter.Keyword != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("(asset_code ILIKE $%d OR asset_name ILIKE $%d)", argPos, argPos))
		args = append(args, "%"+filter.Keyword+"%")
		argPos++
	}

	if filter.DepartmentCode != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("department_code = $%d", argPos))
		args = append(args, filter.DepartmentCode)
		argPos++
	}

	if filter.CategoryCode != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("category_code = $%d", argPos))
		args = append(args, filter.CategoryCode)
		argPos++
	}

	whereSQL := "WHERE " + strings.Join(whereClauses, " AND ")

	var total int64
	countQuery := "SELECT COUNT(*) FROM asset " + whereSQL
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT asset_id, asset_code, asset_name,
				department_code, department_name, category_code, category_name,
				quantity, cost, depreciation_value,
				depreciation_value AS accumulated_depreciation,
				(cost - depreciation_value) AS remaining_value,
				purchase_date, production_year, tracked_year, life_time, depreciation_rate
			  FROM asset
			  %s
			  ORDER BY created_date DESC
			  LIMIT $%d OFFSET $%d`, whereSQL, argPos, argPos+1)

	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := make([]AssetListItem, 0)
	for rows.Next() {
		var it AssetListItem
		if err := rows.Scan(
			&it.ID, &it.Code, &it.Name,
			&it.DepartmentCode, &it.DepartmentName, &it.CategoryCode, &it.CategoryName,
			&it.Quantity, &it.Cost, &it.DepreciationValue,
			&it.AccumulatedDepreciation, &it.RemainingValue,
			&it.PurchaseDate, &it.ProductionYear, &it.TrackedYear, &it.LifeTime, &it.DepreciationRate); err != nil {
			return nil, 0, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return items, total, nil
}
