package categories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrCategoryNotFound = errors.New("asset category not found")

type CategoryRepository interface {
	CreateCategory(ctx context.Context, input AssetCategory) (AssetCategory, error)
	UpdateCategory(ctx context.Context, input AssetCategory) (AssetCategory, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	GetCategoryByID(ctx context.Context, id uuid.UUID) (AssetCategory, error)
	GetCategoryByCode(ctx context.Context, code string) (AssetCategory, error)
	ListCategories(ctx context.Context) ([]AssetCategory, error)
}

type postgresCategoryRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresCategoryRepository(pool *pgxpool.Pool) CategoryRepository {
	return &postgresCategoryRepository{pool: pool}
}

const categoryColumns = `category_id, category_code, category_name,
	COALESCE(category_short_name, ''), life_time, depreciation_rate,
	COALESCE(description, ''), is_active, created_date, COALESCE(created_by, ''),
	modified_date, COALESCE(modified_by, '')`

func scanCategory(row pgx.Row) (AssetCategory, error) {
	var cat AssetCategory
	err := row.Scan(&cat.ID, &cat.Code, &cat.Name, &cat.ShortName, &cat.LifeTime,
		&cat.DepreciationRate, &cat.Description, &cat.IsActive,
		&cat.CreatedDate, &cat.CreatedBy, &cat.ModifiedDate, &cat.ModifiedBy)
	return cat, err
}

func (r *postgresCategoryRepository) CreateCategory(ctx context.Context, input AssetCategory) (AssetCategory, error) {
	query := `INSERT INTO asset_category (category_id, category_code, category_name, category_short_name, life_time, depreciation_rate, description, is_active, created_date, created_by, modified_date, modified_by)
			  VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, NULLIF($7, ''), true, NOW(), NULLIF($8, ''), NOW(), NULLIF($8, ''))
			  RETURNING ` + categoryColumns

	row := r.pool.QueryRow(ctx, query, input.ID, input.Code, input.Name, input.ShortName,
		input.LifeTime, input.DepreciationRate, input.Description, input.CreatedBy)
	return scanCategory(row)
}

func (r *postgresCategoryRepository) UpdateCategory(ctx context.Context, input AssetCategory) (AssetCategory, error) {
	query := `UPDATE asset_category
			  SET category_name = $1, category_short_name = NULLIF($2, ''), life_time = $3, depreciation_rate = $4, description = NULLIF($5, ''), modified_date = NOW(), modified_by = NULLIF($6, '')
			  WHERE category_id = $7 AND is_active
			  RETURNING ` + categoryColumns

	row := r.pool.QueryRow(ctx, query, input.Name, input.ShortName, input.LifeTime,
		input.DepreciationRate, input.Description, input.ModifiedBy, input.ID)

	updated, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return AssetCategory{}, ErrCategoryNotFound
		}
		return AssetCategory{}, err
	}
	return updated, nil
}

func (r *postgresCategoryRepository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, "UPDATE asset_category SET is_active = false, modified_date = NOW() WHERE category_id = $1 AND is_active", id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (r *postgresCategoryRepository) GetCategoryByID(ctx context.Context, id uuid.UUID) (AssetCategory, error) {
	query := "SELECT " + categoryColumns + " FROM asset_category WHERE category_id = $1 AND is_active"

	cat, err := scanCategory(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return AssetCategory{}, ErrCategoryNotFound
		}
		return AssetCategory{}, err
	}
	return cat, nil
}

func (r *postgresCategoryRepository) GetCategoryByCode(ctx context.Context, code string) (AssetCategory, error) {
	query := "SELECT " + categoryColumns + " FROM asset_category WHERE category_code = $1 AND is_active"

	cat, err := scanCategory(r.pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return AssetCategory{}, ErrCategoryNotFound
		}
		return AssetCategory{}, err
	}
	return cat, nil
}

func (r *postgresCategoryRepository) ListCategories(ctx context.Context) ([]AssetCategory, error) {
	query := "SELECT " + categoryColumns + " FROM asset_category WHERE is_active ORDER BY category_code"

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]AssetCategory, 0)
	for rows.Next() {
		cat, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, cat)
	}
	return list, rows.Err()
}
