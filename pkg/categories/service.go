package categories

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"assetledger/pkg/apperr"
)

// rateTolerance bounds the allowed deviation between the stored rate
// (as a fraction) and round(1/lifeTime, 5).
var rateTolerance = decimal.RequireFromString("0.0001")

var oneHundred = decimal.NewFromInt(100)

type CategoryService interface {
	CreateCategory(ctx context.Context, input AssetCategory) (AssetCategory, error)
	UpdateCategory(ctx context.Context, input AssetCategory) (AssetCategory, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	GetCategoryByID(ctx context.Context, id uuid.UUID) (AssetCategory, error)
	ListCategories(ctx context.Context) ([]AssetCategory, error)
}

type categoryService struct {
	repo CategoryRepository
}

func NewCategoryService(repo CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func validateCategory(input AssetCategory, isCreate bool) error {
	var violations []string

	if isCreate && strings.TrimSpace(input.Code) == "" {
		violations = append(violations, "Category code must not be blank")
	}
	if strings.TrimSpace(input.Name) == "" {
		violations = append(violations, "Category name must not be blank")
	}
	if input.LifeTime <= 0 {
		violations = append(violations, "Useful life must be greater than 0")
	} else {
		expected := decimal.NewFromInt(1).Div(decimal.NewFromInt(int64(input.LifeTime))).Round(5)
		fraction := input.DepreciationRate.Div(oneHundred)
		if fraction.Sub(expected).Abs().GreaterThan(rateTolerance) {
			violations = append(violations, "Depreciation rate must equal 1 / useful life")
		}
	}

	if len(violations) > 0 {
		return apperr.Validate(strings.Join(violations, "; "))
	}
	return nil
}

func (s *categoryService) CreateCategory(ctx context.Context, input AssetCategory) (AssetCategory, error) {
	if err := validateCategory(input, true); err != nil {
		return AssetCategory{}, err
	}

	input.ID = uuid.New()
	created, err := s.repo.CreateCategory(ctx, input)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return AssetCategory{}, apperr.Conflictf("Category code '%s' is already in use", input.Code)
		}
		return AssetCategory{}, err
	}
	return created, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, input AssetCategory) (AssetCategory, error) {
	if err := validateCategory(input, false); err != nil {
		return AssetCategory{}, err
	}

	updated, err := s.repo.UpdateCategory(ctx, input)
	if err != nil {
		if errors.Is(err, ErrCategoryNotFound) {
			return AssetCategory{}, apperr.NotFoundf("Category with id %s does not exist", input.ID)
		}
		return AssetCategory{}, err
	}
	return updated, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		if errors.Is(err, ErrCategoryNotFound) {
			return apperr.NotFoundf("Category with id %s does not exist", id)
		}
		return err
	}
	return nil
}

func (s *categoryService) GetCategoryByID(ctx context.Context, id uuid.UUID) (AssetCategory, error) {
	cat, err := s.repo.GetCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrCategoryNotFound) {
			return AssetCategory{}, apperr.NotFoundf("Category with id %s does not exist", id)
		}
		return AssetCategory{}, err
	}
	return cat, nil
}

func (s *categoryService) ListCategories(ctx context.Context) ([]AssetCategory, error) {
	return s.repo.ListCategories(ctx)
}
