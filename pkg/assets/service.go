package assets

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"assetledger/pkg/apperr"
	"assetledger/pkg/categories"
	"assetledger/pkg/departments"
)

// codeRetryAttempts bounds the regenerate-and-retry loop around insert.
// The partial unique index on asset_code is the authoritative guard;
// retrying here resolves concurrent creators computing the same code.
const codeRetryAttempts = 3

type AssetService interface {
	CreateAsset(ctx context.Context, input AssetInput) (int64, error)
	UpdateAsset(ctx context.Context, id uuid.UUID, input AssetInput) (int64, error)
	DuplicateAsset(ctx context.Context, id uuid.UUID) (Asset, error)
	ListAssets(ctx context.Context, filter AssetFilter) (AssetPage, error)
	GetAssetByID(ctx context.Context, id uuid.UUID) (Asset, error)
}

type assetService struct {
	repo     AssetRepository
	deptRepo departments.DepartmentRepository
	catRepo  categories.CategoryRepository
}

func NewAssetService(repo AssetRepository, deptRepo departments.DepartmentRepository, catRepo categories.CategoryRepository) AssetService {
	return &assetService{repo: repo, deptRepo: deptRepo, catRepo: catRepo}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// resolveRefs looks up the department and category snapshots for the
// given codes. Only active records qualify.
func (s *assetService) resolveRefs(ctx context.Context, departmentCode, categoryCode string) (departments.Department, categories.AssetCategory, error) {
	dept, err := s.deptRepo.GetDepartmentByCode(ctx, departmentCode)
	if err != nil {
		if errors.Is(err, departments.ErrDepartmentNotFound) {
			return departments.Department{}, categories.AssetCategory{}, apperr.NotFoundf("Department with code '%s' does not exist", departmentCode)
		}
		return departments.Department{}, categories.AssetCategory{}, err
	}

	cat, err := s.catRepo.GetCategoryByCode(ctx, categoryCode)
	if err != nil {
		if errors.Is(err, categories.ErrCategoryNotFound) {
			return departments.Department{}, categories.AssetCategory{}, apperr.NotFoundf("Category with code '%s' does not exist", categoryCode)
		}
		return departments.Department{}, categories.AssetCategory{}, err
	}

	return dept, cat, nil
}

func (s *assetService) CreateAsset(ctx context.Context, input AssetInput) (int64, error) {
	if err := validateAsset(input, true); err != nil {
		return 0, err
	}

	dept, cat, err := s.resolveRefs(ctx, input.DepartmentCode, input.CategoryCode)
	if err != nil {
		return 0, err
	}

	// Pre-flight courtesy check; the unique index decides under races.
	exists, err := s.repo.CodeExists(ctx, input.Code)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, apperr.Conflictf("Asset code '%s' is already in use", input.Code)
	}

	now := time.Now()
	asset := Asset{
		ID:   uuid.New(),
		Code: input.Code,
		Name: input.Name,

		DepartmentID:   dept.ID,
		DepartmentCode: dept.Code,
		DepartmentName: dept.Name,

		CategoryID:   cat.ID,
		CategoryCode: cat.Code,
		CategoryName: cat.Name,

		PurchaseDate:   input.PurchaseDate,
		ProductionYear: input.PurchaseDate.Year(),
		TrackedYear:    input.PurchaseDate.Year(),

		// Category policy is the source of truth; any caller-supplied
		// depreciation value is recomputed here.
		LifeTime:          cat.LifeTime,
		DepreciationRate:  cat.DepreciationRate,
		Quantity:          input.Quantity,
		Cost:              input.Cost,
		DepreciationValue: input.Cost.Mul(cat.DepreciationRate).Div(oneHundred),

		Description:  input.Description,
		IsActive:     true,
		CreatedDate:  now,
		CreatedBy:    input.ActionBy,
		ModifiedDate: now,
		ModifiedBy:   input.ActionBy,
	}

	rows, err := s.repo.Insert(ctx, asset)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, apperr.Conflictf("Asset code '%s' is already in use", input.Code)
		}
		return 0, err
	}
	return rows, nil
}

func (s *assetService) UpdateAsset(ctx context.Context, id uuid.UUID, input AssetInput) (int64, error) {
	existing, err := s.repo.GetAssetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrAssetNotFound) {
			return 0, apperr.NotFoundf("Asset with id %s does not exist", id)
		}
		return 0, err
	}

	if err := validateAsset(input, false); err != nil {
		return 0, err
	}

	dept, cat, err := s.resolveRefs(ctx, input.DepartmentCode, input.CategoryCode)
	if err != nil {
		return 0, err
	}

	existing.Name = input.Name
	existing.DepartmentID = dept.ID
	existing.DepartmentCode = dept.Code
	existing.DepartmentName = dept.Name
	existing.CategoryID = cat.ID
	existing.CategoryCode = cat.Code
	existing.CategoryName = cat.Name
	existing.PurchaseDate = input.PurchaseDate
	existing.ProductionYear = input.PurchaseDate.Year()
	existing.TrackedYear = input.PurchaseDate.Year()
	existing.LifeTime = cat.LifeTime
	existing.DepreciationRate = cat.DepreciationRate
	existing.Quantity = input.Quantity
	existing.Cost = input.Cost
	existing.DepreciationValue = input.Cost.Mul(cat.DepreciationRate).Div(oneHundred)
	existing.Description = input.Description
	existing.ModifiedDate = time.Now()
	existing.ModifiedBy = input.ActionBy

	rows, err := s.repo.Update(ctx, existing)
	if err != nil {
		if errors.Is(err, ErrAssetNotFound) {
			return 0, apperr.NotFoundf("Asset with id %s does not exist", id)
		}
		return 0, err
	}
	return rows, nil
}

// DuplicateAsset clones the source's business fields under a freshly
// generated code, with the name suffixed " (Copy)" and purchase,
// production and tracked dates reset to now. The generate-insert pair
// is retried on code collision.
func (s *assetService) DuplicateAsset(ctx context.Context, id uuid.UUID) (Asset, error) {
	source, err := s.repo.GetAssetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrAssetNotFound) {
			return Asset{}, apperr.NotFoundf("Asset with id %s does not exist", id)
		}
		return Asset{}, err
	}

	for attempt := 0; attempt < codeRetryAttempts; attempt++ {
		lastCode, err := s.repo.LastCode(ctx)
		if err != nil {
			return Asset{}, err
		}

		code, err := nextAssetCode(lastCode)
		if err != nil {
			return Asset{}, fmt.Errorf("generate asset code: %w", err)
		}

		now := time.Now()
		clone := source
		clone.ID = uuid.New()
		clone.Code = code
		clone.Name = source.Name + " (Copy)"
		clone.PurchaseDate = now
		clone.ProductionYear = now.Year()
		clone.TrackedYear = now.Year()
		clone.CreatedDate = now
		clone.ModifiedDate = now

		if _, err := s.repo.Insert(ctx, clone); err != nil {
			if isUniqueViolation(err) {
				// A concurrent writer took this code; regenerate.
				continue
			}
			return Asset{}, err
		}
		return clone, nil
	}

	return Asset{}, apperr.Conflictf("Could not allocate a unique asset code, please retry")
}

func (s *assetService) ListAssets(ctx context.Context, filter AssetFilter) (AssetPage, error) {
	if filter.PageNumber < 1 {
		filter.PageNumber = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.PageSize > 100 {
		filter.PageSize = 100
	}

	offset := (filter.PageNumber - 1) * filter.PageSize
	items, total, err := s.repo.ListAssets(ctx, filter, filter.PageSize, offset)
	if err != nil {
		return AssetPage{}, err
	}

	totalPages := int((total + int64(filter.PageSize) - 1) / int64(filter.PageSize))

	return AssetPage{
		Items:        items,
		TotalRecords: total,
		Page:         filter.PageNumber,
		PageSize:     filter.PageSize,
		TotalPages:   totalPages,
	}, nil
}

func (s *assetService) GetAssetByID(ctx context.Context, id uuid.UUID) (Asset, error) {
	a, err := s.repo.GetAssetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrAssetNotFound) {
			return Asset{}, apperr.NotFoundf("Asset with id %s does not exist", id)
		}
		return Asset{}, err
	}
	return a, nil
}
