package assets

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"assetledger/pkg/apperr"
	"assetledger/pkg/categories"
	"assetledger/pkg/departments"
)

type mockAssetRepository struct {
	mock.Mock
}

func (m *mockAssetRepository) Insert(ctx context.Context, input Asset) (int64, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockAssetRepository) Update(ctx context.Context, input Asset) (int64, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockAssetRepository) GetAssetByID(ctx context.Context, id uuid.UUID) (Asset, error) {
	args := m.Called(ctx, id)
	asset, _ := args.Get(0).(Asset)
	return asset, args.Error(1)
}

func (m *mockAssetRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *mockAssetRepository) LastCode(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *mockAssetRepository) ListAssets(ctx context.Context, filter AssetFilter, limit, offset int) ([]AssetListItem, int64, error) {
	args := m.Called(ctx, filter, limit, offset)
	items, _ := args.Get(0).([]AssetListItem)
	return items, args.Get(1).(int64), args.Error(2)
}

type mockDepartmentRepository struct {
	mock.Mock
}

func (m *mockDepartmentRepository) CreateDepartment(ctx context.Context, input departments.Department) (departments.Department, error) {
	args := m.Called(ctx, input)
	d, _ := args.Get(0).(departments.Department)
	return d, args.Error(1)
}

func (m *mockDepartmentRepository) UpdateDepartment(ctx context.Context, input departments.Department) (departments.Department, error) {
	args := m.Called(ctx, input)
	d, _ := args.Get(0).(departments.Department)
	return d, args.Error(1)
}

func (m *mockDepartmentRepository) DeleteDepartment(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockDepartmentRepository) GetDepartmentByID(ctx context.Context, id uuid.UUID) (departments.Department, error) {
	args := m.Called(ctx, id)
	d, _ := args.Get(0).(departments.Department)
	return d, args.Error(1)
}

func (m *mockDepartmentRepository) GetDepartmentByCode(ctx context.Context, code string) (departments.Department, error) {
	args := m.Called(ctx, code)
	d, _ := args.Get(0).(departments.Department)
	return d, args.Error(1)
}

func (m *mockDepartmentRepository) ListDepartments(ctx context.Context) ([]departments.Department, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]departments.Department)
	return list, args.Error(1)
}

type mockCategoryRepository struct {
	mock.Mock
}

func (m *mockCategoryRepository) CreateCategory(ctx context.Context, input categories.AssetCategory) (categories.AssetCategory, error) {
	args := m.Called(ctx, input)
	cat, _ := args.Get(0).(categories.AssetCategory)
	return cat, args.Error(1)
}

func (m *mockCategoryRepository) UpdateCategory(ctx context.Context, input categories.AssetCategory) (categories.AssetCategory, error) {
	args := m.Called(ctx, input)
	cat, _ := args.Get(0).(categories.AssetCategory)
	return cat, args.Error(1)
}

func (m *mockCategoryRepository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockCategoryRepository) GetCategoryByID(ctx context.Context, id uuid.UUID) (categories.AssetCategory, error) {
	args := m.Called(ctx, id)
	cat, _ := args.Get(0).(categories.AssetCategory)
	return cat, args.Error(1)
}

func (m *mockCategoryRepository) GetCategoryByCode(ctx context.Context, code string) (categories.AssetCategory, error) {
	args := m.Called(ctx, code)
	cat, _ := args.Get(0).(categories.AssetCategory)
	return cat, args.Error(1)
}

func (m *mockCategoryRepository) ListCategories(ctx context.Context) ([]categories.AssetCategory, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]categories.AssetCategory)
	return list, args.Error(1)
}

func testDepartment() departments.Department {
	return departments.Department{
		ID:       uuid.New(),
		Code:     "DEPT01",
		Name:     "Accounting",
		IsActive: true,
	}
}

func testCategory(lifeTime int, ratePercent string) categories.AssetCategory {
	return categories.AssetCategory{
		ID:               uuid.New(),
		Code:             "CAT01",
		Name:             "Office Equipment",
		LifeTime:         lifeTime,
		DepreciationRate: decimal.RequireFromString(ratePercent),
		IsActive:         true,
	}
}

func newTestService() (*mockAssetRepository, *mockDepartmentRepository, *mockCategoryRepository, AssetService) {
	repo := new(mockAssetRepository)
	deptRepo := new(mockDepartmentRepository)
	catRepo := new(mockCategoryRepository)
	return repo, deptRepo, catRepo, NewAssetService(repo, deptRepo, catRepo)
}

func TestAssetService_CreateAsset_ComputesDepreciationFromCategory(t *testing.T) {
	repo, deptRepo, catRepo, service := newTestService()

	dept := testDepartment()
	cat := testCategory(5, "20")

	deptRepo.On("GetDepartmentByCode", mock.Anything, "DEPT01").Return(dept, nil)
	catRepo.On("GetCategoryByCode", mock.Anything, "CAT01").Return(cat, nil)
	repo.On("CodeExists", mock.Anything, "TS00001").Return(false, nil)
	repo.On("Insert", mock.Anything, mock.MatchedBy(func(a Asset) bool {
		return a.Code == "TS00001" &&
			a.DepartmentID == dept.ID && a.DepartmentName == "Accounting" &&
			a.CategoryID == cat.ID && a.CategoryName == "Office Equipment" &&
			a.LifeTime == 5 &&
			a.DepreciationValue.Equal(decimal.NewFromInt(200)) &&
			a.ProductionYear == a.PurchaseDate.Year() &&
			a.TrackedYear == a.PurchaseDate.Year() &&
			a.IsActive
	})).Return(int64(1), nil)

	input := validInput()
	// Caller-supplied value must be overridden by the category policy.
	input.DepreciationValue = decimal.NewFromInt(999)

	rows, err := service.CreateAsset(context.Background(), input)

	require.NoError(t, err)
	require.Equal(t, int64(1), rows)
	repo.AssertExpectations(t)
}

func TestAssetService_CreateAsset_UnknownDepartment(t *testing.T) {
	repo, deptRepo, _, service := newTestService()

	deptRepo.On("GetDepartmentByCode", mock.Anything, "DEPT01").
		Return(departments.Department{}, departments.ErrDepartmentNotFound)

	_, err := service.CreateAsset(context.Background(), validInput())

	require.Error(t, err)
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	require.Contains(t, err.Error(), "DEPT01")
	repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestAssetService_CreateAsset_UnknownCategory(t *testing.T) {
	repo, deptRepo, catRepo, service := newTestService()

	deptRepo.On("GetDepartmentByCode", mock.Anything, "DEPT01").Return(testDepartment(), nil)
	catRepo.On("GetCategoryByCode", mock.Anything, "CAT01").
		Return(categories.AssetCategory{}, categories.ErrCategoryNotFound)

	_, err := service.CreateAsset(context.Background(), validInput())

	require.Error(t, err)
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	require.Contains(t, err.Error(), "CAT01")
	repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestAssetService_CreateAsset_CodeTaken(t *testing.T) {
	repo, deptRepo, catRepo, service := newTestService()

	deptRepo.On("GetDepartmentByCode", mock.Anything, "DEPT01").Return(testDepartment(), nil)
	catRepo.On("GetCategoryByCode", mock.Anything, "CAT01").Return(testCategory(5, "20"), nil)
	repo.On("CodeExists", mock.Anything, "TS00001").Return(true, nil)

	_, err := service.CreateAsset(context.Background(), validInput())

	require.Error(t, err)
	require.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestAssetService_CreateAsset_UniqueViolationOnInsert(t *testing.T) {
	repo, deptRepo, catRepo, service := newTestService()

	deptRepo.On("GetDepartmentByCode", mock.Anything, "DEPT01").Return(testDepartment(), nil)
	catRepo.On("GetCategoryByCode", mock.Anything, "CAT01").Return(testCategory(5, "20"), nil)
	repo.On("CodeExists", mock.Anything, "TS00001").Return(false, nil)
	repo.On("Insert", mock.Anything, mock.Anything).Return(int64(0), &pgconn.PgError{Code: "23505"})

	_, err := service.CreateAsset(context.Background(), validInput())

	require.Error(t, err)
	require.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestAssetService_CreateAsset_InvalidInputSkipsLookups(t *testing.T) {
	_, deptRepo, _, service := newTestService()

	_, err := service.CreateAsset(context.Background(), AssetInput{})

	require.Error(t, err)
	require.Equal(t, apperr.KindValidate, apperr.KindOf(err))
	deptRepo.AssertNotCalled(t, "GetDepartmentByCode", mock.Anything, mock.Anything)
}

func TestAssetService_UpdateAsset_NotFound(t *testing.T) {
	repo, _, _, service := newTestService()

	id := uuid.New()
	repo.On("GetAssetByID", mock.Anything, id).Return(Asset{}, ErrAssetNotFound)

	_, err := service.UpdateAsset(context.Background(), id, validInput())

	require.Error(t, err)
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestAssetService_UpdateAsset_RecomputesFromNewCategory(t *testing.T) {
	repo, deptRepo, catRepo, service := newTestService()

	id := uuid.New()
	existing := Asset{ID: id, Code: "TS00001", Name: "Old name", IsActive: true}
	dept := testDepartment()
	cat := testCategory(10, "10")

	repo.On("GetAssetByID", mock.Anything, id).Return(existing, nil)
	deptRepo.On("GetDepartmentByCode", mock.Anything, "DEPT01").Return(dept, nil)
	catRepo.On("GetCategoryByCode", mock.Anything, "CAT01").Return(cat, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(a Asset) bool {
		return a.ID == id &&
			a.Code == "TS00001" && // immutable on update
			a.Name == "Laptop" &&
			a.LifeTime == 10 &&
			a.DepreciationRate.Equal(decimal.NewFromInt(10)) &&
			a.DepreciationValue.Equal(decimal.NewFromInt(200)) // 2000 * 10%
	})).Return(int64(1), nil)

	input := validInput()
	input.LifeTime = 10
	input.DepreciationRate = decimal.NewFromInt(10)
	input.Cost = decimal.NewFromInt(2000)

	rows, err := service.UpdateAsset(context.Background(), id, input)

	require.NoError(t, err)
	require.Equal(t, int64(1), rows)
	repo.AssertExpectations(t)
}

func TestAssetService_DuplicateAsset_ClonesBusinessFields(t *testing.T) {
	repo, _, _, service := newTestService()

	id := uuid.New()
	source := Asset{
		ID:                id,
		Code:              "TS00042",
		Name:              "Printer",
		DepartmentCode:    "DEPT01",
		DepartmentName:    "Accounting",
		CategoryCode:      "CAT01",
		CategoryName:      "Office Equipment",
		PurchaseDate:      time.Now().AddDate(-1, 0, 0),
		ProductionYear:    time.Now().Year() - 1,
		TrackedYear:       time.Now().Year() - 1,
		LifeTime:          5,
		DepreciationRate:  decimal.NewFromInt(20),
		Quantity:          3,
		Cost:              decimal.NewFromInt(1500),
		DepreciationValue: decimal.NewFromInt(300),
		IsActive:          true,
	}

	repo.On("GetAssetByID", mock.Anything, id).Return(source, nil)
	repo.On("LastCode", mock.Anything).Return("TS00042", nil)
	repo.On("Insert", mock.Anything, mock.MatchedBy(func(a Asset) bool {
		return a.ID != id &&
			a.Code == "TS00043" &&
			a.Name == "Printer (Copy)" &&
			a.DepartmentCode == "DEPT01" &&
			a.CategoryCode == "CAT01" &&
			a.Quantity == 3 &&
			a.Cost.Equal(decimal.NewFromInt(1500)) &&
			a.DepreciationValue.Equal(decimal.NewFromInt(300)) &&
			a.ProductionYear == time.Now().Year() &&
			a.TrackedYear == time.Now().Year() &&
			time.Since(a.PurchaseDate) < time.Minute
	})).Return(int64(1), nil)

	clone, err := service.DuplicateAsset(context.Background(), id)

	require.NoError(t, err)
	require.Equal(t, "TS00043", clone.Code)
	require.Equal(t, "Printer (Copy)", clone.Name)
	repo.AssertExpectations(t)
}

func TestAssetService_DuplicateAsset_RetriesOnCodeCollision(t *testing.T) {
	repo, _, _, service := newTestService()

	id := uuid.New()
	repo.On("GetAssetByID", mock.Anything, id).Return(Asset{ID: id, Code: "TS00042", Name: "Printer"}, nil)

	// A concurrent writer claims TS00043 between our read and insert.
	repo.On("LastCode", mock.Anything).Return("TS00042", nil).Once()
	repo.On("Insert", mock.Anything, mock.MatchedBy(func(a Asset) bool { return a.Code == "TS00043" })).
		Return(int64(0), &pgconn.PgError{Code: "23505"}).Once()

	repo.On("LastCode", mock.Anything).Return("TS00043", nil).Once()
	repo.On("Insert", mock.Anything, mock.MatchedBy(func(a Asset) bool { return a.Code == "TS00044" })).
		Return(int64(1), nil).Once()

	clone, err := service.DuplicateAsset(context.Background(), id)

	require.NoError(t, err)
	require.Equal(t, "TS00044", clone.Code)
	repo.AssertExpectations(t)
}

func TestAssetService_DuplicateAsset_GivesUpAfterRetries(t *testing.T) {
	repo, _, _, service := newTestService()

	id := uuid.New()
	repo.On("GetAssetByID", mock.Anything, id).Return(Asset{ID: id, Code: "TS00042"}, nil)
	repo.On("LastCode", mock.Anything).Return("TS00042", nil)
	repo.On("Insert", mock.Anything, mock.Anything).Return(int64(0), &pgconn.PgError{Code: "23505"})

	_, err := service.DuplicateAsset(context.Background(), id)

	require.Error(t, err)
	require.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	repo.AssertNumberOfCalls(t, "Insert", 3)
}

func TestAssetService_DuplicateAsset_MalformedLastCode(t *testing.T) {
	repo, _, _, service := newTestService()

	id := uuid.New()
	repo.On("GetAssetByID", mock.Anything, id).Return(Asset{ID: id, Code: "TS00042"}, nil)
	repo.On("LastCode", mock.Anything).Return("TSXYZ", nil)

	_, err := service.DuplicateAsset(context.Background(), id)

	require.Error(t, err)
	require.Equal(t, apperr.KindUnexpected, apperr.KindOf(err))
	repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestAssetService_DuplicateAsset_SourceMissing(t *testing.T) {
	repo, _, _, service := newTestService()

	id := uuid.New()
	repo.On("GetAssetByID", mock.Anything, id).Return(Asset{}, ErrAssetNotFound)

	_, err := service.DuplicateAsset(context.Background(), id)

	require.Error(t, err)
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestAssetService_ListAssets_Defaults(t *testing.T) {
	repo, _, _, service := newTestService()

	repo.On("ListAssets", mock.Anything, mock.Anything, 20, 0).
		Return([]AssetListItem{}, int64(0), nil)

	page, err := service.ListAssets(context.Background(), AssetFilter{})

	require.NoError(t, err)
	require.Equal(t, 1, page.Page)
	require.Equal(t, 20, page.PageSize)
	require.Equal(t, 0, page.TotalPages)
	repo.AssertExpectations(t)
}

func TestAssetService_ListAssets_OffsetAndTotalPages(t *testing.T) {
	repo, _, _, service := newTestService()

	items := make([]AssetListItem, 20)
	repo.On("ListAssets", mock.Anything, mock.Anything, 20, 20).
		Return(items, int64(45), nil)

	page, err := service.ListAssets(context.Background(), AssetFilter{PageNumber: 2, PageSize: 20})

	require.NoError(t, err)
	require.Len(t, page.Items, 20)
	require.Equal(t, int64(45), page.TotalRecords)
	require.Equal(t, 3, page.TotalPages)
	repo.AssertExpectations(t)
}

func TestAssetService_ListAssets_CapsPageSize(t *testing.T) {
	repo, _, _, service := newTestService()

	repo.On("ListAssets", mock.Anything, mock.Anything, 100, 0).
		Return([]AssetListItem{}, int64(0), nil)

	_, err := service.ListAssets(context.Background(), AssetFilter{PageSize: 500})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestIsUniqueViolation_MatchesDriverError(t *testing.T) {
	driverErr := &pgconn.PgError{Code: "23505", ConstraintName: "ux_asset_code"}

	require.True(t, isUniqueViolation(driverErr))
	require.True(t, isUniqueViolation(fmt.Errorf("insert asset: %w", driverErr)))
	require.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	require.False(t, isUniqueViolation(errors.New("connection reset")))
}
