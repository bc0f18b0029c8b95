package assets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"assetledger/pkg/apperr"
	"assetledger/pkg/response"
)

type mockAssetService struct {
	mock.Mock
}

func (m *mockAssetService) CreateAsset(ctx context.Context, input AssetInput) (int64, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockAssetService) UpdateAsset(ctx context.Context, id uuid.UUID, input AssetInput) (int64, error) {
	args := m.Called(ctx, id, input)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockAssetService) DuplicateAsset(ctx context.Context, id uuid.UUID) (Asset, error) {
	args := m.Called(ctx, id)
	asset, _ := args.Get(0).(Asset)
	return asset, args.Error(1)
}

func (m *mockAssetService) ListAssets(ctx context.Context, filter AssetFilter) (AssetPage, error) {
	args := m.Called(ctx, filter)
	page, _ := args.Get(0).(AssetPage)
	return page, args.Error(1)
}

func (m *mockAssetService) GetAssetByID(ctx context.Context, id uuid.UUID) (Asset, error) {
	args := m.Called(ctx, id)
	asset, _ := args.Get(0).(Asset)
	return asset, args.Error(1)
}

func setupAssetRouter(service AssetService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewAssetHandler(service)
	h.RegisterRoutes(r)
	return r
}

func TestAssetHandler_ListAssets_PassesFilter(t *testing.T) {
	svc := new(mockAssetService)
	r := setupAssetRouter(svc)

	expected := AssetFilter{
		Keyword:        "laptop",
		DepartmentCode: "DEPT01",
		CategoryCode:   "CAT01",
		PageNumber:     2,
		PageSize:       20,
	}
	svc.On("ListAssets", mock.Anything, expected).Return(AssetPage{
		Items: []AssetListItem{}, TotalRecords: 45, Page: 2, PageSize: 20, TotalPages: 3,
	}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/assets/filter?keyword=laptop&department_code=DEPT01&category_code=CAT01&page_number=2&page_size=20", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp response.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	svc.AssertExpectations(t)
}

func TestAssetHandler_ListAssets_DefaultsBadPaging(t *testing.T) {
	svc := new(mockAssetService)
	r := setupAssetRouter(svc)

	svc.On("ListAssets", mock.Anything, mock.MatchedBy(func(f AssetFilter) bool {
		return f.PageNumber == 1 && f.PageSize == 20
	})).Return(AssetPage{}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/assets/filter?page_number=abc&page_size=-1", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestAssetHandler_CreateAsset_Success(t *testing.T) {
	svc := new(mockAssetService)
	r := setupAssetRouter(svc)

	svc.On("CreateAsset", mock.Anything, mock.MatchedBy(func(in AssetInput) bool {
		return in.Code == "TS00001" && in.Name == "Laptop" && in.DepartmentCode == "DEPT01"
	})).Return(int64(1), nil)

	body := `{
		"asset_code": "TS00001",
		"asset_name": "Laptop",
		"department_code": "DEPT01",
		"category_code": "CAT01",
		"purchase_date": "2024-03-01T00:00:00Z",
		"life_time": 5,
		"depreciation_rate": 20,
		"quantity": 1,
		"cost": 1000
	}`

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/assets/create", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp response.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.NotEmpty(t, resp.UserMsg)
	require.NotEmpty(t, resp.DevMsg)
	svc.AssertExpectations(t)
}

func TestAssetHandler_CreateAsset_InvalidPayload(t *testing.T) {
	svc := new(mockAssetService)
	r := setupAssetRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/assets/create", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "CreateAsset", mock.Anything, mock.Anything)
}

func TestAssetHandler_CreateAsset_ValidationViolations(t *testing.T) {
	svc := new(mockAssetService)
	r := setupAssetRouter(svc)

	svc.On("CreateAsset", mock.Anything, mock.Anything).
		Return(int64(0), apperr.Validate("Asset code must not be blank; Quantity must be greater than 0"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/assets/create", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp response.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.False(t, resp.Success)
	require.Contains(t, resp.UserMsg, "Asset code")
	require.Contains(t, resp.UserMsg, "Quantity")
}

func TestAssetHandler_CreateAsset_UnknownDepartment(t *testing.T) {
	svc := new(mockAssetService)
	r := setupAssetRouter(svc)

	svc.On("CreateAsset", mock.Anything, mock.Anything).
		Return(int64(0), apperr.NotFoundf("Department with code '%s' does not exist", "NOPE"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/assets/create", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)

	var resp response.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Contains(t, resp.DevMsg, "NOPE")
}

func TestAssetHandler_UpdateAsset_InvalidID(t *testing.T) {
	svc := new(mockAssetService)
	r := setupAssetRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/assets/not-a-uuid/update", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "UpdateAsset", mock.Anything, mock.Anything, mock.Anything)
}

func TestAssetHandler_UpdateAsset_Success(t *testing.T) {
	svc := new(mockAssetService)
	r := setupAssetRouter(svc)

	id := uuid.New()
	svc.On("UpdateAsset", mock.Anything, id, mock.Anything).Return(int64(1), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/assets/"+id.String()+"/update", strings.NewReader(`{"asset_name":"Laptop"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestAssetHandler_DuplicateAsset_Success(t *testing.T) {
	svc := new(mockAssetService)
	r := setupAssetRouter(svc)

	id := uuid.New()
	clone := Asset{ID: uuid.New(), Code: "TS00043", Name: "Printer (Copy)"}
	svc.On("DuplicateAsset", mock.Anything, id).Return(clone, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/assets/"+id.String()+"/duplicate", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp response.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	svc.AssertExpectations(t)
}

func TestAssetHandler_DuplicateAsset_Conflict(t *testing.T) {
	svc := new(mockAssetService)
	r := setupAssetRouter(svc)

	id := uuid.New()
	svc.On("DuplicateAsset", mock.Anything, id).
		Return(Asset{}, apperr.Conflictf("Could not allocate a unique asset code, please retry"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/assets/"+id.String()+"/duplicate", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusConflict, w.Code)
}

func TestAssetHandler_GetAssetByID_NotFound(t *testing.T) {
	svc := new(mockAssetService)
	r := setupAssetRouter(svc)

	id := uuid.New()
	svc.On("GetAssetByID", mock.Anything, id).
		Return(Asset{}, apperr.NotFoundf("Asset with id %s does not exist", id))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/assets/"+id.String(), nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
}
