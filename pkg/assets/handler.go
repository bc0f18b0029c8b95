package assets

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"assetledger/pkg/apperr"
	"assetledger/pkg/response"
)

type AssetHandler struct {
	service AssetService
}

func NewAssetHandler(service AssetService) *AssetHandler {
	return &AssetHandler{service: service}
}

func (h *AssetHandler) RegisterRoutes(router *gin.Engine) {
	g := router.Group("/api/v1/assets")
	g.GET("/filter", h.listAssets)
	g.GET("/:id", h.getAssetByID)
	g.POST("/create", h.createAsset)
	g.PUT("/:id/update", h.updateAsset)
	g.POST("/:id/duplicate", h.duplicateAsset)
}

type assetRequest struct {
	Code              string          `json:"asset_code"`
	Name              string          `json:"asset_name"`
	DepartmentCode    string          `json:"department_code"`
	CategoryCode      string          `json:"category_code"`
	PurchaseDate      time.Time       `json:"purchase_date"`
	LifeTime          int             `json:"life_time"`
	DepreciationRate  decimal.Decimal `json:"depreciation_rate"`
	Quantity          int             `json:"quantity"`
	Cost              decimal.Decimal `json:"cost"`
	DepreciationValue decimal.Decimal `json:"depreciation_value"`
	Description       string          `json:"description"`
	ActionBy          string          `json:"action_by"`
}

func (r assetRequest) toInput() AssetInput {
	return AssetInput{
		Code:              r.Code,
		Name:              r.Name,
		DepartmentCode:    r.DepartmentCode,
		CategoryCode:      r.CategoryCode,
		PurchaseDate:      r.PurchaseDate,
		LifeTime:          r.LifeTime,
		DepreciationRate:  r.DepreciationRate,
		Quantity:          r.Quantity,
		Cost:              r.Cost,
		DepreciationValue: r.DepreciationValue,
		Description:       r.Description,
		ActionBy:          r.ActionBy,
	}
}

// @Summary      List assets with filters and paging
// @Description  Free-text keyword matches code and name; department and category codes match exactly
// @Tags         assets
// @Produce      json
// @Param        keyword          query  string  false  "Keyword matched against code and name"
// @Param        department_code  query  string  false  "Exact department code"
// @Param        category_code    query  string  false  "Exact category code"
// @Param        page_number      query  int     false  "1-based page number"  default(1)
// @Param        page_size        query  int     false  "Rows per page"        default(20)
// @Success      200  {object}  response.APIResponse{data=AssetPage}
// @Failure      500  {object}  response.APIResponse
// @Router       /api/v1/assets/filter [get]
func (h *AssetHandler) listAssets(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page_number", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if err != nil || pageSize <= 0 {
		pageSize = 20
	}

	filter := AssetFilter{
		Keyword:        c.Query("keyword"),
		DepartmentCode: c.Query("department_code"),
		CategoryCode:   c.Query("category_code"),
		PageNumber:     page,
		PageSize:       pageSize,
	}

	result, err := h.service.ListAssets(c.Request.Context(), filter)
	if err != nil {
		response.SendError(c, err)
		return
	}
	response.OK(c, "Assets listed", result)
}

// @Summary      Get asset by id
// @Tags         assets
// @Produce      json
// @Param        id  path  string  true  "Asset ID"
// @Success      200  {object}  response.APIResponse{data=Asset}
// @Failure      404  {object}  response.APIResponse
// @Router       /api/v1/assets/{id} [get]
func (h *AssetHandler) getAssetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.SendError(c, apperr.Validate("Invalid asset id"))
		return
	}

	asset, err := h.service.GetAssetByID(c.Request.Context(), id)
	if err != nil {
		response.SendError(c, err)
		return
	}
	response.OK(c, "Asset fetched", asset)
}

// @Summary      Create an asset
// @Description  Validates the payload, snapshots the referenced department and category, and computes the annual depreciation from the category's rate
// @Tags         assets
// @Accept       json
// @Produce      json
// @Param        request body assetRequest true "Asset"
// @Success      201  {object}  response.APIResponse
// @Failure      400  {object}  response.APIResponse
// @Failure      404  {object}  response.APIResponse
// @Failure      409  {object}  response.APIResponse
// @Router       /api/v1/assets/create [post]
func (h *AssetHandler) createAsset(c *gin.Context) {
	var req assetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, apperr.Validate("Invalid request payload"))
		return
	}

	if _, err := h.service.CreateAsset(c.Request.Context(), req.toInput()); err != nil {
		response.SendError(c, err)
		return
	}
	response.Created(c, "Asset created successfully", nil)
}

// @Summary      Update an asset
// @Description  Re-resolves the department and category snapshots and recomputes the annual depreciation
// @Tags         assets
// @Accept       json
// @Produce      json
// @Param        id  path  string  true  "Asset ID"
// @Param        request body assetRequest true "Asset"
// @Success      200  {object}  response.APIResponse
// @Failure      400  {object}  response.APIResponse
// @Failure      404  {object}  response.APIResponse
// @Router       /api/v1/assets/{id}/update [put]
func (h *AssetHandler) updateAsset(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.SendError(c, apperr.Validate("Invalid asset id"))
		return
	}

	var req assetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, apperr.Validate("Invalid request payload"))
		return
	}

	if _, err := h.service.UpdateAsset(c.Request.Context(), id, req.toInput()); err != nil {
		response.SendError(c, err)
		return
	}
	response.OK(c, "Asset updated successfully", nil)
}

// @Summary      Duplicate an asset
// @Description  Clones the asset under the next generated code with the name suffixed " (Copy)" and dates reset to now
// @Tags         assets
// @Produce      json
// @Param        id  path  string  true  "Source asset ID"
// @Success      201  {object}  response.APIResponse{data=Asset}
// @Failure      404  {object}  response.APIResponse
// @Failure      409  {object}  response.APIResponse
// @Router       /api/v1/assets/{id}/duplicate [post]
func (h *AssetHandler) duplicateAsset(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.SendError(c, apperr.Validate("Invalid asset id"))
		return
	}

	clone, err := h.service.DuplicateAsset(c.Request.Context(), id)
	if err != nil {
		response.SendError(c, err)
		return
	}
	response.Created(c, "Asset duplicated successfully", clone)
}
