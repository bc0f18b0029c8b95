package categories

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"assetledger/pkg/apperr"
	"assetledger/pkg/response"
)

type CategoryHandler struct {
	service CategoryService
}

func NewCategoryHandler(service CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

func (h *CategoryHandler) RegisterRoutes(router *gin.Engine) {
	g := router.Group("/api/v1/categories")
	g.GET("", h.listCategories)
	g.GET("/:id", h.getCategoryByID)
	g.POST("", h.createCategory)
	g.PUT("/:id", h.updateCategory)
	g.DELETE("/:id", h.deleteCategory)
}

type categoryRequest struct {
	Code             string          `json:"category_code"`
	Name             string          `json:"category_name" binding:"required"`
	ShortName        string          `json:"category_short_name"`
	LifeTime         int             `json:"life_time" binding:"required"`
	DepreciationRate decimal.Decimal `json:"depreciation_rate"`
	Description      string          `json:"description"`
	ActionBy         string          `json:"action_by"`
}

// @Summary      List asset categories
// @Tags         categories
// @Produce      json
// @Success      200  {object}  response.APIResponse{data=[]AssetCategory}
// @Failure      500  {object}  response.APIResponse
// @Router       /api/v1/categories [get]
func (h *CategoryHandler) listCategories(c *gin.Context) {
	list, err := h.service.ListCategories(c.Request.Context())
	if err != nil {
		response.SendError(c, err)
		return
	}
	response.OK(c, "Categories listed", list)
}

// @Summary      Get category by id
// @Tags         categories
// @Produce      json
// @Param        id  path  string  true  "Category ID"
// @Success      200  {object}  response.APIResponse{data=AssetCategory}
// @Failure      404  {object}  response.APIResponse
// @Router       /api/v1/categories/{id} [get]
func (h *CategoryHandler) getCategoryByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.SendError(c, apperr.Validate("Invalid category id"))
		return
	}

	cat, err := h.service.GetCategoryByID(c.Request.Context(), id)
	if err != nil {
		response.SendError(c, err)
		return
	}
	response.OK(c, "Category fetched", cat)
}

// @Summary      Create an asset category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        request body categoryRequest true "Category"
// @Success      201  {object}  response.APIResponse{data=AssetCategory}
// @Failure      400  {object}  response.APIResponse
// @Failure      409  {object}  response.APIResponse
// @Router       /api/v1/categories [post]
func (h *CategoryHandler) createCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, apperr.Validate("Invalid request payload"))
		return
	}

	cat, err := h.service.CreateCategory(c.Request.Context(), AssetCategory{
		Code:             req.Code,
		Name:             req.Name,
		ShortName:        req.ShortName,
		LifeTime:         req.LifeTime,
		DepreciationRate: req.DepreciationRate,
		Description:      req.Description,
		CreatedBy:        req.ActionBy,
	})
	if err != nil {
		response.SendError(c, err)
		return
	}
	response.Created(c, "Category created", cat)
}

// @Summary      Update an asset category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        id  path  string  true  "Category ID"
// @Param        request body categoryRequest true "Category"
// @Success      200  {object}  response.APIResponse{data=AssetCategory}
// @Failure      400  {object}  response.APIResponse
// @Failure      404  {object}  response.APIResponse
// @Router       /api/v1/categories/{id} [put]
func (h *CategoryHandler) updateCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.SendError(c, apperr.Validate("Invalid category id"))
		return
	}

	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, apperr.Validate("Invalid request payload"))
		return
	}

	cat, err := h.service.UpdateCategory(c.Request.Context(), AssetCategory{
		ID:               id,
		Name:             req.Name,
		ShortName:        req.ShortName,
		LifeTime:         req.LifeTime,
		DepreciationRate: req.DepreciationRate,
		Description:      req.Description,
		ModifiedBy:       req.ActionBy,
	})
	if err != nil {
		response.SendError(c, err)
		return
	}
	response.OK(c, "Category updated", cat)
}

// @Summary      Delete an asset category
// @Description  Soft-deletes a category (clears the active flag)
// @Tags         categories
// @Produce      json
// @Param        id  path  string  true  "Category ID"
// @Success      200  {object}  response.APIResponse
// @Failure      404  {object}  response.APIResponse
// @Router       /api/v1/categories/{id} [delete]
func (h *CategoryHandler) deleteCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.SendError(c, apperr.Validate("Invalid category id"))
		return
	}

	if err := h.service.DeleteCategory(c.Request.Context(), id); err != nil {
		response.SendError(c, err)
		return
	}
	response.OK(c, "Category deleted", nil)
}
