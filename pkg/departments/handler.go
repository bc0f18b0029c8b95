package departments

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"assetledger/pkg/apperr"
	"assetledger/pkg/response"
)

type DepartmentHandler struct {
	service DepartmentService
}

func NewDepartmentHandler(service DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{service: service}
}

func (h *DepartmentHandler) RegisterRoutes(router *gin.Engine) {
	g := router.Group("/api/v1/departments")
	g.GET("", h.listDepartments)
	g.GET("/:id", h.getDepartmentByID)
	g.POST("", h.createDepartment)
	g.PUT("/:id", h.updateDepartment)
	g.DELETE("/:id", h.deleteDepartment)
}

type departmentRequest struct {
	Code        string `json:"department_code"`
	Name        string `json:"department_name" binding:"required"`
	ShortName   string `json:"department_short_name"`
	Description string `json:"description"`
	ActionBy    string `json:"action_by"`
}

// @Summary      List departments
// @Description  Lists all active departments ordered by code
// @Tags         departments
// @Produce      json
// @Success      200  {object}  response.APIResponse{data=[]Department}
// @Failure      500  {object}  response.APIResponse
// @Router       /api/v1/departments [get]
func (h *DepartmentHandler) listDepartments(c *gin.Context) {
	list, err := h.service.ListDepartments(c.Request.Context())
	if err != nil {
		response.SendError(c, err)
		return
	}
	response.OK(c, "Departments listed", list)
}

// @Summary      Get department by id
// @Tags         departments
// @Produce      json
// @Param        id  path  string  true  "Department ID"
// @Success      200  {object}  response.APIResponse{data=Department}
// @Failure      404  {object}  response.APIResponse
// @Router       /api/v1/departments/{id} [get]
func (h *DepartmentHandler) getDepartmentByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.SendError(c, apperr.Validate("Invalid department id"))
		return
	}

	d, err := h.service.GetDepartmentByID(c.Request.Context(), id)
	if err != nil {
		response.SendError(c, err)
		return
	}
	response.OK(c, "Department fetched", d)
}

// @Summary      Create a department
// @Tags         departments
// @Accept       json
// @Produce      json
// @Param        request body departmentRequest true "Department"
// @Success      201  {object}  response.APIResponse{data=Department}
// @Failure      400  {object}  response.APIResponse
// @Failure      409  {object}  response.APIResponse
// @Router       /api/v1/departments [post]
func (h *DepartmentHandler) createDepartment(c *gin.Context) {
	var req departmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, apperr.Validate("Invalid request payload"))
		return
	}

	d, err := h.service.CreateDepartment(c.Request.Context(), Department{
		Code:        req.Code,
		Name:        req.Name,
		ShortName:   req.ShortName,
		Description: req.Description,
		CreatedBy:   req.ActionBy,
	})
	if err != nil {
		response.SendError(c, err)
		return
	}
	response.Created(c, "Department created", d)
}

// @Summary      Update a department
// @Tags         departments
// @Accept       json
// @Produce      json
// @Param        id  path  string  true  "Department ID"
// @Param        request body departmentRequest true "Department"
// @Success      200  {object}  response.APIResponse{data=Department}
// @Failure      400  {object}  response.APIResponse
// @Failure      404  {object}  response.APIResponse
// @Router       /api/v1/departments/{id} [put]
func (h *DepartmentHandler) updateDepartment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.SendError(c, apperr.Validate("Invalid department id"))
		return
	}

	var req departmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, apperr.Validate("Invalid request payload"))
		return
	}

	d, err := h.service.UpdateDepartment(c.Request.Context(), Department{
		ID:          id,
		Name:        req.Name,
		ShortName:   req.ShortName,
		Description: req.Description,
		ModifiedBy:  req.ActionBy,
	})
	if err != nil {
		response.SendError(c, err)
		return
	}
	response.OK(c, "Department updated", d)
}

// @Summary      Delete a department
// @Description  Soft-deletes a department (clears the active flag)
// @Tags         departments
// @Produce      json
// @Param        id  path  string  true  "Department ID"
// @Success      200  {object}  response.APIResponse
// @Failure      404  {object}  response.APIResponse
// @Router       /api/v1/departments/{id} [delete]
func (h *DepartmentHandler) deleteDepartment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.SendError(c, apperr.Validate("Invalid department id"))
		return
	}

	if err := h.service.DeleteDepartment(c.Request.Context(), id); err != nil {
		response.SendError(c, err)
		return
	}
	response.OK(c, "Department deleted", nil)
}
